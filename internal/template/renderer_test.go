package template

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iac-studio/converge/internal/port"
	"github.com/iac-studio/converge/pkg/logger"
	"github.com/iac-studio/converge/pkg/utils"
)

func TestMain(m *testing.M) {
	if _, err := logger.Init("info", "json"); err != nil {
		panic("failed to init logger: " + err.Error())
	}
	os.Exit(m.Run())
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func chartFixture(t *testing.T) string {
	src := t.TempDir()
	writeFile(t, filepath.Join(src, "Chart.yaml"), "name: {{ .service_name }}\nversion: 0.1.0\n")
	writeFile(t, filepath.Join(src, "values.yaml"), "image: {{ .image | quote }}\nport: {{ .port | default 8080 }}\n")
	writeFile(t, filepath.Join(src, "templates", "deployment.yaml"), "replicas: {{ .Values.replicas }}\n")
	writeFile(t, filepath.Join(src, "nested", "main.tf"), "variable \"id\" { default = \"{{ upper .id }}\" }\n")
	return src
}

func TestRenderTree(t *testing.T) {
	src := chartFixture(t)
	dst := filepath.Join(t.TempDir(), "workspace")

	data := port.TemplateContext{"service_name": "web", "image": "nginx:1.27", "id": "z0badcafe", "port": 0}
	require.NoError(t, NewRenderer().Render(src, dst, data))

	got, err := os.ReadFile(filepath.Join(dst, "values.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "image: \"nginx:1.27\"\nport: 8080\n", string(got))

	got, err = os.ReadFile(filepath.Join(dst, "nested", "main.tf"))
	require.NoError(t, err)
	assert.Equal(t, "variable \"id\" { default = \"Z0BADCAFE\" }\n", string(got))

	got, err = os.ReadFile(filepath.Join(dst, "templates", "deployment.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "replicas: {{ .Values.replicas }}\n", string(got), "chart templates are left for helm")
}

func TestRenderIsDeterministic(t *testing.T) {
	src := chartFixture(t)
	data := port.TemplateContext{"service_name": "web", "image": "nginx:1.27", "id": "z0badcafe", "port": 0}

	a, b := t.TempDir(), t.TempDir()
	require.NoError(t, NewRenderer().Render(src, a, data))
	require.NoError(t, NewRenderer().Render(src, b, data))

	sumA, err := utils.DirectoryChecksum(a)
	require.NoError(t, err)
	sumB, err := utils.DirectoryChecksum(b)
	require.NoError(t, err)
	assert.Equal(t, sumA, sumB)
}

func TestRenderErrors(t *testing.T) {
	tests := []struct {
		name string
		src  func(t *testing.T) string
	}{
		{"missing source", func(t *testing.T) string { return filepath.Join(t.TempDir(), "absent") }},
		{"source is a file", func(t *testing.T) string {
			p := filepath.Join(t.TempDir(), "file")
			writeFile(t, p, "x")
			return p
		}},
		{"missing key", func(t *testing.T) string {
			d := t.TempDir()
			writeFile(t, filepath.Join(d, "values.yaml"), "name: {{ .unknown }}\n")
			return d
		}},
		{"parse error", func(t *testing.T) string {
			d := t.TempDir()
			writeFile(t, filepath.Join(d, "values.yaml"), "name: {{ .name \n")
			return d
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewRenderer().Render(tt.src(t), t.TempDir(), port.TemplateContext{"name": "x"})
			assert.Error(t, err)
		})
	}
}
