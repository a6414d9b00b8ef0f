package helm

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"helm.sh/helm/v3/pkg/action"
	"helm.sh/helm/v3/pkg/chartutil"
	kubefake "helm.sh/helm/v3/pkg/kube/fake"
	"helm.sh/helm/v3/pkg/storage"
	"helm.sh/helm/v3/pkg/storage/driver"

	"github.com/iac-studio/converge/internal/models"
	"github.com/iac-studio/converge/internal/port"
	"github.com/iac-studio/converge/pkg/logger"
)

func TestMain(m *testing.M) {
	if _, err := logger.Init("info", "json"); err != nil {
		panic("failed to init logger: " + err.Error())
	}
	os.Exit(m.Run())
}

func memoryManager() (*ChartManager, *storage.Storage) {
	store := storage.Init(driver.NewMemory())
	return NewChartManagerWithConfig(func(port.KubeAccess, string) (*action.Configuration, error) {
		return &action.Configuration{
			Releases:     store,
			KubeClient:   &kubefake.PrintingKubeClient{Out: io.Discard},
			Capabilities: chartutil.DefaultCapabilities,
			Log:          func(string, ...interface{}) {},
		}, nil
	}), store
}

func writeChart(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"Chart.yaml":            "apiVersion: v2\nname: application\nversion: 0.1.0\n",
		"values.yaml":           "replicas: 1\nimage:\n  name: nginx\n  tag: latest\n",
		"templates/config.yaml": "apiVersion: v1\nkind: ConfigMap\nmetadata:\n  name: {{ .Release.Name }}\ndata:\n  tag: {{ .Values.image.tag | quote }}\n",
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func TestUpgradeInstallsThenUpgrades(t *testing.T) {
	m, store := memoryManager()
	info := models.NewChartInfo("application-z0badcafe", writeChart(t), "ns1")

	status, err := m.Upgrade(context.Background(), port.KubeAccess{}, info)
	require.NoError(t, err)
	assert.Equal(t, 1, status.Revision)
	assert.Equal(t, "deployed", status.Status)

	status, err = m.Upgrade(context.Background(), port.KubeAccess{}, info)
	require.NoError(t, err)
	assert.Equal(t, 2, status.Revision)

	history, err := store.History("application-z0badcafe")
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

func TestUninstall(t *testing.T) {
	m, store := memoryManager()
	info := models.NewChartInfo("router-z0badf00d", writeChart(t), "ns1")

	_, err := m.Upgrade(context.Background(), port.KubeAccess{}, info)
	require.NoError(t, err)
	require.NoError(t, m.Uninstall(context.Background(), port.KubeAccess{}, info))

	_, err = store.Last("router-z0badf00d")
	assert.Error(t, err)

	// already gone
	require.NoError(t, m.Uninstall(context.Background(), port.KubeAccess{}, info))
}

func TestMergeValues(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "values.yaml")
	override := filepath.Join(dir, "values-override.yaml")
	require.NoError(t, os.WriteFile(first, []byte("image:\n  name: postgres\n  tag: \"15\"\nport: 5432\n"), 0o644))
	require.NoError(t, os.WriteFile(override, []byte("image:\n  tag: \"16\"\n"), 0o644))

	info := models.ChartInfo{
		ValuesFiles: []string{first, override},
		Values:      []models.ChartSetValue{{Key: "service.name", Value: "pg"}},
	}
	values, err := mergeValues(info)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"name": "postgres", "tag": "16"}, values["image"])
	assert.Equal(t, 5432, values["port"])
	assert.Equal(t, map[string]any{"name": "pg"}, values["service"])

	_, err = mergeValues(models.ChartInfo{ValuesFiles: []string{filepath.Join(dir, "absent.yaml")}})
	assert.Error(t, err)
}

func TestClassify(t *testing.T) {
	err := classify(errors.New("release web failed: timed out waiting for the condition"))
	assert.ErrorIs(t, err, port.ErrReleaseTimeout)

	err = classify(context.DeadlineExceeded)
	assert.ErrorIs(t, err, port.ErrReleaseTimeout)

	err = classify(errors.New("template: bad"))
	assert.NotErrorIs(t, err, port.ErrReleaseTimeout)
}
