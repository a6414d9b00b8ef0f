// Package template renders a directory of text/template files into a workspace.
package template

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/iac-studio/converge/internal/port"
	"github.com/iac-studio/converge/pkg/logger"
)

var _ port.TemplateRenderer = (*Renderer)(nil)

// Renderer copies a tree, rendering every regular file with the sprig function map.
// Files under a directory named "templates" of a helm chart are copied verbatim, helm renders them itself.
type Renderer struct {
	// VerbatimDirs are directory names whose files are copied without rendering.
	VerbatimDirs []string
}

func NewRenderer() *Renderer {
	return &Renderer{VerbatimDirs: []string{"templates"}}
}

// Render renders sourceDir into targetDir. Missing keys are errors so a template never ships an empty value.
func (r *Renderer) Render(sourceDir, targetDir string, data port.TemplateContext) error {
	info, err := os.Stat(sourceDir)
	if err != nil {
		return fmt.Errorf("stat source dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("source %s is not a directory", sourceDir)
	}

	count := 0
	err = filepath.WalkDir(sourceDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(sourceDir, path)
		if err != nil {
			return err
		}
		dest := filepath.Join(targetDir, rel)

		if d.IsDir() {
			return os.MkdirAll(dest, 0o755)
		}
		if !d.Type().IsRegular() {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", rel, err)
		}
		if !r.verbatim(rel) {
			content, err = renderFile(rel, content, data)
			if err != nil {
				return err
			}
		}
		count++
		return os.WriteFile(dest, content, 0o644)
	})
	if err != nil {
		return err
	}

	logger.L().Debug("rendered template directory",
		zap.String("source", sourceDir),
		zap.String("target", targetDir),
		zap.Int("files", count),
	)
	return nil
}

func (r *Renderer) verbatim(rel string) bool {
	dirs := strings.Split(filepath.ToSlash(filepath.Dir(rel)), "/")
	return lo.Some(dirs, r.VerbatimDirs)
}

func renderFile(name string, content []byte, data port.TemplateContext) ([]byte, error) {
	tpl, err := template.New(name).
		Funcs(sprig.TxtFuncMap()).
		Option("missingkey=error").
		Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, map[string]any(data)); err != nil {
		return nil, fmt.Errorf("render template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}
