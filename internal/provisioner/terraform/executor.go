// Package terraform runs terraform pipelines in rendered module directories.
package terraform

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/hashicorp/terraform-exec/tfexec"
	"go.uber.org/zap"

	"github.com/iac-studio/converge/internal/port"
	appErr "github.com/iac-studio/converge/pkg/errors"
	"github.com/iac-studio/converge/pkg/logger"
)

var _ port.InfraManager = (*Executor)(nil)

// workspace is one terraform working directory.
type workspace interface {
	Init(ctx context.Context) error
	Validate(ctx context.Context) error
	Plan(ctx context.Context) (bool, error)
	Apply(ctx context.Context) error
	Destroy(ctx context.Context, force bool) error
	// Output is everything the commands wrote so far.
	Output() string
}

// Executor implements the infra manager on terraform-exec.
type Executor struct {
	open func(dir string, env map[string]string) (workspace, error)
}

// NewExecutor looks terraform up in PATH when binaryPath is empty.
func NewExecutor(binaryPath string) (*Executor, error) {
	if binaryPath == "" {
		p, err := exec.LookPath("terraform")
		if err != nil {
			return nil, fmt.Errorf("terraform not found in PATH: %w", err)
		}
		binaryPath = p
	}
	if _, err := os.Stat(binaryPath); err != nil {
		return nil, fmt.Errorf("terraform binary %s: %w", binaryPath, err)
	}
	return &Executor{
		open: func(dir string, env map[string]string) (workspace, error) {
			return openTF(dir, binaryPath, env)
		},
	}, nil
}

// InitValidatePlanApply stops after plan when dryRun is set.
func (e *Executor) InitValidatePlanApply(ctx context.Context, dir string, env map[string]string, dryRun bool) error {
	ws, err := e.open(dir, env)
	if err != nil {
		return err
	}
	log := logger.L().With(zap.String("working_dir", dir))

	if err := initValidate(ctx, ws, log); err != nil {
		return err
	}

	log.Info("running terraform plan")
	changes, err := ws.Plan(ctx)
	if err != nil {
		return appErr.NewTerraformError("plan", ws.Output(), err)
	}
	if dryRun {
		log.Info("dry run, skipping terraform apply", zap.Bool("has_changes", changes))
		return nil
	}
	if !changes {
		log.Info("terraform plan has no changes")
		return nil
	}

	log.Info("running terraform apply")
	if err := ws.Apply(ctx); err != nil {
		return appErr.NewTerraformError("apply", ws.Output(), err)
	}
	return nil
}

// InitValidateDestroy ignores the state lock when force is set.
func (e *Executor) InitValidateDestroy(ctx context.Context, dir string, env map[string]string, force bool) error {
	ws, err := e.open(dir, env)
	if err != nil {
		return err
	}
	log := logger.L().With(zap.String("working_dir", dir))

	if err := initValidate(ctx, ws, log); err != nil {
		return err
	}

	log.Info("running terraform destroy", zap.Bool("force", force))
	if err := ws.Destroy(ctx, force); err != nil {
		return appErr.NewTerraformError("destroy", ws.Output(), err)
	}
	return nil
}

func initValidate(ctx context.Context, ws workspace, log *zap.Logger) error {
	log.Info("running terraform init")
	if err := ws.Init(ctx); err != nil {
		return appErr.NewTerraformError("init", ws.Output(), err)
	}
	log.Info("running terraform validate")
	if err := ws.Validate(ctx); err != nil {
		return appErr.NewTerraformError("validate", ws.Output(), err)
	}
	return nil
}

type tfWorkspace struct {
	tf *tfexec.Terraform

	mu  sync.Mutex
	out bytes.Buffer
}

func openTF(dir, binaryPath string, env map[string]string) (*tfWorkspace, error) {
	tf, err := tfexec.NewTerraform(dir, binaryPath)
	if err != nil {
		return nil, fmt.Errorf("create terraform executor: %w", err)
	}
	if err := tf.SetEnv(processEnv(os.Environ(), env)); err != nil {
		return nil, fmt.Errorf("set terraform env: %w", err)
	}
	ws := &tfWorkspace{tf: tf}
	tf.SetStdout(ws)
	tf.SetStderr(ws)
	return ws, nil
}

func (w *tfWorkspace) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.out.Write(p)
}

func (w *tfWorkspace) Output() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.out.String()
}

func (w *tfWorkspace) Init(ctx context.Context) error {
	return w.tf.Init(ctx, tfexec.Upgrade(true))
}

func (w *tfWorkspace) Validate(ctx context.Context) error {
	out, err := w.tf.Validate(ctx)
	if err != nil {
		return err
	}
	if out.Valid {
		return nil
	}
	msgs := make([]string, 0, len(out.Diagnostics))
	for _, d := range out.Diagnostics {
		msgs = append(msgs, strings.TrimSpace(d.Summary+": "+d.Detail))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}

func (w *tfWorkspace) Plan(ctx context.Context) (bool, error) {
	return w.tf.Plan(ctx)
}

func (w *tfWorkspace) Apply(ctx context.Context) error {
	return w.tf.Apply(ctx)
}

func (w *tfWorkspace) Destroy(ctx context.Context, force bool) error {
	if force {
		return w.tf.Destroy(ctx, tfexec.Lock(false))
	}
	return w.tf.Destroy(ctx)
}

// processEnv merges the credentials over the process environment. TF_ variables are
// managed by terraform-exec and are left out.
func processEnv(environ []string, overrides map[string]string) map[string]string {
	env := make(map[string]string, len(environ)+len(overrides))
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || strings.HasPrefix(k, "TF_") {
			continue
		}
		env[k] = v
	}
	for k, v := range overrides {
		env[k] = v
	}
	return env
}
