// Package workload holds the stateless service kinds: applications and routers.
package workload

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/iac-studio/converge/internal/events"
	"github.com/iac-studio/converge/internal/models"
	"github.com/iac-studio/converge/internal/orchestrator"
	"github.com/iac-studio/converge/internal/port"
	"github.com/iac-studio/converge/internal/service"
	appErr "github.com/iac-studio/converge/pkg/errors"
	"github.com/iac-studio/converge/pkg/utils"
)

var _ service.StatelessService = (*Application)(nil)

type ApplicationParams struct {
	LongID        uuid.UUID
	Action        models.Action
	Name          string
	Version       string
	CreatedAt     time.Time
	Image         string
	Ports         []models.Port
	EnvVars       []models.EnvVar
	Storage       []models.Storage
	TotalCPUs     string
	CPUBurst      string
	TotalRAMInMiB uint32
	MinInstances  uint32
	MaxInstances  uint32
}

type Application struct {
	p         ApplicationParams
	id        string
	kubeName  string
	libRoot   string
	workspace string
}

func NewApplication(execCtx models.Context, p ApplicationParams) (*Application, error) {
	details := execCtx.EventDetails(appErr.StageLoadConfiguration, appErr.Transmitter{
		Kind: appErr.TransmitterApplication, ID: p.LongID.String(), Name: p.Name,
	})
	if p.Image == "" {
		return nil, appErr.NewInvalidEnginePayload(details, fmt.Sprintf("application %s has no image", p.Name))
	}
	if p.MinInstances > p.MaxInstances {
		return nil, appErr.NewInvalidEnginePayload(details,
			fmt.Sprintf("application %s min instances (%d) is greater than max instances (%d)", p.Name, p.MinInstances, p.MaxInstances))
	}

	workspace, err := service.WorkspaceDirectory(execCtx.WorkspaceRootDir, execCtx.ExecutionID, service.ApplicationsSubpath, p.Name, utils.ToShortID(p.LongID))
	if err != nil {
		return nil, appErr.NewCannotGetWorkspaceDirectory(details, err)
	}
	return &Application{
		p:         p,
		id:        utils.ToShortID(p.LongID),
		kubeName:  utils.SanitizeName(p.Name),
		libRoot:   execCtx.LibRootDir,
		workspace: workspace,
	}, nil
}

func (a *Application) ID() string                      { return a.id }
func (a *Application) LongID() uuid.UUID               { return a.p.LongID }
func (a *Application) Name() string                    { return a.p.Name }
func (a *Application) KubeName() string                { return a.kubeName }
func (a *Application) ServiceType() models.ServiceType { return models.ServiceTypeApplication }
func (a *Application) Action() models.Action           { return a.p.Action }
func (a *Application) Version() string                 { return a.p.Version }
func (a *Application) TotalCPUs() string               { return a.p.TotalCPUs }
func (a *Application) TotalRAMInMiB() uint32           { return a.p.TotalRAMInMiB }
func (a *Application) MinInstances() uint32            { return a.p.MinInstances }
func (a *Application) MaxInstances() uint32            { return a.p.MaxInstances }
func (a *Application) WorkspaceDirectory() string      { return a.workspace }
func (a *Application) Selector() string                { return service.SelectorFor(a.p.LongID) }
func (a *Application) HelmReleaseName() string         { return "application-" + a.id }

func (a *Application) CPUBurst() string {
	if a.p.CPUBurst == "" {
		return a.p.TotalCPUs
	}
	return a.p.CPUBurst
}

// PrivatePort is the first declared port.
func (a *Application) PrivatePort() *uint16 {
	if len(a.p.Ports) == 0 {
		return nil
	}
	port := a.p.Ports[0].Port
	return &port
}

func (a *Application) PubliclyAccessible() bool {
	return lo.SomeBy(a.p.Ports, func(p models.Port) bool { return p.PubliclyAccessible })
}

// ScalingKind is StatefulSet as soon as the application declares storage.
func (a *Application) ScalingKind() models.ScalingKind {
	if len(a.p.Storage) > 0 {
		return models.ScalingStatefulSet
	}
	return models.ScalingDeployment
}

func (a *Application) HelmChartDir() string {
	return filepath.Join(a.libRoot, "common", "charts", "application")
}

func (a *Application) ProgressScope() events.Scope {
	return events.Scope{Kind: models.KindApplication, ID: a.p.LongID.String()}
}

func (a *Application) TemplateContext(target *service.DeploymentTarget) (port.TemplateContext, error) {
	ctx := service.DefaultTemplateContext(a, target)
	ctx["image_name_with_tag"] = a.p.Image
	ctx["cpu_burst"] = a.CPUBurst()
	ctx["is_statefulset"] = a.ScalingKind() == models.ScalingStatefulSet
	ctx["publicly_accessible"] = a.PubliclyAccessible()
	ctx["environment_variables"] = lo.Map(a.p.EnvVars, func(e models.EnvVar, _ int) map[string]string {
		return map[string]string{"key": e.Key, "value": e.Value}
	})
	ctx["ports"] = lo.Map(a.p.Ports, func(p models.Port, _ int) map[string]any {
		return map[string]any{
			"long_id":             p.LongID,
			"port":                p.Port,
			"public_port":         p.PublicPort,
			"publicly_accessible": p.PubliclyAccessible,
		}
	})
	ctx["storage"] = lo.Map(a.p.Storage, func(s models.Storage, _ int) map[string]any {
		return map[string]any{
			"id":           s.ID,
			"name":         s.Name,
			"storage_type": s.StorageType,
			"size_in_gib":  s.SizeInGiB,
			"mount_point":  s.MountPoint,
		}
	})
	return ctx, nil
}

func (a *Application) OnCreate(ctx context.Context, target *service.DeploymentTarget) error {
	return orchestrator.CheckServiceResult(ctx, target, a, models.ActionCreate, appErr.StageDeploy, func() error {
		return orchestrator.DeployStatelessService(ctx, target, a)
	})
}

func (a *Application) OnCreateCheck() error { return nil }

func (a *Application) OnPause(ctx context.Context, target *service.DeploymentTarget) error {
	return orchestrator.CheckServiceResult(ctx, target, a, models.ActionPause, appErr.StagePause, func() error {
		return orchestrator.ScaleDownApplication(ctx, target, a)
	})
}

func (a *Application) OnPauseCheck() error { return nil }

func (a *Application) OnDelete(ctx context.Context, target *service.DeploymentTarget) error {
	return orchestrator.CheckServiceResult(ctx, target, a, models.ActionDelete, appErr.StageDelete, func() error {
		return orchestrator.DeleteStatelessService(ctx, target, a)
	})
}

func (a *Application) OnDeleteCheck() error { return nil }
