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

var _ service.RouterService = (*Router)(nil)

type RouterParams struct {
	LongID         uuid.UUID
	Action         models.Action
	Name           string
	CreatedAt      time.Time
	DefaultDomain  string
	CustomDomains  []models.CustomDomain
	Routes         []models.Route
	StickySessions bool
}

type routeTarget struct {
	kubeName string
	port     uint16
}

// Router exposes applications of the environment under its domains.
type Router struct {
	p         RouterParams
	id        string
	kubeName  string
	libRoot   string
	workspace string
	targets   map[string]routeTarget
}

// NewRouter indexes the applications the routes can point to.
func NewRouter(execCtx models.Context, p RouterParams, applications []*Application) (*Router, error) {
	details := execCtx.EventDetails(appErr.StageLoadConfiguration, appErr.Transmitter{
		Kind: appErr.TransmitterRouter, ID: p.LongID.String(), Name: p.Name,
	})
	workspace, err := service.WorkspaceDirectory(execCtx.WorkspaceRootDir, execCtx.ExecutionID, service.RoutersSubpath, p.Name, utils.ToShortID(p.LongID))
	if err != nil {
		return nil, appErr.NewCannotGetWorkspaceDirectory(details, err)
	}

	targets := make(map[string]routeTarget, len(applications))
	for _, app := range applications {
		t := routeTarget{kubeName: app.KubeName()}
		if port := app.PrivatePort(); port != nil {
			t.port = *port
		}
		targets[app.LongID().String()] = t
	}

	return &Router{
		p:         p,
		id:        utils.ToShortID(p.LongID),
		kubeName:  utils.SanitizeName(p.Name),
		libRoot:   execCtx.LibRootDir,
		workspace: workspace,
		targets:   targets,
	}, nil
}

func (r *Router) ID() string                      { return r.id }
func (r *Router) LongID() uuid.UUID               { return r.p.LongID }
func (r *Router) Name() string                    { return r.p.Name }
func (r *Router) KubeName() string                { return r.kubeName }
func (r *Router) ServiceType() models.ServiceType { return models.ServiceTypeRouter }
func (r *Router) Action() models.Action           { return r.p.Action }
func (r *Router) Version() string                 { return "" }
func (r *Router) PrivatePort() *uint16            { return nil }
func (r *Router) PubliclyAccessible() bool        { return true }
func (r *Router) TotalCPUs() string               { return "" }
func (r *Router) CPUBurst() string                { return "" }
func (r *Router) TotalRAMInMiB() uint32           { return 0 }
func (r *Router) MinInstances() uint32            { return 1 }
func (r *Router) MaxInstances() uint32            { return 1 }
func (r *Router) WorkspaceDirectory() string      { return r.workspace }
func (r *Router) HelmReleaseName() string         { return "router-" + r.id }

// Selector is empty: a router only renders ingress objects, there is no pod to wait on.
func (r *Router) Selector() string { return "" }

func (r *Router) HelmChartDir() string {
	return filepath.Join(r.libRoot, "common", "charts", "router")
}

func (r *Router) ProgressScope() events.Scope {
	return events.Scope{Kind: models.KindRouter, ID: r.p.LongID.String()}
}

func (r *Router) TemplateContext(target *service.DeploymentTarget) (port.TemplateContext, error) {
	details := target.EventDetails(appErr.StageDeploy, r)

	var routes []map[string]any
	for _, route := range r.p.Routes {
		t, ok := r.targets[route.ServiceLongID]
		if !ok {
			return nil, appErr.NewRouterFailedToDeploy(details,
				fmt.Errorf("route %s points to unknown application %s", route.Path, route.ServiceLongID))
		}
		routes = append(routes, map[string]any{
			"path":             route.Path,
			"application_name": t.kubeName,
			"application_port": t.port,
		})
	}

	ctx := service.DefaultTemplateContext(r, target)
	ctx["default_domain"] = r.p.DefaultDomain
	ctx["sticky_sessions_enabled"] = r.p.StickySessions
	ctx["routes"] = routes
	ctx["custom_domains"] = lo.Map(r.p.CustomDomains, func(d models.CustomDomain, _ int) map[string]any {
		return map[string]any{
			"domain":               d.Domain,
			"target_domain":        d.TargetDomain,
			"generate_certificate": d.GenerateCertificate,
		}
	})
	ctx["has_custom_domains"] = len(r.p.CustomDomains) > 0
	return ctx, nil
}

func (r *Router) OnCreate(ctx context.Context, target *service.DeploymentTarget) error {
	return orchestrator.CheckServiceResult(ctx, target, r, models.ActionCreate, appErr.StageDeploy, func() error {
		return orchestrator.DeployStatelessService(ctx, target, r)
	})
}

func (r *Router) OnCreateCheck() error { return nil }

// OnPause keeps the ingress: paused applications answer with their own unavailability.
func (r *Router) OnPause(ctx context.Context, target *service.DeploymentTarget) error {
	return orchestrator.CheckServiceResult(ctx, target, r, models.ActionPause, appErr.StagePause, func() error {
		return nil
	})
}

func (r *Router) OnPauseCheck() error { return nil }

func (r *Router) OnDelete(ctx context.Context, target *service.DeploymentTarget) error {
	return orchestrator.CheckServiceResult(ctx, target, r, models.ActionDelete, appErr.StageDelete, func() error {
		return orchestrator.DeleteStatelessService(ctx, target, r)
	})
}

func (r *Router) OnDeleteCheck() error { return nil }
