package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/iac-studio/converge/internal/api/types"
	"github.com/iac-studio/converge/internal/events"
	"github.com/iac-studio/converge/internal/models"
	"github.com/iac-studio/converge/internal/port"
	"github.com/iac-studio/converge/internal/repository"
	"github.com/iac-studio/converge/internal/service"
	"github.com/iac-studio/converge/internal/telemetry"
	appErr "github.com/iac-studio/converge/pkg/errors"
	"github.com/iac-studio/converge/pkg/logger"
)

const (
	TypeEnvironmentDeploy = "environment:deploy"
	TypeEnvironmentPause  = "environment:pause"
	TypeEnvironmentDelete = "environment:delete"

	QueueEnvironments = "environments"
)

// EnvironmentPayload is the task payload of every environment task.
type EnvironmentPayload struct {
	ExecutionID string                   `json:"execution_id"`
	Request     types.EnvironmentRequest `json:"request"`
}

// NewEnvironmentTask builds the task of the environment action. Pipelines are never retried by the queue.
func NewEnvironmentTask(p EnvironmentPayload) (*asynq.Task, error) {
	var typ string
	switch p.Request.Action {
	case models.ActionCreate:
		typ = TypeEnvironmentDeploy
	case models.ActionPause:
		typ = TypeEnvironmentPause
	case models.ActionDelete:
		typ = TypeEnvironmentDelete
	default:
		return nil, fmt.Errorf("no task for environment action %q", p.Request.Action)
	}
	body, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(typ, body,
		asynq.Queue(QueueEnvironments),
		asynq.MaxRetry(0),
		asynq.TaskID(p.ExecutionID),
	), nil
}

// Runtime is what every execution of the worker shares.
type Runtime struct {
	Cluster          *service.Cluster
	CloudProvider    port.CloudProvider
	Renderer         port.TemplateRenderer
	Charts           port.ChartManager
	Infra            port.InfraManager
	Sink             events.Sink
	Metrics          *telemetry.Metrics
	ReadinessTimeout time.Duration
	WorkspaceRootDir string
	LibRootDir       string
}

// EnvironmentTaskHandler converges the services of one environment.
type EnvironmentTaskHandler struct {
	rt          Runtime
	execRepo    repository.ExecutionRepository
	maxParallel int
}

func NewEnvironmentTaskHandler(rt Runtime, execRepo repository.ExecutionRepository, maxParallel int) *EnvironmentTaskHandler {
	if maxParallel < 1 {
		maxParallel = 1
	}
	return &EnvironmentTaskHandler{rt: rt, execRepo: execRepo, maxParallel: maxParallel}
}

// Register binds the handler to the environment task types.
func (h *EnvironmentTaskHandler) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(TypeEnvironmentDeploy, h.HandleEnvironment)
	mux.HandleFunc(TypeEnvironmentPause, h.HandleEnvironment)
	mux.HandleFunc(TypeEnvironmentDelete, h.HandleEnvironment)
}

func (h *EnvironmentTaskHandler) HandleEnvironment(ctx context.Context, t *asynq.Task) error {
	var p EnvironmentPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		logger.L().Error("invalid environment task payload", zap.Error(err))
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}
	id, err := uuid.Parse(p.ExecutionID)
	if err != nil {
		logger.L().Error("invalid execution id in task", zap.Error(err))
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}

	log := logger.L().With(
		zap.String("execution_id", p.ExecutionID),
		zap.String("environment_id", p.Request.Environment.LongID),
		zap.String("action", string(p.Request.Action)),
	)
	log.Info("handling environment task")

	if err := h.execRepo.UpdateStatus(ctx, id, models.ExecutionRunning, time.Now()); err != nil {
		log.Warn("update execution status failed", zap.Error(err))
	}

	runErr := h.run(ctx, id, p)

	status := models.ExecutionSucceeded
	if runErr != nil {
		status = models.ExecutionFailed
		log.Error("environment execution failed", zap.Error(runErr))
	} else {
		log.Info("environment execution succeeded")
	}
	// the task context may already be done, the final status must still be written
	finalCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()
	if err := h.execRepo.UpdateStatus(finalCtx, id, status, time.Now()); err != nil {
		log.Warn("update execution status failed", zap.Error(err))
	}

	if runErr != nil {
		return fmt.Errorf("%w: %v", asynq.SkipRetry, runErr)
	}
	return nil
}

func (h *EnvironmentTaskHandler) run(ctx context.Context, executionID uuid.UUID, p EnvironmentPayload) error {
	req := p.Request
	execCtx := models.Context{
		ProviderKind:                h.rt.CloudProvider.Kind(),
		OrganizationID:              req.OrganizationID,
		ClusterID:                   req.ClusterID,
		ExecutionID:                 p.ExecutionID,
		Region:                      h.rt.Cluster.Region,
		WorkspaceRootDir:            h.rt.WorkspaceRootDir,
		LibRootDir:                  h.rt.LibRootDir,
		DryRunDeploy:                req.DryRunDeploy,
		ResourceExpirationInSeconds: req.ResourceExpirationInSeconds,
	}

	set, err := req.ToDomain(execCtx)
	if err != nil {
		h.record(ctx, executionID, environmentOutcome(req), err, 0)
		return err
	}

	target := &service.DeploymentTarget{
		Context:          execCtx,
		Cluster:          h.rt.Cluster,
		Environment:      req.Environment,
		CloudProvider:    h.rt.CloudProvider,
		Renderer:         h.rt.Renderer,
		Charts:           h.rt.Charts,
		Infra:            h.rt.Infra,
		Sink:             h.rt.Sink,
		Metrics:          h.rt.Metrics,
		ReadinessTimeout: h.rt.ReadinessTimeout,
	}

	for _, tier := range Tiers(set, req.Action) {
		if err := h.runTier(ctx, executionID, target, tier); err != nil {
			return err
		}
	}
	return nil
}

// Tiers orders the services: databases, then applications, then routers. Delete runs in reverse.
func Tiers(set *types.ServiceSet, action models.Action) [][]service.Deployable {
	tiers := [][]service.Deployable{
		deployables(set.Databases),
		deployables(set.Applications),
		deployables(set.Routers),
	}
	if action == models.ActionDelete {
		slices.Reverse(tiers)
	}
	return tiers
}

func deployables[T service.Deployable](in []T) []service.Deployable {
	out := make([]service.Deployable, 0, len(in))
	for _, s := range in {
		out = append(out, s)
	}
	return out
}

// runTier runs every service of the tier, at most maxParallel at once. One failing service
// does not stop the others of its tier; the next tiers are not started.
func (h *EnvironmentTaskHandler) runTier(ctx context.Context, executionID uuid.UUID, target *service.DeploymentTarget, tier []service.Deployable) error {
	var g errgroup.Group
	g.SetLimit(h.maxParallel)

	errs := make([]error, len(tier))
	for i, svc := range tier {
		g.Go(func() error {
			started := time.Now()
			err := service.ExecCheckAction(svc)
			if err == nil {
				err = service.ExecAction(ctx, svc, target)
			}
			h.record(ctx, executionID, serviceOutcome(svc), err, time.Since(started))
			errs[i] = err
			return nil
		})
	}
	_ = g.Wait()
	return errors.Join(errs...)
}

func (h *EnvironmentTaskHandler) record(ctx context.Context, executionID uuid.UUID, o models.ServiceOutcome, err error, d time.Duration) {
	o.ExecutionID = executionID
	o.DurationMs = d.Milliseconds()
	o.Succeeded = err == nil
	if err != nil {
		resp := types.FromEngineError(err)
		o.ErrorTag = resp.Tag
		o.Message = resp.UserLogMessage
		o.Hint = resp.HintMessage
	}
	if rerr := h.execRepo.AddOutcome(context.WithoutCancel(ctx), &o); rerr != nil {
		logger.L().Warn("record service outcome failed", zap.String("service_id", o.ServiceID), zap.Error(rerr))
	}
}

func serviceOutcome(svc service.Deployable) models.ServiceOutcome {
	return models.ServiceOutcome{
		ServiceID:   svc.ID(),
		ServiceName: svc.Name(),
		ServiceType: svc.ServiceType().Name(),
		Action:      string(svc.Action()),
	}
}

func environmentOutcome(req types.EnvironmentRequest) models.ServiceOutcome {
	return models.ServiceOutcome{
		ServiceID:   req.Environment.LongID,
		ServiceName: req.Environment.Namespace,
		ServiceType: string(appErr.TransmitterEnvironment),
		Action:      string(req.Action),
	}
}
