package orchestrator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/iac-studio/converge/internal/diagnostics"
	"github.com/iac-studio/converge/internal/events"
	"github.com/iac-studio/converge/internal/models"
	"github.com/iac-studio/converge/internal/service"
	appErr "github.com/iac-studio/converge/pkg/errors"
)

const diagnosticsTimeout = 30 * time.Second

// CheckServiceResult runs one lifecycle step of svc and reports it to the target sink.
// On failure it emits the error, attaches the collected diagnostics as debug evidence and
// returns the error flattened to its sanitized form, with its original tag.
func CheckServiceResult(ctx context.Context, target *service.DeploymentTarget, svc service.Service, action models.Action, stage appErr.Stage, step func() error) error {
	details := target.EventDetails(stage, svc)
	typeName := strings.ToLower(svc.ServiceType().Name())

	msg := fmt.Sprintf("%s %s %s", action.Verb(), typeName, svc.Name())
	target.Progress(svc, events.InProgressStatus(action), events.LevelInfo, msg)
	target.Log(events.Info(details, msg))

	started := time.Now()
	target.Metrics.PipelineStarted()
	err := step()
	target.Metrics.PipelineFinished(svc.ServiceType().Name(), string(action), time.Since(started), err)

	if err == nil {
		target.Progress(svc, events.InProgressStatus(action), events.LevelInfo,
			fmt.Sprintf("%s succeeded for %s %s", action.Verb(), typeName, svc.Name()))
		return nil
	}

	ee, ok := appErr.AsEngineError(err)
	if !ok {
		ee = appErr.NewUnknownError(details, err)
	}

	errMsg := fmt.Sprintf("%s error with %s %s , id: %s", action.Verb(), typeName, svc.Name(), svc.ID())
	target.Log(events.Error(ee, errMsg))
	target.Progress(svc, events.ErrorStatus(action), events.LevelError, errMsg)

	debugLogs := collectDiagnostics(ctx, target, svc)
	target.Log(events.Debug(details, debugLogs))
	target.Progress(svc, events.ErrorStatus(action), events.LevelDebug, debugLogs)

	return ee.Flatten()
}

// collectDiagnostics keeps collecting when ctx is already cancelled, bounded by its own timeout.
func collectDiagnostics(ctx context.Context, target *service.DeploymentTarget, svc service.Service) string {
	if target.Cluster == nil || target.Cluster.Client == nil {
		return diagnostics.NoDebugLogs
	}
	dctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), diagnosticsTimeout)
	defer cancel()

	lines, _ := diagnostics.NewCollector(target.Cluster.Client).Collect(dctx, target.Namespace(), svc.Selector())
	return diagnostics.Render(lines)
}

// VersionedService resolves its requested version against the versions it can deploy.
type VersionedService interface {
	service.Identity
	ResolveVersion() (models.ServiceVersionCheckResult, error)
}

// CheckServiceVersion reports a version substitution as info, and an unsupported version
// as a deployment error before returning it.
func CheckServiceVersion(target *service.DeploymentTarget, svc VersionedService) (models.ServiceVersionCheckResult, error) {
	details := target.EventDetails(appErr.StageDeploy, svc)

	result, err := svc.ResolveVersion()
	if err != nil {
		target.Progress(svc, events.DeploymentError, events.LevelError,
			fmt.Sprintf("%s version %s is not supported!", svc.ServiceType().Name(), svc.Version()))

		ee, ok := appErr.AsEngineError(err)
		if !ok {
			ee = appErr.NewUnsupportedVersionError(details, svc.ServiceType().Name(), svc.Version())
		}
		target.Log(events.Error(ee, ""))
		return models.ServiceVersionCheckResult{}, ee
	}

	if result.Message != "" {
		target.Log(events.Info(details, result.Message))
		target.Progress(svc, events.DeploymentInProgress, events.LevelInfo, result.Message)
	}
	return result, nil
}
