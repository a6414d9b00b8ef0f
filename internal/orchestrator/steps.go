// Package orchestrator runs the deployment pipelines of stateless and stateful services.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/iac-studio/converge/internal/events"
	"github.com/iac-studio/converge/internal/models"
	"github.com/iac-studio/converge/internal/port"
	"github.com/iac-studio/converge/internal/service"
	appErr "github.com/iac-studio/converge/pkg/errors"
	"github.com/iac-studio/converge/pkg/logger"
)

const (
	readinessInitialInterval = 2 * time.Second
	readinessMaxInterval     = 15 * time.Second
)

func render(target *service.DeploymentTarget, details appErr.EventDetails, from, to string, data port.TemplateContext) error {
	if err := target.Renderer.Render(from, to, data); err != nil {
		return appErr.NewCannotCopyFilesFromDirectoryToDirectory(details, from, to, err)
	}
	return nil
}

func ensureNamespace(ctx context.Context, target *service.DeploymentTarget, details appErr.EventDetails) error {
	ns := target.Namespace()
	if err := target.Cluster.Client.CreateNamespace(ctx, ns, target.Context.NamespaceLabels()); err != nil {
		return appErr.NewK8sCreateNamespace(details, ns, err)
	}
	return nil
}

// upgradeChart maps a release timeout and any other upgrade failure to their own tags.
func upgradeChart(ctx context.Context, target *service.DeploymentTarget, details appErr.EventDetails, chart models.ChartInfo) error {
	status, err := target.Charts.Upgrade(ctx, target.KubeAccess(), chart)
	if err != nil {
		if errors.Is(err, port.ErrReleaseTimeout) {
			return withCredentials(appErr.NewHelmDeployTimeout(details, chart.Name, err), target)
		}
		return withCredentials(appErr.NewHelmChartsUpgradeError(details, err), target)
	}
	logger.L().Info("helm release upgraded",
		zap.String("release", status.Name),
		zap.String("namespace", status.Namespace),
		zap.Int("revision", status.Revision),
		zap.String("status", status.Status))
	return nil
}

func uninstallChart(ctx context.Context, target *service.DeploymentTarget, details appErr.EventDetails, chart models.ChartInfo) error {
	if err := target.Charts.Uninstall(ctx, target.KubeAccess(), chart); err != nil {
		return withCredentials(appErr.NewHelmChartUninstallError(details, chart.Name, err), target)
	}
	return nil
}

// deletePendingPods removes the pods of selector stuck in Pending since before the upgrade started.
// Failures are logged and ignored.
func deletePendingPods(ctx context.Context, target *service.DeploymentTarget, details appErr.EventDetails, selector string, upgradeStartedAt time.Time) {
	ns := target.Namespace()
	pods, err := target.Cluster.Client.GetPods(ctx, ns, selector)
	if err != nil {
		target.Log(events.Warning(details, appErr.NewK8sCannotGetPods(details, selector, ns, err).Error()))
		return
	}
	stale := lo.Filter(pods, func(p models.Pod, _ int) bool {
		return p.Phase == models.PodPending && p.CreatedAt.Before(upgradeStartedAt)
	})
	for _, pod := range stale {
		if err := target.Cluster.Client.DeletePod(ctx, ns, pod.Name); err != nil {
			target.Log(events.Warning(details, appErr.NewK8sCannotDeletePod(details, pod.Name, ns, err).Error()))
			continue
		}
		logger.L().Debug("deleted pending pod", zap.String("pod", pod.Name), zap.String("namespace", ns))
	}
}

var errNoPods = errors.New("no pod matches the selector yet")

// waitForPodsReady polls the pods of selector with backoff until all of them are ready
// or the readiness timeout elapses.
func waitForPodsReady(ctx context.Context, target *service.DeploymentTarget, selector string) error {
	ns := target.Namespace()
	started := time.Now()

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = readinessInitialInterval
	b.MaxInterval = readinessMaxInterval
	b.MaxElapsedTime = target.Readiness()

	op := func() error {
		pods, err := target.Cluster.Client.GetPods(ctx, ns, selector)
		if err != nil {
			return err
		}
		if len(pods) == 0 {
			return errNoPods
		}
		notReady := lo.Reject(pods, func(p models.Pod, _ int) bool { return p.Ready })
		if len(notReady) > 0 {
			return fmt.Errorf("%d/%d pods not ready: %v", len(notReady), len(pods),
				lo.Map(notReady, func(p models.Pod, _ int) string { return p.Name }))
		}
		return nil
	}
	notify := func(err error, next time.Duration) {
		logger.L().Debug("waiting for pods",
			zap.String("namespace", ns),
			zap.String("selector", selector),
			zap.Duration("retry_in", next),
			zap.Error(err))
	}

	err := backoff.RetryNotify(op, backoff.WithContext(b, ctx), notify)
	target.Metrics.ObserveReadinessWait(time.Since(started), err == nil)
	return err
}

// withCredentials attaches the provider credentials so they are redacted from the error details.
func withCredentials(ee *appErr.EngineError, target *service.DeploymentTarget) *appErr.EngineError {
	if ee.Underlying != nil && target.CloudProvider != nil {
		ee.Underlying.WithEnv(target.CloudProvider.CredentialsEnvironmentVariables())
	}
	return ee
}
