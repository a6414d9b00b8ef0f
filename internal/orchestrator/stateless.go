package orchestrator

import (
	"context"
	"time"

	"github.com/iac-studio/converge/internal/models"
	"github.com/iac-studio/converge/internal/service"
	appErr "github.com/iac-studio/converge/pkg/errors"
)

// HelmService is a service deployed as one helm release.
type HelmService interface {
	service.Service
	service.HelmDeployable
}

// DeployStatelessService renders the service chart, ensures the namespace, upgrades the release,
// removes stale pending pods and waits for the pods to be ready.
func DeployStatelessService(ctx context.Context, target *service.DeploymentTarget, svc HelmService) error {
	details := target.EventDetails(appErr.StageDeploy, svc)
	workspace := svc.WorkspaceDirectory()

	data, err := svc.TemplateContext(target)
	if err != nil {
		return err
	}
	if err := render(target, details, svc.HelmChartDir(), workspace, data); err != nil {
		return err
	}
	if err := ensureNamespace(ctx, target, details); err != nil {
		return err
	}

	chart := models.NewChartInfo(svc.HelmReleaseName(), workspace, target.Namespace())
	chart.Selector = svc.Selector()

	upgradeStartedAt := time.Now()
	if err := upgradeChart(ctx, target, details, chart); err != nil {
		return err
	}

	selector := svc.Selector()
	if selector == "" {
		return nil
	}
	deletePendingPods(ctx, target, details, selector, upgradeStartedAt)

	if err := waitForPodsReady(ctx, target, selector); err != nil {
		return appErr.NewK8sPodNotReady(details, selector, target.Namespace(), err)
	}
	return nil
}

// DeleteStatelessService uninstalls the service release. A missing release is not an error here.
func DeleteStatelessService(ctx context.Context, target *service.DeploymentTarget, svc HelmService) error {
	details := target.EventDetails(appErr.StageDelete, svc)
	chart := models.NewChartInfo(svc.HelmReleaseName(), svc.WorkspaceDirectory(), target.Namespace())
	chart.Selector = svc.Selector()
	return uninstallChart(ctx, target, details, chart)
}

// Scalable services are scaled through a workload controller addressed by selector.
type Scalable interface {
	service.Identity
	ScalingKind() models.ScalingKind
	Selector() string
}

// ScaleDownApplication sets the replicas of the service controller to zero.
func ScaleDownApplication(ctx context.Context, target *service.DeploymentTarget, svc Scalable) error {
	details := target.EventDetails(appErr.StageScaleDown, svc)
	ns := target.Namespace()
	if err := target.Cluster.Client.ScaleReplicas(ctx, ns, svc.ScalingKind(), svc.Selector(), 0); err != nil {
		return appErr.NewK8sScaleReplicas(details, svc.Selector(), ns, 0, err)
	}
	return nil
}
