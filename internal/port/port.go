// Package port declares the collaborator capabilities the deployment pipelines consume.
package port

import (
	"context"
	"errors"

	"github.com/iac-studio/converge/internal/models"
)

// ErrReleaseTimeout is returned (wrapped) by a ChartManager when a release did not become ready in time.
var ErrReleaseTimeout = errors.New("helm release timed out")

// TemplateContext holds the values a template tree is rendered with.
type TemplateContext map[string]any

// TemplateRenderer copies a directory tree of templates, rendering each file with the context.
type TemplateRenderer interface {
	Render(sourceDir, targetDir string, data TemplateContext) error
}

// KubeAccess is what a process based collaborator needs to reach the cluster.
type KubeAccess struct {
	KubeconfigPath string
	Env            map[string]string
}

// ChartManager installs and removes helm releases.
type ChartManager interface {
	Upgrade(ctx context.Context, kube KubeAccess, chart models.ChartInfo) (models.ReleaseStatus, error)
	Uninstall(ctx context.Context, kube KubeAccess, chart models.ChartInfo) error
}

// InfraManager runs terraform pipelines in a rendered module directory.
type InfraManager interface {
	InitValidatePlanApply(ctx context.Context, dir string, env map[string]string, dryRun bool) error
	InitValidateDestroy(ctx context.Context, dir string, env map[string]string, force bool) error
}

// ClusterClient is the kubectl-equivalent surface used by the pipelines and diagnostics.
type ClusterClient interface {
	// CreateNamespace is create-if-absent; an existing namespace is a success.
	CreateNamespace(ctx context.Context, name string, labels map[string]string) error
	GetPods(ctx context.Context, namespace, selector string) ([]models.Pod, error)
	DeletePod(ctx context.Context, namespace, name string) error
	// DeleteSecret tolerates an absent secret.
	DeleteSecret(ctx context.Context, namespace, name string) error
	ScaleReplicas(ctx context.Context, namespace string, kind models.ScalingKind, selector string, replicas int32) error
	GetLogs(ctx context.Context, namespace, selector string, tailLines int64) ([]string, error)
	GetEvents(ctx context.Context, namespace string) ([]models.KubeEvent, error)
	GetStatefulSetVolumes(ctx context.Context, namespace, selector string) (*models.StatefulSetVolumes, error)
	GetPVCs(ctx context.Context, namespace, selector string) ([]models.VolumeClaim, error)
	OrphanDeleteStatefulSet(ctx context.Context, namespace, name string) error
	ResizePVC(ctx context.Context, namespace, name string, sizeInGiB int) error
}

// CloudProvider is the handle of the cloud account the cluster runs in.
type CloudProvider interface {
	Kind() models.CloudProviderKind
	// CredentialsEnvironmentVariables are passed to every process based collaborator call.
	CredentialsEnvironmentVariables() map[string]string
	TemplateContextEnvironmentVariables() map[string]string
	LibDirectoryName() string
}
