// Package porttest provides testify mocks of the collaborator interfaces.
package porttest

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/iac-studio/converge/internal/models"
	"github.com/iac-studio/converge/internal/port"
)

var (
	_ port.TemplateRenderer = (*Renderer)(nil)
	_ port.ChartManager     = (*ChartManager)(nil)
	_ port.InfraManager     = (*InfraManager)(nil)
	_ port.ClusterClient    = (*ClusterClient)(nil)
)

type Renderer struct {
	mock.Mock
}

func (m *Renderer) Render(sourceDir, targetDir string, data port.TemplateContext) error {
	return m.Called(sourceDir, targetDir, data).Error(0)
}

type ChartManager struct {
	mock.Mock
}

func (m *ChartManager) Upgrade(ctx context.Context, kube port.KubeAccess, chart models.ChartInfo) (models.ReleaseStatus, error) {
	args := m.Called(ctx, kube, chart)
	return args.Get(0).(models.ReleaseStatus), args.Error(1)
}

func (m *ChartManager) Uninstall(ctx context.Context, kube port.KubeAccess, chart models.ChartInfo) error {
	return m.Called(ctx, kube, chart).Error(0)
}

type InfraManager struct {
	mock.Mock
}

func (m *InfraManager) InitValidatePlanApply(ctx context.Context, dir string, env map[string]string, dryRun bool) error {
	return m.Called(ctx, dir, env, dryRun).Error(0)
}

func (m *InfraManager) InitValidateDestroy(ctx context.Context, dir string, env map[string]string, force bool) error {
	return m.Called(ctx, dir, env, force).Error(0)
}

type ClusterClient struct {
	mock.Mock
}

func (m *ClusterClient) CreateNamespace(ctx context.Context, name string, labels map[string]string) error {
	return m.Called(ctx, name, labels).Error(0)
}

func (m *ClusterClient) GetPods(ctx context.Context, namespace, selector string) ([]models.Pod, error) {
	args := m.Called(ctx, namespace, selector)
	if v := args.Get(0); v != nil {
		return v.([]models.Pod), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ClusterClient) DeletePod(ctx context.Context, namespace, name string) error {
	return m.Called(ctx, namespace, name).Error(0)
}

func (m *ClusterClient) DeleteSecret(ctx context.Context, namespace, name string) error {
	return m.Called(ctx, namespace, name).Error(0)
}

func (m *ClusterClient) ScaleReplicas(ctx context.Context, namespace string, kind models.ScalingKind, selector string, replicas int32) error {
	return m.Called(ctx, namespace, kind, selector, replicas).Error(0)
}

func (m *ClusterClient) GetLogs(ctx context.Context, namespace, selector string, tailLines int64) ([]string, error) {
	args := m.Called(ctx, namespace, selector, tailLines)
	if v := args.Get(0); v != nil {
		return v.([]string), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ClusterClient) GetEvents(ctx context.Context, namespace string) ([]models.KubeEvent, error) {
	args := m.Called(ctx, namespace)
	if v := args.Get(0); v != nil {
		return v.([]models.KubeEvent), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ClusterClient) GetStatefulSetVolumes(ctx context.Context, namespace, selector string) (*models.StatefulSetVolumes, error) {
	args := m.Called(ctx, namespace, selector)
	if v := args.Get(0); v != nil {
		return v.(*models.StatefulSetVolumes), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ClusterClient) GetPVCs(ctx context.Context, namespace, selector string) ([]models.VolumeClaim, error) {
	args := m.Called(ctx, namespace, selector)
	if v := args.Get(0); v != nil {
		return v.([]models.VolumeClaim), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ClusterClient) OrphanDeleteStatefulSet(ctx context.Context, namespace, name string) error {
	return m.Called(ctx, namespace, name).Error(0)
}

func (m *ClusterClient) ResizePVC(ctx context.Context, namespace, name string, sizeInGiB int) error {
	return m.Called(ctx, namespace, name, sizeInGiB).Error(0)
}

// StaticProvider is a fixed cloud provider handle.
type StaticProvider struct {
	ProviderKind models.CloudProviderKind
	Credentials  map[string]string
}

func (p StaticProvider) Kind() models.CloudProviderKind { return p.ProviderKind }
func (p StaticProvider) CredentialsEnvironmentVariables() map[string]string {
	return p.Credentials
}
func (p StaticProvider) TemplateContextEnvironmentVariables() map[string]string {
	return map[string]string{"provider_region": "test-1"}
}
func (p StaticProvider) LibDirectoryName() string { return string(p.ProviderKind) }
