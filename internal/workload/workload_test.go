package workload

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/iac-studio/converge/internal/events"
	"github.com/iac-studio/converge/internal/models"
	"github.com/iac-studio/converge/internal/port/porttest"
	"github.com/iac-studio/converge/internal/service"
	appErr "github.com/iac-studio/converge/pkg/errors"
	"github.com/iac-studio/converge/pkg/logger"
)

func TestMain(m *testing.M) {
	if _, err := logger.Init("info", "json"); err != nil {
		panic("failed to init logger: " + err.Error())
	}
	os.Exit(m.Run())
}

var appLongID = uuid.MustParse("0badcafe-0000-4000-8000-000000000001")

func execContext(t *testing.T) models.Context {
	return models.Context{
		ProviderKind:     models.ProviderAWS,
		ExecutionID:      "exec-7",
		WorkspaceRootDir: t.TempDir(),
		LibRootDir:       "/lib",
	}
}

func appParams() ApplicationParams {
	return ApplicationParams{
		LongID:        appLongID,
		Action:        models.ActionCreate,
		Name:          "web",
		Version:       "abc123",
		Image:         "registry.example.com/web:abc123",
		Ports:         []models.Port{{LongID: "p1", Port: 8080, PublicPort: 443, PubliclyAccessible: true}},
		EnvVars:       []models.EnvVar{{Key: "MODE", Value: "prod"}},
		TotalCPUs:     "250m",
		TotalRAMInMiB: 256,
		MinInstances:  1,
		MaxInstances:  3,
	}
}

func target(client *porttest.ClusterClient) (*service.DeploymentTarget, *events.Recorder) {
	sink := &events.Recorder{}
	return &service.DeploymentTarget{
		Context:       models.Context{ExecutionID: "exec-7"},
		Cluster:       &service.Cluster{ID: "c", Name: "prod", Client: client},
		Environment:   models.Environment{Namespace: "ns1"},
		CloudProvider: porttest.StaticProvider{ProviderKind: models.ProviderAWS},
		Sink:          sink,
	}, sink
}

func TestNewApplicationValidation(t *testing.T) {
	p := appParams()
	p.Image = ""
	_, err := NewApplication(execContext(t), p)
	assert.True(t, appErr.IsTag(err, appErr.TagInvalidEnginePayload))

	p = appParams()
	p.MinInstances = 5
	_, err = NewApplication(execContext(t), p)
	assert.True(t, appErr.IsTag(err, appErr.TagInvalidEnginePayload))
}

func TestApplicationAccessors(t *testing.T) {
	app, err := NewApplication(execContext(t), appParams())
	require.NoError(t, err)

	assert.Equal(t, "z0badcafe", app.ID())
	assert.Equal(t, "application-z0badcafe", app.HelmReleaseName())
	assert.Equal(t, "/lib/common/charts/application", app.HelmChartDir())
	assert.Equal(t, uint16(8080), *app.PrivatePort())
	assert.True(t, app.PubliclyAccessible())
	assert.Equal(t, models.ScalingDeployment, app.ScalingKind())
	assert.Equal(t, "250m", app.CPUBurst())

	p := appParams()
	p.Storage = []models.Storage{{ID: "s1", Name: "data", SizeInGiB: 5, MountPoint: "/data"}}
	stateful, err := NewApplication(execContext(t), p)
	require.NoError(t, err)
	assert.Equal(t, models.ScalingStatefulSet, stateful.ScalingKind())
}

func TestApplicationTemplateContext(t *testing.T) {
	app, err := NewApplication(execContext(t), appParams())
	require.NoError(t, err)
	tgt, _ := target(nil)

	ctx, err := app.TemplateContext(tgt)
	require.NoError(t, err)
	assert.Equal(t, "registry.example.com/web:abc123", ctx["image_name_with_tag"])
	assert.Equal(t, []map[string]string{{"key": "MODE", "value": "prod"}}, ctx["environment_variables"])
	assert.Equal(t, true, ctx["is_private_port"])
	assert.Equal(t, uint16(8080), ctx["private_port"])
	assert.Equal(t, false, ctx["is_statefulset"])
}

func TestApplicationPauseScalesDown(t *testing.T) {
	p := appParams()
	p.Action = models.ActionPause
	app, err := NewApplication(execContext(t), p)
	require.NoError(t, err)

	client := new(porttest.ClusterClient)
	client.On("ScaleReplicas", mock.Anything, "ns1", models.ScalingDeployment, app.Selector(), int32(0)).Return(nil).Once()
	tgt, sink := target(client)

	require.NoError(t, service.ExecAction(context.Background(), app, tgt))
	client.AssertExpectations(t)

	progress := sink.ProgressEvents()
	require.Len(t, progress, 2)
	assert.Equal(t, events.PauseInProgress, progress[0].Status)
	assert.Equal(t, "Pause succeeded for application web", progress[1].Message)
}

func TestApplicationDeleteFailureIsReported(t *testing.T) {
	p := appParams()
	p.Action = models.ActionDelete
	app, err := NewApplication(execContext(t), p)
	require.NoError(t, err)

	client := new(porttest.ClusterClient)
	client.On("GetLogs", mock.Anything, "ns1", app.Selector(), mock.Anything).Return([]string{}, nil)
	client.On("GetPods", mock.Anything, "ns1", app.Selector()).Return([]models.Pod{}, nil)
	client.On("GetEvents", mock.Anything, "ns1").Return([]models.KubeEvent{}, nil)
	charts := new(porttest.ChartManager)
	charts.On("Uninstall", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("context deadline exceeded"))

	tgt, sink := target(client)
	tgt.Charts = charts

	err = service.ExecAction(context.Background(), app, tgt)
	require.Error(t, err)
	assert.True(t, appErr.IsTag(err, appErr.TagHelmChartUninstallError))

	progress := sink.ProgressEvents()
	require.Len(t, progress, 3)
	assert.Equal(t, events.DeleteError, progress[1].Status)
	assert.Equal(t, "<no debug logs>", progress[2].Message)
}

func TestRouterRoutesResolveApplications(t *testing.T) {
	execCtx := execContext(t)
	app, err := NewApplication(execCtx, appParams())
	require.NoError(t, err)

	router, err := NewRouter(execCtx, RouterParams{
		LongID:        uuid.MustParse("0badf00d-0000-4000-8000-000000000002"),
		Action:        models.ActionCreate,
		Name:          "edge",
		DefaultDomain: "edge.example.com",
		CustomDomains: []models.CustomDomain{{Domain: "www.example.com", TargetDomain: "edge.example.com"}},
		Routes:        []models.Route{{Path: "/", ServiceLongID: appLongID.String()}},
	}, []*Application{app})
	require.NoError(t, err)
	assert.Empty(t, router.Selector())

	tgt, _ := target(nil)
	ctx, err := router.TemplateContext(tgt)
	require.NoError(t, err)
	assert.Equal(t, []map[string]any{{"path": "/", "application_name": "web", "application_port": uint16(8080)}}, ctx["routes"])
	assert.Equal(t, true, ctx["has_custom_domains"])
}

func TestRouterUnknownRouteTarget(t *testing.T) {
	router, err := NewRouter(execContext(t), RouterParams{
		LongID: uuid.New(),
		Name:   "edge",
		Routes: []models.Route{{Path: "/api", ServiceLongID: uuid.NewString()}},
	}, nil)
	require.NoError(t, err)

	tgt, _ := target(nil)
	_, err = router.TemplateContext(tgt)
	assert.True(t, appErr.IsTag(err, appErr.TagRouterFailedToDeploy))
}

func TestRouterCreateDoesNotWaitForPods(t *testing.T) {
	router, err := NewRouter(execContext(t), RouterParams{LongID: uuid.New(), Action: models.ActionCreate, Name: "edge"}, nil)
	require.NoError(t, err)

	client := new(porttest.ClusterClient)
	client.On("CreateNamespace", mock.Anything, "ns1", mock.Anything).Return(nil)
	renderer := new(porttest.Renderer)
	renderer.On("Render", router.HelmChartDir(), router.WorkspaceDirectory(), mock.Anything).Return(nil)
	charts := new(porttest.ChartManager)
	charts.On("Upgrade", mock.Anything, mock.Anything, mock.Anything).Return(models.ReleaseStatus{}, nil)

	tgt, _ := target(client)
	tgt.Renderer = renderer
	tgt.Charts = charts

	require.NoError(t, service.ExecAction(context.Background(), router, tgt))
	client.AssertNotCalled(t, "GetPods", mock.Anything, mock.Anything, mock.Anything)
}
