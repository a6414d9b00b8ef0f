package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/iac-studio/converge/internal/api/types"
	"github.com/iac-studio/converge/internal/events"
	"github.com/iac-studio/converge/internal/models"
	"github.com/iac-studio/converge/internal/port/porttest"
	"github.com/iac-studio/converge/internal/service"
	"github.com/iac-studio/converge/pkg/logger"
)

func TestMain(m *testing.M) {
	if _, err := logger.Init("info", "json"); err != nil {
		panic("failed to init logger: " + err.Error())
	}
	os.Exit(m.Run())
}

type mockExecutionRepository struct {
	mock.Mock
}

func (m *mockExecutionRepository) Create(ctx context.Context, obj *models.Execution) error {
	return m.Called(ctx, obj).Error(0)
}

func (m *mockExecutionRepository) GetByID(ctx context.Context, id any, dest *models.Execution) error {
	return m.Called(ctx, id, dest).Error(0)
}

func (m *mockExecutionRepository) Update(ctx context.Context, obj *models.Execution) error {
	return m.Called(ctx, obj).Error(0)
}

func (m *mockExecutionRepository) Delete(ctx context.Context, id any) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockExecutionRepository) GetWithOutcomes(ctx context.Context, id uuid.UUID) (*models.Execution, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*models.Execution), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockExecutionRepository) ListByEnvironment(ctx context.Context, environmentID string, limit int) ([]models.Execution, error) {
	args := m.Called(ctx, environmentID, limit)
	if v := args.Get(0); v != nil {
		return v.([]models.Execution), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockExecutionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string, at time.Time) error {
	return m.Called(ctx, id, status, at).Error(0)
}

func (m *mockExecutionRepository) AddOutcome(ctx context.Context, outcome *models.ServiceOutcome) error {
	return m.Called(ctx, outcome).Error(0)
}

var (
	executionID = uuid.MustParse("e0000000-0000-4000-8000-000000000001")
	appLongID   = "0badcafe-0000-4000-8000-000000000001"
	routerID    = "0badf00d-0000-4000-8000-000000000002"
)

func newRuntime(t *testing.T, client *porttest.ClusterClient) Runtime {
	return Runtime{
		Cluster:          &service.Cluster{ID: "c", Name: "prod", Region: "eu-west-3", Client: client},
		CloudProvider:    porttest.StaticProvider{ProviderKind: models.ProviderAWS},
		Sink:             &events.Recorder{},
		WorkspaceRootDir: t.TempDir(),
		LibRootDir:       "/lib",
	}
}

func request(action models.Action) types.EnvironmentRequest {
	return types.EnvironmentRequest{
		OrganizationID: "org",
		ClusterID:      "c",
		Action:         action,
		Environment:    models.Environment{ID: "env", LongID: "env-long", Namespace: "ns1"},
	}
}

func withApp(r types.EnvironmentRequest) types.EnvironmentRequest {
	r.Applications = append(r.Applications, types.ApplicationRequest{
		LongID:        appLongID,
		Name:          "web",
		Version:       "abc123",
		Image:         "registry.example.com/web:abc123",
		Ports:         []types.PortRequest{{LongID: "p1", Port: 8080}},
		TotalCPUs:     "250m",
		TotalRAMInMiB: 256,
		MinInstances:  1,
		MaxInstances:  1,
	})
	return r
}

func withRouter(r types.EnvironmentRequest) types.EnvironmentRequest {
	r.Routers = append(r.Routers, types.RouterRequest{
		LongID:        routerID,
		Name:          "edge",
		DefaultDomain: "edge.example.com",
	})
	return r
}

func task(t *testing.T, req types.EnvironmentRequest) *asynq.Task {
	tk, err := NewEnvironmentTask(EnvironmentPayload{ExecutionID: executionID.String(), Request: req})
	require.NoError(t, err)
	return tk
}

func expectStatuses(repo *mockExecutionRepository, final string) {
	repo.On("UpdateStatus", mock.Anything, executionID, models.ExecutionRunning, mock.AnythingOfType("time.Time")).Return(nil).Once()
	repo.On("UpdateStatus", mock.Anything, executionID, final, mock.AnythingOfType("time.Time")).Return(nil).Once()
}

func TestNewEnvironmentTaskTypes(t *testing.T) {
	tests := []struct {
		action models.Action
		want   string
	}{
		{models.ActionCreate, TypeEnvironmentDeploy},
		{models.ActionPause, TypeEnvironmentPause},
		{models.ActionDelete, TypeEnvironmentDelete},
	}
	for _, tt := range tests {
		t.Run(string(tt.action), func(t *testing.T) {
			tk := task(t, request(tt.action))
			assert.Equal(t, tt.want, tk.Type())

			var p EnvironmentPayload
			require.NoError(t, json.Unmarshal(tk.Payload(), &p))
			assert.Equal(t, executionID.String(), p.ExecutionID)
			assert.Equal(t, tt.action, p.Request.Action)
		})
	}

	_, err := NewEnvironmentTask(EnvironmentPayload{Request: request(models.ActionNothing)})
	assert.Error(t, err)
}

func TestHandleEnvironmentInvalidPayload(t *testing.T) {
	repo := new(mockExecutionRepository)
	h := NewEnvironmentTaskHandler(newRuntime(t, nil), repo, 2)

	err := h.HandleEnvironment(context.Background(), asynq.NewTask(TypeEnvironmentDeploy, []byte("{")))
	assert.ErrorIs(t, err, asynq.SkipRetry)

	err = h.HandleEnvironment(context.Background(), asynq.NewTask(TypeEnvironmentDeploy, []byte(`{"execution_id":"nope"}`)))
	assert.ErrorIs(t, err, asynq.SkipRetry)
	repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleEnvironmentEmpty(t *testing.T) {
	repo := new(mockExecutionRepository)
	expectStatuses(repo, models.ExecutionSucceeded)
	h := NewEnvironmentTaskHandler(newRuntime(t, nil), repo, 2)

	require.NoError(t, h.HandleEnvironment(context.Background(), task(t, request(models.ActionCreate))))
	repo.AssertExpectations(t)
	repo.AssertNotCalled(t, "AddOutcome", mock.Anything, mock.Anything)
}

func TestHandleEnvironmentRecordsDeserializationFailure(t *testing.T) {
	req := withApp(request(models.ActionCreate))
	req.Applications[0].LongID = "not-a-uuid"

	repo := new(mockExecutionRepository)
	expectStatuses(repo, models.ExecutionFailed)
	var outcome *models.ServiceOutcome
	repo.On("AddOutcome", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		outcome = args.Get(1).(*models.ServiceOutcome)
	}).Return(nil).Once()

	h := NewEnvironmentTaskHandler(newRuntime(t, nil), repo, 2)
	err := h.HandleEnvironment(context.Background(), task(t, req))
	assert.ErrorIs(t, err, asynq.SkipRetry)
	repo.AssertExpectations(t)

	require.NotNil(t, outcome)
	assert.Equal(t, executionID, outcome.ExecutionID)
	assert.Equal(t, "env-long", outcome.ServiceID)
	assert.Equal(t, "environment", outcome.ServiceType)
	assert.False(t, outcome.Succeeded)
	assert.Equal(t, "INVALID_ENGINE_API_INPUT_CANNOT_BE_DESERIALIZED", outcome.ErrorTag)
}

func TestHandleEnvironmentPauseApplication(t *testing.T) {
	client := new(porttest.ClusterClient)
	client.On("ScaleReplicas", mock.Anything, "ns1", models.ScalingDeployment, mock.Anything, int32(0)).Return(nil).Once()

	repo := new(mockExecutionRepository)
	expectStatuses(repo, models.ExecutionSucceeded)
	var outcome *models.ServiceOutcome
	repo.On("AddOutcome", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		outcome = args.Get(1).(*models.ServiceOutcome)
	}).Return(nil).Once()

	h := NewEnvironmentTaskHandler(newRuntime(t, client), repo, 2)
	require.NoError(t, h.HandleEnvironment(context.Background(), task(t, withApp(request(models.ActionPause)))))
	client.AssertExpectations(t)
	repo.AssertExpectations(t)

	require.NotNil(t, outcome)
	assert.True(t, outcome.Succeeded)
	assert.Equal(t, "z0badcafe", outcome.ServiceID)
	assert.Equal(t, "Application", outcome.ServiceType)
	assert.Equal(t, "PAUSE", outcome.Action)
	assert.Empty(t, outcome.ErrorTag)
}

func TestHandleEnvironmentStopsAfterFailingTier(t *testing.T) {
	client := new(porttest.ClusterClient)
	client.On("ScaleReplicas", mock.Anything, "ns1", models.ScalingDeployment, mock.Anything, int32(0)).
		Return(errors.New("forbidden")).Once()
	client.On("GetLogs", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("no logs")).Maybe()
	client.On("GetPods", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("no pods")).Maybe()
	client.On("GetEvents", mock.Anything, mock.Anything).Return(nil, errors.New("no events")).Maybe()

	repo := new(mockExecutionRepository)
	expectStatuses(repo, models.ExecutionFailed)
	var outcomes []*models.ServiceOutcome
	repo.On("AddOutcome", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		outcomes = append(outcomes, args.Get(1).(*models.ServiceOutcome))
	}).Return(nil)

	req := withRouter(withApp(request(models.ActionPause)))
	h := NewEnvironmentTaskHandler(newRuntime(t, client), repo, 2)
	err := h.HandleEnvironment(context.Background(), task(t, req))
	assert.ErrorIs(t, err, asynq.SkipRetry)
	client.AssertExpectations(t)
	repo.AssertExpectations(t)

	require.Len(t, outcomes, 1)
	assert.Equal(t, "z0badcafe", outcomes[0].ServiceID)
	assert.False(t, outcomes[0].Succeeded)
	assert.Equal(t, "K8S_SCALE_REPLICAS", outcomes[0].ErrorTag)
}

func TestTiersOrder(t *testing.T) {
	execCtx := models.Context{ProviderKind: models.ProviderAWS, ExecutionID: "exec", WorkspaceRootDir: t.TempDir(), LibRootDir: "/lib"}

	for _, tt := range []struct {
		action models.Action
		want   []string
	}{
		{models.ActionCreate, []string{"Application", "Router"}},
		{models.ActionDelete, []string{"Router", "Application"}},
	} {
		t.Run(string(tt.action), func(t *testing.T) {
			set, err := withRouter(withApp(request(tt.action))).ToDomain(execCtx)
			require.NoError(t, err)

			var got []string
			for _, tier := range Tiers(set, tt.action) {
				for _, svc := range tier {
					got = append(got, svc.ServiceType().Name())
				}
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
