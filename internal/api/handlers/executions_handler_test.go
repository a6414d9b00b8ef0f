package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/iac-studio/converge/internal/api/middleware"
	"github.com/iac-studio/converge/internal/api/types"
	"github.com/iac-studio/converge/internal/models"
	"github.com/iac-studio/converge/internal/queue/tasks"
	appErr "github.com/iac-studio/converge/pkg/errors"
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

type fakeQueue struct {
	tasks []*asynq.Task
	err   error
}

func (q *fakeQueue) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	if q.err != nil {
		return nil, q.err
	}
	q.tasks = append(q.tasks, task)
	return &asynq.TaskInfo{ID: "task-1", Queue: tasks.QueueEnvironments, Type: task.Type()}, nil
}

func newServer(h *ExecutionsHandler, org string) http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := context.WithValue(req.Context(), middleware.OrganizationIDKey, org)
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
	r.Post("/executions", h.Create)
	r.Get("/executions/{id}", h.Get)
	r.Get("/environments/{environmentID}/executions", h.ListByEnvironment)
	return r
}

func body(t *testing.T, req types.EnvironmentRequest) *bytes.Reader {
	b, err := json.Marshal(req)
	require.NoError(t, err)
	return bytes.NewReader(b)
}

func validRequest() types.EnvironmentRequest {
	return types.EnvironmentRequest{
		OrganizationID: "org-1",
		ClusterID:      "cluster-1",
		Action:         models.ActionCreate,
		Environment:    models.Environment{LongID: "env-1", Namespace: "ns1"},
	}
}

func TestCreateExecutionQueuesTask(t *testing.T) {
	repo := new(mockExecutionRepository)
	var created *models.Execution
	repo.On("Create", mock.Anything, mock.AnythingOfType("*models.Execution")).Run(func(args mock.Arguments) {
		created = args.Get(1).(*models.Execution)
	}).Return(nil).Once()
	queue := &fakeQueue{}
	h := NewExecutionsHandler(repo, queue, validator.New(validator.WithRequiredStructEnabled()))

	rr := httptest.NewRecorder()
	newServer(h, "org-1").ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/executions", body(t, validRequest())))

	require.Equal(t, http.StatusAccepted, rr.Code)
	repo.AssertExpectations(t)
	require.NotNil(t, created)
	assert.Equal(t, models.ExecutionQueued, created.Status)
	assert.Equal(t, "env-1", created.EnvironmentID)
	assert.Equal(t, "CREATE", created.Action)

	require.Len(t, queue.tasks, 1)
	assert.Equal(t, tasks.TypeEnvironmentDeploy, queue.tasks[0].Type())

	var resp struct {
		Data types.ExecutionAccepted `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, created.ID.String(), resp.Data.ExecutionID)
	assert.Equal(t, "task-1", resp.Data.TaskID)
}

func TestCreateExecutionRejects(t *testing.T) {
	invalid := validRequest()
	invalid.Action = models.ActionNothing

	tests := []struct {
		name string
		org  string
		body *bytes.Reader
		want int
	}{
		{"bad json", "", bytes.NewReader([]byte("{")), http.StatusBadRequest},
		{"invalid action", "", body(t, invalid), http.StatusBadRequest},
		{"other organization", "org-2", body(t, validRequest()), http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockExecutionRepository)
			h := NewExecutionsHandler(repo, &fakeQueue{}, validator.New(validator.WithRequiredStructEnabled()))

			rr := httptest.NewRecorder()
			newServer(h, tt.org).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/executions", tt.body))
			assert.Equal(t, tt.want, rr.Code)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestCreateExecutionEnqueueFailure(t *testing.T) {
	repo := new(mockExecutionRepository)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
	repo.On("UpdateStatus", mock.Anything, mock.Anything, models.ExecutionFailed, mock.Anything).Return(nil).Once()
	h := NewExecutionsHandler(repo, &fakeQueue{err: errors.New("redis down")}, validator.New())

	rr := httptest.NewRecorder()
	newServer(h, "").ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/executions", body(t, validRequest())))

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	repo.AssertExpectations(t)
}

func TestGetExecution(t *testing.T) {
	id := uuid.New()
	repo := new(mockExecutionRepository)
	repo.On("GetWithOutcomes", mock.Anything, id).Return(&models.Execution{ID: id, Status: models.ExecutionSucceeded}, nil).Once()
	repo.On("GetWithOutcomes", mock.Anything, mock.Anything).Return(nil, appErr.New(appErr.CodeNotFound, "execution not found"))
	h := NewExecutionsHandler(repo, &fakeQueue{}, validator.New())
	srv := newServer(h, "")

	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/executions/"+id.String(), nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), id.String())

	rr = httptest.NewRecorder()
	srv.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/executions/"+uuid.NewString(), nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = httptest.NewRecorder()
	srv.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/executions/nope", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestListExecutionsByEnvironment(t *testing.T) {
	repo := new(mockExecutionRepository)
	repo.On("ListByEnvironment", mock.Anything, "env-1", 5).Return([]models.Execution{{ID: uuid.New()}, {ID: uuid.New()}}, nil).Once()
	h := NewExecutionsHandler(repo, &fakeQueue{}, validator.New())

	rr := httptest.NewRecorder()
	newServer(h, "").ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/environments/env-1/executions?limit=5", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"total":2`)
	repo.AssertExpectations(t)
}
