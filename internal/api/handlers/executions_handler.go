package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/iac-studio/converge/internal/api/middleware"
	"github.com/iac-studio/converge/internal/api/types"
	"github.com/iac-studio/converge/internal/models"
	"github.com/iac-studio/converge/internal/queue/tasks"
	"github.com/iac-studio/converge/internal/repository"
	appErr "github.com/iac-studio/converge/pkg/errors"
	"github.com/iac-studio/converge/pkg/logger"
)

// Enqueuer is the part of the asynq client the API uses.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

type ExecutionsHandler struct {
	repo     repository.ExecutionRepository
	queue    Enqueuer
	validate interface{ Struct(any) error }
}

func NewExecutionsHandler(repo repository.ExecutionRepository, queue Enqueuer, v interface{ Struct(any) error }) *ExecutionsHandler {
	return &ExecutionsHandler{repo: repo, queue: queue, validate: v}
}

// Create records an execution of the environment request and queues it for the workers.
func (h *ExecutionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req types.EnvironmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorStr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeErrorStr(w, http.StatusBadRequest, err.Error())
		return
	}
	if org := middleware.GetOrganizationID(r.Context()); org != "" && org != req.OrganizationID {
		writeJSON(w, http.StatusForbidden, types.APIResponse{Success: false, Error: &types.APIError{
			Code: string(appErr.CodeUnauthorized), Message: "organization does not match token",
		}})
		return
	}

	body, err := json.Marshal(req)
	if err != nil {
		writeError(w, err)
		return
	}
	exec := models.Execution{
		ID:             uuid.New(),
		OrganizationID: req.OrganizationID,
		ClusterID:      req.ClusterID,
		EnvironmentID:  req.Environment.LongID,
		Action:         string(req.Action),
		Status:         models.ExecutionQueued,
		Request:        datatypes.JSON(body),
	}
	if err := h.repo.Create(r.Context(), &exec); err != nil {
		writeError(w, err)
		return
	}

	task, err := tasks.NewEnvironmentTask(tasks.EnvironmentPayload{ExecutionID: exec.ID.String(), Request: req})
	if err != nil {
		writeError(w, appErr.Wrap(err, appErr.CodeInvalid, "cannot build execution task"))
		return
	}
	info, err := h.queue.EnqueueContext(r.Context(), task)
	if err != nil {
		logger.L().Error("enqueue execution failed", zap.String("execution_id", exec.ID.String()), zap.Error(err))
		if uerr := h.repo.UpdateStatus(context.WithoutCancel(r.Context()), exec.ID, models.ExecutionFailed, time.Now()); uerr != nil {
			logger.L().Warn("mark execution failed", zap.Error(uerr))
		}
		writeError(w, appErr.Wrap(err, appErr.CodeUnavailable, "cannot queue execution"))
		return
	}

	logger.L().Info("execution queued",
		zap.String("execution_id", exec.ID.String()),
		zap.String("environment_id", exec.EnvironmentID),
		zap.String("action", exec.Action),
		zap.String("task_id", info.ID),
	)
	writeJSON(w, http.StatusAccepted, types.APIResponse{Success: true, Data: types.ExecutionAccepted{
		ExecutionID: exec.ID.String(),
		TaskID:      info.ID,
		Queue:       info.Queue,
	}})
}

func (h *ExecutionsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeErrorStr(w, http.StatusBadRequest, "invalid execution id")
		return
	}
	exec, err := h.repo.GetWithOutcomes(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.APIResponse{Success: true, Data: exec})
}

// ListByEnvironment returns the latest executions of an environment, newest first.
func (h *ExecutionsHandler) ListByEnvironment(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	items, err := h.repo.ListByEnvironment(r.Context(), chi.URLParam(r, "environmentID"), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.APIResponse{Success: true, Data: items, Meta: &types.Meta{
		RequestID: middleware.GetRequestID(r.Context()),
		Total:     int64(len(items)),
	}})
}
