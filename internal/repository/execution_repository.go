package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/iac-studio/converge/internal/models"
	appErr "github.com/iac-studio/converge/pkg/errors"
)

// ExecutionRepository stores environment executions and the outcome of each of their services.
type ExecutionRepository interface {
	BaseRepository[models.Execution]
	GetWithOutcomes(ctx context.Context, id uuid.UUID) (*models.Execution, error)
	ListByEnvironment(ctx context.Context, environmentID string, limit int) ([]models.Execution, error)
	// UpdateStatus stamps StartedAt when the execution starts running and FinishedAt on a terminal status.
	UpdateStatus(ctx context.Context, id uuid.UUID, status string, at time.Time) error
	AddOutcome(ctx context.Context, outcome *models.ServiceOutcome) error
}

type executionRepository struct {
	BaseRepository[models.Execution]
	db *gorm.DB
}

func NewExecutionRepository(db *gorm.DB) ExecutionRepository {
	return &executionRepository{BaseRepository: NewBaseRepository[models.Execution](db), db: db}
}

func (r *executionRepository) GetWithOutcomes(ctx context.Context, id uuid.UUID) (*models.Execution, error) {
	var e models.Execution
	err := r.db.WithContext(ctx).
		Preload("Outcomes", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		First(&e, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErr.New(appErr.CodeNotFound, "execution not found")
		}
		return nil, appErr.Wrap(err, appErr.CodeInternal, "get execution failed")
	}
	return &e, nil
}

func (r *executionRepository) ListByEnvironment(ctx context.Context, environmentID string, limit int) ([]models.Execution, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var out []models.Execution
	err := r.db.WithContext(ctx).
		Where("environment_id = ?", environmentID).
		Order("created_at DESC").
		Limit(limit).
		Preload("Outcomes").
		Find(&out).Error
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list executions failed")
	}
	return out, nil
}

func (r *executionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string, at time.Time) error {
	updates := map[string]any{"status": status}
	switch status {
	case models.ExecutionRunning:
		updates["started_at"] = at
	case models.ExecutionSucceeded, models.ExecutionFailed:
		updates["finished_at"] = at
	}

	res := r.db.WithContext(ctx).Model(&models.Execution{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return appErr.Wrap(res.Error, appErr.CodeInternal, "update execution status failed")
	}
	if res.RowsAffected == 0 {
		return appErr.New(appErr.CodeNotFound, "execution not found")
	}
	return nil
}

func (r *executionRepository) AddOutcome(ctx context.Context, outcome *models.ServiceOutcome) error {
	if err := r.db.WithContext(ctx).Create(outcome).Error; err != nil {
		return wrapWriteError(err, "add service outcome failed")
	}
	return nil
}
