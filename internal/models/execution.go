package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	ExecutionQueued    = "queued"
	ExecutionRunning   = "running"
	ExecutionSucceeded = "succeeded"
	ExecutionFailed    = "failed"
)

// Execution is one environment deployment request processed by the worker.
type Execution struct {
	ID             uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	OrganizationID string           `gorm:"type:varchar(64);index;not null" json:"organization_id" validate:"required"`
	ClusterID      string           `gorm:"type:varchar(64);index;not null" json:"cluster_id" validate:"required"`
	EnvironmentID  string           `gorm:"type:varchar(64);index;not null" json:"environment_id" validate:"required"`
	Action         string           `gorm:"type:varchar(16);not null" json:"action" validate:"required,oneof=CREATE PAUSE DELETE"`
	Status         string           `gorm:"type:varchar(32);index;not null" json:"status" validate:"required,oneof=queued running succeeded failed"`
	Request        datatypes.JSON   `gorm:"type:jsonb" json:"request"`
	StartedAt      *time.Time       `json:"started_at,omitempty"`
	FinishedAt     *time.Time       `json:"finished_at,omitempty"`
	Outcomes       []ServiceOutcome `gorm:"foreignKey:ExecutionID" json:"outcomes,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
	DeletedAt      gorm.DeletedAt   `gorm:"index" json:"-"`
}

func (e *Execution) BeforeCreate(*gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// ServiceOutcome is the terminal outcome of one service in an execution.
type ServiceOutcome struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ExecutionID uuid.UUID `gorm:"type:uuid;index;not null" json:"execution_id"`
	ServiceID   string    `gorm:"type:varchar(64);index;not null" json:"service_id"`
	ServiceName string    `gorm:"type:varchar(255)" json:"service_name"`
	ServiceType string    `gorm:"type:varchar(64)" json:"service_type"`
	Action      string    `gorm:"type:varchar(16)" json:"action"`
	Succeeded   bool      `json:"succeeded"`
	ErrorTag    string    `gorm:"type:varchar(128)" json:"error_tag,omitempty"`
	Message     string    `gorm:"type:text" json:"message,omitempty"`
	Hint        string    `gorm:"type:text" json:"hint,omitempty"`
	DurationMs  int64     `json:"duration_ms"`
	CreatedAt   time.Time `json:"created_at"`
}

func (o *ServiceOutcome) BeforeCreate(*gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}
