// Package events defines the structured events the pipelines emit and the sinks that receive them.
package events

import (
	"time"

	"github.com/iac-studio/converge/internal/models"
	appErr "github.com/iac-studio/converge/pkg/errors"
)

type Level string

const (
	LevelDebug   Level = "debug"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Status is the lifecycle notification a progress event belongs to.
type Status string

const (
	DeploymentInProgress Status = "deployment_in_progress"
	DeploymentError      Status = "deployment_error"
	PauseInProgress      Status = "pause_in_progress"
	PauseError           Status = "pause_error"
	DeleteInProgress     Status = "delete_in_progress"
	DeleteError          Status = "delete_error"
)

// InProgressStatus returns the in-progress status of an action.
func InProgressStatus(a models.Action) Status {
	switch a {
	case models.ActionPause:
		return PauseInProgress
	case models.ActionDelete:
		return DeleteInProgress
	default:
		return DeploymentInProgress
	}
}

// ErrorStatus returns the error status of an action.
func ErrorStatus(a models.Action) Status {
	switch a {
	case models.ActionPause:
		return PauseError
	case models.ActionDelete:
		return DeleteError
	default:
		return DeploymentError
	}
}

type Scope struct {
	Kind models.ServiceKind `json:"kind"`
	ID   string             `json:"id"`
}

// ProgressInfo is a user facing lifecycle notification.
type ProgressInfo struct {
	Scope       Scope     `json:"scope"`
	Status      Status    `json:"status"`
	Level       Level     `json:"level"`
	Message     string    `json:"message"`
	ExecutionID string    `json:"execution_id"`
	Timestamp   time.Time `json:"timestamp"`
}

// EngineEvent is an internal log line bound to event details. Err is set for error events.
type EngineEvent struct {
	Level   Level
	Details appErr.EventDetails
	Message string
	Err     *appErr.EngineError
}

func Info(details appErr.EventDetails, msg string) EngineEvent {
	return EngineEvent{Level: LevelInfo, Details: details, Message: msg}
}

func Debug(details appErr.EventDetails, msg string) EngineEvent {
	return EngineEvent{Level: LevelDebug, Details: details, Message: msg}
}

func Warning(details appErr.EventDetails, msg string) EngineEvent {
	return EngineEvent{Level: LevelWarning, Details: details, Message: msg}
}

// Error carries err with an optional safe message.
func Error(err *appErr.EngineError, msg string) EngineEvent {
	return EngineEvent{Level: LevelError, Details: err.EventDetails, Message: msg, Err: err}
}

// Sink receives progress notifications and engine events. Implementations must not block for long
// and must never fail the caller.
type Sink interface {
	Progress(ProgressInfo)
	Log(EngineEvent)
}
