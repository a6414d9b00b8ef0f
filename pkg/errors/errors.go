package errors

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
)

const obfuscatedValue = "xxx"

// CommandError is the low-level failure of a collaborator call (helm, terraform, kube API, file system).
// MessageSafe may be shown to end users. FullDetails may contain sensitive output and is only exposed
// after Sanitized has redacted the environment values it was produced with.
type CommandError struct {
	MessageSafe string
	FullDetails string
	EnvVars     map[string]string
	cause       error
}

// NewCommandError creates a CommandError with explicit full details.
func NewCommandError(messageSafe, fullDetails string, envVars map[string]string) *CommandError {
	return &CommandError{MessageSafe: messageSafe, FullDetails: fullDetails, EnvVars: envVars}
}

// NewCommandErrorFromCause wraps err; its message becomes the full details.
func NewCommandErrorFromCause(messageSafe string, err error) *CommandError {
	if err == nil {
		return &CommandError{MessageSafe: messageSafe}
	}
	var ce *CommandError
	if errors.As(err, &ce) {
		return &CommandError{
			MessageSafe: messageSafe + ": " + ce.MessageSafe,
			FullDetails: ce.FullDetails,
			EnvVars:     ce.EnvVars,
			cause:       err,
		}
	}
	return &CommandError{MessageSafe: messageSafe, FullDetails: err.Error(), cause: err}
}

// WithEnv records the environment the failing command ran with, so its values can be redacted.
func (e *CommandError) WithEnv(envVars map[string]string) *CommandError {
	e.EnvVars = envVars
	return e
}

func (e *CommandError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.MessageSafe
}

func (e *CommandError) Unwrap() error { return e.cause }

// Sanitized returns a copy that only carries the safe message and redacted full details.
// The raw cause and the environment are dropped.
func (e *CommandError) Sanitized() *CommandError {
	if e == nil {
		return nil
	}
	details := e.FullDetails
	if len(e.EnvVars) > 0 {
		values := make([]string, 0, len(e.EnvVars))
		for _, v := range e.EnvVars {
			if v != "" {
				values = append(values, v)
			}
		}
		// longest first, so a secret containing another secret is fully masked
		sort.Slice(values, func(i, j int) bool { return len(values[i]) > len(values[j]) })
		for _, v := range values {
			details = strings.ReplaceAll(details, v, obfuscatedValue)
		}
		keys := make([]string, 0, len(e.EnvVars))
		for k := range e.EnvVars {
			keys = append(keys, k+"="+obfuscatedValue)
		}
		sort.Strings(keys)
		details = strings.TrimSpace(details + " / Env vars: " + strings.Join(keys, " "))
	}
	return &CommandError{MessageSafe: e.MessageSafe, FullDetails: details}
}

// EngineError is a categorized pipeline failure bound to the event details of the step that failed.
type EngineError struct {
	Tag            Tag
	EventDetails   EventDetails
	UserLogMessage string
	Underlying     *CommandError
	Link           *url.URL
	Hint           string
}

// NewEngine creates an EngineError without an underlying command error.
func NewEngine(tag Tag, details EventDetails, userLogMessage string) *EngineError {
	return &EngineError{Tag: tag, EventDetails: details, UserLogMessage: userLogMessage}
}

// WrapEngine creates an EngineError around a collaborator failure. A nil cause yields no underlying error.
func WrapEngine(tag Tag, details EventDetails, userLogMessage string, cause error) *EngineError {
	e := NewEngine(tag, details, userLogMessage)
	if cause == nil {
		return e
	}
	var ce *CommandError
	if errors.As(cause, &ce) {
		e.Underlying = ce
	} else {
		e.Underlying = NewCommandErrorFromCause(userLogMessage, cause)
	}
	return e
}

func (e *EngineError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Underlying != nil {
		return fmt.Sprintf("%s: %s: %s", e.Tag, e.UserLogMessage, e.Underlying.MessageSafe)
	}
	return fmt.Sprintf("%s: %s", e.Tag, e.UserLogMessage)
}

// Unwrap returns the underlying command error for errors.Is/As support.
func (e *EngineError) Unwrap() error {
	if e.Underlying == nil {
		return nil
	}
	return e.Underlying
}

// WithHint attaches a user-facing remediation hint.
func (e *EngineError) WithHint(hint string) *EngineError {
	e.Hint = hint
	return e
}

// WithLink attaches a documentation link.
func (e *EngineError) WithLink(link *url.URL) *EngineError {
	e.Link = link
	return e
}

// Flatten keeps the tag and messages but reduces the underlying error to its sanitized form.
func (e *EngineError) Flatten() *EngineError {
	if e == nil {
		return nil
	}
	out := *e
	out.Underlying = e.Underlying.Sanitized()
	return &out
}

// UnderlyingOrEmpty returns the underlying error, or an empty one when absent.
func (e *EngineError) UnderlyingOrEmpty() *CommandError {
	if e.Underlying == nil {
		return &CommandError{}
	}
	return e.Underlying
}

// IsTag checks if an error is an EngineError with the provided tag (through unwrapping).
func IsTag(err error, tag Tag) bool {
	var ee *EngineError
	if errors.As(err, &ee) {
		return ee.Tag == tag
	}
	return false
}

// AsEngineError is errors.As for EngineError.
func AsEngineError(err error) (*EngineError, bool) {
	var ee *EngineError
	if errors.As(err, &ee) {
		return ee, true
	}
	return nil, false
}
