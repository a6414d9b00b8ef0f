package events

import (
	"sync"

	"github.com/iac-studio/converge/pkg/logger"
	"go.uber.org/zap"
)

// ZapSink writes events to the global zap logger.
type ZapSink struct {
	log *zap.Logger
}

func NewZapSink(l *zap.Logger) *ZapSink {
	if l == nil {
		l = logger.L()
	}
	return &ZapSink{log: l.Named("engine")}
}

func (s *ZapSink) Progress(p ProgressInfo) {
	fields := []zap.Field{
		zap.String("status", string(p.Status)),
		zap.String("scope_kind", string(p.Scope.Kind)),
		zap.String("scope_id", p.Scope.ID),
		zap.String("execution_id", p.ExecutionID),
	}
	switch p.Level {
	case LevelError:
		s.log.Error(p.Message, fields...)
	case LevelWarning:
		s.log.Warn(p.Message, fields...)
	case LevelDebug:
		s.log.Debug(p.Message, fields...)
	default:
		s.log.Info(p.Message, fields...)
	}
}

func (s *ZapSink) Log(e EngineEvent) {
	fields := []zap.Field{
		zap.String("organization_id", e.Details.OrganizationID),
		zap.String("cluster_id", e.Details.ClusterID),
		zap.String("execution_id", e.Details.ExecutionID),
		zap.String("stage", string(e.Details.Stage)),
		zap.String("transmitter_kind", string(e.Details.Transmitter.Kind)),
		zap.String("transmitter_id", e.Details.Transmitter.ID),
		zap.String("transmitter_name", e.Details.Transmitter.Name),
	}
	switch e.Level {
	case LevelError:
		msg := e.Message
		if e.Err != nil {
			fields = append(fields,
				zap.String("tag", e.Err.Tag.String()),
				zap.String("user_log_message", e.Err.UserLogMessage),
			)
			if msg == "" {
				msg = e.Err.UserLogMessage
			}
			if s.log.Core().Enabled(zap.DebugLevel) && e.Err.Underlying != nil {
				s.log.Debug("underlying error",
					append(fields, zap.String("full_details", e.Err.Underlying.Sanitized().FullDetails))...)
			}
		}
		s.log.Error(msg, fields...)
	case LevelWarning:
		s.log.Warn(e.Message, fields...)
	case LevelDebug:
		s.log.Debug(e.Message, fields...)
	default:
		s.log.Info(e.Message, fields...)
	}
}

// Fanout forwards every event to all sinks. A panicking sink is logged and skipped.
type Fanout []Sink

func (f Fanout) Progress(p ProgressInfo) {
	for _, s := range f {
		safeCall(func() { s.Progress(p) })
	}
}

func (f Fanout) Log(e EngineEvent) {
	for _, s := range f {
		safeCall(func() { s.Log(e) })
	}
}

func safeCall(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.L().Error("event sink panicked", zap.Any("panic", r))
		}
	}()
	fn()
}

// Recorder keeps events in memory. It is safe for concurrent use.
type Recorder struct {
	mu       sync.Mutex
	progress []ProgressInfo
	logs     []EngineEvent
}

func (r *Recorder) Progress(p ProgressInfo) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.progress = append(r.progress, p)
}

func (r *Recorder) Log(e EngineEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logs = append(r.logs, e)
}

// ProgressEvents returns a copy of the recorded progress events.
func (r *Recorder) ProgressEvents() []ProgressInfo {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]ProgressInfo(nil), r.progress...)
}

// LogEvents returns a copy of the recorded engine events.
func (r *Recorder) LogEvents() []EngineEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]EngineEvent(nil), r.logs...)
}
