package logging

import (
	"io"
	"log/slog"
	"strings"

	"github.com/ThreeDotsLabs/watermill"
)

// LogFields are the structured attributes attached to a log line, such as the
// entity kind and native handle.
type LogFields map[string]any

// ServiceLogger is the logger the runtime writes to. Its method set mirrors
// watermill.LoggerAdapter, so the same logger also serves the events sinks.
type ServiceLogger interface {
	With(fields LogFields) ServiceLogger
	Debug(msg string, fields LogFields)
	Info(msg string, fields LogFields)
	Error(msg string, err error, fields LogFields)
	Trace(msg string, fields LogFields)
}

// LevelTrace sits below slog.LevelDebug.
const LevelTrace = watermill.LevelTrace

// EventsComponent tags every line a sink transport logs.
const EventsComponent = "events"

// ParseLevel maps a level name onto a slog level. Empty and unknown names
// yield slog.LevelInfo; config validation rejects the unknown ones first.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return LevelTrace
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewSlogServiceLogger writes to log. Trace lines are emitted at LevelTrace.
func NewSlogServiceLogger(log *slog.Logger) ServiceLogger {
	if log == nil {
		panic("ddsc: slog logger cannot be nil")
	}
	return serviceLogger{inner: watermill.NewSlogLogger(log)}
}

// NewTextServiceLogger is the runtime's default logger: slog text lines on w,
// filtered at the named level.
func NewTextServiceLogger(w io.Writer, level string) ServiceLogger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)})
	return NewSlogServiceLogger(slog.New(handler))
}

// NewNopServiceLogger returns a ServiceLogger that discards everything.
func NewNopServiceLogger() ServiceLogger {
	return serviceLogger{inner: watermill.NopLogger{}}
}

// NewWatermillAdapter hands log to the events sink transports. Their Info
// lines are demoted to Debug and every line carries component=events, so a
// chatty broker client does not drown the entity lifecycle log.
func NewWatermillAdapter(log ServiceLogger) watermill.LoggerAdapter {
	if log == nil {
		panic("ddsc: ServiceLogger cannot be nil")
	}
	return sinkLogger{base: log.With(LogFields{"component": EventsComponent})}
}

type serviceLogger struct {
	inner watermill.LoggerAdapter
}

func (s serviceLogger) With(fields LogFields) ServiceLogger {
	if len(fields) == 0 {
		return s
	}
	return serviceLogger{inner: s.inner.With(watermill.LogFields(fields))}
}

func (s serviceLogger) Debug(msg string, fields LogFields) {
	s.inner.Debug(msg, watermill.LogFields(fields))
}

func (s serviceLogger) Info(msg string, fields LogFields) {
	s.inner.Info(msg, watermill.LogFields(fields))
}

func (s serviceLogger) Error(msg string, err error, fields LogFields) {
	s.inner.Error(msg, err, watermill.LogFields(fields))
}

func (s serviceLogger) Trace(msg string, fields LogFields) {
	s.inner.Trace(msg, watermill.LogFields(fields))
}

type sinkLogger struct {
	base ServiceLogger
}

func (s sinkLogger) Error(msg string, err error, fields watermill.LogFields) {
	s.base.Error(msg, err, LogFields(fields))
}

func (s sinkLogger) Info(msg string, fields watermill.LogFields) {
	s.base.Debug(msg, LogFields(fields))
}

func (s sinkLogger) Debug(msg string, fields watermill.LogFields) {
	s.base.Debug(msg, LogFields(fields))
}

func (s sinkLogger) Trace(msg string, fields watermill.LogFields) {
	s.base.Trace(msg, LogFields(fields))
}

func (s sinkLogger) With(fields watermill.LogFields) watermill.LoggerAdapter {
	if len(fields) == 0 {
		return s
	}
	return sinkLogger{base: s.base.With(LogFields(fields))}
}
