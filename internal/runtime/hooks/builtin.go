package hooks

import (
	"github.com/drblury/ddsc/internal/runtime/logging"
)

// LoggingHooks returns hooks that log lifecycle events. Creation and deletion
// are logged at debug level, native failures at error level.
func LoggingHooks(logger logging.ServiceLogger) Hooks {
	return Hooks{
		OnCreate: func(e Event) {
			logger.Debug("Native resource created", fields(e))
		},
		OnDelete: func(e Event) {
			logger.Debug("Native resource deleted", fields(e))
		},
		OnError: func(e Event, err error) {
			logger.Error("Native call failed", err, fields(e))
		},
	}
}

// MetricsHooks returns hooks that forward the resource kind to the supplied
// recorders.
func MetricsHooks(onCreate, onDelete func(kind string), onError func(kind string, op Op, code int32)) Hooks {
	return Hooks{
		OnCreate: func(e Event) {
			if onCreate != nil {
				onCreate(e.Kind)
			}
		},
		OnDelete: func(e Event) {
			if onDelete != nil {
				onDelete(e.Kind)
			}
		},
		OnError: func(e Event, err error) {
			if onError != nil {
				onError(e.Kind, e.Op, e.Code)
			}
		},
	}
}

// AlertingHooks returns hooks that only react to native failures.
func AlertingHooks(alertFunc func(e Event, err error)) Hooks {
	return Hooks{
		OnError: alertFunc,
	}
}

func fields(e Event) logging.LogFields {
	f := logging.LogFields{
		"kind": e.Kind,
		"op":   string(e.Op),
	}
	if e.ID != "" {
		f["resource_id"] = e.ID
	}
	if e.Handle != 0 {
		f["handle"] = e.Handle
	}
	if e.Name != "" {
		f["topic"] = e.Name
	}
	if e.Kind == KindParticipant {
		f["domain"] = e.Domain
	}
	if e.ParentID != "" {
		f["participant_id"] = e.ParentID
	}
	if e.Code != 0 {
		f["code"] = e.Code
	}
	return f
}
