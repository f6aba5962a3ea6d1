// Package resource implements exclusive ownership of native resources.
//
// Every wrapper type (participant, topic, QoS block, listener) holds an
// Owner. The Owner releases the native resource exactly once: on Close, or,
// if the wrapper becomes unreachable first, from a runtime cleanup. A failed
// construction never produces an Owner, so nothing is released for it.
package resource

import (
	errspkg "github.com/drblury/ddsc/internal/runtime/errors"
	"github.com/drblury/ddsc/internal/runtime/hooks"
	"github.com/drblury/ddsc/internal/runtime/logging"
	"github.com/drblury/ddsc/internal/runtime/native"
)

// Env carries what every wrapper needs to talk to the native library.
type Env struct {
	API    native.API
	Logger logging.ServiceLogger
	Hooks  hooks.Hooks
}

// NewEnv returns an Env around api with a no-op logger and no hooks.
func NewEnv(api native.API) Env {
	return Env{API: api}
}

// Validate reports ErrAPIRequired when no native API is set.
func (e Env) Validate() error {
	if e.API == nil {
		return errspkg.ErrAPIRequired
	}
	return nil
}

// Log returns the configured logger or a no-op logger.
func (e Env) Log() logging.ServiceLogger {
	if e.Logger == nil {
		return logging.NewNopServiceLogger()
	}
	return e.Logger
}

// WithHooks returns a copy of e whose hooks also run h after the existing ones.
func (e Env) WithHooks(h hooks.Hooks) Env {
	e.Hooks = e.Hooks.Merge(h)
	return e
}

// Fail reports a failed native call for a resource that was never created.
func (e Env) Fail(event hooks.Event, err error) {
	event.Op = hooks.OpCreate
	event.Code = errspkg.CodeOf(err)
	e.Hooks.Failed(event, err)
}
