// Package listener owns native dds_listener_t blocks. Callback installation
// is left to the native library; this package only manages allocation,
// duplication and merging.
package listener

import (
	"fmt"
	"sync"

	errspkg "github.com/drblury/ddsc/internal/runtime/errors"
	"github.com/drblury/ddsc/internal/runtime/hooks"
	"github.com/drblury/ddsc/internal/runtime/native"
	"github.com/drblury/ddsc/internal/runtime/resource"
)

// Listener owns one native listener.
type Listener struct {
	env   resource.Env
	owner *resource.Owner[native.ListenerPtr]
	arg   uintptr
	mu    sync.Mutex
}

// New allocates a listener with no callbacks installed.
func New(env resource.Env) (*Listener, error) {
	return NewWithArg(env, 0)
}

// NewWithArg allocates a listener whose callbacks receive arg.
func NewWithArg(env resource.Env, arg uintptr) (*Listener, error) {
	if err := env.Validate(); err != nil {
		return nil, err
	}
	ptr := env.API.CreateListener(arg)
	if ptr == 0 {
		err := fmt.Errorf("ddsc: create listener: %w", errspkg.ErrOutOfResources)
		env.Fail(hooks.Event{Kind: hooks.KindListener}, err)
		return nil, err
	}
	api := env.API
	owner := resource.Adopt(env, hooks.KindListener, ptr, func(p native.ListenerPtr) error {
		api.DeleteListener(p)
		return nil
	}, hooks.Event{})
	return &Listener{env: env, owner: owner, arg: arg}, nil
}

// ID returns the resource identifier of the listener.
func (l *Listener) ID() string { return l.owner.ID() }

// Ptr returns the native pointer for entity creation. A nil Listener yields
// NULL, meaning "no listener".
func (l *Listener) Ptr() native.ListenerPtr {
	if l == nil {
		return 0
	}
	return l.owner.Handle()
}

// Copy allocates a second listener carrying the same callbacks and argument.
func (l *Listener) Copy() (*Listener, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.owner.Check(); err != nil {
		return nil, err
	}
	dup, err := NewWithArg(l.env, l.arg)
	if err != nil {
		return nil, err
	}
	l.env.API.CopyListener(dup.owner.Handle(), l.owner.Handle())
	return dup, nil
}

// Merge installs every callback of other that l does not have yet. other is
// left unchanged and still owned by the caller.
func (l *Listener) Merge(other *Listener) error {
	if other == nil {
		return nil
	}
	if l == other {
		return l.owner.Check()
	}
	// Lock in ID order so concurrent a.Merge(b) and b.Merge(a) cannot deadlock.
	first, second := l, other
	if second.ID() < first.ID() {
		first, second = second, first
	}
	first.mu.Lock()
	defer first.mu.Unlock()
	second.mu.Lock()
	defer second.mu.Unlock()

	if err := l.owner.Check(); err != nil {
		return err
	}
	if err := other.owner.Check(); err != nil {
		return err
	}
	l.env.API.MergeListener(l.owner.Handle(), other.owner.Handle())
	return nil
}

// Reset removes every callback.
func (l *Listener) Reset() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.owner.Check(); err != nil {
		return err
	}
	l.env.API.ResetListener(l.owner.Handle())
	return nil
}

// Close releases the native listener. It is safe to call more than once.
func (l *Listener) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.owner.Close()
}

// Closed reports whether Close has run.
func (l *Listener) Closed() bool { return l.owner.Closed() }
