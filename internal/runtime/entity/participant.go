// Package entity wraps native DDS entities: domain participants and the
// topics they scope.
package entity

import (
	"fmt"
	"runtime"

	errspkg "github.com/drblury/ddsc/internal/runtime/errors"
	"github.com/drblury/ddsc/internal/runtime/hooks"
	"github.com/drblury/ddsc/internal/runtime/listener"
	"github.com/drblury/ddsc/internal/runtime/native"
	"github.com/drblury/ddsc/internal/runtime/qos"
	"github.com/drblury/ddsc/internal/runtime/resource"
)

// Participant owns a native domain participant.
type Participant struct {
	owner  *resource.Owner[native.Entity]
	domain Domain
}

// NewParticipant creates a participant in domain. q and l may be nil for
// library defaults and no listener. A QoS carrying a setter error is
// rejected before the native library is called.
func NewParticipant(env resource.Env, domain Domain, q *qos.QoS, l *listener.Listener) (*Participant, error) {
	if err := env.Validate(); err != nil {
		return nil, err
	}
	if err := checkOptions(q, l); err != nil {
		return nil, fmt.Errorf("ddsc: create participant: %w", err)
	}

	event := hooks.Event{Kind: hooks.KindParticipant, Domain: uint32(domain.Raw())}
	handle := env.API.CreateParticipant(domain.Raw(), q.Ptr(), l.Ptr())
	runtime.KeepAlive(q)
	runtime.KeepAlive(l)
	if _, err := errspkg.Classify(int32(handle)); err != nil {
		err = fmt.Errorf("ddsc: create participant in domain %s: %w", domain, err)
		env.Fail(event, err)
		return nil, err
	}

	event.Handle = int32(handle)
	owner := resource.Adopt(env, hooks.KindParticipant, handle, deleter(env.API), event)
	return &Participant{owner: owner, domain: domain}, nil
}

// Handle returns the native entity handle.
func (p *Participant) Handle() native.Entity { return p.owner.Handle() }

// ID returns the resource identifier, e.g. "participant-01J...".
func (p *Participant) ID() string { return p.owner.ID() }

// Domain returns the domain the participant was created in.
func (p *Participant) Domain() Domain { return p.domain }

// Close deletes the participant. The native library deletes its topics as
// well. Close is safe to call more than once.
func (p *Participant) Close() { p.owner.Close() }

// Closed reports whether Close has run.
func (p *Participant) Closed() bool { return p.owner.Closed() }

func deleter(api native.API) resource.Deleter[native.Entity] {
	return func(e native.Entity) error {
		_, err := errspkg.Classify(int32(api.Delete(e)))
		return err
	}
}

func checkOptions(q *qos.QoS, l *listener.Listener) error {
	if q != nil {
		if err := q.Err(); err != nil {
			return err
		}
		if q.Closed() {
			return fmt.Errorf("qos: %w", errspkg.ErrClosed)
		}
	}
	if l != nil && l.Closed() {
		return fmt.Errorf("listener: %w", errspkg.ErrClosed)
	}
	return nil
}
