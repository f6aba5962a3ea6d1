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

// Topic owns a native topic. It keeps a non-owning reference to the
// participant that scopes it; closing the participant first deletes the
// native topic too.
type Topic struct {
	owner       *resource.Owner[native.Entity]
	participant *Participant
	name        string
	descriptor  native.TopicDescriptor
}

// NewTopic creates a topic named name for the type described by descriptor.
// The name is handed to the library as a transient native string that is
// freed before NewTopic returns.
func NewTopic(env resource.Env, participant *Participant, descriptor native.TopicDescriptor, name string, q *qos.QoS, l *listener.Listener) (*Topic, error) {
	if err := env.Validate(); err != nil {
		return nil, err
	}
	switch {
	case participant == nil:
		return nil, errspkg.ErrParticipantRequired
	case participant.Closed():
		return nil, fmt.Errorf("ddsc: create topic %q: participant: %w", name, errspkg.ErrClosed)
	case descriptor == 0:
		return nil, errspkg.ErrDescriptorRequired
	case name == "":
		return nil, errspkg.ErrNameRequired
	}
	if err := checkOptions(q, l); err != nil {
		return nil, fmt.Errorf("ddsc: create topic %q: %w", name, err)
	}

	event := hooks.Event{
		Kind:     hooks.KindTopic,
		Name:     name,
		Domain:   uint32(participant.Domain().Raw()),
		ParentID: participant.ID(),
	}
	handle, err := createTopic(env.API, participant.Handle(), descriptor, name, q, l)
	runtime.KeepAlive(participant)
	if err != nil {
		err = fmt.Errorf("ddsc: create topic %q: %w", name, err)
		env.Fail(event, err)
		return nil, err
	}

	event.Handle = int32(handle)
	owner := resource.Adopt(env, hooks.KindTopic, handle, deleter(env.API), event)
	return &Topic{owner: owner, participant: participant, name: name, descriptor: descriptor}, nil
}

func createTopic(api native.API, parent native.Entity, descriptor native.TopicDescriptor, name string, q *qos.QoS, l *listener.Listener) (native.Entity, error) {
	cname, err := api.NewCString(name)
	if err != nil {
		return 0, err
	}
	defer api.FreeCString(cname)

	handle := api.CreateTopic(parent, descriptor, cname, q.Ptr(), l.Ptr())
	runtime.KeepAlive(q)
	runtime.KeepAlive(l)
	if _, err := errspkg.Classify(int32(handle)); err != nil {
		return 0, err
	}
	return handle, nil
}

// Handle returns the native entity handle.
func (t *Topic) Handle() native.Entity { return t.owner.Handle() }

// ID returns the resource identifier, e.g. "topic-01J...".
func (t *Topic) ID() string { return t.owner.ID() }

// Name returns the topic name.
func (t *Topic) Name() string { return t.name }

// Descriptor returns the type descriptor the topic was created with.
func (t *Topic) Descriptor() native.TopicDescriptor { return t.descriptor }

// Participant returns the participant that scopes the topic. The topic does
// not own it.
func (t *Topic) Participant() *Participant { return t.participant }

// Close deletes the topic. Close is safe to call more than once.
func (t *Topic) Close() { t.owner.Close() }

// Closed reports whether Close has run.
func (t *Topic) Closed() bool { return t.owner.Closed() }
