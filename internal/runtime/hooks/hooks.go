// Package hooks exposes callbacks for the lifecycle of native resources:
// creation, deletion and native failures of participants, topics, QoS
// blocks and listeners.
package hooks

import (
	"time"
)

// Op names the lifecycle step an Event describes.
type Op string

const (
	OpCreate Op = "create"
	OpDelete Op = "delete"
)

// Resource kinds carried in Event.Kind.
const (
	KindParticipant = "participant"
	KindTopic       = "topic"
	KindQoS         = "qos"
	KindListener    = "listener"
)

// Event describes one lifecycle step of a native resource.
type Event struct {
	// ID is the resource identifier assigned at creation. Empty when creation
	// failed before an owner existed.
	ID string
	// Kind is one of the Kind* constants.
	Kind string
	Op   Op
	// Handle is the native entity handle; zero for QoS blocks and listeners.
	Handle int32
	// Name is the topic name for topics and empty otherwise.
	Name string
	// Domain is the numeric domain for participants.
	Domain uint32
	// ParentID is the owning participant's ID for topics.
	ParentID string
	// Code is the native return code for failures, zero otherwise.
	Code int32
	// At is when the step finished.
	At time.Time
}

// Hooks defines callbacks for resource lifecycle events.
// All hooks are optional - nil hooks are simply not called.
type Hooks struct {
	// OnCreate is called after a native resource was created successfully.
	OnCreate func(Event)

	// OnDelete is called after a resource was released, whether by Close or
	// by the garbage-collection safety net.
	OnDelete func(Event)

	// OnError is called when a native call failed, either while creating a
	// resource or when the deleter reported a negative return code.
	OnError func(Event, error)
}

// Merge combines two Hooks, creating a new Hooks that calls both.
// The hooks from 'other' are called after the hooks from 'h'.
func (h Hooks) Merge(other Hooks) Hooks {
	return Hooks{
		OnCreate: chain(h.OnCreate, other.OnCreate),
		OnDelete: chain(h.OnDelete, other.OnDelete),
		OnError:  chainError(h.OnError, other.OnError),
	}
}

// Created fires OnCreate if set.
func (h Hooks) Created(e Event) {
	if h.OnCreate != nil {
		h.OnCreate(stamp(e, OpCreate))
	}
}

// Deleted fires OnDelete if set.
func (h Hooks) Deleted(e Event) {
	if h.OnDelete != nil {
		h.OnDelete(stamp(e, OpDelete))
	}
}

// Failed fires OnError if set. e.Op must already say which step failed.
func (h Hooks) Failed(e Event, err error) {
	if h.OnError != nil {
		h.OnError(stamp(e, e.Op), err)
	}
}

func stamp(e Event, op Op) Event {
	e.Op = op
	if e.At.IsZero() {
		e.At = time.Now()
	}
	return e
}

func chain(a, b func(Event)) func(Event) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(e Event) {
		a(e)
		b(e)
	}
}

func chainError(a, b func(Event, error)) func(Event, error) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(e Event, err error) {
		a(e, err)
		b(e, err)
	}
}
