package hooks

import (
	"time"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/drblury/ddsc/internal/runtime/ids"
	"github.com/drblury/ddsc/internal/runtime/jsoncodec"
	"github.com/drblury/ddsc/internal/runtime/logging"
)

// Metadata keys set on published lifecycle messages.
const (
	MetadataKind = "ddsc_kind"
	MetadataOp   = "ddsc_op"
)

// EventPayload is the JSON body of a published lifecycle message.
type EventPayload struct {
	ID       string    `json:"id,omitempty"`
	Kind     string    `json:"kind"`
	Op       Op        `json:"op"`
	Handle   int32     `json:"handle,omitempty"`
	Name     string    `json:"name,omitempty"`
	Domain   *uint32   `json:"domain,omitempty"`
	ParentID string    `json:"parent_id,omitempty"`
	Code     int32     `json:"code,omitempty"`
	Error    string    `json:"error,omitempty"`
	At       time.Time `json:"at"`
}

// NewEventPayload converts an Event (and optional failure) into its wire form.
func NewEventPayload(e Event, err error) EventPayload {
	p := EventPayload{
		ID:       e.ID,
		Kind:     e.Kind,
		Op:       e.Op,
		Handle:   e.Handle,
		Name:     e.Name,
		ParentID: e.ParentID,
		Code:     e.Code,
		At:       e.At,
	}
	if e.Kind == KindParticipant {
		domain := e.Domain
		p.Domain = &domain
	}
	if err != nil {
		p.Error = err.Error()
	}
	return p
}

// PublisherHooks publishes every lifecycle event as a JSON message on topic.
// Publish failures are logged and otherwise ignored; they never affect the
// native resource.
func PublisherHooks(pub message.Publisher, topic string, logger logging.ServiceLogger) Hooks {
	if logger == nil {
		logger = logging.NewNopServiceLogger()
	}
	publish := func(e Event, err error) {
		payload, marshalErr := jsoncodec.Marshal(NewEventPayload(e, err))
		if marshalErr != nil {
			logger.Error("Failed to encode lifecycle event", marshalErr, fields(e))
			return
		}
		msg := message.NewMessage(ids.CreateULID(), payload)
		msg.Metadata.Set(MetadataKind, e.Kind)
		msg.Metadata.Set(MetadataOp, string(e.Op))
		if pubErr := pub.Publish(topic, msg); pubErr != nil {
			logger.Error("Failed to publish lifecycle event", pubErr, fields(e))
		}
	}
	return Hooks{
		OnCreate: func(e Event) { publish(e, nil) },
		OnDelete: func(e Event) { publish(e, nil) },
		OnError:  publish,
	}
}
