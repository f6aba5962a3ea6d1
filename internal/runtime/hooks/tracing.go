package hooks

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is used when TracingHooks falls back to the global provider.
const TracerName = "github.com/drblury/ddsc"

// TracingHooks records one span per lifecycle event. A nil tracer uses the
// global OpenTelemetry provider.
func TracingHooks(tracer trace.Tracer) Hooks {
	if tracer == nil {
		tracer = otel.Tracer(TracerName)
	}
	return Hooks{
		OnCreate: func(e Event) {
			span := startSpan(tracer, e)
			span.End(trace.WithTimestamp(e.At))
		},
		OnDelete: func(e Event) {
			span := startSpan(tracer, e)
			span.End(trace.WithTimestamp(e.At))
		},
		OnError: func(e Event, err error) {
			span := startSpan(tracer, e)
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			span.End(trace.WithTimestamp(e.At))
		},
	}
}

func startSpan(tracer trace.Tracer, e Event) trace.Span {
	_, span := tracer.Start(
		context.Background(),
		"ddsc."+e.Kind+"."+string(e.Op),
		trace.WithTimestamp(e.At),
		trace.WithAttributes(spanAttributes(e)...),
	)
	return span
}

func spanAttributes(e Event) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String("ddsc.kind", e.Kind),
		attribute.String("ddsc.op", string(e.Op)),
	}
	if e.ID != "" {
		attrs = append(attrs, attribute.String("ddsc.resource_id", e.ID))
	}
	if e.Handle != 0 {
		attrs = append(attrs, attribute.Int("ddsc.handle", int(e.Handle)))
	}
	if e.Name != "" {
		attrs = append(attrs, attribute.String("ddsc.topic", e.Name))
	}
	if e.Kind == KindParticipant {
		attrs = append(attrs, attribute.Int64("ddsc.domain", int64(e.Domain)))
	}
	if e.Code != 0 {
		attrs = append(attrs, attribute.Int("ddsc.code", int(e.Code)))
	}
	return attrs
}
