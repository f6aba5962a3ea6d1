// Package ddsc is a type-safe layer over the Cyclone DDS C API. It owns the
// native handles for participants, topics, QoS blocks and listeners, turns
// negative return codes into typed errors, and keeps the tri-state
// dds_duration_t (invalid, infinite or a nanosecond count) out of plain
// integers.
//
// Runtime bundles the pieces most programs need: it reads Config (usually via
// FromEnv), selects a native backend, loads named QoS profiles from YAML or
// JSON, and wires lifecycle hooks for logging, Prometheus metrics,
// OpenTelemetry spans and Watermill event publishing. A minimal setup fills
// Config, calls New, and creates participants and topics from the Runtime.
//
// Lifecycle events go to the publisher in Dependencies or to the sink named by
// Config.EventsSink. Sinks cover an in-process channel, a JSON lines file,
// HTTP, Kafka, RabbitMQ, NATS, NATS JetStream and AWS SNS; call Close on the
// Runtime to release them.
//
// # Backends
//
// Two backends are registered by name:
//   - simulator: an in-process model of the C API, the default
//   - cyclonedds: the real library through cgo, built with the cyclonedds tag
//
// Custom backends implement API and register with RegisterBackend.
//
// # Ownership
//
// Every wrapper releases its native resource exactly once: on Close, or from
// a runtime cleanup when the wrapper becomes unreachable. Deleting a
// participant deletes its topics in the native library; closing those topics
// afterwards is harmless.
//
// # QoS
//
// QoS is a builder. Setters chain and record the first failure, which Err
// returns. Getters report ErrPolicyNotSet for policies never set, and a
// DecodeError when the native library reports a combination that has no
// typed form.
package ddsc
