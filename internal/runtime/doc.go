/*
Package runtime wires the ddsc building blocks into a Runtime.

# Package Structure

## Runtime (runtime.go)

The Runtime validates the configuration and holds:
  - the native backend, resolved from a native.Registry
  - the default domain for participants
  - named QoS profiles loaded from a file
  - the lifecycle hooks shared by every wrapper it creates

## Lifecycle hooks

Every create, delete and failed native call produces a hooks.Event. The
Runtime always logs them; metrics, tracing and publishing are enabled from
Config and Dependencies:
  - metrics/: Prometheus counters and a live gauge per resource kind
  - hooks/tracing.go: one OpenTelemetry span per event
  - hooks/publisher.go: JSON messages on a Watermill publisher

## Event sinks

Config.EventsSink names the publisher the Runtime builds for lifecycle
events: channel, file, http, kafka, rabbitmq, nats, nats-jetstream or aws.
A Publisher passed in Dependencies takes precedence. Runtime.Close closes
only the sink the Runtime built itself.

# Sub-packages

  - config/: Runtime configuration with validation and environment loading
  - duration/: the tri-state native duration
  - entity/: participants, topics and domains
  - errors/: sentinel errors and native return code classification
  - events/: Watermill publishers for lifecycle events
  - hooks/: lifecycle events and built-in hooks
  - ids/: ULID based resource identifiers
  - jsoncodec/: JSON marshaling utilities
  - listener/: listener blocks
  - logging/: logger interface and adapters
  - metrics/: Prometheus collectors
  - native/: the C API surface, the simulator and the cgo backend
  - qos/: QoS blocks, typed policies and profiles
  - resource/: exclusive ownership of native resources

# Usage Example

	rt, err := runtime.New(&config.Config{Domain: "7", MetricsEnabled: true}, runtime.Dependencies{})
	if err != nil {
		return err
	}
	participant, err := rt.NewDefaultParticipant(nil, nil)
	if err != nil {
		return err
	}
	defer participant.Close()
	defer rt.Close()
*/
package runtime
