// Package events builds the Watermill publishers that receive resource
// lifecycle events. Each sink (channel, file, http, kafka, rabbitmq, nats,
// nats-jetstream, aws) registers a Builder under its name; the Runtime picks
// one from Config.EventsSink.
package events

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

// Config provides the values sinks read. Each sink only uses the getters
// relevant to it.
type Config interface {
	// GetEventsSink returns the sink name.
	GetEventsSink() string

	// Kafka
	GetKafkaBrokers() []string

	// RabbitMQ
	GetRabbitMQURL() string

	// NATS and NATS JetStream
	GetNATSURL() string

	// HTTP
	GetHTTPPublisherURL() string

	// File
	GetEventsFile() string

	// AWS SNS
	GetAWSRegion() string
	GetAWSAccountID() string
	GetAWSAccessKeyID() string
	GetAWSSecretAccessKey() string
	GetAWSEndpoint() string
}

// Builder creates the publisher for one sink.
type Builder func(ctx context.Context, cfg Config, logger watermill.LoggerAdapter) (message.Publisher, error)

// Registry maintains a mapping of sink names to their builders.
type Registry struct {
	mu       sync.RWMutex
	builders map[string]Builder
}

// DefaultRegistry holds every built-in sink.
var DefaultRegistry = NewRegistry()

func init() {
	DefaultRegistry.Register(ChannelSink, BuildChannel)
	DefaultRegistry.Register(FileSink, BuildFile)
	DefaultRegistry.Register(HTTPSink, BuildHTTP)
	DefaultRegistry.Register(KafkaSink, BuildKafka)
	DefaultRegistry.Register(RabbitMQSink, BuildRabbitMQ)
	DefaultRegistry.Register(NATSSink, BuildNATS)
	DefaultRegistry.Register(JetStreamSink, BuildJetStream)
	DefaultRegistry.Register(AWSSink, BuildAWS)
}

// NewRegistry creates an empty sink registry.
func NewRegistry() *Registry {
	return &Registry{builders: make(map[string]Builder)}
}

// Register adds a sink builder, replacing any builder registered under name.
func (r *Registry) Register(name string, builder Builder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.builders[name] = builder
}

// Build creates the publisher for the sink named by cfg.
func (r *Registry) Build(ctx context.Context, cfg Config, logger watermill.LoggerAdapter) (message.Publisher, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if logger == nil {
		logger = watermill.NopLogger{}
	}

	name := cfg.GetEventsSink()

	r.mu.RLock()
	builder, ok := r.builders[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("unknown events sink: %q (registered: %v)", name, r.Names())
	}

	pub, err := builder(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("build events sink %q: %w", name, err)
	}
	return pub, nil
}

// Names returns the sorted list of registered sink names.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.builders))
	for name := range r.builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has returns true if a sink is registered with the given name.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.builders[name]
	return ok
}

// Register adds a sink builder to the default registry.
func Register(name string, builder Builder) {
	DefaultRegistry.Register(name, builder)
}

// Build creates a publisher using the default registry.
func Build(ctx context.Context, cfg Config, logger watermill.LoggerAdapter) (message.Publisher, error) {
	return DefaultRegistry.Build(ctx, cfg, logger)
}
