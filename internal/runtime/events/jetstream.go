package events

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/nats-io/nats.go"
)

// JetStreamSink stores events in a NATS JetStream stream.
const JetStreamSink = "nats-jetstream"

// DefaultStreamName names the stream when JetStreamConfig leaves it empty.
const DefaultStreamName = "DDSC"

// DefaultStreamMaxAge bounds how long events are retained.
const DefaultStreamMaxAge = 7 * 24 * time.Hour

// JetStreamConnect allows overriding the NATS connection for testing.
var JetStreamConnect = func(url string, opts ...nats.Option) (*nats.Conn, error) {
	return nats.Connect(url, opts...)
}

// JetStreamConfig holds the stream settings.
type JetStreamConfig struct {
	URL        string
	StreamName string
	MaxAge     time.Duration
	Replicas   int
}

func (c JetStreamConfig) withDefaults() JetStreamConfig {
	if c.StreamName == "" {
		c.StreamName = DefaultStreamName
	}
	if c.MaxAge <= 0 {
		c.MaxAge = DefaultStreamMaxAge
	}
	if c.Replicas <= 0 {
		c.Replicas = 1
	}
	return c
}

// JetStreamPublisher publishes messages to a JetStream stream. Topics map to
// subjects below the stream name, so topic "lifecycle" becomes
// "DDSC.lifecycle".
type JetStreamPublisher struct {
	nc     *nats.Conn
	js     nats.JetStreamContext
	config JetStreamConfig
	logger watermill.LoggerAdapter

	mu     sync.RWMutex
	closed bool
}

// BuildJetStream creates a JetStream publisher with the default stream.
func BuildJetStream(ctx context.Context, cfg Config, logger watermill.LoggerAdapter) (message.Publisher, error) {
	url := cfg.GetNATSURL()
	if url == "" {
		return nil, errors.New("nats-jetstream: URL is required")
	}
	return NewJetStreamPublisher(JetStreamConfig{URL: url}, logger)
}

// NewJetStreamPublisher connects to NATS and makes sure the stream exists.
func NewJetStreamPublisher(cfg JetStreamConfig, logger watermill.LoggerAdapter) (*JetStreamPublisher, error) {
	cfg = cfg.withDefaults()
	if logger == nil {
		logger = watermill.NopLogger{}
	}

	nc, err := JetStreamConnect(cfg.URL, nats.Name("ddsc-events"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := nc.JetStream()
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	p := &JetStreamPublisher{nc: nc, js: js, config: cfg, logger: logger}
	if err := p.ensureStream(); err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to ensure stream: %w", err)
	}
	return p, nil
}

func (p *JetStreamPublisher) ensureStream() error {
	streamCfg := &nats.StreamConfig{
		Name:      p.config.StreamName,
		Subjects:  []string{p.config.StreamName + ".>"},
		MaxAge:    p.config.MaxAge,
		Replicas:  p.config.Replicas,
		Retention: nats.LimitsPolicy,
	}

	if _, err := p.js.AddStream(streamCfg); err != nil {
		if _, err := p.js.UpdateStream(streamCfg); err != nil {
			return err
		}
		p.logger.Info("JetStream stream updated", watermill.LogFields{"stream": p.config.StreamName})
	}
	return nil
}

// Subject returns the subject used for topic.
func (p *JetStreamPublisher) Subject(topic string) string {
	return subjectFor(p.config.StreamName, topic)
}

func subjectFor(stream, topic string) string {
	return stream + "." + strings.ReplaceAll(topic, " ", "_")
}

// Publish publishes messages to the stream, copying metadata into headers.
func (p *JetStreamPublisher) Publish(topic string, messages ...*message.Message) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return errors.New("jetstream publisher is closed")
	}

	subject := p.Subject(topic)
	for _, msg := range messages {
		headers := nats.Header{}
		for k, v := range msg.Metadata {
			headers.Set(k, v)
		}
		headers.Set(nats.MsgIdHdr, msg.UUID)

		if _, err := p.js.PublishMsg(&nats.Msg{
			Subject: subject,
			Data:    msg.Payload,
			Header:  headers,
		}); err != nil {
			return fmt.Errorf("failed to publish to JetStream: %w", err)
		}
	}
	return nil
}

// Close closes the NATS connection. Later publishes fail.
func (p *JetStreamPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	p.nc.Close()
	return nil
}
