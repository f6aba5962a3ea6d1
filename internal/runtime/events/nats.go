package events

import (
	"context"
	"errors"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
)

// NATSSink publishes events on NATS Core subjects named after the topic.
const NATSSink = "nats"

// NATSPublisherFactory allows overriding the publisher creation for testing.
var NATSPublisherFactory = func(cfg nats.PublisherConfig, logger watermill.LoggerAdapter) (message.Publisher, error) {
	return nats.NewPublisher(cfg, logger)
}

// BuildNATS creates a NATS Core publisher.
func BuildNATS(ctx context.Context, cfg Config, logger watermill.LoggerAdapter) (message.Publisher, error) {
	url := cfg.GetNATSURL()
	if url == "" {
		return nil, errors.New("nats: URL is required")
	}

	return NATSPublisherFactory(
		nats.PublisherConfig{
			URL:       url,
			Marshaler: &nats.NATSMarshaler{},
		},
		logger,
	)
}
