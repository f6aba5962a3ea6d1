package events

import (
	"context"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// ChannelSink keeps events in process. The returned *gochannel.GoChannel is
// also a message.Subscriber.
const ChannelSink = "channel"

// ChannelFactory allows overriding the channel creation for testing.
var ChannelFactory = func(cfg gochannel.Config, logger watermill.LoggerAdapter) message.Publisher {
	return gochannel.NewGoChannel(cfg, logger)
}

// BuildChannel creates an in-memory Go channel publisher. Events published
// while nobody is subscribed are dropped.
func BuildChannel(ctx context.Context, cfg Config, logger watermill.LoggerAdapter) (message.Publisher, error) {
	return ChannelFactory(gochannel.Config{}, logger), nil
}
