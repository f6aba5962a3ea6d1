package events

import (
	"context"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/drblury/ddsc/internal/runtime/config"
)

func TestBuildChannelDeliversToSubscribers(t *testing.T) {
	pub, err := Build(context.Background(), &config.Config{EventsSink: ChannelSink}, watermill.NopLogger{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(func() { _ = pub.Close() })

	ch, ok := pub.(*gochannel.GoChannel)
	if !ok {
		t.Fatalf("expected *gochannel.GoChannel, got %T", pub)
	}

	messages, err := ch.Subscribe(context.Background(), "lifecycle")
	if err != nil {
		t.Fatalf("failed to subscribe: %v", err)
	}

	if err := pub.Publish("lifecycle", message.NewMessage(watermill.NewUUID(), []byte(`{"kind":"participant"}`))); err != nil {
		t.Fatalf("failed to publish: %v", err)
	}

	select {
	case received := <-messages:
		if string(received.Payload) != `{"kind":"participant"}` {
			t.Errorf("unexpected payload %s", received.Payload)
		}
		received.Ack()
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for message")
	}
}

func TestBuildChannelUsesFactory(t *testing.T) {
	orig := ChannelFactory
	t.Cleanup(func() { ChannelFactory = orig })

	pub := &testPublisher{}
	ChannelFactory = func(gochannel.Config, watermill.LoggerAdapter) message.Publisher { return pub }

	got, err := BuildChannel(context.Background(), &config.Config{}, watermill.NopLogger{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != pub {
		t.Fatal("publisher not returned")
	}
}
