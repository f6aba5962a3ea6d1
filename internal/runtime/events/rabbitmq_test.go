package events

import (
	"context"
	"errors"
	"testing"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-amqp/v3/pkg/amqp"
	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/drblury/ddsc/internal/runtime/config"
)

func TestBuildRabbitMQConnectionError(t *testing.T) {
	orig := AMQPConnectionFactory
	t.Cleanup(func() { AMQPConnectionFactory = orig })

	AMQPConnectionFactory = func(amqp.ConnectionConfig, watermill.LoggerAdapter) (*amqp.ConnectionWrapper, error) {
		return nil, errors.New("conn")
	}

	if _, err := BuildRabbitMQ(context.Background(), &config.Config{RabbitMQURL: "amqp://guest"}, watermill.NopLogger{}); err == nil {
		t.Fatal("expected error when connection fails")
	}
}

func TestBuildRabbitMQUsesConnection(t *testing.T) {
	origConn := AMQPConnectionFactory
	origPub := AMQPPublisherFactory
	t.Cleanup(func() {
		AMQPConnectionFactory = origConn
		AMQPPublisherFactory = origPub
	})

	conn := &amqp.ConnectionWrapper{}
	var gotURI string
	AMQPConnectionFactory = func(cfg amqp.ConnectionConfig, _ watermill.LoggerAdapter) (*amqp.ConnectionWrapper, error) {
		gotURI = cfg.AmqpURI
		return conn, nil
	}

	pub := &testPublisher{}
	var gotConn *amqp.ConnectionWrapper
	AMQPPublisherFactory = func(_ amqp.Config, _ watermill.LoggerAdapter, c *amqp.ConnectionWrapper) (message.Publisher, error) {
		gotConn = c
		return pub, nil
	}

	publisher, err := BuildRabbitMQ(context.Background(), &config.Config{RabbitMQURL: "amqp://guest@rabbit"}, watermill.NopLogger{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if publisher != pub {
		t.Fatal("publisher not returned")
	}
	if gotURI != "amqp://guest@rabbit" {
		t.Errorf("AmqpURI = %q", gotURI)
	}
	if gotConn != conn {
		t.Error("publisher must share the connection")
	}
}

func TestBuildRabbitMQRequiresURL(t *testing.T) {
	if _, err := BuildRabbitMQ(context.Background(), &config.Config{}, watermill.NopLogger{}); err == nil {
		t.Fatal("expected error without URL")
	}
}
