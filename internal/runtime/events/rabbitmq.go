package events

import (
	"context"
	"errors"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-amqp/v3/pkg/amqp"
	"github.com/ThreeDotsLabs/watermill/message"
)

// RabbitMQSink publishes events to a durable AMQP exchange per topic.
const RabbitMQSink = "rabbitmq"

// AMQPConnectionFactory allows overriding the connection creation for testing.
var AMQPConnectionFactory = func(cfg amqp.ConnectionConfig, logger watermill.LoggerAdapter) (*amqp.ConnectionWrapper, error) {
	return amqp.NewConnection(cfg, logger)
}

// AMQPPublisherFactory allows overriding the publisher creation for testing.
var AMQPPublisherFactory = func(cfg amqp.Config, logger watermill.LoggerAdapter, conn *amqp.ConnectionWrapper) (message.Publisher, error) {
	return amqp.NewPublisherWithConnection(cfg, logger, conn)
}

// BuildRabbitMQ creates an AMQP publisher.
func BuildRabbitMQ(ctx context.Context, cfg Config, logger watermill.LoggerAdapter) (message.Publisher, error) {
	url := cfg.GetRabbitMQURL()
	if url == "" {
		return nil, errors.New("rabbitmq: URL is required")
	}

	amqpConfig := amqp.NewDurablePubSubConfig(url, amqp.GenerateQueueNameTopicName)

	conn, err := AMQPConnectionFactory(amqp.ConnectionConfig{
		AmqpURI:   url,
		TLSConfig: nil,
		Reconnect: amqp.DefaultReconnectConfig(),
	}, logger)
	if err != nil {
		return nil, err
	}

	return AMQPPublisherFactory(amqpConfig, logger, conn)
}
