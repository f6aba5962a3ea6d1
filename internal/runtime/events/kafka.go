package events

import (
	"context"
	"errors"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v3/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
)

// KafkaSink publishes events to Kafka.
const KafkaSink = "kafka"

// KafkaPublisherFactory allows overriding the publisher creation for testing.
var KafkaPublisherFactory = func(cfg kafka.PublisherConfig, logger watermill.LoggerAdapter) (message.Publisher, error) {
	return kafka.NewPublisher(cfg, logger)
}

// BuildKafka creates a Kafka publisher.
func BuildKafka(ctx context.Context, cfg Config, logger watermill.LoggerAdapter) (message.Publisher, error) {
	brokers := cfg.GetKafkaBrokers()
	if len(brokers) == 0 {
		return nil, errors.New("kafka: brokers are required")
	}

	return KafkaPublisherFactory(
		kafka.PublisherConfig{
			Brokers:   brokers,
			Marshaler: kafka.DefaultMarshaler{},
		},
		logger,
	)
}
