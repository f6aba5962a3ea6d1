package events

import (
	"context"
	"errors"
	nethttp "net/http"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-http/v2/pkg/http"
	"github.com/ThreeDotsLabs/watermill/message"
)

// HTTPSink POSTs each event to HTTPPublisherURL followed by the topic.
const HTTPSink = "http"

// HTTPPublisherFactory allows overriding the publisher creation for testing.
var HTTPPublisherFactory = func(config http.PublisherConfig, logger watermill.LoggerAdapter) (message.Publisher, error) {
	return http.NewPublisher(config, logger)
}

// BuildHTTP creates an HTTP publisher.
func BuildHTTP(ctx context.Context, cfg Config, logger watermill.LoggerAdapter) (message.Publisher, error) {
	publisherURL := cfg.GetHTTPPublisherURL()
	if publisherURL == "" {
		return nil, errors.New("http: publisher URL is required")
	}

	return HTTPPublisherFactory(
		http.PublisherConfig{
			MarshalMessageFunc: func(topic string, msg *message.Message) (*nethttp.Request, error) {
				return http.DefaultMarshalMessageFunc(publisherURL+topic, msg)
			},
		},
		logger,
	)
}
