package events

import (
	"context"
	"errors"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-http/v2/pkg/http"
	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/drblury/ddsc/internal/runtime/config"
)

func TestBuildHTTPPostsToTopicURL(t *testing.T) {
	type request struct {
		path string
		body string
	}
	received := make(chan request, 1)
	srv := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		body, _ := io.ReadAll(r.Body)
		received <- request{path: r.URL.Path, body: string(body)}
		w.WriteHeader(nethttp.StatusOK)
	}))
	t.Cleanup(srv.Close)

	pub, err := BuildHTTP(context.Background(), &config.Config{HTTPPublisherURL: srv.URL + "/events/"}, watermill.NopLogger{})
	if err != nil {
		t.Fatalf("failed to build http sink: %v", err)
	}
	t.Cleanup(func() { _ = pub.Close() })

	if err := pub.Publish("lifecycle", message.NewMessage(watermill.NewUUID(), []byte("payload"))); err != nil {
		t.Fatalf("failed to publish: %v", err)
	}

	got := <-received
	if got.path != "/events/lifecycle" {
		t.Errorf("expected topic appended to URL, got %s", got.path)
	}
	if got.body != "payload" {
		t.Errorf("unexpected body %q", got.body)
	}
}

func TestBuildHTTPRequiresURL(t *testing.T) {
	if _, err := BuildHTTP(context.Background(), &config.Config{}, watermill.NopLogger{}); err == nil {
		t.Fatal("expected error without publisher URL")
	}
}

func TestBuildHTTPFactoryError(t *testing.T) {
	orig := HTTPPublisherFactory
	t.Cleanup(func() { HTTPPublisherFactory = orig })

	HTTPPublisherFactory = func(http.PublisherConfig, watermill.LoggerAdapter) (message.Publisher, error) {
		return nil, errors.New("pub error")
	}

	if _, err := BuildHTTP(context.Background(), &config.Config{HTTPPublisherURL: "http://localhost/"}, watermill.NopLogger{}); err == nil {
		t.Fatal("expected error when factory fails")
	}
}
