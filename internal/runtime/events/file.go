package events

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/drblury/ddsc/internal/runtime/jsoncodec"
)

// FileSink appends events to a file, one JSON object per line.
const FileSink = "file"

// DefaultEventsFile is used when the configuration leaves the path empty.
const DefaultEventsFile = "ddsc-events.log"

// FilePublisherFactory allows overriding the publisher creation for testing.
var FilePublisherFactory = func(path string, logger watermill.LoggerAdapter) (message.Publisher, error) {
	return NewFilePublisher(path, logger), nil
}

// BuildFile creates a file publisher.
func BuildFile(ctx context.Context, cfg Config, logger watermill.LoggerAdapter) (message.Publisher, error) {
	path := cfg.GetEventsFile()
	if path == "" {
		path = DefaultEventsFile
	}
	return FilePublisherFactory(path, logger)
}

// storedMessage is the JSON line written for each message.
type storedMessage struct {
	UUID     string            `json:"uuid"`
	Topic    string            `json:"topic"`
	Metadata map[string]string `json:"metadata"`
	Payload  []byte            `json:"payload"`
}

// FilePublisher writes messages to a file.
type FilePublisher struct {
	path   string
	logger watermill.LoggerAdapter
	mu     sync.Mutex
	closed bool
}

// NewFilePublisher returns a publisher appending to path.
func NewFilePublisher(path string, logger watermill.LoggerAdapter) *FilePublisher {
	if logger == nil {
		logger = watermill.NopLogger{}
	}
	return &FilePublisher{path: path, logger: logger}
}

// Publish appends messages to the file.
func (p *FilePublisher) Publish(topic string, messages ...*message.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return fmt.Errorf("file publisher %s is closed", p.path)
	}

	f, err := os.OpenFile(p.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, msg := range messages {
		b, err := jsoncodec.Marshal(storedMessage{
			UUID:     msg.UUID,
			Topic:    topic,
			Metadata: msg.Metadata,
			Payload:  msg.Payload,
		})
		if err != nil {
			return err
		}
		if _, err := w.Write(append(b, '\n')); err != nil {
			return err
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}
	p.logger.Trace("Events written", watermill.LogFields{"file": p.path, "count": len(messages)})
	return nil
}

// Close marks the publisher closed. Later publishes fail.
func (p *FilePublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

// ReadFile returns the messages written to path for topic, in file order. An
// empty topic returns every message.
func ReadFile(path, topic string) ([]*message.Message, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []*message.Message
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for line := 1; scanner.Scan(); line++ {
		var sm storedMessage
		if err := jsoncodec.Unmarshal(scanner.Bytes(), &sm); err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, line, err)
		}
		if topic != "" && sm.Topic != topic {
			continue
		}
		msg := message.NewMessage(sm.UUID, sm.Payload)
		for k, v := range sm.Metadata {
			msg.Metadata.Set(k, v)
		}
		out = append(out, msg)
	}
	return out, scanner.Err()
}
