package ddsc

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestRuntimeExports(t *testing.T) {
	if _, err := New(nil, Dependencies{}); !errors.Is(err, ErrConfigRequired) {
		t.Fatalf("expected config required error, got %v", err)
	}

	rt, err := New(&Config{}, Dependencies{Logger: NewNopServiceLogger()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p, err := rt.NewDefaultParticipant(nil, nil)
	if err != nil {
		t.Fatalf("create participant: %v", err)
	}
	p.Close()
	if !p.Closed() {
		t.Fatal("expected participant to be closed")
	}
}

func TestQoSExports(t *testing.T) {
	sim := NewSimulator()
	q, err := NewQoS(NewEnv(sim))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer q.Close()

	q.History(KeepLast(3)).Durability(TransientLocal).Reliability(Reliable(Milliseconds(250)))
	if err := q.Err(); err != nil {
		t.Fatalf("unexpected builder error: %v", err)
	}

	profile, err := ProfileOf(q)
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if profile.History == nil || *profile.History != KeepLast(3) {
		t.Fatalf("unexpected history %v", profile.History)
	}
	if profile.Partitions != nil {
		t.Fatalf("expected unset partitions, got %v", profile.Partitions)
	}
}

func TestDurationExports(t *testing.T) {
	d, err := ParseDuration("infinite")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d != InfiniteDuration() {
		t.Fatalf("expected infinite, got %v", d)
	}
	if !Seconds(1).Less(InfiniteDuration()) {
		t.Fatal("expected finite below infinite")
	}
}

func TestClassifyExport(t *testing.T) {
	if _, err := Classify(-3); !errors.Is(err, ErrBadParameter) {
		t.Fatalf("expected bad parameter, got %v", err)
	}
	if CodeOf(ErrTimeout) != -10 {
		t.Fatalf("unexpected code %d", CodeOf(ErrTimeout))
	}
}

func TestLoggerExports(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewTextServiceLogger(buf, "trace")
	logger.Trace("boot", LogFields{"component": "test"})
	if !strings.Contains(buf.String(), "component=test") {
		t.Fatalf("expected trace line, got %q", buf.String())
	}
	if LevelTrace >= slog.LevelDebug {
		t.Fatalf("expected trace below debug, got %v", LevelTrace)
	}
}

func TestEncodingExportAliases(t *testing.T) {
	payload := map[string]string{"hello": "world"}
	if _, err := Marshal(payload); err != nil {
		t.Fatalf("marshal alias failed: %v", err)
	}
	if _, err := MarshalIndent(payload, "", "  "); err != nil {
		t.Fatalf("marshal indent alias failed: %v", err)
	}
	if err := Unmarshal([]byte(`{"hello":"world"}`), &payload); err != nil {
		t.Fatalf("unmarshal alias failed: %v", err)
	}
}

func TestEventsSinkExports(t *testing.T) {
	if !DefaultEventsSinks.Has(FileEventsSink) || !DefaultEventsSinks.Has(KafkaEventsSink) {
		t.Fatalf("expected built-in sinks, got %v", DefaultEventsSinks.Names())
	}

	path := t.TempDir() + "/events.log"
	rt, err := New(&Config{EventsSink: FileEventsSink, EventsFile: path}, Dependencies{
		API:    NewSimulator(),
		Logger: NewNopServiceLogger(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	l, err := rt.NewListener()
	if err != nil {
		t.Fatalf("create listener: %v", err)
	}
	l.Close()
	if err := rt.Close(); err != nil {
		t.Fatalf("close runtime: %v", err)
	}

	msgs, err := ReadEventsFile(path, DefaultEventsTopic)
	if err != nil {
		t.Fatalf("read events: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("expected create and delete events, got %d", len(msgs))
	}
}
