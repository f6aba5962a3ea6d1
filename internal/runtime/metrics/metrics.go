// Package metrics exposes Prometheus collectors for native resource
// lifecycles.
package metrics

import (
	"errors"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	errspkg "github.com/drblury/ddsc/internal/runtime/errors"
	"github.com/drblury/ddsc/internal/runtime/hooks"
)

// DefaultNamespace prefixes every metric name unless overridden.
const DefaultNamespace = "ddsc"

// EntityMetrics tracks created, deleted and live native resources per kind.
type EntityMetrics struct {
	mu sync.RWMutex

	// Per-kind counts
	kinds map[string]*KindMetrics

	// Prometheus collectors
	createdTotal *prometheus.CounterVec
	deletedTotal *prometheus.CounterVec
	errorsTotal  *prometheus.CounterVec
	live         *prometheus.GaugeVec

	registerer prometheus.Registerer
	registered bool
}

// KindMetrics holds counts for one resource kind.
type KindMetrics struct {
	Created       uint64    `json:"created"`
	Deleted       uint64    `json:"deleted"`
	Errors        uint64    `json:"errors"`
	Live          int64     `json:"live"`
	LastUpdatedAt time.Time `json:"last_updated_at"`
}

// Snapshot is a point-in-time view of EntityMetrics.
type Snapshot struct {
	TotalLive   int64                   `json:"total_live"`
	TotalErrors uint64                  `json:"total_errors"`
	Kinds       map[string]*KindMetrics `json:"kinds"`
	CollectedAt time.Time               `json:"collected_at"`
}

// NewEntityMetrics creates the collectors. An empty namespace uses
// DefaultNamespace and a nil registerer uses prometheus.DefaultRegisterer.
func NewEntityMetrics(namespace string, registerer prometheus.Registerer) *EntityMetrics {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	counter := func(name, help string, labels ...string) *prometheus.CounterVec {
		return prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "entity",
			Name:      name,
			Help:      help,
		}, labels)
	}

	return &EntityMetrics{
		kinds:        make(map[string]*KindMetrics),
		registerer:   registerer,
		createdTotal: counter("created_total", "Total number of native resources created", "kind"),
		deletedTotal: counter("deleted_total", "Total number of native resources released", "kind"),
		errorsTotal:  counter("native_errors_total", "Total number of failed native calls", "kind", "op", "code"),
		live: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "entity",
			Name:      "live",
			Help:      "Number of native resources currently owned",
		}, []string{"kind"}),
	}
}

// Register registers the Prometheus collectors. When a registry already holds
// the same collectors, for example from another runtime, the registered ones
// are adopted so both count into a single series. Safe to call multiple times.
func (m *EntityMetrics) Register() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.registered {
		return nil
	}

	var err error
	if m.createdTotal, err = register(m.registerer, m.createdTotal); err != nil {
		return err
	}
	if m.deletedTotal, err = register(m.registerer, m.deletedTotal); err != nil {
		return err
	}
	if m.errorsTotal, err = register(m.registerer, m.errorsTotal); err != nil {
		return err
	}
	if m.live, err = register(m.registerer, m.live); err != nil {
		return err
	}

	m.registered = true
	return nil
}

func register[C prometheus.Collector](r prometheus.Registerer, c C) (C, error) {
	err := r.Register(c)
	if err == nil {
		return c, nil
	}
	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(C); ok {
			return existing, nil
		}
	}
	return c, err
}

// Hooks returns lifecycle hooks feeding these metrics.
func (m *EntityMetrics) Hooks() hooks.Hooks {
	return hooks.MetricsHooks(m.RecordCreated, m.RecordDeleted, m.RecordError)
}

// RecordCreated counts a created resource.
func (m *EntityMetrics) RecordCreated(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := m.kind(kind)
	k.Created++
	k.Live++
	k.LastUpdatedAt = time.Now()

	m.createdTotal.WithLabelValues(kind).Inc()
	m.live.WithLabelValues(kind).Inc()
}

// RecordDeleted counts a released resource.
func (m *EntityMetrics) RecordDeleted(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := m.kind(kind)
	k.Deleted++
	if k.Live > 0 {
		k.Live--
		m.live.WithLabelValues(kind).Dec()
	}
	k.LastUpdatedAt = time.Now()

	m.deletedTotal.WithLabelValues(kind).Inc()
}

// RecordError counts a failed native call. A failed delete still ends the
// ownership, so it lowers the live gauge.
func (m *EntityMetrics) RecordError(kind string, op hooks.Op, code int32) {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := m.kind(kind)
	k.Errors++
	if op == hooks.OpDelete && k.Live > 0 {
		k.Live--
		m.live.WithLabelValues(kind).Dec()
	}
	k.LastUpdatedAt = time.Now()

	name := errspkg.CodeName(code)
	if name == "" {
		name = "none"
	}
	m.errorsTotal.WithLabelValues(kind, string(op), name).Inc()
}

// Snapshot returns a copy of the current counts.
func (m *EntityMetrics) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snap := Snapshot{
		Kinds:       make(map[string]*KindMetrics, len(m.kinds)),
		CollectedAt: time.Now(),
	}
	for kind, k := range m.kinds {
		c := *k
		snap.Kinds[kind] = &c
		snap.TotalLive += k.Live
		snap.TotalErrors += k.Errors
	}
	return snap
}

// Kind returns a copy of the counts for kind, or nil if nothing was recorded.
func (m *EntityMetrics) Kind(kind string) *KindMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if k, ok := m.kinds[kind]; ok {
		c := *k
		return &c
	}
	return nil
}

func (m *EntityMetrics) kind(kind string) *KindMetrics {
	if k, ok := m.kinds[kind]; ok {
		return k
	}
	k := &KindMetrics{}
	m.kinds[kind] = k
	return k
}

// Reset resets all metrics (useful for testing).
func (m *EntityMetrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.kinds = make(map[string]*KindMetrics)
	m.createdTotal.Reset()
	m.deletedTotal.Reset()
	m.errorsTotal.Reset()
	m.live.Reset()
}
