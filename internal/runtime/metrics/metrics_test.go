package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drblury/ddsc/internal/runtime/hooks"
	"github.com/drblury/ddsc/internal/runtime/native"
	"github.com/drblury/ddsc/internal/runtime/qos"
	"github.com/drblury/ddsc/internal/runtime/resource"
)

func newMetrics(t *testing.T) (*EntityMetrics, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	m := NewEntityMetrics("", reg)
	require.NoError(t, m.Register())
	return m, reg
}

func TestRegisterIsIdempotent(t *testing.T) {
	m, reg := newMetrics(t)
	require.NoError(t, m.Register())

	other := NewEntityMetrics("", reg)
	require.NoError(t, other.Register())
}

func TestSharedRegistryAdoptsExistingCollectors(t *testing.T) {
	first, reg := newMetrics(t)
	second := NewEntityMetrics("", reg)
	require.NoError(t, second.Register())

	first.RecordCreated(hooks.KindTopic)
	second.RecordCreated(hooks.KindTopic)
	second.RecordCreated(hooks.KindTopic)
	second.RecordDeleted(hooks.KindTopic)

	expected := `
# HELP ddsc_entity_created_total Total number of native resources created
# TYPE ddsc_entity_created_total counter
ddsc_entity_created_total{kind="topic"} 3
# HELP ddsc_entity_live Number of native resources currently owned
# TYPE ddsc_entity_live gauge
ddsc_entity_live{kind="topic"} 2
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"ddsc_entity_created_total", "ddsc_entity_live"))

	assert.Equal(t, int64(1), first.Kind(hooks.KindTopic).Live)
	assert.Equal(t, int64(1), second.Kind(hooks.KindTopic).Live)
}

func TestRegisterRejectsConflictingCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NoError(t, reg.Register(prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: DefaultNamespace,
		Subsystem: "entity",
		Name:      "live",
		Help:      "Number of native resources currently owned",
	}, []string{"kind"})))

	m := NewEntityMetrics("", reg)
	require.Error(t, m.Register())
}

func TestRecordLifecycle(t *testing.T) {
	m, _ := newMetrics(t)

	m.RecordCreated(hooks.KindTopic)
	m.RecordCreated(hooks.KindTopic)
	m.RecordDeleted(hooks.KindTopic)
	m.RecordError(hooks.KindTopic, hooks.OpCreate, int32(native.RetcodeBadParameter))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.createdTotal.WithLabelValues(hooks.KindTopic)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.deletedTotal.WithLabelValues(hooks.KindTopic)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.live.WithLabelValues(hooks.KindTopic)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.errorsTotal.WithLabelValues(hooks.KindTopic, "create", "BAD_PARAMETER")))

	k := m.Kind(hooks.KindTopic)
	require.NotNil(t, k)
	assert.Equal(t, uint64(2), k.Created)
	assert.Equal(t, uint64(1), k.Deleted)
	assert.Equal(t, uint64(1), k.Errors)
	assert.Equal(t, int64(1), k.Live)
	assert.Nil(t, m.Kind(hooks.KindQoS))
}

func TestFailedDeleteLowersLive(t *testing.T) {
	m, _ := newMetrics(t)
	m.RecordCreated(hooks.KindParticipant)
	m.RecordError(hooks.KindParticipant, hooks.OpDelete, int32(native.RetcodeError))
	m.RecordError(hooks.KindParticipant, hooks.OpCreate, 0)

	assert.Equal(t, 0.0, testutil.ToFloat64(m.live.WithLabelValues(hooks.KindParticipant)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.errorsTotal.WithLabelValues(hooks.KindParticipant, "create", "none")))
}

func TestSnapshotAndReset(t *testing.T) {
	m, _ := newMetrics(t)
	m.RecordCreated(hooks.KindQoS)
	m.RecordCreated(hooks.KindListener)
	m.RecordError(hooks.KindListener, hooks.OpCreate, int32(native.RetcodeOutOfResources))

	snap := m.Snapshot()
	assert.Equal(t, int64(2), snap.TotalLive)
	assert.Equal(t, uint64(1), snap.TotalErrors)
	assert.Len(t, snap.Kinds, 2)
	assert.False(t, snap.CollectedAt.IsZero())

	snap.Kinds[hooks.KindQoS].Live = 99
	assert.Equal(t, int64(1), m.Kind(hooks.KindQoS).Live)

	m.Reset()
	assert.Empty(t, m.Snapshot().Kinds)
}

func TestHooksDriveGaugeBackToZero(t *testing.T) {
	m, reg := newMetrics(t)
	env := resource.NewEnv(native.NewSimulator()).WithHooks(m.Hooks())

	q, err := qos.New(env)
	require.NoError(t, err)
	dup, err := q.History(qos.KeepAll()).Copy()
	require.NoError(t, err)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.live.WithLabelValues(hooks.KindQoS)))

	q.Close()
	dup.Close()
	dup.Close()

	expected := `
# HELP ddsc_entity_live Number of native resources currently owned
# TYPE ddsc_entity_live gauge
ddsc_entity_live{kind="qos"} 0
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "ddsc_entity_live"))
}

func TestCustomNamespace(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewEntityMetrics("shapes", reg)
	require.NoError(t, m.Register())
	m.RecordCreated(hooks.KindTopic)

	count, err := testutil.GatherAndCount(reg, "shapes_entity_created_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
