package qos

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drblury/ddsc/internal/runtime/duration"
	errspkg "github.com/drblury/ddsc/internal/runtime/errors"
	"github.com/drblury/ddsc/internal/runtime/native"
)

func intPtr(n int) *int { return &n }

func rawPtr(d native.Duration) *native.Duration { return &d }

func TestHistoryRoundTrip(t *testing.T) {
	for _, h := range []History{KeepLast(5), KeepLast(1), KeepAll()} {
		kind, depth := h.ToRaw()
		back, err := HistoryFromRaw(kind, depth)
		require.NoError(t, err)
		assert.Equal(t, h, back)
	}

	kind, depth := KeepLast(5).ToRaw()
	assert.Equal(t, native.HistoryKeepLast, kind)
	require.NotNil(t, depth)
	assert.Equal(t, 5, *depth)

	kind, depth = KeepAll().ToRaw()
	assert.Equal(t, native.HistoryKeepAll, kind)
	assert.Nil(t, depth)
}

func TestHistoryFromRawRejectsInvalidPairs(t *testing.T) {
	tests := []struct {
		name  string
		kind  native.HistoryKind
		depth *int
	}{
		{"keep last without depth", native.HistoryKeepLast, nil},
		{"keep all with depth", native.HistoryKeepAll, intPtr(3)},
		{"unknown kind", native.HistoryKind(7), intPtr(1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := HistoryFromRaw(tt.kind, tt.depth)
			var derr *errspkg.DecodeError
			require.True(t, errors.As(err, &derr))
			assert.Equal(t, "history", derr.Policy)
			assert.Equal(t, uint32(tt.kind), derr.Kind)
			assert.Equal(t, tt.depth != nil, derr.HasParameter)
		})
	}
}

func TestHistoryEncode(t *testing.T) {
	kind, depth, err := KeepAll().encode()
	require.NoError(t, err)
	assert.Equal(t, native.HistoryKeepAll, kind)
	assert.Zero(t, depth)

	_, _, err = KeepLast(math.MaxInt32 + 1).encode()
	assert.Error(t, err)

	assert.Equal(t, "keep_last(5)", KeepLast(5).String())
	assert.Equal(t, "keep_all", KeepAll().String())
}

func TestDurabilityMapping(t *testing.T) {
	tests := []struct {
		d    Durability
		raw  native.DurabilityKind
		name string
	}{
		{Volatile, native.DurabilityVolatile, "volatile"},
		{TransientLocal, native.DurabilityTransientLocal, "transient_local"},
		{Transient, native.DurabilityTransient, "transient"},
		{Persistent, native.DurabilityPersistent, "persistent"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.raw, tt.d.ToRaw())
			back, err := DurabilityFromRaw(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.d, back)
			assert.Equal(t, tt.name, tt.d.String())

			parsed, err := ParseDurability(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.d, parsed)
		})
	}

	_, err := DurabilityFromRaw(4)
	var derr *errspkg.DecodeError
	assert.True(t, errors.As(err, &derr))

	_, err = ParseDurability("eternal")
	assert.Error(t, err)
	assert.Equal(t, "durability(9)", Durability(9).String())
}

func TestReliabilityRoundTrip(t *testing.T) {
	kind, raw := BestEffort().ToRawParts()
	assert.Equal(t, native.ReliabilityBestEffort, kind)
	assert.Nil(t, raw)

	back, err := ReliabilityFromRawParts(kind, raw)
	require.NoError(t, err)
	assert.Equal(t, BestEffort(), back)

	reliable := Reliable(duration.FromMillis(100))
	kind, raw = reliable.ToRawParts()
	assert.Equal(t, native.ReliabilityReliable, kind)
	require.NotNil(t, raw)
	assert.Equal(t, native.Duration(100_000_000), *raw)

	back, err = ReliabilityFromRawParts(kind, raw)
	require.NoError(t, err)
	assert.Equal(t, reliable, back)

	infinite := Reliable(duration.Infinite())
	kind, raw = infinite.ToRawParts()
	back, err = ReliabilityFromRawParts(kind, raw)
	require.NoError(t, err)
	assert.Equal(t, infinite, back)
}

func TestReliabilityFromRawPartsRejectsInvalidPairs(t *testing.T) {
	_, err := ReliabilityFromRawParts(native.ReliabilityReliable, nil)
	var derr *errspkg.DecodeError
	require.True(t, errors.As(err, &derr))
	assert.Equal(t, "reliability", derr.Policy)
	assert.False(t, derr.HasParameter)

	_, err = ReliabilityFromRawParts(native.ReliabilityBestEffort, rawPtr(0))
	require.True(t, errors.As(err, &derr))
	assert.True(t, derr.HasParameter)

	_, err = ReliabilityFromRawParts(9, rawPtr(0))
	assert.Error(t, err)
}

func TestReliabilityEncodeUsesInfinityForBestEffort(t *testing.T) {
	kind, raw := BestEffort().encode()
	assert.Equal(t, native.ReliabilityBestEffort, kind)
	assert.Equal(t, native.Infinity, raw)

	_, raw = Reliable(duration.FromSecs(1)).encode()
	assert.Equal(t, native.Duration(1_000_000_000), raw)

	assert.Equal(t, "reliable(1s)", Reliable(duration.FromSecs(1)).String())
	assert.Equal(t, "best_effort", BestEffort().String())
}
