// Package duration models the native dds_duration_t: a signed nanosecond
// count whose minimum value means "invalid" and whose maximum value means
// "infinite". The sentinels never escape as ordinary integers; FromRaw and
// ToRaw are the only crossing points.
package duration

import (
	"fmt"
	"math"
	"time"

	"github.com/drblury/ddsc/internal/runtime/native"
)

type state uint8

const (
	stateFinite state = iota
	stateInvalid
	stateInfinite
)

// Duration is Invalid, Infinite or a finite signed nanosecond count. The zero
// value is a finite zero duration. Durations are comparable with == and can
// be used as map keys.
type Duration struct {
	state state
	nanos int64
}

// Invalid returns the "not set" duration.
func Invalid() Duration { return Duration{state: stateInvalid} }

// Infinite returns the "no limit" duration.
func Infinite() Duration { return Duration{state: stateInfinite} }

// FromRaw decodes a native duration. It is total over the int64 domain.
func FromRaw(raw native.Duration) Duration {
	switch raw {
	case native.DurationInvalid:
		return Invalid()
	case native.Infinity:
		return Infinite()
	default:
		return Duration{nanos: int64(raw)}
	}
}

// ToRaw encodes d into its native form, reproducing the sentinels bit for bit.
func (d Duration) ToRaw() native.Duration {
	switch d.state {
	case stateInvalid:
		return native.DurationInvalid
	case stateInfinite:
		return native.Infinity
	}
	if d.nanos == math.MinInt64 || d.nanos == math.MaxInt64 {
		// Constructors never produce this; reaching it means memory corruption.
		panic(fmt.Sprintf("duration: finite value %d collides with a native sentinel", d.nanos))
	}
	return native.Duration(d.nanos)
}

func scaled(n int64, unit int64, name string) Duration {
	if n > math.MaxInt64/unit || n < math.MinInt64/unit {
		panic(fmt.Sprintf("duration: %d%s overflows the int64 nanosecond range", n, name))
	}
	return FromNanos(n * unit)
}

// FromNanos returns a finite duration of n nanoseconds. The two sentinel
// values are outside the finite range and cause a panic.
func FromNanos(n int64) Duration {
	if n == math.MinInt64 || n == math.MaxInt64 {
		panic(fmt.Sprintf("duration: %dns is a native sentinel, not a finite duration", n))
	}
	return Duration{nanos: n}
}

// FromMicros returns a finite duration of n microseconds. It panics on overflow.
func FromMicros(n int64) Duration { return scaled(n, int64(time.Microsecond), "us") }

// FromMillis returns a finite duration of n milliseconds. It panics on overflow.
func FromMillis(n int64) Duration { return scaled(n, int64(time.Millisecond), "ms") }

// FromSecs returns a finite duration of n seconds. It panics on overflow.
func FromSecs(n int64) Duration { return scaled(n, int64(time.Second), "s") }

// FromMinutes returns a finite duration of n minutes. It panics on overflow.
func FromMinutes(n int64) Duration { return scaled(n, int64(time.Minute), "m") }

// FromHours returns a finite duration of n hours. It panics on overflow.
func FromHours(n int64) Duration { return scaled(n, int64(time.Hour), "h") }

// FromStd converts a time.Duration into a finite duration.
func FromStd(d time.Duration) Duration { return FromNanos(int64(d)) }

// IsFinite reports whether d carries a nanosecond count.
func (d Duration) IsFinite() bool { return d.state == stateFinite }

// IsInfinite reports whether d is Infinite.
func (d Duration) IsInfinite() bool { return d.state == stateInfinite }

// IsInvalid reports whether d is Invalid.
func (d Duration) IsInvalid() bool { return d.state == stateInvalid }

// Nanos returns the nanosecond count of a finite duration; ok is false for
// Invalid and Infinite.
func (d Duration) Nanos() (n int64, ok bool) {
	if d.state != stateFinite {
		return 0, false
	}
	return d.nanos, true
}

// Std returns d as a time.Duration; ok is false for Invalid and Infinite.
func (d Duration) Std() (time.Duration, bool) {
	n, ok := d.Nanos()
	return time.Duration(n), ok
}

// Compare orders two durations. ok is false when either side is Invalid,
// including Invalid against Invalid; otherwise cmp is -1, 0 or +1.
func (d Duration) Compare(other Duration) (cmp int, ok bool) {
	if d.state == stateInvalid || other.state == stateInvalid {
		return 0, false
	}
	switch {
	case d.state == stateInfinite && other.state == stateInfinite:
		return 0, true
	case d.state == stateInfinite:
		return 1, true
	case other.state == stateInfinite:
		return -1, true
	case d.nanos < other.nanos:
		return -1, true
	case d.nanos > other.nanos:
		return 1, true
	default:
		return 0, true
	}
}

// Less reports whether d is ordered strictly before other.
func (d Duration) Less(other Duration) bool {
	cmp, ok := d.Compare(other)
	return ok && cmp < 0
}

// Greater reports whether d is ordered strictly after other.
func (d Duration) Greater(other Duration) bool {
	cmp, ok := d.Compare(other)
	return ok && cmp > 0
}
