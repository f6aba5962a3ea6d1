package qos

import (
	"fmt"
	"math"
	"strings"

	"github.com/drblury/ddsc/internal/runtime/duration"
	errspkg "github.com/drblury/ddsc/internal/runtime/errors"
	"github.com/drblury/ddsc/internal/runtime/native"
)

// History is KeepLast(n) or KeepAll. The zero value is KeepLast(0), which
// the native library rejects when an entity is created with it.
type History struct {
	kind  native.HistoryKind
	depth int
}

// KeepLast keeps the n most recent samples per instance.
func KeepLast(n int) History { return History{kind: native.HistoryKeepLast, depth: n} }

// KeepAll keeps every sample until it is taken.
func KeepAll() History { return History{kind: native.HistoryKeepAll} }

// IsKeepAll reports whether h is KeepAll.
func (h History) IsKeepAll() bool { return h.kind == native.HistoryKeepAll }

// Depth returns n for KeepLast(n); ok is false for KeepAll.
func (h History) Depth() (n int, ok bool) {
	if h.IsKeepAll() {
		return 0, false
	}
	return h.depth, true
}

func (h History) String() string {
	if h.IsKeepAll() {
		return "keep_all"
	}
	return fmt.Sprintf("keep_last(%d)", h.depth)
}

// ToRaw returns the native kind and, for KeepLast, the depth.
func (h History) ToRaw() (native.HistoryKind, *int) {
	if h.IsKeepAll() {
		return h.kind, nil
	}
	n := h.depth
	return h.kind, &n
}

// HistoryFromRaw is the inverse of ToRaw. A depth is required for KeepLast
// and forbidden for KeepAll.
func HistoryFromRaw(kind native.HistoryKind, depth *int) (History, error) {
	switch {
	case kind == native.HistoryKeepLast && depth != nil:
		return KeepLast(*depth), nil
	case kind == native.HistoryKeepAll && depth == nil:
		return KeepAll(), nil
	default:
		return History{}, &errspkg.DecodeError{Policy: "history", Kind: uint32(kind), HasParameter: depth != nil}
	}
}

// encode produces the arguments of the native setter. KeepAll carries a
// zero depth.
func (h History) encode() (native.HistoryKind, int32, error) {
	kind, depth := h.ToRaw()
	if depth == nil {
		return kind, 0, nil
	}
	if *depth > math.MaxInt32 || *depth < math.MinInt32 {
		return 0, 0, fmt.Errorf("ddsc: history depth %d does not fit the native int32", *depth)
	}
	return kind, int32(*depth), nil
}

// Durability selects how long samples outlive their writer.
type Durability int

const (
	Volatile Durability = iota
	TransientLocal
	Transient
	Persistent
)

var durabilityNames = [...]string{
	Volatile:       "volatile",
	TransientLocal: "transient_local",
	Transient:      "transient",
	Persistent:     "persistent",
}

func (d Durability) String() string {
	if d < Volatile || d > Persistent {
		return fmt.Sprintf("durability(%d)", int(d))
	}
	return durabilityNames[d]
}

// ParseDurability accepts the names produced by String, case-insensitively.
func ParseDurability(s string) (Durability, error) {
	for d, name := range durabilityNames {
		if strings.EqualFold(s, name) {
			return Durability(d), nil
		}
	}
	return 0, fmt.Errorf("ddsc: unknown durability %q", s)
}

// ToRaw maps d onto its native enumerator.
func (d Durability) ToRaw() native.DurabilityKind {
	switch d {
	case TransientLocal:
		return native.DurabilityTransientLocal
	case Transient:
		return native.DurabilityTransient
	case Persistent:
		return native.DurabilityPersistent
	default:
		return native.DurabilityVolatile
	}
}

func (d Durability) valid() bool { return d >= Volatile && d <= Persistent }

// DurabilityFromRaw is the inverse of ToRaw.
func DurabilityFromRaw(kind native.DurabilityKind) (Durability, error) {
	switch kind {
	case native.DurabilityVolatile:
		return Volatile, nil
	case native.DurabilityTransientLocal:
		return TransientLocal, nil
	case native.DurabilityTransient:
		return Transient, nil
	case native.DurabilityPersistent:
		return Persistent, nil
	default:
		return 0, &errspkg.DecodeError{Policy: "durability", Kind: uint32(kind)}
	}
}

// Reliability is BestEffort or Reliable with a maximum blocking time.
type Reliability struct {
	kind        native.ReliabilityKind
	maxBlocking duration.Duration
}

// BestEffort never retransmits.
func BestEffort() Reliability { return Reliability{kind: native.ReliabilityBestEffort} }

// Reliable retransmits; a writer blocks for at most maxBlocking when its
// history is full.
func Reliable(maxBlocking duration.Duration) Reliability {
	return Reliability{kind: native.ReliabilityReliable, maxBlocking: maxBlocking}
}

// IsReliable reports whether r is Reliable.
func (r Reliability) IsReliable() bool { return r.kind == native.ReliabilityReliable }

// MaxBlockingTime returns the bound of a Reliable policy.
func (r Reliability) MaxBlockingTime() (duration.Duration, bool) {
	if !r.IsReliable() {
		return duration.Duration{}, false
	}
	return r.maxBlocking, true
}

func (r Reliability) String() string {
	if r.IsReliable() {
		return "reliable(" + r.maxBlocking.String() + ")"
	}
	return "best_effort"
}

// ToRawParts returns the native kind and, for Reliable, the raw blocking
// time.
func (r Reliability) ToRawParts() (native.ReliabilityKind, *native.Duration) {
	if !r.IsReliable() {
		return r.kind, nil
	}
	raw := r.maxBlocking.ToRaw()
	return r.kind, &raw
}

// ReliabilityFromRawParts is the inverse of ToRawParts.
func ReliabilityFromRawParts(kind native.ReliabilityKind, maxBlocking *native.Duration) (Reliability, error) {
	switch {
	case kind == native.ReliabilityBestEffort && maxBlocking == nil:
		return BestEffort(), nil
	case kind == native.ReliabilityReliable && maxBlocking != nil:
		return Reliable(duration.FromRaw(*maxBlocking)), nil
	default:
		return Reliability{}, &errspkg.DecodeError{Policy: "reliability", Kind: uint32(kind), HasParameter: maxBlocking != nil}
	}
}

// encode produces the native setter arguments. BestEffort sends the infinite
// sentinel, which the library ignores for that kind.
func (r Reliability) encode() (native.ReliabilityKind, native.Duration) {
	kind, raw := r.ToRawParts()
	if raw == nil {
		return kind, native.Infinity
	}
	return kind, *raw
}
