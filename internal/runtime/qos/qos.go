// Package qos builds and reads native QoS policy blocks.
//
// A QoS is a mutable builder: setters encode a policy into the native block
// and return the receiver so calls chain. The first encoding failure is kept
// and reported by Err; entity constructors refuse a QoS whose Err is set.
package qos

import (
	"fmt"
	"sync"

	errspkg "github.com/drblury/ddsc/internal/runtime/errors"
	"github.com/drblury/ddsc/internal/runtime/hooks"
	"github.com/drblury/ddsc/internal/runtime/native"
	"github.com/drblury/ddsc/internal/runtime/resource"
)

// QoS owns one native dds_qos_t.
type QoS struct {
	env   resource.Env
	owner *resource.Owner[native.QoSPtr]

	mu  sync.Mutex
	err error
}

// New allocates an empty QoS block. Every policy is unset until a setter
// runs, so the library defaults apply.
func New(env resource.Env) (*QoS, error) {
	if err := env.Validate(); err != nil {
		return nil, err
	}
	return allocate(env)
}

func allocate(env resource.Env) (*QoS, error) {
	ptr := env.API.CreateQoS()
	if ptr == 0 {
		err := fmt.Errorf("ddsc: create qos: %w", errspkg.ErrOutOfResources)
		env.Fail(hooks.Event{Kind: hooks.KindQoS}, err)
		return nil, err
	}
	api := env.API
	owner := resource.Adopt(env, hooks.KindQoS, ptr, func(p native.QoSPtr) error {
		api.DeleteQoS(p)
		return nil
	}, hooks.Event{})
	return &QoS{env: env, owner: owner}, nil
}

// ID returns the resource identifier of the block.
func (q *QoS) ID() string { return q.owner.ID() }

// Ptr returns the native pointer for entity creation. A nil QoS yields the
// NULL pointer, meaning "library defaults".
func (q *QoS) Ptr() native.QoSPtr {
	if q == nil {
		return 0
	}
	return q.owner.Handle()
}

// Err returns the first error recorded by a setter, or nil.
func (q *QoS) Err() error {
	if q == nil {
		return nil
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.err
}

func (q *QoS) fail(err error) {
	if q.err == nil {
		q.err = err
	}
}

// apply runs set under the lock unless the block is closed. Later setters
// still run after a failure; only the first error is kept.
func (q *QoS) apply(set func(api native.API, ptr native.QoSPtr) error) *QoS {
	q.mu.Lock()
	defer q.mu.Unlock()
	if err := q.owner.Check(); err != nil {
		q.fail(err)
		return q
	}
	if err := set(q.env.API, q.owner.Handle()); err != nil {
		q.fail(err)
	}
	return q
}

// History sets the history policy.
func (q *QoS) History(h History) *QoS {
	return q.apply(func(api native.API, ptr native.QoSPtr) error {
		kind, depth, err := h.encode()
		if err != nil {
			return err
		}
		api.QsetHistory(ptr, kind, depth)
		return nil
	})
}

// Durability sets the durability policy.
func (q *QoS) Durability(d Durability) *QoS {
	return q.apply(func(api native.API, ptr native.QoSPtr) error {
		if !d.valid() {
			return fmt.Errorf("ddsc: invalid durability %d", int(d))
		}
		api.QsetDurability(ptr, d.ToRaw())
		return nil
	})
}

// Reliability sets the reliability policy. The max blocking time is passed
// through as is; an invalid one is rejected by the native library when an
// entity is created with the block.
func (q *QoS) Reliability(r Reliability) *QoS {
	return q.apply(func(api native.API, ptr native.QoSPtr) error {
		kind, raw := r.encode()
		api.QsetReliability(ptr, kind, raw)
		return nil
	})
}

// Partitions replaces the partition list. Each name is copied into a
// transient native string that is freed before Partitions returns, on every
// path. An empty list clears the partitions.
func (q *QoS) Partitions(names []string) *QoS {
	return q.apply(func(api native.API, ptr native.QoSPtr) error {
		cstrs := make([]native.CString, 0, len(names))
		defer func() {
			for _, c := range cstrs {
				api.FreeCString(c)
			}
		}()
		for i, name := range names {
			c, err := api.NewCString(name)
			if err != nil {
				return fmt.Errorf("ddsc: partition %d: %w", i, err)
			}
			cstrs = append(cstrs, c)
		}
		var arr []native.CString
		if len(cstrs) > 0 {
			arr = cstrs
		}
		api.QsetPartition(ptr, uint32(len(cstrs)), arr)
		return nil
	})
}

// Reset returns every policy to unset and clears a recorded error.
func (q *QoS) Reset() *QoS {
	q.mu.Lock()
	defer q.mu.Unlock()
	if err := q.owner.Check(); err != nil {
		q.fail(err)
		return q
	}
	q.env.API.ResetQoS(q.owner.Handle())
	q.err = nil
	return q
}

// Copy allocates an independent block with the same policies. The copy does
// not inherit a recorded error.
func (q *QoS) Copy() (*QoS, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if err := q.owner.Check(); err != nil {
		return nil, err
	}
	dup, err := allocate(q.env)
	if err != nil {
		return nil, err
	}
	code := q.env.API.CopyQoS(dup.owner.Handle(), q.owner.Handle())
	if _, err := errspkg.Classify(int32(code)); err != nil {
		dup.Close()
		err = fmt.Errorf("ddsc: copy qos: %w", err)
		q.env.Fail(hooks.Event{Kind: hooks.KindQoS}, err)
		return nil, err
	}
	return dup, nil
}

// Equal reports whether both blocks carry the same policies. Closed blocks
// are never equal.
func (q *QoS) Equal(other *QoS) bool {
	if q == nil || other == nil {
		return q == other
	}
	if q == other {
		q.mu.Lock()
		defer q.mu.Unlock()
		return !q.owner.Closed()
	}
	// Lock in ID order so concurrent a.Equal(b) and b.Equal(a) cannot deadlock.
	first, second := q, other
	if second.ID() < first.ID() {
		first, second = second, first
	}
	first.mu.Lock()
	defer first.mu.Unlock()
	second.mu.Lock()
	defer second.mu.Unlock()

	if q.owner.Closed() || other.owner.Closed() {
		return false
	}
	return q.env.API.QoSEqual(q.owner.Handle(), other.owner.Handle())
}

// Close releases the native block. It is safe to call more than once.
func (q *QoS) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.owner.Close()
}

// Closed reports whether Close has run.
func (q *QoS) Closed() bool { return q.owner.Closed() }

// read must be called with q.mu held.
func (q *QoS) read() (native.API, native.QoSPtr, error) {
	if err := q.owner.Check(); err != nil {
		return nil, 0, err
	}
	return q.env.API, q.owner.Handle(), nil
}

// GetHistory decodes the history policy. It returns ErrPolicyNotSet when the
// block does not carry one.
func (q *QoS) GetHistory() (History, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	api, ptr, err := q.read()
	if err != nil {
		return History{}, err
	}
	kind, depth, ok := api.QgetHistory(ptr)
	if !ok {
		return History{}, fmt.Errorf("%w: history", errspkg.ErrPolicyNotSet)
	}
	if kind == native.HistoryKeepAll {
		return HistoryFromRaw(kind, nil)
	}
	n := int(depth)
	return HistoryFromRaw(kind, &n)
}

// GetDurability decodes the durability policy.
func (q *QoS) GetDurability() (Durability, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	api, ptr, err := q.read()
	if err != nil {
		return 0, err
	}
	kind, ok := api.QgetDurability(ptr)
	if !ok {
		return 0, fmt.Errorf("%w: durability", errspkg.ErrPolicyNotSet)
	}
	return DurabilityFromRaw(kind)
}

// GetReliability decodes the reliability policy. The native blocking time of
// a best-effort policy is ignored.
func (q *QoS) GetReliability() (Reliability, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	api, ptr, err := q.read()
	if err != nil {
		return Reliability{}, err
	}
	kind, raw, ok := api.QgetReliability(ptr)
	if !ok {
		return Reliability{}, fmt.Errorf("%w: reliability", errspkg.ErrPolicyNotSet)
	}
	if kind == native.ReliabilityBestEffort {
		return ReliabilityFromRawParts(kind, nil)
	}
	return ReliabilityFromRawParts(kind, &raw)
}

// GetPartitions returns the partition list in order.
func (q *QoS) GetPartitions() ([]string, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	api, ptr, err := q.read()
	if err != nil {
		return nil, err
	}
	names, ok := api.QgetPartition(ptr)
	if !ok {
		return nil, fmt.Errorf("%w: partition", errspkg.ErrPolicyNotSet)
	}
	return names, nil
}
