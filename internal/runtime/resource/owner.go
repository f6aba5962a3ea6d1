package resource

import (
	sterrors "errors"
	"runtime"
	"sync"
	"sync/atomic"

	errspkg "github.com/drblury/ddsc/internal/runtime/errors"
	"github.com/drblury/ddsc/internal/runtime/hooks"
	"github.com/drblury/ddsc/internal/runtime/ids"
	"github.com/drblury/ddsc/internal/runtime/logging"
)

// Deleter releases a native resource. Deleters that cannot fail return nil.
type Deleter[H any] func(H) error

// Owner exclusively owns one native resource of handle type H.
type Owner[H any] struct {
	id     string
	kind   string
	handle H
	rel    *releaser[H]
	stop   runtime.Cleanup
}

// releaser is shared by Close and the runtime cleanup. It must never point
// back at its Owner, or the Owner would stay reachable forever.
type releaser[H any] struct {
	once    sync.Once
	closed  atomic.Bool
	handle  H
	deleter Deleter[H]
	event   hooks.Event
	hooks   hooks.Hooks
	logger  logging.ServiceLogger
}

// Adopt takes ownership of a freshly created native resource and fires the
// OnCreate hook. event describes the resource; its ID and Kind are filled in.
func Adopt[H any](env Env, kind string, handle H, deleter Deleter[H], event hooks.Event) *Owner[H] {
	id := ids.ResourceID(kind)
	event.ID = id
	event.Kind = kind

	o := &Owner[H]{
		id:     id,
		kind:   kind,
		handle: handle,
		rel: &releaser[H]{
			handle:  handle,
			deleter: deleter,
			event:   event,
			hooks:   env.Hooks,
			logger:  env.Log(),
		},
	}
	o.stop = runtime.AddCleanup(o, func(r *releaser[H]) { r.release(true) }, o.rel)
	env.Hooks.Created(event)
	return o
}

// ID returns the identifier assigned at adoption, e.g. "topic-01J...".
func (o *Owner[H]) ID() string { return o.id }

// Kind returns the resource kind passed to Adopt.
func (o *Owner[H]) Kind() string { return o.kind }

// Handle returns the native handle. It stays readable after Close but must
// not be passed to the native library any more.
func (o *Owner[H]) Handle() H { return o.handle }

// Event returns the lifecycle event template describing this resource.
func (o *Owner[H]) Event() hooks.Event { return o.rel.event }

// Closed reports whether the resource has been released.
func (o *Owner[H]) Closed() bool { return o.rel.closed.Load() }

// Check returns ErrClosed once the resource has been released.
func (o *Owner[H]) Check() error {
	if o.Closed() {
		return errspkg.ErrClosed
	}
	return nil
}

// Close releases the native resource. Calling Close again is a no-op. A
// failure reported by the deleter goes to the OnError hook and the logger.
func (o *Owner[H]) Close() {
	o.stop.Stop()
	o.rel.release(false)
	runtime.KeepAlive(o)
}

func (r *releaser[H]) release(fromCleanup bool) {
	r.once.Do(func() {
		r.closed.Store(true)
		err := r.deleter(r.handle)
		if fromCleanup {
			r.logger.Debug("Native resource released by cleanup", logging.LogFields{
				"kind":        r.event.Kind,
				"resource_id": r.event.ID,
			})
		}
		if sterrors.Is(err, errspkg.ErrAlreadyDeleted) {
			// A participant delete cascades to its children.
			r.logger.Debug("Native resource already deleted", logging.LogFields{
				"kind":        r.event.Kind,
				"resource_id": r.event.ID,
			})
			err = nil
		}
		if err != nil {
			failed := r.event
			failed.Op = hooks.OpDelete
			failed.Code = errspkg.CodeOf(err)
			r.logger.Error("Native delete failed", err, logging.LogFields{
				"kind":        r.event.Kind,
				"resource_id": r.event.ID,
				"code":        failed.Code,
			})
			r.hooks.Failed(failed, err)
			return
		}
		r.hooks.Deleted(r.event)
	})
}
