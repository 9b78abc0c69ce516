// Package eventvalue exposes a value owned by an external event-emitting
// entity as a lazily memoized tracked value, subscribing to the entity only
// while someone observes the value.
//
// A typical instantiation makes a window's width observable by listening for
// resize events:
//
//	width := eventvalue.New(ctx, window, eventsource.EventResize,
//		func(w *eventsource.Window) int { return w.Width() })
//
// No listener is added to the window until a tracked computation reads
// width.Value(). The first observer causes the listener to be added and the
// last observer leaving causes it to be removed, so an unobserved value
// costs nothing on the event source.
package eventvalue

import (
	"github.com/delaneyj/eventwire/eventsource"
	"github.com/delaneyj/eventwire/reactive"
)

// SourceType constrains the sources a Value can bind to. Comparability is
// required so the source reference itself can be held in a signal.
type SourceType interface {
	eventsource.Source
	comparable
}

// Value binds an event source to a derived value inside a reactive graph.
//
// Exactly one listener exists on the source while the value is observed and
// none otherwise. The accessor is pure: it must derive the value from the
// source's current state with no side effects, so that re-evaluation at an
// arbitrary later point is safe.
type Value[S SourceType, T comparable] struct {
	ctx      *reactive.Context
	kind     string
	accessor func(S) T
	src      *reactive.Signal[S]
	cell     *reactive.Computed[T]
	unbind   func()
	active   bool
	disposed bool
}

// New creates a Value deriving accessor(source), re-derived whenever source
// emits a kind event while observed or the source reference changes. All
// arguments are required; a nil context, zero source, empty kind or nil
// accessor panics.
func New[S SourceType, T comparable](ctx *reactive.Context, source S, kind string, accessor func(S) T) *Value[S, T] {
	var zero S
	switch {
	case ctx == nil:
		panic("eventvalue: nil reactive context")
	case source == zero:
		panic("eventvalue: nil event source")
	case kind == "":
		panic("eventvalue: empty event kind")
	case accessor == nil:
		panic("eventvalue: nil accessor")
	}
	v := &Value[S, T]{
		ctx:      ctx,
		kind:     kind,
		accessor: accessor,
	}
	v.src = reactive.NewSignal(ctx, source)
	// Reading the source through the signal makes the cell re-run when the
	// source reference changes, not just when an event fires.
	v.cell = reactive.NewComputed(ctx, func() T {
		return v.accessor(v.src.Read())
	})
	v.cell.ActivationHooks(v.onActivate, v.onDeactivate)
	return v
}

// Source returns the current event source as a tracked read: computations
// reading it re-run when the source reference changes.
func (v *Value[S, T]) Source() S {
	return v.src.Read()
}

// SetSource swaps the event source. While the value is observed the listener
// moves from the old source to the new one with no window in which an event
// from either could be misattributed; the whole swap is one atomic action.
// The change is always reported to dependents of Source, observed or not.
// Calling SetSource on a disposed value is a no-op.
func (v *Value[S, T]) SetSource(source S) {
	if v.disposed {
		return
	}
	var zero S
	if source == zero {
		panic("eventvalue: nil event source")
	}
	v.ctx.Batch(func() {
		if v.active {
			v.unbindListener()
		}
		v.src.Write(source)
		if v.active {
			v.bindListener()
		}
	})
}

// Value returns the derived value. Reads are memoized: the accessor re-runs
// only after the source reference changed or an event fired while observed,
// never on every read. Reading from a tracked computation makes that
// computation an observer, which is what gates the event subscription.
func (v *Value[S, T]) Value() T {
	return v.cell.Read()
}

// Active reports whether the value currently has observers, which by
// construction is also whether a listener exists on the source.
func (v *Value[S, T]) Active() bool {
	return v.active
}

// Dispose removes any live listener and permanently ends the value's
// participation in the graph. Events already queued for delivery are dropped
// silently when they arrive.
func (v *Value[S, T]) Dispose() {
	if v.disposed {
		return
	}
	v.disposed = true
	if v.active {
		v.active = false
		v.unbindListener()
	}
	v.cell.Dispose()
}

// IsDisposed reports whether Dispose has been called.
func (v *Value[S, T]) IsDisposed() bool {
	return v.disposed
}

// onActivate is invoked by the engine when the first observer arrives.
func (v *Value[S, T]) onActivate() {
	if v.disposed {
		return
	}
	v.active = true
	v.bindListener()
}

// onDeactivate is invoked by the engine when the last observer leaves.
func (v *Value[S, T]) onDeactivate() {
	v.active = false
	v.unbindListener()
}

// onEvent handles a kind event from the current source. Some sources deliver
// an already queued event after the listener was removed (media query lists
// on some browsers are the classic case), so a disposal check comes first
// and a stale delivery is dropped silently. A live delivery marks the value
// as possibly changed inside an action boundary; the recompute itself
// happens lazily on the next read.
func (v *Value[S, T]) onEvent() {
	if reactive.IsDisposed(v) {
		return
	}
	v.ctx.Batch(func() {
		v.cell.Invalidate()
	})
}

func (v *Value[S, T]) bindListener() {
	v.unbind = v.src.Peek().AddListener(v.kind, v.onEvent)
}

func (v *Value[S, T]) unbindListener() {
	if v.unbind != nil {
		v.unbind()
		v.unbind = nil
	}
}
