package eventvalue_test

import (
	"testing"

	"github.com/delaneyj/eventwire/eventsource"
	"github.com/delaneyj/eventwire/eventvalue"
	"github.com/delaneyj/eventwire/reactive"
	"github.com/stretchr/testify/assert"
)

const tick = "tick"

// tickSource is a hub with a counter, the smallest stateful event source.
type tickSource struct {
	*eventsource.Hub
	counter int
}

func newTickSource() *tickSource {
	return &tickSource{Hub: eventsource.NewHub()}
}

func (s *tickSource) Tick() {
	s.counter++
	s.Emit(tick)
}

func counterOf(s *tickSource) int { return s.counter }

func newTestContext(t *testing.T) *reactive.Context {
	return reactive.NewContext(func(err error) {
		assert.FailNow(t, err.Error())
	})
}

// should walk the full observe / event / unobserve / dispose lifecycle
func TestLifecycle(t *testing.T) {
	ctx := newTestContext(t)
	src := newTickSource()
	v := eventvalue.New(ctx, src, tick, counterOf)

	// no observer yet, so no listener
	assert.Equal(t, 0, src.ListenerCount(tick))
	assert.False(t, v.Active())

	seen := -1
	stop := reactive.Effect(ctx, func() error {
		seen = v.Value()
		return nil
	})
	assert.Equal(t, 1, src.ListenerCount(tick))
	assert.True(t, v.Active())
	assert.Equal(t, 0, seen)

	src.Tick()
	assert.Equal(t, 1, seen)
	assert.Equal(t, 1, src.ListenerCount(tick), "event handling must not rebind the listener")

	stop()
	assert.Equal(t, 0, src.ListenerCount(tick))
	assert.False(t, v.Active())

	v.Dispose()
	assert.NotPanics(t, func() { src.Tick() })
	assert.Equal(t, 1, seen)
}

// should leave no residual listener when activated and dropped without reads
func TestNoLeakOnImmediateStop(t *testing.T) {
	ctx := newTestContext(t)
	src := newTickSource()
	v := eventvalue.New(ctx, src, tick, counterOf)

	stop := reactive.Effect(ctx, func() error {
		v.Value()
		return nil
	})
	stop()

	assert.Equal(t, 0, src.ListenerCount(tick))
	assert.False(t, v.Active())
}

// should keep a single listener no matter how many observers
func TestManyObserversOneListener(t *testing.T) {
	ctx := newTestContext(t)
	src := newTickSource()
	v := eventvalue.New(ctx, src, tick, counterOf)

	read := func() error {
		v.Value()
		return nil
	}
	stopA := reactive.Effect(ctx, read)
	stopB := reactive.Effect(ctx, read)
	stopC := reactive.Effect(ctx, read)
	assert.Equal(t, 1, src.ListenerCount(tick))

	stopA()
	stopB()
	assert.Equal(t, 1, src.ListenerCount(tick))
	stopC()
	assert.Equal(t, 0, src.ListenerCount(tick))
}

// should not recompute the accessor on every read
func TestValueIsMemoized(t *testing.T) {
	ctx := newTestContext(t)
	src := newTickSource()

	accessorCalls := 0
	v := eventvalue.New(ctx, src, tick, func(s *tickSource) int {
		accessorCalls++
		return s.counter
	})

	stop := reactive.Effect(ctx, func() error {
		v.Value()
		return nil
	})
	defer stop()
	assert.Equal(t, 1, accessorCalls)

	v.Value()
	v.Value()
	assert.Equal(t, 1, accessorCalls)

	src.Tick()
	assert.Equal(t, 2, accessorCalls)
	v.Value()
	assert.Equal(t, 2, accessorCalls)
}

// should recompute fresh after reactivation instead of serving a stale cache
func TestInactiveStateIsNotCached(t *testing.T) {
	ctx := newTestContext(t)
	src := newTickSource()
	v := eventvalue.New(ctx, src, tick, counterOf)

	stop := reactive.Effect(ctx, func() error {
		v.Value()
		return nil
	})
	stop()

	// counter moves while nobody listens; no event reaches the value
	src.Tick()
	src.Tick()

	seen := -1
	stop2 := reactive.Effect(ctx, func() error {
		seen = v.Value()
		return nil
	})
	defer stop2()
	assert.Equal(t, 2, seen)
}

// stickySource simulates sources that deliver an event queued before the
// listener was removed (the media-query-list quirk).
type stickySource struct {
	*eventsource.Hub
	lastListener func()
}

func (s *stickySource) AddListener(kind string, fn func()) func() {
	s.lastListener = fn
	return s.Hub.AddListener(kind, fn)
}

// should drop events delivered after disposal without panicking or recomputing
func TestStaleEventAfterDisposal(t *testing.T) {
	ctx := newTestContext(t)
	src := &stickySource{Hub: eventsource.NewHub()}

	accessorCalls := 0
	v := eventvalue.New(ctx, src, tick, func(s *stickySource) int {
		accessorCalls++
		return 0
	})

	stop := reactive.Effect(ctx, func() error {
		v.Value()
		return nil
	})
	defer stop()
	assert.Equal(t, 1, accessorCalls)

	v.Dispose()
	assert.True(t, v.IsDisposed())

	// the listener was removed, but the source delivers anyway
	assert.NotPanics(t, src.lastListener)
	assert.Equal(t, 1, accessorCalls)
}

// should move the listener exactly once per source swap while active
func TestSetSourceWhileActive(t *testing.T) {
	ctx := newTestContext(t)
	a := newTickSource()
	b := newTickSource()
	v := eventvalue.New(ctx, a, tick, counterOf)

	seen := -1
	runs := 0
	stop := reactive.Effect(ctx, func() error {
		seen = v.Value()
		runs++
		return nil
	})
	defer stop()
	assert.Equal(t, 1, a.ListenerCount(tick))

	b.counter = 7
	v.SetSource(b)

	assert.Equal(t, 0, a.ListenerCount(tick))
	assert.Equal(t, 1, b.ListenerCount(tick))
	assert.Equal(t, 7, seen, "dependents recompute against the new source")
	assert.Equal(t, 2, runs, "the swap is one atomic action")

	// old source events are no longer processed
	a.Tick()
	assert.Equal(t, 7, seen)

	b.Tick()
	assert.Equal(t, 8, seen)
}

// should only reassign, not subscribe, when swapped while inactive
func TestSetSourceWhileInactive(t *testing.T) {
	ctx := newTestContext(t)
	a := newTickSource()
	b := newTickSource()
	v := eventvalue.New(ctx, a, tick, counterOf)

	v.SetSource(b)
	assert.Equal(t, 0, a.ListenerCount(tick))
	assert.Equal(t, 0, b.ListenerCount(tick))

	b.counter = 3
	assert.Equal(t, 3, v.Value())
}

// should always report a source change to dependents of Source
func TestSetSourceNotifiesSourceDependents(t *testing.T) {
	ctx := newTestContext(t)
	a := newTickSource()
	b := newTickSource()
	v := eventvalue.New(ctx, a, tick, counterOf)

	var current *tickSource
	runs := 0
	stop := reactive.Effect(ctx, func() error {
		current = v.Source()
		runs++
		return nil
	})
	defer stop()
	assert.Same(t, a, current)
	assert.Equal(t, 1, runs)

	// the value itself is unobserved, the change is still reported
	v.SetSource(b)
	assert.Same(t, b, current)
	assert.Equal(t, 2, runs)
}

// should refuse to resubscribe after disposal
func TestSetSourceAfterDisposal(t *testing.T) {
	ctx := newTestContext(t)
	a := newTickSource()
	b := newTickSource()
	v := eventvalue.New(ctx, a, tick, counterOf)

	stop := reactive.Effect(ctx, func() error {
		v.Value()
		return nil
	})
	defer stop()

	v.Dispose()
	v.SetSource(b)
	assert.Equal(t, 0, a.ListenerCount(tick))
	assert.Equal(t, 0, b.ListenerCount(tick))
}

// should be idempotent to dispose twice
func TestDisposeTwice(t *testing.T) {
	ctx := newTestContext(t)
	src := newTickSource()
	v := eventvalue.New(ctx, src, tick, counterOf)

	stop := reactive.Effect(ctx, func() error {
		v.Value()
		return nil
	})
	defer stop()

	v.Dispose()
	assert.NotPanics(t, v.Dispose)
	assert.Equal(t, 0, src.ListenerCount(tick))
}

// should fail fast on missing constructor arguments
func TestConstructorPreconditions(t *testing.T) {
	ctx := newTestContext(t)
	src := newTickSource()

	assert.Panics(t, func() {
		eventvalue.New(nil, src, tick, counterOf)
	})
	assert.Panics(t, func() {
		eventvalue.New(ctx, (*tickSource)(nil), tick, counterOf)
	})
	assert.Panics(t, func() {
		eventvalue.New(ctx, src, "", counterOf)
	})
	assert.Panics(t, func() {
		eventvalue.New(ctx, src, tick, (func(*tickSource) int)(nil))
	})
	assert.Panics(t, func() {
		v := eventvalue.New(ctx, src, tick, counterOf)
		v.SetSource(nil)
	})
}

// should compose with the window sample source
func TestWindowWidth(t *testing.T) {
	ctx := newTestContext(t)
	w := eventsource.NewWindow(800, 600)

	width := eventvalue.New(ctx, w, eventsource.EventResize,
		func(w *eventsource.Window) int { return w.Width() })

	seen := 0
	stop := reactive.Effect(ctx, func() error {
		seen = width.Value()
		return nil
	})
	defer stop()
	assert.Equal(t, 800, seen)

	w.Resize(1024, 768)
	assert.Equal(t, 1024, seen)
}
