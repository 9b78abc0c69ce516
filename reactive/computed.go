package reactive

// Computed is a memoized cell. Its function runs lazily: only when the cell
// is read while marked dirty. A cell becomes dirty when a dependency
// changes, when Invalidate is called, or when its last observer detaches
// (the cache of an unobserved cell is never trusted, so reads after
// reactivation always compute from current inputs).
//
// While the cell has at least one observer the recomputed value is cached.
// An untracked read of an unobserved cell computes fresh every time.
type Computed[T comparable] struct {
	observerList
	tracker

	ctx          *Context
	fn           func() T
	value        T
	dirty        bool
	disposed     bool
	onActivate   func()
	onDeactivate func()
}

// NewComputed creates a computed cell evaluating fn.
func NewComputed[T comparable](ctx *Context, fn func() T) *Computed[T] {
	if fn == nil {
		panic("reactive: nil computed function")
	}
	return &Computed[T]{ctx: ctx, fn: fn, dirty: true}
}

// ActivationHooks registers callbacks fired on the cell's observer-count
// transitions: onActivate when it gains its first observer, onDeactivate
// when it loses its last one. The transitions fire only at the 0-to-1 and
// 1-to-0 boundaries, never for intermediate counts, and never after Dispose.
// Must be called before the cell is first observed.
func (c *Computed[T]) ActivationHooks(onActivate, onDeactivate func()) {
	c.onActivate = onActivate
	c.onDeactivate = onDeactivate
}

// Read returns the cell's value, recomputing it first if the cell is dirty.
// Reading from inside a tracked computation links that computation as an
// observer, which may fire the activation hook before the value is computed.
func (c *Computed[T]) Read() T {
	c.ctx.track(c)
	if c.dirty && !c.disposed {
		c.recompute()
		if len(c.observers) > 0 {
			c.dirty = false
		}
	}
	return c.value
}

// Peek returns the cell's value without linking a dependency, recomputing it
// first if dirty.
func (c *Computed[T]) Peek() T {
	if c.dirty && !c.disposed {
		c.recompute()
		if len(c.observers) > 0 {
			c.dirty = false
		}
	}
	return c.value
}

// Invalidate marks the value as possibly changed without recomputing it.
// Observers are notified and the next read recomputes. Invalidating an
// already dirty or disposed cell is a no-op.
func (c *Computed[T]) Invalidate() {
	if c.disposed || c.dirty {
		return
	}
	c.dirty = true
	c.invalidateObservers()
	if c.ctx.batchDepth == 0 {
		c.ctx.flush()
	}
}

// Dispose permanently detaches the cell from its dependencies. Reads after
// disposal return the last value without recomputing; activation hooks never
// fire again.
func (c *Computed[T]) Dispose() {
	if c.disposed {
		return
	}
	c.disposed = true
	c.detachAll(c)
	c.observers = nil
}

// IsDisposed reports whether Dispose has been called.
func (c *Computed[T]) IsDisposed() bool {
	return c.disposed
}

func (c *Computed[T]) recompute() {
	prev := c.ctx.activeObserver
	c.ctx.activeObserver = c
	c.beginRun()
	c.value = c.fn()
	c.endRun(c)
	c.ctx.activeObserver = prev
}

// invalidate implements observer: a dependency of the cell changed.
func (c *Computed[T]) invalidate() {
	if c.disposed || c.dirty {
		return
	}
	c.dirty = true
	c.invalidateObservers()
}

func (c *Computed[T]) record(s subject) {
	c.tracker.record(c, s)
}

func (c *Computed[T]) attach(o observer) {
	if c.disposed {
		return
	}
	if first := c.add(o); first && c.onActivate != nil {
		c.onActivate()
	}
}

func (c *Computed[T]) detach(o observer) {
	if last := c.remove(o); last {
		// Nobody is left to observe invalidations, so the cache cannot be
		// kept honest. Force the next read to compute fresh.
		c.dirty = true
		if !c.disposed && c.onDeactivate != nil {
			c.onDeactivate()
		}
	}
}
