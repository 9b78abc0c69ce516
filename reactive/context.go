// Package reactive is a small single-threaded dependency-tracking engine:
// writable signals, lazily memoized computed cells and effects. Computed
// cells support explicit invalidation ("this may have changed, recompute on
// next read") and activation hooks fired when the cell gains its first
// observer or loses its last one, which is what lets callers bridge
// push-based external sources into the graph without holding subscriptions
// nobody is watching.
//
// Everything in this package is confined to a single goroutine. There is no
// locking between reads, writes and effect execution.
package reactive

// OnErrorFunc receives errors returned by effect functions.
type OnErrorFunc func(err error)

// Context owns one reactive graph: the currently tracking observer, the
// batch depth and the queue of effects waiting for the current batch to end.
type Context struct {
	activeObserver observer
	batchDepth     int
	queued         []*effect
	pauseStack     []observer
	onError        OnErrorFunc
}

// NewContext creates a reactive context. onError is invoked for any error
// returned by an effect function; it may be nil to drop them.
func NewContext(onError OnErrorFunc) *Context {
	return &Context{onError: onError}
}

// StartBatch suspends effect execution until the matching EndBatch.
func (c *Context) StartBatch() {
	c.batchDepth++
}

// EndBatch closes the innermost batch. When the outermost batch ends, every
// effect invalidated since StartBatch runs exactly once.
func (c *Context) EndBatch() {
	c.batchDepth--
	if c.batchDepth == 0 {
		c.flush()
	}
}

// Batch runs fn inside a batch boundary. Invalidations raised inside fn are
// applied consistently: dependent effects observe all of them and re-run
// once.
func (c *Context) Batch(fn func()) {
	c.StartBatch()
	defer c.EndBatch()
	fn()
}

// PauseTracking stops dependency collection until ResumeTracking, so reads
// in between do not link the surrounding computation.
func (c *Context) PauseTracking() {
	c.pauseStack = append(c.pauseStack, c.activeObserver)
	c.activeObserver = nil
}

// ResumeTracking undoes the most recent PauseTracking.
func (c *Context) ResumeTracking() {
	lastIdx := len(c.pauseStack) - 1
	c.activeObserver = c.pauseStack[lastIdx]
	c.pauseStack = c.pauseStack[:lastIdx]
}

// track records s as a dependency of the computation currently evaluating,
// if any.
func (c *Context) track(s subject) {
	if c.activeObserver != nil {
		c.activeObserver.record(s)
	}
}

// schedule queues e to run at the end of the current invalidation wave:
// either when the enclosing batch ends or, outside a batch, when the
// triggering write finishes notifying. An effect already queued is not
// queued twice.
func (c *Context) schedule(e *effect) {
	if e.queuedRun || e.disposed {
		return
	}
	e.queuedRun = true
	c.queued = append(c.queued, e)
}

func (c *Context) flush() {
	for len(c.queued) > 0 {
		e := c.queued[0]
		c.queued = c.queued[1:]
		e.queuedRun = false
		if !e.disposed {
			e.run()
		}
	}
}
