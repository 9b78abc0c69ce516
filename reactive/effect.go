package reactive

// effect is an eagerly-run observer. It re-runs whenever one of the subjects
// it read during its last run is invalidated, at most once per batch.
type effect struct {
	tracker
	ctx       *Context
	fn        func() error
	queuedRun bool
	disposed  bool
}

// Effect runs fn immediately, tracking every signal and computed cell it
// reads, and re-runs it whenever one of them changes. Errors returned by fn
// go to the context's OnErrorFunc. The returned stop function detaches the
// effect from all its dependencies; stopping twice is harmless.
func Effect(ctx *Context, fn func() error) (stop func()) {
	if fn == nil {
		panic("reactive: nil effect function")
	}
	e := &effect{ctx: ctx, fn: fn}
	e.run()
	return func() {
		if e.disposed {
			return
		}
		e.disposed = true
		e.detachAll(e)
	}
}

func (e *effect) run() {
	prev := e.ctx.activeObserver
	e.ctx.activeObserver = e
	e.beginRun()
	err := e.fn()
	e.endRun(e)
	e.ctx.activeObserver = prev
	if err != nil && e.ctx.onError != nil {
		e.ctx.onError(err)
	}
}

// invalidate implements observer.
func (e *effect) invalidate() {
	e.ctx.schedule(e)
}

func (e *effect) record(s subject) {
	e.tracker.record(e, s)
}
