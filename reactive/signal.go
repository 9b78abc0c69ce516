package reactive

// Signal is a writable tracked value.
type Signal[T comparable] struct {
	observerList
	ctx   *Context
	value T
}

// NewSignal creates a signal holding initial.
func NewSignal[T comparable](ctx *Context, initial T) *Signal[T] {
	return &Signal[T]{ctx: ctx, value: initial}
}

// Read returns the current value and links the computation currently
// evaluating, if any, as a dependent.
func (s *Signal[T]) Read() T {
	s.ctx.track(s)
	return s.value
}

// Peek returns the current value without linking a dependency.
func (s *Signal[T]) Peek() T {
	return s.value
}

// Write stores v and invalidates dependents. Writing the current value is a
// no-op.
func (s *Signal[T]) Write(v T) {
	if s.value == v {
		return
	}
	s.value = v
	s.invalidateObservers()
	if s.ctx.batchDepth == 0 {
		s.ctx.flush()
	}
}

func (s *Signal[T]) attach(o observer) {
	s.add(o)
}

func (s *Signal[T]) detach(o observer) {
	s.remove(o)
}
