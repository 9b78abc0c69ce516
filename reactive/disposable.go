package reactive

// Disposable is implemented by components with a permanent teardown state.
// Once disposed a component performs no further side effects.
type Disposable interface {
	Dispose()
	IsDisposed() bool
}

// IsDisposed reports whether v is a Disposable that has been disposed. It is
// cheap and safe to call from inside asynchronous callbacks, which is the
// intended use: a listener holding a reference to its owner can check
// liveness before acting on a notification that may have been delivered
// after teardown.
func IsDisposed(v any) bool {
	d, ok := v.(Disposable)
	return ok && d.IsDisposed()
}
