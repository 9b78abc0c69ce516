package eventsource

// Event kinds emitted by Window.
const (
	EventResize           = "resize"
	EventVisibilityChange = "visibilitychange"
)

// Visibility states reported by Window.
const (
	VisibilityVisible = "visible"
	VisibilityHidden  = "hidden"
)

// Window is a stateful sample Source modeled on a browser window: it has a
// size and a visibility state and announces changes to them as events. It
// exists for simulations and tests; any entity implementing Source works
// just as well.
type Window struct {
	*Hub
	width, height int
	visibility    string
}

// NewWindow creates a visible window with the given size.
func NewWindow(width, height int) *Window {
	return &Window{
		Hub:        NewHub(),
		width:      width,
		height:     height,
		visibility: VisibilityVisible,
	}
}

// Width returns the current width.
func (w *Window) Width() int { return w.width }

// Height returns the current height.
func (w *Window) Height() int { return w.height }

// Visibility returns the current visibility state.
func (w *Window) Visibility() string { return w.visibility }

// Resize updates the size and emits a resize event.
func (w *Window) Resize(width, height int) {
	w.width, w.height = width, height
	w.Emit(EventResize)
}

// SetVisibility updates the visibility state and emits a visibilitychange
// event.
func (w *Window) SetVisibility(state string) {
	w.visibility = state
	w.Emit(EventVisibilityChange)
}
