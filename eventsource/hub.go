package eventsource

import (
	"github.com/cespare/xxhash/v2"
	mapset "github.com/deckarep/golang-set/v2"
)

// Hub is an in-memory Source: listeners are grouped per event kind and
// Emit fans an event out to them synchronously, on the caller's goroutine.
// Like everything in this module it is confined to a single goroutine.
type Hub struct {
	listeners map[uint64]mapset.Set[*listener]
}

type listener struct {
	fn func()
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{listeners: map[uint64]mapset.Set[*listener]{}}
}

// AddListener registers fn for events of the given kind and returns its
// remove function. fn must be non-nil.
func (h *Hub) AddListener(kind string, fn func()) (remove func()) {
	if fn == nil {
		panic("eventsource: nil listener")
	}
	key := kindKey(kind)
	set, ok := h.listeners[key]
	if !ok {
		set = mapset.NewThreadUnsafeSet[*listener]()
		h.listeners[key] = set
	}
	l := &listener{fn: fn}
	set.Add(l)
	return func() {
		set.Remove(l)
	}
}

// Emit invokes every listener registered for kind. The listener set is
// snapshotted first, and listeners removed by an earlier callback in the
// same fan-out are skipped. Emitting a kind nobody listens to is a no-op.
func (h *Hub) Emit(kind string) {
	set, ok := h.listeners[kindKey(kind)]
	if !ok {
		return
	}
	for _, l := range set.ToSlice() {
		if set.Contains(l) {
			l.fn()
		}
	}
}

// ListenerCount returns the number of listeners registered for kind.
func (h *Hub) ListenerCount(kind string) int {
	set, ok := h.listeners[kindKey(kind)]
	if !ok {
		return 0
	}
	return set.Cardinality()
}

// kindKey interns an event kind to the map key used for its listener set.
func kindKey(kind string) uint64 {
	return xxhash.Sum64String(kind)
}
