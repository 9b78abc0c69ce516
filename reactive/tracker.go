package reactive

import "slices"

// subject is anything computations can depend on: signals and computed
// cells.
type subject interface {
	attach(o observer)
	detach(o observer)
}

// observer is a computation that reads subjects and must be told when one of
// them may have changed: effects and computed cells.
type observer interface {
	invalidate()
	record(s subject)
}

// observerList holds the observers currently attached to a subject.
type observerList struct {
	observers []observer
}

// add attaches o and reports whether it was the first observer. Attaching an
// already attached observer is a no-op.
func (l *observerList) add(o observer) (first bool) {
	if slices.Contains(l.observers, o) {
		return false
	}
	l.observers = append(l.observers, o)
	return len(l.observers) == 1
}

// remove detaches o and reports whether it was the last observer.
func (l *observerList) remove(o observer) (last bool) {
	i := slices.Index(l.observers, o)
	if i < 0 {
		return false
	}
	l.observers = slices.Delete(l.observers, i, i+1)
	return len(l.observers) == 0
}

// invalidateObservers notifies every attached observer. The slice is cloned
// because invalidation may attach or detach observers mid-iteration.
func (l *observerList) invalidateObservers() {
	for _, o := range slices.Clone(l.observers) {
		o.invalidate()
	}
}

// tracker is the dependency-collection half shared by effects and computed
// cells. Between runs it remembers the subjects read during the last run;
// during a run it collects the new set and, at the end, detaches only from
// subjects no longer read. A subject read on consecutive runs stays attached
// throughout, so re-running an observer never bounces a cell through a
// spurious lost-last-observer transition.
type tracker struct {
	sources []subject
	next    []subject
	running bool
}

func (t *tracker) beginRun() {
	t.running = true
	t.next = t.next[:0]
}

// record notes that self read s during the current run, attaching self to s
// if it was not already attached from the previous run.
func (t *tracker) record(self observer, s subject) {
	if !t.running || slices.Contains(t.next, s) {
		return
	}
	t.next = append(t.next, s)
	if !slices.Contains(t.sources, s) {
		s.attach(self)
	}
}

func (t *tracker) endRun(self observer) {
	for _, s := range t.sources {
		if !slices.Contains(t.next, s) {
			s.detach(self)
		}
	}
	t.sources = append(t.sources[:0], t.next...)
	t.running = false
}

// detachAll drops every dependency edge, driving any lost-last-observer
// transitions on the subjects involved.
func (t *tracker) detachAll(self observer) {
	sources := t.sources
	t.sources = nil
	t.next = nil
	for _, s := range sources {
		s.detach(self)
	}
}
