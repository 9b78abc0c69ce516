// Package eventsource defines the contract for push-based external event
// emitters and provides an in-memory implementation suitable for tests,
// benchmarks and simulations.
package eventsource

// Source is an external entity that emits named events. A listener added for
// a kind is invoked zero or more times, asynchronously with respect to
// unrelated sources, until the returned remove function is called. Removal
// is idempotent.
//
// Some real-world sources may still deliver an already queued event after
// removal; consumers that care must guard for that themselves.
type Source interface {
	AddListener(kind string, fn func()) (remove func())
}
