package details

import "sync"

// Event is a one-shot consumable signal. Emit stores a value; Consume returns
// it at most once. A second Consume before a new Emit yields nothing, which is
// what keeps navigation and feedback signals from replaying when an observer
// re-subscribes. Single writer; overlapping emits are last-write-wins.
type Event[T any] struct {
	mu      sync.Mutex
	value   T
	pending bool
}

// Emit stores v as the undelivered value, replacing any unconsumed one.
func (e *Event[T]) Emit(v T) {
	e.mu.Lock()
	e.value = v
	e.pending = true
	e.mu.Unlock()
}

// Consume returns the undelivered value, if any, and marks it consumed.
func (e *Event[T]) Consume() (T, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	var zero T
	if !e.pending {
		return zero, false
	}
	v := e.value
	e.value = zero
	e.pending = false
	return v, true
}
