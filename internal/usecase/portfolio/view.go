package portfolio

import (
	"sync"
)

// View is a read-only, subscribable window onto one collection of the
// Store. Value and subscriber callbacks always receive copies, so callers
// can never mutate Store-owned state through a View.
type View[T any] struct {
	mu     sync.RWMutex
	value  T
	clone  func(T) T
	subs   []subscription[T]
	nextID int
}

type subscription[T any] struct {
	id int
	fn func(T)
}

func newView[T any](initial T, clone func(T) T) *View[T] {
	return &View[T]{value: clone(initial), clone: clone}
}

// Value returns a copy of the current value.
func (v *View[T]) Value() T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.clone(v.value)
}

// Subscribe registers fn to be called with the new value every time the
// collection changes. Callbacks run synchronously on the goroutine that
// performed the mutation, in subscription order. The returned cancel func
// removes the subscription; calling it more than once is harmless.
func (v *View[T]) Subscribe(fn func(T)) (cancel func()) {
	v.mu.Lock()
	v.nextID++
	id := v.nextID
	v.subs = append(v.subs, subscription[T]{id: id, fn: fn})
	v.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { v.unsubscribe(id) })
	}
}

func (v *View[T]) unsubscribe(id int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for i, s := range v.subs {
		if s.id == id {
			v.subs = append(v.subs[:i:i], v.subs[i+1:]...)
			return
		}
	}
}

// set stores a copy of value and returns a func that notifies the current
// subscribers. The Store calls set under its own lock and runs the
// returned func only after releasing it.
func (v *View[T]) set(value T) func() {
	snapshot := v.clone(value)

	v.mu.Lock()
	v.value = snapshot
	v.mu.Unlock()

	return func() { v.publish(snapshot) }
}

func (v *View[T]) publish(value T) {
	v.mu.RLock()
	subs := make([]subscription[T], len(v.subs))
	copy(subs, v.subs)
	v.mu.RUnlock()

	for _, s := range subs {
		s.fn(v.clone(value))
	}
}
