package events

import "sync"

// Value is a reactive value: Set only notifies when the value changes.
type Value[T comparable] struct {
	mu       sync.RWMutex
	value    T
	watchers []*watcher[T]
}

type watcher[T comparable] struct {
	fn func(T)
}

// NewValue creates a Value holding initial.
func NewValue[T comparable](initial T) *Value[T] {
	return &Value[T]{value: initial}
}

// Get returns the current value.
func (v *Value[T]) Get() T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.value
}

// Set stores next and calls watchers if it differs from the current value.
// Returns true if the value changed.
func (v *Value[T]) Set(next T) bool {
	v.mu.Lock()
	if v.value == next {
		v.mu.Unlock()
		return false
	}
	v.value = next
	ws := append([]*watcher[T](nil), v.watchers...)
	v.mu.Unlock()

	for _, w := range ws {
		w.fn(next)
	}
	return true
}

// Watch registers fn to be called on every change.
// The returned function removes the watcher.
func (v *Value[T]) Watch(fn func(T)) func() {
	w := &watcher[T]{fn: fn}

	v.mu.Lock()
	v.watchers = append(v.watchers, w)
	v.mu.Unlock()

	return func() {
		v.mu.Lock()
		defer v.mu.Unlock()
		for i, other := range v.watchers {
			if other == w {
				v.watchers = append(v.watchers[:i], v.watchers[i+1:]...)
				return
			}
		}
	}
}
