package hooks

import (
	"fmt"
	"sync"

	"dario.cat/mergo"
)

// Object is a struct-valued state container whose updates are merged into
// the current value: non-zero fields of an update override, zero fields keep
// the current value.
type Object[T any] struct {
	mu    sync.RWMutex
	state T
}

// NewObject returns an Object holding initial.
func NewObject[T any](initial T) *Object[T] {
	return &Object[T]{state: initial}
}

// Get returns the current value.
func (o *Object[T]) Get() T {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.state
}

// Merge merges partial into the current value.
func (o *Object[T]) Merge(partial T) error {
	return o.Update(func(T) T { return partial })
}

// Update merges the value returned by fn(current) into the current value.
func (o *Object[T]) Update(fn func(prev T) T) error {
	if fn == nil {
		return ErrNilUpdate
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	next := o.state
	if err := mergo.Merge(&next, fn(o.state), mergo.WithOverride); err != nil {
		return fmt.Errorf("invalid new state: %w", err)
	}
	o.state = next
	return nil
}
