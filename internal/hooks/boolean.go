package hooks

import "sync/atomic"

// Boolean is a flag with stable setter funcs and a reset to its initial value.
type Boolean struct {
	initial bool
	v       atomic.Bool

	// SetTrue and SetFalse are bound once and stay the same func values.
	SetTrue  func()
	SetFalse func()
}

// NewBoolean returns a Boolean starting at initial.
func NewBoolean(initial bool) *Boolean {
	b := &Boolean{initial: initial}
	b.v.Store(initial)
	b.SetTrue = func() { b.v.Store(true) }
	b.SetFalse = func() { b.v.Store(false) }
	return b
}

// Value returns the current value.
func (b *Boolean) Value() bool { return b.v.Load() }

// Set stores v.
func (b *Boolean) Set(v bool) { b.v.Store(v) }

// Reset restores the initial value.
func (b *Boolean) Reset() { b.v.Store(b.initial) }
