package hooks

import "sync/atomic"

// Latest holds the most recently supplied callback. A timer armed long ago
// reads it at fire time, so it always calls the last callback set rather
// than the one that was current when it was armed.
type Latest struct {
	fn atomic.Pointer[func()]
}

// Set overwrites the stored callback. A nil fn clears it.
func (l *Latest) Set(fn func()) {
	if fn == nil {
		l.fn.Store(nil)
		return
	}
	l.fn.Store(&fn)
}

// Invoke calls the stored callback, if any.
func (l *Latest) Invoke() {
	if p := l.fn.Load(); p != nil {
		(*p)()
	}
}
