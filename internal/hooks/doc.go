// Package hooks implements cancellable, rebindable, time-based callbacks and
// the idle detector built on them. It is structured into small files by
// concern:
//
//   - latest.go: Latest, the slot holding the most recently supplied callback.
//   - delay.go: Delay, an optional duration (the zero Delay is disabled).
//   - timer.go: DelayTimer, one-shot/repeating timer with 1:1 handle identity.
//   - timeout.go, interval.go: render-style consumers of DelayTimer.
//   - activity.go: ActivityMultiplexer, fan-in of named events + visibility.
//   - idle.go: IdleDetector, the Active/Idle state machine.
//   - keypress.go, window.go, previous.go, object.go, boolean.go: small
//     state helpers that share the same listener and render conventions.
//   - errors.go, events.go, metrics.go, logging.go: ambient concerns.
//
// Every type here is driven from a single loop goroutine (see package loop).
// Only the read accessors documented as such may be called from elsewhere.
package hooks
