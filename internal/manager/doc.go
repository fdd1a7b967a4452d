// Package manager hosts one reactive runtime for the daemon: the event loop,
// the window target and document, and the idle detector subscribed to them.
// It is structured into small files by concern:
//
//   - manager.go: core Manager type, Run, simple getters.
//   - config.go: ManagerConfig and package defaults; NewWithConfig applies defaults.
//   - types.go: lifecycle State.
//   - errors.go: error types and helpers (IsNotRunning, IsInvalidEventName).
//   - events.go: publishers for idle detector lifecycle events.
//   - ops.go: operations marshalled onto the loop (Dispatch, SetHidden, SetThreshold).
//   - status_report.go: Idle/Status reporting helpers.
//
// Hook state is only touched on the loop goroutine. Methods called from HTTP
// handlers post their work with loop.Call and wait for it, so they fail with
// a not-running error until Run has been started.
package manager
