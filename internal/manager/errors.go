package manager

import "net/http"

// notRunningError signals that the loop is not being driven, so work posted
// to it would never run. The HTTP layer maps it to 503.
type notRunningError struct{}

func (notRunningError) Error() string   { return "event loop not running" }
func (notRunningError) StatusCode() int { return http.StatusServiceUnavailable }

// ErrNotRunning is returned by loop-bound operations before Run or after it returns.
var ErrNotRunning error = notRunningError{}

// IsNotRunning reports whether err indicates the loop is not running.
func IsNotRunning(err error) bool {
	_, ok := err.(notRunningError)
	return ok
}

// invalidEventNameError rejects event names that cannot be dispatched.
type invalidEventNameError struct{ name string }

func (e invalidEventNameError) Error() string { return "invalid event name: " + e.name }

// ErrInvalidEventName constructs an invalidEventNameError.
func ErrInvalidEventName(name string) error { return invalidEventNameError{name: name} }

// IsInvalidEventName reports whether err rejects an event name.
func IsInvalidEventName(err error) bool {
	_, ok := err.(invalidEventNameError)
	return ok
}
