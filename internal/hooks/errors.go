package hooks

import (
	"errors"
	"fmt"
	"time"
)

// invalidDelayError rejects semantically invalid durations (negative delays).
type invalidDelayError struct {
	what string
	d    time.Duration
}

func (e invalidDelayError) Error() string {
	return fmt.Sprintf("invalid %s: %s must not be negative", e.what, e.d)
}

// IsInvalidDelay reports whether err rejects a delay or threshold.
func IsInvalidDelay(err error) bool {
	var target invalidDelayError
	return errors.As(err, &target)
}

// ErrNilUpdate is returned when a state updater is nil.
var ErrNilUpdate = errors.New("hooks: nil update")

// invalidEventError rejects an event name a hook cannot listen for.
type invalidEventError struct{ name string }

func (e invalidEventError) Error() string { return "unsupported event: " + e.name }

// IsInvalidEvent reports whether err rejects an event name.
func IsInvalidEvent(err error) bool {
	var target invalidEventError
	return errors.As(err, &target)
}
