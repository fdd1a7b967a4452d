package hooks

import "reactd/internal/loop"

// Timeout invokes a callback once after a delay. Call Render on every
// reconfiguration, the way a component re-renders:
//
//   - a new callback alone never moves the pending fire;
//   - a new delay cancels the pending fire and schedules from now;
//   - a disabled delay cancels without firing;
//   - once the timeout has fired, delay changes do not schedule it again
//     (use Restart for that).
type Timeout struct {
	timer    *DelayTimer
	delay    Delay
	rendered bool
	base     uint64
	closed   bool
}

// NewTimeout returns an idle Timeout bound to rt.
func NewTimeout(rt loop.Scheduler) *Timeout {
	return &Timeout{timer: NewDelayTimer(rt, nil)}
}

// StartTimeout is NewTimeout followed by the first Render.
func StartTimeout(rt loop.Scheduler, fn func(), delay Delay) (*Timeout, error) {
	t := NewTimeout(rt)
	if err := t.Render(fn, delay); err != nil {
		return nil, err
	}
	return t, nil
}

// Render applies the latest callback and delay.
func (t *Timeout) Render(fn func(), delay Delay) error {
	if err := delay.validate(); err != nil {
		return err
	}
	if t.closed {
		return nil
	}
	t.timer.UpdateCallback(fn)
	if t.rendered && delay == t.delay {
		return nil
	}
	t.rendered = true
	t.delay = delay
	if t.Fired() {
		return nil
	}
	return t.timer.Arm(delay, OneShot)
}

// Restart schedules the timeout again with its current delay, from now,
// even if it has already fired.
func (t *Timeout) Restart() error {
	if t.closed {
		return nil
	}
	t.base = t.timer.Fires()
	return t.timer.Arm(t.delay, OneShot)
}

// Fired reports whether the callback ran since the last Restart.
func (t *Timeout) Fired() bool { return t.timer.Fires() > t.base }

// Pending reports whether a fire is scheduled.
func (t *Timeout) Pending() bool { return t.timer.IsArmed() }

// Close cancels any pending fire; later renders are ignored.
func (t *Timeout) Close() {
	t.closed = true
	t.timer.Cancel()
}
