package hooks

import "reactd/internal/loop"

// Interval invokes the latest callback every delay until closed. A new
// delay cancels the repeating timer and restarts it from now; a disabled
// delay stops it; a new callback alone changes nothing about the schedule.
type Interval struct {
	timer    *DelayTimer
	delay    Delay
	rendered bool
	closed   bool
}

// NewInterval returns a stopped Interval bound to rt.
func NewInterval(rt loop.Scheduler) *Interval {
	return &Interval{timer: NewDelayTimer(rt, nil)}
}

// StartInterval is NewInterval followed by the first Render.
func StartInterval(rt loop.Scheduler, fn func(), delay Delay) (*Interval, error) {
	iv := NewInterval(rt)
	if err := iv.Render(fn, delay); err != nil {
		return nil, err
	}
	return iv, nil
}

// Render applies the latest callback and delay.
func (iv *Interval) Render(fn func(), delay Delay) error {
	if err := delay.validate(); err != nil {
		return err
	}
	if iv.closed {
		return nil
	}
	iv.timer.UpdateCallback(fn)
	if iv.rendered && delay == iv.delay {
		return nil
	}
	iv.rendered = true
	iv.delay = delay
	return iv.timer.Arm(delay, Repeating)
}

// Ticks returns how many times the callback has been invoked.
func (iv *Interval) Ticks() uint64 { return iv.timer.Fires() }

// Running reports whether the interval is scheduled.
func (iv *Interval) Running() bool { return iv.timer.IsArmed() }

// Close stops the interval; later renders are ignored.
func (iv *Interval) Close() {
	iv.closed = true
	iv.timer.Cancel()
}
