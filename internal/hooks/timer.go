package hooks

import (
	"time"

	"reactd/internal/loop"
)

// Mode selects single-shot or repeating fires.
type Mode int

const (
	OneShot Mode = iota
	Repeating
)

func (m Mode) String() string {
	switch m {
	case OneShot:
		return "oneshot"
	case Repeating:
		return "repeating"
	default:
		return "unknown"
	}
}

// DelayTimer is one scheduled unit of work. It holds a pending handle with
// the loop exactly when it is logically armed, and every reconfiguration
// goes through Arm, which cancels the old handle before creating a new one.
type DelayTimer struct {
	rt loop.Scheduler
	cb Latest

	mode    Mode
	delay   Delay
	handle  loop.Handle
	gen     uint64
	armedAt time.Time
	fires   uint64
}

// NewDelayTimer returns a disarmed timer that will call fn when it fires.
func NewDelayTimer(rt loop.Scheduler, fn func()) *DelayTimer {
	t := &DelayTimer{rt: rt}
	t.cb.Set(fn)
	return t
}

// Arm schedules the timer for delay in the given mode, replacing any pending
// fire. A disabled delay only cancels. A negative delay is rejected and
// leaves the timer untouched.
func (t *DelayTimer) Arm(delay Delay, mode Mode) error {
	if err := delay.validate(); err != nil {
		return err
	}
	t.cancelPending()
	t.mode = mode
	t.delay = delay
	if !delay.Enabled() {
		return nil
	}

	gen := t.gen
	fire := func() { t.fire(gen) }
	var h loop.Handle
	if mode == Repeating {
		h = t.rt.ScheduleRepeating(delay.d, fire)
	} else {
		h = t.rt.ScheduleOnce(delay.d, fire)
	}
	t.setHandle(h)
	t.armedAt = t.rt.Now()
	logger.Debug().Str("mode", mode.String()).Dur("delay", delay.d).Msg("timer armed")
	return nil
}

// Reset re-arms with the current mode, restarting the countdown from now.
func (t *DelayTimer) Reset(delay Delay) error {
	return t.Arm(delay, t.mode)
}

// Cancel clears any pending fire. It is safe to call at any time.
func (t *DelayTimer) Cancel() {
	t.cancelPending()
}

// UpdateCallback replaces the callback without touching the schedule.
func (t *DelayTimer) UpdateCallback(fn func()) {
	t.cb.Set(fn)
}

// IsArmed reports whether a fire is pending.
func (t *DelayTimer) IsArmed() bool { return t.handle != 0 }

// Mode returns the mode of the most recent Arm.
func (t *DelayTimer) Mode() Mode { return t.mode }

// Delay returns the delay of the most recent Arm.
func (t *DelayTimer) Delay() Delay { return t.delay }

// ArmedAt returns when the timer was last armed.
func (t *DelayTimer) ArmedAt() time.Time { return t.armedAt }

// Fires returns how many times the timer has fired.
func (t *DelayTimer) Fires() uint64 { return t.fires }

func (t *DelayTimer) cancelPending() {
	t.gen++
	if t.handle == 0 {
		return
	}
	t.rt.Cancel(t.handle)
	t.setHandle(0)
}

func (t *DelayTimer) setHandle(h loop.Handle) {
	switch {
	case t.handle == 0 && h != 0:
		timersArmed.Inc()
	case t.handle != 0 && h == 0:
		timersArmed.Dec()
	}
	t.handle = h
}

// fire runs on the loop. One-shot bookkeeping completes before the callback
// so a panicking callback leaves the timer disarmed.
func (t *DelayTimer) fire(gen uint64) {
	if gen != t.gen || t.handle == 0 {
		return
	}
	if t.mode == OneShot {
		t.setHandle(0)
	}
	t.fires++
	timerFiresTotal.WithLabelValues(t.mode.String()).Inc()
	t.cb.Invoke()
}
