package hooks

import "time"

// Delay is an optional duration. The zero Delay is disabled: a timer armed
// with it has no pending fire.
type Delay struct {
	d   time.Duration
	set bool
}

// Disabled is the delay that turns scheduling off.
var Disabled = Delay{}

// After returns an enabled Delay of d.
func After(d time.Duration) Delay { return Delay{d: d, set: true} }

// Millis returns an enabled Delay of ms milliseconds.
func Millis(ms int64) Delay { return After(time.Duration(ms) * time.Millisecond) }

// Enabled reports whether the delay schedules anything.
func (d Delay) Enabled() bool { return d.set }

// Duration returns the delay, or zero when disabled.
func (d Delay) Duration() time.Duration { return d.d }

func (d Delay) String() string {
	if !d.set {
		return "disabled"
	}
	return d.d.String()
}

func (d Delay) validate() error {
	if d.set && d.d < 0 {
		return invalidDelayError{what: "delay", d: d.d}
	}
	return nil
}
