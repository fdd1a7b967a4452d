package hooks

import (
	"sync/atomic"
	"time"

	"reactd/internal/loop"
)

// DefaultIdleThreshold applies when IdleOptions.Threshold is zero.
const DefaultIdleThreshold = 60 * time.Second

// DefaultIdleEvents applies when IdleOptions.Sources is empty.
var DefaultIdleEvents = []string{"mousemove", "mousedown", "resize", "keydown", "touchstart", "wheel"}

// IdleOptions configures an IdleDetector. Zero values select defaults.
type IdleOptions struct {
	Name      string
	Threshold time.Duration
	Initial   bool
	Sources   []string
	Publisher EventPublisher
}

// IdleDetector reports Idle once Threshold passes without an activity pulse,
// and Active again on the next pulse. Each pulse pushes the idle point
// forward to Threshold after the pulse.
type IdleDetector struct {
	name      string
	rt        loop.Scheduler
	timer     *DelayTimer
	mux       ActivityMultiplexer
	pub       EventPublisher
	onChange  []func(idle bool)
	closed    bool
	idle      atomic.Bool
	threshold atomic.Int64
	changedAt atomic.Int64
}

// NewIdleDetector arms the idle timer and subscribes to activity on target
// and doc. It must be called on the loop.
func NewIdleDetector(rt loop.Scheduler, target Listenable, doc VisibilitySource, opts IdleOptions) (*IdleDetector, error) {
	threshold, err := idleThreshold(opts.Threshold)
	if err != nil {
		return nil, err
	}
	sources := opts.Sources
	if len(sources) == 0 {
		sources = DefaultIdleEvents
	}
	d := &IdleDetector{
		name: opts.Name,
		rt:   rt,
		pub:  opts.Publisher,
	}
	if d.pub == nil {
		d.pub = noopPublisher{}
	}
	d.idle.Store(opts.Initial)
	d.threshold.Store(int64(threshold))
	d.changedAt.Store(rt.Now().UnixNano())
	d.timer = NewDelayTimer(rt, d.becomeIdle)
	if err := d.timer.Arm(After(threshold), OneShot); err != nil {
		return nil, err
	}
	d.mux.Subscribe(sources, target, doc, d.handleActivity)
	logger.Debug().Str("detector", d.name).Dur("threshold", threshold).Strs("sources", sources).Msg("idle detector started")
	return d, nil
}

func idleThreshold(d time.Duration) (time.Duration, error) {
	if d < 0 {
		return 0, invalidDelayError{what: "idle threshold", d: d}
	}
	if d == 0 {
		return DefaultIdleThreshold, nil
	}
	return d, nil
}

// Idle reports the current state. Safe from any goroutine.
func (d *IdleDetector) Idle() bool { return d.idle.Load() }

// Threshold returns the idle threshold. Safe from any goroutine.
func (d *IdleDetector) Threshold() time.Duration { return time.Duration(d.threshold.Load()) }

// ChangedAt returns when the state last changed (or construction time).
// Safe from any goroutine.
func (d *IdleDetector) ChangedAt() time.Time { return time.Unix(0, d.changedAt.Load()) }

// Name returns the detector's label.
func (d *IdleDetector) Name() string { return d.name }

// OnChange registers fn to run on every transition, after the state changed.
func (d *IdleDetector) OnChange(fn func(idle bool)) {
	if fn != nil {
		d.onChange = append(d.onChange, fn)
	}
}

// SetThreshold changes the threshold. A different value cancels the pending
// idle fire and arms a fresh one for the new threshold from now.
func (d *IdleDetector) SetThreshold(threshold time.Duration) error {
	threshold, err := idleThreshold(threshold)
	if err != nil {
		return err
	}
	if d.closed || threshold == d.Threshold() {
		return nil
	}
	d.threshold.Store(int64(threshold))
	return d.timer.Reset(After(threshold))
}

// Close cancels the idle timer and unsubscribes. No transitions happen after.
func (d *IdleDetector) Close() {
	if d.closed {
		return
	}
	d.closed = true
	d.timer.Cancel()
	d.mux.Unsubscribe()
	logger.Debug().Str("detector", d.name).Msg("idle detector closed")
}

func (d *IdleDetector) handleActivity() {
	if d.closed {
		return
	}
	d.set(false)
	_ = d.timer.Reset(After(d.Threshold()))
}

func (d *IdleDetector) becomeIdle() {
	if d.closed {
		return
	}
	d.set(true)
}

func (d *IdleDetector) set(idle bool) {
	if d.idle.Swap(idle) == idle {
		return
	}
	d.changedAt.Store(d.rt.Now().UnixNano())
	to := "active"
	if idle {
		to = "idle"
	}
	idleTransitionsTotal.WithLabelValues(to).Inc()
	d.pub.Publish(Event{Name: to, Fields: map[string]any{"detector": d.name}})
	logger.Debug().Str("detector", d.name).Str("to", to).Msg("idle state changed")
	for _, fn := range d.onChange {
		fn(idle)
	}
}
