// Package loop provides the single-threaded event loop every hook runs on.
//
// A Loop owns a min-heap of timers and a FIFO of posted tasks. Timer fires
// and tasks run one at a time on whichever goroutine drives the loop, either
// Run (production) or RunDue (tests advancing a fake clock). Scheduling and
// cancellation are safe from any goroutine; callbacks are not run while the
// loop mutex is held, so they may schedule or cancel freely.
package loop

import (
	"container/heap"
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
)

// MinInterval is the smallest period accepted for repeating timers.
const MinInterval = time.Millisecond

// ErrRunning is returned by Run when the loop is already being driven.
var ErrRunning = errors.New("loop: already running")

// Handle identifies a pending timer. The zero Handle never refers to a timer.
type Handle uint64

// Scheduler is the narrow timer surface consumed by hooks.
type Scheduler interface {
	ScheduleOnce(d time.Duration, fn func()) Handle
	ScheduleRepeating(d time.Duration, fn func()) Handle
	Cancel(h Handle)
	Now() time.Time
}

// Stats is a point-in-time view of loop bookkeeping.
type Stats struct {
	PendingTimers int    `json:"pending_timers"`
	QueuedTasks   int    `json:"queued_tasks"`
	Fired         uint64 `json:"fired_total"`
	Cancelled     uint64 `json:"cancelled_total"`
	Tasks         uint64 `json:"tasks_total"`
}

// Option configures a Loop.
type Option func(*Loop)

// WithClock sets the time source. Defaults to the real clock.
func WithClock(c clockwork.Clock) Option {
	return func(l *Loop) {
		if c != nil {
			l.clock = c
		}
	}
}

// WithPanicHandler installs an error boundary for callbacks. Without one a
// panicking callback unwinds through RunDue/Run to the driving goroutine.
func WithPanicHandler(fn func(any)) Option {
	return func(l *Loop) { l.onPanic = fn }
}

// Loop is a cooperative event loop. The zero value is not usable; use New.
type Loop struct {
	clock   clockwork.Clock
	onPanic func(any)

	mu      sync.Mutex
	timers  timerHeap
	byID    map[Handle]*timer
	tasks   []func()
	nextID  Handle
	nextSeq uint64

	wake    chan struct{}
	running atomic.Bool

	fired     atomic.Uint64
	cancelled atomic.Uint64
	ran       atomic.Uint64
}

// New constructs a Loop.
func New(opts ...Option) *Loop {
	l := &Loop{
		clock: clockwork.NewRealClock(),
		byID:  make(map[Handle]*timer),
		wake:  make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(l)
	}
	heap.Init(&l.timers)
	return l
}

// Now reports the loop's current time.
func (l *Loop) Now() time.Time { return l.clock.Now() }

// Clock returns the loop's time source.
func (l *Loop) Clock() clockwork.Clock { return l.clock }

// ScheduleOnce arranges for fn to run once, d from now.
func (l *Loop) ScheduleOnce(d time.Duration, fn func()) Handle {
	if d < 0 {
		d = 0
	}
	return l.schedule(d, 0, fn)
}

// ScheduleRepeating arranges for fn to run every d until cancelled. Like
// time.Ticker, a timer that falls behind fires once and drops missed periods.
func (l *Loop) ScheduleRepeating(d time.Duration, fn func()) Handle {
	if d < MinInterval {
		d = MinInterval
	}
	return l.schedule(d, d, fn)
}

func (l *Loop) schedule(d, period time.Duration, fn func()) Handle {
	l.mu.Lock()
	l.nextID++
	l.nextSeq++
	t := &timer{
		id:     l.nextID,
		when:   l.clock.Now().Add(d),
		period: period,
		fn:     fn,
		seq:    l.nextSeq,
	}
	heap.Push(&l.timers, t)
	l.byID[t.id] = t
	l.mu.Unlock()
	l.notify()
	return t.id
}

// Cancel removes a pending timer. Unknown or already-fired handles are ignored.
func (l *Loop) Cancel(h Handle) {
	if h == 0 {
		return
	}
	l.mu.Lock()
	t, ok := l.byID[h]
	if ok {
		delete(l.byID, h)
		if t.index >= 0 {
			heap.Remove(&l.timers, t.index)
		}
	}
	l.mu.Unlock()
	if ok {
		l.cancelled.Add(1)
	}
}

// Pending reports whether h refers to a timer that has not fired or been cancelled.
func (l *Loop) Pending(h Handle) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.byID[h]
	return ok
}

// Post queues fn to run on the loop after work already queued.
func (l *Loop) Post(fn func()) {
	if fn == nil {
		return
	}
	l.mu.Lock()
	l.tasks = append(l.tasks, fn)
	l.mu.Unlock()
	l.notify()
}

// Call posts fn and waits for it to finish. It requires another goroutine to
// be driving the loop.
func (l *Loop) Call(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	l.Post(func() {
		defer close(done)
		fn()
	})
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RunDue runs queued tasks and every timer due at the current clock time, on
// the calling goroutine, and returns the number of callbacks run. Timers
// scheduled by those callbacks wait for the next call, and a repeating timer
// fires at most once per call.
func (l *Loop) RunDue() int {
	l.mu.Lock()
	limit := l.nextSeq
	l.mu.Unlock()

	n := 0
	for {
		fn, ok := l.next(limit)
		if !ok {
			return n
		}
		l.invoke(fn)
		n++
	}
}

// next pops the next runnable callback. Heap bookkeeping for the popped timer
// is complete before it is returned.
func (l *Loop) next(limit uint64) (func(), bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.tasks) > 0 {
		fn := l.tasks[0]
		l.tasks[0] = nil
		l.tasks = l.tasks[1:]
		l.ran.Add(1)
		return fn, true
	}
	if len(l.timers) == 0 {
		return nil, false
	}
	t := l.timers[0]
	now := l.clock.Now()
	if t.when.After(now) || t.seq > limit {
		return nil, false
	}
	if t.period > 0 {
		// Missed periods coalesce into this fire, and the requeued timer
		// counts as new work so it waits for the next RunDue.
		missed := now.Sub(t.when) / t.period
		t.when = t.when.Add((missed + 1) * t.period)
		l.nextSeq++
		t.seq = l.nextSeq
		heap.Fix(&l.timers, t.index)
	} else {
		heap.Pop(&l.timers)
		delete(l.byID, t.id)
	}
	l.fired.Add(1)
	return t.fn, true
}

func (l *Loop) invoke(fn func()) {
	if l.onPanic == nil {
		fn()
		return
	}
	defer func() {
		if r := recover(); r != nil {
			l.onPanic(r)
		}
	}()
	fn()
}

// untilNext reports how long until the earliest timer is due, or -1 if none.
func (l *Loop) untilNext() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.tasks) > 0 {
		return 0
	}
	if len(l.timers) == 0 {
		return -1
	}
	d := l.timers[0].when.Sub(l.clock.Now())
	if d < 0 {
		d = 0
	}
	return d
}

func (l *Loop) notify() {
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Run drives the loop on the calling goroutine until ctx is done.
func (l *Loop) Run(ctx context.Context) error {
	if !l.running.CompareAndSwap(false, true) {
		return ErrRunning
	}
	defer l.running.Store(false)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		l.RunDue()

		var fire <-chan time.Time
		var t clockwork.Timer
		if d := l.untilNext(); d >= 0 {
			t = l.clock.NewTimer(d)
			fire = t.Chan()
		}
		select {
		case <-ctx.Done():
			if t != nil {
				t.Stop()
			}
			return ctx.Err()
		case <-l.wake:
		case <-fire:
		}
		if t != nil {
			t.Stop()
		}
	}
}

// Stats returns current counters.
func (l *Loop) Stats() Stats {
	l.mu.Lock()
	pending, queued := len(l.timers), len(l.tasks)
	l.mu.Unlock()
	return Stats{
		PendingTimers: pending,
		QueuedTasks:   queued,
		Fired:         l.fired.Load(),
		Cancelled:     l.cancelled.Load(),
		Tasks:         l.ran.Load(),
	}
}
