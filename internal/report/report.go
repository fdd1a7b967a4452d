// Package report periodically logs a status summary of the running daemon.
package report

import (
	"errors"
	"sync/atomic"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"reactd/pkg/types"
)

const jobName = "status-report"

// StatusSource supplies the status to report.
type StatusSource interface {
	Status() types.StatusResponse
}

// Option configures a Reporter.
type Option func(*options)

type options struct {
	clock     clockwork.Clock
	log       zerolog.Logger
	sink      func(types.StatusResponse)
	immediate bool
}

// WithClock sets the scheduler's time source.
func WithClock(c clockwork.Clock) Option { return func(o *options) { o.clock = c } }

// WithLogger sets the logger reports and scheduler diagnostics go to.
func WithLogger(l zerolog.Logger) Option { return func(o *options) { o.log = l } }

// WithSink receives each reported status after it is logged.
func WithSink(fn func(types.StatusResponse)) Option { return func(o *options) { o.sink = fn } }

// WithStartImmediately runs the first report on Start instead of one interval later.
func WithStartImmediately() Option { return func(o *options) { o.immediate = true } }

// Reporter runs the status report job.
type Reporter struct {
	gocron.Scheduler
	src  StatusSource
	opts options
	runs atomic.Uint64
}

// New schedules a report every interval. The job does not run until Start.
func New(src StatusSource, interval time.Duration, opts ...Option) (*Reporter, error) {
	if src == nil {
		return nil, errors.New("report: nil status source")
	}
	if interval <= 0 {
		return nil, errors.New("report: interval must be positive")
	}
	o := options{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}

	schedOpts := []gocron.SchedulerOption{gocron.WithLogger(gocronLogger{log: o.log})}
	if o.clock != nil {
		schedOpts = append(schedOpts, gocron.WithClock(o.clock))
	}
	s, err := gocron.NewScheduler(schedOpts...)
	if err != nil {
		return nil, err
	}
	r := &Reporter{Scheduler: s, src: src, opts: o}

	jobOpts := []gocron.JobOption{
		gocron.WithName(jobName),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	}
	if o.immediate {
		jobOpts = append(jobOpts, gocron.WithStartAt(gocron.WithStartImmediately()))
	}
	if _, err := s.NewJob(gocron.DurationJob(interval), gocron.NewTask(r.report), jobOpts...); err != nil {
		_ = s.Shutdown()
		return nil, err
	}
	return r, nil
}

// Runs returns how many reports have been produced.
func (r *Reporter) Runs() uint64 { return r.runs.Load() }

func (r *Reporter) report() {
	st := r.src.Status()
	r.opts.log.Info().
		Str("state", st.State).
		Bool("idle", st.Idle.Idle).
		Bool("hidden", st.Hidden).
		Int("pending_timers", st.Loop.PendingTimers).
		Uint64("fired_total", st.Loop.Fired).
		Uint64("events_total", st.EventsTotal).
		Int64("uptime_seconds", st.UptimeSeconds).
		Msg("status")
	r.runs.Add(1)
	if r.opts.sink != nil {
		r.opts.sink(st)
	}
}

// gocronLogger adapts zerolog to gocron's key/value logger.
type gocronLogger struct{ log zerolog.Logger }

func (l gocronLogger) Debug(msg string, args ...any) { l.log.Debug().Fields(args).Msg(msg) }
func (l gocronLogger) Error(msg string, args ...any) { l.log.Error().Fields(args).Msg(msg) }
func (l gocronLogger) Info(msg string, args ...any)  { l.log.Info().Fields(args).Msg(msg) }
func (l gocronLogger) Warn(msg string, args ...any)  { l.log.Warn().Fields(args).Msg(msg) }
