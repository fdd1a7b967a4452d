package manager

import (
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"reactd/internal/hooks"
)

// Defaults applied when corresponding ManagerConfig fields are unset.
const (
	defaultDetectorName = "main"
	maxEventNameLen     = 64
)

// DefaultBreakpoints classify the viewport reported in /status.
var DefaultBreakpoints = map[string]int{"xs": 0, "sm": 576, "md": 768, "lg": 992, "xl": 1200}

// ManagerConfig encapsulates all tunables for Manager construction.
type ManagerConfig struct {
	// Clock drives the loop; nil selects the real clock.
	Clock clockwork.Clock
	// IdleThreshold of zero selects hooks.DefaultIdleThreshold.
	IdleThreshold time.Duration
	InitialIdle   bool
	// Sources of activity; empty selects hooks.DefaultIdleEvents.
	Sources []string
	// Breakpoints maps names to minimum widths; empty selects
	// DefaultBreakpoints.
	Breakpoints map[string]int
	// Publisher receives idle/active events in addition to the logger.
	Publisher hooks.EventPublisher
	Logger    zerolog.Logger
}

// NewWithConfig constructs a Manager from ManagerConfig. The idle detector is
// armed immediately, so the threshold counts from construction.
func NewWithConfig(cfg ManagerConfig) (*Manager, error) {
	m := &Manager{
		window:    newWindow(),
		log:       cfg.Logger,
		startTime: time.Now(),
	}
	m.doc = newDocument()
	m.loop = newLoop(cfg.Clock, m.recoverCallback)

	pub := fanout{logPublisher{log: cfg.Logger}}
	if cfg.Publisher != nil {
		pub = append(pub, cfg.Publisher)
	}
	det, err := hooks.NewIdleDetector(m.loop, m.window, m.doc, hooks.IdleOptions{
		Name:      defaultDetectorName,
		Threshold: cfg.IdleThreshold,
		Initial:   cfg.InitialIdle,
		Sources:   cfg.Sources,
		Publisher: pub,
	})
	if err != nil {
		return nil, err
	}
	m.idle = det

	mins := cfg.Breakpoints
	if len(mins) == 0 {
		mins = DefaultBreakpoints
	}
	if m.breakpoints, err = hooks.NewBreakpoints(mins); err != nil {
		return nil, err
	}
	m.viewport = hooks.NewWindowSize(m.window, hooks.Size{})
	return m, nil
}
