package manager

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"reactd/internal/event"
	"reactd/internal/hooks"
	"reactd/internal/loop"
)

type Manager struct {
	loop   *loop.Loop
	window *event.Target
	doc    *event.Document
	idle   *hooks.IdleDetector
	log    zerolog.Logger

	viewport    *hooks.WindowSize
	breakpoints *hooks.Breakpoints

	running   atomic.Bool
	events    atomic.Uint64
	startTime time.Time

	mu      sync.RWMutex
	lastErr string
}

// New constructs a Manager with the given idle threshold and default options.
func New(threshold time.Duration) (*Manager, error) {
	return NewWithConfig(ManagerConfig{IdleThreshold: threshold})
}

func newWindow() *event.Target     { return event.NewTarget() }
func newDocument() *event.Document { return event.NewDocument() }

func newLoop(clk clockwork.Clock, onPanic func(any)) *loop.Loop {
	return loop.New(loop.WithClock(clk), loop.WithPanicHandler(onPanic))
}

// Run drives the event loop until ctx is done. It closes the idle detector
// on the way out.
func (m *Manager) Run(ctx context.Context) error {
	if !m.running.CompareAndSwap(false, true) {
		return loop.ErrRunning
	}
	defer m.running.Store(false)
	m.log.Info().Dur("idle_threshold", m.idle.Threshold()).Msg("event loop started")
	err := m.loop.Run(ctx)
	m.loop.Post(func() {
		m.idle.Close()
		m.viewport.Close()
	})
	m.loop.RunDue()
	m.log.Info().Msg("event loop stopped")
	return err
}

// Ready reports whether the loop is being driven.
func (m *Manager) Ready() bool { return m.running.Load() }

// Loop returns the event loop.
func (m *Manager) Loop() *loop.Loop { return m.loop }

// Window returns the target activity events are dispatched on.
func (m *Manager) Window() *event.Target { return m.window }

// Document returns the visibility source.
func (m *Manager) Document() *event.Document { return m.doc }

// Detector returns the idle detector.
func (m *Manager) Detector() *hooks.IdleDetector { return m.idle }

// recoverCallback is the loop's error boundary: a panicking hook callback is
// logged and recorded instead of taking the daemon down.
func (m *Manager) recoverCallback(r any) {
	m.log.Error().Interface("panic", r).Msg("callback panicked")
	m.setLastError(fmt.Sprintf("callback panicked: %v", r))
}

func (m *Manager) setLastError(msg string) {
	m.mu.Lock()
	m.lastErr = msg
	m.mu.Unlock()
}

func (m *Manager) lastError() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastErr
}
