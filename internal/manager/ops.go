package manager

import (
	"context"
	"strings"
	"time"

	"reactd/internal/event"
	"reactd/pkg/types"
)

// exec runs fn on the loop and waits for it.
func (m *Manager) exec(ctx context.Context, fn func()) error {
	if !m.running.Load() {
		return ErrNotRunning
	}
	return m.loop.Call(ctx, fn)
}

// Dispatch delivers a named event on the window target and returns how many
// listeners received it.
func (m *Manager) Dispatch(ctx context.Context, name string, req types.EventRequest) (int, error) {
	if err := validateEventName(name); err != nil {
		return 0, err
	}
	var n int
	err := m.exec(ctx, func() {
		n = m.window.Dispatch(event.Event{
			Type:   name,
			Key:    req.Key,
			Width:  req.Width,
			Height: req.Height,
			At:     m.loop.Now(),
		})
	})
	if err != nil {
		return 0, err
	}
	m.events.Add(1)
	return n, nil
}

func validateEventName(name string) error {
	if name == "" || len(name) > maxEventNameLen || strings.ContainsAny(name, " \t\r\n/") {
		return ErrInvalidEventName(name)
	}
	if name == event.VisibilityChange {
		// visibility only changes through SetHidden so Hidden stays truthful
		return ErrInvalidEventName(name)
	}
	return nil
}

// SetHidden updates document visibility and reports whether it changed.
func (m *Manager) SetHidden(ctx context.Context, hidden bool) (bool, error) {
	var changed bool
	err := m.exec(ctx, func() { changed = m.doc.SetHidden(hidden) })
	return changed, err
}

// SetThreshold changes the idle threshold, re-arming the detector from now.
func (m *Manager) SetThreshold(ctx context.Context, d time.Duration) error {
	var err error
	if execErr := m.exec(ctx, func() { err = m.idle.SetThreshold(d) }); execErr != nil {
		return execErr
	}
	return err
}
