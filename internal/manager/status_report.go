package manager

import (
	"time"

	"reactd/pkg/types"
)

// Idle returns the detector state. Safe from any goroutine.
func (m *Manager) Idle() types.IdleResponse {
	return types.IdleResponse{
		Detector:      m.idle.Name(),
		Idle:          m.idle.Idle(),
		ThresholdMS:   m.idle.Threshold().Milliseconds(),
		ChangedAtUnix: m.idle.ChangedAt().Unix(),
	}
}

// Status builds a detailed status response for /status.
func (m *Manager) Status() types.StatusResponse {
	st := m.loop.Stats()
	state := StateStopped
	if m.Ready() {
		state = StateRunning
	}
	listeners := make(map[string]int)
	for _, name := range m.window.Names() {
		listeners[name] = m.window.ListenerCount(name)
	}
	size := m.viewport.Size()
	now := m.loop.Now()
	return types.StatusResponse{
		State: string(state),
		Idle:  m.Idle(),
		Loop: types.LoopStats{
			PendingTimers: st.PendingTimers,
			QueuedTasks:   st.QueuedTasks,
			Fired:         st.Fired,
			Cancelled:     st.Cancelled,
			Tasks:         st.Tasks,
		},
		Viewport: types.ViewportResponse{
			Width:      size.Width,
			Height:     size.Height,
			Breakpoint: m.breakpoints.Match(size.Width),
		},
		Hidden:         m.doc.Hidden(),
		Listeners:      listeners,
		EventsTotal:    m.events.Load(),
		LastError:      m.lastError(),
		UptimeSeconds:  int64(time.Since(m.startTime).Seconds()),
		ServerTimeUnix: now.Unix(),
	}
}
