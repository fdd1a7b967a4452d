package types

// IdleResponse is returned by GET /idle.
type IdleResponse struct {
	// Detector label.
	// example: main
	Detector string `json:"detector,omitempty" example:"main"`
	// Whether no activity was seen for a full threshold.
	// example: true
	Idle bool `json:"idle" example:"true"`
	// Idle threshold in milliseconds.
	// example: 60000
	ThresholdMS int64 `json:"threshold_ms" example:"60000"`
	// Last state change (unix seconds).
	// example: 1700000000
	ChangedAtUnix int64 `json:"changed_at_unix" example:"1700000000"`
}

// LoopStats mirrors the event loop counters.
type ViewportResponse struct {
	// Latest width from a resize event.
	// example: 1280
	Width int `json:"width" example:"1280"`
	// Latest height from a resize event.
	// example: 720
	Height int `json:"height" example:"720"`
	// Largest breakpoint whose minimum width is reached.
	// example: lg
	Breakpoint string `json:"breakpoint" example:"lg"`
}

type LoopStats struct {
	// Timers waiting to fire.
	// example: 1
	PendingTimers int `json:"pending_timers" example:"1"`
	// Tasks posted but not yet run.
	// example: 0
	QueuedTasks int `json:"queued_tasks" example:"0"`
	// Timer callbacks run so far.
	// example: 12
	Fired uint64 `json:"fired_total" example:"12"`
	// Timers cancelled before firing.
	// example: 340
	Cancelled uint64 `json:"cancelled_total" example:"340"`
	// Posted tasks run so far.
	// example: 57
	Tasks uint64 `json:"tasks_total" example:"57"`
}
