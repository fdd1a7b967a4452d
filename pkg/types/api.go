package types

// EventRequest is the optional body of POST /events/{name}.
type EventRequest struct {
	// Key carried by keydown/keyup events. Passed through to listeners
	// unchanged; key-press listeners match on it.
	// example: Escape
	Key string `json:"key,omitempty" example:"Escape"`
	// Viewport width carried by resize events. Tracked in /status.
	// example: 1280
	Width int `json:"width,omitempty" example:"1280"`
	// Viewport height carried by resize events.
	// example: 720
	Height int `json:"height,omitempty" example:"720"`
}

// EventResponse reports how a dispatched event was delivered.
type EventResponse struct {
	// Name of the dispatched event.
	// example: mousemove
	Event string `json:"event" example:"mousemove"`
	// Number of listeners that received it.
	// example: 1
	Listeners int `json:"listeners" example:"1"`
}

// VisibilityRequest is the body of PUT /visibility.
type VisibilityRequest struct {
	// Whether the page is hidden. Required.
	// example: false
	Hidden *bool `json:"hidden" example:"false"`
}

// VisibilityResponse is returned by PUT /visibility.
type VisibilityResponse struct {
	// Visibility after the request.
	// example: false
	Hidden bool `json:"hidden" example:"false"`
	// Whether the request changed the visibility.
	// example: true
	Changed bool `json:"changed" example:"true"`
}

// ThresholdRequest is the body of PUT /idle/threshold.
type ThresholdRequest struct {
	// New idle threshold in milliseconds. Zero selects the default.
	// example: 30000
	ThresholdMS *int64 `json:"threshold_ms" example:"30000"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: invalid JSON body
	Error string `json:"error" example:"invalid JSON body"`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
}

// StatusResponse is returned by GET /status.
type StatusResponse struct {
	// Overall state (running, stopped).
	// example: running
	State string `json:"state" example:"running"`
	// Idle detector state.
	Idle IdleResponse `json:"idle"`
	// Event loop bookkeeping.
	Loop LoopStats `json:"loop"`
	// Viewport tracked from resize events.
	Viewport ViewportResponse `json:"viewport"`
	// Whether the document is hidden.
	// example: false
	Hidden bool `json:"hidden" example:"false"`
	// Listener count per event name on the window target.
	Listeners map[string]int `json:"listeners"`
	// Total events accepted through POST /events.
	// example: 42
	EventsTotal uint64 `json:"events_total" example:"42"`
	// Last error observed by the daemon (if any).
	LastError string `json:"last_error,omitempty"`
	// Uptime of the server in seconds.
	// example: 3600
	UptimeSeconds int64 `json:"uptime_seconds" example:"3600"`
	// Server time in unix seconds.
	// example: 1700000000
	ServerTimeUnix int64 `json:"server_time_unix" example:"1700000000"`
}
