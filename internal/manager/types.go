package manager

// State represents the lifecycle state of the runtime.
type State string

const (
	StateStopped State = "stopped"
	StateRunning State = "running"
)
