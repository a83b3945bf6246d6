package history

import (
	"context"
	"time"
)

// EventType defines the kind of launcher event.
type EventType string

const (
	EventLaunch         EventType = "launch"
	EventStop           EventType = "stop"
	EventAlreadyRunning EventType = "already-running"
)

// Record identifies the daemon an event refers to and what the probe saw.
type Record struct {
	Daemon string `json:"daemon"` // e.g. "mds.0"
	Kind   string `json:"kind"`
	Host   string `json:"host"`
	PID    int    `json:"pid"` // zero when the daemon was not running
}

// Event is one launcher action to be exported to external systems.
type Event struct {
	Type       EventType `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	Record     Record    `json:"record"`
}

// Sink is a destination for launcher events (audit/statistics systems).
// Implementations must be safe for concurrent use.
type Sink interface {
	Send(ctx context.Context, e Event) error
}
