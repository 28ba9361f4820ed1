package retry

import "time"

// EventType identifies a step of a retried call.
type EventType string

const (
	EventAttemptFailed EventType = "attempt_failed"
	EventRetrying      EventType = "retrying"
	EventExhausted     EventType = "exhausted"
)

// Event describes one step of a retried call.
type Event struct {
	Type        EventType
	Attempt     int // 1-indexed
	MaxAttempts int
	Err         error
	Delay       time.Duration // set for EventRetrying
	Retryable   bool
}

// Notify receives retry events. It is called synchronously.
type Notify func(Event)
