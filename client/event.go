package client

import (
	"time"

	ai "github.com/spetersoncode/gitscribe"
	"github.com/spetersoncode/gitscribe/internal/retry"
)

// EventType identifies the kind of event occurring during client operations.
type EventType string

const (
	EventRequestStart    EventType = "request_start"
	EventRequestComplete EventType = "request_complete"
	EventRequestError    EventType = "request_error"

	// EventRetry forwards a step of the retry loop.
	EventRetry EventType = "retry"
)

// Event represents an observable occurrence during client operations.
type Event struct {
	Type EventType

	// Route is the route the request travelled, as "<model> via <route>".
	Route string

	// Duration is set on completion and error events.
	Duration time.Duration

	Usage *ai.Usage
	Error error
	Retry *retry.Event

	Timestamp time.Time
}

// emit sends an event with timestamp to the channel without blocking.
func emit(ch chan<- Event, event Event) {
	if ch == nil {
		return
	}
	event.Timestamp = time.Now()
	select {
	case ch <- event:
	default:
		// Channel full - don't block
	}
}
