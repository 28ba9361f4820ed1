package retry

import (
	"context"
	"time"

	ai "github.com/spetersoncode/gitscribe"
)

// effectiveDelay honors the server's Retry-After when it asks for longer.
func effectiveDelay(configured time.Duration, err error) time.Duration {
	return max(configured, ai.RetryAfterOf(err))
}

// Do calls fn until it succeeds, fails permanently, or attempts run out.
// Waits between attempts stop early when ctx is done. notify may be nil.
func Do[T any](ctx context.Context, cfg Config, notify Notify, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error
	n := cfg.attempts()

	send := func(ev Event) {
		if notify != nil {
			ev.MaxAttempts = n
			notify(ev)
		}
	}

	for attempt := range n {
		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err

		retryable := IsTransient(err)
		send(Event{Type: EventAttemptFailed, Attempt: attempt + 1, Err: err, Retryable: retryable})
		if !retryable {
			return zero, err
		}
		if attempt == n-1 {
			break
		}

		delay := effectiveDelay(cfg.Delay(attempt), err)
		send(Event{Type: EventRetrying, Attempt: attempt + 1, Delay: delay, Retryable: true})

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, ctx.Err()
		case <-timer.C:
		}
	}

	send(Event{Type: EventExhausted, Attempt: n, Err: lastErr})
	return zero, lastErr
}
