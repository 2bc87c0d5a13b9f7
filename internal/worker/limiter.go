package worker

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Throttle paces outbound requests to the search service: a token
// bucket sized to the service's usage guidance plus a fixed delay
// applied between consecutive organism queries.
type Throttle struct {
	limiter *rate.Limiter
	delay   time.Duration
}

// NewThrottle creates a throttle with the given rate and fixed delay
func NewThrottle(requestsPerSecond float64, burst int, delay time.Duration) *Throttle {
	if burst <= 0 {
		burst = 1
	}

	return &Throttle{
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
		delay:   delay,
	}
}

// Wait waits for rate limit clearance
func (t *Throttle) Wait(ctx context.Context) error {
	return t.limiter.Wait(ctx)
}

// Allow checks if a request is allowed without waiting
func (t *Throttle) Allow() bool {
	return t.limiter.Allow()
}

// WaitWithDelay applies the fixed inter-query delay, then waits for
// rate limit clearance
func (t *Throttle) WaitWithDelay(ctx context.Context) error {
	if t.delay > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(t.delay):
		}
	}

	return t.Wait(ctx)
}
