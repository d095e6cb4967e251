package engine

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

// Pacer is the policy that spaces out successive item fetches within a
// sweep. It exists as an interface so tests can run without real sleeps.
type Pacer interface {
	Pause(ctx context.Context) error
}

// IntervalPacer enforces a minimum interval between successive pauses
// using a token bucket. Idle time between sweeps refills the bucket, so a
// sweep never waits longer than the configured interval.
type IntervalPacer struct {
	limiter *rate.Limiter
}

// NewIntervalPacer creates a pacer with the given minimum interval.
func NewIntervalPacer(interval time.Duration) *IntervalPacer {
	limiter := rate.NewLimiter(rate.Every(interval), 1)
	// Drain the initial token so the very first pause also waits a full
	// interval instead of passing for free.
	limiter.Allow()
	return &IntervalPacer{limiter: limiter}
}

// Pause blocks until the interval has elapsed or the context is canceled.
func (p *IntervalPacer) Pause(ctx context.Context) error {
	if err := p.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("pacer wait: %w", err)
	}
	return nil
}

// NopPacer never waits. Used in tests and one-off CLI sweeps.
type NopPacer struct{}

// Pause returns immediately unless the context is already canceled.
func (NopPacer) Pause(ctx context.Context) error {
	return ctx.Err()
}
