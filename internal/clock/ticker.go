package clock

import (
	"context"
	"time"
)

// Ticker wakes a handler periodically with a fresh clock reading.
type Ticker struct {
	clock    Clock
	interval time.Duration
}

// NewTicker creates a Ticker. A nil clock falls back to Real.
func NewTicker(c Clock, interval time.Duration) *Ticker {
	if c == nil {
		c = Real{}
	}

	return &Ticker{clock: c, interval: interval}
}

// Interval reports the wake-up period.
func (t *Ticker) Interval() time.Duration {
	return t.interval
}

// Run calls fn once immediately and then on every tick until ctx is done.
// fn runs to completion before the next tick is observed; ticks that arrive
// meanwhile are dropped by time.Ticker.
func (t *Ticker) Run(ctx context.Context, fn func(ctx context.Context, now time.Time)) {
	fn(ctx, t.clock.Now())

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fn(ctx, t.clock.Now())
		}
	}
}
