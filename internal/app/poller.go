package app

import (
	"context"
	"log"
	"time"

	"github.com/nvlko/daybook/internal/dates"
)

const (
	defaultRefreshInterval = 5 * time.Minute
	maxBackoff             = 30 * time.Minute
)

// Refresher re-pulls aggregate figures from the server.
type Refresher interface {
	Refresh(ctx context.Context, date dates.Day) error
}

// StartRefresher launches a background goroutine that refreshes stats at a
// fixed cadence so server-computed aggregates do not drift from local edits
// made on other devices. Consecutive failures back off exponentially. It
// returns immediately.
func StartRefresher(ctx context.Context, target Refresher, interval time.Duration) {
	if interval <= 0 {
		interval = defaultRefreshInterval
	}
	go func() {
		failures := 0
		timer := time.NewTimer(interval)
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}
			if err := target.Refresh(ctx, dates.Today()); err != nil {
				failures++
				log.Printf("stats refresh failed (attempt %d): %v", failures, err)
			} else {
				failures = 0
			}
			timer.Reset(calculateBackoff(failures, interval))
		}
	}()
}

// calculateBackoff doubles the base interval per consecutive failure, capped
// at maxBackoff. Zero failures returns the base interval unchanged.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	backoff := base
	for i := 0; i < failures; i++ {
		backoff *= 2
		if backoff >= maxBackoff {
			return maxBackoff
		}
	}
	return backoff
}
