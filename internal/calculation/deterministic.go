package calculation

import (
	"context"
	"time"
)

// nowFunc returns the current time (override in tests for determinism).
var nowFunc = time.Now

// SetNowFunc overrides the time provider (use only in tests).
func SetNowFunc(f func() time.Time) { nowFunc = f }

// sleepFunc waits for d or until ctx is done (override in tests to skip real delays).
var sleepFunc = func(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// SetSleepFunc overrides the delay provider (use only in tests).
func SetSleepFunc(f func(ctx context.Context, d time.Duration) error) { sleepFunc = f }
