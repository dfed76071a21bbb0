// Package retry provides exponential-backoff retry for outbound API calls.
package retry

import (
	"context"
	"log/slog"
	"math"
	"time"
)

// Config holds the backoff schedule.
type Config struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
	Multiplier  float64
}

// DefaultConfig returns a sensible default schedule.
func DefaultConfig() Config {
	return Config{
		MaxAttempts: 4,
		BaseDelay:   200 * time.Millisecond,
		MaxDelay:    5 * time.Second,
		Multiplier:  2.0,
	}
}

func (c Config) delay(attempt int) time.Duration {
	d := time.Duration(float64(c.BaseDelay) * math.Pow(c.Multiplier, float64(attempt)))
	if d > c.MaxDelay {
		d = c.MaxDelay
	}
	return d
}

// Func is one attempt of the operation. It reports whether a failure is
// worth retrying (rate limits, transient server errors, network faults).
type Func func(attempt int) (retryable bool, err error)

// Do runs fn until it succeeds, fails with a non-retryable error, or the
// attempt budget runs out. The context is honored between attempts.
func Do(ctx context.Context, cfg Config, apiName string, fn Func) error {
	var lastErr error

	for attempt := 0; attempt < cfg.MaxAttempts; attempt++ {
		if attempt > 0 {
			delay := cfg.delay(attempt - 1)
			slog.Warn("retrying API request",
				"api", apiName,
				"attempt", attempt+1,
				"max_attempts", cfg.MaxAttempts,
				"delay", delay,
				"err", lastErr)

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}

		retryable, err := fn(attempt)
		if err == nil {
			return nil
		}

		lastErr = err
		if !retryable {
			return err
		}
	}

	return lastErr
}
