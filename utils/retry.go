package utils

import (
	"fmt"
	"time"
)

// RetryConfig holds the parameters for the retry strategy. MaxAttempts of 1
// (or less) means a single attempt with no retry.
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Logger      *Logger
}

// Do executes fn up to MaxAttempts times, doubling the delay after each
// failure. The last error is wrapped and returned once attempts run out.
func (r *RetryConfig) Do(op string, fn func() error) error {
	attempts := r.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	delay := r.BaseDelay
	for attempt := 1; attempt <= attempts; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if attempt == attempts {
			break
		}
		r.Logger.Warn("[retry] %s failed (attempt %d/%d): %v, next try in %v",
			op, attempt, attempts, lastErr, delay)
		time.Sleep(delay)
		delay *= 2
	}

	return fmt.Errorf("%s failed after %d attempt(s): %w", op, attempts, lastErr)
}
