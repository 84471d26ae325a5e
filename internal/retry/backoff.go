package retry

import (
	"math"
	"time"
)

// BackoffStrategy calculates the delay before the next retry attempt.
type BackoffStrategy interface {
	// NextDelay returns the duration to wait before the next attempt.
	// attempt is zero-indexed (0 = first retry).
	NextDelay(attempt int) time.Duration

	// MaxAttempts returns the maximum number of retries (0 = no retries).
	MaxAttempts() int
}

// ExponentialBackoff doubles the delay after every retry up to a cap.
type ExponentialBackoff struct {
	initialDelay time.Duration
	maxDelay     time.Duration
	multiplier   float64
	maxAttempts  int
}

// BackoffOption is a functional option for configuring ExponentialBackoff.
type BackoffOption func(*ExponentialBackoff)

// WithInitialDelay sets the delay before the first retry.
func WithInitialDelay(d time.Duration) BackoffOption {
	return func(b *ExponentialBackoff) {
		b.initialDelay = d
	}
}

// WithMaxDelay caps the delay between retries.
func WithMaxDelay(d time.Duration) BackoffOption {
	return func(b *ExponentialBackoff) {
		b.maxDelay = d
	}
}

// WithMultiplier sets the factor by which the delay grows.
func WithMultiplier(m float64) BackoffOption {
	return func(b *ExponentialBackoff) {
		b.multiplier = m
	}
}

// NewExponentialBackoff creates a backoff of up to maxAttempts retries,
// starting at 250ms and capped at 2s. Negative maxAttempts is treated as 0.
func NewExponentialBackoff(maxAttempts int, opts ...BackoffOption) *ExponentialBackoff {
	if maxAttempts < 0 {
		maxAttempts = 0
	}

	b := &ExponentialBackoff{
		initialDelay: 250 * time.Millisecond,
		maxDelay:     2 * time.Second,
		multiplier:   2.0,
		maxAttempts:  maxAttempts,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// NextDelay returns initialDelay * multiplier^attempt, capped at maxDelay.
func (b *ExponentialBackoff) NextDelay(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	delay := float64(b.initialDelay) * math.Pow(b.multiplier, float64(attempt))
	if delay > float64(b.maxDelay) || math.IsInf(delay, 0) || math.IsNaN(delay) {
		return b.maxDelay
	}
	return time.Duration(delay)
}

// MaxAttempts returns the maximum number of retries.
func (b *ExponentialBackoff) MaxAttempts() int {
	return b.maxAttempts
}
