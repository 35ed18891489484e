package llm

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"time"
)

// RetryPolicy retries transient gateway failures with exponential backoff.
// The zero value makes a single attempt.
type RetryPolicy struct {
	MaxRetries int
	BaseDelay  time.Duration
	MaxDelay   time.Duration
	Jitter     float64
}

// Do runs fn until it succeeds, the retries are used up, or ctx is done.
// Cancellation and client-side status errors (4xx) are never retried.
func (p RetryPolicy) Do(ctx context.Context, fn func(context.Context) error) error {
	if p.BaseDelay <= 0 {
		p.BaseDelay = 500 * time.Millisecond
	}
	if p.MaxDelay <= 0 {
		p.MaxDelay = 8 * time.Second
	}

	var err error
	for attempt := 0; attempt <= p.MaxRetries; attempt++ {
		if err = fn(ctx); err == nil {
			return nil
		}
		if attempt == p.MaxRetries || !retryable(ctx, err) {
			return err
		}

		select {
		case <-ctx.Done():
			return err
		case <-time.After(p.delay(attempt)):
		}
	}
	return err
}

func (p RetryPolicy) delay(attempt int) time.Duration {
	d := time.Duration(float64(p.BaseDelay) * math.Pow(2, float64(attempt)))
	if d > p.MaxDelay {
		d = p.MaxDelay
	}
	if p.Jitter > 0 {
		d += time.Duration(float64(d) * p.Jitter * rand.Float64())
	}
	return d
}

func retryable(ctx context.Context, err error) bool {
	if ctx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 429 || apiErr.StatusCode >= 500
	}
	return errors.Is(err, ErrGatewayUnavailable)
}
