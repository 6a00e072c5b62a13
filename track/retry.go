package track

import (
	"context"
	"math/rand/v2"
	"time"
)

// FetchFunc is the signature for a fetch function.
type FetchFunc func(ctx context.Context, url string) (string, error)

// LogFunc is the signature for a logging function.
type LogFunc func(format string, args ...any)

// RetryPolicy bounds how often and how patiently a fetch is retried.
// Every failed attempt except the last is followed by a pause of
// Base plus a random share of Jitter.
type RetryPolicy struct {
	// Attempts is the total number of tries, including the first one.
	Attempts int

	Base   time.Duration
	Jitter time.Duration

	// Rand returns a value in [0, 1). Defaults to math/rand/v2.
	Rand func() float64

	// Sleep pauses for d or until ctx is done. Defaults to a timer.
	Sleep func(ctx context.Context, d time.Duration) error
}

// DefaultRetryPolicy returns the policy used for price checks: two
// attempts with a pause of 600ms plus up to 400ms between them.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		Attempts: 2,
		Base:     600 * time.Millisecond,
		Jitter:   400 * time.Millisecond,
	}
}

// Delay returns the pause before the next attempt.
func (p RetryPolicy) Delay() time.Duration {
	if p.Jitter <= 0 {
		return p.Base
	}
	random := p.Rand
	if random == nil {
		random = rand.Float64
	}
	return p.Base + time.Duration(random()*float64(p.Jitter))
}

func (p RetryPolicy) sleep(ctx context.Context, d time.Duration) error {
	if p.Sleep != nil {
		return p.Sleep(ctx, d)
	}
	return sleepContext(ctx, d)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// FetchWithRetryPolicy fetches a URL, retrying failures as the policy
// allows. The logger function, if provided, is called for each retry. A policy with fewer than one attempt still fetches once. When the budget
// is exhausted the last fetch error is returned; if ctx ends during a pause
// the context error is returned instead.
func FetchWithRetryPolicy(ctx context.Context, url string, fetch FetchFunc, logger LogFunc, policy RetryPolicy) (string, error) {
	maxAttempts := max(policy.Attempts, 1)

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		html, err := fetch(ctx, url)
		if err == nil {
			return html, nil
		}
		lastErr = err

		// Don't retry after the last attempt
		if attempt >= maxAttempts-1 {
			break
		}

		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		if logger != nil {
			logger("retry %s (attempt %d): %v", url, attempt+2, err)
		}

		if err := policy.sleep(ctx, policy.Delay()); err != nil {
			return "", err
		}
	}

	return "", lastErr
}
