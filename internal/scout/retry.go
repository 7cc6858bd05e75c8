package scout

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// Default retry policy for external LLM calls.
const (
	DefaultMaxRetries = 5
	DefaultBaseDelay  = 5 * time.Second
	DefaultMaxJitter  = 1 * time.Second
)

// rateLimitMarkers identify a transient rate-limit/quota response in an
// error message (HTTP 429/503 or quota exhaustion text from the API).
var rateLimitMarkers = []string{
	"429", "503", "rate limit", "ratelimit", "quota", "resource exhausted", "resource_exhausted",
}

// dailyQuotaMarkers identify a daily quota exhaustion, not worth retrying
// within the same day.
var dailyQuotaMarkers = []string{"daily", "per day", "perday"}

// IsRateLimit reports whether err looks like a transient rate-limit or
// quota signal.
func IsRateLimit(err error) bool {
	if err == nil {
		return false
	}
	return containsAny(err.Error(), rateLimitMarkers)
}

// IsDailyQuota reports whether err indicates the daily quota is spent.
func IsDailyQuota(err error) bool {
	if err == nil {
		return false
	}
	return containsAny(err.Error(), dailyQuotaMarkers)
}

func containsAny(s string, markers []string) bool {
	s = strings.ToLower(s)
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}

// Retrier retries rate-limited operations with exponential backoff and
// jitter. Sleep and Rand are injectable so tests run without waiting.
type Retrier struct {
	MaxRetries int
	BaseDelay  time.Duration
	MaxJitter  time.Duration
	Sleep      func(ctx context.Context, d time.Duration) error
	Rand       func() float64
}

// NewRetrier returns a Retrier with the default policy.
func NewRetrier() *Retrier {
	return &Retrier{
		MaxRetries: DefaultMaxRetries,
		BaseDelay:  DefaultBaseDelay,
		MaxJitter:  DefaultMaxJitter,
		Sleep:      sleepCtx,
		Rand:       rand.Float64,
	}
}

// Do runs op, retrying only on rate-limit signals: up to MaxRetries extra
// attempts, delay doubling from BaseDelay plus random jitter. A daily-quota
// signal aborts immediately, and any other error propagates untouched.
func (r *Retrier) Do(ctx context.Context, op func(ctx context.Context) error) error {
	delay := r.BaseDelay
	for attempt := 0; ; attempt++ {
		err := op(ctx)
		if err == nil {
			return nil
		}
		if !IsRateLimit(err) {
			return err
		}
		if IsDailyQuota(err) {
			return fmt.Errorf("daily quota exhausted: %w", err)
		}
		if attempt >= r.MaxRetries {
			return fmt.Errorf("rate limited after %d retries: %w", r.MaxRetries, err)
		}

		wait := delay + time.Duration(r.Rand()*float64(r.MaxJitter))
		if err := r.Sleep(ctx, wait); err != nil {
			return err
		}
		delay *= 2
	}
}

// sleepCtx waits for d or until the context is canceled.
func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
