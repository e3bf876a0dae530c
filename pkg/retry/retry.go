package retry

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	DefaultMaxAttempts = 5
	DefaultBaseBackoff = 2 * time.Second
	DefaultMultiplier  = 2.0
	DefaultMaxBackoff  = 15 * time.Second
)

// Policy describes a bounded exponential backoff without jitter.
type Policy struct {
	MaxAttempts int
	BaseBackoff time.Duration
	Multiplier  float64
	MaxBackoff  time.Duration

	// Permanent reports errors that are a final outcome and must not be retried.
	Permanent func(err error) bool
	// OnRetry is called before sleeping, attempt is the 1-based attempt that just failed.
	OnRetry func(attempt int, delay time.Duration, err error)
}

// DefaultPolicy returns 5 attempts with 2s, 4s, 8s, 15s between them.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts: DefaultMaxAttempts,
		BaseBackoff: DefaultBaseBackoff,
		Multiplier:  DefaultMultiplier,
		MaxBackoff:  DefaultMaxBackoff,
	}
}

func (p Policy) newBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.BaseBackoff
	b.Multiplier = p.Multiplier
	b.MaxInterval = p.MaxBackoff
	b.RandomizationFactor = 0
	b.MaxElapsedTime = 0
	b.Reset()

	retries := p.MaxAttempts - 1
	if retries < 0 {
		retries = 0
	}
	return backoff.WithMaxRetries(b, uint64(retries))
}

// Delays returns the sleep durations between consecutive attempts.
func (p Policy) Delays() []time.Duration {
	b := p.newBackOff()
	var out []time.Duration
	for {
		next := b.NextBackOff()
		if next == backoff.Stop {
			return out
		}
		out = append(out, next)
	}
}

// Do calls op until it succeeds, returns a permanent error, ctx is done or
// the attempts are exhausted. Cancellation is never retried and interrupts
// a pending backoff sleep.
func Do[T any](ctx context.Context, p Policy, op func(ctx context.Context) (T, error)) (T, error) {
	var (
		result  T
		attempt int
	)

	operation := func() error {
		attempt++
		v, err := op(ctx)
		if err == nil {
			result = v
			return nil
		}
		if IsShutdown(ctx, err) {
			return backoff.Permanent(err)
		}
		if p.Permanent != nil && p.Permanent(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	notify := func(err error, delay time.Duration) {
		if p.OnRetry != nil {
			p.OnRetry(attempt, delay, err)
		}
	}

	if err := backoff.RetryNotify(operation, backoff.WithContext(p.newBackOff(), ctx), notify); err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}

// IsShutdown reports whether err (or ctx) signals that the caller is going away.
func IsShutdown(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return true
	}
	return errors.Is(err, context.Canceled)
}
