package retry

import (
	"context"
	"time"

	glog "github.com/goliatone/go-logger/glog"

	"github.com/goliatone/go-chpp/core"
)

// Policy retries transient failures with doubling backoff. Only errors
// core.IsRetryable accepts are attempted again; everything else surfaces
// immediately.
type Policy struct {
	MaxRetries     int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration

	// Sleep is swappable so tests can skip real waits.
	Sleep  func(ctx context.Context, d time.Duration) error
	Logger core.Logger
}

func NewPolicy(cfg core.RetryConfig, logger core.Logger) *Policy {
	return &Policy{
		MaxRetries:     cfg.MaxRetries,
		InitialBackoff: cfg.InitialBackoff,
		MaxBackoff:     cfg.MaxBackoff,
		Logger:         glog.Ensure(logger),
	}
}

func (p *Policy) maxRetries() int {
	if p == nil || p.MaxRetries < 0 {
		return 0
	}
	return p.MaxRetries
}

func (p *Policy) nextBackoff(retry int) time.Duration {
	initial := p.InitialBackoff
	if initial <= 0 {
		initial = time.Second
	}
	maximum := p.MaxBackoff
	if maximum <= 0 {
		maximum = 32 * time.Second
	}
	delay := initial
	for i := 1; i < retry; i++ {
		delay *= 2
		if delay >= maximum {
			return maximum
		}
	}
	if delay > maximum {
		return maximum
	}
	return delay
}

func (p *Policy) sleep(ctx context.Context, d time.Duration) error {
	if p != nil && p.Sleep != nil {
		return p.Sleep(ctx, d)
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

func (p *Policy) logger() core.Logger {
	if p != nil && p.Logger != nil {
		return p.Logger
	}
	return glog.Nop()
}

// Do runs fn until it succeeds, fails with a non-retryable error, or the
// retry budget is spent. fn is responsible for minting fresh signing
// material on every invocation.
func Do[T any](ctx context.Context, p *Policy, operation string, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	var lastErr error

	attempts := p.maxRetries() + 1
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, core.NewNetworkError(err, "retry: context cancelled before attempt")
		}

		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !core.IsRetryable(err) {
			return zero, err
		}
		if attempt == attempts {
			break
		}

		delay := p.nextBackoff(attempt)
		p.logger().Warn("transient failure, backing off",
			"operation", operation,
			"attempt", attempt,
			"backoff", delay.String(),
			"error", err.Error(),
		)
		if sleepErr := p.sleep(ctx, delay); sleepErr != nil {
			return zero, core.NewNetworkError(sleepErr, "retry: cancelled during backoff")
		}
	}

	return zero, lastErr
}
