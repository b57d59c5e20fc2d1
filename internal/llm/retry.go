package llm

import (
	"context"
	"errors"
	"iter"
	"math"
	"math/rand/v2"
	"time"
)

// RetryProvider retries transient Generate failures with exponential
// backoff and jitter. The lesson priming exchange is the only Generate
// caller. Stream passes through untouched: a tutoring turn may already have
// shown fragments when it fails, and the conversation layer turns that
// failure into an apology message instead.
type RetryProvider struct {
	inner  Provider
	config RetryConfig
}

// WithRetry wraps a Provider with retry logic.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	return &RetryProvider{inner: p, config: cfg}
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	var (
		resp *Response
		err  error
		rc   retryState
	)
	attempts := max(r.config.MaxAttempts, 1)
	for attempt := range attempts {
		resp, err = r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}
		if !rc.retryable(err) || attempt == attempts-1 {
			return nil, err
		}

		timer := time.NewTimer(r.backoff(attempt, err))
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
	return nil, err
}

func (r *RetryProvider) Stream(ctx context.Context, req Request) iter.Seq2[string, error] {
	return r.inner.Stream(ctx, req)
}

func (r *RetryProvider) ModelID() string {
	return r.inner.ModelID()
}

// retryState tracks the one retry granted to an empty reply.
type retryState struct {
	invalidSeen bool
}

func (s *retryState) retryable(err error) bool {
	if isContextErr(err) {
		return false
	}

	var (
		maxTok   *ErrMaxTokensExceeded
		rejected *ErrRequestRejected
		invalid  *ErrInvalidResponse
	)
	switch {
	case errors.As(err, &maxTok), errors.As(err, &rejected):
		return false
	case errors.As(err, &invalid):
		if s.invalidSeen {
			return false
		}
		s.invalidSeen = true
		return true
	}
	// Rate limits, outages and unclassified network errors.
	return true
}

// backoff returns the wait before the attempt after the given one. A rate
// limit with RetryAfter wins over the computed delay.
func (r *RetryProvider) backoff(attempt int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}

	wait := float64(r.config.InitialWait) * math.Pow(r.config.Multiplier, float64(attempt))
	wait = math.Min(wait, float64(r.config.MaxWait))
	wait += wait * 0.2 * (2*rand.Float64() - 1)
	return time.Duration(math.Max(wait, 0))
}
