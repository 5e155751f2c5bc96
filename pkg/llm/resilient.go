package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ai-finance-assistant-be/internal/pkg/logger"
)

// RetryPolicy bounds how hard the resilient provider tries each
// candidate model before moving to the next one.
type RetryPolicy struct {
	MaxRetries   int           // retries per candidate, on top of the first attempt
	InitialDelay time.Duration // first backoff delay
	MaxDelay     time.Duration // backoff ceiling
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries:   2,
		InitialDelay: 1 * time.Second,
		MaxDelay:     10 * time.Second,
	}
}

// ResilientProvider walks an ordered list of candidate models on one
// backend. Per candidate: "not found" skips to the next candidate
// immediately, "rate limited" and other faults back off exponentially
// and retry the same candidate up to the policy bound. Only when every
// candidate is exhausted does the call fail.
type ResilientProvider struct {
	inner      LLMProvider
	candidates []string
	policy     RetryPolicy
	logger     logger.ILogger

	// Overridable for tests
	sleep func(context.Context, time.Duration) error
}

var _ LLMProvider = &ResilientProvider{}

func NewResilientProvider(inner LLMProvider, candidates []string, policy RetryPolicy, log logger.ILogger) *ResilientProvider {
	return &ResilientProvider{
		inner:      inner,
		candidates: candidates,
		policy:     policy,
		logger:     log,
		sleep:      sleepCtx,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

func (r *ResilientProvider) Chat(ctx context.Context, history []Message, opts ...Option) (string, error) {
	var lastErr error

	for _, model := range r.candidates {
		delay := r.policy.InitialDelay

		for attempt := 0; attempt <= r.policy.MaxRetries; attempt++ {
			if attempt > 0 {
				if err := r.sleep(ctx, delay); err != nil {
					return "", err
				}
				delay *= 2
				if delay > r.policy.MaxDelay {
					delay = r.policy.MaxDelay
				}
			}

			reply, err := r.inner.Chat(ctx, history, append(opts, WithModel(model))...)
			if err == nil {
				return reply, nil
			}
			lastErr = err

			if errors.Is(err, ErrModelNotFound) {
				r.logger.Info("llm", "Model unavailable, trying next candidate", map[string]interface{}{
					"model": model,
				})
				break
			}

			r.logger.Warn("llm", "Generation attempt failed", map[string]interface{}{
				"model":   model,
				"attempt": attempt + 1,
				"error":   err.Error(),
			})

			if ctx.Err() != nil {
				return "", ctx.Err()
			}
		}
	}

	return "", fmt.Errorf("all candidate models failed: %w", lastErr)
}

func (r *ResilientProvider) Generate(ctx context.Context, prompt string, opts ...Option) (string, error) {
	return r.Chat(ctx, []Message{{Role: "user", Content: prompt}}, opts...)
}
