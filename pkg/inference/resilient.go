package inference

import (
	"context"
	"time"

	"github.com/felixgeelhaar/fortify/retry"
	"github.com/felixgeelhaar/fortify/timeout"
	"github.com/openai/openai-go/v3"
)

// ResilientInferencer retries failed or empty completions with exponential
// backoff and bounds the whole exchange by a timeout.
type ResilientInferencer struct {
	inner    Inferencer
	retryCfg retry.Config
	limit    time.Duration
}

type ResilienceConfig struct {
	Attempts     int
	InitialDelay time.Duration
	Timeout      time.Duration
}

func NewResilientInferencer(inner Inferencer, cfg ResilienceConfig) *ResilientInferencer {
	if cfg.Attempts < 1 {
		cfg.Attempts = 1
	}
	if cfg.InitialDelay <= 0 {
		cfg.InitialDelay = time.Second
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 120 * time.Second
	}
	return &ResilientInferencer{
		inner: inner,
		retryCfg: retry.Config{
			MaxAttempts:   cfg.Attempts,
			InitialDelay:  cfg.InitialDelay,
			BackoffPolicy: retry.BackoffExponential,
		},
		limit: cfg.Timeout,
	}
}

func (r *ResilientInferencer) Model() string { return r.inner.Model() }

func (r *ResilientInferencer) Provider() Provider { return r.inner.Provider() }

func (r *ResilientInferencer) Infer(ctx context.Context, params *openai.ChatCompletionNewParams, system, user string) (string, error) {
	rt := retry.New[string](r.retryCfg)
	t := timeout.New[string](timeout.Config{DefaultTimeout: r.limit})

	return t.Execute(ctx, r.limit, func(ctx context.Context) (string, error) {
		return rt.Do(ctx, func(ctx context.Context) (string, error) {
			out, err := r.inner.Infer(ctx, params, system, user)
			if err != nil {
				return "", err
			}
			if _, err := r.inner.Verify(ctx, out); err != nil {
				return "", err
			}
			return out, nil
		})
	})
}

func (r *ResilientInferencer) Verify(ctx context.Context, result string) (bool, error) {
	return r.inner.Verify(ctx, result)
}
