package main

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"

	"promptengine/pkg/config"
	"promptengine/pkg/inference"
	"promptengine/pkg/modes"
	"promptengine/pkg/optimizer"
)

// newOptimizer wires the mode catalogue and the configured inference
// provider. Without a provider the service runs rule-based only.
func newOptimizer(ctx context.Context, cfg config.Config) (*optimizer.Service, error) {
	catalogue, err := modes.Load(cfg.ModesFile)
	if err != nil {
		return nil, err
	}
	if cfg.ModelOverride != "" {
		catalogue = catalogue.WithModelOverride(cfg.ModelOverride)
		log.Info("model override enabled", "model", cfg.ModelOverride)
	}

	llm, err := inference.New(ctx, cfg.Inference)
	switch {
	case errors.Is(err, inference.ErrNoInferencer):
		log.Warn("no inference provider configured, using rule-based optimization", "reason", err)
		return optimizer.New(nil, catalogue), nil
	case err != nil:
		return nil, err
	}
	log.Info("inference ready", "provider", llm.Provider(), "model", llm.Model())
	return optimizer.New(llm, catalogue), nil
}
