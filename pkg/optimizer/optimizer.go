// Package optimizer rewrites prompts for a mode with a language model, or
// with a rule-based outline when no model is available, and scores the
// before and after versions.
package optimizer

import (
	"cmp"
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/openai/openai-go/v3"
	"github.com/segmentio/ksuid"

	"promptengine/pkg/flight"
	"promptengine/pkg/inference"
	"promptengine/pkg/modes"
	"promptengine/pkg/quality"
	"promptengine/pkg/schema"
	"promptengine/pkg/utils"
)

// RuleBased is reported as the model when the fallback produced the output.
const RuleBased = "rule-based"

var (
	ErrEmptyPrompt  = errors.New("prompt is empty")
	ErrEmptyMessage = errors.New("message is empty")

	errEmptyCompletion = errors.New("empty completion")
)

// Progress events emitted by StreamOptimize, in order.
const (
	EventOriginalScores  = "original_scores"
	EventOptimized       = "optimized"
	EventOptimizedScores = "optimized_scores"
)

// Emit receives progress events. Returning an error aborts the run.
type Emit func(event string, data any) error

type Service struct {
	llm       inference.Inferencer
	catalogue *modes.Catalogue
	cache     flight.Cache[request, generation]
	tokens    func(string) int
}

type request struct {
	mode   modes.Mode
	opts   schema.OptimizeOptions
	prompt string
}

type generation struct {
	text  string
	model string
}

type Option func(*Service)

// WithTokenCounter replaces the tiktoken based counter.
func WithTokenCounter(count func(string) int) Option {
	return func(s *Service) { s.tokens = count }
}

// WithCacheExpiry sets how long finished generations are held strongly.
func WithCacheExpiry(d time.Duration) Option {
	return func(s *Service) { s.cache.Expiry(d) }
}

// New creates a Service. llm may be nil, in which case every call uses the
// rule-based fallback.
func New(llm inference.Inferencer, catalogue *modes.Catalogue, opts ...Option) *Service {
	s := &Service{
		llm:       llm,
		catalogue: catalogue,
		tokens:    utils.CountTokens,
	}
	s.cache = flight.NewCache(s.generate)
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Service) Catalogue() *modes.Catalogue { return s.catalogue }

// Model is the model used when a mode does not select one.
func (s *Service) Model() string {
	if s.llm == nil {
		return RuleBased
	}
	return s.llm.Model()
}

// Provider reports the configured inference provider.
func (s *Service) Provider() inference.Provider {
	if s.llm == nil {
		return inference.ProviderNone
	}
	return s.llm.Provider()
}

// ModelFor reports which model a mode runs on with the configured provider.
// Only Gemini serves the catalogue's per-mode models.
func (s *Service) ModelFor(cfg modes.Config) string {
	if s.llm == nil {
		return RuleBased
	}
	if s.llm.Provider() == inference.ProviderGemini && cfg.Model != "" {
		return cfg.Model
	}
	return s.llm.Model()
}

// Optimize rewrites req.Prompt for the requested mode and scores both versions.
func (s *Service) Optimize(ctx context.Context, req schema.OptimizeRequest) (*schema.OptimizeResponse, error) {
	return s.StreamOptimize(ctx, req, nil)
}

// StreamOptimize is Optimize with progress reported through emit.
// A nil emit is allowed.
func (s *Service) StreamOptimize(ctx context.Context, req schema.OptimizeRequest, emit Emit) (*schema.OptimizeResponse, error) {
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return nil, ErrEmptyPrompt
	}
	cfg, err := s.catalogue.Resolve(req.Mode, prompt)
	if err != nil {
		return nil, err
	}
	if emit == nil {
		emit = func(string, any) error { return nil }
	}
	start := time.Now()

	original := quality.Score(prompt)
	if err := emit(EventOriginalScores, original); err != nil {
		return nil, err
	}

	gen, fallbackUsed := s.optimized(ctx, request{mode: cfg.Name, opts: req.Options, prompt: prompt}, cfg, req.Fresh)
	if err := emit(EventOptimized, map[string]any{
		"mode":             cfg.Name,
		"model":            gen.model,
		"optimized_prompt": gen.text,
		"fallback":         fallbackUsed,
	}); err != nil {
		return nil, err
	}

	optimized := quality.Score(gen.text)
	if err := emit(EventOptimizedScores, optimized); err != nil {
		return nil, err
	}

	resp := &schema.OptimizeResponse{
		Ref:             ksuid.New().String(),
		Mode:            cfg.Name,
		Model:           gen.model,
		OriginalPrompt:  prompt,
		OptimizedPrompt: gen.text,
		OriginalScores:  original,
		OptimizedScores: optimized,
		Improvement:     quality.Improvement(original, optimized),
		Tokens: schema.Tokens{
			Original:  s.tokens(prompt),
			Optimized: s.tokens(gen.text),
		},
		Fallback:   fallbackUsed,
		DurationMS: time.Since(start).Milliseconds(),
	}
	log.Info("optimize complete",
		"ref", resp.Ref, "mode", resp.Mode, "model", resp.Model,
		"original", original.Overall, "optimized", optimized.Overall, "fallback", fallbackUsed)
	return resp, nil
}

func (s *Service) optimized(ctx context.Context, key request, cfg modes.Config, fresh bool) (generation, bool) {
	if s.llm == nil {
		return generation{text: fallback(cfg, key.prompt, key.opts), model: RuleBased}, true
	}

	get := s.cache.Get
	if fresh {
		get = s.cache.Force
	}
	gen, err := get(ctx, key)
	if err != nil {
		log.Warn("inference failed, using rule-based outline", "mode", cfg.Name, "error", err)
		return generation{text: fallback(cfg, key.prompt, key.opts), model: RuleBased}, true
	}
	return gen, false
}

// generate is the cache's work function.
func (s *Service) generate(ctx context.Context, key request) (generation, error) {
	cfg, err := s.catalogue.Lookup(string(key.mode))
	if err != nil {
		return generation{}, err
	}
	model := s.ModelFor(cfg)
	params := &openai.ChatCompletionNewParams{
		Model:               model,
		Temperature:         openai.Float(cfg.Temperature),
		MaxCompletionTokens: openai.Int(cfg.MaxTokens),
	}

	log.Debug("optimizing prompt", "mode", cfg.Name, "model", model, "chars", len(key.prompt))
	out, err := s.llm.Infer(ctx, params, systemPrompt(cfg), userQuery(cfg, key.prompt, key.opts))
	if err != nil {
		return generation{}, err
	}
	if ok, err := s.llm.Verify(ctx, strings.TrimSpace(out)); !ok {
		return generation{}, cmp.Or(err, errEmptyCompletion)
	}
	return generation{text: FormatOutput(out), model: model}, nil
}
