package eventparser

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"picsync/backend/internal/config"
	"picsync/backend/internal/eventparser/calendarlink"
	"picsync/backend/internal/eventparser/core"
	"picsync/backend/internal/eventparser/enhance"
	"picsync/backend/internal/eventparser/extract"
	"picsync/backend/internal/eventparser/schedule"
	"picsync/backend/internal/integrations/gemini"
)

var (
	defaultOnce     sync.Once
	defaultPipeline *core.Pipeline
)

// Options configures NewPipeline. A nil Completer disables both AI passes.
type Options struct {
	Completer  core.Completer
	AITimeout  time.Duration
	Concurrent bool
	// Now replaces the wall clock; used for "today" and the prompts' current date.
	Now func() time.Time
}

// BuildEvent runs the default pipeline over recognized text.
func BuildEvent(ctx context.Context, rawText string) core.Result {
	return DefaultPipeline().BuildEvent(ctx, rawText)
}

// DefaultPipeline returns the process-wide pipeline, configured from the
// GEMINI_* and AI_* environment on first use. It logs through slog.Default
// as it was when first called.
func DefaultPipeline() *core.Pipeline {
	defaultOnce.Do(func() {
		logger := slog.Default()
		ai := config.LoadAI()
		defaultPipeline = NewPipeline(Options{
			Completer:  NewCompleter(ai, logger),
			AITimeout:  ai.Timeout,
			Concurrent: ai.Concurrent,
		}, logger)
	})
	return defaultPipeline
}

// NewCompleter returns the Gemini client for cfg, or nil when no API key is set.
func NewCompleter(cfg config.AIConfig, logger *slog.Logger) core.Completer {
	client := gemini.NewClient(gemini.Config{
		APIKey:       cfg.APIKey,
		Model:        cfg.Model,
		Endpoint:     cfg.Endpoint,
		Timeout:      cfg.Timeout,
		RateLimitRPS: cfg.RateRPS,
		RateBurst:    cfg.RateBurst,
		Temperature:  cfg.Temperature,
	}, logger)
	if client == nil {
		return nil
	}
	return client
}

// NewPipeline wires the extraction stages around an optional completer.
func NewPipeline(opts Options, logger *slog.Logger) *core.Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	cfg := core.PipelineConfig{
		Extract:    extract.Extract,
		Normalizer: schedule.NewWithClock(now, logger),
		Build:      calendarlink.BuildForEvent,
		AITimeout:  opts.AITimeout,
		Concurrent: opts.Concurrent,
		Logger:     logger,
	}
	if opts.Completer != nil {
		cfg.Enhancer = enhance.NewWithClock(opts.Completer, now, logger)
		cfg.Author = calendarlink.NewAuthor(opts.Completer, now, logger)
	}
	return core.NewPipeline(cfg)
}
