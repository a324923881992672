package core

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

const defaultAITimeout = 20 * time.Second

// PipelineConfig wires the stages of a Pipeline. Enhancer and Author are
// optional; Extract, Normalizer and Build are required.
type PipelineConfig struct {
	Extract    Extractor
	Enhancer   Enhancer
	Normalizer Normalizer
	Author     LinkAuthor
	Build      LinkBuilder

	// AITimeout bounds the wait on AI round-trips for one request.
	AITimeout time.Duration
	// Concurrent issues the enhancement and URL authoring calls in parallel.
	Concurrent bool
	Logger     *slog.Logger
}

// Pipeline turns recognized text into an event and a calendar link.
type Pipeline struct {
	extract    Extractor
	enhancer   Enhancer
	normalizer Normalizer
	author     LinkAuthor
	build      LinkBuilder
	aiTimeout  time.Duration
	concurrent bool
	logger     *slog.Logger
}

// NewPipeline creates pipeline.
func NewPipeline(cfg PipelineConfig) *Pipeline {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.AITimeout <= 0 {
		cfg.AITimeout = defaultAITimeout
	}
	return &Pipeline{
		extract:    cfg.Extract,
		enhancer:   cfg.Enhancer,
		normalizer: cfg.Normalizer,
		author:     cfg.Author,
		build:      cfg.Build,
		aiTimeout:  cfg.AITimeout,
		concurrent: cfg.Concurrent,
		logger:     cfg.Logger,
	}
}

// BuildEvent runs every stage for one input. It always returns a result;
// failures inside a stage degrade to that stage's fallback.
func (p *Pipeline) BuildEvent(ctx context.Context, rawText string) Result {
	baseline := p.extract(rawText)

	aiCtx, cancel := context.WithTimeout(ctx, p.aiTimeout)
	defer cancel()

	event := baseline
	enhanced := false
	authoredURL := ""
	authored := false

	enhanceStep := func() {
		if p.enhancer == nil {
			return
		}
		event, enhanced = p.enhancer.Enhance(aiCtx, rawText, baseline)
	}
	authorStep := func() {
		if p.author == nil {
			return
		}
		authoredURL, authored = p.author.Author(aiCtx, rawText)
	}

	if p.concurrent {
		var g errgroup.Group
		g.Go(func() error { enhanceStep(); return nil })
		g.Go(func() error { authorStep(); return nil })
		_ = g.Wait()
	} else {
		enhanceStep()
		authorStep()
	}
	if !enhanced {
		event = baseline
	}

	window := p.normalizer.Normalize(event)
	result := Result{
		Event:           event,
		Range:           window,
		UsedEnhancement: enhanced,
	}
	if authored {
		result.CalendarURL = authoredURL
		result.CalendarURLSource = LinkSourceAI
	} else {
		result.CalendarURL = p.build(event, window)
		result.CalendarURLSource = LinkSourceBuilder
	}
	p.logger.Debug("event_built",
		"used_ai", enhanced,
		"calendar_url_source", result.CalendarURLSource,
		"has_title", event.Title != "",
		"has_date", event.Date != "",
	)
	return result
}
