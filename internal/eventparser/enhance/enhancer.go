package enhance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"picsync/backend/internal/eventparser/core"

	"github.com/go-playground/validator/v10"
)

// Enhancer corrects and completes heuristic events with a text-completion
// collaborator.
type Enhancer struct {
	completer core.Completer
	validate  *validator.Validate
	now       func() time.Time
	logger    *slog.Logger
}

// New creates an enhancer. A nil completer makes every call a no-op.
func New(completer core.Completer, logger *slog.Logger) *Enhancer {
	return NewWithClock(completer, time.Now, logger)
}

// NewWithClock creates an enhancer with an injected clock for the prompt's current date.
func NewWithClock(completer core.Completer, now func() time.Time, logger *slog.Logger) *Enhancer {
	if logger == nil {
		logger = slog.Default()
	}
	if now == nil {
		now = time.Now
	}
	return &Enhancer{
		completer: completer,
		validate:  validator.New(),
		now:       now,
		logger:    logger,
	}
}

// Enhance implements core.Enhancer.
func (e *Enhancer) Enhance(ctx context.Context, rawText string, baseline core.CalendarEvent) (core.CalendarEvent, bool) {
	if e == nil || e.completer == nil {
		return baseline, false
	}
	reply, err := e.request(ctx, rawText)
	if err != nil {
		e.logFailure(err)
		return baseline, false
	}
	merged := Merge(baseline, reply.fields)
	merged.Enhanced = true
	merged.AIPayload = reply.payload
	return merged, true
}

type decodedReply struct {
	fields  Reply
	payload []byte
}

func (e *Enhancer) request(ctx context.Context, rawText string) (decodedReply, error) {
	raw, err := e.completer.Complete(ctx, BuildPrompt(rawText, e.now()))
	if err != nil {
		return decodedReply{}, fmt.Errorf("complete: %w", err)
	}
	return e.decode(raw)
}

func (e *Enhancer) decode(raw string) (decodedReply, error) {
	var fields Reply
	payload, err := core.DecodeJSONReply(raw, &fields)
	if err != nil {
		return decodedReply{}, err
	}
	if err := e.validate.Struct(fields); err != nil {
		return decodedReply{}, &core.MalformedReplyError{Reason: "schema violation", Err: err}
	}
	return decodedReply{fields: fields, payload: payload}, nil
}

func (e *Enhancer) logFailure(err error) {
	var malformed *core.MalformedReplyError
	switch {
	case errors.As(err, &malformed):
		e.logger.Warn("event_enhance", "status", "malformed_response", "error", err)
	case errors.Is(err, core.ErrUnavailable):
		e.logger.Debug("event_enhance", "status", "unavailable")
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		e.logger.Warn("event_enhance", "status", "timeout", "error", err)
	default:
		e.logger.Warn("event_enhance", "status", "call_failed", "error", err)
	}
}
