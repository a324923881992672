package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"picsync/backend/internal/config"
	"picsync/backend/internal/eventparser/core"
	authmw "picsync/backend/internal/http/middleware"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
)

// TextRecognizer extracts text from an image.
type TextRecognizer interface {
	RecognizeText(ctx context.Context, image []byte) (string, error)
}

// ImageStore keeps a copy of an uploaded image and returns where it lives.
type ImageStore interface {
	Store(ctx context.Context, image []byte, contentType string) (string, error)
}

// EventBuilder runs the event pipeline over recognized text.
type EventBuilder interface {
	BuildEvent(ctx context.Context, rawText string) core.Result
}

type Handler struct {
	events    EventBuilder
	ocr       TextRecognizer
	archive   ImageStore
	cfg       *config.Config
	logger    *slog.Logger
	validator *validator.Validate
	now       func() time.Time
}

// New creates handler. ocr and archive may be nil.
func New(events EventBuilder, ocr TextRecognizer, archive ImageStore, cfg *config.Config, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg == nil {
		cfg = &config.Config{MaxUploadBytes: 10 << 20}
	}
	return &Handler{
		events:    events,
		ocr:       ocr,
		archive:   archive,
		cfg:       cfg,
		logger:    logger,
		validator: validator.New(),
		now:       time.Now,
	}
}

// withTimeout leaves room for one OCR call and both AI round-trips.
func (h *Handler) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := h.cfg.Vision.Timeout + h.cfg.AI.Timeout + 5*time.Second
	if timeout < 10*time.Second {
		timeout = 10 * time.Second
	}
	return context.WithTimeout(ctx, timeout)
}

func (h *Handler) loggerForRequest(r *http.Request) *slog.Logger {
	logger := h.logger
	if logger == nil {
		return slog.Default()
	}
	if reqID := chimw.GetReqID(r.Context()); reqID != "" {
		logger = logger.With("request_id", reqID)
	}
	if clientID, ok := authmw.ClientIDFromContext(r.Context()); ok {
		logger = logger.With("client_id", clientID)
	}
	return logger
}
