package handlers

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"picsync/backend/internal/eventparser/core"
	"picsync/backend/internal/eventparser/extract"
	"picsync/backend/internal/ics"
	"picsync/backend/internal/integrations"
)

type clipboardRequest struct {
	Image string `json:"image" validate:"required"`
}

type textRequest struct {
	Text string `json:"text" validate:"required_without=HTML"`
	HTML string `json:"html" validate:"required_without=Text"`
}

type processResponse struct {
	Success           bool               `json:"success"`
	ExtractedText     string             `json:"extracted_text"`
	Event             core.CalendarEvent `json:"event"`
	Dates             core.Range         `json:"dates"`
	CalendarURL       string             `json:"calendar_url"`
	CalendarURLSource core.LinkSource    `json:"calendar_url_source"`
	UsedAI            bool               `json:"used_ai"`
	ImageURL          string             `json:"image_url,omitempty"`
}

// ProcessImage handles a multipart upload in the "file" field.
func (h *Handler) ProcessImage(w http.ResponseWriter, r *http.Request) {
	logger := h.loggerForRequest(r)
	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(h.cfg.MaxUploadBytes); err != nil {
		logger.Warn("action", "action", "process_image", "status", "invalid_form", "error", err)
		writeError(w, uploadErrorStatus(err), "invalid upload")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		logger.Warn("action", "action", "process_image", "status", "missing_file")
		writeError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		logger.Warn("action", "action", "process_image", "status", "read_failed", "error", err)
		writeError(w, http.StatusBadRequest, "invalid upload")
		return
	}
	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(image)
	}
	h.processImage(w, r, logger, "process_image", image, contentType)
}

// ProcessClipboard handles a base64 image, with or without a data URL prefix.
func (h *Handler) ProcessClipboard(w http.ResponseWriter, r *http.Request) {
	logger := h.loggerForRequest(r)
	r.Body = http.MaxBytesReader(w, r.Body, int64(base64.StdEncoding.EncodedLen(int(h.cfg.MaxUploadBytes))+1024))

	var req clipboardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("action", "action", "process_clipboard", "status", "invalid_json")
		writeError(w, uploadErrorStatus(err), "invalid json")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		logger.Warn("action", "action", "process_clipboard", "status", "invalid_payload")
		writeError(w, http.StatusBadRequest, "no image data provided")
		return
	}
	image, contentType, err := decodeClipboardImage(req.Image)
	if err != nil {
		logger.Warn("action", "action", "process_clipboard", "status", "invalid_base64", "error", err)
		writeError(w, http.StatusBadRequest, "invalid image data")
		return
	}
	h.processImage(w, r, logger, "process_clipboard", image, contentType)
}

// ProcessText skips recognition and runs the pipeline over pasted text or HTML.
func (h *Handler) ProcessText(w http.ResponseWriter, r *http.Request) {
	logger := h.loggerForRequest(r)
	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxUploadBytes)

	var req textRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("action", "action", "process_text", "status", "invalid_json")
		writeError(w, uploadErrorStatus(err), "invalid json")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		logger.Warn("action", "action", "process_text", "status", "invalid_payload")
		writeError(w, http.StatusBadRequest, "text or html required")
		return
	}
	text := req.Text
	if strings.TrimSpace(text) == "" {
		flattened, err := extract.TextFromHTML(req.HTML)
		if err != nil {
			logger.Warn("action", "action", "process_text", "status", "invalid_html", "error", err)
			writeError(w, http.StatusBadRequest, "invalid html")
			return
		}
		text = flattened
	}
	if strings.TrimSpace(text) == "" {
		writeError(w, http.StatusBadRequest, "no text found")
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()
	h.respond(ctx, w, r, logger, "process_text", text, "")
}

func (h *Handler) processImage(w http.ResponseWriter, r *http.Request, logger *slog.Logger, action string, image []byte, contentType string) {
	if h.ocr == nil {
		logger.Error("action", "action", action, "status", "vision_unavailable")
		writeError(w, http.StatusInternalServerError, "vision api not available")
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	imageURL := ""
	if h.archive != nil {
		stored, err := h.archive.Store(ctx, image, contentType)
		if err != nil {
			logger.Warn("action", "action", action, "status", "archive_failed", "error", err)
		} else {
			imageURL = stored
		}
	}

	text, err := h.ocr.RecognizeText(ctx, image)
	if err != nil {
		var visionErr *integrations.VisionError
		if errors.As(err, &visionErr) {
			logger.Error("action", "action", action, "status", "vision_error", "vision_status", visionErr.Status, "error", err)
		} else {
			logger.Error("action", "action", action, "status", "ocr_failed", "error", err)
		}
		writeError(w, http.StatusInternalServerError, "error processing image")
		return
	}
	if strings.TrimSpace(text) == "" {
		logger.Info("action", "action", action, "status", "no_text")
		writeError(w, http.StatusBadRequest, "no text found in image")
		return
	}
	h.respond(ctx, w, r, logger, action, text, imageURL)
}

func (h *Handler) respond(ctx context.Context, w http.ResponseWriter, r *http.Request, logger *slog.Logger, action, text, imageURL string) {
	result := h.events.BuildEvent(ctx, text)
	logger.Info("action", "action", action, "status", "ok",
		"used_ai", result.UsedEnhancement,
		"calendar_url_source", result.CalendarURLSource,
	)

	if strings.EqualFold(r.URL.Query().Get("format"), "ics") {
		body, err := ics.Render(result, h.now())
		if err != nil {
			logger.Error("action", "action", action, "status", "ics_error", "error", err)
			writeError(w, http.StatusInternalServerError, "ics export failed")
			return
		}
		w.Header().Set("Content-Type", ics.ContentType)
		w.Header().Set("Content-Disposition", `attachment; filename="event.ics"`)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(body)
		return
	}

	writeJSON(w, http.StatusOK, processResponse{
		Success:           true,
		ExtractedText:     text,
		Event:             result.Event,
		Dates:             result.Range,
		CalendarURL:       result.CalendarURL,
		CalendarURLSource: result.CalendarURLSource,
		UsedAI:            result.UsedEnhancement,
		ImageURL:          imageURL,
	})
}

// decodeClipboardImage accepts "data:image/png;base64,...." or bare base64.
func decodeClipboardImage(raw string) ([]byte, string, error) {
	data := strings.TrimSpace(raw)
	contentType := ""
	if head, body, ok := strings.Cut(data, ","); ok {
		data = body
		if mediaType, found := strings.CutPrefix(head, "data:"); found {
			mediaType, _, _ = strings.Cut(mediaType, ";")
			contentType = mediaType
		}
	}
	image, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		image, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(data, "="))
		if err != nil {
			return nil, "", err
		}
	}
	if len(image) == 0 {
		return nil, "", errors.New("image is empty")
	}
	if contentType == "" {
		contentType = http.DetectContentType(image)
	}
	return image, contentType, nil
}

func uploadErrorStatus(err error) int {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}
