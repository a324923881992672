package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"picsync/backend/internal/eventparser/core"
)

const (
	defaultEndpoint = "https://generativelanguage.googleapis.com/v1beta"
	defaultModel    = "gemini-1.5-flash"
	maxResponseSize = 2 << 20
)

// Config represents gemini client config.
type Config struct {
	APIKey       string
	Model        string
	Endpoint     string
	Timeout      time.Duration
	RateLimitRPS float64
	RateBurst    int
	Temperature  float64
}

// Client calls the generateContent endpoint. It is safe for concurrent use
// and makes exactly one attempt per call.
type Client struct {
	apiKey      string
	model       string
	endpoint    string
	temperature float64
	client      *http.Client
	limiter     *ModelRateLimiter
	logger      *slog.Logger
}

// StatusError is a non-2xx answer from the API.
type StatusError struct {
	Status int
	Body   string
}

// Error implements error.
func (e *StatusError) Error() string {
	if e == nil {
		return "gemini status error"
	}
	return fmt.Sprintf("gemini status %d: %s", e.Status, e.Body)
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature      float64 `json:"temperature"`
	ResponseMIMEType string  `json:"responseMimeType,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content      content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback,omitempty"`
}

// NewClient creates a client, or returns nil when no API key is configured.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil
	}
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = defaultEndpoint
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.RateLimitRPS <= 0 {
		cfg.RateLimitRPS = 2
	}
	if cfg.RateBurst <= 0 {
		cfg.RateBurst = 2
	}
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           (&net.Dialer{Timeout: 5 * time.Second, KeepAlive: 30 * time.Second}).DialContext,
		MaxIdleConns:          32,
		MaxIdleConnsPerHost:   8,
		IdleConnTimeout:       60 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	return &Client{
		apiKey:      strings.TrimSpace(cfg.APIKey),
		model:       cfg.Model,
		endpoint:    strings.TrimRight(cfg.Endpoint, "/"),
		temperature: cfg.Temperature,
		client:      &http.Client{Timeout: cfg.Timeout, Transport: transport},
		limiter:     NewModelRateLimiter(cfg.RateLimitRPS, cfg.RateBurst),
		logger:      logger,
	}
}

// Complete implements core.Completer.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	if c == nil {
		return "", core.ErrUnavailable
	}
	if err := c.limiter.Wait(ctx, c.model); err != nil {
		return "", err
	}
	start := time.Now()
	text, err := c.generate(ctx, prompt)
	if err != nil {
		c.logger.Warn("gemini_generate", "model", c.model, "duration_ms", time.Since(start).Milliseconds(), "error", err)
		return "", err
	}
	c.logger.Debug("gemini_generate", "model", c.model, "duration_ms", time.Since(start).Milliseconds(), "chars", len(text))
	return text, nil
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			Temperature:      c.temperature,
			ResponseMIMEType: "application/json",
		},
	})
	if err != nil {
		return "", err
	}
	reqURL := fmt.Sprintf("%s/models/%s:generateContent", c.endpoint, url.PathEscape(c.model))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &StatusError{Status: resp.StatusCode, Body: truncate(strings.TrimSpace(string(body)), 512)}
	}

	var decoded generateResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", fmt.Errorf("decode gemini response: %w", err)
	}
	if decoded.PromptFeedback != nil && decoded.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("prompt blocked: %s", decoded.PromptFeedback.BlockReason)
	}
	for _, candidate := range decoded.Candidates {
		var b strings.Builder
		for _, p := range candidate.Content.Parts {
			b.WriteString(p.Text)
		}
		if text := strings.TrimSpace(b.String()); text != "" {
			return text, nil
		}
	}
	return "", errors.New("gemini returned no candidates")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
