package integrations

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"picsync/backend/internal/config"

	"golang.org/x/text/unicode/norm"
)

const defaultVisionEndpoint = "https://vision.googleapis.com/v1/images:annotate"

// VisionClient recognizes text in images with Google Cloud Vision.
type VisionClient struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

// VisionError is an error reported by the Vision API, either as an HTTP
// status or inside the annotate response.
type VisionError struct {
	Status  int
	Message string
}

// Error implements error.
func (e *VisionError) Error() string {
	if e == nil {
		return "vision api error"
	}
	if e.Status != 0 {
		return fmt.Sprintf("vision api status %d: %s", e.Status, e.Message)
	}
	return "vision api error: " + e.Message
}

type annotateRequest struct {
	Requests []annotateImageRequest `json:"requests"`
}

type annotateImageRequest struct {
	Image    annotateImage     `json:"image"`
	Features []annotateFeature `json:"features"`
}

type annotateImage struct {
	Content string `json:"content"`
}

type annotateFeature struct {
	Type string `json:"type"`
}

type annotateResponse struct {
	Responses []struct {
		TextAnnotations []struct {
			Description string `json:"description"`
		} `json:"textAnnotations"`
		Error *struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"error,omitempty"`
	} `json:"responses"`
}

// NewVisionClient creates a client, or returns nil when no API key is configured.
func NewVisionClient(cfg config.VisionConfig) *VisionClient {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil
	}
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		endpoint = defaultVisionEndpoint
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &VisionClient{
		apiKey:   apiKey,
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

// RecognizeText returns the full recognized text of image, or "" when the
// image contains none.
func (c *VisionClient) RecognizeText(ctx context.Context, image []byte) (string, error) {
	if c == nil {
		return "", fmt.Errorf("vision client is not configured")
	}
	if len(image) == 0 {
		return "", fmt.Errorf("image is empty")
	}
	payload, err := json.Marshal(annotateRequest{
		Requests: []annotateImageRequest{{
			Image:    annotateImage{Content: base64.StdEncoding.EncodeToString(image)},
			Features: []annotateFeature{{Type: "TEXT_DETECTION"}},
		}},
	})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Goog-Api-Key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", &VisionError{Status: resp.StatusCode, Message: strings.TrimSpace(string(body))}
	}

	var decoded annotateResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 8<<20)).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode vision response: %w", err)
	}
	if len(decoded.Responses) == 0 {
		return "", nil
	}
	first := decoded.Responses[0]
	if first.Error != nil && first.Error.Message != "" {
		return "", &VisionError{Message: first.Error.Message}
	}
	if len(first.TextAnnotations) == 0 {
		return "", nil
	}
	return norm.NFC.String(first.TextAnnotations[0].Description), nil
}
