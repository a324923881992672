package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"picsync/backend/internal/eventparser/core"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := NewClient(Config{
		APIKey:       "test-key",
		Model:        "test-model",
		Endpoint:     server.URL + "/v1beta/",
		RateLimitRPS: 100,
		RateBurst:    10,
		Temperature:  0.1,
	}, nil)
	if client == nil {
		t.Fatalf("expected client")
	}
	return client
}

func TestCompleteSendsPromptAndReturnsText(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/v1beta/models/test-model:generateContent" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("x-goog-api-key"); got != "test-key" {
			t.Fatalf("unexpected api key header: %q", got)
		}
		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if len(req.Contents) != 1 || req.Contents[0].Parts[0].Text != "hello" {
			t.Fatalf("unexpected contents: %+v", req.Contents)
		}
		if req.GenerationConfig.Temperature != 0.1 {
			t.Fatalf("unexpected temperature: %v", req.GenerationConfig.Temperature)
		}
		if req.GenerationConfig.ResponseMIMEType != "application/json" {
			t.Fatalf("unexpected mime type: %q", req.GenerationConfig.ResponseMIMEType)
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"candidates": []interface{}{
				map[string]interface{}{"content": map[string]interface{}{"parts": []interface{}{}}},
				map[string]interface{}{"content": map[string]interface{}{"parts": []interface{}{
					map[string]string{"text": `{"title":`},
					map[string]string{"text": ` "X"}`},
				}}},
			},
		})
	})

	got, err := client.Complete(context.Background(), "hello")
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if got != `{"title": "X"}` {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestCompleteReportsStatus(t *testing.T) {
	calls := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	})

	_, err := client.Complete(context.Background(), "hello")
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if statusErr.Status != http.StatusTooManyRequests || statusErr.Body != "quota exceeded" {
		t.Fatalf("unexpected status error: %+v", statusErr)
	}
	if calls != 1 {
		t.Fatalf("expected a single attempt, got %d", calls)
	}
}

func TestCompleteBlockedPrompt(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"promptFeedback": {"blockReason": "SAFETY"}}`))
	})
	if _, err := client.Complete(context.Background(), "hello"); err == nil {
		t.Fatalf("expected error for blocked prompt")
	}
}

func TestNilClientIsUnavailable(t *testing.T) {
	client := NewClient(Config{APIKey: "  "}, nil)
	if client != nil {
		t.Fatalf("expected nil client without key")
	}
	if _, err := client.Complete(context.Background(), "hello"); !errors.Is(err, core.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestModelRateLimiterHonoursContext(t *testing.T) {
	limiter := NewModelRateLimiter(0.001, 1)
	if err := limiter.Wait(context.Background(), "m"); err != nil {
		t.Fatalf("first wait: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := limiter.Wait(ctx, "m"); err == nil {
		t.Fatalf("expected canceled wait to fail")
	}
	if err := limiter.Wait(ctx, ""); err != nil {
		t.Fatalf("empty model should not be limited: %v", err)
	}
}
