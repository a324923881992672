package gemini

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// ModelRateLimiter keeps one token bucket per model.
type ModelRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rate     rate.Limit
	burst    int
}

func NewModelRateLimiter(rps float64, burst int) *ModelRateLimiter {
	if rps <= 0 {
		rps = 1
	}
	if burst <= 0 {
		burst = 1
	}
	return &ModelRateLimiter{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Limit(rps),
		burst:    burst,
	}
}

// Wait blocks until a request for model may proceed or ctx is done.
func (l *ModelRateLimiter) Wait(ctx context.Context, model string) error {
	if l == nil || model == "" {
		return nil
	}
	return l.getLimiter(model).Wait(ctx)
}

func (l *ModelRateLimiter) getLimiter(model string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	limiter, ok := l.limiters[model]
	if !ok {
		limiter = rate.NewLimiter(l.rate, l.burst)
		l.limiters[model] = limiter
	}
	return limiter
}
