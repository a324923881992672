package rate

import (
	"sync"
	"time"
)

// WindowLimiter allows up to limit hits per key in each fixed window.
type WindowLimiter struct {
	mu              sync.Mutex
	limit           int
	window          time.Duration
	items           map[string]*windowEntry
	lastCleanup     time.Time
	cleanupInterval time.Duration
	now             func() time.Time
}

type windowEntry struct {
	start time.Time
	count int
}

// NewWindowLimiter creates window limiter. A non-positive limit disables limiting.
func NewWindowLimiter(limit int, window time.Duration) *WindowLimiter {
	return newWindowLimiter(limit, window, time.Now)
}

func newWindowLimiter(limit int, window time.Duration, now func() time.Time) *WindowLimiter {
	return &WindowLimiter{
		limit:           limit,
		window:          window,
		items:           make(map[string]*windowEntry),
		lastCleanup:     now(),
		cleanupInterval: window,
		now:             now,
	}
}

// Allow records a hit for key. When the budget is spent it returns false and
// the time left until the window resets.
func (l *WindowLimiter) Allow(key string) (bool, time.Duration) {
	if l == nil || l.limit <= 0 {
		return true, 0
	}
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()

	l.maybeCleanup(now)

	entry, ok := l.items[key]
	if !ok {
		l.items[key] = &windowEntry{start: now, count: 1}
		return true, 0
	}

	if now.Sub(entry.start) >= l.window {
		entry.start = now
		entry.count = 1
		return true, 0
	}

	if entry.count >= l.limit {
		return false, entry.start.Add(l.window).Sub(now)
	}

	entry.count++
	return true, 0
}

func (l *WindowLimiter) maybeCleanup(now time.Time) {
	if l.cleanupInterval <= 0 || l.window <= 0 {
		return
	}
	if !l.lastCleanup.IsZero() && now.Sub(l.lastCleanup) < l.cleanupInterval {
		return
	}
	for key, entry := range l.items {
		if now.Sub(entry.start) >= l.window {
			delete(l.items, key)
		}
	}
	l.lastCleanup = now
}
