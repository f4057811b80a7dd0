// Package ratelimit provides a process-wide fixed-window attempt limiter for sign-in and sign-up.
// State lives in memory only and is lost on restart.
package ratelimit

import (
	"context"
	"strings"
	"sync"
	"time"
)

// Limiter decides whether another attempt is allowed for a key.
type Limiter interface {
	// Allow records an attempt for key and reports whether it is within the limit.
	// When it is not, retryAfter is the time until the window resets.
	Allow(ctx context.Context, key string) (ok bool, retryAfter time.Duration)
	// Reset forgets all attempts for key, e.g. after a successful sign-in.
	Reset(ctx context.Context, key string)
}

// Key builds a limiter key from an operation and an email, case-insensitive on the email.
func Key(op, email string) string {
	return op + ":" + strings.ToLower(strings.TrimSpace(email))
}

type window struct {
	count   int
	resetAt time.Time
}

// MemoryLimiter is an in-memory Limiter with a fixed window per key.
type MemoryLimiter struct {
	mu     sync.RWMutex
	m      map[string]window
	max    int
	period time.Duration
	nowF   func() time.Time
}

// NewMemoryLimiter allows max attempts per key in each period.
func NewMemoryLimiter(max int, period time.Duration) *MemoryLimiter {
	if max < 1 {
		max = 1
	}
	return &MemoryLimiter{
		m:      make(map[string]window),
		max:    max,
		period: period,
		nowF:   time.Now,
	}
}

// Allow records an attempt for key.
func (l *MemoryLimiter) Allow(ctx context.Context, key string) (bool, time.Duration) {
	now := l.nowF()
	l.mu.Lock()
	defer l.mu.Unlock()
	w, ok := l.m[key]
	if !ok || !w.resetAt.After(now) {
		w = window{resetAt: now.Add(l.period)}
	}
	if w.count >= l.max {
		l.m[key] = w
		return false, w.resetAt.Sub(now)
	}
	w.count++
	l.m[key] = w
	return true, 0
}

// Reset forgets attempts for key.
func (l *MemoryLimiter) Reset(ctx context.Context, key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.m, key)
}

// Remaining reports how many attempts key has left in its current window.
func (l *MemoryLimiter) Remaining(key string) int {
	l.mu.RLock()
	w, ok := l.m[key]
	l.mu.RUnlock()
	if !ok || !w.resetAt.After(l.nowF()) {
		return l.max
	}
	return l.max - w.count
}

// Sweep drops expired windows. Call it periodically from a long-running process.
func (l *MemoryLimiter) Sweep() int {
	now := l.nowF()
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for k, w := range l.m {
		if !w.resetAt.After(now) {
			delete(l.m, k)
			n++
		}
	}
	return n
}

// RunSweeper calls Sweep every interval until ctx is done.
func (l *MemoryLimiter) RunSweeper(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			l.Sweep()
		}
	}
}
