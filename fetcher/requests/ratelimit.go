package requests

import (
	"context"
	"sync"
	"time"
)

// Window allows Count requests per Interval.
type Window struct {
	Count    int
	Interval time.Duration
}

type window struct {
	limit         int
	resetInterval time.Duration
	count         int
	lastReset     time.Time
}

// Limiter throttles outgoing requests against every configured window.
type Limiter struct {
	windows []*window
	mu      sync.Mutex
	now     func() time.Time
}

// Create a limiter. Windows with a non positive count or interval are ignored.
func NewLimiter(windows ...Window) *Limiter {
	limiter := &Limiter{now: time.Now}
	start := limiter.now()
	for _, w := range windows {
		if w.Count <= 0 || w.Interval <= 0 {
			continue
		}
		limiter.windows = append(limiter.windows, &window{
			limit:         w.Count,
			resetInterval: w.Interval,
			lastReset:     start,
		})
	}
	return limiter
}

// Wait blocks until every window has room, or the context ends.
func (l *Limiter) Wait(ctx context.Context) error {
	for {
		wait := l.reserve()
		if wait == 0 {
			return nil
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// Reserve a slot, or return how long until one frees up.
func (l *Limiter) reserve() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	var waitTime time.Duration
	for _, w := range l.windows {
		if now.Sub(w.lastReset) >= w.resetInterval {
			w.count = 0
			w.lastReset = now
		}
		if w.count < w.limit {
			continue
		}
		if until := w.resetInterval - now.Sub(w.lastReset); until > waitTime {
			waitTime = until
		}
	}

	if waitTime > 0 {
		return waitTime
	}

	for _, w := range l.windows {
		w.count++
	}
	return 0
}
