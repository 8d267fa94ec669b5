package search

import (
	"sync"
	"time"
)

// DefaultInterval is the minimum spacing between outbound Adzuna calls.
// Adzuna's free tier rejects bursts well below its documented quota.
const DefaultInterval = 200 * time.Millisecond

// Limiter throttles outbound upstream calls. One shared instance per
// process: all callers contend on the same timestamp, so two calls are never
// issued closer together than the interval, regardless of which search or
// phase they belong to.
type Limiter struct {
	mu       sync.Mutex
	interval time.Duration
	last     time.Time
}

// NewLimiter returns a Limiter with the given minimum interval.
func NewLimiter(interval time.Duration) *Limiter {
	return &Limiter{interval: interval}
}

// Wait blocks until the interval has elapsed since the previous caller was
// released, then stamps the release time. Callers queue on the internal
// mutex in arrival order.
func (l *Limiter) Wait() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.last.IsZero() {
		if d := l.interval - time.Since(l.last); d > 0 {
			time.Sleep(d)
		}
	}
	l.last = time.Now()
}
