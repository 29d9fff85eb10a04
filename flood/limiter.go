// Package flood throttles how many commands each nick may issue per window.
package flood

import (
	"sync"
	"time"
)

const (
	DefaultCeiling = 5
	DefaultWindow  = 60 * time.Second
)

// Limiter counts accepted commands per identity inside a fixed window.
// The first accepted command for an identity starts the window; when the
// window elapses the counter is removed and the identity starts fresh.
// A burst of exactly the ceiling is allowed, then the identity is blocked
// until the window ends.
type Limiter struct {
	mu      sync.Mutex
	ceiling int
	window  time.Duration
	counts  map[string]int
	timers  map[string]*time.Timer
	closed  bool
}

func NewLimiter(ceiling int, window time.Duration) *Limiter {
	if ceiling <= 0 {
		ceiling = DefaultCeiling
	}
	if window <= 0 {
		window = DefaultWindow
	}
	return &Limiter{
		ceiling: ceiling,
		window:  window,
		counts:  make(map[string]int),
		timers:  make(map[string]*time.Timer),
	}
}

// Allow reports whether identity may issue another command, incrementing its
// counter when accepted.
func (l *Limiter) Allow(identity string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return false
	}
	if l.counts[identity] >= l.ceiling {
		return false
	}
	l.counts[identity]++
	if l.counts[identity] == 1 {
		l.timers[identity] = time.AfterFunc(l.window, func() {
			l.expire(identity)
		})
	}
	return true
}

func (l *Limiter) expire(identity string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.counts, identity)
	delete(l.timers, identity)
}

// Close stops all pending window timers. Allow rejects everything afterwards.
func (l *Limiter) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	l.closed = true
	for identity, t := range l.timers {
		t.Stop()
		delete(l.timers, identity)
		delete(l.counts, identity)
	}
}
