package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// LimiterStore hands out one token bucket per key. Buckets idle for longer
// than the idle timeout are dropped on the next sweep.
type LimiterStore struct {
	limiters map[string]*entry
	mu       sync.Mutex
	r        rate.Limit
	burst    int
	idle     time.Duration
	now      func() time.Time
}

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewLimiterStore(r rate.Limit, burst int, idle time.Duration) *LimiterStore {
	return &LimiterStore{
		limiters: make(map[string]*entry),
		r:        r,
		burst:    burst,
		idle:     idle,
		now:      time.Now,
	}
}

func (s *LimiterStore) GetLimiter(key string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if e, exists := s.limiters[key]; exists {
		e.lastSeen = now
		return e.limiter
	}
	limiter := rate.NewLimiter(s.r, s.burst)
	s.limiters[key] = &entry{limiter: limiter, lastSeen: now}
	return limiter
}

// Allow reports whether key may proceed now, consuming a token if so.
func (s *LimiterStore) Allow(key string) bool {
	return s.GetLimiter(key).AllowN(s.now(), 1)
}

// Sweep removes idle buckets and returns how many were removed.
func (s *LimiterStore) Sweep() int {
	if s.idle <= 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	cutoff := s.now().Add(-s.idle)
	for key, e := range s.limiters {
		if e.lastSeen.Before(cutoff) {
			delete(s.limiters, key)
			removed++
		}
	}
	return removed
}

func (s *LimiterStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.limiters)
}
