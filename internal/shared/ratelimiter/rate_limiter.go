// Package ratelimiter throttles outbound calls to a fixed number per interval.
package ratelimiter

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// RateLimiterInterface limits how often an operation may run.
type RateLimiterInterface interface {
	WaitIfNeeded()
}

// RateLimiter allows at most limit calls per interval and blocks callers that
// exceed it until the window resets. It is safe for concurrent use.
type RateLimiter struct {
	mu        sync.Mutex
	limit     int
	interval  time.Duration
	count     int
	lastReset time.Time

	now   func() time.Time
	sleep func(time.Duration)
}

// NewRateLimiter creates a RateLimiter. A non-positive limit disables throttling.
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:     limit,
		interval:  interval,
		lastReset: time.Now(),
		now:       time.Now,
		sleep:     time.Sleep,
	}
}

// WaitIfNeeded counts one call and sleeps when the current window is full.
func (rl *RateLimiter) WaitIfNeeded() {
	if wait := rl.reserve(); wait > 0 {
		zap.L().Debug("rate limit reached", zap.Int("limit", rl.limit), zap.Duration("sleep", wait))
		rl.sleep(wait)
	}
}

// reserve books a slot and returns how long the caller must wait for it.
func (rl *RateLimiter) reserve() time.Duration {
	if rl.limit <= 0 {
		return 0
	}
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.Sub(rl.lastReset) >= rl.interval {
		rl.count = 0
		rl.lastReset = now
	}

	rl.count++
	if rl.count <= rl.limit {
		return 0
	}

	// The slot belongs to the next window.
	wait := rl.interval - now.Sub(rl.lastReset)
	rl.count = 1
	rl.lastReset = now.Add(wait)
	return wait
}
