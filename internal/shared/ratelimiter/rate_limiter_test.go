package ratelimiter

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	mu    sync.Mutex
	now   time.Time
	slept []time.Duration
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Sleep(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.slept = append(c.slept, d)
	c.now = c.now.Add(d)
}

func newTestLimiter(limit int, interval time.Duration) (*RateLimiter, *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	rl := NewRateLimiter(limit, interval)
	rl.now = clock.Now
	rl.sleep = clock.Sleep
	rl.lastReset = clock.now
	return rl, clock
}

func TestRateLimiter_WaitIfNeeded(t *testing.T) {
	t.Run("under the limit never sleeps", func(t *testing.T) {
		rl, clock := newTestLimiter(3, time.Minute)
		for i := 0; i < 3; i++ {
			rl.WaitIfNeeded()
		}
		assert.Empty(t, clock.slept)
	})

	t.Run("exceeding the limit sleeps until the window resets", func(t *testing.T) {
		rl, clock := newTestLimiter(2, time.Minute)
		rl.WaitIfNeeded()
		clock.now = clock.now.Add(10 * time.Second)
		rl.WaitIfNeeded()
		rl.WaitIfNeeded()
		assert.Equal(t, []time.Duration{50 * time.Second}, clock.slept)
	})

	t.Run("window resets after the interval", func(t *testing.T) {
		rl, clock := newTestLimiter(1, time.Minute)
		rl.WaitIfNeeded()
		clock.now = clock.now.Add(time.Minute)
		rl.WaitIfNeeded()
		assert.Empty(t, clock.slept)
	})

	t.Run("zero limit disables throttling", func(t *testing.T) {
		rl, clock := newTestLimiter(0, time.Minute)
		for i := 0; i < 10; i++ {
			rl.WaitIfNeeded()
		}
		assert.Empty(t, clock.slept)
	})
}
