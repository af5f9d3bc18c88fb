package janitor

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type purgerFunc func(ctx context.Context) (int64, error)

func (f purgerFunc) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	return f(ctx)
}

func TestRun_PurgesUntilCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var calls atomic.Int32
	purger := purgerFunc(func(context.Context) (int64, error) {
		if calls.Add(1) == 3 {
			cancel()
		}
		return 1, nil
	})

	done := make(chan struct{})
	go func() {
		Run(ctx, purger, time.Millisecond, zap.NewNop())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("janitor did not stop after cancellation")
	}
	assert.GreaterOrEqual(t, calls.Load(), int32(3))
}

func TestRun_LogsFailuresAndKeepsGoing(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	ctx, cancel := context.WithCancel(context.Background())
	var calls atomic.Int32
	purger := purgerFunc(func(context.Context) (int64, error) {
		if calls.Add(1) == 2 {
			cancel()
			return 0, nil
		}
		return 0, errors.New("redis: connection refused")
	})

	Run(ctx, purger, time.Millisecond, zap.New(core))

	assert.GreaterOrEqual(t, calls.Load(), int32(2))
	assert.Equal(t, 1, logs.FilterMessage("session cleanup failed").Len())
}

func TestRun_DisabledInterval(t *testing.T) {
	purger := purgerFunc(func(context.Context) (int64, error) {
		t.Fatal("purge must not run")
		return 0, nil
	})
	Run(context.Background(), purger, 0, zap.NewNop())
}
