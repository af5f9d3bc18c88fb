// Package janitor runs periodic housekeeping jobs.
package janitor

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// SessionPurger removes expired sessions.
type SessionPurger interface {
	PurgeExpiredSessions(ctx context.Context) (int64, error)
}

// Run purges expired sessions every interval until ctx is done. A
// non-positive interval disables the job.
func Run(ctx context.Context, purger SessionPurger, interval time.Duration, logger *zap.Logger) {
	if interval <= 0 {
		logger.Info("session cleanup disabled")
		return
	}
	logger = logger.Named("janitor")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := purger.PurgeExpiredSessions(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				logger.Error("session cleanup failed", zap.Error(err))
				continue
			}
			logger.Info("session cleanup finished", zap.Int64("removed", n))
		}
	}
}
