package mailer

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"account_backend/internal/shared/ratelimiter"
)

// Sender delivers a single verification email.
type Sender interface {
	SendVerificationEmail(ctx context.Context, toEmail, toName, code string) error
}

// AsyncMailer hands each email to a background goroutine and returns at once.
// Delivery failures are logged and never reach the caller.
type AsyncMailer struct {
	next    Sender
	limiter ratelimiter.RateLimiterInterface
	timeout time.Duration
	logger  *zap.Logger
	wg      sync.WaitGroup
}

// NewAsyncMailer wraps next. limiter may be nil.
func NewAsyncMailer(next Sender, limiter ratelimiter.RateLimiterInterface, timeout time.Duration, logger *zap.Logger) *AsyncMailer {
	return &AsyncMailer{
		next:    next,
		limiter: limiter,
		timeout: timeout,
		logger:  logger.Named("mailer"),
	}
}

// SendVerificationEmail schedules delivery and always returns nil. The
// request context only contributes its values; its cancellation is ignored.
func (m *AsyncMailer) SendVerificationEmail(ctx context.Context, toEmail, toName, code string) error {
	bg := context.WithoutCancel(ctx)
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		if m.limiter != nil {
			m.limiter.WaitIfNeeded()
		}
		sendCtx, cancel := context.WithTimeout(bg, m.timeout)
		defer cancel()
		if err := m.next.SendVerificationEmail(sendCtx, toEmail, toName, code); err != nil {
			m.logger.Error("verification email delivery failed",
				zap.String("to", toEmail),
				zap.Error(err))
		}
	}()
	return nil
}

// Wait blocks until every scheduled email has been attempted.
func (m *AsyncMailer) Wait() {
	m.wg.Wait()
}
