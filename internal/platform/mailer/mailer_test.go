package mailer

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"gopkg.in/gomail.v2"

	"account_backend/internal/platform/config"
)

// mockDialer is a mock implementation of dialer.
type mockDialer struct {
	DialAndSendFunc func(m ...*gomail.Message) error
}

func (d *mockDialer) DialAndSend(m ...*gomail.Message) error {
	if d.DialAndSendFunc != nil {
		return d.DialAndSendFunc(m...)
	}
	return nil
}

func TestNewSMTPMailer(t *testing.T) {
	_, err := NewSMTPMailer(config.SMTPConfig{}, zap.NewNop())
	assert.Error(t, err)

	m, err := NewSMTPMailer(config.SMTPConfig{Host: "smtp.example.com", Port: 587, From: "no-reply@example.com"}, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "no-reply@example.com", m.from)
}

func TestSMTPMailer_SendVerificationEmail(t *testing.T) {
	t.Run("builds message with code", func(t *testing.T) {
		var sent *gomail.Message
		m := &SMTPMailer{from: "no-reply@example.com", logger: zap.NewNop(), d: &mockDialer{
			DialAndSendFunc: func(msgs ...*gomail.Message) error {
				sent = msgs[0]
				return nil
			},
		}}

		require.NoError(t, m.SendVerificationEmail(context.Background(), "ada@example.com", "Ada", "123456"))
		require.NotNil(t, sent)
		assert.Equal(t, []string{"no-reply@example.com"}, sent.GetHeader("From"))
		assert.Equal(t, []string{verificationSubject}, sent.GetHeader("Subject"))

		var buf bytes.Buffer
		_, err := sent.WriteTo(&buf)
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "123456")
		assert.Contains(t, buf.String(), "ada@example.com")
	})

	t.Run("dial failure is wrapped", func(t *testing.T) {
		m := &SMTPMailer{from: "x@example.com", logger: zap.NewNop(), d: &mockDialer{
			DialAndSendFunc: func(...*gomail.Message) error { return errors.New("refused") },
		}}
		err := m.SendVerificationEmail(context.Background(), "ada@example.com", "", "123456")
		assert.ErrorContains(t, err, "failed to send email")
	})

	t.Run("context cancellation wins", func(t *testing.T) {
		release := make(chan struct{})
		defer close(release)
		m := &SMTPMailer{from: "x@example.com", logger: zap.NewNop(), d: &mockDialer{
			DialAndSendFunc: func(...*gomail.Message) error {
				<-release
				return nil
			},
		}}
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := m.SendVerificationEmail(ctx, "ada@example.com", "", "123456")
		assert.ErrorIs(t, err, context.Canceled)
	})
}

// recordingSender is a Sender that records calls.
type recordingSender struct {
	mu    sync.Mutex
	codes []string
	err   error
}

func (s *recordingSender) SendVerificationEmail(ctx context.Context, _, _ string, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("missing deadline")
	}
	s.codes = append(s.codes, code)
	return s.err
}

type countingLimiter struct {
	mu    sync.Mutex
	calls int
}

func (l *countingLimiter) WaitIfNeeded() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls++
}

func TestAsyncMailer(t *testing.T) {
	t.Run("delivers in background despite cancelled request", func(t *testing.T) {
		next := &recordingSender{}
		limiter := &countingLimiter{}
		m := NewAsyncMailer(next, limiter, time.Second, zap.NewNop())

		ctx, cancel := context.WithCancel(context.Background())
		require.NoError(t, m.SendVerificationEmail(ctx, "a@example.com", "A", "111111"))
		cancel()
		require.NoError(t, m.SendVerificationEmail(context.Background(), "b@example.com", "B", "222222"))
		m.Wait()

		assert.ElementsMatch(t, []string{"111111", "222222"}, next.codes)
		assert.Equal(t, 2, limiter.calls)
	})

	t.Run("failures are logged, not returned", func(t *testing.T) {
		core, logs := observer.New(zap.ErrorLevel)
		next := &recordingSender{err: errors.New("smtp down")}
		m := NewAsyncMailer(next, nil, time.Second, zap.New(core))

		assert.NoError(t, m.SendVerificationEmail(context.Background(), "a@example.com", "A", "111111"))
		m.Wait()

		require.Equal(t, 1, logs.Len())
		assert.Equal(t, "verification email delivery failed", logs.All()[0].Message)
	})
}

func TestLogMailer(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	m := NewLogMailer(zap.New(core))

	require.NoError(t, m.SendVerificationEmail(context.Background(), "a@example.com", "A", "123456"))
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "123456", logs.All()[0].ContextMap()["code"])
}
