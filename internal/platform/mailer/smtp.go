// Package mailer delivers account verification emails.
package mailer

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"account_backend/internal/platform/config"
)

const verificationSubject = "Verify your account"

// dialer is the subset of gomail.Dialer used to send messages.
type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPMailer sends verification emails through an SMTP relay.
type SMTPMailer struct {
	from   string
	d      dialer
	logger *zap.Logger
}

// NewSMTPMailer creates an SMTPMailer from cfg.
func NewSMTPMailer(cfg config.SMTPConfig, logger *zap.Logger) (*SMTPMailer, error) {
	if cfg.Host == "" || cfg.Port == 0 || cfg.From == "" {
		return nil, errors.New("SMTP host, port and sender must be configured")
	}
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	d.TLSConfig = &tls.Config{ServerName: cfg.Host, MinVersion: tls.VersionTLS12}
	if cfg.Port == 465 {
		d.SSL = true
	}
	return &SMTPMailer{from: cfg.From, d: d, logger: logger.Named("mailer")}, nil
}

// SendVerificationEmail sends code to toEmail. The SMTP exchange is abandoned
// when ctx is done first.
func (m *SMTPMailer) SendVerificationEmail(ctx context.Context, toEmail, toName, code string) error {
	msg := verificationMessage(m.from, toEmail, toName, code)

	done := make(chan error, 1)
	go func() {
		done <- m.d.DialAndSend(msg)
	}()

	select {
	case <-ctx.Done():
		return fmt.Errorf("email sending cancelled or timed out: %w", ctx.Err())
	case err := <-done:
		if err != nil {
			return fmt.Errorf("failed to send email: %w", err)
		}
	}

	m.logger.Info("verification email sent", zap.String("to", toEmail))
	return nil
}

func verificationMessage(from, toEmail, toName, code string) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("From", from)
	if toName != "" {
		msg.SetAddressHeader("To", toEmail, toName)
	} else {
		msg.SetHeader("To", toEmail)
	}
	msg.SetHeader("Subject", verificationSubject)
	msg.SetBody("text/plain", verificationText(toName, code))
	return msg
}

func verificationText(name, code string) string {
	greeting := "Hello,"
	if name != "" {
		greeting = fmt.Sprintf("Hello %s,", name)
	}
	return fmt.Sprintf("%s\n\nYour verification code is: %s\n\nThe code expires soon. If you did not create an account, ignore this email.\n", greeting, code)
}
