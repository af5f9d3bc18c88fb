package di

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	accountadapters "account_backend/internal/feature/account/adapters"
	accountentity "account_backend/internal/feature/account/domain/entity"
	accounthandler "account_backend/internal/feature/account/transport/handler"
	accountusecase "account_backend/internal/feature/account/usecase"
	auditadapters "account_backend/internal/feature/audit/adapters"
	auditentity "account_backend/internal/feature/audit/domain/entity"
	audithandler "account_backend/internal/feature/audit/transport/handler"
	auditusecase "account_backend/internal/feature/audit/usecase"
	"account_backend/internal/platform/cache"
	"account_backend/internal/platform/config"
	"account_backend/internal/platform/hash"
	jwtmw "account_backend/internal/platform/jwt"
	"account_backend/internal/platform/mailer"
	"account_backend/internal/shared/ratelimiter"
)

const (
	// mailTimeout bounds a single email delivery.
	mailTimeout = 30 * time.Second

	// mailsPerMinute caps outgoing verification emails.
	mailsPerMinute = 30

	// eventCacheTTL is how long a single audit event stays cached.
	eventCacheTTL = time.Hour
)

// AccountService is everything the HTTP layer and the background jobs need
// from the account usecase.
type AccountService interface {
	accounthandler.AuthUsecase
	accounthandler.UserUsecase
	jwtmw.SessionChecker
	SeedAdmin(ctx context.Context, seed accountusecase.AdminSeed)
	PurgeExpiredSessions(ctx context.Context) (int64, error)
}

// Models returns every persisted model in migration order.
func Models() []any {
	return []any{&accountentity.User{}, &auditentity.UserEvent{}, &accountadapters.SessionModel{}}
}

// AuditRecorder binds an audit recorder to a transaction.
func AuditRecorder(logger *zap.Logger) accountadapters.RecorderFactory {
	return func(tx *gorm.DB) accountusecase.EventRecorder {
		return auditusecase.NewRecorder(auditadapters.NewEventGorm(tx), logger)
	}
}

// NewMailer returns the SMTP mailer when a host is configured and a logging
// mailer otherwise, wrapped so that delivery never blocks a request.
func NewMailer(cfg config.SMTPConfig, logger *zap.Logger) (*mailer.AsyncMailer, error) {
	var sender mailer.Sender
	if cfg.Host != "" {
		smtp, err := mailer.NewSMTPMailer(cfg, logger)
		if err != nil {
			return nil, err
		}
		sender = smtp
	} else {
		logger.Warn("SMTP_HOST is not set; verification codes will be logged instead of emailed")
		sender = mailer.NewLogMailer(logger)
	}
	limiter := ratelimiter.NewRateLimiter(mailsPerMinute, time.Minute)
	return mailer.NewAsyncMailer(sender, limiter, mailTimeout, logger), nil
}

// Policy converts the account configuration into the usecase policy.
func Policy(cfg *config.Config) accountusecase.Policy {
	return accountusecase.Policy{
		VerificationCodeTTL:   cfg.Account.VerificationCodeTTL,
		VerificationResendTTL: cfg.Account.VerificationResendTTL,
		PasswordChangeLimit:   cfg.Account.PasswordChangeLimit,
		MaxSessionsPerUser:    cfg.Account.MaxSessionsPerUser,
		TokenTTL:              cfg.JWT.Expiration,
	}
}

// NewAccountUsecase wires the account usecase on top of db, optional Redis and mail.
func NewAccountUsecase(cfg *config.Config, db *gorm.DB, rdb *redis.Client, mail accountusecase.Mailer, logger *zap.Logger) AccountService {
	return accountusecase.NewAccountUsecase(accountusecase.Deps{
		UnitOfWork: accountadapters.NewGormUnitOfWork(db, AuditRecorder(logger)),
		Users:      accountadapters.NewUserGorm(db),
		Sessions:   NewSessionRepository(rdb, db),
		Hasher:     hash.NewBcryptHasher(bcrypt.DefaultCost),
		Tokens:     jwtmw.NewGenerator(cfg.JWT.Secret, cfg.JWT.Expiration),
		Mailer:     mail,
	}, Policy(cfg), accountusecase.WithLogger(logger))
}

// NewAuditUsecase wires the audit read usecase. Single event lookups are
// cached in Redis when it is available.
func NewAuditUsecase(db *gorm.DB, rdb *redis.Client) audithandler.EventUsecase {
	events := cache.NewCachingEventRepository(rdb, eventCacheTTL, auditadapters.NewEventGorm(db), "events")
	return auditusecase.NewAuditUsecase(events)
}
