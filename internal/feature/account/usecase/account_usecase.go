// Package usecase implements the account lifecycle: registration, email
// verification, login sessions, password changes and soft deletion.
package usecase

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"account_backend/internal/feature/account/domain"
	"account_backend/internal/feature/account/domain/entity"
	auditentity "account_backend/internal/feature/audit/domain/entity"
	"account_backend/internal/shared/pagination"
)

const (
	// minPasswordLength is the minimum length of a new password.
	minPasswordLength = 5

	// maxPasswordBytes is the longest input bcrypt accepts.
	maxPasswordBytes = 72

	// defaultPasswordChangeLimit is the lifetime quota of self-service password changes.
	defaultPasswordChangeLimit = 1
)

// UserFilter narrows a user listing. Zero fields impose no constraint.
type UserFilter struct {
	Status *entity.UserStatus
	// Search matches username or email, case-insensitively, as a substring.
	Search string
}

// UserRepository abstracts the persistence layer for user entities.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type UserRepository interface {
	// Create persists a new user. It returns domain.ErrConflict when email,
	// username or phone is already taken.
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail returns domain.ErrUserNotFound when no user matches.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID returns domain.ErrUserNotFound when no user matches.
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// SetVerification replaces the verification code and its expiry.
	SetVerification(ctx context.Context, id uint, code string, expiresAt time.Time) error

	// MarkVerified enables an unverified user and clears its code.
	// It reports false when the user was already enabled.
	MarkVerified(ctx context.Context, id uint) (bool, error)

	// UpdatePassword stores a new password hash without touching the attempt counter.
	UpdatePassword(ctx context.Context, id uint, hash string) error

	// ChangePassword stores a new hash and increments the attempt counter, but
	// only while the user is active and the counter is below limit.
	// It reports false when the guard did not match.
	ChangePassword(ctx context.Context, id uint, hash string, limit int) (bool, error)

	// MarkDeleted moves an active user to DELETED. It reports false when the
	// user was already deleted.
	MarkDeleted(ctx context.Context, id uint) (bool, error)

	// List returns one page of users matching filter and the total match count.
	List(ctx context.Context, filter UserFilter, p pagination.Pageable) ([]entity.User, int64, error)

	// All returns every user ordered by ID.
	All(ctx context.Context) ([]entity.User, error)

	// Count returns the number of users with the given status, or all users when status is nil.
	Count(ctx context.Context, status *entity.UserStatus) (int64, error)
}

// EventRecorder appends audit events.
type EventRecorder interface {
	Record(ctx context.Context, eventType auditentity.EventType, user *entity.User) (*auditentity.UserEvent, error)
}

// Repositories are the transaction-bound collaborators handed to a UnitOfWork callback.
type Repositories struct {
	Users  UserRepository
	Events EventRecorder
}

// UnitOfWork runs fn inside a single database transaction. The transaction
// commits when fn returns nil and rolls back otherwise.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(r Repositories) error) error
}

// PasswordHasher is the one-way password hashing primitive.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Compare returns nil when password matches hashed.
	Compare(hashed, password string) error
}

// TokenGenerator issues signed bearer tokens.
type TokenGenerator interface {
	GenerateToken(userID uint, email, role, sessionID string) (string, error)
}

// Mailer delivers verification codes.
type Mailer interface {
	SendVerificationEmail(ctx context.Context, toEmail, toName, code string) error
}

// Policy holds the configurable lifecycle limits.
type Policy struct {
	VerificationCodeTTL   time.Duration
	VerificationResendTTL time.Duration
	PasswordChangeLimit   int
	MaxSessionsPerUser    int
	TokenTTL              time.Duration
}

// DefaultPolicy returns the default lifecycle limits.
func DefaultPolicy() Policy {
	return Policy{
		VerificationCodeTTL:   15 * time.Minute,
		VerificationResendTTL: time.Hour,
		PasswordChangeLimit:   defaultPasswordChangeLimit,
		MaxSessionsPerUser:    5,
		TokenTTL:              time.Hour,
	}
}

// Deps are the collaborators of the account usecase.
type Deps struct {
	UnitOfWork UnitOfWork
	Users      UserRepository
	Sessions   SessionRepository
	Hasher     PasswordHasher
	Tokens     TokenGenerator
	Mailer     Mailer
}

// Option customizes the account usecase.
type Option func(*accountUsecase)

// WithClock injects a custom clock (useful for tests).
func WithClock(now func() time.Time) Option {
	return func(u *accountUsecase) {
		if now != nil {
			u.now = now
		}
	}
}

// WithCodeGenerator overrides the verification code source.
func WithCodeGenerator(gen func() (string, error)) Option {
	return func(u *accountUsecase) {
		if gen != nil {
			u.newCode = gen
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(u *accountUsecase) {
		if logger != nil {
			u.logger = logger.Named("account")
		}
	}
}

// accountUsecase implements the account lifecycle.
type accountUsecase struct {
	uow      UnitOfWork
	users    UserRepository
	sessions SessionRepository
	hasher   PasswordHasher
	tokens   TokenGenerator
	mailer   Mailer
	policy   Policy
	now      func() time.Time
	newCode  func() (string, error)
	logger   *zap.Logger
}

// NewAccountUsecase creates the account usecase.
func NewAccountUsecase(deps Deps, policy Policy, opts ...Option) *accountUsecase {
	if policy.PasswordChangeLimit < 0 {
		policy.PasswordChangeLimit = defaultPasswordChangeLimit
	}
	u := &accountUsecase{
		uow:      deps.UnitOfWork,
		users:    deps.Users,
		sessions: deps.Sessions,
		hasher:   deps.Hasher,
		tokens:   deps.Tokens,
		mailer:   deps.Mailer,
		policy:   policy,
		now:      time.Now,
		newCode:  GenerateVerificationCode,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// validateNewPassword checks the minimum strength of a new password.
func validateNewPassword(password string) error {
	if strings.TrimSpace(password) == "" || utf8.RuneCountInString(password) < minPasswordLength {
		return domain.ErrWeakPassword
	}
	return validatePasswordLength(password)
}

// validatePasswordLength rejects passwords bcrypt would refuse. The limit is
// in bytes, not runes.
func validatePasswordLength(password string) error {
	if len(password) > maxPasswordBytes {
		return domain.ErrPasswordTooLong
	}
	return nil
}
