package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"account_backend/internal/feature/account/domain"
	"account_backend/internal/feature/account/domain/entity"
)

// LoginInput carries the credentials and client metadata of a login.
type LoginInput struct {
	Email     string
	Password  string
	UserAgent string
	IPAddress string
}

// LoginResult is a signed token and its lifetime.
type LoginResult struct {
	Token     string
	ExpiresIn time.Duration
	User      *entity.User
}

// Authenticate checks email and password. Checks run in order: existence,
// verification, deletion, then credentials.
func (u *accountUsecase) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if !user.Enabled {
		return nil, domain.ErrNotVerified
	}
	if user.IsDeleted() {
		return nil, domain.ErrUserDeleted
	}
	if err := u.hasher.Compare(user.Password, password); err != nil {
		return nil, domain.ErrBadCredentials
	}
	return user, nil
}

// Login authenticates the user, opens a session and issues a token bound to it.
// When the user already holds MaxSessionsPerUser sessions the oldest is dropped.
func (u *accountUsecase) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	user, err := u.Authenticate(ctx, in.Email, in.Password)
	if err != nil {
		return nil, err
	}

	if u.policy.MaxSessionsPerUser > 0 {
		count, err := u.sessions.CountByUserID(ctx, user.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to count sessions: %w", err)
		}
		if count >= int64(u.policy.MaxSessionsPerUser) {
			if err := u.sessions.DeleteOldestByUserID(ctx, user.ID); err != nil {
				return nil, fmt.Errorf("failed to evict oldest session: %w", err)
			}
		}
	}

	now := u.now()
	session := &entity.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		UserAgent: in.UserAgent,
		IPAddress: in.IPAddress,
		CreatedAt: now,
		ExpiresAt: now.Add(u.policy.TokenTTL),
	}
	if err := u.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	token, err := u.tokens.GenerateToken(user.ID, user.Email, string(user.UserRole), session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &LoginResult{Token: token, ExpiresIn: u.policy.TokenTTL, User: user}, nil
}

// CheckSession verifies that the session named by the identity is still live
// and belongs to the identity's user.
func (u *accountUsecase) CheckSession(ctx context.Context, id entity.Identity) error {
	if id.SessionID == "" {
		return domain.ErrUnauthenticated
	}
	session, err := u.sessions.FindByID(ctx, id.SessionID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return domain.ErrUnauthenticated
		}
		return err
	}
	if session.UserID != id.UserID || !session.IsValid() {
		return domain.ErrUnauthenticated
	}
	return nil
}

// Logout revokes the caller's current session.
func (u *accountUsecase) Logout(ctx context.Context, id entity.Identity) error {
	if err := u.sessions.Revoke(ctx, id.SessionID); err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return domain.ErrUnauthenticated
		}
		return err
	}
	return nil
}

// PurgeExpiredSessions removes expired sessions from storage.
func (u *accountUsecase) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	n, err := u.sessions.DeleteExpired(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		u.logger.Debug("expired sessions purged", zap.Int64("count", n))
	}
	return n, nil
}
