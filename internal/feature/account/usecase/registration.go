package usecase

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"account_backend/internal/feature/account/domain"
	"account_backend/internal/feature/account/domain/entity"
	auditentity "account_backend/internal/feature/audit/domain/entity"
)

// RegisterInput is the data needed to open an account.
type RegisterInput struct {
	Name     string
	Surname  string
	Username string
	Email    string
	Phone    string
	Password string
}

// AdminSeed is the identity of the default administrator.
type AdminSeed struct {
	Email    string
	Username string
	Password string
	Phone    string
}

// Register creates an unverified user, records USER_REGISTERED and sends the
// verification code. A failed email delivery is logged and does not fail the call.
func (u *accountUsecase) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	if err := validatePasswordLength(in.Password); err != nil {
		return nil, err
	}
	hashed, err := u.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	code, err := u.newCode()
	if err != nil {
		return nil, err
	}

	now := u.now()
	expiresAt := now.Add(u.policy.VerificationCodeTTL)
	user := &entity.User{
		Name:                      in.Name,
		Surname:                   in.Surname,
		Username:                  in.Username,
		Email:                     in.Email,
		Phone:                     in.Phone,
		Password:                  hashed,
		Enabled:                   false,
		UserStatus:                entity.StatusActive,
		UserRole:                  entity.RoleUser,
		PasswordChangeAttempts:    0,
		VerificationCode:          &code,
		VerificationCodeExpiresAt: &expiresAt,
		CreatedAt:                 now,
		UpdatedAt:                 now,
	}

	err = u.uow.Do(ctx, func(r Repositories) error {
		if err := r.Users.Create(ctx, user); err != nil {
			return err
		}
		_, err := r.Events.Record(ctx, auditentity.EventUserRegistered, user)
		return err
	})
	if err != nil {
		return nil, err
	}

	u.logger.Info("user registered", zap.Uint("user_id", user.ID), zap.String("username", user.Username))
	u.sendVerification(ctx, user)
	return user, nil
}

// Verify enables the account owning email when code matches and has not expired.
func (u *accountUsecase) Verify(ctx context.Context, email, code string) error {
	return u.uow.Do(ctx, func(r Repositories) error {
		user, err := r.Users.FindByEmail(ctx, email)
		if err != nil {
			return err
		}
		// A verified account has no stored code.
		if user.VerificationCode == nil {
			return domain.ErrInvalidCode
		}
		if user.VerificationExpired(u.now()) {
			return domain.ErrVerificationExpired
		}
		if subtle.ConstantTimeCompare([]byte(*user.VerificationCode), []byte(code)) != 1 {
			return domain.ErrInvalidCode
		}

		ok, err := r.Users.MarkVerified(ctx, user.ID)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrInvalidCode
		}
		user.Enabled = true
		user.VerificationCode = nil
		user.VerificationCodeExpiresAt = nil

		if _, err := r.Events.Record(ctx, auditentity.EventUserVerified, user); err != nil {
			return err
		}
		u.logger.Info("user verified", zap.Uint("user_id", user.ID))
		return nil
	})
}

// ResendVerification issues a fresh code with the longer resend lifetime.
func (u *accountUsecase) ResendVerification(ctx context.Context, email string) error {
	var user *entity.User
	err := u.uow.Do(ctx, func(r Repositories) error {
		var err error
		user, err = r.Users.FindByEmail(ctx, email)
		if err != nil {
			return err
		}
		if user.Enabled {
			return domain.ErrAlreadyVerified
		}

		code, err := u.newCode()
		if err != nil {
			return err
		}
		expiresAt := u.now().Add(u.policy.VerificationResendTTL)
		if err := r.Users.SetVerification(ctx, user.ID, code, expiresAt); err != nil {
			return err
		}
		user.VerificationCode = &code
		user.VerificationCodeExpiresAt = &expiresAt
		return nil
	})
	if err != nil {
		return err
	}

	u.sendVerification(ctx, user)
	return nil
}

// sendVerification delivers the user's current code. Failures are logged only.
func (u *accountUsecase) sendVerification(ctx context.Context, user *entity.User) {
	if user.VerificationCode == nil {
		return
	}
	if err := u.mailer.SendVerificationEmail(ctx, user.Email, user.Name, *user.VerificationCode); err != nil {
		u.logger.Warn("failed to send verification email",
			zap.String("email", user.Email),
			zap.Error(err))
	}
}

// SeedAdmin creates the default administrator unless a user with its email
// already exists. Every failure is logged; nothing is returned to the caller.
func (u *accountUsecase) SeedAdmin(ctx context.Context, seed AdminSeed) {
	if err := u.seedAdmin(ctx, seed); err != nil {
		u.logger.Error("failed to create default admin user", zap.Error(err))
	}
}

func (u *accountUsecase) seedAdmin(ctx context.Context, seed AdminSeed) error {
	_, err := u.users.FindByEmail(ctx, seed.Email)
	if err == nil {
		u.logger.Info("admin user already exists", zap.String("email", seed.Email))
		return nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return fmt.Errorf("failed to look up admin: %w", err)
	}

	hashed, err := u.hasher.Hash(seed.Password)
	if err != nil {
		return err
	}
	admin := &entity.User{
		Name:       "Admin",
		Surname:    "User",
		Username:   seed.Username,
		Email:      seed.Email,
		Phone:      seed.Phone,
		Password:   hashed,
		Enabled:    true,
		UserStatus: entity.StatusActive,
		UserRole:   entity.RoleAdmin,
	}
	if err := u.users.Create(ctx, admin); err != nil {
		return err
	}

	u.logger.Info("default admin user created",
		zap.String("email", admin.Email),
		zap.String("username", admin.Username))
	u.logger.Warn("change the default admin password after first login")
	return nil
}
