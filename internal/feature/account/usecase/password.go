package usecase

import (
	"context"

	"go.uber.org/zap"

	"account_backend/internal/feature/account/domain"
	auditentity "account_backend/internal/feature/audit/domain/entity"
)

// ChangePassword replaces the caller's password. The whole read, validate,
// update and record sequence runs in one transaction, and the update itself is
// guarded on the attempt counter so concurrent calls cannot exceed the limit.
func (u *accountUsecase) ChangePassword(ctx context.Context, userID uint, current, next string) error {
	return u.uow.Do(ctx, func(r Repositories) error {
		user, err := r.Users.FindByID(ctx, userID)
		if err != nil {
			return err
		}
		if user.IsDeleted() {
			return domain.ErrUserDeleted
		}
		if user.PasswordChangeAttempts >= u.policy.PasswordChangeLimit {
			return domain.ErrAttemptsExhausted
		}
		if err := u.hasher.Compare(user.Password, current); err != nil {
			return domain.ErrBadCredentials
		}
		if err := validateNewPassword(next); err != nil {
			return err
		}
		if u.hasher.Compare(user.Password, next) == nil {
			return domain.ErrPasswordUnchanged
		}

		hashed, err := u.hasher.Hash(next)
		if err != nil {
			return err
		}
		ok, err := r.Users.ChangePassword(ctx, user.ID, hashed, u.policy.PasswordChangeLimit)
		if err != nil {
			return err
		}
		if !ok {
			// Lost a race with another change or a delete.
			latest, err := r.Users.FindByID(ctx, user.ID)
			if err != nil {
				return err
			}
			if latest.IsDeleted() {
				return domain.ErrUserDeleted
			}
			return domain.ErrAttemptsExhausted
		}
		user.Password = hashed
		user.PasswordChangeAttempts++

		if _, err := r.Events.Record(ctx, auditentity.EventPasswordChanged, user); err != nil {
			return err
		}
		u.logger.Info("password changed",
			zap.Uint("user_id", user.ID),
			zap.Int("attempts", user.PasswordChangeAttempts))
		return nil
	})
}

// ResetPassword sets a new password for any user on behalf of an admin. It
// neither checks the current password nor counts against the change limit,
// and it records no audit event.
func (u *accountUsecase) ResetPassword(ctx context.Context, userID uint, next string) error {
	return u.uow.Do(ctx, func(r Repositories) error {
		user, err := r.Users.FindByID(ctx, userID)
		if err != nil {
			return err
		}
		if user.IsDeleted() {
			return domain.ErrUserDeleted
		}
		if err := validateNewPassword(next); err != nil {
			return err
		}

		hashed, err := u.hasher.Hash(next)
		if err != nil {
			return err
		}
		if err := r.Users.UpdatePassword(ctx, user.ID, hashed); err != nil {
			return err
		}
		u.logger.Info("password reset by admin", zap.Uint("user_id", user.ID))
		return nil
	})
}
