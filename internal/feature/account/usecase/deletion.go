package usecase

import (
	"context"

	"go.uber.org/zap"

	"account_backend/internal/feature/account/domain"
	"account_backend/internal/feature/account/domain/entity"
	auditentity "account_backend/internal/feature/audit/domain/entity"
)

// DeleteSelf soft deletes the caller's account and revokes all of its sessions.
func (u *accountUsecase) DeleteSelf(ctx context.Context, id entity.Identity) error {
	if err := u.markDeleted(ctx, id.UserID); err != nil {
		return err
	}
	if err := u.sessions.RevokeAllByUserID(ctx, id.UserID); err != nil {
		u.logger.Warn("failed to revoke sessions of deleted user",
			zap.Uint("user_id", id.UserID),
			zap.Error(err))
	}
	return nil
}

// DeleteUser soft deletes any user on behalf of an admin.
func (u *accountUsecase) DeleteUser(ctx context.Context, userID uint) error {
	return u.markDeleted(ctx, userID)
}

func (u *accountUsecase) markDeleted(ctx context.Context, userID uint) error {
	return u.uow.Do(ctx, func(r Repositories) error {
		user, err := r.Users.FindByID(ctx, userID)
		if err != nil {
			return err
		}
		if user.IsDeleted() {
			return domain.ErrAlreadyDeleted
		}

		ok, err := r.Users.MarkDeleted(ctx, user.ID)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrAlreadyDeleted
		}
		user.UserStatus = entity.StatusDeleted

		if _, err := r.Events.Record(ctx, auditentity.EventUserDeleted, user); err != nil {
			return err
		}
		u.logger.Info("user deleted", zap.Uint("user_id", user.ID))
		return nil
	})
}
