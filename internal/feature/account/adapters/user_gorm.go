// Package adapters provides repository implementations for the account feature.
package adapters

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"account_backend/internal/feature/account/domain"
	"account_backend/internal/feature/account/domain/entity"
	"account_backend/internal/feature/account/usecase"
	"account_backend/internal/platform/db"
	"account_backend/internal/shared/pagination"
)

// userSortColumns whitelists the sortable user fields.
var userSortColumns = map[string]string{
	"id":        "id",
	"username":  "username",
	"email":     "email",
	"name":      "name",
	"surname":   "surname",
	"createdAt": "created_at",
}

// userGorm is the GORM implementation of the UserRepository interface.
type userGorm struct {
	db *gorm.DB
}

// Compile-time check to ensure userGorm implements UserRepository.
var _ usecase.UserRepository = (*userGorm)(nil)

// NewUserGorm creates a new instance of userGorm.
func NewUserGorm(db *gorm.DB) *userGorm {
	return &userGorm{db: db}
}

// Create inserts a user. Unique violations on email, username or phone
// are reported as domain.ErrConflict.
func (r *userGorm) Create(ctx context.Context, u *entity.User) error {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if db.IsUniqueViolation(err) {
			return domain.ErrConflict
		}
		return err
	}
	return nil
}

// FindByEmail retrieves a user by email address.
func (r *userGorm) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.first(ctx, "email = ?", email)
}

// FindByID retrieves a user by ID.
func (r *userGorm) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *userGorm) first(ctx context.Context, query string, arg any) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where(query, arg).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// SetVerification stores a new verification code and expiry.
func (r *userGorm) SetVerification(ctx context.Context, id uint, code string, expiresAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&entity.User{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"verification_code":            code,
			"verification_code_expires_at": expiresAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// MarkVerified enables the user and clears the code, but only if the user is
// still unverified.
func (r *userGorm) MarkVerified(ctx context.Context, id uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&entity.User{}).
		Where("id = ? AND enabled = ?", id, false).
		Updates(map[string]any{
			"enabled":                      true,
			"verification_code":            nil,
			"verification_code_expires_at": nil,
		})
	return result.RowsAffected == 1, result.Error
}

// UpdatePassword overwrites the password hash.
func (r *userGorm) UpdatePassword(ctx context.Context, id uint, hash string) error {
	result := r.db.WithContext(ctx).
		Model(&entity.User{}).
		Where("id = ?", id).
		Update("password", hash)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// ChangePassword overwrites the hash and increments the attempt counter in a
// single guarded statement.
func (r *userGorm) ChangePassword(ctx context.Context, id uint, hash string, limit int) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&entity.User{}).
		Where("id = ? AND user_status = ? AND password_change_attempts < ?", id, entity.StatusActive, limit).
		Updates(map[string]any{
			"password":                 hash,
			"password_change_attempts": gorm.Expr("password_change_attempts + 1"),
		})
	return result.RowsAffected == 1, result.Error
}

// MarkDeleted soft deletes the user unless it is already deleted.
func (r *userGorm) MarkDeleted(ctx context.Context, id uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&entity.User{}).
		Where("id = ? AND user_status <> ?", id, entity.StatusDeleted).
		Update("user_status", entity.StatusDeleted)
	return result.RowsAffected == 1, result.Error
}

// List returns one page of users matching filter.
func (r *userGorm) List(ctx context.Context, filter usecase.UserFilter, p pagination.Pageable) ([]entity.User, int64, error) {
	q := r.db.WithContext(ctx).Model(&entity.User{})
	if filter.Status != nil {
		q = q.Where("user_status = ?", *filter.Status)
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("(LOWER(username) LIKE ? OR LOWER(email) LIKE ?)", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []entity.User
	if err := q.Scopes(db.Paginate(p, userSortColumns, pagination.Sort{Field: "id"})).
		Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// All returns every user ordered by ID.
func (r *userGorm) All(ctx context.Context) ([]entity.User, error) {
	var users []entity.User
	if err := r.db.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Count counts users, optionally restricted to status.
func (r *userGorm) Count(ctx context.Context, status *entity.UserStatus) (int64, error) {
	q := r.db.WithContext(ctx).Model(&entity.User{})
	if status != nil {
		q = q.Where("user_status = ?", *status)
	}
	var n int64
	err := q.Count(&n).Error
	return n, err
}
