package usecase

import (
	"context"

	"account_backend/internal/feature/account/domain/entity"
	"account_backend/internal/shared/pagination"
)

// UserStats summarises the user population.
type UserStats struct {
	Total   int64 `json:"total"`
	Active  int64 `json:"active"`
	Deleted int64 `json:"deleted"`
}

var usernameAsc = pagination.Sort{Field: "username"}

// CurrentUser returns the caller's own profile.
func (u *accountUsecase) CurrentUser(ctx context.Context, id entity.Identity) (*entity.User, error) {
	return u.users.FindByID(ctx, id.UserID)
}

// GetUser returns a user by ID.
func (u *accountUsecase) GetUser(ctx context.Context, userID uint) (*entity.User, error) {
	return u.users.FindByID(ctx, userID)
}

// ListUsers returns one page of the users matching filter.
func (u *accountUsecase) ListUsers(ctx context.Context, filter UserFilter, p pagination.Pageable) (*pagination.Page[entity.User], error) {
	return u.list(ctx, filter, p)
}

// SearchUsers matches query against username and email. Results are ordered by
// username unless p names another sort.
func (u *accountUsecase) SearchUsers(ctx context.Context, query string, p pagination.Pageable) (*pagination.Page[entity.User], error) {
	if p.Sort.Field == "" {
		p.Sort = usernameAsc
	}
	return u.list(ctx, UserFilter{Search: query}, p)
}

// UsersByStatus lists users in the given status, ordered by username unless p
// names another sort.
func (u *accountUsecase) UsersByStatus(ctx context.Context, status entity.UserStatus, p pagination.Pageable) (*pagination.Page[entity.User], error) {
	if p.Sort.Field == "" {
		p.Sort = usernameAsc
	}
	return u.list(ctx, UserFilter{Status: &status}, p)
}

// AllUsers returns every user without paging.
func (u *accountUsecase) AllUsers(ctx context.Context) ([]entity.User, error) {
	return u.users.All(ctx)
}

// Stats counts users by status.
func (u *accountUsecase) Stats(ctx context.Context) (*UserStats, error) {
	total, err := u.users.Count(ctx, nil)
	if err != nil {
		return nil, err
	}
	active := entity.StatusActive
	activeCount, err := u.users.Count(ctx, &active)
	if err != nil {
		return nil, err
	}
	deleted := entity.StatusDeleted
	deletedCount, err := u.users.Count(ctx, &deleted)
	if err != nil {
		return nil, err
	}
	return &UserStats{Total: total, Active: activeCount, Deleted: deletedCount}, nil
}

func (u *accountUsecase) list(ctx context.Context, filter UserFilter, p pagination.Pageable) (*pagination.Page[entity.User], error) {
	users, total, err := u.users.List(ctx, filter, p)
	if err != nil {
		return nil, err
	}
	page := pagination.NewPage(users, p, total)
	return &page, nil
}
