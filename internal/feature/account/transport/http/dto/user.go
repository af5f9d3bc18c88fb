// Package dto converts account entities into the generated API payloads.
package dto

import (
	"time"

	"account_backend/internal/api"
	"account_backend/internal/feature/account/domain/entity"
	"account_backend/internal/feature/account/usecase"
	"account_backend/internal/shared/pagination"
)

// UserFromEntity converts a domain user to its response form. Secrets never leave the server.
func UserFromEntity(u *entity.User) api.UserResponse {
	return api.UserResponse{
		Id:                     int64(u.ID),
		Name:                   u.Name,
		Surname:                u.Surname,
		Username:               u.Username,
		Email:                  u.Email,
		Phone:                  u.Phone,
		Enabled:                u.Enabled,
		UserStatus:             string(u.UserStatus),
		UserRole:               string(u.UserRole),
		PasswordChangeAttempts: u.PasswordChangeAttempts,
		CreatedAt:              u.CreatedAt,
		UpdatedAt:              u.UpdatedAt,
	}
}

// UsersFromEntities converts a slice of users.
func UsersFromEntities(users []entity.User) []api.UserResponse {
	out := make([]api.UserResponse, len(users))
	for i := range users {
		out[i] = UserFromEntity(&users[i])
	}
	return out
}

// UserPage converts a page of users.
func UserPage(p *pagination.Page[entity.User]) api.UserPage {
	return api.UserPage{
		Content:       UsersFromEntities(p.Content),
		Page:          p.Page,
		Size:          p.Size,
		TotalElements: p.TotalElements,
		TotalPages:    p.TotalPages,
	}
}

// UserStats converts the user population summary.
func UserStats(s *usecase.UserStats) api.UserStatsResponse {
	return api.UserStatsResponse{Total: s.Total, Active: s.Active, Deleted: s.Deleted}
}

// Login converts a successful login. The token lifetime is reported in whole minutes.
func Login(res *usecase.LoginResult) api.LoginResponse {
	return api.LoginResponse{
		Token:            res.Token,
		ExpiresInMinutes: int64(res.ExpiresIn / time.Minute),
		User:             UserFromEntity(res.User),
	}
}
