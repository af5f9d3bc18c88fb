package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"account_backend/internal/api"
	"account_backend/internal/feature/account/domain"
	"account_backend/internal/feature/account/domain/entity"
	"account_backend/internal/feature/account/transport/http/dto"
	"account_backend/internal/feature/account/usecase"
	"account_backend/internal/platform/http/params"
	"account_backend/internal/platform/http/response"
	jwtmw "account_backend/internal/platform/jwt"
	"account_backend/internal/shared/pagination"
)

// UserUsecase defines the self-service and admin user operations.
type UserUsecase interface {
	CurrentUser(ctx context.Context, id entity.Identity) (*entity.User, error)
	ChangePassword(ctx context.Context, userID uint, current, next string) error
	DeleteSelf(ctx context.Context, id entity.Identity) error

	GetUser(ctx context.Context, userID uint) (*entity.User, error)
	ListUsers(ctx context.Context, filter usecase.UserFilter, p pagination.Pageable) (*pagination.Page[entity.User], error)
	SearchUsers(ctx context.Context, query string, p pagination.Pageable) (*pagination.Page[entity.User], error)
	UsersByStatus(ctx context.Context, status entity.UserStatus, p pagination.Pageable) (*pagination.Page[entity.User], error)
	AllUsers(ctx context.Context) ([]entity.User, error)
	Stats(ctx context.Context) (*usecase.UserStats, error)
	ResetPassword(ctx context.Context, userID uint, next string) error
	DeleteUser(ctx context.Context, userID uint) error
}

// defaultUserSort orders user listings by ID.
var defaultUserSort = pagination.Sort{Field: "id"}

// UserHandler serves /users.
type UserHandler struct {
	users UserUsecase
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users UserUsecase) *UserHandler {
	return &UserHandler{users: users}
}

func identity(c *gin.Context) (entity.Identity, bool) {
	id, ok := jwtmw.IdentityFrom(c)
	if !ok {
		respondError(c, "identity", domain.ErrUnauthenticated)
	}
	return id, ok
}

// MyProfile returns the caller's profile.
func (h *UserHandler) MyProfile(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	user, err := h.users.CurrentUser(c.Request.Context(), id)
	if err != nil {
		respondError(c, "get profile", err)
		return
	}
	c.JSON(http.StatusOK, dto.UserFromEntity(user))
}

// ChangeMyPassword changes the caller's password.
func (h *UserHandler) ChangeMyPassword(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	var req api.ChangeMyPasswordJSONRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "change password", err)
		return
	}
	if err := h.users.ChangePassword(c.Request.Context(), id.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		respondError(c, "change password", err)
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "password changed"})
}

// DeleteMe soft deletes the caller's account.
func (h *UserHandler) DeleteMe(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	if err := h.users.DeleteSelf(c.Request.Context(), id); err != nil {
		respondError(c, "delete account", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// List returns one page of users, optionally filtered by ?status= and ?search=.
func (h *UserHandler) List(c *gin.Context) {
	var q api.ListUsersParams
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, "list users", err)
		return
	}
	p, err := params.Pageable(c, defaultUserSort)
	if err != nil {
		badRequest(c, "list users", err)
		return
	}
	var filter usecase.UserFilter
	if q.Search != nil {
		filter.Search = strings.TrimSpace(*q.Search)
	}
	if q.Status != nil && *q.Status != "" {
		status, ok := parseStatus(*q.Status)
		if !ok {
			response.Error(c, http.StatusBadRequest, "invalid status")
			return
		}
		filter.Status = &status
	}
	page, err := h.users.ListUsers(c.Request.Context(), filter, p)
	if err != nil {
		respondError(c, "list users", err)
		return
	}
	c.JSON(http.StatusOK, dto.UserPage(page))
}

// All returns every user without paging.
func (h *UserHandler) All(c *gin.Context) {
	users, err := h.users.AllUsers(c.Request.Context())
	if err != nil {
		respondError(c, "list all users", err)
		return
	}
	c.JSON(http.StatusOK, dto.UsersFromEntities(users))
}

// Search matches ?query= against usernames and emails.
func (h *UserHandler) Search(c *gin.Context) {
	var q api.SearchUsersParams
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, "search users", err)
		return
	}
	query := strings.TrimSpace(q.Query)
	if query == "" {
		response.Error(c, http.StatusBadRequest, "query is required")
		return
	}
	p, err := params.Pageable(c, pagination.Sort{})
	if err != nil {
		badRequest(c, "search users", err)
		return
	}
	page, err := h.users.SearchUsers(c.Request.Context(), query, p)
	if err != nil {
		respondError(c, "search users", err)
		return
	}
	c.JSON(http.StatusOK, dto.UserPage(page))
}

// ByStatus lists users in the :status path parameter.
func (h *UserHandler) ByStatus(c *gin.Context) {
	status, ok := parseStatus(c.Param("status"))
	if !ok {
		response.Error(c, http.StatusBadRequest, "invalid status")
		return
	}
	p, err := params.Pageable(c, pagination.Sort{})
	if err != nil {
		badRequest(c, "list users by status", err)
		return
	}
	page, err := h.users.UsersByStatus(c.Request.Context(), status, p)
	if err != nil {
		respondError(c, "list users by status", err)
		return
	}
	c.JSON(http.StatusOK, dto.UserPage(page))
}

// Stats returns user counts by status.
func (h *UserHandler) Stats(c *gin.Context) {
	stats, err := h.users.Stats(c.Request.Context())
	if err != nil {
		respondError(c, "user stats", err)
		return
	}
	c.JSON(http.StatusOK, dto.UserStats(stats))
}

// Get returns the user named by :id.
func (h *UserHandler) Get(c *gin.Context) {
	userID, err := params.PathUint(c, "id")
	if err != nil {
		badRequest(c, "get user", err)
		return
	}
	user, err := h.users.GetUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, "get user", err)
		return
	}
	c.JSON(http.StatusOK, dto.UserFromEntity(user))
}

// ResetPassword sets a new password for :id.
func (h *UserHandler) ResetPassword(c *gin.Context) {
	userID, err := params.PathUint(c, "id")
	if err != nil {
		badRequest(c, "reset password", err)
		return
	}
	var req api.ResetPasswordJSONRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "reset password", err)
		return
	}
	if err := h.users.ResetPassword(c.Request.Context(), userID, req.NewPassword); err != nil {
		respondError(c, "reset password", err)
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "password reset"})
}

// Delete soft deletes :id.
func (h *UserHandler) Delete(c *gin.Context) {
	userID, err := params.PathUint(c, "id")
	if err != nil {
		badRequest(c, "delete user", err)
		return
	}
	if err := h.users.DeleteUser(c.Request.Context(), userID); err != nil {
		respondError(c, "delete user", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func parseStatus(raw string) (entity.UserStatus, bool) {
	s := entity.UserStatus(strings.ToUpper(strings.TrimSpace(raw)))
	return s, s.Valid()
}
