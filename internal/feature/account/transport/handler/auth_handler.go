// Package handler provides HTTP handlers for the account feature.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"account_backend/internal/api"
	"account_backend/internal/feature/account/domain"
	"account_backend/internal/feature/account/domain/entity"
	"account_backend/internal/feature/account/transport/http/dto"
	"account_backend/internal/feature/account/usecase"
	"account_backend/internal/platform/http/validation"
	jwtmw "account_backend/internal/platform/jwt"
)

// AuthUsecase defines the public authentication operations.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type AuthUsecase interface {
	Register(ctx context.Context, in usecase.RegisterInput) (*entity.User, error)
	Verify(ctx context.Context, email, code string) error
	ResendVerification(ctx context.Context, email string) error
	Login(ctx context.Context, in usecase.LoginInput) (*usecase.LoginResult, error)
	Logout(ctx context.Context, id entity.Identity) error
}

// AuthHandler handles signup, verification and login requests.
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Signup registers a new, unverified user and returns it with 201.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req api.SignupJSONRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "signup", err)
		return
	}
	phone, err := validation.NormalizePhone(req.Phone)
	if err != nil {
		badRequest(c, "signup", err)
		return
	}

	user, err := h.auth.Register(c.Request.Context(), usecase.RegisterInput{
		Name:     strings.TrimSpace(req.Name),
		Surname:  strings.TrimSpace(req.Surname),
		Username: strings.TrimSpace(req.Username),
		Email:    normalizeEmail(string(req.Email)),
		Phone:    phone,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, "signup", err)
		return
	}
	zap.L().Info("user signup successful", zap.Uint("user_id", user.ID), zap.String("remote_addr", c.ClientIP()))
	c.JSON(http.StatusCreated, dto.UserFromEntity(user))
}

// Verify confirms an email address with its code.
func (h *AuthHandler) Verify(c *gin.Context) {
	var req api.VerifyJSONRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "verify", err)
		return
	}
	if err := h.auth.Verify(c.Request.Context(), normalizeEmail(string(req.Email)), req.Code); err != nil {
		respondError(c, "verify", err)
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "account verified"})
}

// Resend issues a new verification code to ?email=.
func (h *AuthHandler) Resend(c *gin.Context) {
	var params api.ResendVerificationParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, "resend verification", err)
		return
	}
	if err := h.auth.ResendVerification(c.Request.Context(), normalizeEmail(string(params.Email))); err != nil {
		respondError(c, "resend verification", err)
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "verification code sent"})
}

// Login authenticates the user and returns a bearer token.
// Unknown emails and wrong passwords produce the same 401 response.
func (h *AuthHandler) Login(c *gin.Context) {
	var req api.LoginJSONRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "login", err)
		return
	}
	res, err := h.auth.Login(c.Request.Context(), usecase.LoginInput{
		Email:     normalizeEmail(string(req.Email)),
		Password:  req.Password,
		UserAgent: c.Request.UserAgent(),
		IPAddress: c.ClientIP(),
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			err = domain.ErrBadCredentials
		}
		zap.L().Warn("login failed", zap.Error(err), zap.String("remote_addr", c.ClientIP()))
		respondError(c, "login", err)
		return
	}
	zap.L().Info("user login successful", zap.Uint("user_id", res.User.ID), zap.String("remote_addr", c.ClientIP()))
	c.JSON(http.StatusOK, dto.Login(res))
}

// Logout revokes the session behind the caller's token.
func (h *AuthHandler) Logout(c *gin.Context) {
	id, ok := jwtmw.IdentityFrom(c)
	if !ok {
		respondError(c, "logout", domain.ErrUnauthenticated)
		return
	}
	if err := h.auth.Logout(c.Request.Context(), id); err != nil {
		respondError(c, "logout", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
