package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"account_backend/internal/feature/account/domain"
	"account_backend/internal/platform/http/response"
)

// statusFor maps a domain error to its HTTP status. Unknown errors map to 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrBadCredentials),
		errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrNotVerified),
		errors.Is(err, domain.ErrUserDeleted),
		errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrAlreadyVerified),
		errors.Is(err, domain.ErrVerificationExpired),
		errors.Is(err, domain.ErrInvalidCode),
		errors.Is(err, domain.ErrAlreadyDeleted),
		errors.Is(err, domain.ErrAttemptsExhausted),
		errors.Is(err, domain.ErrWeakPassword),
		errors.Is(err, domain.ErrPasswordTooLong),
		errors.Is(err, domain.ErrPasswordUnchanged):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err with its mapped status. Internal errors are logged
// and replaced with a generic message.
func respondError(c *gin.Context, op string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		zap.L().Error(op+" failed", zap.Error(err), zap.String("remote_addr", c.ClientIP()))
		response.Error(c, status, "internal server error")
		return
	}
	zap.L().Debug(op+" rejected", zap.Error(err), zap.String("remote_addr", c.ClientIP()))
	response.Error(c, status, err.Error())
}

// badRequest rejects a malformed request.
func badRequest(c *gin.Context, op string, err error) {
	zap.L().Warn(op+" validation failed", zap.Error(err), zap.String("remote_addr", c.ClientIP()))
	response.Error(c, http.StatusBadRequest, err.Error())
}
