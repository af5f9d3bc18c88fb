// Package response writes the error bodies shared by all handlers.
package response

import (
	"github.com/gin-gonic/gin"

	"account_backend/internal/api"
)

// Error aborts the request with status and msg.
func Error(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, api.ErrorResponse{Error: msg})
}
