// Package jwtmw issues bearer tokens and guards gin routes with them.
package jwtmw

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"account_backend/internal/feature/account/domain/entity"
)

// ContextIdentity is the gin context key holding the caller's entity.Identity.
const ContextIdentity = "identity"

// SessionChecker confirms that the session behind a token is still live.
type SessionChecker interface {
	CheckSession(ctx context.Context, id entity.Identity) error
}

var errMalformedClaims = errors.New("malformed claims")

// AuthRequired returns a Gin middleware function that validates JWT tokens
// and restricts access to callers with a live session.
func AuthRequired(secret string, sessions SessionChecker) gin.HandlerFunc {
	key := []byte(secret)
	return func(c *gin.Context) {
		if len(key) == 0 {
			zap.L().Error("jwt secret is not configured")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "server misconfigured"})
			return
		}

		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		tokenStr := strings.TrimPrefix(auth, "Bearer ")

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			// Only HMAC is accepted.
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return key, nil
		}, jwt.WithExpirationRequired())
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		claims, _ := token.Claims.(jwt.MapClaims)
		id, err := identityFromClaims(claims)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		if sessions != nil {
			if err := sessions.CheckSession(c.Request.Context(), id); err != nil {
				zap.L().Debug("session rejected",
					zap.Uint("user_id", id.UserID),
					zap.String("session_id", id.SessionID),
					zap.Error(err))
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session expired or revoked"})
				return
			}
		}

		c.Set(ContextIdentity, id)
		c.Next()
	}
}

// RequireRole aborts with 403 unless the authenticated caller holds one of roles.
// It must run after AuthRequired.
func RequireRole(roles ...entity.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := IdentityFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}
		if !id.HasRole(roles...) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "access denied"})
			return
		}
		c.Next()
	}
}

// IdentityFrom returns the identity stored by AuthRequired.
func IdentityFrom(c *gin.Context) (entity.Identity, bool) {
	v, ok := c.Get(ContextIdentity)
	if !ok {
		return entity.Identity{}, false
	}
	id, ok := v.(entity.Identity)
	return id, ok
}

func identityFromClaims(claims jwt.MapClaims) (entity.Identity, error) {
	// JWT numbers are decoded as float64.
	sub, ok := claims[ClaimSubject].(float64)
	if !ok || sub <= 0 {
		return entity.Identity{}, errMalformedClaims
	}
	email, _ := claims[ClaimEmail].(string)
	role, _ := claims[ClaimRole].(string)
	sid, _ := claims[ClaimSessionID].(string)
	if !entity.UserRole(role).Valid() {
		return entity.Identity{}, errMalformedClaims
	}
	return entity.Identity{
		UserID:    uint(sub),
		Email:     email,
		Role:      entity.UserRole(role),
		SessionID: sid,
	}, nil
}
