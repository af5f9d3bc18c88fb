// Package router assembles the HTTP routes of the service.
package router

import (
	"github.com/gin-gonic/gin"

	accountentity "account_backend/internal/feature/account/domain/entity"
	accounthandler "account_backend/internal/feature/account/transport/handler"
	audithandler "account_backend/internal/feature/audit/transport/handler"
	jwtmw "account_backend/internal/platform/jwt"
)

// Handlers groups every handler the router mounts.
type Handlers struct {
	Auth   *accounthandler.AuthHandler
	Users  *accounthandler.UserHandler
	Events *audithandler.EventHandler
	Health gin.HandlerFunc
}

// NewRouter builds the gin engine. secret signs bearer tokens and sessions
// confirms that the session behind each token is still live.
func NewRouter(h Handlers, secret string, sessions jwtmw.SessionChecker) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	// Health check
	r.GET("/healthz", h.Health)
	r.HEAD("/healthz", h.Health)
	r.OPTIONS("/healthz", h.Health)

	api := r.Group("/api/v1")

	// No authentication required
	public := api.Group("/auth")
	{
		public.POST("/signup", h.Auth.Signup)
		public.POST("/login", h.Auth.Login)
		public.POST("/verify", h.Auth.Verify)
		public.POST("/resend", h.Auth.Resend)
	}

	// Any authenticated user
	authed := api.Group("/")
	authed.Use(jwtmw.AuthRequired(secret, sessions))
	{
		authed.POST("/auth/logout", h.Auth.Logout)
		authed.GET("/users/my-profile", h.Users.MyProfile)
		authed.PATCH("/users/my-profile/password", h.Users.ChangeMyPassword)
		authed.DELETE("/users/my-profile", h.Users.DeleteMe)
		authed.GET("/events/my-events", h.Events.MyEvents)
		authed.GET("/events/my-events/latest", h.Events.MyLatest)
	}

	// Administrators only
	admin := authed.Group("/")
	admin.Use(jwtmw.RequireRole(accountentity.RoleAdmin))
	{
		admin.GET("/users", h.Users.List)
		admin.GET("/users/all", h.Users.All)
		admin.GET("/users/search", h.Users.Search)
		admin.GET("/users/status/:status", h.Users.ByStatus)
		admin.GET("/users/stats/count", h.Users.Stats)
		admin.GET("/users/:id", h.Users.Get)
		admin.PATCH("/users/:id/password", h.Users.ResetPassword)
		admin.DELETE("/users/:id", h.Users.Delete)

		admin.GET("/events", h.Events.List)
		admin.GET("/events/:id", h.Events.Get)
		admin.GET("/events/user/:userId", h.Events.ByUser)
		admin.GET("/events/type/:eventType", h.Events.ByType)
		admin.GET("/events/count/user/:userId", h.Events.CountByUser)
		admin.GET("/events/count/type/:eventType", h.Events.CountByType)
	}

	return r
}
