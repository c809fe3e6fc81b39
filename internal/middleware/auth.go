package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-scheduler/internal/auth"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/domain/account"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/httperr"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/models"
)

const ContextSession = "session"

func AuthMiddleware(tokens *auth.Tokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Unauthorized(c, "missing_authorization_header", "Authentication credentials were not provided.")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Unauthorized(c, "invalid_authorization_header", "Expected a Bearer token.")
			return
		}

		session, err := tokens.Parse(strings.TrimSpace(parts[1]))
		if err != nil {
			httperr.Unauthorized(c, "invalid_token", "Invalid or expired token.")
			return
		}

		c.Set(ContextSession, session)
		c.Next()
	}
}

// OptionalAuth attaches a session when a valid bearer token is present and
// lets anonymous requests through.
func OptionalAuth(tokens *auth.Tokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			if session, err := tokens.Parse(strings.TrimSpace(parts[1])); err == nil {
				c.Set(ContextSession, session)
			}
		}
		c.Next()
	}
}

// RequireRole rejects sessions whose role is not listed. Must run after
// AuthMiddleware.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := SessionFrom(c)
		for _, r := range roles {
			if s.Role == r {
				c.Next()
				return
			}
		}
		httperr.Write(c, httperr.StatusOf(httperr.KindForbidden), "forbidden", "You do not have permission to perform this action.")
	}
}

// SessionFrom returns the caller set by AuthMiddleware, or the zero
// Session on public routes.
func SessionFrom(c *gin.Context) account.Session {
	if v, ok := c.Get(ContextSession); ok {
		if s, ok := v.(account.Session); ok {
			return s
		}
	}
	return account.Session{}
}
