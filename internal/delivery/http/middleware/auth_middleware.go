package middleware

import (
	"context"
	"net/http"
	"strings"

	"dayhub-backend/config"
	"dayhub-backend/internal/delivery/http/response"
	"dayhub-backend/internal/domain"
	"dayhub-backend/pkg/auth"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware verifies the session token and attaches the principal
// to the request context. Tokens come from the Authorization header or
// the auth_token cookie.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		var tokenString string

		if authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		} else {
			cookie, err := c.Cookie("auth_token")
			if err == nil && cookie != "" {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "Authorization header or auth_token cookie required", nil)
			c.Abort()
			return
		}

		claims, err := auth.ParseSession(cfg.SessionSecret, tokenString)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "Invalid or expired session", nil)
			c.Abort()
			return
		}

		// Usecases read the principal from the request context, so the
		// values go there rather than only onto the gin context.
		ctx := context.WithValue(c.Request.Context(), domain.KeySessionRole, claims.Role)
		ctx = context.WithValue(ctx, domain.KeySessionEmail, claims.Email)
		if claims.Role == auth.RoleInterpreter {
			ctx = context.WithValue(ctx, domain.KeyInterpreterID, claims.InterpreterID)
		}
		c.Request = c.Request.WithContext(ctx)

		c.Set(string(domain.KeySessionRole), claims.Role)
		c.Set(string(domain.KeySessionEmail), claims.Email)

		c.Next()
	}
}

// RequireRole rejects requests whose session role does not match.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(string(domain.KeySessionRole)) != role {
			response.Error(c, http.StatusForbidden, "Insufficient permissions", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
