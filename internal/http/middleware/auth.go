// README: Firebase bearer-token auth middleware and caller helpers.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vikrant8989/Drop-Go/internal/infra"
)

const (
	ctxKeyUID   = "auth_uid"
	ctxKeyRole  = "auth_role"
	ctxKeyEmail = "auth_email"
)

// Auth verifies the Authorization bearer token and stores the caller's
// identity in the request context. Requests without a valid token get 401.
func Auth(verifier infra.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		raw := strings.TrimPrefix(header, "Bearer ")

		token, err := verifier.VerifyIDToken(c.Request.Context(), raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(ctxKeyUID, token.UID)
		if role := token.Role(); role != "" {
			c.Set(ctxKeyRole, role)
		}
		if email := token.Email(); email != "" {
			c.Set(ctxKeyEmail, email)
		}
		c.Next()
	}
}

// CallerUID returns the authenticated caller's UID, or "" if unauthenticated.
func CallerUID(c *gin.Context) string {
	return c.GetString(ctxKeyUID)
}

// CallerRole returns the caller's role claim, or "" when absent.
func CallerRole(c *gin.Context) string {
	return c.GetString(ctxKeyRole)
}

// CallerEmail returns the caller's email claim, or "" when absent.
func CallerEmail(c *gin.Context) string {
	return c.GetString(ctxKeyEmail)
}

// IsAdmin reports whether the caller carries the admin role. Role "admin"
// is the platform's only privileged role.
func IsAdmin(c *gin.Context) bool {
	return CallerRole(c) == "admin"
}
