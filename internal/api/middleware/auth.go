// Package middleware provides HTTP middleware for the API.
package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gin-gonic/gin"

	domainerrors "github.com/unifiedui/school-service/internal/domain/errors"
)

// AuthMiddleware guards admin routes with a static service key.
type AuthMiddleware struct {
	apiKey []byte
}

// NewAuthMiddleware creates a new AuthMiddleware for the given key.
func NewAuthMiddleware(apiKey string) *AuthMiddleware {
	return &AuthMiddleware{
		apiKey: []byte(apiKey),
	}
}

// Enabled reports whether a key is configured.
func (m *AuthMiddleware) Enabled() bool {
	return len(m.apiKey) > 0
}

// Authenticate returns a gin middleware that requires "Authorization: Bearer <key>".
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			HandleError(c, domainerrors.NewUnauthorizedError("missing authorization header"))
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			HandleError(c, domainerrors.NewUnauthorizedError("invalid authorization header format"))
			return
		}

		token := []byte(strings.TrimSpace(parts[1]))
		if !m.Enabled() || subtle.ConstantTimeCompare(token, m.apiKey) != 1 {
			HandleError(c, domainerrors.NewUnauthorizedError("invalid service key"))
			return
		}

		c.Next()
	}
}
