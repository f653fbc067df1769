package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Keep this small interface so tests can fake it easily.
type SubjectExtractor interface {
	ExtractEmail(token string) (string, error)
}

type AuthMiddleware struct {
	tokens SubjectExtractor
}

func NewAuthMiddleware(tokens SubjectExtractor) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			abortUnauthorized(c, "Missing or invalid Authorization header")
			return
		}

		raw := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer"))
		if raw == "" {
			abortUnauthorized(c, "Missing or invalid access token")
			return
		}

		email, err := m.tokens.ExtractEmail(raw)
		if err != nil {
			abortUnauthorized(c, "Invalid or expired access token")
			return
		}

		// stash the caller's identity on the context
		c.Set(ctxEmailKey, email)

		c.Next()
	}
}

func EmailFromContext(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxEmailKey)
	if !ok {
		return "", false
	}
	email, ok := v.(string)
	return email, ok && email != ""
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": gin.H{
			"code":    "unauthorized",
			"message": message,
		},
	})
}
