package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"healthtrack/backend/internal/platform/httpx"
	"healthtrack/backend/internal/security"
)

const bearerPrefix = "bearer "

// Auth validates the Bearer access token and stores the user ID in the request context.
// Requests without a valid token are rejected with 401.
func Auth(tokens *security.TokenProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearer(c.GetHeader("Authorization"))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid authorization"})
			return
		}
		userID, err := tokens.ValidateAccess(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid authorization"})
			return
		}
		c.Request = c.Request.WithContext(httpx.WithUserID(c.Request.Context(), userID))
		c.Next()
	}
}

// extractBearer returns the token of an "Authorization: Bearer <token>" header, or "" if malformed.
func extractBearer(header string) string {
	v := strings.TrimSpace(header)
	if len(v) < len(bearerPrefix) || !strings.EqualFold(v[:len(bearerPrefix)], bearerPrefix) {
		return ""
	}
	return strings.TrimSpace(v[len(bearerPrefix):])
}
