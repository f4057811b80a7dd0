// Package httpx holds the gin response conventions shared by the HTTP handlers.
package httpx

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"healthtrack/backend/internal/healthcalc"
	"healthtrack/backend/internal/platform/validate"
)

type contextKey struct{ name string }

var userIDKey = contextKey{"user_id"}

// WithUserID returns ctx carrying the authenticated user ID.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// GetUserID returns the authenticated user ID from ctx and whether it is set.
func GetUserID(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(userIDKey).(string)
	return v, ok && v != ""
}

// RequireUser returns the caller's user ID or writes 401 and returns false.
func RequireUser(c *gin.Context) (string, bool) {
	userID, ok := GetUserID(c.Request.Context())
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return "", false
	}
	return userID, true
}

// Mapping binds a sentinel error to an HTTP status.
type Mapping struct {
	Err    error
	Status int
}

// Error writes err as {"error": "..."}. Validation errors become 400 with per-field details;
// errors matching a mapping get its status and message; anything else is logged and returned as 500.
func Error(c *gin.Context, err error, mappings ...Mapping) {
	var fieldErrs validate.Errors
	if errors.As(err, &fieldErrs) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": fieldErrs})
		return
	}
	var ve *healthcalc.ValidationError
	if errors.As(err, &ve) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":  ve.Error(),
			"fields": validate.Errors{{Field: ve.Field, Message: ve.Error()}},
		})
		return
	}
	for _, m := range mappings {
		if errors.Is(err, m.Err) {
			c.AbortWithStatusJSON(m.Status, gin.H{"error": m.Err.Error()})
			return
		}
	}
	log.Printf("http: %s %s: %v", c.Request.Method, c.FullPath(), err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

// BadRequest writes 400 for a malformed body or query.
func BadRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": msg})
}
