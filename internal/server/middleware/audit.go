package middleware

import (
	"encoding/json"

	"github.com/gin-gonic/gin"

	"healthtrack/backend/internal/audit"
	"healthtrack/backend/internal/platform/httpx"
)

// ClientIPContext copies gin's client IP (X-Forwarded-For aware per the engine's trusted proxies)
// into the request context so services and the audit logger can read it.
func ClientIPContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if ip == "" {
			ip = "unknown"
		}
		c.Request = c.Request.WithContext(WithClientIP(c.Request.Context(), ip))
		c.Next()
	}
}

type auditMetadata struct {
	Status int    `json:"status"`
	Path   string `json:"path"`
}

// Audit records one audit entry per request after the handler has run. Routes in skipRoutes
// (gin route templates such as /healthz) and unmatched paths are not recorded. Writing is best-effort.
func Audit(logger audit.AuditLogger, skipRoutes map[string]bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		route := c.FullPath()
		if logger == nil || route == "" || skipRoutes[route] {
			return
		}
		userID, _ := httpx.GetUserID(c.Request.Context())
		ar := audit.ParseRoute(c.Request.Method, route)
		meta, _ := json.Marshal(auditMetadata{Status: c.Writer.Status(), Path: c.Request.URL.Path})
		logger.LogEvent(c.Request.Context(), userID, ar.Action, ar.Resource, string(meta))
	}
}
