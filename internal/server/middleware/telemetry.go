package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"healthtrack/backend/internal/platform/httpx"
	"healthtrack/backend/internal/server/metrics"
	"healthtrack/backend/internal/telemetry"
	telemetrydomain "healthtrack/backend/internal/telemetry/domain"
)

// httpRequestMetadata is the JSON shape stored in the metadata of http_request events.
type httpRequestMetadata struct {
	Method     string `json:"method"`
	Route      string `json:"route"`
	Status     int    `json:"status"`
	DurationMs int64  `json:"duration_ms"`
	ClientIP   string `json:"client_ip"`
}

// Telemetry records Prometheus request metrics and emits an http_request event after each request.
// Emitting is asynchronous and best-effort; emitter may be nil. Routes in skipRoutes are not emitted
// but are still counted.
func Telemetry(emitter telemetry.EventEmitter, skipRoutes map[string]bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		elapsed := time.Since(start)
		status := c.Writer.Status()
		metrics.ObserveHTTP(c.Request.Method, route, status, elapsed)
		if emitter == nil || skipRoutes[route] {
			return
		}
		userID, _ := httpx.GetUserID(c.Request.Context())
		telemetry.EmitAsync(emitter, c.Request.Context(), telemetry.NewEvent(telemetrydomain.EventHTTPRequest, userID, httpRequestMetadata{
			Method:     c.Request.Method,
			Route:      route,
			Status:     status,
			DurationMs: elapsed.Milliseconds(),
			ClientIP:   ClientIP(c.Request.Context()),
		}))
	}
}
