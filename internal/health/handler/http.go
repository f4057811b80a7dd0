package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Register mounts /healthz (liveness) and /readyz (readiness) on r.
func (c *Checker) Register(r gin.IRoutes) {
	r.GET("/healthz", c.Liveness)
	r.GET("/readyz", c.Readiness)
}

// Liveness always answers 200 while the process serves requests.
func (c *Checker) Liveness(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness answers 200 when dependencies are reachable and 503 otherwise.
func (c *Checker) Readiness(ctx *gin.Context) {
	if err := c.Ready(ctx.Request.Context()); err != nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_serving", "error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "serving"})
}
