package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"healthtrack/backend/internal/insights/service"
	"healthtrack/backend/internal/platform/httpx"
)

// InsightsHandler serves /v1/insights and /v1/benchmarks.
type InsightsHandler struct {
	svc *service.InsightsService
}

func NewInsightsHandler(svc *service.InsightsService) *InsightsHandler {
	return &InsightsHandler{svc: svc}
}

// Register mounts the insights routes on r, which must run the auth middleware.
func (h *InsightsHandler) Register(r gin.IRoutes) {
	r.GET("/v1/insights", h.Insights)
	r.GET("/v1/benchmarks", h.Benchmarks)
}

// Insights handles GET /v1/insights?timeframe=7d|30d|90d|1y.
func (h *InsightsHandler) Insights(c *gin.Context) {
	userID, ok := httpx.RequireUser(c)
	if !ok {
		return
	}
	out, err := h.svc.Insights(c.Request.Context(), userID, c.Query("timeframe"))
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *InsightsHandler) Benchmarks(c *gin.Context) {
	userID, ok := httpx.RequireUser(c)
	if !ok {
		return
	}
	out, err := h.svc.Benchmarks(c.Request.Context(), userID)
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
