package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"healthtrack/backend/internal/healthgoal/service"
	"healthtrack/backend/internal/platform/httpx"
)

// HealthGoalHandler serves /v1/health-goals.
type HealthGoalHandler struct {
	svc *service.HealthGoalService
}

func NewHealthGoalHandler(svc *service.HealthGoalService) *HealthGoalHandler {
	return &HealthGoalHandler{svc: svc}
}

// Register mounts the health goal routes on r, which must run the auth middleware.
func (h *HealthGoalHandler) Register(r gin.IRoutes) {
	r.GET("/v1/health-goals", h.List)
	r.POST("/v1/health-goals", h.Create)
	r.DELETE("/v1/health-goals/:id", h.Delete)
}

var goalErrors = []httpx.Mapping{
	{Err: service.ErrGoalNotFound, Status: http.StatusNotFound},
}

// List handles GET /v1/health-goals. ?all=true includes inactive goals.
func (h *HealthGoalHandler) List(c *gin.Context) {
	userID, ok := httpx.RequireUser(c)
	if !ok {
		return
	}
	ps, err := h.svc.List(c.Request.Context(), userID, c.Query("all") != "true")
	if err != nil {
		httpx.Error(c, err, goalErrors...)
		return
	}
	c.JSON(http.StatusOK, gin.H{"goals": ps})
}

func (h *HealthGoalHandler) Create(c *gin.Context) {
	userID, ok := httpx.RequireUser(c)
	if !ok {
		return
	}
	var in service.CreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		httpx.BadRequest(c, "invalid request body")
		return
	}
	g, err := h.svc.Create(c.Request.Context(), userID, in)
	if err != nil {
		httpx.Error(c, err, goalErrors...)
		return
	}
	c.JSON(http.StatusCreated, g)
}

func (h *HealthGoalHandler) Delete(c *gin.Context) {
	userID, ok := httpx.RequireUser(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		httpx.Error(c, err, goalErrors...)
		return
	}
	c.Status(http.StatusNoContent)
}
