package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"healthtrack/backend/internal/goals/domain"
	"healthtrack/backend/internal/goals/service"
	"healthtrack/backend/internal/platform/httpx"
)

// GoalsHandler serves /v1/goals and /v1/onboarding.
type GoalsHandler struct {
	svc *service.GoalsService
}

func NewGoalsHandler(svc *service.GoalsService) *GoalsHandler {
	return &GoalsHandler{svc: svc}
}

// Register mounts the goals routes on r, which must run the auth middleware.
func (h *GoalsHandler) Register(r gin.IRoutes) {
	r.GET("/v1/goals", h.Get)
	r.PUT("/v1/goals", h.Update)
	r.POST("/v1/onboarding", h.CompleteOnboarding)
}

var goalsErrors = []httpx.Mapping{
	{Err: service.ErrGoalsNotFound, Status: http.StatusNotFound},
}

func (h *GoalsHandler) Get(c *gin.Context) {
	userID, ok := httpx.RequireUser(c)
	if !ok {
		return
	}
	g, err := h.svc.Get(c.Request.Context(), userID)
	if err != nil {
		httpx.Error(c, err, goalsErrors...)
		return
	}
	c.JSON(http.StatusOK, g)
}

func (h *GoalsHandler) Update(c *gin.Context) {
	userID, ok := httpx.RequireUser(c)
	if !ok {
		return
	}
	var in domain.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		httpx.BadRequest(c, "invalid request body")
		return
	}
	g, err := h.svc.Update(c.Request.Context(), userID, in)
	if err != nil {
		httpx.Error(c, err, goalsErrors...)
		return
	}
	c.JSON(http.StatusOK, g)
}

func (h *GoalsHandler) CompleteOnboarding(c *gin.Context) {
	userID, ok := httpx.RequireUser(c)
	if !ok {
		return
	}
	var in service.OnboardingInput
	if err := c.ShouldBindJSON(&in); err != nil {
		httpx.BadRequest(c, "invalid request body")
		return
	}
	g, err := h.svc.CompleteOnboarding(c.Request.Context(), userID, in)
	if err != nil {
		httpx.Error(c, err, goalsErrors...)
		return
	}
	c.JSON(http.StatusOK, g)
}
