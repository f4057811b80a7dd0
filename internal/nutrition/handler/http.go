package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"healthtrack/backend/internal/nutrition/domain"
	"healthtrack/backend/internal/nutrition/service"
	"healthtrack/backend/internal/platform/httpx"
)

// NutritionHandler serves the /v1/nutrition routes.
type NutritionHandler struct {
	svc *service.NutritionService
}

func NewNutritionHandler(svc *service.NutritionService) *NutritionHandler {
	return &NutritionHandler{svc: svc}
}

// Register mounts the nutrition routes on r, which must run the auth middleware.
func (h *NutritionHandler) Register(r gin.IRoutes) {
	r.GET("/v1/nutrition/logs", h.List)
	r.POST("/v1/nutrition/logs", h.Create)
	r.DELETE("/v1/nutrition/logs/:id", h.Delete)
	r.GET("/v1/nutrition/summary", h.Summary)
	r.GET("/v1/nutrition/presets", h.ListPresets)
	r.POST("/v1/nutrition/presets", h.CreatePreset)
	r.POST("/v1/nutrition/presets/:id/apply", h.ApplyPreset)
	r.DELETE("/v1/nutrition/presets/:id", h.DeletePreset)
}

var nutritionErrors = []httpx.Mapping{
	{Err: service.ErrLogNotFound, Status: http.StatusNotFound},
	{Err: service.ErrPresetNotFound, Status: http.StatusNotFound},
}

func (h *NutritionHandler) List(c *gin.Context) {
	userID, ok := httpx.RequireUser(c)
	if !ok {
		return
	}
	logs, err := h.svc.List(c.Request.Context(), userID, c.Query("date"))
	if err != nil {
		httpx.Error(c, err, nutritionErrors...)
		return
	}
	c.JSON(http.StatusOK, gin.H{"logs": logs})
}

func (h *NutritionHandler) Create(c *gin.Context) {
	userID, ok := httpx.RequireUser(c)
	if !ok {
		return
	}
	var in domain.LogInput
	if err := c.ShouldBindJSON(&in); err != nil {
		httpx.BadRequest(c, "invalid request body")
		return
	}
	l, err := h.svc.Log(c.Request.Context(), userID, in)
	if err != nil {
		httpx.Error(c, err, nutritionErrors...)
		return
	}
	c.JSON(http.StatusCreated, l)
}

func (h *NutritionHandler) Delete(c *gin.Context) {
	userID, ok := httpx.RequireUser(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		httpx.Error(c, err, nutritionErrors...)
		return
	}
	c.Status(http.StatusNoContent)
}

// Summary handles GET /v1/nutrition/summary?date=YYYY-MM-DD. The date defaults to today.
func (h *NutritionHandler) Summary(c *gin.Context) {
	userID, ok := httpx.RequireUser(c)
	if !ok {
		return
	}
	p, err := h.svc.Summary(c.Request.Context(), userID, c.Query("date"))
	if err != nil {
		httpx.Error(c, err, nutritionErrors...)
		return
	}
	c.JSON(http.StatusOK, p)
}

// ListPresets handles GET /v1/nutrition/presets?meal_type=lunch. Without meal_type every preset is returned.
func (h *NutritionHandler) ListPresets(c *gin.Context) {
	userID, ok := httpx.RequireUser(c)
	if !ok {
		return
	}
	presets, err := h.svc.ListPresets(c.Request.Context(), userID, c.Query("meal_type"))
	if err != nil {
		httpx.Error(c, err, nutritionErrors...)
		return
	}
	c.JSON(http.StatusOK, gin.H{"presets": presets})
}

func (h *NutritionHandler) CreatePreset(c *gin.Context) {
	userID, ok := httpx.RequireUser(c)
	if !ok {
		return
	}
	var in domain.PresetInput
	if err := c.ShouldBindJSON(&in); err != nil {
		httpx.BadRequest(c, "invalid request body")
		return
	}
	p, err := h.svc.CreatePreset(c.Request.Context(), userID, in)
	if err != nil {
		httpx.Error(c, err, nutritionErrors...)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// ApplyPreset logs the preset's foods. The body is optional: {"date": "YYYY-MM-DD", "meal_type": "..."}.
func (h *NutritionHandler) ApplyPreset(c *gin.Context) {
	userID, ok := httpx.RequireUser(c)
	if !ok {
		return
	}
	var in domain.ApplyInput
	if err := c.ShouldBindJSON(&in); err != nil && !errors.Is(err, io.EOF) {
		httpx.BadRequest(c, "invalid request body")
		return
	}
	logs, err := h.svc.ApplyPreset(c.Request.Context(), userID, c.Param("id"), in)
	if err != nil {
		httpx.Error(c, err, nutritionErrors...)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"logs": logs})
}

func (h *NutritionHandler) DeletePreset(c *gin.Context) {
	userID, ok := httpx.RequireUser(c)
	if !ok {
		return
	}
	if err := h.svc.DeletePreset(c.Request.Context(), userID, c.Param("id")); err != nil {
		httpx.Error(c, err, nutritionErrors...)
		return
	}
	c.Status(http.StatusNoContent)
}
