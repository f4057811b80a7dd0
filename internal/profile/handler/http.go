package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"healthtrack/backend/internal/healthcalc"
	"healthtrack/backend/internal/platform/httpx"
	"healthtrack/backend/internal/profile/domain"
	"healthtrack/backend/internal/profile/service"
)

// ProfileHandler serves GET and PUT /v1/profile.
type ProfileHandler struct {
	svc *service.ProfileService
}

func NewProfileHandler(svc *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{svc: svc}
}

// Register mounts the profile routes on r, which must run the auth middleware.
func (h *ProfileHandler) Register(r gin.IRoutes) {
	r.GET("/v1/profile", h.Get)
	r.PUT("/v1/profile", h.Update)
}

type profileResponse struct {
	*domain.Profile
	// Height and Weight are in the profile's unit system, rounded for display.
	Height *float64 `json:"height"`
	Weight *float64 `json:"weight"`
}

var profileErrors = []httpx.Mapping{
	{Err: service.ErrProfileNotFound, Status: http.StatusNotFound},
}

func (h *ProfileHandler) Get(c *gin.Context) {
	userID, ok := httpx.RequireUser(c)
	if !ok {
		return
	}
	p, err := h.svc.Get(c.Request.Context(), userID)
	if err != nil {
		httpx.Error(c, err, profileErrors...)
		return
	}
	c.JSON(http.StatusOK, toResponse(p))
}

func (h *ProfileHandler) Update(c *gin.Context) {
	userID, ok := httpx.RequireUser(c)
	if !ok {
		return
	}
	var in domain.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		httpx.BadRequest(c, "invalid request body")
		return
	}
	p, err := h.svc.Update(c.Request.Context(), userID, in)
	if err != nil {
		httpx.Error(c, err, profileErrors...)
		return
	}
	c.JSON(http.StatusOK, toResponse(p))
}

func toResponse(p *domain.Profile) profileResponse {
	res := profileResponse{Profile: p}
	if p.HeightCm != nil {
		v := *p.HeightCm
		if p.UnitSystem == healthcalc.UnitsImperial {
			v /= healthcalc.CmPerInch
		}
		v = healthcalc.Round1(v)
		res.Height = &v
	}
	if p.WeightKg != nil {
		v := *p.WeightKg
		if p.UnitSystem == healthcalc.UnitsImperial {
			v /= healthcalc.KgPerLb
		}
		v = healthcalc.Round1(v)
		res.Weight = &v
	}
	return res
}
