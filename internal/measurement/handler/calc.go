package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"healthtrack/backend/internal/healthcalc"
	"healthtrack/backend/internal/platform/httpx"
)

// CalcHandler serves the stateless calculator. It needs no authentication and stores nothing.
type CalcHandler struct{}

func NewCalcHandler() *CalcHandler { return &CalcHandler{} }

// Register mounts POST /v1/calc on r.
func (h *CalcHandler) Register(r gin.IRoutes) {
	r.POST("/v1/calc", h.Calculate)
}

type calcRequest struct {
	Height        float64                  `json:"height"`
	Weight        float64                  `json:"weight"`
	UnitSystem    healthcalc.UnitSystem    `json:"unit_system"`
	Age           *int                     `json:"age"`
	Gender        healthcalc.Gender        `json:"gender"`
	ActivityLevel healthcalc.ActivityLevel `json:"activity_level"`
	FitnessGoal   healthcalc.FitnessGoal   `json:"fitness_goal"`
}

type calcResponse struct {
	HeightCm       float64                         `json:"height_cm"`
	WeightKg       float64                         `json:"weight_kg"`
	BMI            bmiView                         `json:"bmi"`
	BodyFatPercent healthcalc.Optional[float64]    `json:"body_fat_percent"`
	Energy         healthcalc.Optional[energyView] `json:"energy"`
	Skipped        map[healthcalc.Stage][]string   `json:"skipped,omitempty"`
}

// Calculate handles POST /v1/calc.
func (h *CalcHandler) Calculate(c *gin.Context) {
	var req calcRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BadRequest(c, "invalid request body")
		return
	}
	d, err := healthcalc.Derive(healthcalc.Input{
		Height:        req.Height,
		Weight:        req.Weight,
		Units:         req.UnitSystem,
		Age:           req.Age,
		Gender:        req.Gender,
		ActivityLevel: req.ActivityLevel,
		FitnessGoal:   req.FitnessGoal,
	})
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, calcResponse{
		HeightCm:       healthcalc.Round1(d.Metric.HeightCm),
		WeightKg:       healthcalc.Round1(d.Metric.WeightKg),
		BMI:            toBMIView(d.BMI),
		BodyFatPercent: toBodyFatView(d.Composition),
		Energy:         toEnergyView(d.Energy),
		Skipped:        d.Skipped,
	})
}
