package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"healthtrack/backend/internal/healthcalc"
	"healthtrack/backend/internal/measurement/domain"
	"healthtrack/backend/internal/measurement/export"
	"healthtrack/backend/internal/measurement/service"
	"healthtrack/backend/internal/platform/httpx"
	"healthtrack/backend/internal/platform/validate"
)

// MaxListLimit caps the limit query parameter of the history endpoint.
const MaxListLimit = 1000

// MeasurementHandler serves the /v1/measurements routes.
type MeasurementHandler struct {
	svc *service.MeasurementService
}

func NewMeasurementHandler(svc *service.MeasurementService) *MeasurementHandler {
	return &MeasurementHandler{svc: svc}
}

// Register mounts the measurement routes on r, which must run the auth middleware.
func (h *MeasurementHandler) Register(r gin.IRoutes) {
	r.POST("/v1/measurements", h.Create)
	r.GET("/v1/measurements", h.List)
	r.GET("/v1/measurements/latest", h.Latest)
	r.GET("/v1/measurements/export", h.Export)
	r.DELETE("/v1/measurements/:id", h.Delete)
}

var measurementErrors = []httpx.Mapping{
	{Err: service.ErrMeasurementNotFound, Status: http.StatusNotFound},
}

type recordResponse struct {
	Measurement    domain.Measurement            `json:"measurement"`
	BMI            bmiView                       `json:"bmi"`
	BodyFatPercent *float64                      `json:"body_fat_percent"`
	Skipped        map[healthcalc.Stage][]string `json:"skipped,omitempty"`
}

func (h *MeasurementHandler) Create(c *gin.Context) {
	userID, ok := httpx.RequireUser(c)
	if !ok {
		return
	}
	var in service.RecordInput
	if err := c.ShouldBindJSON(&in); err != nil {
		httpx.BadRequest(c, "invalid request body")
		return
	}
	res, err := h.svc.Record(c.Request.Context(), userID, in)
	if err != nil {
		httpx.Error(c, err, measurementErrors...)
		return
	}
	m := res.Measurement.Rounded()
	c.JSON(http.StatusCreated, recordResponse{
		Measurement:    m,
		BMI:            toBMIView(res.BMI),
		BodyFatPercent: m.BodyFatPercent,
		Skipped:        res.Skipped,
	})
}

func (h *MeasurementHandler) List(c *gin.Context) {
	userID, ok := httpx.RequireUser(c)
	if !ok {
		return
	}
	f, err := parseFilter(c)
	if err != nil {
		httpx.Error(c, err)
		return
	}
	ms, err := h.svc.List(c.Request.Context(), userID, f)
	if err != nil {
		httpx.Error(c, err, measurementErrors...)
		return
	}
	out := make([]domain.Measurement, len(ms))
	for i, m := range ms {
		out[i] = m.Rounded()
	}
	c.JSON(http.StatusOK, gin.H{"measurements": out})
}

func (h *MeasurementHandler) Latest(c *gin.Context) {
	userID, ok := httpx.RequireUser(c)
	if !ok {
		return
	}
	m, err := h.svc.Latest(c.Request.Context(), userID)
	if err != nil {
		httpx.Error(c, err, measurementErrors...)
		return
	}
	c.JSON(http.StatusOK, m.Rounded())
}

// Export streams the filtered history as CSV (default) or XLSX.
func (h *MeasurementHandler) Export(c *gin.Context) {
	userID, ok := httpx.RequireUser(c)
	if !ok {
		return
	}
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		httpx.BadRequest(c, err.Error())
		return
	}
	f, err := parseFilter(c)
	if err != nil {
		httpx.Error(c, err)
		return
	}
	ms, err := h.svc.List(c.Request.Context(), userID, f)
	if err != nil {
		httpx.Error(c, err, measurementErrors...)
		return
	}
	var buf bytes.Buffer
	if err := export.Write(&buf, format, ms); err != nil {
		httpx.Error(c, fmt.Errorf("export %s: %w", format, err))
		return
	}
	name := fmt.Sprintf("bmi-history-%s.%s", time.Now().UTC().Format(domain.DateLayout), format)
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}

func (h *MeasurementHandler) Delete(c *gin.Context) {
	userID, ok := httpx.RequireUser(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		httpx.Error(c, err, measurementErrors...)
		return
	}
	c.Status(http.StatusNoContent)
}

func parseFilter(c *gin.Context) (domain.Filter, error) {
	var f domain.Filter
	var errs validate.Errors
	if s := c.Query("from"); s != "" {
		d, err := time.Parse(domain.DateLayout, s)
		if err != nil {
			errs = append(errs, validate.FieldError{Field: "from", Message: "must be YYYY-MM-DD"})
		}
		f.From = d
	}
	if s := c.Query("to"); s != "" {
		d, err := time.Parse(domain.DateLayout, s)
		if err != nil {
			errs = append(errs, validate.FieldError{Field: "to", Message: "must be YYYY-MM-DD"})
		}
		f.To = d
	}
	if s := c.Query("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > MaxListLimit {
			errs = append(errs, validate.FieldError{Field: "limit", Message: fmt.Sprintf("must be between 1 and %d", MaxListLimit)})
		}
		f.Limit = n
	}
	if len(errs) > 0 {
		return f, errs
	}
	return f, nil
}
