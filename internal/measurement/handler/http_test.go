package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"healthtrack/backend/internal/measurement/measurementtest"
	"healthtrack/backend/internal/measurement/service"
	"healthtrack/backend/internal/platform/httpx"
	"healthtrack/backend/internal/profile/profiletest"
)

func newRouter(userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewCalcHandler().Register(r)
	authed := r.Group("")
	if userID != "" {
		authed.Use(func(c *gin.Context) {
			c.Request = c.Request.WithContext(httpx.WithUserID(c.Request.Context(), userID))
		})
	}
	svc := service.NewMeasurementService(measurementtest.NewRepo(), profiletest.NewRepo(), nil)
	NewMeasurementHandler(svc).Register(authed)
	return r
}

func serve(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestCalc_Full(t *testing.T) {
	r := newRouter("")
	w := serve(r, http.MethodPost, "/v1/calc",
		`{"height":175,"weight":75,"age":30,"gender":"male","activity_level":"moderate","fitness_goal":"maintain"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body)
	}
	var res struct {
		BMI struct {
			Value    float64 `json:"value"`
			Category string  `json:"category"`
		} `json:"bmi"`
		BodyFatPercent *float64 `json:"body_fat_percent"`
		Energy         *struct {
			TargetCalories int `json:"target_calories"`
			Macros         struct {
				ProteinG int `json:"protein_g"`
				CarbsG   int `json:"carbs_g"`
				FatG     int `json:"fat_g"`
			} `json:"macros"`
		} `json:"energy"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.BMI.Value != 24.5 || res.BMI.Category != "Normal" {
		t.Errorf("bmi = %+v", res.BMI)
	}
	if res.BodyFatPercent == nil || res.Energy == nil {
		t.Fatalf("gated stages missing: %s", w.Body)
	}
	if res.Energy.TargetCalories != 2633 || res.Energy.Macros.ProteinG != 165 || res.Energy.Macros.CarbsG != 263 || res.Energy.Macros.FatG != 102 {
		t.Errorf("energy = %+v", res.Energy)
	}
}

func TestCalc_AbsentStagesAreNull(t *testing.T) {
	w := serve(newRouter(""), http.MethodPost, "/v1/calc", `{"height":170,"weight":70}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var res map[string]json.RawMessage
	_ = json.Unmarshal(w.Body.Bytes(), &res)
	if string(res["energy"]) != "null" || string(res["body_fat_percent"]) != "null" {
		t.Errorf("energy=%s body_fat=%s, want null", res["energy"], res["body_fat_percent"])
	}
	if _, ok := res["skipped"]; !ok {
		t.Error("skipped stages should be reported")
	}
}

func TestCalc_Invalid(t *testing.T) {
	r := newRouter("")
	for _, body := range []string{`{"height":301,"weight":70}`, `{"height":170,"weight":70,"gender":"x"}`, `{`} {
		if w := serve(r, http.MethodPost, "/v1/calc", body); w.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", body, w.Code)
		}
	}
}

func TestMeasurements_Flow(t *testing.T) {
	r := newRouter("u1")

	w := serve(r, http.MethodPost, "/v1/measurements", `{"height":170,"weight":70,"date":"2024-01-02","notes":"morning"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", w.Code, w.Body)
	}
	var created struct {
		Measurement struct {
			ID   string  `json:"id"`
			Date string  `json:"date"`
			BMI  float64 `json:"bmi"`
		} `json:"measurement"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.Measurement.Date != "2024-01-02" || created.Measurement.BMI != 24.2 {
		t.Errorf("created = %+v", created.Measurement)
	}

	if w := serve(r, http.MethodGet, "/v1/measurements?from=2024-01-01&limit=10", ""); w.Code != http.StatusOK || !strings.Contains(w.Body.String(), created.Measurement.ID) {
		t.Errorf("list status = %d, body %s", w.Code, w.Body)
	}
	if w := serve(r, http.MethodGet, "/v1/measurements?from=yesterday", ""); w.Code != http.StatusBadRequest {
		t.Errorf("bad filter status = %d, want 400", w.Code)
	}
	if w := serve(r, http.MethodGet, "/v1/measurements/latest", ""); w.Code != http.StatusOK {
		t.Errorf("latest status = %d", w.Code)
	}

	w = serve(r, http.MethodGet, "/v1/measurements/export", "")
	if w.Code != http.StatusOK || !strings.HasPrefix(w.Body.String(), "Date,Height (cm)") {
		t.Errorf("csv export status = %d, body %q", w.Code, w.Body)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("Content-Type = %q", ct)
	}
	if w := serve(r, http.MethodGet, "/v1/measurements/export?format=xlsx", ""); w.Code != http.StatusOK || w.Body.Len() == 0 {
		t.Errorf("xlsx export status = %d", w.Code)
	}
	if w := serve(r, http.MethodGet, "/v1/measurements/export?format=pdf", ""); w.Code != http.StatusBadRequest {
		t.Errorf("pdf export status = %d, want 400", w.Code)
	}

	if w := serve(r, http.MethodDelete, "/v1/measurements/"+created.Measurement.ID, ""); w.Code != http.StatusNoContent {
		t.Errorf("delete status = %d", w.Code)
	}
	if w := serve(r, http.MethodDelete, "/v1/measurements/"+created.Measurement.ID, ""); w.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", w.Code)
	}
	if w := serve(r, http.MethodGet, "/v1/measurements/latest", ""); w.Code != http.StatusNotFound {
		t.Errorf("latest after delete = %d, want 404", w.Code)
	}
}

func TestMeasurements_RequireAuth(t *testing.T) {
	if w := serve(newRouter(""), http.MethodGet, "/v1/measurements", ""); w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}
