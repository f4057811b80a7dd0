package domain

import (
	"encoding/json"
	"time"

	"healthtrack/backend/internal/healthcalc"
)

// DateLayout is the wire and storage format of measurement dates.
const DateLayout = "2006-01-02"

// FormulaStandard is the only BMI formula recorded today.
const FormulaStandard = "standard"

// Measurement is one dated BMI record. Values are stored at full precision.
type Measurement struct {
	ID             string              `json:"id"`
	UserID         string              `json:"user_id"`
	Date           time.Time           `json:"-"`
	HeightCm       float64             `json:"height_cm"`
	WeightKg       float64             `json:"weight_kg"`
	BMI            float64             `json:"bmi"`
	Category       healthcalc.Category `json:"category"`
	BodyFatPercent *float64            `json:"body_fat_percent"`
	Formula        string              `json:"formula"`
	Notes          string              `json:"notes,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

// DateString returns Date formatted with DateLayout.
func (m *Measurement) DateString() string {
	return m.Date.Format(DateLayout)
}

// MarshalJSON writes Date as a plain date.
func (m Measurement) MarshalJSON() ([]byte, error) {
	type alias Measurement
	return json.Marshal(struct {
		alias
		Date string `json:"date"`
	}{alias(m), m.DateString()})
}

// Rounded returns a copy with height, weight, BMI and body fat rounded to one decimal for display.
func (m Measurement) Rounded() Measurement {
	m.HeightCm = healthcalc.Round1(m.HeightCm)
	m.WeightKg = healthcalc.Round1(m.WeightKg)
	m.BMI = healthcalc.Round1(m.BMI)
	if m.BodyFatPercent != nil {
		v := healthcalc.Round1(*m.BodyFatPercent)
		m.BodyFatPercent = &v
	}
	return m
}

// Filter bounds a history query. Zero times are open ends; both ends are inclusive dates.
type Filter struct {
	From time.Time
	To   time.Time
	// Limit caps the number of rows when positive.
	Limit int
}
