// Package domain holds the trend, pattern and benchmark types behind health insights.
package domain

import (
	"math"

	"healthtrack/backend/internal/healthcalc"
	measurementdomain "healthtrack/backend/internal/measurement/domain"
)

// Timeframe is the lookback window of an insights request.
type Timeframe string

const (
	Timeframe7d  Timeframe = "7d"
	Timeframe30d Timeframe = "30d"
	Timeframe90d Timeframe = "90d"
	Timeframe1y  Timeframe = "1y"
)

// DefaultTimeframe is used when the request names none.
const DefaultTimeframe = Timeframe30d

// Days returns the window length, or 0 for an unknown timeframe.
func (t Timeframe) Days() int {
	switch t {
	case Timeframe7d:
		return 7
	case Timeframe30d:
		return 30
	case Timeframe90d:
		return 90
	case Timeframe1y:
		return 365
	}
	return 0
}

// MinMeasurements is the history needed before trends and patterns are computed.
const MinMeasurements = 2

// trendWindow is how many measurements each side of a trend comparison averages.
const trendWindow = 7

// Trend is a change between the mean of the latest measurements and the mean of the ones before.
type Trend struct {
	Metric string `json:"metric"`
	// Change is percent for BMI and kilograms for weight.
	Change       float64 `json:"change"`
	Direction    string  `json:"direction"`
	Significance string  `json:"significance"`
}

// Pattern is a qualitative reading of the whole timeframe.
type Pattern struct {
	Type        string `json:"type"`
	Level       string `json:"level"`
	Description string `json:"description"`
}

// Facts are the computed values recommendations are derived from.
type Facts struct {
	MeasurementCount int
	Timeframe        Timeframe
	// BMIChange is the relative BMI change in percent, nil without two comparison windows.
	BMIChange *float64
	// WeightChange is the absolute weight change in kg, nil without two comparison windows.
	WeightChange *float64
	Consistency  string
	Stability    string
	LatestBMI    *float64
}

// Input renders f as the document handed to the recommendation policy. Absent values are
// omitted so rules that reference them stay undefined.
func (f Facts) Input() map[string]any {
	in := map[string]any{
		"measurement_count": f.MeasurementCount,
		"timeframe":         string(f.Timeframe),
	}
	if f.BMIChange != nil {
		in["bmi_change"] = *f.BMIChange
	}
	if f.WeightChange != nil {
		in["weight_change"] = *f.WeightChange
	}
	if f.Consistency != "" {
		in["consistency"] = f.Consistency
	}
	if f.Stability != "" {
		in["stability"] = f.Stability
	}
	if f.LatestBMI != nil {
		in["latest_bmi"] = *f.LatestBMI
	}
	return in
}

// Insights is the response of an insights request.
type Insights struct {
	Timeframe        Timeframe `json:"timeframe"`
	MeasurementCount int       `json:"measurement_count"`
	Trends           []Trend   `json:"trends"`
	Patterns         []Pattern `json:"patterns"`
	Recommendations  []string  `json:"recommendations"`
}

// Analyze computes trends, patterns and facts from measurements ordered oldest first.
func Analyze(ms []*measurementdomain.Measurement, tf Timeframe) (Insights, Facts) {
	out := Insights{Timeframe: tf, MeasurementCount: len(ms), Trends: []Trend{}, Patterns: []Pattern{}}
	facts := Facts{MeasurementCount: len(ms), Timeframe: tf}
	if len(ms) == 0 {
		return out, facts
	}
	latest := ms[len(ms)-1].BMI
	facts.LatestBMI = &latest
	if len(ms) < MinMeasurements {
		return out, facts
	}

	recent := ms[max(0, len(ms)-trendWindow):]
	older := ms[max(0, len(ms)-2*trendWindow) : len(ms)-len(recent)]
	if len(older) > 0 {
		bmiRecent, bmiOlder := mean(recent, bmiOf), mean(older, bmiOf)
		if bmiOlder > 0 {
			change := (bmiRecent - bmiOlder) / bmiOlder * 100
			facts.BMIChange = &change
			if t, ok := trend("BMI", change); ok {
				out.Trends = append(out.Trends, t)
			}
		}
		change := mean(recent, weightOf) - mean(older, weightOf)
		facts.WeightChange = &change
		if t, ok := trend("Weight", change); ok {
			out.Trends = append(out.Trends, t)
		}
	}

	facts.Consistency = consistency(float64(len(ms)) / float64(tf.Days()))
	out.Patterns = append(out.Patterns, Pattern{Type: "consistency", Level: facts.Consistency, Description: consistencyText[facts.Consistency]})

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, m := range ms {
		lo, hi = math.Min(lo, m.BMI), math.Max(hi, m.BMI)
	}
	facts.Stability = stability(hi - lo)
	out.Patterns = append(out.Patterns, Pattern{Type: "stability", Level: facts.Stability, Description: stabilityText[facts.Stability]})
	return out, facts
}

func trend(metric string, change float64) (Trend, bool) {
	if math.Abs(change) <= 0.5 {
		return Trend{}, false
	}
	t := Trend{Metric: metric, Change: healthcalc.Round1(change), Direction: "decreasing", Significance: "moderate"}
	if change > 0 {
		t.Direction = "increasing"
	}
	if math.Abs(change) > 2 {
		t.Significance = "high"
	}
	return t, true
}

func consistency(frequency float64) string {
	switch {
	case frequency > 0.8:
		return "excellent"
	case frequency > 0.5:
		return "good"
	}
	return "low"
}

func stability(spread float64) string {
	switch {
	case spread < 1:
		return "high"
	case spread < 2:
		return "moderate"
	}
	return "low"
}

var consistencyText = map[string]string{
	"excellent": "You're tracking consistently. This helps identify patterns.",
	"good":      "Good tracking frequency; more consistency gives better insights.",
	"low":       "Inconsistent tracking may limit insight accuracy.",
}

var stabilityText = map[string]string{
	"high":     "Your BMI has been very stable over this period.",
	"moderate": "Your BMI shows moderate variation, which is normal.",
	"low":      "Your BMI shows significant variation over this period.",
}

func bmiOf(m *measurementdomain.Measurement) float64    { return m.BMI }
func weightOf(m *measurementdomain.Measurement) float64 { return m.WeightKg }

func mean(ms []*measurementdomain.Measurement, f func(*measurementdomain.Measurement) float64) float64 {
	var sum float64
	for _, m := range ms {
		sum += f(m)
	}
	return sum / float64(len(ms))
}
