package domain

import "healthtrack/backend/internal/healthcalc"

// Benchmark is the population BMI distribution for one age range and gender.
type Benchmark struct {
	ID              string            `json:"id"`
	AgeRange        string            `json:"age_range"`
	Gender          healthcalc.Gender `json:"gender"`
	BMIP25          float64           `json:"bmi_p25"`
	BMIP50          float64           `json:"bmi_p50"`
	BMIP75          float64           `json:"bmi_p75"`
	HealthyRangeMin float64           `json:"healthy_range_min"`
	HealthyRangeMax float64           `json:"healthy_range_max"`
}

// AgeRange buckets age the way benchmark rows are keyed. Ages under 18 have no bucket.
func AgeRange(age int) (string, bool) {
	switch {
	case age < 18:
		return "", false
	case age <= 24:
		return "18-24", true
	case age <= 34:
		return "25-34", true
	case age <= 44:
		return "35-44", true
	case age <= 54:
		return "45-54", true
	case age <= 64:
		return "55-64", true
	}
	return "65+", true
}

// Position places bmi within b's quartiles: the percentile ceiling and its label.
func Position(bmi float64, b Benchmark) (int, string) {
	switch {
	case bmi <= b.BMIP25:
		return 25, "bottom"
	case bmi <= b.BMIP50:
		return 50, "lower-middle"
	case bmi <= b.BMIP75:
		return 75, "upper-middle"
	}
	return 100, "top"
}

// Comparison is the user's latest BMI set against their benchmark.
type Comparison struct {
	AgeRange   string      `json:"age_range,omitempty"`
	Gender     string      `json:"gender,omitempty"`
	CurrentBMI *float64    `json:"current_bmi"`
	Benchmark  *Benchmark  `json:"benchmark"`
	Percentile *int        `json:"percentile"`
	Position   string      `json:"position,omitempty"`
	InHealthy  *bool       `json:"in_healthy_range"`
	Benchmarks []Benchmark `json:"benchmarks"`
}
