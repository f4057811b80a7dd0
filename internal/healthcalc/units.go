// Package healthcalc derives BMI, body-fat estimate, basal metabolic rate, daily energy expenditure
// and macronutrient targets from anthropometric inputs.
//
// Every function is pure: no I/O, no shared state. Inputs are normalized to metric at the boundary
// and full precision is kept between stages; rounding only happens for presentation and for the
// integer calorie and gram targets.
package healthcalc

import "math"

// UnitSystem is the unit system the caller measured height and weight in.
type UnitSystem string

const (
	UnitsMetric   UnitSystem = "metric"
	UnitsImperial UnitSystem = "imperial"
)

// Conversion factors applied at the boundary.
const (
	CmPerInch = 2.54
	KgPerLb   = 0.453592
)

// Accepted ranges, checked before conversion.
const (
	MinHeightCm = 50.0
	MaxHeightCm = 300.0
	MinWeightKg = 1.0
	MaxWeightKg = 1000.0

	MinHeightIn = 20.0
	MaxHeightIn = 120.0
	MinWeightLb = 2.0
	MaxWeightLb = 2200.0

	MinAge = 13
	MaxAge = 120
)

// Metric bounds of anything Normalize can return. The imperial ranges convert to slightly wider
// limits than the metric ones (304.8 cm, 0.907 kg).
var (
	maxNormalizedHeightCm = InchesToCm(MaxHeightIn)
	minNormalizedWeightKg = PoundsToKg(MinWeightLb)
)

// Gender as stored on a profile. Only male and female are supported by the body-fat and BMR formulas.
type Gender string

const (
	GenderMale           Gender = "male"
	GenderFemale         Gender = "female"
	GenderOther          Gender = "other"
	GenderPreferNotToSay Gender = "prefer_not_to_say"
)

// Valid reports whether g is a gender value a profile may hold. Empty is valid (not provided).
func (g Gender) Valid() bool {
	switch g {
	case "", GenderMale, GenderFemale, GenderOther, GenderPreferNotToSay:
		return true
	}
	return false
}

// SupportedByFormulas reports whether the sex-specific formulas have a branch for g.
func (g Gender) SupportedByFormulas() bool {
	return g == GenderMale || g == GenderFemale
}

// Metric is an input set normalized to centimeters and kilograms.
type Metric struct {
	HeightCm float64
	WeightKg float64
	Age      *int
	Gender   Gender
}

// Normalize validates height, weight and (if present) age against the ranges of the given unit
// system and converts them to metric. Imperial ranges are checked before conversion.
func Normalize(height, weight float64, units UnitSystem, age *int, gender Gender) (Metric, error) {
	if units == "" {
		units = UnitsMetric
	}
	var m Metric
	switch units {
	case UnitsMetric:
		if err := checkRange("height_cm", height, MinHeightCm, MaxHeightCm); err != nil {
			return Metric{}, err
		}
		if err := checkRange("weight_kg", weight, MinWeightKg, MaxWeightKg); err != nil {
			return Metric{}, err
		}
		m.HeightCm, m.WeightKg = height, weight
	case UnitsImperial:
		if err := checkRange("height_in", height, MinHeightIn, MaxHeightIn); err != nil {
			return Metric{}, err
		}
		if err := checkRange("weight_lb", weight, MinWeightLb, MaxWeightLb); err != nil {
			return Metric{}, err
		}
		m.HeightCm, m.WeightKg = InchesToCm(height), PoundsToKg(weight)
	default:
		return Metric{}, &ValidationError{Field: "unit_system", Reason: "must be metric or imperial"}
	}
	if age != nil {
		if err := CheckAge(*age); err != nil {
			return Metric{}, err
		}
		a := *age
		m.Age = &a
	}
	if !gender.Valid() {
		return Metric{}, &ValidationError{Field: "gender", Reason: "must be male, female, other or prefer_not_to_say"}
	}
	m.Gender = gender
	return m, nil
}

// InchesToCm converts inches to centimeters.
func InchesToCm(in float64) float64 { return in * CmPerInch }

// PoundsToKg converts pounds to kilograms.
func PoundsToKg(lb float64) float64 { return lb * KgPerLb }

// CheckAge returns a ValidationError when age is outside [MinAge, MaxAge].
func CheckAge(age int) error {
	return checkRange("age", float64(age), MinAge, MaxAge)
}

func checkRange(field string, v, min, max float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &ValidationError{Field: field, Value: v, Min: min, Max: max, Reason: "must be a finite number"}
	}
	if v == 0 {
		return missingField(field)
	}
	if v < min || v > max {
		return &ValidationError{Field: field, Value: v, Min: min, Max: max}
	}
	return nil
}

// Round1 rounds v to one decimal place for presentation.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
