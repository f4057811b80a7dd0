package healthcalc

import "math"

// BodyComposition is a body-fat estimate derived from BMI, age and gender. It is a linear
// approximation, not a substitute for skinfold or DEXA measurement.
type BodyComposition struct {
	BodyFatPercent float64
}

const (
	bodyFatBMICoef = 1.20
	bodyFatAgeCoef = 0.23
	bodyFatMale    = -16.2
	bodyFatFemale  = -5.4
)

// EstimateBodyFat returns the body-fat percentage clamped to [0, 100]. A zero age, an empty gender,
// or a gender the formula has no branch for yields an *InsufficientDataError.
func EstimateBodyFat(bmi float64, age int, gender Gender) (BodyComposition, error) {
	if missing := missingForSexFormula(age, gender); len(missing) > 0 {
		return BodyComposition{}, &InsufficientDataError{Stage: StageBodyFat, Missing: missing}
	}
	if err := CheckAge(age); err != nil {
		return BodyComposition{}, err
	}
	if math.IsNaN(bmi) || math.IsInf(bmi, 0) || bmi <= 0 {
		return BodyComposition{}, &ValidationError{Field: "bmi", Value: bmi, Reason: "must be a positive finite number"}
	}
	offset := bodyFatMale
	if gender == GenderFemale {
		offset = bodyFatFemale
	}
	bf := bodyFatBMICoef*bmi + bodyFatAgeCoef*float64(age) + offset
	return BodyComposition{BodyFatPercent: clamp(bf, 0, 100)}, nil
}

func missingForSexFormula(age int, gender Gender) []string {
	var missing []string
	if age == 0 {
		missing = append(missing, "age")
	}
	switch {
	case gender == "":
		missing = append(missing, "gender")
	case !gender.SupportedByFormulas():
		missing = append(missing, "gender:"+string(gender))
	}
	return missing
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
