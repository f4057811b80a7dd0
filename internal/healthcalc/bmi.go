package healthcalc

// Category is the BMI classification.
type Category string

const (
	CategoryUnderweight Category = "Underweight"
	CategoryNormal      Category = "Normal"
	CategoryOverweight  Category = "Overweight"
	CategoryObese       Category = "Obese"
)

// Category thresholds are exclusive upper bounds. The ideal range uses 24.9, not 25.
const (
	underweightBelow = 18.5
	normalBelow      = 25.0
	overweightBelow  = 30.0

	idealBMIMin = 18.5
	idealBMIMax = 24.9
)

// BMIResult holds BMI at full precision. Use Rounded for presentation.
type BMIResult struct {
	BMI              float64
	Category         Category
	IdealWeightMinKg float64
	IdealWeightMaxKg float64
}

// Rounded returns a copy with BMI and ideal weight bounds rounded to one decimal.
func (r BMIResult) Rounded() BMIResult {
	return BMIResult{
		BMI:              Round1(r.BMI),
		Category:         r.Category,
		IdealWeightMinKg: Round1(r.IdealWeightMinKg),
		IdealWeightMaxKg: Round1(r.IdealWeightMaxKg),
	}
}

// ComputeBMI derives BMI, category and ideal weight range from metric height and weight.
// heightCm must be in [50, 300] and weightKg in [1, 1000].
func ComputeBMI(heightCm, weightKg float64) (BMIResult, error) {
	if err := checkRange("height_cm", heightCm, MinHeightCm, MaxHeightCm); err != nil {
		return BMIResult{}, err
	}
	if err := checkRange("weight_kg", weightKg, MinWeightKg, MaxWeightKg); err != nil {
		return BMIResult{}, err
	}
	return bmiFromMetric(heightCm, weightKg), nil
}

// Classify maps a BMI value onto its category.
func Classify(bmi float64) Category {
	switch {
	case bmi < underweightBelow:
		return CategoryUnderweight
	case bmi < normalBelow:
		return CategoryNormal
	case bmi < overweightBelow:
		return CategoryOverweight
	default:
		return CategoryObese
	}
}

// bmiFromMetric assumes validated, normalized input. Imperial heights up to 120 in convert to
// 304.8 cm, so callers that validated pre-conversion ranges come here directly.
func bmiFromMetric(heightCm, weightKg float64) BMIResult {
	h := heightCm / 100
	h2 := h * h
	bmi := weightKg / h2
	return BMIResult{
		BMI:              bmi,
		Category:         Classify(bmi),
		IdealWeightMinKg: idealBMIMin * h2,
		IdealWeightMaxKg: idealBMIMax * h2,
	}
}
