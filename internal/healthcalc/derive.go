package healthcalc

import "errors"

// Stage names a step of the derivation pipeline.
type Stage string

const (
	StageNormalize Stage = "normalize"
	StageBMI       Stage = "bmi"
	StageBodyFat   Stage = "body_fat"
	StageEnergy    Stage = "energy"
)

// Input is the raw anthropometric input in the caller's unit system.
type Input struct {
	Height        float64
	Weight        float64
	Units         UnitSystem
	Age           *int
	Gender        Gender
	ActivityLevel ActivityLevel
	FitnessGoal   FitnessGoal
}

// Derivation is the pipeline output. Gated stages are absent when their inputs were; Skipped lists
// why, keyed by stage.
type Derivation struct {
	Metric      Metric
	BMI         BMIResult
	Composition Optional[BodyComposition]
	Energy      Optional[EnergyProfile]
	Skipped     map[Stage][]string
}

// Derive runs normalize, BMI, body fat (needs age and a supported gender) and energy (additionally
// needs activity level and fitness goal). A ValidationError on any present input aborts; missing
// optional inputs only skip their stage.
func Derive(in Input) (Derivation, error) {
	m, err := Normalize(in.Height, in.Weight, in.Units, in.Age, in.Gender)
	if err != nil {
		return Derivation{}, err
	}
	if in.ActivityLevel != "" {
		if _, ok := in.ActivityLevel.Multiplier(); !ok {
			return Derivation{}, &ValidationError{Field: "activity_level", Reason: "must be sedentary, light, moderate, active or very_active"}
		}
	}
	if in.FitnessGoal != "" {
		if _, ok := in.FitnessGoal.Ratios(); !ok {
			return Derivation{}, &ValidationError{Field: "fitness_goal", Reason: "must be weight_loss, muscle_gain, maintain or endurance"}
		}
	}

	d := Derivation{
		Metric:  m,
		BMI:     bmiFromMetric(m.HeightCm, m.WeightKg),
		Skipped: map[Stage][]string{},
	}

	age := 0
	if m.Age != nil {
		age = *m.Age
	}

	bc, err := EstimateBodyFat(d.BMI.BMI, age, m.Gender)
	switch {
	case err == nil:
		d.Composition = Some(bc)
	case errors.Is(err, ErrInsufficientData):
		d.Skipped[StageBodyFat] = missingOf(err)
	default:
		return Derivation{}, err
	}

	if missing := energyMissing(age, m.Gender, in.ActivityLevel, in.FitnessGoal); len(missing) > 0 {
		d.Skipped[StageEnergy] = missing
		return d, nil
	}
	ep, err := planEnergy(normalizedBounds, m.HeightCm, m.WeightKg, age, m.Gender, in.ActivityLevel, in.FitnessGoal)
	if err != nil {
		return Derivation{}, err
	}
	d.Energy = Some(ep)
	return d, nil
}

func energyMissing(age int, gender Gender, level ActivityLevel, goal FitnessGoal) []string {
	missing := missingForSexFormula(age, gender)
	if level == "" {
		missing = append(missing, "activity_level")
	}
	if goal == "" {
		missing = append(missing, "fitness_goal")
	}
	return missing
}

func missingOf(err error) []string {
	var ide *InsufficientDataError
	if errors.As(err, &ide) {
		return ide.Missing
	}
	return nil
}
