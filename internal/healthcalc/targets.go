package healthcalc

import "errors"

// TargetSource tells a computed plan apart from the fallback.
type TargetSource string

const (
	SourceComputed TargetSource = "computed"
	SourceFallback TargetSource = "fallback"
)

// Targets are the daily nutrition targets shown to the user.
type Targets struct {
	Calories int          `json:"calories"`
	ProteinG int          `json:"protein_g"`
	CarbsG   int          `json:"carbs_g"`
	FatG     int          `json:"fat_g"`
	Source   TargetSource `json:"source"`
	// Missing lists the inputs that forced the fallback. Empty when computed.
	Missing []string `json:"missing,omitempty"`
}

// FallbackTargets is used whenever a computed plan is not possible.
var FallbackTargets = Targets{Calories: 2000, ProteinG: 150, CarbsG: 250, FatG: 67, Source: SourceFallback}

// TargetInput is what the caller knows about the user, in metric units as stored after Normalize.
// Nil pointers mean unknown.
type TargetInput struct {
	HeightCm      *float64
	WeightKg      *float64
	Age           *int
	Gender        Gender
	ActivityLevel ActivityLevel
	FitnessGoal   FitnessGoal
}

// ResolveTargets returns the computed plan when every input is present and supported, and
// FallbackTargets otherwise. It never fails.
func ResolveTargets(in TargetInput) Targets {
	var missing []string
	if in.HeightCm == nil {
		missing = append(missing, "height_cm")
	}
	if in.WeightKg == nil {
		missing = append(missing, "weight_kg")
	}
	age := 0
	if in.Age != nil {
		age = *in.Age
	}
	missing = append(missing, energyMissing(age, in.Gender, in.ActivityLevel, in.FitnessGoal)...)
	if len(missing) > 0 {
		return fallback(missing)
	}

	ep, err := planEnergy(normalizedBounds, *in.HeightCm, *in.WeightKg, age, in.Gender, in.ActivityLevel, in.FitnessGoal)
	if err != nil {
		var ve *ValidationError
		if errors.As(err, &ve) {
			return fallback([]string{ve.Field})
		}
		return fallback(missingOf(err))
	}
	return Targets{
		Calories: ep.TargetCalories,
		ProteinG: ep.Macros.ProteinG,
		CarbsG:   ep.Macros.CarbsG,
		FatG:     ep.Macros.FatG,
		Source:   SourceComputed,
	}
}

func fallback(missing []string) Targets {
	t := FallbackTargets
	t.Missing = missing
	return t
}
