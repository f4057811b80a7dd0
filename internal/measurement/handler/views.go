package handler

import "healthtrack/backend/internal/healthcalc"

type bmiView struct {
	Value            float64             `json:"value"`
	Category         healthcalc.Category `json:"category"`
	IdealWeightMinKg float64             `json:"ideal_weight_min_kg"`
	IdealWeightMaxKg float64             `json:"ideal_weight_max_kg"`
}

func toBMIView(r healthcalc.BMIResult) bmiView {
	r = r.Rounded()
	return bmiView{Value: r.BMI, Category: r.Category, IdealWeightMinKg: r.IdealWeightMinKg, IdealWeightMaxKg: r.IdealWeightMaxKg}
}

type energyView struct {
	BMR            float64                `json:"bmr"`
	TDEE           float64                `json:"tdee"`
	TargetCalories int                    `json:"target_calories"`
	Macros         healthcalc.Macros      `json:"macros"`
	Ratios         healthcalc.MacroRatios `json:"ratios"`
}

func toEnergyView(o healthcalc.Optional[healthcalc.EnergyProfile]) healthcalc.Optional[energyView] {
	ep, ok := o.Get()
	if !ok {
		return healthcalc.None[energyView]()
	}
	return healthcalc.Some(energyView{
		BMR:            healthcalc.Round1(ep.BMR),
		TDEE:           healthcalc.Round1(ep.TDEE),
		TargetCalories: ep.TargetCalories,
		Macros:         ep.Macros,
		Ratios:         ep.Ratios,
	})
}

func toBodyFatView(o healthcalc.Optional[healthcalc.BodyComposition]) healthcalc.Optional[float64] {
	bc, ok := o.Get()
	if !ok {
		return healthcalc.None[float64]()
	}
	return healthcalc.Some(healthcalc.Round1(bc.BodyFatPercent))
}
