package healthcalc

import (
	"errors"
	"math"
	"testing"
)

func TestEstimateBodyFat(t *testing.T) {
	bc, err := EstimateBodyFat(24.2, 25, GenderMale)
	if err != nil {
		t.Fatalf("EstimateBodyFat: %v", err)
	}
	want := 1.20*24.2 + 0.23*25 - 16.2
	if math.Abs(bc.BodyFatPercent-want) > 1e-9 {
		t.Errorf("BodyFatPercent = %v, want %v", bc.BodyFatPercent, want)
	}
	if Round1(bc.BodyFatPercent) != 18.6 {
		t.Errorf("rounded = %v, want 18.6", Round1(bc.BodyFatPercent))
	}

	f, err := EstimateBodyFat(24.2, 25, GenderFemale)
	if err != nil {
		t.Fatalf("EstimateBodyFat female: %v", err)
	}
	if math.Abs(f.BodyFatPercent-bc.BodyFatPercent-10.8) > 1e-9 {
		t.Errorf("female should be 10.8 points above male, got %v vs %v", f.BodyFatPercent, bc.BodyFatPercent)
	}
}

func TestEstimateBodyFat_Clamped(t *testing.T) {
	low, err := EstimateBodyFat(5, 13, GenderMale)
	if err != nil {
		t.Fatalf("EstimateBodyFat: %v", err)
	}
	if low.BodyFatPercent != 0 {
		t.Errorf("BodyFatPercent = %v, want 0", low.BodyFatPercent)
	}
	high, err := EstimateBodyFat(90, 120, GenderFemale)
	if err != nil {
		t.Fatalf("EstimateBodyFat: %v", err)
	}
	if high.BodyFatPercent != 100 {
		t.Errorf("BodyFatPercent = %v, want 100", high.BodyFatPercent)
	}
}

func TestEstimateBodyFat_InsufficientData(t *testing.T) {
	tests := []struct {
		name   string
		age    int
		gender Gender
	}{
		{"no age", 0, GenderMale},
		{"no gender", 30, ""},
		{"other", 30, GenderOther},
		{"prefer not to say", 30, GenderPreferNotToSay},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := EstimateBodyFat(24, tt.age, tt.gender)
			if !errors.Is(err, ErrInsufficientData) {
				t.Fatalf("err = %v, want ErrInsufficientData", err)
			}
			if IsValidation(err) {
				t.Error("insufficient data must not be a validation error")
			}
		})
	}
}

func TestPlanEnergyAndMacros_Reference(t *testing.T) {
	ep, err := PlanEnergyAndMacros(175, 75, 30, GenderMale, ActivityModerate, GoalMaintain)
	if err != nil {
		t.Fatalf("PlanEnergyAndMacros: %v", err)
	}
	if ep.BMR != 1698.75 {
		t.Errorf("BMR = %v, want 1698.75", ep.BMR)
	}
	if math.Abs(ep.TDEE-2633.0625) > 1e-9 {
		t.Errorf("TDEE = %v, want 2633.0625", ep.TDEE)
	}
	if ep.TargetCalories != 2633 {
		t.Errorf("TargetCalories = %d, want 2633", ep.TargetCalories)
	}
	want := Macros{ProteinG: 165, CarbsG: 263, FatG: 102}
	if ep.Macros != want {
		t.Errorf("Macros = %+v, want %+v", ep.Macros, want)
	}
}

func TestPlanEnergyAndMacros_FemaleAndOffsets(t *testing.T) {
	m, _ := PlanEnergyAndMacros(165, 60, 40, GenderMale, ActivitySedentary, GoalMaintain)
	f, _ := PlanEnergyAndMacros(165, 60, 40, GenderFemale, ActivitySedentary, GoalMaintain)
	if m.BMR-f.BMR != 166 {
		t.Errorf("male-female BMR gap = %v, want 166", m.BMR-f.BMR)
	}

	offsets := map[FitnessGoal]int{GoalWeightLoss: -500, GoalMuscleGain: 300, GoalMaintain: 0, GoalEndurance: 200}
	for goal, off := range offsets {
		ep, err := PlanEnergyAndMacros(175, 75, 30, GenderMale, ActivityModerate, goal)
		if err != nil {
			t.Fatalf("%s: %v", goal, err)
		}
		if want := int(math.Round(2633.0625 + float64(off))); ep.TargetCalories != want {
			t.Errorf("%s: TargetCalories = %d, want %d", goal, ep.TargetCalories, want)
		}
	}
}

func TestMacroRatios_SumToOne(t *testing.T) {
	for _, goal := range []FitnessGoal{GoalWeightLoss, GoalMuscleGain, GoalMaintain, GoalEndurance} {
		r, ok := goal.Ratios()
		if !ok {
			t.Fatalf("%s: no ratios", goal)
		}
		if sum := r.Protein + r.Carbs + r.Fat; math.Abs(sum-1) > 1e-9 {
			t.Errorf("%s: ratios sum to %v", goal, sum)
		}
		for _, level := range []ActivityLevel{ActivitySedentary, ActivityLight, ActivityModerate, ActivityActive, ActivityVeryActive} {
			ep, err := PlanEnergyAndMacros(150, 40, 80, GenderFemale, level, goal)
			if err != nil {
				t.Fatalf("%s/%s: %v", goal, level, err)
			}
			if ep.TargetCalories < 0 || ep.Macros.ProteinG < 0 || ep.Macros.CarbsG < 0 || ep.Macros.FatG < 0 {
				t.Errorf("%s/%s: negative plan %+v", goal, level, ep)
			}
		}
	}
}

func TestActivityMultipliers(t *testing.T) {
	want := map[ActivityLevel]float64{
		ActivitySedentary:  1.2,
		ActivityLight:      1.375,
		ActivityModerate:   1.55,
		ActivityActive:     1.725,
		ActivityVeryActive: 1.9,
	}
	for level, w := range want {
		if got, ok := level.Multiplier(); !ok || got != w {
			t.Errorf("%s multiplier = %v, %v; want %v", level, got, ok, w)
		}
	}
	if _, ok := ActivityLevel("couch").Multiplier(); ok {
		t.Error("unknown level should not have a multiplier")
	}
}

func TestPlanEnergyAndMacros_Errors(t *testing.T) {
	tests := []struct {
		name      string
		h, w      float64
		age       int
		gender    Gender
		level     ActivityLevel
		goal      FitnessGoal
		wantField string
		wantSkip  bool
	}{
		{"missing age", 175, 75, 0, GenderMale, ActivityModerate, GoalMaintain, "age", false},
		{"missing gender", 175, 75, 30, "", ActivityModerate, GoalMaintain, "gender", false},
		{"missing level", 175, 75, 30, GenderMale, "", GoalMaintain, "activity_level", false},
		{"missing goal", 175, 75, 30, GenderMale, ActivityModerate, "", "fitness_goal", false},
		{"unknown level", 175, 75, 30, GenderMale, "couch", GoalMaintain, "activity_level", false},
		{"unknown goal", 175, 75, 30, GenderMale, ActivityModerate, "bulk", "fitness_goal", false},
		{"height out of range", 40, 75, 30, GenderMale, ActivityModerate, GoalMaintain, "height_cm", false},
		{"height above metric max", 301, 70, 30, GenderMale, ActivityModerate, GoalMaintain, "height_cm", false},
		{"weight below metric min", 175, 0.95, 30, GenderMale, ActivityModerate, GoalMaintain, "weight_kg", false},
		{"weight above metric max", 175, 1001, 30, GenderMale, ActivityModerate, GoalMaintain, "weight_kg", false},
		{"unsupported gender", 175, 75, 30, GenderOther, ActivityModerate, GoalMaintain, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := PlanEnergyAndMacros(tt.h, tt.w, tt.age, tt.gender, tt.level, tt.goal)
			if tt.wantSkip {
				if !errors.Is(err, ErrInsufficientData) {
					t.Fatalf("err = %v, want ErrInsufficientData", err)
				}
				return
			}
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("err = %v, want *ValidationError", err)
			}
			if ve.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", ve.Field, tt.wantField)
			}
		})
	}
}

func TestPlanEnergyAndMacros_MetricBoundsInclusive(t *testing.T) {
	if _, err := PlanEnergyAndMacros(300, 1000, 30, GenderMale, ActivityModerate, GoalMaintain); err != nil {
		t.Errorf("300 cm / 1000 kg should be accepted: %v", err)
	}
	if _, err := PlanEnergyAndMacros(50, 1, 30, GenderFemale, ActivitySedentary, GoalMaintain); err != nil {
		t.Errorf("50 cm / 1 kg should be accepted: %v", err)
	}
}
