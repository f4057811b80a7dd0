package healthcalc

import "math"

// ActivityLevel scales BMR into total daily energy expenditure.
type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "very_active"
)

var activityMultipliers = map[ActivityLevel]float64{
	ActivitySedentary:  1.2,
	ActivityLight:      1.375,
	ActivityModerate:   1.55,
	ActivityActive:     1.725,
	ActivityVeryActive: 1.9,
}

// Multiplier returns the TDEE multiplier for l and whether l is known.
func (l ActivityLevel) Multiplier() (float64, bool) {
	m, ok := activityMultipliers[l]
	return m, ok
}

// FitnessGoal selects the calorie offset and macronutrient split.
type FitnessGoal string

const (
	GoalWeightLoss FitnessGoal = "weight_loss"
	GoalMuscleGain FitnessGoal = "muscle_gain"
	GoalMaintain   FitnessGoal = "maintain"
	GoalEndurance  FitnessGoal = "endurance"
)

// MacroRatios is the share of target calories per macronutrient. The three always sum to 1.
type MacroRatios struct {
	Protein float64 `json:"protein"`
	Carbs   float64 `json:"carbs"`
	Fat     float64 `json:"fat"`
}

type goalPlan struct {
	offset float64
	ratios MacroRatios
}

var goalPlans = map[FitnessGoal]goalPlan{
	GoalWeightLoss: {offset: -500, ratios: MacroRatios{Protein: 0.30, Carbs: 0.35, Fat: 0.35}},
	GoalMuscleGain: {offset: 300, ratios: MacroRatios{Protein: 0.25, Carbs: 0.45, Fat: 0.30}},
	GoalEndurance:  {offset: 200, ratios: MacroRatios{Protein: 0.20, Carbs: 0.55, Fat: 0.25}},
	GoalMaintain:   {offset: 0, ratios: MacroRatios{Protein: 0.25, Carbs: 0.40, Fat: 0.35}},
}

// Ratios returns the macro split for g and whether g is known.
func (g FitnessGoal) Ratios() (MacroRatios, bool) {
	p, ok := goalPlans[g]
	return p.ratios, ok
}

// CalorieOffset returns the daily kcal adjustment applied to TDEE for g.
func (g FitnessGoal) CalorieOffset() (float64, bool) {
	p, ok := goalPlans[g]
	return p.offset, ok
}

const (
	kcalPerGramProtein = 4.0
	kcalPerGramCarb    = 4.0
	kcalPerGramFat     = 9.0

	bmrMaleConst   = 5.0
	bmrFemaleConst = -161.0
)

// Macros are daily gram targets.
type Macros struct {
	ProteinG int `json:"protein_g"`
	CarbsG   int `json:"carbs_g"`
	FatG     int `json:"fat_g"`
}

// EnergyProfile is the BMR, TDEE and macro plan for one person. BMR and TDEE keep full precision.
type EnergyProfile struct {
	BMR            float64
	TDEE           float64
	TargetCalories int
	Macros         Macros
	Ratios         MacroRatios
}

// bodyBounds are the accepted metric height and weight ranges of an energy plan.
type bodyBounds struct {
	minHeightCm, maxHeightCm float64
	minWeightKg, maxWeightKg float64
}

var (
	metricBounds     = bodyBounds{MinHeightCm, MaxHeightCm, MinWeightKg, MaxWeightKg}
	normalizedBounds = bodyBounds{MinHeightCm, maxNormalizedHeightCm, minNormalizedWeightKg, MaxWeightKg}
)

// PlanEnergyAndMacros computes Mifflin-St Jeor BMR, TDEE and a macro plan. Height must be within
// [MinHeightCm, MaxHeightCm], weight within [MinWeightKg, MaxWeightKg] and age within [MinAge, MaxAge];
// all six inputs are required. Genders other than male and female return an InsufficientDataError.
func PlanEnergyAndMacros(heightCm, weightKg float64, age int, gender Gender, level ActivityLevel, goal FitnessGoal) (EnergyProfile, error) {
	return planEnergy(metricBounds, heightCm, weightKg, age, gender, level, goal)
}

// planEnergy is PlanEnergyAndMacros over explicit bounds. Values produced by Normalize use normalizedBounds.
func planEnergy(b bodyBounds, heightCm, weightKg float64, age int, gender Gender, level ActivityLevel, goal FitnessGoal) (EnergyProfile, error) {
	if err := checkRange("height_cm", heightCm, b.minHeightCm, b.maxHeightCm); err != nil {
		return EnergyProfile{}, err
	}
	if err := checkRange("weight_kg", weightKg, b.minWeightKg, b.maxWeightKg); err != nil {
		return EnergyProfile{}, err
	}
	if err := CheckAge(age); err != nil {
		return EnergyProfile{}, err
	}
	switch {
	case gender == "":
		return EnergyProfile{}, missingField("gender")
	case !gender.Valid():
		return EnergyProfile{}, &ValidationError{Field: "gender", Reason: "must be male, female, other or prefer_not_to_say"}
	case !gender.SupportedByFormulas():
		return EnergyProfile{}, &InsufficientDataError{Stage: StageEnergy, Missing: []string{"gender:" + string(gender)}}
	}
	mult, ok := level.Multiplier()
	if !ok {
		if level == "" {
			return EnergyProfile{}, missingField("activity_level")
		}
		return EnergyProfile{}, &ValidationError{Field: "activity_level", Reason: "must be sedentary, light, moderate, active or very_active"}
	}
	plan, ok := goalPlans[goal]
	if !ok {
		if goal == "" {
			return EnergyProfile{}, missingField("fitness_goal")
		}
		return EnergyProfile{}, &ValidationError{Field: "fitness_goal", Reason: "must be weight_loss, muscle_gain, maintain or endurance"}
	}

	bmr := mifflinStJeor(heightCm, weightKg, age, gender)
	tdee := bmr * mult
	cal := math.Round(tdee + plan.offset)
	if cal < 0 {
		cal = 0
	}
	return EnergyProfile{
		BMR:            bmr,
		TDEE:           tdee,
		TargetCalories: int(cal),
		Ratios:         plan.ratios,
		Macros: Macros{
			ProteinG: int(math.Round(cal * plan.ratios.Protein / kcalPerGramProtein)),
			CarbsG:   int(math.Round(cal * plan.ratios.Carbs / kcalPerGramCarb)),
			FatG:     int(math.Round(cal * plan.ratios.Fat / kcalPerGramFat)),
		},
	}, nil
}

func mifflinStJeor(heightCm, weightKg float64, age int, gender Gender) float64 {
	base := 10*weightKg + 6.25*heightCm - 5*float64(age)
	if gender == GenderMale {
		return base + bmrMaleConst
	}
	return base + bmrFemaleConst
}
