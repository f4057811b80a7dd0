package domain

import (
	"strings"
	"time"

	"healthtrack/backend/internal/healthcalc"
	"healthtrack/backend/internal/platform/validate"
)

// Limits on free-text goal fields.
const (
	MaxWorkoutStyleLength = 50
	MaxRestrictions       = 20
	MaxRestrictionLength  = 50
)

// UserGoals is the user's fitness goal, activity level and the nutrition targets derived from them.
type UserGoals struct {
	UserID              string                   `json:"user_id"`
	FitnessGoal         healthcalc.FitnessGoal   `json:"fitness_goal"`
	ActivityLevel       healthcalc.ActivityLevel `json:"activity_level"`
	WorkoutStyle        string                   `json:"workout_style"`
	DietaryRestrictions []string                 `json:"dietary_restrictions"`
	Targets             healthcalc.Targets       `json:"targets"`
	OnboardingCompleted bool                     `json:"onboarding_completed"`
	CreatedAt           time.Time                `json:"created_at"`
	UpdatedAt           time.Time                `json:"updated_at"`
}

// Input is a goals update as submitted. An empty ActivityLevel means moderate.
type Input struct {
	FitnessGoal         healthcalc.FitnessGoal   `json:"fitness_goal"`
	ActivityLevel       healthcalc.ActivityLevel `json:"activity_level"`
	WorkoutStyle        string                   `json:"workout_style"`
	DietaryRestrictions []string                 `json:"dietary_restrictions"`
}

// Apply validates in and copies it onto g. Restrictions are trimmed, lower-cased and de-duplicated.
func (in Input) Apply(g *UserGoals) error {
	var c validate.Checker
	if in.FitnessGoal == "" {
		c.Add("fitness_goal", "is required")
	} else if _, ok := in.FitnessGoal.Ratios(); !ok {
		c.Add("fitness_goal", "must be weight_loss, muscle_gain, maintain or endurance")
	}
	level := in.ActivityLevel
	if level == "" {
		level = healthcalc.ActivityModerate
	}
	if _, ok := level.Multiplier(); !ok {
		c.Add("activity_level", "must be sedentary, light, moderate, active or very_active")
	}
	style := strings.TrimSpace(in.WorkoutStyle)
	c.Length("workout_style", style, 0, MaxWorkoutStyleLength)

	restrictions := make([]string, 0, len(in.DietaryRestrictions))
	seen := map[string]bool{}
	for _, r := range in.DietaryRestrictions {
		r = strings.ToLower(strings.TrimSpace(r))
		if r == "" || seen[r] {
			continue
		}
		if !c.Length("dietary_restrictions", r, 1, MaxRestrictionLength) {
			break
		}
		seen[r] = true
		restrictions = append(restrictions, r)
	}
	if len(restrictions) > MaxRestrictions {
		c.Add("dietary_restrictions", "must have at most %d entries", MaxRestrictions)
	}
	if err := c.Err(); err != nil {
		return err
	}
	g.FitnessGoal = in.FitnessGoal
	g.ActivityLevel = level
	g.WorkoutStyle = style
	g.DietaryRestrictions = restrictions
	return nil
}
