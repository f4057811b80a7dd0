package domain

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"healthtrack/backend/internal/healthcalc"
	"healthtrack/backend/internal/platform/validate"
)

func TestInput_Apply(t *testing.T) {
	var g UserGoals
	err := Input{
		FitnessGoal:         healthcalc.GoalWeightLoss,
		WorkoutStyle:        " running ",
		DietaryRestrictions: []string{"Vegan", " vegan", "", "gluten-free"},
	}.Apply(&g)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if g.ActivityLevel != healthcalc.ActivityModerate {
		t.Errorf("ActivityLevel = %q, want moderate default", g.ActivityLevel)
	}
	if g.WorkoutStyle != "running" {
		t.Errorf("WorkoutStyle = %q", g.WorkoutStyle)
	}
	if want := []string{"vegan", "gluten-free"}; !reflect.DeepEqual(g.DietaryRestrictions, want) {
		t.Errorf("DietaryRestrictions = %v, want %v", g.DietaryRestrictions, want)
	}
}

func TestInput_ApplyValidation(t *testing.T) {
	many := make([]string, MaxRestrictions+1)
	for i := range many {
		many[i] = fmt.Sprintf("r%d", i)
	}
	testCases := []struct {
		name  string
		in    Input
		field string
	}{
		{"missing goal", Input{}, "fitness_goal"},
		{"unknown goal", Input{FitnessGoal: "bulk"}, "fitness_goal"},
		{"unknown level", Input{FitnessGoal: healthcalc.GoalMaintain, ActivityLevel: "couch"}, "activity_level"},
		{"long style", Input{FitnessGoal: healthcalc.GoalMaintain, WorkoutStyle: strings.Repeat("s", 51)}, "workout_style"},
		{"long restriction", Input{FitnessGoal: healthcalc.GoalMaintain, DietaryRestrictions: []string{strings.Repeat("r", 51)}}, "dietary_restrictions"},
		{"too many", Input{FitnessGoal: healthcalc.GoalMaintain, DietaryRestrictions: many}, "dietary_restrictions"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.in.Apply(&UserGoals{})
			var fe validate.Errors
			if !errors.As(err, &fe) || fe[0].Field != tc.field {
				t.Errorf("err = %v, want field %q", err, tc.field)
			}
		})
	}
}
