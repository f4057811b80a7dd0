package domain

import (
	"errors"
	"testing"

	"healthtrack/backend/internal/platform/validate"
)

func TestPresetInput_Validate(t *testing.T) {
	in := PresetInput{Name: " Usual breakfast ", MealType: MealBreakfast, Foods: []PresetFood{
		{FoodName: " Oats ", Quantity: 1, Calories: 300, Protein: 10, Carbs: 54, Fat: 5},
		{FoodName: "Milk", Quantity: 0.5, Unit: "cup", Calories: 60, Protein: 4, Carbs: 6, Fat: 2},
	}}
	if err := in.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if in.Name != "Usual breakfast" || in.Foods[0].FoodName != "Oats" || in.Foods[0].Unit != DefaultUnit || in.Foods[1].Unit != "cup" {
		t.Errorf("normalized = %+v", in)
	}

	food := PresetFood{FoodName: "x", Quantity: 1}
	many := make([]PresetFood, MaxPresetFoods+1)
	for i := range many {
		many[i] = food
	}
	testCases := []struct {
		name  string
		in    PresetInput
		field string
	}{
		{"name", PresetInput{Name: "  ", MealType: MealLunch, Foods: []PresetFood{food}}, "name"},
		{"meal", PresetInput{Name: "a", MealType: "brunch", Foods: []PresetFood{food}}, "meal_type"},
		{"no foods", PresetInput{Name: "a", MealType: MealLunch}, "foods"},
		{"too many foods", PresetInput{Name: "a", MealType: MealLunch, Foods: many}, "foods"},
		{"food quantity", PresetInput{Name: "a", MealType: MealLunch, Foods: []PresetFood{food, {FoodName: "y"}}}, "foods[1].quantity"},
		{"food calories", PresetInput{Name: "a", MealType: MealLunch, Foods: []PresetFood{{FoodName: "y", Quantity: 1, Calories: -5}}}, "foods[0].calories"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.in.Validate()
			var fe validate.Errors
			if !errors.As(err, &fe) || len(fe) != 1 || fe[0].Field != tc.field {
				t.Errorf("err = %v, want one error on %q", err, tc.field)
			}
		})
	}
}

func TestPreset_Total(t *testing.T) {
	p := Preset{TotalCalories: 999, Foods: []PresetFood{
		{Calories: 300, Protein: 10, Carbs: 54, Fat: 5},
		{Calories: 60.5, Protein: 4, Carbs: 6, Fat: 2},
	}}
	p.Total()
	if p.TotalCalories != 360.5 || p.TotalProtein != 14 || p.TotalCarbs != 60 || p.TotalFat != 7 {
		t.Errorf("totals = %+v", p)
	}
}

func TestPresetFood_LogInput(t *testing.T) {
	f := PresetFood{FoodName: "Oats", Quantity: 1, Unit: "bowl", Calories: 300, Protein: 10}
	in := f.LogInput(MealSnack, "2024-03-09")
	if in.MealType != MealSnack || in.Date != "2024-03-09" || in.FoodName != "Oats" || in.Unit != "bowl" || in.Calories != 300 || in.Protein != 10 {
		t.Errorf("LogInput = %+v", in)
	}
}
