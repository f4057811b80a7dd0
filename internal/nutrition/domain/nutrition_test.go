package domain

import (
	"errors"
	"testing"
	"time"

	"healthtrack/backend/internal/healthcalc"
	"healthtrack/backend/internal/platform/validate"
)

func f(v float64) *float64 { return &v }

func TestLogInput_Validate(t *testing.T) {
	today := time.Date(2024, 3, 9, 18, 30, 0, 0, time.UTC)
	in := LogInput{MealType: MealLunch, FoodName: "  Rice ", Quantity: 1, Calories: 200, Carbs: 45}
	date, err := in.Validate(today)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if date.Format(DateLayout) != "2024-03-09" {
		t.Errorf("date = %v, want today", date)
	}
	if in.FoodName != "Rice" || in.Unit != DefaultUnit {
		t.Errorf("normalized = %q %q", in.FoodName, in.Unit)
	}

	testCases := []struct {
		name  string
		in    LogInput
		field string
	}{
		{"meal", LogInput{MealType: "brunch", FoodName: "x", Quantity: 1}, "meal_type"},
		{"food name", LogInput{MealType: MealSnack, FoodName: " ", Quantity: 1}, "food_name"},
		{"quantity", LogInput{MealType: MealSnack, FoodName: "x", Quantity: 0}, "quantity"},
		{"calories", LogInput{MealType: MealSnack, FoodName: "x", Quantity: 1, Calories: 10001}, "calories"},
		{"fat", LogInput{MealType: MealSnack, FoodName: "x", Quantity: 1, Fat: -1}, "fat"},
		{"fiber", LogInput{MealType: MealSnack, FoodName: "x", Quantity: 1, Fiber: f(1001)}, "fiber"},
		{"date", LogInput{MealType: MealSnack, FoodName: "x", Quantity: 1, Date: "09/03/2024"}, "date"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.in.Validate(today)
			var fe validate.Errors
			if !errors.As(err, &fe) || len(fe) != 1 || fe[0].Field != tc.field {
				t.Errorf("err = %v, want one error on %q", err, tc.field)
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	logs := []*Log{
		{Calories: 300, Protein: 20, Carbs: 30, Fat: 10, Fiber: f(4)},
		{Calories: 150.5, Protein: 5, Carbs: 20, Fat: 5},
	}
	s := Summarize("u1", time.Time{}, logs)
	if s.TotalCalories != 450.5 || s.TotalProtein != 25 || s.TotalCarbs != 50 || s.TotalFat != 15 {
		t.Errorf("totals = %+v", s)
	}
	if s.TotalFiber == nil || *s.TotalFiber != 4 {
		t.Errorf("fiber = %v, want 4", s.TotalFiber)
	}
	if s.TotalSugar != nil || s.TotalSodium != nil {
		t.Error("sugar and sodium should stay unset")
	}
}

func TestNewProgress(t *testing.T) {
	testCases := []struct {
		consumed, goal, want float64
	}{
		{1000, 2000, 0.5},
		{2500, 2000, 1},
		{50, 0, 0},
		{50, -10, 0},
		{0, 150, 0},
	}
	for _, tc := range testCases {
		if got := NewProgress(tc.consumed, tc.goal).Percent; got != tc.want {
			t.Errorf("NewProgress(%v, %v).Percent = %v, want %v", tc.consumed, tc.goal, got, tc.want)
		}
	}
}

func TestMeasure(t *testing.T) {
	p := Measure(DailySummary{TotalCalories: 1000, TotalProtein: 75}, healthcalc.FallbackTargets)
	if p.Calories.Percent != 0.5 || p.Protein.Percent != 0.5 || p.Fat.Goal != 67 {
		t.Errorf("progress = %+v", p)
	}
}
