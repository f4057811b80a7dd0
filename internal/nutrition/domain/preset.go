package domain

import (
	"fmt"
	"strings"
	"time"

	"healthtrack/backend/internal/platform/validate"
)

// MaxPresetFoods caps the foods stored in one preset.
const MaxPresetFoods = 50

// PresetFood is one food of a saved meal.
type PresetFood struct {
	FoodName string  `json:"food_name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// LogInput returns the log entry that records f under meal on date.
func (f PresetFood) LogInput(meal MealType, date string) LogInput {
	return LogInput{
		Date:     date,
		MealType: meal,
		FoodName: f.FoodName,
		Quantity: f.Quantity,
		Unit:     f.Unit,
		Calories: f.Calories,
		Protein:  f.Protein,
		Carbs:    f.Carbs,
		Fat:      f.Fat,
	}
}

// Preset is a saved meal that can be logged in one step.
type Preset struct {
	ID            string       `json:"id"`
	UserID        string       `json:"user_id"`
	Name          string       `json:"name"`
	MealType      MealType     `json:"meal_type"`
	Foods         []PresetFood `json:"foods"`
	TotalCalories float64      `json:"total_calories"`
	TotalProtein  float64      `json:"total_protein"`
	TotalCarbs    float64      `json:"total_carbs"`
	TotalFat      float64      `json:"total_fat"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// Total recomputes the preset totals from its foods.
func (p *Preset) Total() {
	p.TotalCalories, p.TotalProtein, p.TotalCarbs, p.TotalFat = 0, 0, 0, 0
	for _, f := range p.Foods {
		p.TotalCalories += f.Calories
		p.TotalProtein += f.Protein
		p.TotalCarbs += f.Carbs
		p.TotalFat += f.Fat
	}
}

// PresetInput is a preset as submitted.
type PresetInput struct {
	Name     string       `json:"name"`
	MealType MealType     `json:"meal_type"`
	Foods    []PresetFood `json:"foods"`
}

// Validate checks in, trimming names and defaulting empty units. Food errors are
// reported as foods[i].<field>.
func (in *PresetInput) Validate() error {
	var c validate.Checker
	in.Name = strings.TrimSpace(in.Name)
	c.Length("name", in.Name, 1, 100)
	c.OneOf("meal_type", string(in.MealType), string(MealBreakfast), string(MealLunch), string(MealDinner), string(MealSnack))
	switch {
	case len(in.Foods) == 0:
		c.Add("foods", "must contain at least one food")
	case len(in.Foods) > MaxPresetFoods:
		c.Add("foods", "must contain at most %d foods", MaxPresetFoods)
	}
	for i := range in.Foods {
		f := &in.Foods[i]
		field := func(name string) string { return fmt.Sprintf("foods[%d].%s", i, name) }
		f.FoodName = strings.TrimSpace(f.FoodName)
		c.Length(field("food_name"), f.FoodName, 1, 200)
		c.Range(field("quantity"), f.Quantity, 0.01, 100)
		f.Unit = strings.TrimSpace(f.Unit)
		if f.Unit == "" {
			f.Unit = DefaultUnit
		}
		c.Length(field("unit"), f.Unit, 1, 20)
		c.Range(field("calories"), f.Calories, 0, 10000)
		c.Range(field("protein"), f.Protein, 0, 1000)
		c.Range(field("carbs"), f.Carbs, 0, 1000)
		c.Range(field("fat"), f.Fat, 0, 1000)
	}
	return c.Err()
}

// ApplyInput selects where an applied preset is logged. Date is YYYY-MM-DD and defaults
// to today; an empty MealType keeps the preset's own.
type ApplyInput struct {
	Date     string   `json:"date"`
	MealType MealType `json:"meal_type"`
}
