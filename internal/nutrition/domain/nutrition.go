// Package domain holds nutrition log and daily summary types.
package domain

import (
	"encoding/json"
	"math"
	"strings"
	"time"

	"healthtrack/backend/internal/healthcalc"
	"healthtrack/backend/internal/platform/validate"
)

const DateLayout = "2006-01-02"

// MealType is the meal a log entry belongs to.
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

// DefaultUnit is stored when a log is submitted without a unit.
const DefaultUnit = "serving"

// Log is one food entry.
type Log struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Date      time.Time `json:"-"`
	MealType  MealType  `json:"meal_type"`
	FoodName  string    `json:"food_name"`
	Quantity  float64   `json:"quantity"`
	Unit      string    `json:"unit"`
	Calories  float64   `json:"calories"`
	Protein   float64   `json:"protein"`
	Carbs     float64   `json:"carbs"`
	Fat       float64   `json:"fat"`
	Fiber     *float64  `json:"fiber"`
	Sugar     *float64  `json:"sugar"`
	Sodium    *float64  `json:"sodium"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (l Log) MarshalJSON() ([]byte, error) {
	type alias Log
	return json.Marshal(struct {
		alias
		Date string `json:"date"`
	}{alias(l), l.Date.Format(DateLayout)})
}

// LogInput is a food entry as submitted. Date is YYYY-MM-DD; empty means today.
type LogInput struct {
	Date     string   `json:"date"`
	MealType MealType `json:"meal_type"`
	FoodName string   `json:"food_name"`
	Quantity float64  `json:"quantity"`
	Unit     string   `json:"unit"`
	Calories float64  `json:"calories"`
	Protein  float64  `json:"protein"`
	Carbs    float64  `json:"carbs"`
	Fat      float64  `json:"fat"`
	Fiber    *float64 `json:"fiber"`
	Sugar    *float64 `json:"sugar"`
	Sodium   *float64 `json:"sodium"`
}

// Validate checks in and returns the parsed date, defaulting to today's date in UTC.
func (in *LogInput) Validate(today time.Time) (time.Time, error) {
	var c validate.Checker
	c.OneOf("meal_type", string(in.MealType), string(MealBreakfast), string(MealLunch), string(MealDinner), string(MealSnack))
	in.FoodName = strings.TrimSpace(in.FoodName)
	c.Length("food_name", in.FoodName, 1, 200)
	c.Range("quantity", in.Quantity, 0.01, 100)
	in.Unit = strings.TrimSpace(in.Unit)
	if in.Unit == "" {
		in.Unit = DefaultUnit
	}
	c.Length("unit", in.Unit, 1, 20)
	c.Range("calories", in.Calories, 0, 10000)
	c.Range("protein", in.Protein, 0, 1000)
	c.Range("carbs", in.Carbs, 0, 1000)
	c.Range("fat", in.Fat, 0, 1000)
	c.OptionalRange("fiber", in.Fiber, 0, 1000)
	c.OptionalRange("sugar", in.Sugar, 0, 1000)
	c.OptionalRange("sodium", in.Sodium, 0, 100000)

	date := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	if in.Date != "" {
		d, err := time.Parse(DateLayout, in.Date)
		if err != nil {
			c.Add("date", "must be YYYY-MM-DD")
		} else {
			date = d
		}
	}
	return date, c.Err()
}

// DailySummary is the per-day total of a user's logs.
type DailySummary struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	Date          time.Time `json:"-"`
	TotalCalories float64   `json:"total_calories"`
	TotalProtein  float64   `json:"total_protein"`
	TotalCarbs    float64   `json:"total_carbs"`
	TotalFat      float64   `json:"total_fat"`
	TotalFiber    *float64  `json:"total_fiber"`
	TotalSugar    *float64  `json:"total_sugar"`
	TotalSodium   *float64  `json:"total_sodium"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (s DailySummary) MarshalJSON() ([]byte, error) {
	type alias DailySummary
	return json.Marshal(struct {
		alias
		Date string `json:"date"`
	}{alias(s), s.Date.Format(DateLayout)})
}

// Summarize totals logs into a summary for userID and date. Optional totals stay nil
// unless at least one log carries the value.
func Summarize(userID string, date time.Time, logs []*Log) DailySummary {
	s := DailySummary{UserID: userID, Date: date}
	for _, l := range logs {
		s.TotalCalories += l.Calories
		s.TotalProtein += l.Protein
		s.TotalCarbs += l.Carbs
		s.TotalFat += l.Fat
		s.TotalFiber = addOptional(s.TotalFiber, l.Fiber)
		s.TotalSugar = addOptional(s.TotalSugar, l.Sugar)
		s.TotalSodium = addOptional(s.TotalSodium, l.Sodium)
	}
	return s
}

func addOptional(total, v *float64) *float64 {
	if v == nil {
		return total
	}
	sum := *v
	if total != nil {
		sum += *total
	}
	return &sum
}

// Progress is consumption against one daily target.
type Progress struct {
	Consumed float64 `json:"consumed"`
	Goal     float64 `json:"goal"`
	// Percent is Consumed/Goal in [0, 1]; 0 when Goal is not positive.
	Percent float64 `json:"percent"`
}

func NewProgress(consumed, goal float64) Progress {
	p := Progress{Consumed: healthcalc.Round1(consumed), Goal: goal}
	if goal > 0 {
		p.Percent = consumed / goal
		if p.Percent > 1 {
			p.Percent = 1
		}
		p.Percent = math.Round(p.Percent*1000) / 1000
	}
	return p
}

// DailyProgress is the day's summary measured against the user's targets.
type DailyProgress struct {
	Summary  DailySummary       `json:"summary"`
	Targets  healthcalc.Targets `json:"targets"`
	Calories Progress           `json:"calories"`
	Protein  Progress           `json:"protein"`
	Carbs    Progress           `json:"carbs"`
	Fat      Progress           `json:"fat"`
}

// Measure compares s to t.
func Measure(s DailySummary, t healthcalc.Targets) DailyProgress {
	return DailyProgress{
		Summary:  s,
		Targets:  t,
		Calories: NewProgress(s.TotalCalories, float64(t.Calories)),
		Protein:  NewProgress(s.TotalProtein, float64(t.ProteinG)),
		Carbs:    NewProgress(s.TotalCarbs, float64(t.CarbsG)),
		Fat:      NewProgress(s.TotalFat, float64(t.FatG)),
	}
}
