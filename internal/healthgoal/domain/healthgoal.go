package domain

import (
	"encoding/json"
	"math"
	"time"
)

// DateLayout is the wire format of target dates.
const DateLayout = "2006-01-02"

// GoalType is the metric a health goal tracks.
type GoalType string

const (
	GoalTypeBMI     GoalType = "bmi"
	GoalTypeWeight  GoalType = "weight"
	GoalTypeBodyFat GoalType = "body_fat"
)

// TargetRange returns the accepted target values for t and whether t is known.
func (t GoalType) TargetRange() (min, max float64, ok bool) {
	switch t {
	case GoalTypeBMI:
		return 10, 60, true
	case GoalTypeWeight:
		return 1, 1000, true
	case GoalTypeBodyFat:
		return 1, 70, true
	}
	return 0, 0, false
}

// Status summarizes where a goal stands.
type Status string

const (
	StatusNoData     Status = "no-data"
	StatusInProgress Status = "in-progress"
	StatusAchieved   Status = "achieved"
	StatusOverdue    Status = "overdue"
)

// AchievedTolerance is how close the current value must be to the target to count as achieved.
const AchievedTolerance = 0.1

// HealthGoal is a target value for BMI, weight (kg) or body fat (%), optionally by a date.
type HealthGoal struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	GoalType    GoalType   `json:"goal_type"`
	TargetValue float64    `json:"target_value"`
	TargetDate  *time.Time `json:"-"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// MarshalJSON writes TargetDate as a plain date or null.
func (g HealthGoal) MarshalJSON() ([]byte, error) {
	type alias HealthGoal
	var date *string
	if g.TargetDate != nil {
		s := g.TargetDate.Format(DateLayout)
		date = &s
	}
	return json.Marshal(struct {
		alias
		TargetDate *string `json:"target_date"`
	}{alias(g), date})
}

// Point is one observation of the goal's metric.
type Point struct {
	Date  time.Time
	Value float64
}

// Progress is a goal with its position relative to the measurement series.
type Progress struct {
	Goal            HealthGoal `json:"goal"`
	InitialValue    *float64   `json:"initial_value"`
	CurrentValue    *float64   `json:"current_value"`
	ProgressPercent float64    `json:"progress_percent"`
	Status          Status     `json:"status"`
}

// Evaluate computes progress from points ordered oldest first. The initial value is the last point
// on or before the goal's creation day, or the first point after it when there is none.
// Progress is |current-initial| / |target-initial| * 100, capped at 100; a goal whose target equals
// its initial value is 100 when achieved and 0 otherwise.
func Evaluate(g HealthGoal, points []Point, now time.Time) Progress {
	p := Progress{Goal: g, Status: StatusNoData}
	if len(points) == 0 {
		return p
	}
	created := dayOf(g.CreatedAt)
	initial := points[0].Value
	for _, pt := range points {
		if dayOf(pt.Date).After(created) {
			break
		}
		initial = pt.Value
	}
	current := points[len(points)-1].Value
	p.InitialValue = &initial
	p.CurrentValue = &current

	achieved := math.Abs(current-g.TargetValue) <= AchievedTolerance
	span := math.Abs(g.TargetValue - initial)
	switch {
	case span == 0 && achieved:
		p.ProgressPercent = 100
	case span == 0:
		p.ProgressPercent = 0
	default:
		p.ProgressPercent = math.Min(100, math.Abs(current-initial)/span*100)
	}
	p.ProgressPercent = math.Round(p.ProgressPercent*10) / 10

	switch {
	case achieved:
		p.Status = StatusAchieved
	case g.TargetDate != nil && dayOf(now).After(dayOf(*g.TargetDate)):
		p.Status = StatusOverdue
	default:
		p.Status = StatusInProgress
	}
	return p
}

func dayOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
