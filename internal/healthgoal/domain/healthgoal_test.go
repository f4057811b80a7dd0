package domain

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func day(s string) time.Time {
	t, _ := time.Parse(DateLayout, s)
	return t
}

func TestEvaluate(t *testing.T) {
	now := day("2024-06-01")
	past := day("2024-05-01")
	series := []Point{
		{Date: day("2024-01-01"), Value: 90},
		{Date: day("2024-02-01"), Value: 88},
		{Date: day("2024-03-01"), Value: 85},
	}
	testCases := []struct {
		name        string
		goal        HealthGoal
		points      []Point
		wantStatus  Status
		wantPercent float64
		wantInitial float64
	}{
		{"no data", HealthGoal{TargetValue: 80}, nil, StatusNoData, 0, 0},
		{"half way", HealthGoal{TargetValue: 80, CreatedAt: day("2024-01-15")}, series, StatusInProgress, 50, 90},
		{"initial after creation", HealthGoal{TargetValue: 80, CreatedAt: day("2023-12-01")}, series, StatusInProgress, 50, 90},
		{"created later uses prior point", HealthGoal{TargetValue: 80, CreatedAt: day("2024-02-10")}, series, StatusInProgress, 37.5, 88},
		{"overshoot capped", HealthGoal{TargetValue: 89, CreatedAt: day("2024-01-01")}, series, StatusInProgress, 100, 90},
		{"achieved within tolerance", HealthGoal{TargetValue: 85.05, CreatedAt: day("2024-01-01")}, series, StatusAchieved, 100, 90},
		{"overdue", HealthGoal{TargetValue: 80, CreatedAt: day("2024-01-01"), TargetDate: &past}, series, StatusOverdue, 50, 90},
		{"achieved beats overdue", HealthGoal{TargetValue: 85, CreatedAt: day("2024-01-01"), TargetDate: &past}, series, StatusAchieved, 100, 90},
		{"target equals initial", HealthGoal{TargetValue: 90, CreatedAt: day("2024-01-01")}, series[:1], StatusAchieved, 100, 90},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := Evaluate(tc.goal, tc.points, now)
			if p.Status != tc.wantStatus {
				t.Errorf("Status = %q, want %q", p.Status, tc.wantStatus)
			}
			if p.ProgressPercent != tc.wantPercent {
				t.Errorf("ProgressPercent = %v, want %v", p.ProgressPercent, tc.wantPercent)
			}
			if tc.points != nil && *p.InitialValue != tc.wantInitial {
				t.Errorf("InitialValue = %v, want %v", *p.InitialValue, tc.wantInitial)
			}
		})
	}
}

func TestGoalType_TargetRange(t *testing.T) {
	if _, _, ok := GoalType("steps").TargetRange(); ok {
		t.Error("unknown type should not have a range")
	}
	if min, max, ok := GoalTypeBMI.TargetRange(); !ok || min != 10 || max != 60 {
		t.Errorf("bmi range = %v..%v", min, max)
	}
}

func TestHealthGoal_MarshalJSON(t *testing.T) {
	d := day("2024-12-31")
	b, err := json.Marshal(HealthGoal{ID: "g1", TargetDate: &d})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.Contains(string(b), `"target_date":"2024-12-31"`) {
		t.Errorf("json = %s", b)
	}
	b, _ = json.Marshal(HealthGoal{ID: "g1"})
	if !strings.Contains(string(b), `"target_date":null`) {
		t.Errorf("json = %s", b)
	}
}
