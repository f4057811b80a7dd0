package domain

import (
	"math"
	"testing"
	"time"

	measurementdomain "healthtrack/backend/internal/measurement/domain"
)

func series(bmis ...float64) []*measurementdomain.Measurement {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]*measurementdomain.Measurement, len(bmis))
	for i, b := range bmis {
		out[i] = &measurementdomain.Measurement{Date: start.AddDate(0, 0, i), BMI: b, WeightKg: b * 3}
	}
	return out
}

func TestAnalyze_TooFew(t *testing.T) {
	in, facts := Analyze(series(24), Timeframe7d)
	if len(in.Trends) != 0 || len(in.Patterns) != 0 {
		t.Errorf("insights = %+v, want nothing computed", in)
	}
	if facts.MeasurementCount != 1 || facts.LatestBMI == nil {
		t.Errorf("facts = %+v", facts)
	}
	if _, ok := facts.Input()["consistency"]; ok {
		t.Error("consistency should be omitted from the policy input")
	}
}

func TestAnalyze_Trends(t *testing.T) {
	// 7 older at 25, 7 recent at 26: +4% BMI, +3 kg.
	bmis := []float64{25, 25, 25, 25, 25, 25, 25, 26, 26, 26, 26, 26, 26, 26}
	in, facts := Analyze(series(bmis...), Timeframe30d)
	if len(in.Trends) != 2 {
		t.Fatalf("trends = %+v", in.Trends)
	}
	bmi := in.Trends[0]
	if bmi.Metric != "BMI" || bmi.Change != 4 || bmi.Direction != "increasing" || bmi.Significance != "high" {
		t.Errorf("bmi trend = %+v", bmi)
	}
	w := in.Trends[1]
	if w.Metric != "Weight" || w.Change != 3 || w.Significance != "high" {
		t.Errorf("weight trend = %+v", w)
	}
	if math.Abs(*facts.BMIChange-4) > 1e-9 {
		t.Errorf("BMIChange = %v", *facts.BMIChange)
	}
	// 14 of 30 days.
	if facts.Consistency != "low" || facts.Stability != "moderate" {
		t.Errorf("patterns = %q %q", facts.Consistency, facts.Stability)
	}
}

func TestAnalyze_SmallChangeIsNotATrend(t *testing.T) {
	in, facts := Analyze(series(25, 25, 25, 25, 25, 25, 25, 25.05), Timeframe30d)
	for _, tr := range in.Trends {
		if tr.Metric == "BMI" {
			t.Errorf("unexpected BMI trend %+v", tr)
		}
	}
	if facts.BMIChange == nil {
		t.Fatal("BMIChange should be computed with two windows")
	}
	if facts.Stability != "high" {
		t.Errorf("Stability = %q, want high", facts.Stability)
	}
}

func TestConsistencyLevels(t *testing.T) {
	testCases := []struct {
		n    int
		tf   Timeframe
		want string
	}{
		{7, Timeframe7d, "excellent"},
		{5, Timeframe7d, "good"},
		{3, Timeframe7d, "low"},
		{30, Timeframe90d, "low"},
	}
	for _, tc := range testCases {
		bmis := make([]float64, tc.n)
		for i := range bmis {
			bmis[i] = 22
		}
		_, facts := Analyze(series(bmis...), tc.tf)
		if facts.Consistency != tc.want {
			t.Errorf("%d in %s = %q, want %q", tc.n, tc.tf, facts.Consistency, tc.want)
		}
	}
}

func TestTimeframeDays(t *testing.T) {
	if Timeframe1y.Days() != 365 || Timeframe("2w").Days() != 0 {
		t.Error("unexpected Days")
	}
}

func TestAgeRangeAndPosition(t *testing.T) {
	ages := map[int]string{18: "18-24", 24: "18-24", 25: "25-34", 64: "55-64", 65: "65+", 90: "65+"}
	for age, want := range ages {
		if got, ok := AgeRange(age); !ok || got != want {
			t.Errorf("AgeRange(%d) = %q, %v, want %q", age, got, ok, want)
		}
	}
	if _, ok := AgeRange(17); ok {
		t.Error("AgeRange(17) should have no bucket")
	}

	b := Benchmark{BMIP25: 22, BMIP50: 24.5, BMIP75: 27}
	positions := []struct {
		bmi  float64
		pct  int
		name string
	}{
		{21, 25, "bottom"},
		{22, 25, "bottom"},
		{24, 50, "lower-middle"},
		{27, 75, "upper-middle"},
		{30, 100, "top"},
	}
	for _, p := range positions {
		pct, name := Position(p.bmi, b)
		if pct != p.pct || name != p.name {
			t.Errorf("Position(%v) = %d %q, want %d %q", p.bmi, pct, name, p.pct, p.name)
		}
	}
}
