package engine

import (
	"context"
	"strings"
	"testing"
)

func newEngine(t *testing.T) *OPAEngine {
	t.Helper()
	e, err := NewOPAEngine(context.Background())
	if err != nil {
		t.Fatalf("NewOPAEngine: %v", err)
	}
	return e
}

func TestOPAEngine_HealthCheck(t *testing.T) {
	if err := newEngine(t).HealthCheck(context.Background()); err != nil {
		t.Fatalf("HealthCheck: %v", err)
	}
}

func TestOPAEngine_Recommend(t *testing.T) {
	e := newEngine(t)
	testCases := []struct {
		name  string
		input map[string]any
		want  []string
	}{
		{
			name:  "too few measurements",
			input: map[string]any{"measurement_count": 1, "latest_bmi": 31.0},
			want:  []string{"Start tracking"},
		},
		{
			name: "gaining with excellent tracking",
			input: map[string]any{
				"measurement_count": 14, "bmi_change": 2.5, "consistency": "excellent",
				"stability": "low", "latest_bmi": 27.0,
			},
			want: []string{"BMI has been increasing", "Excellent tracking", "BMI fluctuations", "overweight"},
		},
		{
			name: "losing in the healthy range",
			input: map[string]any{
				"measurement_count": 5, "bmi_change": -1.5, "consistency": "low",
				"stability": "high", "latest_bmi": 22.0,
			},
			want: []string{"trending downward", "More frequent tracking", "healthy range"},
		},
		{
			name:  "underweight without trend",
			input: map[string]any{"measurement_count": 3, "consistency": "good", "latest_bmi": 17.0},
			want:  []string{"Try tracking more regularly", "below the healthy range"},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := e.Recommend(context.Background(), tc.input)
			if err != nil {
				t.Fatalf("Recommend: %v", err)
			}
			if len(got) != len(tc.want) {
				t.Fatalf("Recommend = %q, want %d items", got, len(tc.want))
			}
			for i, w := range tc.want {
				if !strings.Contains(got[i], w) {
					t.Errorf("Recommend[%d] = %q, want it to contain %q", i, got[i], w)
				}
			}
		})
	}
}

func TestNewOPAEngine_CustomPolicy(t *testing.T) {
	policy := `package healthtrack.insights

recommendations contains {"priority": 1, "text": "Drink water."} if true
`
	e, err := NewOPAEngine(context.Background(), policy)
	if err != nil {
		t.Fatalf("NewOPAEngine: %v", err)
	}
	got, err := e.Recommend(context.Background(), map[string]any{})
	if err != nil || len(got) != 1 || got[0] != "Drink water." {
		t.Errorf("Recommend = %q, %v", got, err)
	}
}

func TestNewOPAEngine_InvalidPolicy(t *testing.T) {
	if _, err := NewOPAEngine(context.Background(), "package healthtrack.insights\n\nrecommendations contains"); err == nil {
		t.Error("NewOPAEngine should fail on a syntax error")
	}
}
