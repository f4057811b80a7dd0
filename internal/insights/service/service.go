package service

import (
	"context"
	"time"

	"healthtrack/backend/internal/insights/domain"
	measurementdomain "healthtrack/backend/internal/measurement/domain"
	"healthtrack/backend/internal/platform/validate"
	profiledomain "healthtrack/backend/internal/profile/domain"
)

// MeasurementLister supplies the measurement history insights are computed from.
type MeasurementLister interface {
	ListByUser(ctx context.Context, userID string, f measurementdomain.Filter) ([]*measurementdomain.Measurement, error)
	Latest(ctx context.Context, userID string) (*measurementdomain.Measurement, error)
}

// ProfileReader supplies age and gender for benchmark lookup.
type ProfileReader interface {
	GetByUserID(ctx context.Context, userID string) (*profiledomain.Profile, error)
}

// BenchmarkReader reads population benchmarks.
type BenchmarkReader interface {
	Get(ctx context.Context, ageRange, gender string) (*domain.Benchmark, error)
	List(ctx context.Context) ([]*domain.Benchmark, error)
}

// Recommender turns insight facts into recommendation texts.
type Recommender interface {
	Recommend(ctx context.Context, input map[string]any) ([]string, error)
}

// InsightsService analyzes measurement history and compares it with population benchmarks.
type InsightsService struct {
	measurements MeasurementLister
	profiles     ProfileReader
	benchmarks   BenchmarkReader
	recommender  Recommender
	nowF         func() time.Time
}

func NewInsightsService(measurements MeasurementLister, profiles ProfileReader, benchmarks BenchmarkReader, recommender Recommender) *InsightsService {
	return &InsightsService{
		measurements: measurements,
		profiles:     profiles,
		benchmarks:   benchmarks,
		recommender:  recommender,
		nowF:         time.Now,
	}
}

// Insights analyzes the user's measurements within timeframe (7d, 30d, 90d or 1y; 30d when empty).
func (s *InsightsService) Insights(ctx context.Context, userID, timeframe string) (*domain.Insights, error) {
	tf := domain.Timeframe(timeframe)
	if tf == "" {
		tf = domain.DefaultTimeframe
	}
	if tf.Days() == 0 {
		var c validate.Checker
		c.OneOf("timeframe", timeframe, string(domain.Timeframe7d), string(domain.Timeframe30d),
			string(domain.Timeframe90d), string(domain.Timeframe1y))
		return nil, c.Err()
	}
	now := s.nowF().UTC()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1-tf.Days())
	ms, err := s.measurements.ListByUser(ctx, userID, measurementdomain.Filter{From: from})
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(ms)-1; i < j; i, j = i+1, j-1 {
		ms[i], ms[j] = ms[j], ms[i]
	}
	out, facts := domain.Analyze(ms, tf)
	recs, err := s.recommender.Recommend(ctx, facts.Input())
	if err != nil {
		return nil, err
	}
	out.Recommendations = recs
	return &out, nil
}

// Benchmarks compares the user's latest BMI with the benchmark for their age range and gender.
// Missing profile data or measurements leave the comparison fields empty.
func (s *InsightsService) Benchmarks(ctx context.Context, userID string) (*domain.Comparison, error) {
	all, err := s.benchmarks.List(ctx)
	if err != nil {
		return nil, err
	}
	out := &domain.Comparison{Benchmarks: make([]domain.Benchmark, 0, len(all))}
	for _, b := range all {
		out.Benchmarks = append(out.Benchmarks, *b)
	}

	latest, err := s.measurements.Latest(ctx, userID)
	if err != nil {
		return nil, err
	}
	if latest != nil {
		bmi := latest.Rounded().BMI
		out.CurrentBMI = &bmi
	}

	p, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p == nil || p.Age == nil || p.Gender == "" {
		return out, nil
	}
	ageRange, ok := domain.AgeRange(*p.Age)
	if !ok {
		return out, nil
	}
	out.AgeRange, out.Gender = ageRange, string(p.Gender)
	b, err := s.benchmarks.Get(ctx, ageRange, string(p.Gender))
	if err != nil || b == nil {
		return out, err
	}
	out.Benchmark = b
	if out.CurrentBMI != nil {
		pct, pos := domain.Position(*out.CurrentBMI, *b)
		healthy := *out.CurrentBMI >= b.HealthyRangeMin && *out.CurrentBMI <= b.HealthyRangeMax
		out.Percentile, out.Position, out.InHealthy = &pct, pos, &healthy
	}
	return out, nil
}
