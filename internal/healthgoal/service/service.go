package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"healthtrack/backend/internal/healthgoal/domain"
	measurementdomain "healthtrack/backend/internal/measurement/domain"
	"healthtrack/backend/internal/platform/validate"
	"healthtrack/backend/internal/telemetry"
	telemetrydomain "healthtrack/backend/internal/telemetry/domain"
)

// ErrGoalNotFound is returned for a missing goal or another user's goal.
var ErrGoalNotFound = errors.New("health goal not found")

// GoalRepo is the minimal health goal repository needed by the service.
type GoalRepo interface {
	Create(ctx context.Context, g *domain.HealthGoal) error
	GetByID(ctx context.Context, id string) (*domain.HealthGoal, error)
	ListByUser(ctx context.Context, userID string, activeOnly bool) ([]*domain.HealthGoal, error)
	DeactivateByType(ctx context.Context, userID string, goalType domain.GoalType) error
	Delete(ctx context.Context, id string) error
}

// MeasurementLister supplies the measurement series progress is computed from.
type MeasurementLister interface {
	ListByUser(ctx context.Context, userID string, f measurementdomain.Filter) ([]*measurementdomain.Measurement, error)
}

// CreateInput is a new goal as submitted. TargetDate is YYYY-MM-DD or empty.
type CreateInput struct {
	GoalType    domain.GoalType `json:"goal_type"`
	TargetValue float64         `json:"target_value"`
	TargetDate  string          `json:"target_date"`
}

// HealthGoalService manages BMI, weight and body fat goals.
type HealthGoalService struct {
	repo         GoalRepo
	measurements MeasurementLister
	events       telemetry.EventEmitter
	nowF         func() time.Time
}

// NewHealthGoalService returns a HealthGoalService. events may be nil.
func NewHealthGoalService(repo GoalRepo, measurements MeasurementLister, events telemetry.EventEmitter) *HealthGoalService {
	return &HealthGoalService{repo: repo, measurements: measurements, events: events, nowF: time.Now}
}

// Create stores a new active goal. An earlier active goal of the same type is deactivated.
func (s *HealthGoalService) Create(ctx context.Context, userID string, in CreateInput) (*domain.HealthGoal, error) {
	now := s.nowF().UTC()
	var c validate.Checker
	min, max, ok := in.GoalType.TargetRange()
	if !ok {
		c.Add("goal_type", "must be bmi, weight or body_fat")
	} else {
		c.Range("target_value", in.TargetValue, min, max)
	}
	var targetDate *time.Time
	if in.TargetDate != "" {
		d, err := time.Parse(domain.DateLayout, in.TargetDate)
		switch {
		case err != nil:
			c.Add("target_date", "must be YYYY-MM-DD")
		case d.Before(time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)):
			c.Add("target_date", "must not be in the past")
		default:
			targetDate = &d
		}
	}
	if err := c.Err(); err != nil {
		return nil, err
	}

	if err := s.repo.DeactivateByType(ctx, userID, in.GoalType); err != nil {
		return nil, err
	}
	g := &domain.HealthGoal{
		ID:          uuid.New().String(),
		UserID:      userID,
		GoalType:    in.GoalType,
		TargetValue: in.TargetValue,
		TargetDate:  targetDate,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, g); err != nil {
		return nil, err
	}
	telemetry.EmitAsync(s.events, ctx, telemetry.NewEvent(telemetrydomain.EventHealthGoalCreated, userID, map[string]any{
		"goal_id":   g.ID,
		"goal_type": g.GoalType,
	}))
	return g, nil
}

// List returns the user's goals with progress against the measurement history.
func (s *HealthGoalService) List(ctx context.Context, userID string, activeOnly bool) ([]domain.Progress, error) {
	goals, err := s.repo.ListByUser(ctx, userID, activeOnly)
	if err != nil {
		return nil, err
	}
	if len(goals) == 0 {
		return []domain.Progress{}, nil
	}
	ms, err := s.measurements.ListByUser(ctx, userID, measurementdomain.Filter{})
	if err != nil {
		return nil, err
	}
	series := map[domain.GoalType][]domain.Point{}
	// ms is newest first; series are built oldest first.
	for i := len(ms) - 1; i >= 0; i-- {
		m := ms[i]
		series[domain.GoalTypeBMI] = append(series[domain.GoalTypeBMI], domain.Point{Date: m.Date, Value: m.BMI})
		series[domain.GoalTypeWeight] = append(series[domain.GoalTypeWeight], domain.Point{Date: m.Date, Value: m.WeightKg})
		if m.BodyFatPercent != nil {
			series[domain.GoalTypeBodyFat] = append(series[domain.GoalTypeBodyFat], domain.Point{Date: m.Date, Value: *m.BodyFatPercent})
		}
	}
	now := s.nowF()
	out := make([]domain.Progress, len(goals))
	for i, g := range goals {
		out[i] = domain.Evaluate(*g, series[g.GoalType], now)
	}
	return out, nil
}

// Delete removes one of the user's goals.
func (s *HealthGoalService) Delete(ctx context.Context, userID, id string) error {
	g, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if g == nil || g.UserID != userID {
		return ErrGoalNotFound
	}
	return s.repo.Delete(ctx, id)
}
