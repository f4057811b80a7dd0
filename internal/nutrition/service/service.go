package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"healthtrack/backend/internal/healthcalc"
	"healthtrack/backend/internal/nutrition/domain"
	"healthtrack/backend/internal/platform/validate"
	"healthtrack/backend/internal/telemetry"
	telemetrydomain "healthtrack/backend/internal/telemetry/domain"
)

var (
	// ErrLogNotFound is returned for a missing log or another user's log.
	ErrLogNotFound = errors.New("nutrition log not found")
	// ErrPresetNotFound is returned for a missing preset or another user's preset.
	ErrPresetNotFound = errors.New("meal preset not found")
)

// NutritionRepo is the minimal nutrition repository needed by the service.
type NutritionRepo interface {
	CreateLog(ctx context.Context, l *domain.Log) error
	GetLog(ctx context.Context, id string) (*domain.Log, error)
	ListLogs(ctx context.Context, userID string, date time.Time) ([]*domain.Log, error)
	DeleteLog(ctx context.Context, id string) error
	GetSummary(ctx context.Context, userID string, date time.Time) (*domain.DailySummary, error)
	UpsertSummary(ctx context.Context, s *domain.DailySummary) error
	CreatePreset(ctx context.Context, p *domain.Preset) error
	GetPreset(ctx context.Context, id string) (*domain.Preset, error)
	ListPresets(ctx context.Context, userID string, mealType domain.MealType) ([]*domain.Preset, error)
	DeletePreset(ctx context.Context, id string) error
}

// TargetsProvider resolves the user's daily nutrition targets.
type TargetsProvider interface {
	Targets(ctx context.Context, userID string) (healthcalc.Targets, error)
}

// NutritionService records food logs and keeps the daily summaries in step with them.
type NutritionService struct {
	repo    NutritionRepo
	targets TargetsProvider
	events  telemetry.EventEmitter
	nowF    func() time.Time
}

// NewNutritionService returns a NutritionService. targets may be nil, in which case the
// fallback targets are used. events may be nil.
func NewNutritionService(repo NutritionRepo, targets TargetsProvider, events telemetry.EventEmitter) *NutritionService {
	return &NutritionService{repo: repo, targets: targets, events: events, nowF: time.Now}
}

// Log validates and stores one food entry, then refreshes that day's summary.
func (s *NutritionService) Log(ctx context.Context, userID string, in domain.LogInput) (*domain.Log, error) {
	now := s.nowF().UTC()
	date, err := in.Validate(now)
	if err != nil {
		return nil, err
	}
	l, err := s.createLog(ctx, userID, date, in, now)
	if err != nil {
		return nil, err
	}
	if _, err := s.refreshSummary(ctx, userID, date); err != nil {
		return nil, err
	}
	telemetry.EmitAsync(s.events, ctx, telemetry.NewEvent(telemetrydomain.EventNutritionLogged, userID, map[string]any{
		"log_id":    l.ID,
		"meal_type": l.MealType,
		"date":      date.Format(domain.DateLayout),
		"calories":  l.Calories,
	}))
	return l, nil
}

// List returns the user's logs for date (YYYY-MM-DD), or every log when date is empty.
func (s *NutritionService) List(ctx context.Context, userID, date string) ([]*domain.Log, error) {
	var d time.Time
	if date != "" {
		var err error
		if d, err = parseDate(date); err != nil {
			return nil, err
		}
	}
	logs, err := s.repo.ListLogs(ctx, userID, d)
	if err != nil {
		return nil, err
	}
	if logs == nil {
		logs = []*domain.Log{}
	}
	return logs, nil
}

// Delete removes one of the user's logs and refreshes that day's summary.
func (s *NutritionService) Delete(ctx context.Context, userID, id string) error {
	l, err := s.repo.GetLog(ctx, id)
	if err != nil {
		return err
	}
	if l == nil || l.UserID != userID {
		return ErrLogNotFound
	}
	if err := s.repo.DeleteLog(ctx, id); err != nil {
		return err
	}
	_, err = s.refreshSummary(ctx, userID, l.Date)
	return err
}

// Summary returns the day's totals against the user's targets. date defaults to today.
func (s *NutritionService) Summary(ctx context.Context, userID, date string) (*domain.DailyProgress, error) {
	now := s.nowF().UTC()
	d := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if date != "" {
		var err error
		if d, err = parseDate(date); err != nil {
			return nil, err
		}
	}
	sum, err := s.repo.GetSummary(ctx, userID, d)
	if err != nil {
		return nil, err
	}
	if sum == nil {
		sum = &domain.DailySummary{UserID: userID, Date: d}
	}
	targets := healthcalc.FallbackTargets
	if s.targets != nil {
		if targets, err = s.targets.Targets(ctx, userID); err != nil {
			return nil, fmt.Errorf("resolve targets: %w", err)
		}
	}
	p := domain.Measure(*sum, targets)
	return &p, nil
}

func (s *NutritionService) createLog(ctx context.Context, userID string, date time.Time, in domain.LogInput, now time.Time) (*domain.Log, error) {
	l := &domain.Log{
		ID:        uuid.New().String(),
		UserID:    userID,
		Date:      date,
		MealType:  in.MealType,
		FoodName:  in.FoodName,
		Quantity:  in.Quantity,
		Unit:      in.Unit,
		Calories:  in.Calories,
		Protein:   in.Protein,
		Carbs:     in.Carbs,
		Fat:       in.Fat,
		Fiber:     in.Fiber,
		Sugar:     in.Sugar,
		Sodium:    in.Sodium,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.CreateLog(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

// ListPresets returns the user's presets for mealType, or every preset when mealType is empty.
func (s *NutritionService) ListPresets(ctx context.Context, userID, mealType string) ([]*domain.Preset, error) {
	if mealType != "" {
		var c validate.Checker
		c.OneOf("meal_type", mealType, string(domain.MealBreakfast), string(domain.MealLunch), string(domain.MealDinner), string(domain.MealSnack))
		if err := c.Err(); err != nil {
			return nil, err
		}
	}
	presets, err := s.repo.ListPresets(ctx, userID, domain.MealType(mealType))
	if err != nil {
		return nil, err
	}
	if presets == nil {
		presets = []*domain.Preset{}
	}
	return presets, nil
}

// CreatePreset validates and stores a saved meal with its totals.
func (s *NutritionService) CreatePreset(ctx context.Context, userID string, in domain.PresetInput) (*domain.Preset, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	now := s.nowF().UTC()
	p := &domain.Preset{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      in.Name,
		MealType:  in.MealType,
		Foods:     in.Foods,
		CreatedAt: now,
		UpdatedAt: now,
	}
	p.Total()
	if err := s.repo.CreatePreset(ctx, p); err != nil {
		return nil, err
	}
	telemetry.EmitAsync(s.events, ctx, telemetry.NewEvent(telemetrydomain.EventMealPresetCreated, userID, map[string]any{
		"preset_id": p.ID,
		"meal_type": p.MealType,
		"foods":     len(p.Foods),
	}))
	return p, nil
}

// ApplyPreset logs every food of one of the user's presets on a single day and refreshes
// that day's summary. Nothing is logged unless all foods validate.
func (s *NutritionService) ApplyPreset(ctx context.Context, userID, id string, in domain.ApplyInput) ([]*domain.Log, error) {
	p, err := s.ownPreset(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	meal := p.MealType
	if in.MealType != "" {
		meal = in.MealType
	}
	now := s.nowF().UTC()
	inputs := make([]domain.LogInput, len(p.Foods))
	var date time.Time
	for i, f := range p.Foods {
		inputs[i] = f.LogInput(meal, in.Date)
		if date, err = inputs[i].Validate(now); err != nil {
			return nil, err
		}
	}
	logs := make([]*domain.Log, 0, len(inputs))
	for _, li := range inputs {
		l, err := s.createLog(ctx, userID, date, li, now)
		if err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	sum, err := s.refreshSummary(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	telemetry.EmitAsync(s.events, ctx, telemetry.NewEvent(telemetrydomain.EventMealPresetApplied, userID, map[string]any{
		"preset_id":      p.ID,
		"meal_type":      meal,
		"date":           date.Format(domain.DateLayout),
		"logs":           len(logs),
		"total_calories": sum.TotalCalories,
	}))
	return logs, nil
}

// DeletePreset removes one of the user's presets. Logs made from it are kept.
func (s *NutritionService) DeletePreset(ctx context.Context, userID, id string) error {
	if _, err := s.ownPreset(ctx, userID, id); err != nil {
		return err
	}
	return s.repo.DeletePreset(ctx, id)
}

func (s *NutritionService) ownPreset(ctx context.Context, userID, id string) (*domain.Preset, error) {
	p, err := s.repo.GetPreset(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil || p.UserID != userID {
		return nil, ErrPresetNotFound
	}
	return p, nil
}

func (s *NutritionService) refreshSummary(ctx context.Context, userID string, date time.Time) (*domain.DailySummary, error) {
	logs, err := s.repo.ListLogs(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	now := s.nowF().UTC()
	sum := domain.Summarize(userID, date, logs)
	sum.ID = uuid.New().String()
	sum.CreatedAt, sum.UpdatedAt = now, now
	if err := s.repo.UpsertSummary(ctx, &sum); err != nil {
		return nil, fmt.Errorf("upsert daily summary: %w", err)
	}
	return &sum, nil
}

func parseDate(s string) (time.Time, error) {
	d, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		var c validate.Checker
		c.Add("date", "must be YYYY-MM-DD")
		return time.Time{}, c.Err()
	}
	return d, nil
}
