package repository

import (
	"context"
	"time"

	"healthtrack/backend/internal/nutrition/domain"
)

// Repository persists nutrition logs, their daily summaries and meal presets.
type Repository interface {
	CreateLog(ctx context.Context, l *domain.Log) error
	GetLog(ctx context.Context, id string) (*domain.Log, error)
	// ListLogs returns the user's logs for date, or for every date when date is zero, newest first.
	ListLogs(ctx context.Context, userID string, date time.Time) ([]*domain.Log, error)
	DeleteLog(ctx context.Context, id string) error
	GetSummary(ctx context.Context, userID string, date time.Time) (*domain.DailySummary, error)
	UpsertSummary(ctx context.Context, s *domain.DailySummary) error
	CreatePreset(ctx context.Context, p *domain.Preset) error
	GetPreset(ctx context.Context, id string) (*domain.Preset, error)
	// ListPresets returns the user's presets for mealType, or for every meal when mealType is empty, newest first.
	ListPresets(ctx context.Context, userID string, mealType domain.MealType) ([]*domain.Preset, error)
	DeletePreset(ctx context.Context, id string) error
	// DeleteByUser removes every log, summary and preset of the user.
	DeleteByUser(ctx context.Context, userID string) error
}
