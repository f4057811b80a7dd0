package repository

import (
	"context"

	"healthtrack/backend/internal/measurement/domain"
)

// Repository defines persistence for BMI measurements. Lists are ordered newest first.
type Repository interface {
	Create(ctx context.Context, m *domain.Measurement) error
	GetByID(ctx context.Context, id string) (*domain.Measurement, error)
	ListByUser(ctx context.Context, userID string, f domain.Filter) ([]*domain.Measurement, error)
	Latest(ctx context.Context, userID string) (*domain.Measurement, error)
	Delete(ctx context.Context, id string) error
	DeleteByUser(ctx context.Context, userID string) error
}
