package repository

import (
	"context"

	"healthtrack/backend/internal/goals/domain"
)

// Repository defines persistence for user goals and their nutrition targets.
type Repository interface {
	GetByUserID(ctx context.Context, userID string) (*domain.UserGoals, error)
	Upsert(ctx context.Context, g *domain.UserGoals) error
	DeleteByUser(ctx context.Context, userID string) error
}
