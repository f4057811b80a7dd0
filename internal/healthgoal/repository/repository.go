package repository

import (
	"context"

	"healthtrack/backend/internal/healthgoal/domain"
)

// Repository defines persistence for health goals. Lists are ordered newest first.
type Repository interface {
	Create(ctx context.Context, g *domain.HealthGoal) error
	GetByID(ctx context.Context, id string) (*domain.HealthGoal, error)
	ListByUser(ctx context.Context, userID string, activeOnly bool) ([]*domain.HealthGoal, error)
	DeactivateByType(ctx context.Context, userID string, goalType domain.GoalType) error
	Delete(ctx context.Context, id string) error
	DeleteByUser(ctx context.Context, userID string) error
}
