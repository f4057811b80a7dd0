package repository

import (
	"context"

	"healthtrack/backend/internal/profile/domain"
)

// Repository defines persistence for user profiles.
type Repository interface {
	GetByUserID(ctx context.Context, userID string) (*domain.Profile, error)
	Upsert(ctx context.Context, p *domain.Profile) error
	DeleteByUser(ctx context.Context, userID string) error
}
