package repository

import (
	"context"

	"healthtrack/backend/internal/identity/domain"
)

// Repository defines persistence for identities.
type Repository interface {
	GetByUserAndProvider(ctx context.Context, userID string, provider domain.IdentityProvider) (*domain.Identity, error)
	Create(ctx context.Context, i *domain.Identity) error
	DeleteByUser(ctx context.Context, userID string) error
}
