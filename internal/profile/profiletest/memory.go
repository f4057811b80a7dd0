// Package profiletest provides an in-memory profile repository for tests.
package profiletest

import (
	"context"
	"sync"

	"healthtrack/backend/internal/profile/domain"
)

// Repo is an in-memory profile repository.
type Repo struct {
	mu sync.Mutex
	m  map[string]*domain.Profile
}

// NewRepo returns a Repo holding profiles.
func NewRepo(profiles ...*domain.Profile) *Repo {
	r := &Repo{m: map[string]*domain.Profile{}}
	for _, p := range profiles {
		r.m[p.UserID] = p
	}
	return r
}

func (r *Repo) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.m[userID]
	if !ok {
		return nil, nil
	}
	p2 := *p
	return &p2, nil
}

func (r *Repo) Upsert(ctx context.Context, p *domain.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p2 := *p
	r.m[p.UserID] = &p2
	return nil
}

func (r *Repo) DeleteByUser(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.m, userID)
	return nil
}
