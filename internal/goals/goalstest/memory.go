// Package goalstest provides an in-memory goals repository for tests.
package goalstest

import (
	"context"
	"sync"

	"healthtrack/backend/internal/goals/domain"
)

// Repo is an in-memory goals repository.
type Repo struct {
	mu sync.Mutex
	m  map[string]*domain.UserGoals
}

func NewRepo(goals ...*domain.UserGoals) *Repo {
	r := &Repo{m: map[string]*domain.UserGoals{}}
	for _, g := range goals {
		r.m[g.UserID] = g
	}
	return r
}

func (r *Repo) GetByUserID(ctx context.Context, userID string) (*domain.UserGoals, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.m[userID]
	if !ok {
		return nil, nil
	}
	g2 := *g
	g2.DietaryRestrictions = append([]string(nil), g.DietaryRestrictions...)
	return &g2, nil
}

func (r *Repo) Upsert(ctx context.Context, g *domain.UserGoals) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	g2 := *g
	r.m[g.UserID] = &g2
	return nil
}

func (r *Repo) DeleteByUser(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.m, userID)
	return nil
}
