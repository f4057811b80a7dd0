// Package healthgoaltest provides an in-memory health goal repository for tests.
package healthgoaltest

import (
	"context"
	"sort"
	"sync"

	"healthtrack/backend/internal/healthgoal/domain"
)

// Repo is an in-memory health goal repository.
type Repo struct {
	mu sync.Mutex
	m  map[string]*domain.HealthGoal
}

func NewRepo() *Repo {
	return &Repo{m: map[string]*domain.HealthGoal{}}
}

func (r *Repo) Create(ctx context.Context, g *domain.HealthGoal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	g2 := *g
	r.m[g.ID] = &g2
	return nil
}

func (r *Repo) GetByID(ctx context.Context, id string) (*domain.HealthGoal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.m[id]
	if !ok {
		return nil, nil
	}
	g2 := *g
	return &g2, nil
}

func (r *Repo) ListByUser(ctx context.Context, userID string, activeOnly bool) ([]*domain.HealthGoal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.HealthGoal
	for _, g := range r.m {
		if g.UserID != userID || (activeOnly && !g.IsActive) {
			continue
		}
		g2 := *g
		out = append(out, &g2)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *Repo) DeactivateByType(ctx context.Context, userID string, goalType domain.GoalType) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, g := range r.m {
		if g.UserID == userID && g.GoalType == goalType {
			g.IsActive = false
		}
	}
	return nil
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.m, id)
	return nil
}

func (r *Repo) DeleteByUser(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, g := range r.m {
		if g.UserID == userID {
			delete(r.m, id)
		}
	}
	return nil
}
