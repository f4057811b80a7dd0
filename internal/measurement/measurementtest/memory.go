// Package measurementtest provides an in-memory measurement repository for tests.
package measurementtest

import (
	"context"
	"sort"
	"sync"

	"healthtrack/backend/internal/measurement/domain"
)

// Repo is an in-memory measurement repository with the same ordering as the Postgres one.
type Repo struct {
	mu sync.Mutex
	m  map[string]*domain.Measurement
}

// NewRepo returns a Repo holding ms.
func NewRepo(ms ...*domain.Measurement) *Repo {
	r := &Repo{m: map[string]*domain.Measurement{}}
	for _, m := range ms {
		r.m[m.ID] = m
	}
	return r
}

func (r *Repo) Create(ctx context.Context, m *domain.Measurement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m2 := *m
	r.m[m.ID] = &m2
	return nil
}

func (r *Repo) GetByID(ctx context.Context, id string) (*domain.Measurement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.m[id]
	if !ok {
		return nil, nil
	}
	m2 := *m
	return &m2, nil
}

func (r *Repo) ListByUser(ctx context.Context, userID string, f domain.Filter) ([]*domain.Measurement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Measurement
	for _, m := range r.m {
		if m.UserID != userID {
			continue
		}
		if !f.From.IsZero() && m.Date.Before(f.From) {
			continue
		}
		if !f.To.IsZero() && m.Date.After(f.To) {
			continue
		}
		m2 := *m
		out = append(out, &m2)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r *Repo) Latest(ctx context.Context, userID string) (*domain.Measurement, error) {
	ms, _ := r.ListByUser(ctx, userID, domain.Filter{Limit: 1})
	if len(ms) == 0 {
		return nil, nil
	}
	return ms[0], nil
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
	for id, m := range r.m {
		if m.UserID == userID {
			delete(r.m, id)
		}
	}
	return nil
}
