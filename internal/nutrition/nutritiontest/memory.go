// Package nutritiontest provides an in-memory nutrition repository for tests.
package nutritiontest

import (
	"context"
	"sort"
	"sync"
	"time"

	"healthtrack/backend/internal/nutrition/domain"
)

// Repo is an in-memory nutrition repository.
type Repo struct {
	mu        sync.Mutex
	logs      map[string]*domain.Log
	summaries map[string]*domain.DailySummary
	presets   map[string]*domain.Preset
}

func NewRepo() *Repo {
	return &Repo{logs: map[string]*domain.Log{}, summaries: map[string]*domain.DailySummary{}, presets: map[string]*domain.Preset{}}
}

func summaryKey(userID string, date time.Time) string {
	return userID + "|" + date.Format(domain.DateLayout)
}

func (r *Repo) CreateLog(ctx context.Context, l *domain.Log) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	l2 := *l
	r.logs[l.ID] = &l2
	return nil
}

func (r *Repo) GetLog(ctx context.Context, id string) (*domain.Log, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.logs[id]
	if !ok {
		return nil, nil
	}
	l2 := *l
	return &l2, nil
}

func (r *Repo) ListLogs(ctx context.Context, userID string, date time.Time) ([]*domain.Log, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Log
	for _, l := range r.logs {
		if l.UserID != userID || (!date.IsZero() && !l.Date.Equal(date)) {
			continue
		}
		l2 := *l
		out = append(out, &l2)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *Repo) DeleteLog(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.logs, id)
	return nil
}

func (r *Repo) GetSummary(ctx context.Context, userID string, date time.Time) (*domain.DailySummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.summaries[summaryKey(userID, date)]
	if !ok {
		return nil, nil
	}
	s2 := *s
	return &s2, nil
}

func (r *Repo) UpsertSummary(ctx context.Context, s *domain.DailySummary) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := summaryKey(s.UserID, s.Date)
	s2 := *s
	if old, ok := r.summaries[k]; ok {
		s2.ID, s2.CreatedAt = old.ID, old.CreatedAt
	}
	r.summaries[k] = &s2
	return nil
}

func (r *Repo) DeleteByUser(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, l := range r.logs {
		if l.UserID == userID {
			delete(r.logs, id)
		}
	}
	for k, s := range r.summaries {
		if s.UserID == userID {
			delete(r.summaries, k)
		}
	}
	for id, p := range r.presets {
		if p.UserID == userID {
			delete(r.presets, id)
		}
	}
	return nil
}

func copyPreset(p *domain.Preset) *domain.Preset {
	p2 := *p
	p2.Foods = append([]domain.PresetFood(nil), p.Foods...)
	return &p2
}

func (r *Repo) CreatePreset(ctx context.Context, p *domain.Preset) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.presets[p.ID] = copyPreset(p)
	return nil
}

func (r *Repo) GetPreset(ctx context.Context, id string) (*domain.Preset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.presets[id]
	if !ok {
		return nil, nil
	}
	return copyPreset(p), nil
}

func (r *Repo) ListPresets(ctx context.Context, userID string, mealType domain.MealType) ([]*domain.Preset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Preset
	for _, p := range r.presets {
		if p.UserID != userID || (mealType != "" && p.MealType != mealType) {
			continue
		}
		out = append(out, copyPreset(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *Repo) DeletePreset(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.presets, id)
	return nil
}

// PresetLen returns the number of stored presets.
func (r *Repo) PresetLen() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.presets)
}

// Len returns the number of stored logs.
func (r *Repo) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.logs)
}
