// Package insightstest provides an in-memory benchmark repository for tests.
package insightstest

import (
	"context"
	"sort"
	"sync"

	"healthtrack/backend/internal/insights/domain"
)

// BenchmarkRepo is an in-memory benchmark repository keyed by age range and gender.
type BenchmarkRepo struct {
	mu sync.Mutex
	m  map[string]*domain.Benchmark
}

func NewBenchmarkRepo(bs ...*domain.Benchmark) *BenchmarkRepo {
	r := &BenchmarkRepo{m: map[string]*domain.Benchmark{}}
	for _, b := range bs {
		_ = r.Upsert(context.Background(), b)
	}
	return r
}

func key(ageRange, gender string) string { return ageRange + "|" + gender }

func (r *BenchmarkRepo) Get(ctx context.Context, ageRange, gender string) (*domain.Benchmark, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.m[key(ageRange, gender)]
	if !ok {
		return nil, nil
	}
	b2 := *b
	return &b2, nil
}

func (r *BenchmarkRepo) List(ctx context.Context) ([]*domain.Benchmark, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Benchmark, 0, len(r.m))
	for _, b := range r.m {
		b2 := *b
		out = append(out, &b2)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AgeRange != out[j].AgeRange {
			return out[i].AgeRange < out[j].AgeRange
		}
		return out[i].Gender < out[j].Gender
	})
	return out, nil
}

func (r *BenchmarkRepo) Upsert(ctx context.Context, b *domain.Benchmark) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b2 := *b
	r.m[key(b.AgeRange, string(b.Gender))] = &b2
	return nil
}
