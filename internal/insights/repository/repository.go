package repository

import (
	"context"

	"healthtrack/backend/internal/insights/domain"
)

// BenchmarkRepository reads and seeds population benchmarks.
type BenchmarkRepository interface {
	Get(ctx context.Context, ageRange, gender string) (*domain.Benchmark, error)
	List(ctx context.Context) ([]*domain.Benchmark, error)
	Upsert(ctx context.Context, b *domain.Benchmark) error
}
