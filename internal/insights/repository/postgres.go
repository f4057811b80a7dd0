package repository

import (
	"context"
	"database/sql"
	"errors"

	"healthtrack/backend/internal/db"
	"healthtrack/backend/internal/healthcalc"
	"healthtrack/backend/internal/insights/domain"
)

const benchmarkColumns = `id, age_range, gender, bmi_p25, bmi_p50, bmi_p75, healthy_range_min, healthy_range_max`

type PostgresRepository struct {
	db db.DBTX
}

// NewPostgresRepository returns a benchmark repository over db.
func NewPostgresRepository(conn db.DBTX) *PostgresRepository {
	return &PostgresRepository{db: conn}
}

// Get returns the benchmark row for ageRange and gender, or nil if there is none.
func (r *PostgresRepository) Get(ctx context.Context, ageRange, gender string) (*domain.Benchmark, error) {
	b, err := scanBenchmark(r.db.QueryRowContext(ctx,
		`SELECT `+benchmarkColumns+` FROM health_benchmarks WHERE age_range = $1 AND gender = $2`, ageRange, gender))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return b, err
}

// List returns every benchmark ordered by age range then gender.
func (r *PostgresRepository) List(ctx context.Context) ([]*domain.Benchmark, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+benchmarkColumns+` FROM health_benchmarks ORDER BY age_range, gender`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*domain.Benchmark
	for rows.Next() {
		b, err := scanBenchmark(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// Upsert inserts b or replaces the percentiles of the existing (age_range, gender) row.
func (r *PostgresRepository) Upsert(ctx context.Context, b *domain.Benchmark) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO health_benchmarks (`+benchmarkColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (age_range, gender) DO UPDATE SET
		   bmi_p25 = EXCLUDED.bmi_p25,
		   bmi_p50 = EXCLUDED.bmi_p50,
		   bmi_p75 = EXCLUDED.bmi_p75,
		   healthy_range_min = EXCLUDED.healthy_range_min,
		   healthy_range_max = EXCLUDED.healthy_range_max`,
		b.ID, b.AgeRange, string(b.Gender), b.BMIP25, b.BMIP50, b.BMIP75, b.HealthyRangeMin, b.HealthyRangeMax)
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBenchmark(s scanner) (*domain.Benchmark, error) {
	var b domain.Benchmark
	var gender string
	if err := s.Scan(&b.ID, &b.AgeRange, &gender, &b.BMIP25, &b.BMIP50, &b.BMIP75,
		&b.HealthyRangeMin, &b.HealthyRangeMax); err != nil {
		return nil, err
	}
	b.Gender = healthcalc.Gender(gender)
	return &b, nil
}
