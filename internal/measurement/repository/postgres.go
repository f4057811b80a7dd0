package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"healthtrack/backend/internal/db"
	"healthtrack/backend/internal/healthcalc"
	"healthtrack/backend/internal/measurement/domain"
)

const measurementColumns = `id, user_id, date, height_cm, weight_kg, bmi, category, body_fat_percent, formula, notes, created_at, updated_at`

type PostgresRepository struct {
	db db.DBTX
}

// NewPostgresRepository returns a measurement repository over db, which may be a *sql.DB or a *sql.Tx.
func NewPostgresRepository(conn db.DBTX) *PostgresRepository {
	return &PostgresRepository{db: conn}
}

// Create inserts the measurement. The caller assigns the ID.
func (r *PostgresRepository) Create(ctx context.Context, m *domain.Measurement) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO bmi_measurements (`+measurementColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		m.ID, m.UserID, m.Date, m.HeightCm, m.WeightKg, m.BMI, string(m.Category),
		db.NullFloat(m.BodyFatPercent), m.Formula, db.NullString(m.Notes), m.CreatedAt, m.UpdatedAt)
	return err
}

// GetByID returns the measurement for id, or nil if not found.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.Measurement, error) {
	m, err := scanMeasurement(r.db.QueryRowContext(ctx,
		`SELECT `+measurementColumns+` FROM bmi_measurements WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return m, err
}

// ListByUser returns the user's measurements within f, newest first.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string, f domain.Filter) ([]*domain.Measurement, error) {
	where := []string{"user_id = $1"}
	args := []any{userID}
	if !f.From.IsZero() {
		args = append(args, f.From)
		where = append(where, fmt.Sprintf("date >= $%d", len(args)))
	}
	if !f.To.IsZero() {
		args = append(args, f.To)
		where = append(where, fmt.Sprintf("date <= $%d", len(args)))
	}
	q := `SELECT ` + measurementColumns + ` FROM bmi_measurements WHERE ` + strings.Join(where, " AND ") +
		` ORDER BY date DESC, created_at DESC`
	if f.Limit > 0 {
		args = append(args, f.Limit)
		q += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*domain.Measurement
	for rows.Next() {
		m, err := scanMeasurement(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// Latest returns the user's most recent measurement, or nil if there is none.
func (r *PostgresRepository) Latest(ctx context.Context, userID string) (*domain.Measurement, error) {
	ms, err := r.ListByUser(ctx, userID, domain.Filter{Limit: 1})
	if err != nil || len(ms) == 0 {
		return nil, err
	}
	return ms[0], nil
}

// Delete removes the measurement.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM bmi_measurements WHERE id = $1`, id)
	return err
}

// DeleteByUser removes every measurement of the user.
func (r *PostgresRepository) DeleteByUser(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM bmi_measurements WHERE user_id = $1`, userID)
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMeasurement(s scanner) (*domain.Measurement, error) {
	var m domain.Measurement
	var category string
	var bodyFat sql.NullFloat64
	var notes sql.NullString
	if err := s.Scan(&m.ID, &m.UserID, &m.Date, &m.HeightCm, &m.WeightKg, &m.BMI, &category,
		&bodyFat, &m.Formula, &notes, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	m.Category = healthcalc.Category(category)
	m.BodyFatPercent = db.FloatPtr(bodyFat)
	m.Notes = notes.String
	return &m, nil
}
