package repository

import (
	"context"
	"database/sql"
	"errors"

	"healthtrack/backend/internal/db"
	"healthtrack/backend/internal/healthcalc"
	"healthtrack/backend/internal/profile/domain"
)

type PostgresRepository struct {
	db db.DBTX
}

// NewPostgresRepository returns a profile repository over db, which may be a *sql.DB or a *sql.Tx.
func NewPostgresRepository(conn db.DBTX) *PostgresRepository {
	return &PostgresRepository{db: conn}
}

// GetByUserID returns the profile for userID, or nil if none was saved.
func (r *PostgresRepository) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	var p domain.Profile
	var first, last, gender sql.NullString
	var age sql.NullInt32
	var height, weight sql.NullFloat64
	var units string
	err := r.db.QueryRowContext(ctx,
		`SELECT user_id, first_name, last_name, age, gender, height_cm, weight_kg, unit_system, created_at, updated_at
		 FROM user_profiles WHERE user_id = $1`, userID).
		Scan(&p.UserID, &first, &last, &age, &gender, &height, &weight, &units, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	p.FirstName = first.String
	p.LastName = last.String
	if age.Valid {
		a := int(age.Int32)
		p.Age = &a
	}
	p.Gender = healthcalc.Gender(gender.String)
	p.HeightCm = db.FloatPtr(height)
	p.WeightKg = db.FloatPtr(weight)
	p.UnitSystem = healthcalc.UnitSystem(units)
	return &p, nil
}

// Upsert inserts the profile or replaces every field of the existing one. created_at is kept.
func (r *PostgresRepository) Upsert(ctx context.Context, p *domain.Profile) error {
	var age sql.NullInt32
	if p.Age != nil {
		age = sql.NullInt32{Int32: int32(*p.Age), Valid: true}
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO user_profiles (user_id, first_name, last_name, age, gender, height_cm, weight_kg, unit_system, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 ON CONFLICT (user_id) DO UPDATE SET
		   first_name = EXCLUDED.first_name,
		   last_name = EXCLUDED.last_name,
		   age = EXCLUDED.age,
		   gender = EXCLUDED.gender,
		   height_cm = EXCLUDED.height_cm,
		   weight_kg = EXCLUDED.weight_kg,
		   unit_system = EXCLUDED.unit_system,
		   updated_at = EXCLUDED.updated_at`,
		p.UserID, db.NullString(p.FirstName), db.NullString(p.LastName), age, db.NullString(string(p.Gender)),
		db.NullFloat(p.HeightCm), db.NullFloat(p.WeightKg), string(p.UnitSystem), p.CreatedAt, p.UpdatedAt)
	return err
}

// DeleteByUser removes the user's profile.
func (r *PostgresRepository) DeleteByUser(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM user_profiles WHERE user_id = $1`, userID)
	return err
}
