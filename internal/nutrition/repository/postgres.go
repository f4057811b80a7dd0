package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"healthtrack/backend/internal/db"
	"healthtrack/backend/internal/nutrition/domain"
)

const logColumns = `id, user_id, date, meal_type, food_name, quantity, unit, calories, protein, carbs, fat, fiber, sugar, sodium, created_at, updated_at`

const summaryColumns = `id, user_id, date, total_calories, total_protein, total_carbs, total_fat, total_fiber, total_sugar, total_sodium, created_at, updated_at`

const presetColumns = `id, user_id, name, meal_type, foods, total_calories, total_protein, total_carbs, total_fat, created_at, updated_at`

type PostgresRepository struct {
	db db.DBTX
}

// NewPostgresRepository returns a nutrition repository over db, which may be a *sql.DB or a *sql.Tx.
func NewPostgresRepository(conn db.DBTX) *PostgresRepository {
	return &PostgresRepository{db: conn}
}

func (r *PostgresRepository) CreateLog(ctx context.Context, l *domain.Log) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO nutrition_logs (`+logColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		l.ID, l.UserID, l.Date, string(l.MealType), l.FoodName, l.Quantity, l.Unit, l.Calories,
		l.Protein, l.Carbs, l.Fat, db.NullFloat(l.Fiber), db.NullFloat(l.Sugar), db.NullFloat(l.Sodium),
		l.CreatedAt, l.UpdatedAt)
	return err
}

// GetLog returns the log for id, or nil if not found.
func (r *PostgresRepository) GetLog(ctx context.Context, id string) (*domain.Log, error) {
	l, err := scanLog(r.db.QueryRowContext(ctx, `SELECT `+logColumns+` FROM nutrition_logs WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return l, err
}

func (r *PostgresRepository) ListLogs(ctx context.Context, userID string, date time.Time) ([]*domain.Log, error) {
	q := `SELECT ` + logColumns + ` FROM nutrition_logs WHERE user_id = $1`
	args := []any{userID}
	if !date.IsZero() {
		q += ` AND date = $2`
		args = append(args, date)
	}
	rows, err := r.db.QueryContext(ctx, q+` ORDER BY date DESC, created_at DESC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*domain.Log
	for rows.Next() {
		l, err := scanLog(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) DeleteLog(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM nutrition_logs WHERE id = $1`, id)
	return err
}

// GetSummary returns the summary for the user's date, or nil if none was stored.
func (r *PostgresRepository) GetSummary(ctx context.Context, userID string, date time.Time) (*domain.DailySummary, error) {
	var s domain.DailySummary
	var fiber, sugar, sodium sql.NullFloat64
	err := r.db.QueryRowContext(ctx,
		`SELECT `+summaryColumns+` FROM daily_nutrition_summary WHERE user_id = $1 AND date = $2`, userID, date).
		Scan(&s.ID, &s.UserID, &s.Date, &s.TotalCalories, &s.TotalProtein, &s.TotalCarbs, &s.TotalFat,
			&fiber, &sugar, &sodium, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	s.TotalFiber, s.TotalSugar, s.TotalSodium = db.FloatPtr(fiber), db.FloatPtr(sugar), db.FloatPtr(sodium)
	return &s, nil
}

// UpsertSummary inserts or replaces the totals for (user_id, date). The stored ID and created_at are kept.
func (r *PostgresRepository) UpsertSummary(ctx context.Context, s *domain.DailySummary) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO daily_nutrition_summary (`+summaryColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 ON CONFLICT (user_id, date) DO UPDATE SET
		   total_calories = EXCLUDED.total_calories,
		   total_protein = EXCLUDED.total_protein,
		   total_carbs = EXCLUDED.total_carbs,
		   total_fat = EXCLUDED.total_fat,
		   total_fiber = EXCLUDED.total_fiber,
		   total_sugar = EXCLUDED.total_sugar,
		   total_sodium = EXCLUDED.total_sodium,
		   updated_at = EXCLUDED.updated_at`,
		s.ID, s.UserID, s.Date, s.TotalCalories, s.TotalProtein, s.TotalCarbs, s.TotalFat,
		db.NullFloat(s.TotalFiber), db.NullFloat(s.TotalSugar), db.NullFloat(s.TotalSodium), s.CreatedAt, s.UpdatedAt)
	return err
}

func (r *PostgresRepository) CreatePreset(ctx context.Context, p *domain.Preset) error {
	foods, err := json.Marshal(p.Foods)
	if err != nil {
		return fmt.Errorf("encode preset foods: %w", err)
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO meal_presets (`+presetColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		p.ID, p.UserID, p.Name, string(p.MealType), string(foods), p.TotalCalories, p.TotalProtein, p.TotalCarbs, p.TotalFat,
		p.CreatedAt, p.UpdatedAt)
	return err
}

// GetPreset returns the preset for id, or nil if not found.
func (r *PostgresRepository) GetPreset(ctx context.Context, id string) (*domain.Preset, error) {
	p, err := scanPreset(r.db.QueryRowContext(ctx, `SELECT `+presetColumns+` FROM meal_presets WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return p, err
}

func (r *PostgresRepository) ListPresets(ctx context.Context, userID string, mealType domain.MealType) ([]*domain.Preset, error) {
	q := `SELECT ` + presetColumns + ` FROM meal_presets WHERE user_id = $1`
	args := []any{userID}
	if mealType != "" {
		q += ` AND meal_type = $2`
		args = append(args, string(mealType))
	}
	rows, err := r.db.QueryContext(ctx, q+` ORDER BY created_at DESC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*domain.Preset
	for rows.Next() {
		p, err := scanPreset(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) DeletePreset(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM meal_presets WHERE id = $1`, id)
	return err
}

// DeleteByUser removes every log, summary and preset of the user.
func (r *PostgresRepository) DeleteByUser(ctx context.Context, userID string) error {
	for _, q := range []string{
		`DELETE FROM nutrition_logs WHERE user_id = $1`,
		`DELETE FROM daily_nutrition_summary WHERE user_id = $1`,
		`DELETE FROM meal_presets WHERE user_id = $1`,
	} {
		if _, err := r.db.ExecContext(ctx, q, userID); err != nil {
			return err
		}
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanLog(s scanner) (*domain.Log, error) {
	var l domain.Log
	var meal string
	var fiber, sugar, sodium sql.NullFloat64
	if err := s.Scan(&l.ID, &l.UserID, &l.Date, &meal, &l.FoodName, &l.Quantity, &l.Unit, &l.Calories,
		&l.Protein, &l.Carbs, &l.Fat, &fiber, &sugar, &sodium, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return nil, err
	}
	l.MealType = domain.MealType(meal)
	l.Fiber, l.Sugar, l.Sodium = db.FloatPtr(fiber), db.FloatPtr(sugar), db.FloatPtr(sodium)
	return &l, nil
}

func scanPreset(s scanner) (*domain.Preset, error) {
	var p domain.Preset
	var meal string
	var foods []byte
	if err := s.Scan(&p.ID, &p.UserID, &p.Name, &meal, &foods, &p.TotalCalories, &p.TotalProtein,
		&p.TotalCarbs, &p.TotalFat, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.MealType = domain.MealType(meal)
	if err := json.Unmarshal(foods, &p.Foods); err != nil {
		return nil, fmt.Errorf("decode preset %s foods: %w", p.ID, err)
	}
	return &p, nil
}
