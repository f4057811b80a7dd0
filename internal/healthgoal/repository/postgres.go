package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"healthtrack/backend/internal/db"
	"healthtrack/backend/internal/healthgoal/domain"
)

const goalColumns = `id, user_id, goal_type, target_value, target_date, is_active, created_at, updated_at`

type PostgresRepository struct {
	db db.DBTX
}

// NewPostgresRepository returns a health goal repository over db, which may be a *sql.DB or a *sql.Tx.
func NewPostgresRepository(conn db.DBTX) *PostgresRepository {
	return &PostgresRepository{db: conn}
}

// Create inserts the goal. The caller assigns the ID.
func (r *PostgresRepository) Create(ctx context.Context, g *domain.HealthGoal) error {
	var target sql.NullTime
	if g.TargetDate != nil {
		target = sql.NullTime{Time: *g.TargetDate, Valid: true}
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO health_goals (`+goalColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		g.ID, g.UserID, string(g.GoalType), g.TargetValue, target, g.IsActive, g.CreatedAt, g.UpdatedAt)
	return err
}

// GetByID returns the goal for id, or nil if not found.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.HealthGoal, error) {
	g, err := scanGoal(r.db.QueryRowContext(ctx, `SELECT `+goalColumns+` FROM health_goals WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return g, err
}

// ListByUser returns the user's goals, newest first, optionally only active ones.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string, activeOnly bool) ([]*domain.HealthGoal, error) {
	q := `SELECT ` + goalColumns + ` FROM health_goals WHERE user_id = $1`
	if activeOnly {
		q += ` AND is_active`
	}
	rows, err := r.db.QueryContext(ctx, q+` ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*domain.HealthGoal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// DeactivateByType marks the user's active goals of goalType inactive.
func (r *PostgresRepository) DeactivateByType(ctx context.Context, userID string, goalType domain.GoalType) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE health_goals SET is_active = false, updated_at = $3
		 WHERE user_id = $1 AND goal_type = $2 AND is_active`,
		userID, string(goalType), time.Now().UTC())
	return err
}

// Delete removes the goal.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM health_goals WHERE id = $1`, id)
	return err
}

// DeleteByUser removes every goal of the user.
func (r *PostgresRepository) DeleteByUser(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM health_goals WHERE user_id = $1`, userID)
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanGoal(s scanner) (*domain.HealthGoal, error) {
	var g domain.HealthGoal
	var goalType string
	var target sql.NullTime
	if err := s.Scan(&g.ID, &g.UserID, &goalType, &g.TargetValue, &target, &g.IsActive, &g.CreatedAt, &g.UpdatedAt); err != nil {
		return nil, err
	}
	g.GoalType = domain.GoalType(goalType)
	if target.Valid {
		d := target.Time
		g.TargetDate = &d
	}
	return &g, nil
}
