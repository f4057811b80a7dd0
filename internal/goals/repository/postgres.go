package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"healthtrack/backend/internal/db"
	"healthtrack/backend/internal/goals/domain"
	"healthtrack/backend/internal/healthcalc"
)

type PostgresRepository struct {
	db db.DBTX
}

// NewPostgresRepository returns a goals repository over db, which may be a *sql.DB or a *sql.Tx.
func NewPostgresRepository(conn db.DBTX) *PostgresRepository {
	return &PostgresRepository{db: conn}
}

// GetByUserID returns the user's goals, or nil if none were saved.
func (r *PostgresRepository) GetByUserID(ctx context.Context, userID string) (*domain.UserGoals, error) {
	var g domain.UserGoals
	var goal, level, source string
	var restrictions []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT user_id, fitness_goal, activity_level, workout_style, dietary_restrictions,
		        target_calories, target_protein, target_carbs, target_fat, target_source,
		        onboarding_completed, created_at, updated_at
		 FROM user_goals WHERE user_id = $1`, userID).
		Scan(&g.UserID, &goal, &level, &g.WorkoutStyle, &restrictions,
			&g.Targets.Calories, &g.Targets.ProteinG, &g.Targets.CarbsG, &g.Targets.FatG, &source,
			&g.OnboardingCompleted, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	g.FitnessGoal = healthcalc.FitnessGoal(goal)
	g.ActivityLevel = healthcalc.ActivityLevel(level)
	g.Targets.Source = healthcalc.TargetSource(source)
	if err := json.Unmarshal(restrictions, &g.DietaryRestrictions); err != nil {
		return nil, fmt.Errorf("decode dietary_restrictions: %w", err)
	}
	return &g, nil
}

// Upsert inserts the goals or replaces every field of the existing row. created_at is kept.
func (r *PostgresRepository) Upsert(ctx context.Context, g *domain.UserGoals) error {
	restrictions := g.DietaryRestrictions
	if restrictions == nil {
		restrictions = []string{}
	}
	b, err := json.Marshal(restrictions)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO user_goals (user_id, fitness_goal, activity_level, workout_style, dietary_restrictions,
		                         target_calories, target_protein, target_carbs, target_fat, target_source,
		                         onboarding_completed, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5::jsonb, $6, $7, $8, $9, $10, $11, $12, $13)
		 ON CONFLICT (user_id) DO UPDATE SET
		   fitness_goal = EXCLUDED.fitness_goal,
		   activity_level = EXCLUDED.activity_level,
		   workout_style = EXCLUDED.workout_style,
		   dietary_restrictions = EXCLUDED.dietary_restrictions,
		   target_calories = EXCLUDED.target_calories,
		   target_protein = EXCLUDED.target_protein,
		   target_carbs = EXCLUDED.target_carbs,
		   target_fat = EXCLUDED.target_fat,
		   target_source = EXCLUDED.target_source,
		   onboarding_completed = EXCLUDED.onboarding_completed,
		   updated_at = EXCLUDED.updated_at`,
		g.UserID, string(g.FitnessGoal), string(g.ActivityLevel), g.WorkoutStyle, string(b),
		g.Targets.Calories, g.Targets.ProteinG, g.Targets.CarbsG, g.Targets.FatG, string(g.Targets.Source),
		g.OnboardingCompleted, g.CreatedAt, g.UpdatedAt)
	return err
}

// DeleteByUser removes the user's goals.
func (r *PostgresRepository) DeleteByUser(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM user_goals WHERE user_id = $1`, userID)
	return err
}
