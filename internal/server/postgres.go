package server

import (
	"context"
	"database/sql"

	auditrepo "healthtrack/backend/internal/audit/repository"
	"healthtrack/backend/internal/db"
	goalsrepo "healthtrack/backend/internal/goals/repository"
	goalsservice "healthtrack/backend/internal/goals/service"
	healthgoalrepo "healthtrack/backend/internal/healthgoal/repository"
	healthgoalservice "healthtrack/backend/internal/healthgoal/service"
	identityrepo "healthtrack/backend/internal/identity/repository"
	identityservice "healthtrack/backend/internal/identity/service"
	insightsrepo "healthtrack/backend/internal/insights/repository"
	insightsservice "healthtrack/backend/internal/insights/service"
	measurementrepo "healthtrack/backend/internal/measurement/repository"
	measurementservice "healthtrack/backend/internal/measurement/service"
	nutritionrepo "healthtrack/backend/internal/nutrition/repository"
	nutritionservice "healthtrack/backend/internal/nutrition/service"
	profilerepo "healthtrack/backend/internal/profile/repository"
	profileservice "healthtrack/backend/internal/profile/service"
	"healthtrack/backend/internal/ratelimit"
	"healthtrack/backend/internal/security"
	"healthtrack/backend/internal/telemetry"
	userrepo "healthtrack/backend/internal/user/repository"
	userservice "healthtrack/backend/internal/user/service"
)

// PostgresOptions are the non-database collaborators of NewPostgresDeps.
type PostgresOptions struct {
	Tokens      *security.TokenProvider
	Hasher      *security.Hasher
	Limiter     ratelimit.Limiter
	Events      telemetry.EventEmitter
	Recommender insightsservice.Recommender
}

// NewPostgresDeps wires every service to Postgres repositories over conn.
func NewPostgresDeps(conn *sql.DB, opts PostgresOptions) Deps {
	users := userrepo.NewPostgresRepository(conn)
	profiles := profilerepo.NewPostgresRepository(conn)
	measurements := measurementrepo.NewPostgresRepository(conn)
	goals := goalsservice.NewGoalsService(goalsrepo.NewPostgresRepository(conn), profiles, measurements, opts.Events)

	return Deps{
		Tokens:       opts.Tokens,
		Auth:         identityservice.NewAuthService(users, identityrepo.NewPostgresRepository(conn), opts.Hasher, opts.Tokens, opts.Limiter, opts.Events),
		Profiles:     profileservice.NewProfileService(profiles, goals, opts.Events),
		Measurements: measurementservice.NewMeasurementService(measurements, profiles, opts.Events),
		Goals:        goals,
		HealthGoals:  healthgoalservice.NewHealthGoalService(healthgoalrepo.NewPostgresRepository(conn), measurements, opts.Events),
		Nutrition:    nutritionservice.NewNutritionService(nutritionrepo.NewPostgresRepository(conn), goals, opts.Events),
		Insights:     insightsservice.NewInsightsService(measurements, profiles, insightsrepo.NewPostgresRepository(conn), opts.Recommender),
		Accounts:     userservice.NewAccountService(users, PostgresUnitOfWork(conn), opts.Events),
		AuditRepo:    auditrepo.NewPostgresRepository(conn),
		Events:       opts.Events,
	}
}

// PostgresUnitOfWork runs account-wide changes in one transaction on b.
func PostgresUnitOfWork(b db.Beginner) userservice.UnitOfWork {
	return func(ctx context.Context, fn func(userservice.Stores) error) error {
		return db.WithTx(ctx, b, func(tx *sql.Tx) error {
			return fn(userservice.Stores{
				Nutrition:    nutritionrepo.NewPostgresRepository(tx),
				Measurements: measurementrepo.NewPostgresRepository(tx),
				HealthGoals:  healthgoalrepo.NewPostgresRepository(tx),
				Goals:        goalsrepo.NewPostgresRepository(tx),
				Profiles:     profilerepo.NewPostgresRepository(tx),
				Identities:   identityrepo.NewPostgresRepository(tx),
				Users:        userrepo.NewPostgresRepository(tx),
			})
		})
	}
}
