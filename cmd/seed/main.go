// seed loads BMI benchmarks and a development account with sample history. Benchmarks are upserted
// on every run; the dev account is skipped when dev@example.com already exists.
package main

import (
	"context"
	"database/sql"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"healthtrack/backend/internal/config"
	"healthtrack/backend/internal/db"
	goalsdomain "healthtrack/backend/internal/goals/domain"
	"healthtrack/backend/internal/healthcalc"
	healthgoaldomain "healthtrack/backend/internal/healthgoal/domain"
	healthgoalservice "healthtrack/backend/internal/healthgoal/service"
	identitydomain "healthtrack/backend/internal/identity/domain"
	identityrepo "healthtrack/backend/internal/identity/repository"
	insightsdomain "healthtrack/backend/internal/insights/domain"
	insightsrepo "healthtrack/backend/internal/insights/repository"
	measurementservice "healthtrack/backend/internal/measurement/service"
	nutritiondomain "healthtrack/backend/internal/nutrition/domain"
	profiledomain "healthtrack/backend/internal/profile/domain"
	"healthtrack/backend/internal/security"
	"healthtrack/backend/internal/server"
	userdomain "healthtrack/backend/internal/user/domain"
	userrepo "healthtrack/backend/internal/user/repository"
)

const (
	devUserEmail = "dev@example.com"
	devPassword  = "password123"
	historyDays  = 30

	healthyBMIMin = 18.5
	healthyBMIMax = 24.9
)

// benchmarks are reference BMI quartiles per age range and sex.
var benchmarks = []insightsdomain.Benchmark{
	{AgeRange: "18-24", Gender: healthcalc.GenderMale, BMIP25: 21.2, BMIP50: 23.4, BMIP75: 26.3},
	{AgeRange: "18-24", Gender: healthcalc.GenderFemale, BMIP25: 20.4, BMIP50: 22.6, BMIP75: 26.1},
	{AgeRange: "25-34", Gender: healthcalc.GenderMale, BMIP25: 23.1, BMIP50: 25.6, BMIP75: 28.7},
	{AgeRange: "25-34", Gender: healthcalc.GenderFemale, BMIP25: 21.6, BMIP50: 24.4, BMIP75: 28.9},
	{AgeRange: "35-44", Gender: healthcalc.GenderMale, BMIP25: 24.4, BMIP50: 27.0, BMIP75: 30.1},
	{AgeRange: "35-44", Gender: healthcalc.GenderFemale, BMIP25: 22.5, BMIP50: 25.7, BMIP75: 30.2},
	{AgeRange: "45-54", Gender: healthcalc.GenderMale, BMIP25: 25.0, BMIP50: 27.6, BMIP75: 30.7},
	{AgeRange: "45-54", Gender: healthcalc.GenderFemale, BMIP25: 23.1, BMIP50: 26.6, BMIP75: 31.0},
	{AgeRange: "55-64", Gender: healthcalc.GenderMale, BMIP25: 25.2, BMIP50: 27.9, BMIP75: 31.1},
	{AgeRange: "55-64", Gender: healthcalc.GenderFemale, BMIP25: 23.6, BMIP50: 27.0, BMIP75: 31.4},
	{AgeRange: "65+", Gender: healthcalc.GenderMale, BMIP25: 24.6, BMIP50: 27.1, BMIP75: 30.0},
	{AgeRange: "65+", Gender: healthcalc.GenderFemale, BMIP25: 23.3, BMIP50: 26.4, BMIP75: 30.2},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if strings.EqualFold(cfg.Env, "production") {
		log.Fatal("seed: refusing to run with APP_ENV=production")
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set; create a .env from .env.example or set DATABASE_URL")
	}

	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer conn.Close()
	ctx := context.Background()

	benchRepo := insightsrepo.NewPostgresRepository(conn)
	for i := range benchmarks {
		b := benchmarks[i]
		b.ID = uuid.New().String()
		b.HealthyRangeMin, b.HealthyRangeMax = healthyBMIMin, healthyBMIMax
		if err := benchRepo.Upsert(ctx, &b); err != nil {
			log.Fatalf("upsert benchmark %s/%s: %v", b.AgeRange, b.Gender, err)
		}
	}
	log.Printf("seed: %d benchmarks upserted", len(benchmarks))

	users := userrepo.NewPostgresRepository(conn)
	existing, err := users.GetByEmail(ctx, devUserEmail)
	if err != nil {
		log.Fatalf("seed check: %v", err)
	}
	if existing != nil {
		log.Printf("seed: %s exists, skipping sample account", devUserEmail)
		return
	}
	if err := seedDevUser(ctx, conn, cfg.BcryptCost); err != nil {
		log.Fatalf("seed dev user: %v", err)
	}
	log.Printf("seed: created %s / %s", devUserEmail, devPassword)
}

func seedDevUser(ctx context.Context, conn *sql.DB, bcryptCost int) error {
	hash, err := security.NewHasher(bcryptCost).Hash(devPassword)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	userID := uuid.New().String()
	err = db.WithTx(ctx, conn, func(tx *sql.Tx) error {
		if err := userrepo.NewPostgresRepository(tx).Create(ctx, &userdomain.User{
			ID: userID, Email: devUserEmail, Status: userdomain.UserStatusActive, CreatedAt: now, UpdatedAt: now,
		}); err != nil {
			return err
		}
		return identityrepo.NewPostgresRepository(tx).Create(ctx, &identitydomain.Identity{
			ID: uuid.New().String(), UserID: userID, Provider: identitydomain.IdentityProviderLocal,
			ProviderID: devUserEmail, PasswordHash: hash, CreatedAt: now,
		})
	})
	if err != nil {
		return err
	}

	deps := server.NewPostgresDeps(conn, server.PostgresOptions{})
	age, height, weight := 32, 178.0, 86.0
	if _, err := deps.Profiles.Update(ctx, userID, profiledomain.Input{
		FirstName: "Dev", LastName: "User", Age: &age, Gender: healthcalc.GenderMale,
		Height: &height, Weight: &weight, UnitSystem: healthcalc.UnitsMetric,
	}); err != nil {
		return err
	}
	if _, err := deps.Goals.Update(ctx, userID, goalsdomain.Input{
		FitnessGoal: healthcalc.GoalWeightLoss, ActivityLevel: healthcalc.ActivityModerate, WorkoutStyle: "strength",
	}); err != nil {
		return err
	}

	// A slow, slightly noisy loss over the history window.
	for d := historyDays; d >= 0; d -= 2 {
		w := weight - float64(historyDays-d)*0.08 + float64(d%3)*0.2
		if _, err := deps.Measurements.Record(ctx, userID, measurementservice.RecordInput{
			Weight: w, Date: now.AddDate(0, 0, -d).Format(nutritiondomain.DateLayout),
		}); err != nil {
			return err
		}
	}
	if _, err := deps.HealthGoals.Create(ctx, userID, healthgoalservice.CreateInput{
		GoalType: healthgoaldomain.GoalTypeWeight, TargetValue: 80, TargetDate: now.AddDate(0, 3, 0).Format(nutritiondomain.DateLayout),
	}); err != nil {
		return err
	}
	meals := []nutritiondomain.LogInput{
		{MealType: nutritiondomain.MealBreakfast, FoodName: "Oatmeal with berries", Quantity: 1, Calories: 320, Protein: 11, Carbs: 54, Fat: 6},
		{MealType: nutritiondomain.MealLunch, FoodName: "Chicken salad", Quantity: 1, Calories: 480, Protein: 42, Carbs: 18, Fat: 24},
		{MealType: nutritiondomain.MealDinner, FoodName: "Salmon and rice", Quantity: 1, Calories: 650, Protein: 40, Carbs: 62, Fat: 22},
	}
	for _, m := range meals {
		if _, err := deps.Nutrition.Log(ctx, userID, m); err != nil {
			return err
		}
	}
	return nil
}
