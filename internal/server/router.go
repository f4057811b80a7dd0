// Package server assembles the HTTP API from the domain handlers and the middleware chain.
package server

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"healthtrack/backend/internal/audit"
	audithandler "healthtrack/backend/internal/audit/handler"
	auditrepo "healthtrack/backend/internal/audit/repository"
	goalshandler "healthtrack/backend/internal/goals/handler"
	goalsservice "healthtrack/backend/internal/goals/service"
	healthhandler "healthtrack/backend/internal/health/handler"
	healthgoalhandler "healthtrack/backend/internal/healthgoal/handler"
	healthgoalservice "healthtrack/backend/internal/healthgoal/service"
	identityhandler "healthtrack/backend/internal/identity/handler"
	identityservice "healthtrack/backend/internal/identity/service"
	insightshandler "healthtrack/backend/internal/insights/handler"
	insightsservice "healthtrack/backend/internal/insights/service"
	measurementhandler "healthtrack/backend/internal/measurement/handler"
	measurementservice "healthtrack/backend/internal/measurement/service"
	nutritionhandler "healthtrack/backend/internal/nutrition/handler"
	nutritionservice "healthtrack/backend/internal/nutrition/service"
	profilehandler "healthtrack/backend/internal/profile/handler"
	profileservice "healthtrack/backend/internal/profile/service"
	"healthtrack/backend/internal/security"
	"healthtrack/backend/internal/server/metrics"
	"healthtrack/backend/internal/server/middleware"
	"healthtrack/backend/internal/telemetry"
	userhandler "healthtrack/backend/internal/user/handler"
	userservice "healthtrack/backend/internal/user/service"
)

// Deps holds the services behind the HTTP API. Any nil service leaves its routes unregistered,
// so the calculator and probes can run without a database.
type Deps struct {
	// Tokens validates access tokens. If nil, no authenticated route is registered.
	Tokens *security.TokenProvider
	// Auth serves register and login. If nil, those routes answer 503.
	Auth         *identityservice.AuthService
	Profiles     *profileservice.ProfileService
	Measurements *measurementservice.MeasurementService
	Goals        *goalsservice.GoalsService
	HealthGoals  *healthgoalservice.HealthGoalService
	Nutrition    *nutritionservice.NutritionService
	Insights     *insightsservice.InsightsService
	Accounts     *userservice.AccountService
	// AuditRepo backs the audit middleware and GET /v1/audit-logs. If nil, nothing is audited.
	AuditRepo auditrepo.Repository
	// Health serves /healthz and /readyz. If nil, a checker with no dependencies is used.
	Health *healthhandler.Checker
	// Events receives http_request events. May be nil.
	Events telemetry.EventEmitter
	// TracerProvider traces requests. If nil, the global provider is used.
	TracerProvider trace.TracerProvider
}

// skipRoutes are not audited or emitted as events.
var skipRoutes = map[string]bool{
	"/healthz": true,
	"/readyz":  true,
	"/metrics": true,
}

// NewRouter returns the gin engine serving the whole API.
func NewRouter(deps Deps) *gin.Engine {
	metrics.Register()

	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.ClientIPContext(),
		middleware.Tracing(deps.TracerProvider),
		middleware.Telemetry(deps.Events, skipRoutes),
	)
	if deps.AuditRepo != nil {
		r.Use(middleware.Audit(audit.NewLogger(deps.AuditRepo, middleware.ClientIP), skipRoutes))
	}

	health := deps.Health
	if health == nil {
		health = healthhandler.NewChecker(nil, nil)
	}
	health.Register(r)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	measurementhandler.NewCalcHandler().Register(r)
	identityhandler.NewAuthHandler(deps.Auth).Register(r)

	if deps.Tokens == nil {
		return r
	}
	authed := r.Group("/", middleware.Auth(deps.Tokens))
	if deps.Profiles != nil {
		profilehandler.NewProfileHandler(deps.Profiles).Register(authed)
	}
	if deps.Measurements != nil {
		measurementhandler.NewMeasurementHandler(deps.Measurements).Register(authed)
	}
	if deps.Goals != nil {
		goalshandler.NewGoalsHandler(deps.Goals).Register(authed)
	}
	if deps.HealthGoals != nil {
		healthgoalhandler.NewHealthGoalHandler(deps.HealthGoals).Register(authed)
	}
	if deps.Nutrition != nil {
		nutritionhandler.NewNutritionHandler(deps.Nutrition).Register(authed)
	}
	if deps.Insights != nil {
		insightshandler.NewInsightsHandler(deps.Insights).Register(authed)
	}
	if deps.Accounts != nil {
		userhandler.NewAccountHandler(deps.Accounts).Register(authed)
	}
	if deps.AuditRepo != nil {
		audithandler.NewAuditHandler(deps.AuditRepo).Register(authed)
	}
	return r
}
