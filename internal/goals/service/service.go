package service

import (
	"context"
	"errors"
	"time"

	"healthtrack/backend/internal/goals/domain"
	"healthtrack/backend/internal/healthcalc"
	measurementdomain "healthtrack/backend/internal/measurement/domain"
	profiledomain "healthtrack/backend/internal/profile/domain"
	"healthtrack/backend/internal/telemetry"
	telemetrydomain "healthtrack/backend/internal/telemetry/domain"
)

// ErrGoalsNotFound is returned when the user has not set goals yet.
var ErrGoalsNotFound = errors.New("goals not set")

// GoalsRepo is the minimal goals repository needed by the service.
type GoalsRepo interface {
	GetByUserID(ctx context.Context, userID string) (*domain.UserGoals, error)
	Upsert(ctx context.Context, g *domain.UserGoals) error
}

// ProfileStore reads and, during onboarding, writes the user's profile.
type ProfileStore interface {
	GetByUserID(ctx context.Context, userID string) (*profiledomain.Profile, error)
	Upsert(ctx context.Context, p *profiledomain.Profile) error
}

// LatestMeasurement supplies the most recent measured weight.
type LatestMeasurement interface {
	Latest(ctx context.Context, userID string) (*measurementdomain.Measurement, error)
}

// OnboardingInput is the profile and goals collected by the onboarding flow.
type OnboardingInput struct {
	Profile profiledomain.Input `json:"profile"`
	Goals   domain.Input        `json:"goals"`
}

// GoalsService manages fitness goals and the nutrition targets computed from them.
type GoalsService struct {
	repo         GoalsRepo
	profiles     ProfileStore
	measurements LatestMeasurement
	events       telemetry.EventEmitter
	nowF         func() time.Time
}

// NewGoalsService returns a GoalsService. measurements and events may be nil.
func NewGoalsService(repo GoalsRepo, profiles ProfileStore, measurements LatestMeasurement, events telemetry.EventEmitter) *GoalsService {
	return &GoalsService{repo: repo, profiles: profiles, measurements: measurements, events: events, nowF: time.Now}
}

// Get returns the user's goals or ErrGoalsNotFound.
func (s *GoalsService) Get(ctx context.Context, userID string) (*domain.UserGoals, error) {
	g, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, ErrGoalsNotFound
	}
	return g, nil
}

// Update validates in, recomputes targets and saves. The onboarding flag is kept as stored.
func (s *GoalsService) Update(ctx context.Context, userID string, in domain.Input) (*domain.UserGoals, error) {
	g, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := in.Apply(g); err != nil {
		return nil, err
	}
	return g, s.save(ctx, g, false)
}

// CompleteOnboarding saves the profile, then the goals with targets computed from that profile,
// and marks onboarding completed.
func (s *GoalsService) CompleteOnboarding(ctx context.Context, userID string, in OnboardingInput) (*domain.UserGoals, error) {
	p, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := s.nowF().UTC()
	if p == nil {
		p = &profiledomain.Profile{UserID: userID, CreatedAt: now}
	}
	if err := in.Profile.Apply(p); err != nil {
		return nil, err
	}
	g, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := in.Goals.Apply(g); err != nil {
		return nil, err
	}
	p.UpdatedAt = now
	if err := s.profiles.Upsert(ctx, p); err != nil {
		return nil, err
	}
	g.OnboardingCompleted = true
	return g, s.save(ctx, g, true)
}

// RefreshTargets recomputes and stores targets for a user who has goals. It does nothing otherwise.
func (s *GoalsService) RefreshTargets(ctx context.Context, userID string) error {
	g, err := s.repo.GetByUserID(ctx, userID)
	if err != nil || g == nil {
		return err
	}
	return s.save(ctx, g, false)
}

// Targets returns the stored targets, or the targets resolved from the profile alone (usually the
// fallback) when the user has no goals yet.
func (s *GoalsService) Targets(ctx context.Context, userID string) (healthcalc.Targets, error) {
	g, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return healthcalc.Targets{}, err
	}
	if g != nil {
		return g.Targets, nil
	}
	in, err := s.targetInput(ctx, userID)
	if err != nil {
		return healthcalc.Targets{}, err
	}
	return healthcalc.ResolveTargets(in), nil
}

func (s *GoalsService) load(ctx context.Context, userID string) (*domain.UserGoals, error) {
	g, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		g = &domain.UserGoals{UserID: userID, CreatedAt: s.nowF().UTC()}
	}
	return g, nil
}

func (s *GoalsService) save(ctx context.Context, g *domain.UserGoals, onboarding bool) error {
	in, err := s.targetInput(ctx, g.UserID)
	if err != nil {
		return err
	}
	in.ActivityLevel = g.ActivityLevel
	in.FitnessGoal = g.FitnessGoal
	g.Targets = healthcalc.ResolveTargets(in)
	g.UpdatedAt = s.nowF().UTC()
	if err := s.repo.Upsert(ctx, g); err != nil {
		return err
	}
	telemetry.EmitAsync(s.events, ctx, telemetry.NewEvent(telemetrydomain.EventGoalsUpdated, g.UserID, map[string]any{
		"fitness_goal":  g.FitnessGoal,
		"target_source": g.Targets.Source,
		"onboarding":    onboarding,
	}))
	return nil
}

// targetInput combines the profile with the latest measured weight, which wins over the profile weight.
func (s *GoalsService) targetInput(ctx context.Context, userID string) (healthcalc.TargetInput, error) {
	p, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return healthcalc.TargetInput{}, err
	}
	in := p.TargetInput()
	if s.measurements != nil {
		m, err := s.measurements.Latest(ctx, userID)
		if err != nil {
			return healthcalc.TargetInput{}, err
		}
		if m != nil {
			w := m.WeightKg
			in.WeightKg = &w
		}
	}
	return in, nil
}
