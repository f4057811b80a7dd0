package service

import (
	"context"
	"errors"
	"log"
	"time"

	"healthtrack/backend/internal/profile/domain"
	"healthtrack/backend/internal/telemetry"
	telemetrydomain "healthtrack/backend/internal/telemetry/domain"
)

// ErrProfileNotFound is returned when the user has not saved a profile yet.
var ErrProfileNotFound = errors.New("profile not found")

// ProfileRepo is the minimal profile repository needed by the service.
type ProfileRepo interface {
	GetByUserID(ctx context.Context, userID string) (*domain.Profile, error)
	Upsert(ctx context.Context, p *domain.Profile) error
}

// TargetsRefresher recomputes stored nutrition targets after the inputs they depend on change.
type TargetsRefresher interface {
	RefreshTargets(ctx context.Context, userID string) error
}

// ProfileService reads and saves user profiles.
type ProfileService struct {
	repo    ProfileRepo
	targets TargetsRefresher
	events  telemetry.EventEmitter
	nowF    func() time.Time
}

// NewProfileService returns a ProfileService. targets and events may be nil.
func NewProfileService(repo ProfileRepo, targets TargetsRefresher, events telemetry.EventEmitter) *ProfileService {
	return &ProfileService{repo: repo, targets: targets, events: events, nowF: time.Now}
}

// Get returns the user's profile or ErrProfileNotFound.
func (s *ProfileService) Get(ctx context.Context, userID string) (*domain.Profile, error) {
	p, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProfileNotFound
	}
	return p, nil
}

// Update validates in, replaces the stored profile and refreshes nutrition targets.
// A failed target refresh is logged; the profile stays saved.
func (s *ProfileService) Update(ctx context.Context, userID string, in domain.Input) (*domain.Profile, error) {
	p, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := s.nowF().UTC()
	if p == nil {
		p = &domain.Profile{UserID: userID, CreatedAt: now}
	}
	if err := in.Apply(p); err != nil {
		return nil, err
	}
	p.UpdatedAt = now
	if err := s.repo.Upsert(ctx, p); err != nil {
		return nil, err
	}
	if s.targets != nil {
		if err := s.targets.RefreshTargets(ctx, userID); err != nil {
			log.Printf("profile: refresh targets for %s: %v", userID, err)
		}
	}
	telemetry.EmitAsync(s.events, ctx, telemetry.NewEvent(telemetrydomain.EventProfileUpdated, userID, map[string]any{
		"unit_system": p.UnitSystem,
	}))
	return p, nil
}
