package service

import (
	"context"
	"errors"
	"testing"

	"healthtrack/backend/internal/healthcalc"
	"healthtrack/backend/internal/platform/validate"
	"healthtrack/backend/internal/profile/domain"
	"healthtrack/backend/internal/profile/profiletest"
	telemetrydomain "healthtrack/backend/internal/telemetry/domain"
	"healthtrack/backend/internal/telemetry/telemetrytest"
)

type mockRefresher struct {
	calls []string
	err   error
}

func (m *mockRefresher) RefreshTargets(ctx context.Context, userID string) error {
	m.calls = append(m.calls, userID)
	return m.err
}

func f(v float64) *float64 { return &v }

func TestProfileService_GetMissing(t *testing.T) {
	svc := NewProfileService(profiletest.NewRepo(), nil, nil)
	if _, err := svc.Get(context.Background(), "u1"); !errors.Is(err, ErrProfileNotFound) {
		t.Errorf("err = %v, want ErrProfileNotFound", err)
	}
}

func TestProfileService_UpdateCreatesAndRefreshes(t *testing.T) {
	repo := profiletest.NewRepo()
	ref := &mockRefresher{}
	events := telemetrytest.NewRecorder()
	svc := NewProfileService(repo, ref, events)
	ctx := context.Background()

	p, err := svc.Update(ctx, "u1", domain.Input{FirstName: "Ana", Gender: healthcalc.GenderFemale, Height: f(165)})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if p.CreatedAt.IsZero() || p.UpdatedAt.IsZero() {
		t.Error("timestamps should be set")
	}
	got, err := svc.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.FirstName != "Ana" || *got.HeightCm != 165 {
		t.Errorf("stored = %+v", got)
	}
	if len(ref.calls) != 1 || ref.calls[0] != "u1" {
		t.Errorf("refresh calls = %v", ref.calls)
	}
	events.Wait(t, telemetrydomain.EventProfileUpdated)

	created := got.CreatedAt
	if _, err := svc.Update(ctx, "u1", domain.Input{FirstName: "Bea"}); err != nil {
		t.Fatalf("second Update: %v", err)
	}
	got, _ = svc.Get(ctx, "u1")
	if !got.CreatedAt.Equal(created) {
		t.Error("CreatedAt must survive updates")
	}
}

func TestProfileService_UpdateRefreshFailureKeepsProfile(t *testing.T) {
	repo := profiletest.NewRepo()
	svc := NewProfileService(repo, &mockRefresher{err: errors.New("db down")}, nil)
	if _, err := svc.Update(context.Background(), "u1", domain.Input{FirstName: "Ana"}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if p, _ := repo.GetByUserID(context.Background(), "u1"); p == nil {
		t.Error("profile should be saved")
	}
}

func TestProfileService_UpdateValidation(t *testing.T) {
	ref := &mockRefresher{}
	svc := NewProfileService(profiletest.NewRepo(), ref, nil)
	_, err := svc.Update(context.Background(), "u1", domain.Input{Weight: f(0)})
	var fe validate.Errors
	if !errors.As(err, &fe) {
		t.Fatalf("err = %v, want validate.Errors", err)
	}
	if len(ref.calls) != 0 {
		t.Error("invalid input must not refresh targets")
	}
}
