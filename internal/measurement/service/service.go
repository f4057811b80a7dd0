package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"healthtrack/backend/internal/healthcalc"
	"healthtrack/backend/internal/measurement/domain"
	"healthtrack/backend/internal/platform/validate"
	profiledomain "healthtrack/backend/internal/profile/domain"
	"healthtrack/backend/internal/telemetry"
	telemetrydomain "healthtrack/backend/internal/telemetry/domain"
)

// Sentinel errors for the measurement service.
var ErrMeasurementNotFound = errors.New("measurement not found")

// MaxNotesLength bounds free-text notes.
const MaxNotesLength = 500

// MeasurementRepo is the minimal measurement repository needed by the service.
type MeasurementRepo interface {
	Create(ctx context.Context, m *domain.Measurement) error
	GetByID(ctx context.Context, id string) (*domain.Measurement, error)
	ListByUser(ctx context.Context, userID string, f domain.Filter) ([]*domain.Measurement, error)
	Latest(ctx context.Context, userID string) (*domain.Measurement, error)
	Delete(ctx context.Context, id string) error
}

// ProfileReader supplies stored defaults for age, gender, height and units.
type ProfileReader interface {
	GetByUserID(ctx context.Context, userID string) (*profiledomain.Profile, error)
}

// RecordInput is a new measurement as submitted. Height and weight are in Units; a nil Height, a nil
// Age, an empty Gender and empty Units fall back to the stored profile.
type RecordInput struct {
	Height *float64              `json:"height"`
	Weight float64               `json:"weight"`
	Units  healthcalc.UnitSystem `json:"unit_system"`
	Age    *int                  `json:"age"`
	Gender healthcalc.Gender     `json:"gender"`
	// Date is YYYY-MM-DD; empty means today (UTC).
	Date  string `json:"date"`
	Notes string `json:"notes"`
}

// RecordResult is the stored measurement plus the presentation view of the derivation.
type RecordResult struct {
	Measurement *domain.Measurement
	BMI         healthcalc.BMIResult
	Skipped     map[healthcalc.Stage][]string
}

// MeasurementService records and reads BMI history.
type MeasurementService struct {
	repo     MeasurementRepo
	profiles ProfileReader
	events   telemetry.EventEmitter
	nowF     func() time.Time
}

// NewMeasurementService returns a MeasurementService. profiles and events may be nil.
func NewMeasurementService(repo MeasurementRepo, profiles ProfileReader, events telemetry.EventEmitter) *MeasurementService {
	return &MeasurementService{repo: repo, profiles: profiles, events: events, nowF: time.Now}
}

// Record derives BMI and, when age and gender are known, body fat, and stores the result as a dated record.
func (s *MeasurementService) Record(ctx context.Context, userID string, in RecordInput) (*RecordResult, error) {
	now := s.nowF().UTC()
	date, err := parseRecordDate(in.Date, now)
	if err != nil {
		return nil, err
	}
	notes := strings.TrimSpace(in.Notes)
	var c validate.Checker
	c.Length("notes", notes, 0, MaxNotesLength)
	if err := c.Err(); err != nil {
		return nil, err
	}

	dIn, err := s.derivationInput(ctx, userID, in)
	if err != nil {
		return nil, err
	}
	d, err := healthcalc.Derive(dIn)
	if err != nil {
		return nil, err
	}

	m := &domain.Measurement{
		ID:        uuid.New().String(),
		UserID:    userID,
		Date:      date,
		HeightCm:  d.Metric.HeightCm,
		WeightKg:  d.Metric.WeightKg,
		BMI:       d.BMI.BMI,
		Category:  d.BMI.Category,
		Formula:   domain.FormulaStandard,
		Notes:     notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if bc, ok := d.Composition.Get(); ok {
		m.BodyFatPercent = &bc.BodyFatPercent
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	telemetry.EmitAsync(s.events, ctx, telemetry.NewEvent(telemetrydomain.EventMeasurementCreated, userID, map[string]any{
		"measurement_id": m.ID,
		"bmi":            healthcalc.Round1(m.BMI),
		"category":       m.Category,
		"has_body_fat":   m.BodyFatPercent != nil,
	}))
	return &RecordResult{Measurement: m, BMI: d.BMI.Rounded(), Skipped: d.Skipped}, nil
}

func (s *MeasurementService) derivationInput(ctx context.Context, userID string, in RecordInput) (healthcalc.Input, error) {
	out := healthcalc.Input{Weight: in.Weight, Units: in.Units, Age: in.Age, Gender: in.Gender}
	var p *profiledomain.Profile
	if s.profiles != nil && (in.Height == nil || in.Age == nil || in.Gender == "" || in.Units == "") {
		var err error
		if p, err = s.profiles.GetByUserID(ctx, userID); err != nil {
			return out, err
		}
	}
	if out.Units == "" {
		out.Units = healthcalc.UnitsMetric
		if p != nil && p.UnitSystem != "" {
			out.Units = p.UnitSystem
		}
	}
	if p != nil {
		if out.Age == nil {
			out.Age = p.Age
		}
		if out.Gender == "" {
			out.Gender = p.Gender
		}
	}
	switch {
	case in.Height != nil:
		out.Height = *in.Height
	case p != nil && p.HeightCm != nil:
		out.Height = *p.HeightCm
		if out.Units == healthcalc.UnitsImperial {
			out.Height /= healthcalc.CmPerInch
		}
	default:
		return out, validate.Errors{{Field: "height", Message: "is required when the profile has no height"}}
	}
	return out, nil
}

func parseRecordDate(s string, now time.Time) (time.Time, error) {
	today := truncateDay(now)
	if s == "" {
		return today, nil
	}
	d, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		return time.Time{}, validate.Errors{{Field: "date", Message: "must be YYYY-MM-DD"}}
	}
	if d.After(today) {
		return time.Time{}, validate.Errors{{Field: "date", Message: "must not be in the future"}}
	}
	return d, nil
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// List returns the user's measurements within f, newest first.
func (s *MeasurementService) List(ctx context.Context, userID string, f domain.Filter) ([]*domain.Measurement, error) {
	if !f.From.IsZero() && !f.To.IsZero() && f.From.After(f.To) {
		return nil, validate.Errors{{Field: "from", Message: "must not be after to"}}
	}
	return s.repo.ListByUser(ctx, userID, f)
}

// Latest returns the most recent measurement or ErrMeasurementNotFound.
func (s *MeasurementService) Latest(ctx context.Context, userID string) (*domain.Measurement, error) {
	m, err := s.repo.Latest(ctx, userID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrMeasurementNotFound
	}
	return m, nil
}

// Delete removes one of the user's measurements. Another user's ID is reported as not found.
func (s *MeasurementService) Delete(ctx context.Context, userID, id string) error {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if m == nil || m.UserID != userID {
		return ErrMeasurementNotFound
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	telemetry.EmitAsync(s.events, ctx, telemetry.NewEvent(telemetrydomain.EventMeasurementDeleted, userID, map[string]any{
		"measurement_id": id,
	}))
	return nil
}
