package domain

import (
	"strings"
	"time"

	"healthtrack/backend/internal/healthcalc"
	"healthtrack/backend/internal/platform/validate"
)

// MaxNameLength bounds first and last name.
const MaxNameLength = 50

// Profile is the per-user anthropometric profile. Height and weight are stored metric;
// UnitSystem is the user's display preference.
type Profile struct {
	UserID     string                `json:"user_id"`
	FirstName  string                `json:"first_name"`
	LastName   string                `json:"last_name"`
	Age        *int                  `json:"age"`
	Gender     healthcalc.Gender     `json:"gender"`
	HeightCm   *float64              `json:"height_cm"`
	WeightKg   *float64              `json:"weight_kg"`
	UnitSystem healthcalc.UnitSystem `json:"unit_system"`
	CreatedAt  time.Time             `json:"created_at"`
	UpdatedAt  time.Time             `json:"updated_at"`
}

// Input is a profile update as submitted. Height and weight are in UnitSystem units.
type Input struct {
	FirstName  string                `json:"first_name"`
	LastName   string                `json:"last_name"`
	Age        *int                  `json:"age"`
	Gender     healthcalc.Gender     `json:"gender"`
	Height     *float64              `json:"height"`
	Weight     *float64              `json:"weight"`
	UnitSystem healthcalc.UnitSystem `json:"unit_system"`
}

// Apply validates in and copies it onto p, converting height and weight to metric.
// Every field is replaced; absent optional fields clear the stored value.
func (in Input) Apply(p *Profile) error {
	units := in.UnitSystem
	if units == "" {
		units = healthcalc.UnitsMetric
	}
	var c validate.Checker
	first := strings.TrimSpace(in.FirstName)
	last := strings.TrimSpace(in.LastName)
	c.Length("first_name", first, 0, MaxNameLength)
	c.Length("last_name", last, 0, MaxNameLength)
	if in.Age != nil {
		c.Range("age", float64(*in.Age), healthcalc.MinAge, healthcalc.MaxAge)
	}
	if !in.Gender.Valid() {
		c.Add("gender", "must be male, female, other or prefer_not_to_say")
	}
	var heightCm, weightKg *float64
	switch units {
	case healthcalc.UnitsMetric:
		if c.OptionalRange("height", in.Height, healthcalc.MinHeightCm, healthcalc.MaxHeightCm) && in.Height != nil {
			heightCm = ptr(*in.Height)
		}
		if c.OptionalRange("weight", in.Weight, healthcalc.MinWeightKg, healthcalc.MaxWeightKg) && in.Weight != nil {
			weightKg = ptr(*in.Weight)
		}
	case healthcalc.UnitsImperial:
		if c.OptionalRange("height", in.Height, healthcalc.MinHeightIn, healthcalc.MaxHeightIn) && in.Height != nil {
			heightCm = ptr(healthcalc.InchesToCm(*in.Height))
		}
		if c.OptionalRange("weight", in.Weight, healthcalc.MinWeightLb, healthcalc.MaxWeightLb) && in.Weight != nil {
			weightKg = ptr(healthcalc.PoundsToKg(*in.Weight))
		}
	default:
		c.Add("unit_system", "must be metric or imperial")
	}
	if err := c.Err(); err != nil {
		return err
	}
	p.FirstName = first
	p.LastName = last
	p.Age = in.Age
	p.Gender = in.Gender
	p.HeightCm = heightCm
	p.WeightKg = weightKg
	p.UnitSystem = units
	return nil
}

// TargetInput returns what the profile knows for nutrition target resolution.
func (p *Profile) TargetInput() healthcalc.TargetInput {
	if p == nil {
		return healthcalc.TargetInput{}
	}
	return healthcalc.TargetInput{
		HeightCm: p.HeightCm,
		WeightKg: p.WeightKg,
		Age:      p.Age,
		Gender:   p.Gender,
	}
}

func ptr(v float64) *float64 { return &v }
