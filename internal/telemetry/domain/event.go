package domain

import (
	"encoding/json"
	"time"
)

// Event types published by the API.
const (
	EventAccountRegistered  = "account.registered"
	EventAccountSignedIn    = "account.signed_in"
	EventAccountDeleted     = "account.deleted"
	EventProfileUpdated     = "profile.updated"
	EventMeasurementCreated = "measurement.recorded"
	EventMeasurementDeleted = "measurement.deleted"
	EventGoalsUpdated       = "goals.updated"
	EventHealthGoalCreated  = "health_goal.created"
	EventNutritionLogged    = "nutrition.logged"
	EventMealPresetCreated  = "meal_preset.created"
	EventMealPresetApplied  = "meal_preset.applied"

	// EventHTTPRequest is raised by the request telemetry middleware.
	EventHTTPRequest = "http_request"
)

// Event is a domain event. It is published as JSON to Kafka and as an OTel log record.
type Event struct {
	ID        string          `json:"id"`
	EventType string          `json:"eventType"`
	UserID    string          `json:"userId,omitempty"`
	Source    string          `json:"source"`
	Metadata  json.RawMessage `json:"metadata,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}
