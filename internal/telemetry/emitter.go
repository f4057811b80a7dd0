package telemetry

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"healthtrack/backend/internal/telemetry/domain"
)

// SourceAPI is the Source of events raised by the HTTP API.
const SourceAPI = "api"

// EventEmitter emits domain events. Best-effort; callers log and ignore errors.
type EventEmitter interface {
	Emit(ctx context.Context, event *domain.Event) error
}

// NewEvent builds an event with a fresh ID and the current time. metadata is JSON-encoded;
// an unencodable value is dropped rather than failing the caller.
func NewEvent(eventType, userID string, metadata any) *domain.Event {
	ev := &domain.Event{
		ID:        uuid.New().String(),
		EventType: eventType,
		UserID:    userID,
		Source:    SourceAPI,
		CreatedAt: time.Now().UTC(),
	}
	if metadata != nil {
		if b, err := json.Marshal(metadata); err == nil {
			ev.Metadata = b
		}
	}
	return ev
}

// Fanout emits to every non-nil emitter and joins their errors.
type Fanout []EventEmitter

// Emit sends event to each emitter in order.
func (f Fanout) Emit(ctx context.Context, event *domain.Event) error {
	var errs []error
	for _, e := range f {
		if e == nil {
			continue
		}
		if err := e.Emit(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
