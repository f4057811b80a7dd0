// Package producer publishes domain events to a message broker.
package producer

import (
	"context"

	"healthtrack/backend/internal/telemetry/domain"
)

// Producer publishes events. Callers use it best-effort: log and ignore errors.
type Producer interface {
	// Emit sends a single event. Implementations may block briefly.
	Emit(ctx context.Context, event *domain.Event) error
	// Close releases resources. Safe to call more than once.
	Close() error
}
