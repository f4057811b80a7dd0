package telemetry

import (
	"context"
	"log"
	"time"

	"healthtrack/backend/internal/telemetry/domain"
)

// emitTimeout bounds a single async emit. Used by EmitAsync and by ShutdownDrainDuration.
const emitTimeout = 5 * time.Second

// ShutdownDrainDuration is how long to wait after the servers stop before shutting down OTel providers
// so in-flight async emits can finish. Must be >= emitTimeout.
const ShutdownDrainDuration = emitTimeout

// EmitAsync runs Emit in a goroutine so the request is not blocked. Errors are logged.
//
// emitter and event may be nil. The goroutine uses context.Background() with emitTimeout so request
// cancellation does not abort an in-flight emit.
func EmitAsync(emitter EventEmitter, ctx context.Context, event *domain.Event) {
	if emitter == nil || event == nil {
		return
	}
	go func() {
		emitCtx, cancel := context.WithTimeout(context.Background(), emitTimeout)
		defer cancel()
		if err := emitter.Emit(emitCtx, event); err != nil {
			log.Printf("telemetry: async emit %s failed: %v", event.EventType, err)
		}
	}()
}
