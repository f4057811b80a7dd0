package otel

import (
	"context"
	"time"

	otellog "go.opentelemetry.io/otel/log"
	sdklog "go.opentelemetry.io/otel/sdk/log"

	"healthtrack/backend/internal/telemetry"
	"healthtrack/backend/internal/telemetry/domain"
)

const instrumentationName = "healthtrack/backend/telemetry"

// recordEmitter is the part of otellog.Logger the adapter uses.
type recordEmitter interface {
	Emit(ctx context.Context, rec otellog.Record)
}

// NewEventEmitter returns an EventEmitter that sends events as OTel log records.
// A nil provider yields a no-op emitter.
func NewEventEmitter(provider *sdklog.LoggerProvider) telemetry.EventEmitter {
	if provider == nil {
		return noopEmitter{}
	}
	return &otelEmitter{logger: provider.Logger(instrumentationName)}
}

// NewEventEmitterWithLogger returns an emitter writing to the given logger.
func NewEventEmitterWithLogger(logger recordEmitter) telemetry.EventEmitter {
	return &otelEmitter{logger: logger}
}

type noopEmitter struct{}

func (noopEmitter) Emit(context.Context, *domain.Event) error { return nil }

type otelEmitter struct {
	logger recordEmitter
}

// Emit maps the event onto a log record: metadata becomes the body, identifiers become attributes.
func (e *otelEmitter) Emit(ctx context.Context, event *domain.Event) error {
	if event == nil {
		return nil
	}
	var rec otellog.Record
	ts := event.CreatedAt
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	rec.SetTimestamp(ts)
	rec.SetSeverity(otellog.SeverityInfo)
	rec.SetEventName(event.EventType)
	if len(event.Metadata) > 0 {
		rec.SetBody(otellog.StringValue(string(event.Metadata)))
	}
	for _, kv := range []struct{ k, v string }{
		{"event_id", event.ID},
		{"event_type", event.EventType},
		{"user_id", event.UserID},
		{"source", event.Source},
	} {
		if kv.v != "" {
			rec.AddAttributes(otellog.String(kv.k, kv.v))
		}
	}
	e.logger.Emit(ctx, rec)
	return nil
}
