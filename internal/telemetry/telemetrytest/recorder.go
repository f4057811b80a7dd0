// Package telemetrytest provides an event recorder for service tests.
package telemetrytest

import (
	"context"
	"sync"
	"testing"
	"time"

	"healthtrack/backend/internal/telemetry/domain"
)

// Recorder is an EventEmitter that keeps every event and signals each one on a channel,
// so tests can wait for events emitted asynchronously.
type Recorder struct {
	mu     sync.Mutex
	events []*domain.Event
	ch     chan *domain.Event
}

// NewRecorder returns a Recorder that buffers up to 64 unread signals.
func NewRecorder() *Recorder {
	return &Recorder{ch: make(chan *domain.Event, 64)}
}

func (r *Recorder) Emit(ctx context.Context, event *domain.Event) error {
	r.mu.Lock()
	r.events = append(r.events, event)
	r.mu.Unlock()
	select {
	case r.ch <- event:
	default:
	}
	return nil
}

// Wait blocks until an event of eventType arrives and returns it. It fails the test after one second.
func (r *Recorder) Wait(t *testing.T, eventType string) *domain.Event {
	t.Helper()
	timeout := time.After(time.Second)
	for {
		select {
		case ev := <-r.ch:
			if ev.EventType == eventType {
				return ev
			}
		case <-timeout:
			t.Fatalf("event %q was not emitted", eventType)
			return nil
		}
	}
}

// Events returns a copy of every recorded event.
func (r *Recorder) Events() []*domain.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*domain.Event(nil), r.events...)
}
