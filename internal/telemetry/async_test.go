package telemetry

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"healthtrack/backend/internal/telemetry/domain"
)

// mockEventEmitter implements EventEmitter for tests.
type mockEventEmitter struct {
	mu      sync.Mutex
	events  []*domain.Event
	emitErr error
	delay   time.Duration
	done    chan struct{}
}

func (m *mockEventEmitter) Emit(ctx context.Context, event *domain.Event) error {
	if m.delay > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(m.delay):
		}
	}
	m.mu.Lock()
	m.events = append(m.events, event)
	m.mu.Unlock()
	if m.done != nil {
		m.done <- struct{}{}
	}
	return m.emitErr
}

func (m *mockEventEmitter) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.events)
}

func TestEmitAsync_NilArgs(t *testing.T) {
	EmitAsync(nil, context.Background(), &domain.Event{EventType: "x"})
	m := &mockEventEmitter{}
	EmitAsync(m, context.Background(), nil)
	time.Sleep(20 * time.Millisecond)
	if m.count() != 0 {
		t.Error("nil event should not be emitted")
	}
}

func TestEmitAsync_Delivers(t *testing.T) {
	m := &mockEventEmitter{done: make(chan struct{}, 1)}
	EmitAsync(m, context.Background(), NewEvent(domain.EventMeasurementCreated, "u1", nil))
	select {
	case <-m.done:
	case <-time.After(time.Second):
		t.Fatal("event was not emitted")
	}
	if m.count() != 1 {
		t.Errorf("events = %d, want 1", m.count())
	}
}

func TestEmitAsync_IgnoresCancelledRequestContext(t *testing.T) {
	m := &mockEventEmitter{done: make(chan struct{}, 1), delay: 10 * time.Millisecond}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	EmitAsync(m, ctx, NewEvent("x", "", nil))
	select {
	case <-m.done:
	case <-time.After(time.Second):
		t.Fatal("emit should not be tied to the request context")
	}
}

func TestEmitAsync_ErrorDoesNotPanic(t *testing.T) {
	m := &mockEventEmitter{done: make(chan struct{}, 1), emitErr: errors.New("down")}
	EmitAsync(m, context.Background(), NewEvent("x", "", nil))
	select {
	case <-m.done:
	case <-time.After(time.Second):
		t.Fatal("event was not emitted")
	}
}

func TestNewEvent(t *testing.T) {
	ev := NewEvent(domain.EventProfileUpdated, "u1", map[string]any{"bmi": 24.2})
	if ev.ID == "" || ev.CreatedAt.IsZero() {
		t.Fatalf("NewEvent = %+v, want ID and timestamp", ev)
	}
	if ev.Source != SourceAPI || ev.UserID != "u1" {
		t.Errorf("NewEvent = %+v", ev)
	}
	var md map[string]float64
	if err := json.Unmarshal(ev.Metadata, &md); err != nil || md["bmi"] != 24.2 {
		t.Errorf("metadata = %s, %v", ev.Metadata, err)
	}
	if bad := NewEvent("x", "", func() {}); bad.Metadata != nil {
		t.Error("unencodable metadata should be dropped")
	}
}

func TestFanout(t *testing.T) {
	a := &mockEventEmitter{}
	b := &mockEventEmitter{emitErr: errors.New("b failed")}
	err := Fanout{a, nil, b}.Emit(context.Background(), NewEvent("x", "", nil))
	if err == nil {
		t.Fatal("Fanout should return the failing emitter's error")
	}
	if a.count() != 1 || b.count() != 1 {
		t.Errorf("counts a=%d b=%d, want 1/1", a.count(), b.count())
	}
	if err := (Fanout{}).Emit(context.Background(), NewEvent("x", "", nil)); err != nil {
		t.Errorf("empty Fanout = %v", err)
	}
}
