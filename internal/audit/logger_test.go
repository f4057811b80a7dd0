package audit

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"healthtrack/backend/internal/audit/domain"
)

type memAuditRepo struct {
	mu      sync.Mutex
	entries []*domain.AuditLog
	err     error
}

func (r *memAuditRepo) Create(ctx context.Context, a *domain.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.entries = append(r.entries, a)
	return nil
}

func (r *memAuditRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.AuditLog, error) {
	return nil, nil
}

func TestLogger_LogEvent(t *testing.T) {
	repo := &memAuditRepo{}
	l := NewLogger(repo, func(context.Context) string { return "10.0.0.1" })
	fixed := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	l.nowF = func() time.Time { return fixed }

	l.LogEvent(context.Background(), "u1", "create", "measurement", `{"id":"m1"}`)
	if len(repo.entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(repo.entries))
	}
	e := repo.entries[0]
	if e.ID == "" || e.UserID != "u1" || e.Action != "create" || e.Resource != "measurement" {
		t.Errorf("entry = %+v", e)
	}
	if e.IP != "10.0.0.1" || !e.CreatedAt.Equal(fixed) || e.Metadata != `{"id":"m1"}` {
		t.Errorf("entry = %+v", e)
	}
}

func TestLogger_UnknownIP(t *testing.T) {
	repo := &memAuditRepo{}
	NewLogger(repo, nil).LogEvent(context.Background(), "", "login", "account", "")
	NewLogger(repo, func(context.Context) string { return "" }).LogEvent(context.Background(), "", "login", "account", "")
	for _, e := range repo.entries {
		if e.IP != "unknown" {
			t.Errorf("IP = %q, want unknown", e.IP)
		}
	}
}

func TestLogger_BestEffort(t *testing.T) {
	repo := &memAuditRepo{err: errors.New("db down")}
	NewLogger(repo, nil).LogEvent(context.Background(), "u1", "delete", "account", "")
	var nilLogger *Logger
	nilLogger.LogEvent(context.Background(), "u1", "delete", "account", "")
	NewLogger(nil, nil).LogEvent(context.Background(), "u1", "delete", "account", "")
}
