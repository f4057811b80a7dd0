package audit

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"healthtrack/backend/internal/audit/domain"
	auditrepo "healthtrack/backend/internal/audit/repository"
)

// IPExtractor returns the client IP for the request carried by ctx.
type IPExtractor func(context.Context) string

// AuditLogger writes a single audit event with an explicit action and resource.
// LogEvent is best-effort: failures are logged and do not affect the caller.
type AuditLogger interface {
	LogEvent(ctx context.Context, userID, action, resource, metadata string)
}

// Logger implements AuditLogger on top of the audit repository.
type Logger struct {
	repo        auditrepo.Repository
	ipExtractor IPExtractor
	nowF        func() time.Time
}

// NewLogger returns a Logger persisting to repo. ipExtractor may be nil; the IP is then "unknown".
func NewLogger(repo auditrepo.Repository, ipExtractor IPExtractor) *Logger {
	return &Logger{repo: repo, ipExtractor: ipExtractor, nowF: time.Now}
}

// LogEvent writes one entry.
func (l *Logger) LogEvent(ctx context.Context, userID, action, resource, metadata string) {
	if l == nil || l.repo == nil {
		return
	}
	ip := "unknown"
	if l.ipExtractor != nil {
		if v := l.ipExtractor(ctx); v != "" {
			ip = v
		}
	}
	entry := &domain.AuditLog{
		ID:        uuid.New().String(),
		UserID:    userID,
		Action:    action,
		Resource:  resource,
		IP:        ip,
		Metadata:  metadata,
		CreatedAt: l.nowF().UTC(),
	}
	if err := l.repo.Create(ctx, entry); err != nil {
		log.Printf("audit: failed to log event %s/%s: %v", action, resource, err)
	}
}
