package repository

import (
	"context"
	"database/sql"

	"healthtrack/backend/internal/audit/domain"
	"healthtrack/backend/internal/db"
)

type PostgresRepository struct {
	db db.DBTX
}

// NewPostgresRepository returns an audit log repository over db.
func NewPostgresRepository(conn db.DBTX) *PostgresRepository {
	return &PostgresRepository{db: conn}
}

// Create inserts the entry. The caller assigns the ID.
func (r *PostgresRepository) Create(ctx context.Context, a *domain.AuditLog) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO audit_logs (id, user_id, action, resource, ip, metadata, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		a.ID, db.NullString(a.UserID), a.Action, a.Resource, a.IP, db.NullString(a.Metadata), a.CreatedAt)
	return err
}

// ListByUser returns the user's entries, newest first.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.AuditLog, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, action, resource, ip, metadata, created_at
		 FROM audit_logs WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*domain.AuditLog
	for rows.Next() {
		var a domain.AuditLog
		var uid, meta sql.NullString
		if err := rows.Scan(&a.ID, &uid, &a.Action, &a.Resource, &a.IP, &meta, &a.CreatedAt); err != nil {
			return nil, err
		}
		a.UserID = uid.String
		a.Metadata = meta.String
		out = append(out, &a)
	}
	return out, rows.Err()
}
