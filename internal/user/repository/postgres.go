package repository

import (
	"context"
	"database/sql"
	"errors"

	"healthtrack/backend/internal/db"
	"healthtrack/backend/internal/user/domain"
)

const userColumns = `id, email, status, created_at, updated_at`

type PostgresRepository struct {
	db db.DBTX
}

// NewPostgresRepository returns a user repository over db, which may be a *sql.DB or a *sql.Tx.
func NewPostgresRepository(conn db.DBTX) *PostgresRepository {
	return &PostgresRepository{db: conn}
}

// GetByID returns the user for id, or nil if not found.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.scanOne(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

// GetByEmail returns the user with the given email, or nil if not found.
func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.scanOne(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

// Create inserts the user. The caller assigns the ID.
func (r *PostgresRepository) Create(ctx context.Context, u *domain.User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, email, status, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`,
		u.ID, u.Email, string(u.Status), u.CreatedAt, u.UpdatedAt)
	return err
}

// Delete removes the user row. Child rows cascade.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	return err
}

func (r *PostgresRepository) scanOne(row *sql.Row) (*domain.User, error) {
	var u domain.User
	var status string
	if err := row.Scan(&u.ID, &u.Email, &status, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	u.Status = domain.UserStatus(status)
	return &u, nil
}
