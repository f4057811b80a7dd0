package service

import (
	"context"
	"errors"
	"fmt"

	"healthtrack/backend/internal/telemetry"
	telemetrydomain "healthtrack/backend/internal/telemetry/domain"
	"healthtrack/backend/internal/user/domain"
)

// ErrUserNotFound is returned when the caller's account no longer exists.
var ErrUserNotFound = errors.New("user not found")

// UserReader looks up accounts.
type UserReader interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

// Purger removes one kind of per-user data.
type Purger interface {
	DeleteByUser(ctx context.Context, userID string) error
}

// UserDeleter removes the account row itself.
type UserDeleter interface {
	Delete(ctx context.Context, id string) error
}

// Stores are the repositories an account deletion touches, all bound to the same transaction.
type Stores struct {
	Nutrition    Purger
	Measurements Purger
	HealthGoals  Purger
	Goals        Purger
	Profiles     Purger
	Identities   Purger
	Users        UserDeleter
}

// UnitOfWork runs fn with Stores bound to one transaction, committing only when fn returns nil.
type UnitOfWork func(ctx context.Context, fn func(Stores) error) error

// AccountService exposes the caller's account and deletes it with all of its health data.
type AccountService struct {
	users  UserReader
	uow    UnitOfWork
	events telemetry.EventEmitter
}

// NewAccountService returns an AccountService. events may be nil.
func NewAccountService(users UserReader, uow UnitOfWork, events telemetry.EventEmitter) *AccountService {
	return &AccountService{users: users, uow: uow, events: events}
}

// Me returns the caller's account.
func (s *AccountService) Me(ctx context.Context, userID string) (*domain.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// DeleteAccount removes nutrition logs and summaries, measurements, health goals, goals, profile,
// identity and user in one transaction. Audit logs are kept.
func (s *AccountService) DeleteAccount(ctx context.Context, userID string) error {
	if _, err := s.Me(ctx, userID); err != nil {
		return err
	}
	err := s.uow(ctx, func(st Stores) error {
		steps := []struct {
			name string
			p    Purger
		}{
			{"nutrition", st.Nutrition},
			{"measurements", st.Measurements},
			{"health goals", st.HealthGoals},
			{"goals", st.Goals},
			{"profile", st.Profiles},
			{"identities", st.Identities},
		}
		for _, step := range steps {
			if err := step.p.DeleteByUser(ctx, userID); err != nil {
				return fmt.Errorf("delete %s: %w", step.name, err)
			}
		}
		if err := st.Users.Delete(ctx, userID); err != nil {
			return fmt.Errorf("delete user: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	telemetry.EmitAsync(s.events, ctx, telemetry.NewEvent(telemetrydomain.EventAccountDeleted, userID, nil))
	return nil
}
