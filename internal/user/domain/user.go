package domain

import (
	"errors"
	"time"
)

// User is an account holder. Health data hangs off the user ID.
type User struct {
	ID        string
	Email     string
	Status    UserStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusDisabled UserStatus = "disabled"
)

// Validate checks the user before persistence and defaults an empty status to active.
func (u *User) Validate() error {
	if u.Email == "" {
		return errors.New("email is required")
	}
	if u.Status == "" {
		u.Status = UserStatusActive
	}
	if u.Status != UserStatusActive && u.Status != UserStatusDisabled {
		return errors.New("invalid user status")
	}
	return nil
}
