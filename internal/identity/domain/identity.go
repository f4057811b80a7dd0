package domain

import "time"

// Identity is a credential linked to a user. Only local email/password identities exist.
type Identity struct {
	ID           string
	UserID       string
	Provider     IdentityProvider
	ProviderID   string // the normalized email for local identities
	PasswordHash string
	CreatedAt    time.Time
}

type IdentityProvider string

const IdentityProviderLocal IdentityProvider = "local"
