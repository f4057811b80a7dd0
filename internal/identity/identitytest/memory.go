// Package identitytest provides in-memory user and identity repositories for tests.
package identitytest

import (
	"context"
	"sync"

	identitydomain "healthtrack/backend/internal/identity/domain"
	userdomain "healthtrack/backend/internal/user/domain"
)

// UserRepo is an in-memory user repository.
type UserRepo struct {
	mu      sync.Mutex
	byID    map[string]*userdomain.User
	byEmail map[string]*userdomain.User
}

// NewUserRepo returns an empty UserRepo.
func NewUserRepo() *UserRepo {
	return &UserRepo{byID: map[string]*userdomain.User{}, byEmail: map[string]*userdomain.User{}}
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*userdomain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byID[id], nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*userdomain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byEmail[email], nil
}

func (r *UserRepo) Create(ctx context.Context, u *userdomain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u2 := *u
	r.byID[u.ID] = &u2
	r.byEmail[u.Email] = &u2
	return nil
}

func (r *UserRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.byID[id]; ok {
		delete(r.byEmail, u.Email)
		delete(r.byID, id)
	}
	return nil
}

// IdentityRepo is an in-memory identity repository.
type IdentityRepo struct {
	mu sync.Mutex
	m  map[string]*identitydomain.Identity
}

// NewIdentityRepo returns an empty IdentityRepo.
func NewIdentityRepo() *IdentityRepo {
	return &IdentityRepo{m: map[string]*identitydomain.Identity{}}
}

func (r *IdentityRepo) GetByUserAndProvider(ctx context.Context, userID string, provider identitydomain.IdentityProvider) (*identitydomain.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, i := range r.m {
		if i.UserID == userID && i.Provider == provider {
			return i, nil
		}
	}
	return nil, nil
}

func (r *IdentityRepo) Create(ctx context.Context, i *identitydomain.Identity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m[i.ID] = i
	return nil
}

func (r *IdentityRepo) DeleteByUser(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, i := range r.m {
		if i.UserID == userID {
			delete(r.m, id)
		}
	}
	return nil
}

// Len returns the number of stored identities.
func (r *IdentityRepo) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.m)
}
