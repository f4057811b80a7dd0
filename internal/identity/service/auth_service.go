package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	identitydomain "healthtrack/backend/internal/identity/domain"
	"healthtrack/backend/internal/platform/validate"
	"healthtrack/backend/internal/ratelimit"
	"healthtrack/backend/internal/security"
	"healthtrack/backend/internal/telemetry"
	"healthtrack/backend/internal/telemetry/domain"
	userdomain "healthtrack/backend/internal/user/domain"
)

// Sentinel errors for auth service; handler maps them to HTTP status codes.
var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrRateLimited            = errors.New("too many attempts, try again later")
)

// Credential limits.
const (
	MaxEmailLength    = 100
	MinPasswordLength = 6
	MaxPasswordLength = 128
)

const opLogin = "login"

// RateLimitedError carries the wait time. It matches ErrRateLimited.
type RateLimitedError struct {
	RetryAfter time.Duration
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("%s (retry after %s)", ErrRateLimited, e.RetryAfter.Round(time.Second))
}

func (e *RateLimitedError) Is(target error) bool { return target == ErrRateLimited }

// AuthResult holds the outcome of Register or Login.
type AuthResult struct {
	AccessToken string
	ExpiresAt   time.Time
	UserID      string
	Email       string
}

// UserRepo is the minimal user repository needed by the auth service.
type UserRepo interface {
	GetByEmail(ctx context.Context, email string) (*userdomain.User, error)
	Create(ctx context.Context, u *userdomain.User) error
}

// IdentityRepo is the minimal identity repository needed by the auth service.
type IdentityRepo interface {
	GetByUserAndProvider(ctx context.Context, userID string, provider identitydomain.IdentityProvider) (*identitydomain.Identity, error)
	Create(ctx context.Context, i *identitydomain.Identity) error
}

// AuthService implements password-only register and login with access tokens.
type AuthService struct {
	userRepo     UserRepo
	identityRepo IdentityRepo
	hasher       *security.Hasher
	tokens       *security.TokenProvider
	limiter      ratelimit.Limiter
	events       telemetry.EventEmitter
	nowF         func() time.Time
}

// NewAuthService returns an AuthService with the given dependencies. limiter and events may be nil.
func NewAuthService(
	userRepo UserRepo,
	identityRepo IdentityRepo,
	hasher *security.Hasher,
	tokens *security.TokenProvider,
	limiter ratelimit.Limiter,
	events telemetry.EventEmitter,
) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		identityRepo: identityRepo,
		hasher:       hasher,
		tokens:       tokens,
		limiter:      limiter,
		events:       events,
		nowF:         time.Now,
	}
}

// Register creates a user and local identity and signs the new user in.
func (s *AuthService) Register(ctx context.Context, email, password string) (*AuthResult, error) {
	email = normalizeEmail(email)
	if err := validateCredentials(email, password); err != nil {
		return nil, err
	}
	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailAlreadyRegistered
	}
	now := s.nowF().UTC()
	user := &userdomain.User{
		ID:        uuid.New().String(),
		Email:     email,
		Status:    userdomain.UserStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}
	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	identity := &identitydomain.Identity{
		ID:           uuid.New().String(),
		UserID:       user.ID,
		Provider:     identitydomain.IdentityProviderLocal,
		ProviderID:   email,
		PasswordHash: hashed,
		CreatedAt:    now,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	if err := s.identityRepo.Create(ctx, identity); err != nil {
		return nil, err
	}
	telemetry.EmitAsync(s.events, ctx, telemetry.NewEvent(domain.EventAccountRegistered, user.ID, nil))
	return s.issue(user)
}

// Login authenticates with email and password. Attempts are rate limited per email; a successful
// login clears the counter.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	key := ratelimit.Key(opLogin, email)
	if s.limiter != nil {
		if ok, retryAfter := s.limiter.Allow(ctx, key); !ok {
			return nil, &RateLimitedError{RetryAfter: retryAfter}
		}
	}
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Status != userdomain.UserStatusActive {
		s.hasher.CompareDummy(password)
		return nil, ErrInvalidCredentials
	}
	ident, err := s.identityRepo.GetByUserAndProvider(ctx, user.ID, identitydomain.IdentityProviderLocal)
	if err != nil {
		return nil, err
	}
	if ident == nil || ident.PasswordHash == "" {
		s.hasher.CompareDummy(password)
		return nil, ErrInvalidCredentials
	}
	if err := s.hasher.Compare(ident.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}
	if s.limiter != nil {
		s.limiter.Reset(ctx, key)
	}
	telemetry.EmitAsync(s.events, ctx, telemetry.NewEvent(domain.EventAccountSignedIn, user.ID, nil))
	return s.issue(user)
}

func (s *AuthService) issue(user *userdomain.User) (*AuthResult, error) {
	token, exp, err := s.tokens.IssueAccess(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	return &AuthResult{AccessToken: token, ExpiresAt: exp, UserID: user.ID, Email: user.Email}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateCredentials(email, password string) error {
	var c validate.Checker
	c.Email("email", email, MaxEmailLength)
	c.Length("password", password, MinPasswordLength, MaxPasswordLength)
	return c.Err()
}
