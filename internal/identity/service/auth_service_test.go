package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"healthtrack/backend/internal/identity/identitytest"
	"healthtrack/backend/internal/platform/validate"
	"healthtrack/backend/internal/ratelimit"
	"healthtrack/backend/internal/security"
	"healthtrack/backend/internal/telemetry/domain"
	"healthtrack/backend/internal/telemetry/telemetrytest"
	userdomain "healthtrack/backend/internal/user/domain"
)

type testDeps struct {
	users      *identitytest.UserRepo
	identities *identitytest.IdentityRepo
	tokens     *security.TokenProvider
	events     *telemetrytest.Recorder
}

func newTestAuthService(t *testing.T, limiter ratelimit.Limiter) (*AuthService, *testDeps) {
	t.Helper()
	tokens, err := security.NewTestTokenProvider()
	if err != nil {
		t.Fatalf("NewTestTokenProvider: %v", err)
	}
	d := &testDeps{
		users:      identitytest.NewUserRepo(),
		identities: identitytest.NewIdentityRepo(),
		tokens:     tokens,
		events:     telemetrytest.NewRecorder(),
	}
	svc := NewAuthService(d.users, d.identities, security.NewHasher(4), tokens, limiter, d.events)
	return svc, d
}

func TestRegister_Success(t *testing.T) {
	svc, d := newTestAuthService(t, nil)
	ctx := context.Background()

	res, err := svc.Register(ctx, "  Ana@Example.com ", "secret1")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if res.UserID == "" || res.AccessToken == "" {
		t.Fatalf("Register result = %+v", res)
	}
	if res.Email != "ana@example.com" {
		t.Errorf("Email = %q, want normalized", res.Email)
	}
	userID, err := d.tokens.ValidateAccess(res.AccessToken)
	if err != nil || userID != res.UserID {
		t.Errorf("ValidateAccess = %q, %v", userID, err)
	}
	if d.identities.Len() != 1 {
		t.Errorf("identities = %d, want 1", d.identities.Len())
	}
	ev := d.events.Wait(t, domain.EventAccountRegistered)
	if ev.UserID != res.UserID {
		t.Errorf("event user = %q", ev.UserID)
	}
}

func TestRegister_Duplicate(t *testing.T) {
	svc, _ := newTestAuthService(t, nil)
	ctx := context.Background()
	if _, err := svc.Register(ctx, "a@example.com", "secret1"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	_, err := svc.Register(ctx, "A@example.com", "secret2")
	if !errors.Is(err, ErrEmailAlreadyRegistered) {
		t.Errorf("err = %v, want ErrEmailAlreadyRegistered", err)
	}
}

func TestRegister_Validation(t *testing.T) {
	long := make([]byte, 0, 130)
	for len(long) < 129 {
		long = append(long, 'x')
	}
	testCases := []struct {
		name     string
		email    string
		password string
		field    string
	}{
		{"empty email", "", "secret1", "email"},
		{"bad email", "not-an-email", "secret1", "email"},
		{"short password", "a@example.com", "12345", "password"},
		{"long password", "a@example.com", string(long), "password"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc, _ := newTestAuthService(t, nil)
			_, err := svc.Register(context.Background(), tc.email, tc.password)
			var fe validate.Errors
			if !errors.As(err, &fe) {
				t.Fatalf("err = %v, want validate.Errors", err)
			}
			if fe[0].Field != tc.field {
				t.Errorf("field = %q, want %q", fe[0].Field, tc.field)
			}
		})
	}
}

func TestLogin(t *testing.T) {
	svc, d := newTestAuthService(t, nil)
	ctx := context.Background()
	reg, err := svc.Register(ctx, "a@example.com", "secret1")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	res, err := svc.Login(ctx, "A@EXAMPLE.COM", "secret1")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if res.UserID != reg.UserID {
		t.Errorf("UserID = %q, want %q", res.UserID, reg.UserID)
	}
	d.events.Wait(t, domain.EventAccountSignedIn)

	testCases := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong password", "a@example.com", "wrong-pass"},
		{"unknown email", "b@example.com", "secret1"},
		{"empty", "", ""},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Login(ctx, tc.email, tc.password)
			if !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("err = %v, want ErrInvalidCredentials", err)
			}
		})
	}
}

func TestLogin_DisabledUser(t *testing.T) {
	svc, d := newTestAuthService(t, nil)
	ctx := context.Background()
	_ = d.users.Create(ctx, &userdomain.User{ID: "u1", Email: "off@example.com", Status: userdomain.UserStatusDisabled})
	if _, err := svc.Login(ctx, "off@example.com", "secret1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestLogin_RateLimited(t *testing.T) {
	limiter := ratelimit.NewMemoryLimiter(2, time.Minute)
	svc, _ := newTestAuthService(t, limiter)
	ctx := context.Background()
	if _, err := svc.Register(ctx, "a@example.com", "secret1"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	for i := 0; i < 2; i++ {
		if _, err := svc.Login(ctx, "a@example.com", "wrong-pass"); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("attempt %d: err = %v", i, err)
		}
	}
	_, err := svc.Login(ctx, "a@example.com", "secret1")
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("err = %v, want ErrRateLimited", err)
	}
	var rl *RateLimitedError
	if !errors.As(err, &rl) || rl.RetryAfter <= 0 {
		t.Errorf("RateLimitedError = %+v, want positive RetryAfter", rl)
	}

	limiter.Reset(ctx, ratelimit.Key("login", "a@example.com"))
	if _, err := svc.Login(ctx, "a@example.com", "secret1"); err != nil {
		t.Fatalf("Login after reset: %v", err)
	}
	if got := limiter.Remaining(ratelimit.Key("login", "a@example.com")); got != 2 {
		t.Errorf("Remaining after success = %d, want 2 (counter cleared)", got)
	}
}
