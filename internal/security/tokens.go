package security

import (
	"crypto"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned when a token is malformed, expired or not ours.
var ErrInvalidToken = errors.New("invalid token")

// AccessClaims are the claims carried by an access token. The subject is the user ID.
type AccessClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
}

// TokenProvider issues and validates access JWTs signed with RS256 or ES256.
type TokenProvider struct {
	privateKey crypto.Signer
	publicKey  crypto.PublicKey
	method     jwt.SigningMethod
	issuer     string
	audience   string
	accessTTL  time.Duration
	nowF       func() time.Time
}

// NewTokenProvider returns a TokenProvider for the key pair. The signing method follows the key type.
func NewTokenProvider(privateKey crypto.Signer, publicKey crypto.PublicKey, issuer, audience string, accessTTL time.Duration) (*TokenProvider, error) {
	var method jwt.SigningMethod
	switch KeyAlg(privateKey.Public()) {
	case "RS256":
		method = jwt.SigningMethodRS256
	case "ES256":
		method = jwt.SigningMethodES256
	default:
		return nil, ErrInvalidKey
	}
	return &TokenProvider{
		privateKey: privateKey,
		publicKey:  publicKey,
		method:     method,
		issuer:     issuer,
		audience:   audience,
		accessTTL:  accessTTL,
		nowF:       time.Now,
	}, nil
}

// IssueAccess signs an access token for the user and returns it with its expiry.
func (p *TokenProvider) IssueAccess(userID, email string) (string, time.Time, error) {
	jti, err := generateJTI()
	if err != nil {
		return "", time.Time{}, err
	}
	now := p.nowF().UTC()
	expiresAt := now.Add(p.accessTTL)
	claims := AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   userID,
			Issuer:    p.issuer,
			Audience:  jwt.ClaimStrings{p.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Email: email,
	}
	token, err := jwt.NewWithClaims(p.method, claims).SignedString(p.privateKey)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

// ValidateAccess checks signature, expiry, issuer and audience and returns the user ID.
func (p *TokenProvider) ValidateAccess(tokenString string) (string, error) {
	claims := &AccessClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (interface{}, error) { return p.publicKey, nil },
		jwt.WithValidMethods([]string{p.method.Alg()}),
		jwt.WithIssuer(p.issuer),
		jwt.WithAudience(p.audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(p.nowF),
	)
	if err != nil || !token.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

func generateJTI() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
