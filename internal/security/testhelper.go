package security

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"time"
)

// GenerateTestKeyPEM returns a fresh ECDSA P-256 key pair as PEM strings. For tests only.
func GenerateTestKeyPEM() (privatePEM, publicPEM string, err error) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return "", "", err
	}
	privDER, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return "", "", err
	}
	pubDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		return "", "", err
	}
	privatePEM = string(pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: privDER}))
	publicPEM = string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER}))
	return privatePEM, publicPEM, nil
}

// NewTestTokenProvider returns a TokenProvider over a freshly generated key pair.
// For unit tests only.
func NewTestTokenProvider() (*TokenProvider, error) {
	privPEM, pubPEM, err := GenerateTestKeyPEM()
	if err != nil {
		return nil, err
	}
	signer, pub, err := LoadKeyPair(privPEM, pubPEM)
	if err != nil {
		return nil, err
	}
	return NewTokenProvider(signer, pub, "test-issuer", "test-audience", 15*time.Minute)
}
