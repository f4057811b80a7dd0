package security

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrInvalidKey is returned when PEM content or the key type is not usable.
var ErrInvalidKey = errors.New("invalid key")

// LoadPEM returns s as PEM bytes when it is inline PEM, otherwise reads the file at path s.
// Inline PEM from env files often carries literal "\n"; those are turned into newlines.
func LoadPEM(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, ErrInvalidKey
	}
	if strings.HasPrefix(s, "-----BEGIN") {
		return []byte(strings.ReplaceAll(s, `\n`, "\n")), nil
	}
	return os.ReadFile(s)
}

func decodeBlock(s string) (*pem.Block, error) {
	b, err := LoadPEM(s)
	if err != nil {
		return nil, err
	}
	block, _ := pem.Decode(b)
	if block == nil {
		return nil, ErrInvalidKey
	}
	return block, nil
}

// ParsePrivateKey parses an RSA or ECDSA private key (PKCS#1, PKCS#8 or SEC 1).
func ParsePrivateKey(s string) (crypto.Signer, error) {
	block, err := decodeBlock(s)
	if err != nil {
		return nil, err
	}
	switch block.Type {
	case "RSA PRIVATE KEY":
		return x509.ParsePKCS1PrivateKey(block.Bytes)
	case "EC PRIVATE KEY":
		return x509.ParseECPrivateKey(block.Bytes)
	case "PRIVATE KEY":
		key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
		if err != nil {
			return nil, err
		}
		switch k := key.(type) {
		case *rsa.PrivateKey:
			return k, nil
		case *ecdsa.PrivateKey:
			return k, nil
		}
	}
	return nil, ErrInvalidKey
}

// ParsePublicKey parses an RSA or ECDSA public key (PKCS#1 or PKIX).
func ParsePublicKey(s string) (crypto.PublicKey, error) {
	block, err := decodeBlock(s)
	if err != nil {
		return nil, err
	}
	switch block.Type {
	case "RSA PUBLIC KEY":
		return x509.ParsePKCS1PublicKey(block.Bytes)
	case "PUBLIC KEY":
		pub, err := x509.ParsePKIXPublicKey(block.Bytes)
		if err != nil {
			return nil, err
		}
		if KeyAlg(pub) == "" {
			return nil, ErrInvalidKey
		}
		return pub, nil
	}
	return nil, ErrInvalidKey
}

// KeyAlg returns the JWT algorithm for pub: RS256 for RSA, ES256 for ECDSA, empty otherwise.
func KeyAlg(pub crypto.PublicKey) string {
	switch pub.(type) {
	case *rsa.PublicKey:
		return "RS256"
	case *ecdsa.PublicKey:
		return "ES256"
	default:
		return ""
	}
}

// LoadKeyPair parses both keys and checks that the public key belongs to the private key.
func LoadKeyPair(privateKey, publicKey string) (crypto.Signer, crypto.PublicKey, error) {
	signer, err := ParsePrivateKey(privateKey)
	if err != nil {
		return nil, nil, fmt.Errorf("private key: %w", err)
	}
	pub, err := ParsePublicKey(publicKey)
	if err != nil {
		return nil, nil, fmt.Errorf("public key: %w", err)
	}
	type equaler interface{ Equal(crypto.PublicKey) bool }
	eq, ok := signer.Public().(equaler)
	if !ok || !eq.Equal(pub) {
		return nil, nil, fmt.Errorf("key pair mismatch: %w", ErrInvalidKey)
	}
	return signer, pub, nil
}
