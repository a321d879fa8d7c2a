package auth

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Verifier is the pluggable credential scheme: Hash transforms a password for
// storage at registration, Verify checks a submitted password against the
// stored form.
type Verifier interface {
	Hash(password string) (string, error)
	Verify(stored, candidate string) bool
}

// NewVerifier selects a scheme by name. "plain" keeps the legacy
// store-and-compare behavior; "bcrypt" is the recommended replacement.
func NewVerifier(scheme string, cost int) (Verifier, error) {
	switch scheme {
	case "", "plain":
		return PlainVerifier{}, nil
	case "bcrypt":
		return BcryptVerifier{Cost: cost}, nil
	default:
		return nil, fmt.Errorf("unknown credential scheme %q", scheme)
	}
}

// PlainVerifier stores passwords as-is and compares them directly. This is
// insecure and exists only for parity with the data the original app wrote;
// prefer BcryptVerifier for anything real.
type PlainVerifier struct{}

func (PlainVerifier) Hash(password string) (string, error) { return password, nil }

func (PlainVerifier) Verify(stored, candidate string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(candidate)) == 1
}

// BcryptVerifier hashes at registration and compares with bcrypt.
type BcryptVerifier struct {
	// Cost is the bcrypt work factor; zero means bcrypt.DefaultCost.
	Cost int
}

func (v BcryptVerifier) Hash(password string) (string, error) {
	cost := v.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func (v BcryptVerifier) Verify(stored, candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(candidate)) == nil
}
