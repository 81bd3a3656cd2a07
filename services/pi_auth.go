package services

import (
	"errors"
	"fmt"
	"log"
	"os"
)

// PiIdentity is the trusted identity resolved from a bearer credential.
// OwnerID is the Pi-platform-issued UID (canonical key); Username is a
// display attribute and may be empty depending on the strategy.
type PiIdentity struct {
	OwnerID  string
	Username string
}

// Verification failures collapse to ErrInvalidToken regardless of which
// check failed (signature, expiry, audience, ...) so callers cannot probe
// which one it was. ErrVerifierUnavailable means *our* upstream failed and
// maps to 503, not 401.
var (
	ErrInvalidToken        = errors.New("invalid access token")
	ErrVerifierUnavailable = errors.New("token verifier unavailable")
)

// TokenVerifier resolves a raw bearer token to a Pi identity. The strategy
// is fixed at deployment time via AUTH_STRATEGY; it is never inferred from
// the shape of an inbound token.
type TokenVerifier interface {
	Verify(token string) (*PiIdentity, error)
}

// InsecureVerifier treats the raw token as the owner UID. No cryptographic
// guarantee; only acceptable behind a trusted, mutually authenticated edge.
type InsecureVerifier struct{}

func (InsecureVerifier) Verify(token string) (*PiIdentity, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}
	return &PiIdentity{OwnerID: token}, nil
}

// NewVerifierFromEnv selects the verification strategy from AUTH_STRATEGY:
// "introspection" (default), "jwt", or "insecure".
func NewVerifierFromEnv() (TokenVerifier, error) {
	strategy := os.Getenv("AUTH_STRATEGY")
	if strategy == "" {
		strategy = "introspection"
	}

	switch strategy {
	case "introspection":
		return NewPiPlatformClient(), nil
	case "jwt":
		verifier, err := NewJWKSVerifierFromEnv()
		if err != nil {
			return nil, fmt.Errorf("jwt verifier init: %w", err)
		}
		return verifier, nil
	case "insecure":
		log.Println("⚠️  [AUTH] AUTH_STRATEGY=insecure — tokens are trusted as-is, use only behind a trusted edge")
		return InsecureVerifier{}, nil
	default:
		return nil, fmt.Errorf("unknown AUTH_STRATEGY %q (want introspection, jwt or insecure)", strategy)
	}
}
