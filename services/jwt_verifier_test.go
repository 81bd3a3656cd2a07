package services

import (
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	testAudience = "tricky-turns"
	testIssuer   = "https://auth.minepi.com"
)

func newTestVerifier(t *testing.T) (*JWKSVerifier, *rsa.PrivateKey) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("key generation failed: %v", err)
	}
	verifier := NewJWKSVerifier(map[string]*rsa.PublicKey{"key-1": &key.PublicKey}, testAudience, testIssuer)
	return verifier, key
}

func signToken(t *testing.T, key *rsa.PrivateKey, kid string, claims jwt.Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = kid
	signed, err := token.SignedString(key)
	if err != nil {
		t.Fatalf("signing failed: %v", err)
	}
	return signed
}

func validClaims() jwt.RegisteredClaims {
	return jwt.RegisteredClaims{
		Subject:   "uid-42",
		Audience:  jwt.ClaimStrings{testAudience},
		Issuer:    testIssuer,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
}

func TestJWTVerifyAcceptsValidToken(t *testing.T) {
	verifier, key := newTestVerifier(t)

	token := signToken(t, key, "key-1", struct {
		Username string `json:"username"`
		jwt.RegisteredClaims
	}{"alice", validClaims()})

	identity, err := verifier.Verify(token)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if identity.OwnerID != "uid-42" {
		t.Fatalf("expected owner uid-42, got %q", identity.OwnerID)
	}
	if identity.Username != "alice" {
		t.Fatalf("expected username alice, got %q", identity.Username)
	}
}

func TestJWTVerifyFailuresCollapseToInvalidToken(t *testing.T) {
	verifier, key := newTestVerifier(t)

	otherKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("key generation failed: %v", err)
	}

	expired := validClaims()
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))

	wrongAudience := validClaims()
	wrongAudience.Audience = jwt.ClaimStrings{"someone-else"}

	wrongIssuer := validClaims()
	wrongIssuer.Issuer = "https://evil.example"

	noExpiry := validClaims()
	noExpiry.ExpiresAt = nil

	noSubject := validClaims()
	noSubject.Subject = ""

	cases := []struct {
		name  string
		token string
	}{
		{"expired", signToken(t, key, "key-1", expired)},
		{"wrong audience", signToken(t, key, "key-1", wrongAudience)},
		{"wrong issuer", signToken(t, key, "key-1", wrongIssuer)},
		{"missing expiry", signToken(t, key, "key-1", noExpiry)},
		{"missing subject", signToken(t, key, "key-1", noSubject)},
		{"unknown kid", signToken(t, key, "rotated-away", validClaims())},
		{"wrong key", signToken(t, otherKey, "key-1", validClaims())},
		{"malformed", "not.a.jwt"},
	}

	for _, tc := range cases {
		if _, err := verifier.Verify(tc.token); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("%s: expected ErrInvalidToken, got %v", tc.name, err)
		}
	}
}

func TestJWTVerifyRejectsUnexpectedAlgorithm(t *testing.T) {
	verifier, _ := newTestVerifier(t)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, validClaims())
	token.Header["kid"] = "key-1"
	signed, err := token.SignedString([]byte("shared-secret"))
	if err != nil {
		t.Fatalf("signing failed: %v", err)
	}

	if _, err := verifier.Verify(signed); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for HS256 token, got %v", err)
	}
}

func TestInsecureVerifierPassesTokenThrough(t *testing.T) {
	identity, err := InsecureVerifier{}.Verify("uid-7")
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if identity.OwnerID != "uid-7" {
		t.Fatalf("expected owner uid-7, got %q", identity.OwnerID)
	}

	if _, err := (InsecureVerifier{}).Verify(""); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for empty token, got %v", err)
	}
}
