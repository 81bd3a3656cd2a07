package services

import (
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"math/big"
	"net/http"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWKSVerifier verifies signed Pi tokens locally against the platform's
// published signing keys. Keys are fetched once at startup; the strategy
// needs no network call on the request path.
type JWKSVerifier struct {
	keys     map[string]*rsa.PublicKey // kid → key
	audience string
	issuer   string
}

type jwksDocument struct {
	Keys []struct {
		Kty string `json:"kty"`
		Kid string `json:"kid"`
		Use string `json:"use"`
		N   string `json:"n"`
		E   string `json:"e"`
	} `json:"keys"`
}

// NewJWKSVerifier builds a verifier from an already-parsed key set. Exposed
// for tests and for deployments that pin keys via config.
func NewJWKSVerifier(keys map[string]*rsa.PublicKey, audience, issuer string) *JWKSVerifier {
	return &JWKSVerifier{keys: keys, audience: audience, issuer: issuer}
}

// NewJWKSVerifierFromEnv fetches PI_JWKS_URL and configures audience/issuer
// checks from PI_JWT_AUDIENCE and PI_JWT_ISSUER. An unreachable key endpoint
// is a startup failure: better to refuse to boot than to silently run
// without signature verification.
func NewJWKSVerifierFromEnv() (*JWKSVerifier, error) {
	jwksURL := os.Getenv("PI_JWKS_URL")
	if jwksURL == "" {
		return nil, fmt.Errorf("PI_JWKS_URL environment variable not set")
	}
	audience := os.Getenv("PI_JWT_AUDIENCE")
	if audience == "" {
		return nil, fmt.Errorf("PI_JWT_AUDIENCE environment variable not set")
	}
	issuer := os.Getenv("PI_JWT_ISSUER")
	if issuer == "" {
		return nil, fmt.Errorf("PI_JWT_ISSUER environment variable not set")
	}

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(jwksURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrVerifierUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: JWKS endpoint returned %d", ErrVerifierUnavailable, resp.StatusCode)
	}

	var doc jwksDocument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: bad JWKS document", ErrVerifierUnavailable)
	}

	keys := make(map[string]*rsa.PublicKey)
	for _, k := range doc.Keys {
		if k.Kty != "RSA" || k.Kid == "" {
			continue
		}
		pub, err := parseRSAKey(k.N, k.E)
		if err != nil {
			log.Printf("[PI_AUTH] skipping unparseable JWKS key %q: %v", k.Kid, err)
			continue
		}
		keys[k.Kid] = pub
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("%w: JWKS document contained no usable RSA keys", ErrVerifierUnavailable)
	}

	log.Printf("[PI_AUTH] loaded %d signing key(s) from JWKS", len(keys))
	return NewJWKSVerifier(keys, audience, issuer), nil
}

func parseRSAKey(nB64, eB64 string) (*rsa.PublicKey, error) {
	nBytes, err := base64.RawURLEncoding.DecodeString(nB64)
	if err != nil {
		return nil, fmt.Errorf("bad modulus: %w", err)
	}
	eBytes, err := base64.RawURLEncoding.DecodeString(eB64)
	if err != nil {
		return nil, fmt.Errorf("bad exponent: %w", err)
	}
	e := new(big.Int).SetBytes(eBytes)
	if !e.IsInt64() || e.Int64() <= 0 {
		return nil, fmt.Errorf("exponent out of range")
	}
	return &rsa.PublicKey{N: new(big.Int).SetBytes(nBytes), E: int(e.Int64())}, nil
}

type piClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Verify checks signature, expiry, audience and issuer. Every failure mode
// (unknown kid, bad signature, expired, wrong aud/iss, malformed token)
// collapses to ErrInvalidToken; the specific cause is only logged.
func (v *JWKSVerifier) Verify(token string) (*PiIdentity, error) {
	claims := &piClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		kid, _ := t.Header["kid"].(string)
		key, ok := v.keys[kid]
		if !ok {
			return nil, fmt.Errorf("unknown kid %q", kid)
		}
		return key, nil
	},
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithAudience(v.audience),
		jwt.WithIssuer(v.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		log.Printf("[PI_AUTH] token rejected: %v", err)
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return &PiIdentity{OwnerID: claims.Subject, Username: claims.Username}, nil
}
