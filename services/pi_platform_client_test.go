package services

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newPlatformClient(baseURL string) *PiPlatformClient {
	return &PiPlatformClient{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: time.Second},
	}
}

func TestIntrospectionVerifyResolvesIdentity(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/me" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer player-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`{"uid":"uid-9","username":"alice"}`))
	}))
	defer srv.Close()

	identity, err := newPlatformClient(srv.URL).Verify("player-token")
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if identity.OwnerID != "uid-9" || identity.Username != "alice" {
		t.Fatalf("unexpected identity %+v", identity)
	}
}

func TestIntrospectionVerifyPropagatesRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	if _, err := newPlatformClient(srv.URL).Verify("bad-token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestIntrospectionVerifyPlatformErrorIsDependencyFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	if _, err := newPlatformClient(srv.URL).Verify("any"); !errors.Is(err, ErrVerifierUnavailable) {
		t.Fatalf("expected ErrVerifierUnavailable for 500, got %v", err)
	}
}

func TestIntrospectionVerifyNetworkErrorIsDependencyFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	if _, err := newPlatformClient(srv.URL).Verify("any"); !errors.Is(err, ErrVerifierUnavailable) {
		t.Fatalf("expected ErrVerifierUnavailable for network error, got %v", err)
	}
}

func TestIntrospectionVerifyRejectsResponseWithoutUID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"username":"alice"}`))
	}))
	defer srv.Close()

	if _, err := newPlatformClient(srv.URL).Verify("any"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for missing uid, got %v", err)
	}
}
