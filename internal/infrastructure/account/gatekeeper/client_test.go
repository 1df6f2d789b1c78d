package gatekeeper

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/amar93190/Team-up/internal/platform/resilience"
	"github.com/amar93190/Team-up/internal/usecase"
)

func TestClient_VerifyAccessToken(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"active":true,"user_id":"user-1","email":"user-1@example.com"}`))
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL, "/v1/introspect", resilience.CircuitBreakerConfig{}, nil)

	principal, err := client.VerifyAccessToken(t.Context(), "token-abc")
	if err != nil {
		t.Fatalf("verify access token: %v", err)
	}
	if principal.UserID != "user-1" || principal.Email != "user-1@example.com" {
		t.Fatalf("unexpected principal: %+v", principal)
	}

	// second call for the same token is served from the principal cache.
	if _, err := client.VerifyAccessToken(t.Context(), "token-abc"); err != nil {
		t.Fatalf("cached verify: %v", err)
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("expected a single introspection call, got %d", got)
	}
}

func TestClient_VerifyAccessToken_Denied(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL, "/v1/introspect", resilience.CircuitBreakerConfig{}, nil)

	_, err := client.VerifyAccessToken(t.Context(), "token-bad")
	if !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestClient_VerifyAccessToken_InactiveToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"active":false}`))
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL, "/v1/introspect", resilience.CircuitBreakerConfig{}, nil)

	_, err := client.VerifyAccessToken(t.Context(), "token-stale")
	if !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestClient_VerifyAccessToken_BreakerOpensOnServerErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL, "/v1/introspect", resilience.CircuitBreakerConfig{
		FailureThreshold: 2,
		OpenTimeout:      time.Minute,
		HalfOpenMaxReq:   1,
	}, nil)

	for i := 0; i < 2; i++ {
		if _, err := client.VerifyAccessToken(t.Context(), "token-unlucky"); !errors.Is(err, usecase.ErrDependencyUnavailable) {
			t.Fatalf("call %d: expected ErrDependencyUnavailable, got %v", i, err)
		}
	}

	// breaker is now open; the request never reaches the server.
	_, err := client.VerifyAccessToken(t.Context(), "token-unlucky")
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected circuit open error, got %v", err)
	}
}

func TestBuildURL(t *testing.T) {
	tests := []struct {
		base string
		path string
		want string
	}{
		{base: "https://auth.internal/", path: "v1/introspect", want: "https://auth.internal/v1/introspect"},
		{base: "https://auth.internal", path: "/v1/introspect", want: "https://auth.internal/v1/introspect"},
		{base: "https://auth.internal", path: "", want: "https://auth.internal"},
		{base: "https://auth.internal", path: "https://other.internal/x", want: "https://other.internal/x"},
	}

	for _, tc := range tests {
		if got := buildURL(tc.base, tc.path); got != tc.want {
			t.Fatalf("buildURL(%q, %q) = %q, want %q", tc.base, tc.path, got, tc.want)
		}
	}
}
