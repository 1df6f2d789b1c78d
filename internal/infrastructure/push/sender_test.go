package push

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"

	"github.com/amar93190/Team-up/internal/usecase"
)

func TestProviderClient_SendPush(t *testing.T) {
	var gotAuth, gotContentType string
	var gotBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewProviderClient(server.Client(), server.URL, "push-token", nil)

	err := client.SendPush(t.Context(), "user-1", usecase.Push{Title: "Team created", Body: "Share code AB12CD"})
	if err != nil {
		t.Fatalf("send push: %v", err)
	}

	if gotAuth != "Bearer push-token" {
		t.Fatalf("unexpected authorization header: %s", gotAuth)
	}
	if gotContentType != "application/json" {
		t.Fatalf("unexpected content type: %s", gotContentType)
	}

	var decoded sendRequest
	if err := sonic.Unmarshal(gotBody, &decoded); err != nil {
		t.Fatalf("unmarshal request body: %v", err)
	}
	if decoded.UserID != "user-1" || decoded.Title != "Team created" {
		t.Fatalf("unexpected payload: %+v", decoded)
	}
}

func TestProviderClient_SendPush_ProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewProviderClient(server.Client(), server.URL, "", nil)

	if err := client.SendPush(t.Context(), "user-1", usecase.Push{Title: "x"}); err == nil {
		t.Fatalf("expected error for non-2xx response")
	}
}

func TestProviderClient_SendPush_RequiresEndpoint(t *testing.T) {
	client := NewProviderClient(nil, "   ", "", nil)

	if err := client.SendPush(t.Context(), "user-1", usecase.Push{}); err == nil {
		t.Fatalf("expected error for missing endpoint")
	}
}
