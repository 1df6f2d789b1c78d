package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"

	"github.com/amar93190/Team-up/internal/domain/user"
	"github.com/amar93190/Team-up/internal/infrastructure/push"
	"github.com/amar93190/Team-up/internal/infrastructure/repository/memory"
	idgen "github.com/amar93190/Team-up/internal/platform/id"
	"github.com/amar93190/Team-up/internal/platform/invitecode"
	"github.com/amar93190/Team-up/internal/platform/logging"
	"github.com/amar93190/Team-up/internal/usecase"
)

type staticVerifier struct {
	principals map[string]user.Principal
}

func (v staticVerifier) VerifyAccessToken(_ context.Context, token string) (user.Principal, error) {
	principal, ok := v.principals[token]
	if !ok {
		return user.Principal{}, fmt.Errorf("%w: unknown token", usecase.ErrUnauthorized)
	}
	return principal, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	teamRepo := memory.SeedTeamRepository()
	profileRepo := memory.SeedProfileRepository()
	eventRepo := memory.SeedEventRepository()

	teamService := usecase.NewTeamService(
		teamRepo,
		eventRepo,
		profileRepo,
		invitecode.NewRandomGenerator(),
		idgen.NewRandomGenerator(),
		usecase.NopTeamNotifier{},
		logging.NewNop(),
	)
	eventService := usecase.NewEventService(eventRepo, logging.NewNop())
	notificationService := usecase.NewNotificationService(
		teamRepo,
		push.NewLogSender(logging.NewNop()),
		logging.NewNop(),
	)

	handler := NewHandler(teamService, eventService, notificationService, logging.NewNop())
	verifier := staticVerifier{principals: map[string]user.Principal{
		"token-owner":  {UserID: memory.UserIDSeedOwner, Email: "owner@example.com"},
		"token-member": {UserID: memory.UserIDSeedMember, Email: "member@example.com"},
	}}

	return NewRouter(handler, verifier, logging.NewNop(), []string{"*"}, "job-token")
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	return body
}

func TestRouter_Healthz(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}

func TestRouter_CreateTeam(t *testing.T) {
	router := newTestRouter(t)

	payload := `{"event_id":"` + memory.EventIDCityRun + `","name":"Trail Blazers","size":3}`
	req := httptest.NewRequest(http.MethodPost, "/v1/teams", strings.NewReader(payload))
	req.Header.Set("Authorization", "Bearer token-owner")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeEnvelope(t, rec)
	data, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data object in response")
	}
	if got, _ := data["name"].(string); got != "Trail Blazers" {
		t.Fatalf("unexpected team name: %v", data["name"])
	}
	if got, _ := data["owner_user_id"].(string); got != memory.UserIDSeedOwner {
		t.Fatalf("unexpected owner: %v", data["owner_user_id"])
	}
	if code, _ := data["invite_code"].(string); len(code) != invitecode.Length {
		t.Fatalf("unexpected invite code: %v", data["invite_code"])
	}
}

func TestRouter_CreateTeam_RequiresAuth(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/teams", strings.NewReader(`{"event_id":"x","name":"y"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}

func TestRouter_JoinTeamByInvite(t *testing.T) {
	router := newTestRouter(t)

	payload := `{"invite_code":"` + strings.ToLower(memory.InviteCodeSeeded) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/teams/join", strings.NewReader(payload))
	req.Header.Set("Authorization", "Bearer token-member")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeEnvelope(t, rec)
	data, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data object in response")
	}
	membership, ok := data["membership"].(map[string]any)
	if !ok {
		t.Fatalf("expected membership object in response")
	}
	if got, _ := membership["user_id"].(string); got != memory.UserIDSeedMember {
		t.Fatalf("unexpected member id: %v", membership["user_id"])
	}
	if got, _ := membership["role"].(string); got != "member" {
		t.Fatalf("unexpected role: %v", membership["role"])
	}
}

func TestRouter_JoinTeamByInvite_UnknownCode(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/teams/join", strings.NewReader(`{"invite_code":"ZZ99ZZ"}`))
	req.Header.Set("Authorization", "Bearer token-member")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestRouter_ListTeamMembers(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/teams/"+memory.TeamIDRoadrunners+"/members", nil)
	req.Header.Set("Authorization", "Bearer token-owner")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeEnvelope(t, rec)
	items, ok := body["data"].([]any)
	if !ok || len(items) == 0 {
		t.Fatalf("expected roster in response, got %v", body["data"])
	}
	first, _ := items[0].(map[string]any)
	if got, _ := first["role"].(string); got != "owner" {
		t.Fatalf("expected owner first in roster, got %v", first["role"])
	}
}

func TestRouter_ListTeamMembers_NonMember(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/teams/"+memory.TeamIDRoadrunners+"/members", nil)
	req.Header.Set("Authorization", "Bearer token-member")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}

func TestRouter_ListApprovedEvents(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/events/approved", nil)
	req.Header.Set("Authorization", "Bearer token-owner")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeEnvelope(t, rec)
	items, ok := body["data"].([]any)
	if !ok || len(items) != 2 {
		t.Fatalf("expected two approved events, got %v", body["data"])
	}
}

func TestRouter_SetEventFavorite(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(
		http.MethodPut,
		"/v1/events/"+memory.EventIDCityRun+"/favorite",
		strings.NewReader(`{"favorite":true}`),
	)
	req.Header.Set("Authorization", "Bearer token-owner")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_InternalJobRoutes(t *testing.T) {
	router := newTestRouter(t)

	payload := `{"team_id":"` + memory.TeamIDRoadrunners + `","event_id":"` + memory.EventIDCityRun +
		`","user_id":"` + memory.UserIDSeedMember + `","role":"member"}`

	req := httptest.NewRequest(http.MethodPost, "/jobs/notify/member-joined", strings.NewReader(payload))
	req.Header.Set("X-Internal-Job-Token", "wrong")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 for bad job token, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/jobs/notify/member-joined", strings.NewReader(payload))
	req.Header.Set("X-Internal-Job-Token", "job-token")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeEnvelope(t, rec)
	data, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data object in response")
	}
	// the seeded roster holds only the owner, who is the single recipient.
	if got, _ := data["delivered"].(float64); got != 1 {
		t.Fatalf("expected one delivery, got %v", data["delivered"])
	}
}

func TestRouter_InternalJobRoutes_UnknownTeam(t *testing.T) {
	router := newTestRouter(t)

	payload := `{"team_id":"team-missing","event_id":"evt-1","user_id":"user-2","role":"member"}`
	req := httptest.NewRequest(http.MethodPost, "/jobs/notify/member-joined", strings.NewReader(payload))
	req.Header.Set("X-Internal-Job-Token", "job-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d: %s", rec.Code, rec.Body.String())
	}
}
