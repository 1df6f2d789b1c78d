package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	registerAuthorizedTeamRoutes(mux, handler, verifier)
	registerAuthorizedEventRoutes(mux, handler, verifier)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /jobs/notify/team-created", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunTeamCreatedNotifyJob)))
	mux.Handle("POST /jobs/notify/member-joined", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunMemberJoinedNotifyJob)))
}

func registerAuthorizedTeamRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/teams", RequireAuth(verifier, http.HandlerFunc(handler.CreateTeam)))
	mux.Handle("POST /v1/teams/join", RequireAuth(verifier, http.HandlerFunc(handler.JoinTeamByInvite)))
	mux.Handle("GET /v1/teams/me", RequireAuth(verifier, http.HandlerFunc(handler.ListMyTeams)))
	mux.Handle("GET /v1/teams/{teamID}/members", RequireAuth(verifier, http.HandlerFunc(handler.ListTeamMembers)))
}

func registerAuthorizedEventRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/events/approved", RequireAuth(verifier, http.HandlerFunc(handler.ListApprovedEvents)))
	mux.Handle("PUT /v1/events/{eventID}/favorite", RequireAuth(verifier, http.HandlerFunc(handler.SetEventFavorite)))
}
