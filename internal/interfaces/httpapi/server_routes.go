package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/players", handler.ListPlayers)
	mux.HandleFunc("GET /v1/players/{playerID}", handler.GetPlayer)
	mux.HandleFunc("GET /v1/news", handler.GetNews)
}

func registerManagerRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/teams", RequireAuth(verifier, http.HandlerFunc(handler.CreateTeam)))
	mux.Handle("GET /v1/teams/me", RequireAuth(verifier, http.HandlerFunc(handler.GetMyTeam)))
	mux.Handle("GET /v1/teams/me/history", RequireAuth(verifier, http.HandlerFunc(handler.GetMyRosterHistory)))
	mux.Handle("POST /v1/teams/me/players", RequireAuth(verifier, http.HandlerFunc(handler.AddRosterPlayer)))
	mux.Handle("DELETE /v1/teams/me/players/{playerID}", RequireAuth(verifier, http.HandlerFunc(handler.RemoveRosterPlayer)))
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	admin := func(h http.HandlerFunc) http.Handler {
		return RequireAuth(verifier, RequireAdmin(h))
	}

	mux.Handle("POST /v1/admin/players", admin(handler.CreatePlayer))
	mux.Handle("PUT /v1/admin/players/{playerID}", admin(handler.UpdatePlayer))
	mux.Handle("DELETE /v1/admin/players/{playerID}", admin(handler.DeletePlayer))
	mux.Handle("DELETE /v1/admin/players/{playerID}/performances", admin(handler.ResetPlayerPerformances))

	mux.Handle("GET /v1/admin/matches", admin(handler.ListMatches))
	mux.Handle("POST /v1/admin/matches", admin(handler.CreateMatch))
	mux.Handle("DELETE /v1/admin/matches/{matchID}", admin(handler.DeleteMatch))
	mux.Handle("POST /v1/admin/matches/performances", admin(handler.SubmitMatchPerformances))

	mux.Handle("POST /v1/admin/points/reset", admin(handler.ResetAllPoints))
	mux.Handle("GET /v1/admin/teams/{userID}", admin(handler.InspectTeam))

	mux.Handle("GET /v1/admin/reports/team-points", admin(handler.TeamPointsReport))
	mux.Handle("GET /v1/admin/reports/player-points", admin(handler.PlayerPointsReport))

	mux.Handle("GET /v1/admin/settings/team-lock", admin(handler.GetTeamLock))
	mux.Handle("PUT /v1/admin/settings/team-lock", admin(handler.SetTeamLock))

	mux.Handle("PUT /v1/news", admin(handler.SetNews))
}
