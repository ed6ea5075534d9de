package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/seasons/{seasonID}/registrations", handler.ListRegistrationsBySeason)
	mux.HandleFunc("GET /v1/seasons/{seasonID}/registrations/readiness", handler.GetSchedulingReadiness)
	mux.HandleFunc("GET /v1/registrations/{registrationID}", handler.GetRegistration)
	mux.HandleFunc("GET /v1/seasons/{seasonID}/suspensions", handler.ListSuspensionsBySeason)
	mux.HandleFunc("GET /v1/seasons/{seasonID}/matches", handler.ListMatchesBySeason)
	mux.HandleFunc("GET /v1/matches/{matchID}", handler.GetMatch)
	mux.HandleFunc("GET /v1/matches/{matchID}/readiness", handler.GetMatchReadiness)
	mux.HandleFunc("GET /v1/matches/{matchID}/lineups", handler.ListLineupsByMatch)
	mux.HandleFunc("GET /v1/seasons/{seasonID}/standings", handler.GetStandings)
}

func registerOpsRoutes(mux *http.ServeMux, handler *Handler, opsToken string) {
	registerRegistrationOpsRoutes(mux, handler, opsToken)
	registerDisciplineOpsRoutes(mux, handler, opsToken)
	registerMatchOpsRoutes(mux, handler, opsToken)
	registerLineupOpsRoutes(mux, handler, opsToken)
	registerStandingOpsRoutes(mux, handler, opsToken)
}

func registerRegistrationOpsRoutes(mux *http.ServeMux, handler *Handler, opsToken string) {
	mux.Handle("POST /v1/seasons/{seasonID}/registrations", RequireOpsToken(opsToken, http.HandlerFunc(handler.InviteTeam)))
	mux.Handle("POST /v1/registrations/send", RequireOpsToken(opsToken, http.HandlerFunc(handler.SendInvitations)))
	mux.Handle("POST /v1/registrations/{registrationID}/respond", RequireOpsToken(opsToken, http.HandlerFunc(handler.RespondToInvitation)))
	mux.Handle("POST /v1/registrations/{registrationID}/submit", RequireOpsToken(opsToken, http.HandlerFunc(handler.SubmitRegistration)))
	mux.Handle("POST /v1/registrations/{registrationID}/review", RequireOpsToken(opsToken, http.HandlerFunc(handler.ReviewRegistration)))
}

func registerDisciplineOpsRoutes(mux *http.ServeMux, handler *Handler, opsToken string) {
	mux.Handle("POST /v1/seasons/{seasonID}/cards", RequireOpsToken(opsToken, http.HandlerFunc(handler.RecordCard)))
	mux.Handle("POST /v1/seasons/{seasonID}/suspensions", RequireOpsToken(opsToken, http.HandlerFunc(handler.IssueManualSuspension)))
	mux.Handle("POST /v1/suspensions/{suspensionID}/serve", RequireOpsToken(opsToken, http.HandlerFunc(handler.MarkSuspensionServed)))
	mux.Handle("POST /v1/internal/jobs/recompute", RequireOpsToken(opsToken, http.HandlerFunc(handler.RunRecomputeJob)))
}

func registerMatchOpsRoutes(mux *http.ServeMux, handler *Handler, opsToken string) {
	mux.Handle("POST /v1/seasons/{seasonID}/matches", RequireOpsToken(opsToken, http.HandlerFunc(handler.ScheduleMatch)))
	mux.Handle("POST /v1/matches/{matchID}/prepare", RequireOpsToken(opsToken, http.HandlerFunc(handler.BeginMatchPreparation)))
	mux.Handle("POST /v1/matches/{matchID}/ready", RequireOpsToken(opsToken, http.HandlerFunc(handler.MarkMatchReady)))
	mux.Handle("POST /v1/matches/{matchID}/kickoff", RequireOpsToken(opsToken, http.HandlerFunc(handler.KickoffMatch)))
	mux.Handle("POST /v1/matches/{matchID}/finish", RequireOpsToken(opsToken, http.HandlerFunc(handler.FinishMatch)))
	mux.Handle("POST /v1/matches/{matchID}/report", RequireOpsToken(opsToken, http.HandlerFunc(handler.ReportMatch)))
	mux.Handle("POST /v1/matches/{matchID}/complete", RequireOpsToken(opsToken, http.HandlerFunc(handler.CompleteMatch)))
}

func registerLineupOpsRoutes(mux *http.ServeMux, handler *Handler, opsToken string) {
	mux.Handle("PUT /v1/matches/{matchID}/lineups/{side}", RequireOpsToken(opsToken, http.HandlerFunc(handler.SubmitLineup)))
	mux.Handle("POST /v1/matches/{matchID}/lineups/{side}/review", RequireOpsToken(opsToken, http.HandlerFunc(handler.ReviewLineup)))
	mux.Handle("POST /v1/matches/{matchID}/lineups/{side}/unlock", RequireOpsToken(opsToken, http.HandlerFunc(handler.UnlockLineup)))
}

func registerStandingOpsRoutes(mux *http.ServeMux, handler *Handler, opsToken string) {
	mux.Handle("POST /v1/seasons/{seasonID}/standings/recompute", RequireOpsToken(opsToken, http.HandlerFunc(handler.RecomputeStandings)))
	mux.Handle("POST /v1/seasons/{seasonID}/standings/{teamID}/adjust", RequireOpsToken(opsToken, http.HandlerFunc(handler.AdjustStanding)))
	mux.Handle("DELETE /v1/seasons/{seasonID}/standings/{teamID}/adjust", RequireOpsToken(opsToken, http.HandlerFunc(handler.ResetStandingAdjustment)))
}
