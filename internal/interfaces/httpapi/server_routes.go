package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, metrics MetricsExporter) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if metrics == nil {
		return
	}

	mux.Handle("GET /metrics", metrics.Handler())
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/leagues", handler.ListLeagues)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/leaderboard", handler.Leaderboard)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/users/{userID}/points", handler.UserPoints)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/evaluators", handler.ListEvaluators)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/settings", handler.GetSettings)
	mux.HandleFunc("GET /v1/bets/{betID}/points", handler.BetPoints)
}

func registerInternalRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	internal := func(pattern string, fn http.HandlerFunc) {
		mux.Handle(pattern, RequireInternalJobToken(internalJobToken, fn))
	}

	internal("POST /v1/internal/bets", handler.PlaceBet)
	internal("POST /v1/internal/entities/lock-due", handler.LockDueEntities)
	internal("POST /v1/internal/entities/{entityID}/outcome", handler.RecordOutcome)
	internal("POST /v1/internal/evaluations/pending", handler.EvaluatePending)
	internal("POST /v1/internal/evaluations/{entityID}", handler.EvaluateEntity)
	internal("DELETE /v1/internal/evaluations/{entityID}", handler.ResetEvaluation)
	internal("POST /v1/internal/leagues/{leagueID}/evaluators", handler.SaveEvaluator)
	internal("PUT /v1/internal/leagues/{leagueID}/evaluators/{evaluatorID}", handler.SaveEvaluator)
	internal("PUT /v1/internal/leagues/{leagueID}/settings", handler.SaveSettings)
}
