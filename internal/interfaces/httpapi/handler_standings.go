package httpapi

import (
	"net/http"
)

func (h *Handler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Leaderboard")
	defer span.End()

	leagueID := r.PathValue("leagueID")
	entries, err := h.leaderboard.Leaderboard(ctx, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "get leaderboard failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leaderboardToDTO(entries))
}

func (h *Handler) UserPoints(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UserPoints")
	defer span.End()

	leagueID := r.PathValue("leagueID")
	userID := r.PathValue("userID")
	result, err := h.pointsService.UserPoints(ctx, leagueID, userID)
	if err != nil {
		h.logger.WarnContext(ctx, "get user points failed", "league_id", leagueID, "user_id", userID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, userPointsToDTO(result))
}

func (h *Handler) BetPoints(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.BetPoints")
	defer span.End()

	betID := r.PathValue("betID")
	records, err := h.pointsService.ListByBet(ctx, betID)
	if err != nil {
		h.logger.WarnContext(ctx, "list bet points failed", "bet_id", betID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, pointsRecordsToDTO(records))
}
