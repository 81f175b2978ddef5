package httpapi

import (
	"net/http"

	"github.com/riskibarqy/prediction-pool/internal/usecase"
)

func (h *Handler) ListLeagues(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeagues")
	defer span.End()

	items, err := h.configService.ListLeagues(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list leagues failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]leagueDTO, 0, len(items))
	for _, item := range items {
		out = append(out, leagueToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) ListEvaluators(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListEvaluators")
	defer span.End()

	leagueID := r.PathValue("leagueID")
	items, err := h.configService.ListEvaluators(ctx, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "list evaluators failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]evaluatorDTO, 0, len(items))
	for _, item := range items {
		out = append(out, evaluatorToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

// SaveEvaluator creates an evaluator (POST) or replaces the one named in the path (PUT).
func (h *Handler) SaveEvaluator(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SaveEvaluator")
	defer span.End()

	leagueID := r.PathValue("leagueID")
	evaluatorID := r.PathValue("evaluatorID")
	var req saveEvaluatorRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.configService.SaveEvaluator(ctx, usecase.SaveEvaluatorInput{
		ID:       evaluatorID,
		LeagueID: leagueID,
		Kind:     req.Type,
		Points:   *req.Points,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "save evaluator failed", "league_id", leagueID, "evaluator_id", evaluatorID, "type", req.Type, "error", err)
		writeError(ctx, w, err)
		return
	}

	status := http.StatusOK
	if evaluatorID == "" {
		status = http.StatusCreated
	}
	writeSuccess(ctx, w, status, evaluatorToDTO(item))
}

func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSettings")
	defer span.End()

	leagueID := r.PathValue("leagueID")
	settings, err := h.configService.GetSettings(ctx, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "get league settings failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, settingsToDTO(settings))
}

// SaveSettings merges the provided fields into the league's current settings.
func (h *Handler) SaveSettings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SaveSettings")
	defer span.End()

	leagueID := r.PathValue("leagueID")
	var req saveSettingsRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	current, err := h.configService.GetSettings(ctx, leagueID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	saved, err := h.configService.SaveSettings(ctx, req.apply(current))
	if err != nil {
		h.logger.WarnContext(ctx, "save league settings failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, settingsToDTO(saved))
}
