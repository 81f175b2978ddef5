package httpapi

import (
	"net/http"

	"github.com/riskibarqy/prediction-pool/internal/usecase"
)

func (h *Handler) PlaceBet(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PlaceBet")
	defer span.End()

	var req placeBetRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	pick, err := req.Prediction.prediction()
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	bet, err := h.betService.PlaceBet(ctx, usecase.PlaceBetInput{
		EntityID:   req.EntityID,
		LeagueID:   req.LeagueID,
		UserID:     req.UserID,
		Prediction: pick,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "place bet failed", "entity_id", req.EntityID, "league_id", req.LeagueID, "user_id", req.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out, err := betToDTO(ctx, bet)
	if err != nil {
		h.logger.ErrorContext(ctx, "encode bet failed", "bet_id", bet.ID, "error", err)
		writeInternalError(ctx, w)
		return
	}
	writeSuccess(ctx, w, http.StatusCreated, out)
}

func (h *Handler) RecordOutcome(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecordOutcome")
	defer span.End()

	entityID := r.PathValue("entityID")
	var req recordOutcomeRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	outcome, err := req.Outcome.outcome()
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	entity, err := h.outcomeService.RecordOutcome(ctx, usecase.RecordOutcomeInput{
		EntityID:   entityID,
		Outcome:    outcome,
		ResolvedAt: req.ResolvedAt,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "record outcome failed", "entity_id", entityID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out, err := entityToDTO(ctx, entity)
	if err != nil {
		h.logger.ErrorContext(ctx, "encode entity failed", "entity_id", entity.ID, "error", err)
		writeInternalError(ctx, w)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) LockDueEntities(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.LockDueEntities")
	defer span.End()

	locked, err := h.outcomeService.LockDue(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "lock due entities failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, lockDueDTO{Locked: locked})
}
