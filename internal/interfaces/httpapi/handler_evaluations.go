package httpapi

import (
	"net/http"
)

func (h *Handler) EvaluateEntity(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.EvaluateEntity")
	defer span.End()

	entityID := r.PathValue("entityID")
	result, err := h.evaluationService.EvaluateOne(ctx, entityID)
	if err != nil {
		h.logger.WarnContext(ctx, "evaluate entity failed",
			"entity_id", entityID,
			"records", result.Records,
			"failed_bets", len(result.FailedBets),
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) EvaluatePending(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.EvaluatePending")
	defer span.End()

	summary, err := h.evaluationService.EvaluatePending(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "evaluate pending failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, summary)
}

func (h *Handler) ResetEvaluation(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ResetEvaluation")
	defer span.End()

	entityID := r.PathValue("entityID")
	removed, err := h.evaluationService.ResetEvaluation(ctx, entityID)
	if err != nil {
		h.logger.WarnContext(ctx, "reset evaluation failed", "entity_id", entityID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, resetEvaluationDTO{EntityID: entityID, RemovedRecords: removed})
}
