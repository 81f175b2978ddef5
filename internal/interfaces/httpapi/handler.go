package httpapi

import (
	"context"
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/prediction-pool/internal/platform/logging"
	"github.com/riskibarqy/prediction-pool/internal/usecase"
)

type Handler struct {
	evaluationService *usecase.EvaluationService
	betService        *usecase.BetService
	outcomeService    *usecase.OutcomeService
	leaderboard       *usecase.LeaderboardService
	pointsService     *usecase.PointsService
	configService     *usecase.EvaluatorConfigService
	logger            *logging.Logger
	validator         *validator.Validate
}

func NewHandler(
	evaluationService *usecase.EvaluationService,
	betService *usecase.BetService,
	outcomeService *usecase.OutcomeService,
	leaderboard *usecase.LeaderboardService,
	pointsService *usecase.PointsService,
	configService *usecase.EvaluatorConfigService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		evaluationService: evaluationService,
		betService:        betService,
		outcomeService:    outcomeService,
		leaderboard:       leaderboard,
		pointsService:     pointsService,
		configService:     configService,
		logger:            logger,
		validator:         validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// decodeRequest reads a strict JSON body into dst and validates it.
func (h *Handler) decodeRequest(ctx context.Context, r *http.Request, dst any) error {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return h.validateRequest(ctx, dst)
}
