package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/prediction-pool/internal/domain/league"
	"github.com/riskibarqy/prediction-pool/internal/domain/prediction"
	"github.com/riskibarqy/prediction-pool/internal/platform/id"
)

type BetService struct {
	leagueRepo league.Repository
	entityRepo prediction.EntityRepository
	betRepo    prediction.BetRepository
	idGen      id.Generator
	now        func() time.Time
}

type PlaceBetInput struct {
	EntityID   string
	LeagueID   string
	UserID     string
	Prediction prediction.Prediction
}

func NewBetService(
	leagueRepo league.Repository,
	entityRepo prediction.EntityRepository,
	betRepo prediction.BetRepository,
	idGen id.Generator,
) *BetService {
	if idGen == nil {
		idGen = id.NewUUIDGenerator()
	}
	return &BetService{
		leagueRepo: leagueRepo,
		entityRepo: entityRepo,
		betRepo:    betRepo,
		idGen:      idGen,
		now:        time.Now,
	}
}

// PlaceBet stores a member's prediction while the entity is still open for bets.
func (s *BetService) PlaceBet(ctx context.Context, input PlaceBetInput) (prediction.Bet, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BetService.PlaceBet")
	defer span.End()

	input.EntityID = strings.TrimSpace(input.EntityID)
	input.LeagueID = strings.TrimSpace(input.LeagueID)
	input.UserID = strings.TrimSpace(input.UserID)
	if input.EntityID == "" || input.LeagueID == "" || input.UserID == "" {
		return prediction.Bet{}, fmt.Errorf("%w: entity id, league id and user id are required", ErrInvalidInput)
	}
	if input.Prediction == nil {
		return prediction.Bet{}, fmt.Errorf("%w: prediction is required", ErrInvalidInput)
	}

	if _, exists, err := s.leagueRepo.GetByID(ctx, input.LeagueID); err != nil {
		return prediction.Bet{}, fmt.Errorf("get league: %w", err)
	} else if !exists {
		return prediction.Bet{}, fmt.Errorf("%w: league=%s", ErrNotFound, input.LeagueID)
	}

	entity, exists, err := s.entityRepo.GetByID(ctx, input.EntityID)
	if err != nil {
		return prediction.Bet{}, fmt.Errorf("get entity: %w", err)
	}
	if !exists {
		return prediction.Bet{}, fmt.Errorf("%w: entity=%s", ErrNotFound, input.EntityID)
	}
	if !entity.Accepts(input.Prediction.EntityKind(), prediction.SubjectOf(input.Prediction)) {
		return prediction.Bet{}, fmt.Errorf("%w: prediction %T does not fit entity kind %s subject %q", ErrInvalidInput, input.Prediction, entity.Kind, entity.ResolvedSubject())
	}
	if err := input.Prediction.Validate(); err != nil {
		return prediction.Bet{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	now := s.now().UTC()
	if !entity.AcceptsBets(now) {
		return prediction.Bet{}, fmt.Errorf("%w: entity=%s lock_at=%s status=%s", ErrBettingClosed, entity.ID, entity.LockAt.UTC().Format(time.RFC3339), entity.Status)
	}

	if _, exists, err := s.betRepo.FindActive(ctx, input.EntityID, input.LeagueID, input.UserID); err != nil {
		return prediction.Bet{}, fmt.Errorf("find active bet: %w", err)
	} else if exists {
		return prediction.Bet{}, fmt.Errorf("%w: bet for entity=%s user=%s", ErrAlreadyExists, input.EntityID, input.UserID)
	}

	betID, err := s.idGen.NewID()
	if err != nil {
		return prediction.Bet{}, fmt.Errorf("generate bet id: %w", err)
	}

	bet := prediction.Bet{
		ID:         betID,
		EntityID:   input.EntityID,
		LeagueID:   input.LeagueID,
		UserID:     input.UserID,
		Prediction: input.Prediction,
		CreatedAt:  now,
	}
	if err := s.betRepo.Create(ctx, bet); err != nil {
		if errors.Is(err, prediction.ErrDuplicateBet) {
			return prediction.Bet{}, fmt.Errorf("%w: bet for entity=%s user=%s", ErrAlreadyExists, input.EntityID, input.UserID)
		}
		return prediction.Bet{}, fmt.Errorf("create bet: %w", err)
	}

	return bet, nil
}
