package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/prediction-pool/internal/domain/evaluator"
	"github.com/riskibarqy/prediction-pool/internal/domain/league"
	"github.com/riskibarqy/prediction-pool/internal/platform/id"
)

type EvaluatorConfigService struct {
	leagueRepo   league.Repository
	configRepo   league.ConfigRepository
	leaderboards LeaderboardInvalidator
	idGen        id.Generator
	now          func() time.Time
}

type SaveEvaluatorInput struct {
	ID       string
	LeagueID string
	Kind     string
	Points   int
}

func NewEvaluatorConfigService(
	leagueRepo league.Repository,
	configRepo league.ConfigRepository,
	leaderboards LeaderboardInvalidator,
	idGen id.Generator,
) *EvaluatorConfigService {
	if idGen == nil {
		idGen = id.NewUUIDGenerator()
	}
	return &EvaluatorConfigService{
		leagueRepo:   leagueRepo,
		configRepo:   configRepo,
		leaderboards: leaderboards,
		idGen:        idGen,
		now:          time.Now,
	}
}

// SaveEvaluator validates and stores a league evaluator. Out-of-range points are rejected here
// so evaluation never sees them.
func (s *EvaluatorConfigService) SaveEvaluator(ctx context.Context, input SaveEvaluatorInput) (evaluator.Evaluator, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EvaluatorConfigService.SaveEvaluator")
	defer span.End()

	input.LeagueID = strings.TrimSpace(input.LeagueID)
	if input.LeagueID == "" {
		return evaluator.Evaluator{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}
	kind, err := evaluator.ParseKind(input.Kind)
	if err != nil {
		return evaluator.Evaluator{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if err := s.ensureLeague(ctx, input.LeagueID); err != nil {
		return evaluator.Evaluator{}, err
	}

	item := evaluator.Evaluator{
		ID:        strings.TrimSpace(input.ID),
		LeagueID:  input.LeagueID,
		Kind:      kind,
		Points:    input.Points,
		UpdatedAt: s.now().UTC(),
	}
	if item.ID == "" {
		item.ID, err = s.idGen.NewID()
		if err != nil {
			return evaluator.Evaluator{}, fmt.Errorf("generate evaluator id: %w", err)
		}
	}
	if err := item.Validate(); err != nil {
		return evaluator.Evaluator{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	if err := s.configRepo.UpsertEvaluator(ctx, item); err != nil {
		return evaluator.Evaluator{}, fmt.Errorf("upsert evaluator: %w", err)
	}
	return item, nil
}

// ListLeagues returns every league that can carry evaluator configuration.
func (s *EvaluatorConfigService) ListLeagues(ctx context.Context) ([]league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EvaluatorConfigService.ListLeagues")
	defer span.End()

	items, err := s.leagueRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list leagues: %w", err)
	}
	return items, nil
}

func (s *EvaluatorConfigService) ListEvaluators(ctx context.Context, leagueID string) ([]evaluator.Evaluator, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EvaluatorConfigService.ListEvaluators")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if err := s.ensureLeague(ctx, leagueID); err != nil {
		return nil, err
	}

	out := make([]evaluator.Evaluator, 0, len(evaluator.Categories)*2)
	for _, category := range evaluator.Categories {
		items, err := s.configRepo.ListEvaluators(ctx, leagueID, category)
		if err != nil {
			return nil, fmt.Errorf("list evaluators for %s: %w", category, err)
		}
		out = append(out, items...)
	}
	return out, nil
}

func (s *EvaluatorConfigService) GetSettings(ctx context.Context, leagueID string) (league.Settings, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EvaluatorConfigService.GetSettings")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if err := s.ensureLeague(ctx, leagueID); err != nil {
		return league.Settings{}, err
	}

	settings, ok, err := s.configRepo.GetSettings(ctx, leagueID)
	if err != nil {
		return league.Settings{}, fmt.Errorf("get league settings: %w", err)
	}
	if !ok {
		return league.DefaultSettings(leagueID), nil
	}
	return settings, nil
}

// SaveSettings stores league scoring and ranking rules. Ranking changes take effect on the next read.
func (s *EvaluatorConfigService) SaveSettings(ctx context.Context, settings league.Settings) (league.Settings, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EvaluatorConfigService.SaveSettings")
	defer span.End()

	settings.LeagueID = strings.TrimSpace(settings.LeagueID)
	if err := settings.Validate(); err != nil {
		return league.Settings{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if err := s.ensureLeague(ctx, settings.LeagueID); err != nil {
		return league.Settings{}, err
	}

	settings.UpdatedAt = s.now().UTC()
	if err := s.configRepo.UpsertSettings(ctx, settings); err != nil {
		return league.Settings{}, fmt.Errorf("upsert league settings: %w", err)
	}
	if s.leaderboards != nil {
		s.leaderboards.Invalidate(ctx, settings.LeagueID)
	}
	return settings, nil
}

func (s *EvaluatorConfigService) ensureLeague(ctx context.Context, leagueID string) error {
	if leagueID == "" {
		return fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}
	_, exists, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return fmt.Errorf("get league: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}
	return nil
}
