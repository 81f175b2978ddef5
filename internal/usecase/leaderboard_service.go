package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/prediction-pool/internal/domain/leaderboard"
	"github.com/riskibarqy/prediction-pool/internal/domain/league"
	"github.com/riskibarqy/prediction-pool/internal/domain/points"
	basecache "github.com/riskibarqy/prediction-pool/internal/platform/cache"
)

const leaderboardCachePrefix = "leaderboard:"

type LeaderboardService struct {
	leagueRepo league.Repository
	configRepo league.ConfigRepository
	ledger     points.Ledger
	cache      *basecache.Store
}

func NewLeaderboardService(
	leagueRepo league.Repository,
	configRepo league.ConfigRepository,
	ledger points.Ledger,
	cache *basecache.Store,
) *LeaderboardService {
	return &LeaderboardService{
		leagueRepo: leagueRepo,
		configRepo: configRepo,
		ledger:     ledger,
		cache:      cache,
	}
}

// Leaderboard returns the ranked entries of a league, served from cache until the ledger changes.
func (s *LeaderboardService) Leaderboard(ctx context.Context, leagueID string) ([]leaderboard.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.Leaderboard")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return nil, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}
	if _, exists, err := s.leagueRepo.GetByID(ctx, leagueID); err != nil {
		return nil, fmt.Errorf("get league: %w", err)
	} else if !exists {
		return nil, fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}

	entries, err := basecache.Load(ctx, s.cache, leaderboardCachePrefix+leagueID, func(ctx context.Context) ([]leaderboard.Entry, error) {
		return s.build(ctx, leagueID)
	})
	if err != nil {
		return nil, err
	}
	return append([]leaderboard.Entry(nil), entries...), nil
}

func (s *LeaderboardService) Invalidate(ctx context.Context, leagueID string) {
	if s.cache == nil {
		return
	}
	s.cache.Delete(ctx, leaderboardCachePrefix+leagueID)
}

func (s *LeaderboardService) build(ctx context.Context, leagueID string) ([]leaderboard.Entry, error) {
	totals, err := s.ledger.SumByLeague(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("sum points by league: %w", err)
	}

	settings, ok, err := s.configRepo.GetSettings(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("get league settings: %w", err)
	}
	if !ok {
		settings = league.DefaultSettings(leagueID)
	}

	return leaderboard.Build(totals, settings.Leaderboard), nil
}
