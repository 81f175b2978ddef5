package cache

import (
	"context"

	"github.com/riskibarqy/prediction-pool/internal/domain/evaluator"
	"github.com/riskibarqy/prediction-pool/internal/domain/league"
	basecache "github.com/riskibarqy/prediction-pool/internal/platform/cache"
)

type LeagueRepository struct {
	next  league.Repository
	cache *basecache.Store
}

func NewLeagueRepository(next league.Repository, cache *basecache.Store) *LeagueRepository {
	return &LeagueRepository{next: next, cache: cache}
}

func (r *LeagueRepository) List(ctx context.Context) ([]league.League, error) {
	items, err := basecache.Load(ctx, r.cache, "league:list", r.next.List)
	if err != nil {
		return nil, err
	}
	return append([]league.League(nil), items...), nil
}

func (r *LeagueRepository) GetByID(ctx context.Context, leagueID string) (league.League, bool, error) {
	cached, err := basecache.Load(ctx, r.cache, "league:id:"+leagueID, func(ctx context.Context) (cachedLookup[league.League], error) {
		item, exists, err := r.next.GetByID(ctx, leagueID)
		if err != nil {
			return cachedLookup[league.League]{}, err
		}
		return cachedLookup[league.League]{value: item, exists: exists}, nil
	})
	if err != nil {
		return league.League{}, false, err
	}
	return cached.value, cached.exists, nil
}

// ConfigRepository caches evaluator lists and settings per league. Writes go through and drop the league's keys.
type ConfigRepository struct {
	next  league.ConfigRepository
	cache *basecache.Store
}

func NewConfigRepository(next league.ConfigRepository, cache *basecache.Store) *ConfigRepository {
	return &ConfigRepository{next: next, cache: cache}
}

func (r *ConfigRepository) ListEvaluators(ctx context.Context, leagueID string, category evaluator.Category) ([]evaluator.Evaluator, error) {
	key := configKeyPrefix(leagueID) + "evaluators:" + string(category)
	items, err := basecache.Load(ctx, r.cache, key, func(ctx context.Context) ([]evaluator.Evaluator, error) {
		return r.next.ListEvaluators(ctx, leagueID, category)
	})
	if err != nil {
		return nil, err
	}
	return append([]evaluator.Evaluator(nil), items...), nil
}

func (r *ConfigRepository) UpsertEvaluator(ctx context.Context, item evaluator.Evaluator) error {
	if err := r.next.UpsertEvaluator(ctx, item); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, configKeyPrefix(item.LeagueID))
	return nil
}

func (r *ConfigRepository) GetSettings(ctx context.Context, leagueID string) (league.Settings, bool, error) {
	cached, err := basecache.Load(ctx, r.cache, configKeyPrefix(leagueID)+"settings", func(ctx context.Context) (cachedLookup[league.Settings], error) {
		settings, exists, err := r.next.GetSettings(ctx, leagueID)
		if err != nil {
			return cachedLookup[league.Settings]{}, err
		}
		return cachedLookup[league.Settings]{value: settings, exists: exists}, nil
	})
	if err != nil {
		return league.Settings{}, false, err
	}
	return cached.value, cached.exists, nil
}

func (r *ConfigRepository) UpsertSettings(ctx context.Context, settings league.Settings) error {
	if err := r.next.UpsertSettings(ctx, settings); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, configKeyPrefix(settings.LeagueID))
	return nil
}

func configKeyPrefix(leagueID string) string {
	return "league:config:" + leagueID + ":"
}

type cachedLookup[T any] struct {
	value  T
	exists bool
}
