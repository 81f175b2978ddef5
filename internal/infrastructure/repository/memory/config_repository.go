package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/prediction-pool/internal/domain/evaluator"
	"github.com/riskibarqy/prediction-pool/internal/domain/league"
)

type ConfigRepository struct {
	mu         sync.RWMutex
	evaluators map[string]evaluator.Evaluator
	settings   map[string]league.Settings
}

func NewConfigRepository(evaluators []evaluator.Evaluator, settings []league.Settings) *ConfigRepository {
	r := &ConfigRepository{
		evaluators: make(map[string]evaluator.Evaluator, len(evaluators)),
		settings:   make(map[string]league.Settings, len(settings)),
	}
	for _, item := range evaluators {
		r.evaluators[item.ID] = item
	}
	for _, item := range settings {
		r.settings[item.LeagueID] = item
	}
	return r
}

func (r *ConfigRepository) ListEvaluators(_ context.Context, leagueID string, category evaluator.Category) ([]evaluator.Evaluator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]evaluator.Evaluator, 0)
	for _, item := range r.evaluators {
		if item.LeagueID == leagueID && item.Category() == category {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Kind != out[j].Kind {
			return out[i].Kind < out[j].Kind
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *ConfigRepository) UpsertEvaluator(_ context.Context, item evaluator.Evaluator) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.evaluators[item.ID] = item
	return nil
}

func (r *ConfigRepository) GetSettings(_ context.Context, leagueID string) (league.Settings, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.settings[leagueID]
	return item, ok, nil
}

func (r *ConfigRepository) UpsertSettings(_ context.Context, settings league.Settings) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.settings[settings.LeagueID] = settings
	return nil
}
