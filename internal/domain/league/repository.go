package league

import (
	"context"

	"github.com/riskibarqy/prediction-pool/internal/domain/evaluator"
)

// Repository describes league persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]League, error)
	GetByID(ctx context.Context, leagueID string) (League, bool, error)
}

// ConfigRepository stores league evaluator configuration and settings.
type ConfigRepository interface {
	ListEvaluators(ctx context.Context, leagueID string, category evaluator.Category) ([]evaluator.Evaluator, error)
	UpsertEvaluator(ctx context.Context, item evaluator.Evaluator) error
	GetSettings(ctx context.Context, leagueID string) (Settings, bool, error)
	UpsertSettings(ctx context.Context, settings Settings) error
}
