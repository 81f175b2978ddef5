package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/prediction-pool/internal/infrastructure/repository/memory"
)

// BootstrapSeed loads the demo leagues, evaluators and entities into an empty database.
func BootstrapSeed(ctx context.Context, db *sqlx.DB, now time.Time) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM leagues WHERE deleted_at IS NULL`); err != nil {
		return fmt.Errorf("count leagues for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, l := range memory.SeedLeagues() {
		if err := l.Validate(); err != nil {
			return fmt.Errorf("seed league %s: %w", l.ID, err)
		}
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO leagues (public_id, name, season)
VALUES (:public_id, :name, :season)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id": l.ID,
			"name":      l.Name,
			"season":    l.Season,
		})
		if err != nil {
			return fmt.Errorf("bind seed league %s query: %w", l.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed league %s: %w", l.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}

	config := NewConfigRepository(db)
	for _, item := range memory.SeedEvaluators() {
		if err := config.UpsertEvaluator(ctx, item); err != nil {
			return fmt.Errorf("seed evaluator %s: %w", item.ID, err)
		}
	}
	for _, settings := range memory.SeedSettings() {
		if err := config.UpsertSettings(ctx, settings); err != nil {
			return fmt.Errorf("seed settings %s: %w", settings.LeagueID, err)
		}
	}

	entities := NewEntityRepository(db)
	for _, entity := range memory.SeedEntities(now) {
		if err := entities.Upsert(ctx, entity); err != nil {
			return fmt.Errorf("seed entity %s: %w", entity.ID, err)
		}
	}

	return nil
}
