package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/prediction-pool/internal/domain/evaluator"
	"github.com/riskibarqy/prediction-pool/internal/domain/leaderboard"
	"github.com/riskibarqy/prediction-pool/internal/domain/league"
	qb "github.com/riskibarqy/prediction-pool/internal/platform/querybuilder"
)

type LeagueRepository struct {
	db *sqlx.DB
}

func NewLeagueRepository(db *sqlx.DB) *LeagueRepository {
	return &LeagueRepository{db: db}
}

func (r *LeagueRepository) List(ctx context.Context) ([]league.League, error) {
	query, args, err := qb.Select("*").From("leagues").
		Where(qb.IsNull("deleted_at")).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select leagues query: %w", err)
	}

	var rows []leagueTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select leagues: %w", err)
	}

	out := make([]league.League, 0, len(rows))
	for _, row := range rows {
		out = append(out, leagueFromRow(row))
	}

	return out, nil
}

func (r *LeagueRepository) GetByID(ctx context.Context, leagueID string) (league.League, bool, error) {
	query, args, err := qb.Select("*").From("leagues").
		Where(
			qb.Eq("public_id", leagueID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return league.League{}, false, fmt.Errorf("build get league by id query: %w", err)
	}

	var row leagueTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return league.League{}, false, nil
		}
		return league.League{}, false, fmt.Errorf("get league by id: %w", err)
	}

	return leagueFromRow(row), true, nil
}

func leagueFromRow(row leagueTableModel) league.League {
	return league.League{
		ID:        row.PublicID,
		Name:      row.Name,
		Season:    row.Season,
		CreatedAt: row.CreatedAt.UTC(),
	}
}

// ConfigRepository persists league evaluators and league settings.
type ConfigRepository struct {
	db *sqlx.DB
}

func NewConfigRepository(db *sqlx.DB) *ConfigRepository {
	return &ConfigRepository{db: db}
}

func (r *ConfigRepository) ListEvaluators(ctx context.Context, leagueID string, category evaluator.Category) ([]evaluator.Evaluator, error) {
	query, args, err := qb.Select("*").From("league_evaluators").
		Where(
			qb.Eq("league_public_id", leagueID),
			qb.Eq("category", string(category)),
			qb.IsNull("deleted_at"),
		).
		OrderBy("public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list league evaluators query: %w", err)
	}

	var rows []evaluatorTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list league evaluators: %w", err)
	}

	out := make([]evaluator.Evaluator, 0, len(rows))
	for _, row := range rows {
		kind, err := evaluator.ParseKind(row.Kind)
		if err != nil {
			return nil, fmt.Errorf("decode evaluator %s: %w", row.PublicID, err)
		}
		out = append(out, evaluator.Evaluator{
			ID:        row.PublicID,
			LeagueID:  row.LeagueID,
			Kind:      kind,
			Points:    row.Points,
			UpdatedAt: row.UpdatedAt.UTC(),
		})
	}
	return out, nil
}

func (r *ConfigRepository) UpsertEvaluator(ctx context.Context, item evaluator.Evaluator) error {
	updatedAt := item.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}
	insertModel := evaluatorInsertModel{
		PublicID:  item.ID,
		LeagueID:  item.LeagueID,
		Kind:      item.Kind.String(),
		Category:  string(item.Category()),
		Points:    item.Points,
		UpdatedAt: updatedAt,
	}
	query, args, err := qb.InsertModel("league_evaluators", insertModel, `ON CONFLICT (public_id)
DO UPDATE SET
    kind = EXCLUDED.kind,
    category = EXCLUDED.category,
    points = EXCLUDED.points,
    updated_at = EXCLUDED.updated_at,
    deleted_at = NULL`)
	if err != nil {
		return fmt.Errorf("build upsert league evaluator query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert league evaluator: %w", err)
	}
	return nil
}

func (r *ConfigRepository) GetSettings(ctx context.Context, leagueID string) (league.Settings, bool, error) {
	query, args, err := qb.Select("*").From("league_settings").
		Where(qb.Eq("league_public_id", leagueID)).
		ToSQL()
	if err != nil {
		return league.Settings{}, false, fmt.Errorf("build get league settings query: %w", err)
	}

	var row settingsTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return league.Settings{}, false, nil
		}
		return league.Settings{}, false, fmt.Errorf("get league settings: %w", err)
	}

	return league.Settings{
		LeagueID: row.LeagueID,
		Scoring: evaluator.Rules{
			ScoreDifferencePercent:       row.ScoreDifferencePercent,
			ScoreDifferenceIncludesExact: row.ScoreDifferenceIncludesExact,
			PlayoffAdvance:               evaluator.PlayoffAdvanceRule(row.PlayoffAdvance),
		},
		Leaderboard: leaderboard.Options{
			TieBreak:    leaderboard.TieBreak(row.TieBreak),
			RankingMode: leaderboard.RankingMode(row.RankingMode),
		},
		UpdatedAt: row.UpdatedAt.UTC(),
	}, true, nil
}

func (r *ConfigRepository) UpsertSettings(ctx context.Context, settings league.Settings) error {
	updatedAt := settings.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}
	insertModel := settingsTableModel{
		LeagueID:                     settings.LeagueID,
		ScoreDifferencePercent:       settings.Scoring.ScoreDifferencePercent,
		ScoreDifferenceIncludesExact: settings.Scoring.ScoreDifferenceIncludesExact,
		PlayoffAdvance:               string(settings.Scoring.PlayoffAdvance),
		TieBreak:                     string(settings.Leaderboard.TieBreak),
		RankingMode:                  string(settings.Leaderboard.RankingMode),
		UpdatedAt:                    updatedAt,
	}
	query, args, err := qb.InsertModel("league_settings", insertModel, `ON CONFLICT (league_public_id)
DO UPDATE SET
    score_difference_percent = EXCLUDED.score_difference_percent,
    score_difference_includes_exact = EXCLUDED.score_difference_includes_exact,
    playoff_advance = EXCLUDED.playoff_advance,
    tie_break = EXCLUDED.tie_break,
    ranking_mode = EXCLUDED.ranking_mode,
    updated_at = EXCLUDED.updated_at`)
	if err != nil {
		return fmt.Errorf("build upsert league settings query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert league settings: %w", err)
	}
	return nil
}
