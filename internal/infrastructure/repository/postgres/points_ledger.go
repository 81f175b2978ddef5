package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/prediction-pool/internal/domain/evaluator"
	"github.com/riskibarqy/prediction-pool/internal/domain/points"
	qb "github.com/riskibarqy/prediction-pool/internal/platform/querybuilder"
)

// upsertBatchSize keeps a multi-row insert well under the 65535 bind parameter limit.
const upsertBatchSize = 500

type pointsRecordModel struct {
	BetID       string    `db:"bet_public_id"`
	EvaluatorID string    `db:"evaluator_public_id"`
	EntityID    string    `db:"entity_public_id"`
	LeagueID    string    `db:"league_public_id"`
	UserID      string    `db:"user_id"`
	Category    string    `db:"category"`
	Points      int       `db:"points"`
	EvaluatedAt time.Time `db:"evaluated_at"`
}

type userCategoryTotalModel struct {
	UserID   string `db:"user_id"`
	Category string `db:"category"`
	Points   int    `db:"points"`
	Records  int    `db:"records"`
}

type PointsLedger struct {
	db *sqlx.DB
}

func NewPointsLedger(db *sqlx.DB) *PointsLedger {
	return &PointsLedger{db: db}
}

// ReplaceEntity deletes the entity's records and writes the new set in one transaction.
func (l *PointsLedger) ReplaceEntity(ctx context.Context, entityID string, records []points.Record) error {
	tx, err := l.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace points records: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query, args, err := qb.DeleteFrom("points_records").
		Where(qb.Eq("entity_public_id", entityID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete entity points records query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete entity points records: %w", err)
	}

	for start := 0; start < len(records); start += upsertBatchSize {
		end := min(start+upsertBatchSize, len(records))
		if err := upsertRecords(ctx, tx, records[start:end]); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace points records tx: %w", err)
	}
	return nil
}

func upsertRecords(ctx context.Context, tx *sqlx.Tx, records []points.Record) error {
	models := make([]pointsRecordModel, 0, len(records))
	for _, record := range records {
		models = append(models, pointsRecordModel{
			BetID:       record.BetID,
			EvaluatorID: record.EvaluatorID,
			EntityID:    record.EntityID,
			LeagueID:    record.LeagueID,
			UserID:      record.UserID,
			Category:    string(record.Category),
			Points:      record.Points,
			EvaluatedAt: record.EvaluatedAt.UTC(),
		})
	}

	query, args, err := qb.InsertModels("points_records", models, `ON CONFLICT (bet_public_id, evaluator_public_id)
DO UPDATE SET
    entity_public_id = EXCLUDED.entity_public_id,
    league_public_id = EXCLUDED.league_public_id,
    user_id = EXCLUDED.user_id,
    category = EXCLUDED.category,
    points = EXCLUDED.points,
    evaluated_at = EXCLUDED.evaluated_at`)
	if err != nil {
		return fmt.Errorf("build upsert points records query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert points records: %w", err)
	}
	return nil
}

func (l *PointsLedger) ResetByEntity(ctx context.Context, entityID string) (int, error) {
	query, args, err := qb.DeleteFrom("points_records").
		Where(qb.Eq("entity_public_id", entityID)).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build reset points records query: %w", err)
	}
	result, err := l.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("reset points records: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("reset points records rows affected: %w", err)
	}
	return int(affected), nil
}

func (l *PointsLedger) ListByEntity(ctx context.Context, entityID string) ([]points.Record, error) {
	query, args, err := qb.Select("*").From("points_records").
		Where(qb.Eq("entity_public_id", entityID)).
		OrderBy("bet_public_id", "evaluator_public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list points by entity query: %w", err)
	}
	return l.selectRecords(ctx, query, args)
}

func (l *PointsLedger) ListByBet(ctx context.Context, betID string) ([]points.Record, error) {
	query, args, err := qb.Select("*").From("points_records").
		Where(qb.Eq("bet_public_id", betID)).
		OrderBy("evaluator_public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list points by bet query: %w", err)
	}
	return l.selectRecords(ctx, query, args)
}

func (l *PointsLedger) ListByLeagueUser(ctx context.Context, leagueID, userID string) ([]points.Record, error) {
	query, args, err := qb.Select("*").From("points_records").
		Where(
			qb.Eq("league_public_id", leagueID),
			qb.Eq("user_id", userID),
		).
		OrderBy("evaluated_at DESC", "bet_public_id", "evaluator_public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list points by league user query: %w", err)
	}
	return l.selectRecords(ctx, query, args)
}

func (l *PointsLedger) SumByLeague(ctx context.Context, leagueID string) ([]points.UserCategoryTotal, error) {
	query, args, err := qb.Select("user_id", "category", "COALESCE(SUM(points), 0) AS points", "COUNT(1) AS records").
		From("points_records").
		Where(qb.Eq("league_public_id", leagueID)).
		GroupBy("user_id", "category").
		OrderBy("user_id", "category").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build sum points by league query: %w", err)
	}

	var rows []userCategoryTotalModel
	if err := l.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("sum points by league: %w", err)
	}

	out := make([]points.UserCategoryTotal, 0, len(rows))
	for _, row := range rows {
		out = append(out, points.UserCategoryTotal{
			UserID:   row.UserID,
			Category: evaluator.Category(row.Category),
			Points:   row.Points,
			Records:  row.Records,
		})
	}
	return out, nil
}

func (l *PointsLedger) selectRecords(ctx context.Context, query string, args []any) ([]points.Record, error) {
	var rows []pointsRecordModel
	if err := l.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select points records: %w", err)
	}

	out := make([]points.Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, points.Record{
			BetID:       row.BetID,
			EvaluatorID: row.EvaluatorID,
			EntityID:    row.EntityID,
			LeagueID:    row.LeagueID,
			UserID:      row.UserID,
			Category:    evaluator.Category(row.Category),
			Points:      row.Points,
			EvaluatedAt: row.EvaluatedAt.UTC(),
		})
	}
	return out, nil
}
