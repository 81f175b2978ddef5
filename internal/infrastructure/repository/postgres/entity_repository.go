package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/prediction-pool/internal/domain/prediction"
	qb "github.com/riskibarqy/prediction-pool/internal/platform/querybuilder"
)

type EntityRepository struct {
	db *sqlx.DB
}

func NewEntityRepository(db *sqlx.DB) *EntityRepository {
	return &EntityRepository{db: db}
}

func (r *EntityRepository) GetByID(ctx context.Context, entityID string) (prediction.Entity, bool, error) {
	query, args, err := qb.Select("*").From("prediction_entities").
		Where(qb.Eq("public_id", entityID)).
		ToSQL()
	if err != nil {
		return prediction.Entity{}, false, fmt.Errorf("build get entity query: %w", err)
	}

	var row entityTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return prediction.Entity{}, false, nil
		}
		return prediction.Entity{}, false, fmt.Errorf("get entity: %w", err)
	}

	entity, err := entityFromRow(row)
	if err != nil {
		return prediction.Entity{}, false, fmt.Errorf("decode entity %s: %w", row.PublicID, err)
	}
	return entity, true, nil
}

func (r *EntityRepository) ListByStatus(ctx context.Context, status prediction.Status) ([]prediction.Entity, error) {
	query, args, err := qb.Select("*").From("prediction_entities").
		Where(qb.Eq("status", string(status))).
		OrderBy("lock_at", "public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list entities by status query: %w", err)
	}
	return r.selectEntities(ctx, query, args)
}

func (r *EntityRepository) ListLockDue(ctx context.Context, now time.Time) ([]prediction.Entity, error) {
	query, args, err := qb.Select("*").From("prediction_entities").
		Where(
			qb.Eq("status", string(prediction.StatusScheduled)),
			qb.Lte("lock_at", now.UTC()),
		).
		OrderBy("lock_at", "public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list lock due entities query: %w", err)
	}
	return r.selectEntities(ctx, query, args)
}

func (r *EntityRepository) selectEntities(ctx context.Context, query string, args []any) ([]prediction.Entity, error) {
	var rows []entityTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select entities: %w", err)
	}

	out := make([]prediction.Entity, 0, len(rows))
	for _, row := range rows {
		entity, err := entityFromRow(row)
		if err != nil {
			return nil, fmt.Errorf("decode entity %s: %w", row.PublicID, err)
		}
		out = append(out, entity)
	}
	return out, nil
}

func (r *EntityRepository) Upsert(ctx context.Context, entity prediction.Entity) error {
	insertModel, err := entityToInsertModel(entity)
	if err != nil {
		return fmt.Errorf("encode entity %s: %w", entity.ID, err)
	}
	query, args, err := qb.InsertModel("prediction_entities", insertModel, `ON CONFLICT (public_id)
DO UPDATE SET
    kind = EXCLUDED.kind,
    subject = EXCLUDED.subject,
    name = EXCLUDED.name,
    home_team_id = EXCLUDED.home_team_id,
    away_team_id = EXCLUDED.away_team_id,
    is_playoff = EXCLUDED.is_playoff,
    lock_at = EXCLUDED.lock_at,
    status = EXCLUDED.status,
    outcome_tag = EXCLUDED.outcome_tag,
    outcome = EXCLUDED.outcome,
    resolved_at = EXCLUDED.resolved_at,
    updated_at = EXCLUDED.updated_at`)
	if err != nil {
		return fmt.Errorf("build upsert entity query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert entity: %w", err)
	}
	return nil
}

func (r *EntityRepository) UpdateStatus(ctx context.Context, entityID string, status prediction.Status, updatedAt time.Time) error {
	query, args, err := qb.Update("prediction_entities").
		Set("status", string(status)).
		Set("updated_at", updatedAt.UTC()).
		Where(qb.Eq("public_id", entityID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update entity status query: %w", err)
	}
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update entity status: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("update entity status: entity %s not found", entityID)
	}
	return nil
}

type BetRepository struct {
	db *sqlx.DB
}

func NewBetRepository(db *sqlx.DB) *BetRepository {
	return &BetRepository{db: db}
}

func (r *BetRepository) Create(ctx context.Context, bet prediction.Bet) error {
	tag, raw, err := prediction.EncodePrediction(bet.Prediction)
	if err != nil {
		return fmt.Errorf("encode bet %s: %w", bet.ID, err)
	}
	query, args, err := qb.InsertModel("bets", betInsertModel{
		PublicID:      bet.ID,
		EntityID:      bet.EntityID,
		LeagueID:      bet.LeagueID,
		UserID:        bet.UserID,
		PredictionTag: tag,
		Prediction:    raw,
		CreatedAt:     bet.CreatedAt.UTC(),
	}, "")
	if err != nil {
		return fmt.Errorf("build insert bet query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert bet: %w", prediction.ErrDuplicateBet)
		}
		return fmt.Errorf("insert bet: %w", err)
	}
	return nil
}

func (r *BetRepository) ListActiveByEntity(ctx context.Context, entityID string) ([]prediction.Bet, error) {
	query, args, err := qb.Select("*").From("bets").
		Where(
			qb.Eq("entity_public_id", entityID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list bets by entity query: %w", err)
	}

	var rows []betTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list bets by entity: %w", err)
	}

	out := make([]prediction.Bet, 0, len(rows))
	for _, row := range rows {
		bet, err := betFromRow(row)
		if err != nil {
			return nil, fmt.Errorf("decode bet %s: %w", row.PublicID, err)
		}
		out = append(out, bet)
	}
	return out, nil
}

func (r *BetRepository) FindActive(ctx context.Context, entityID, leagueID, userID string) (prediction.Bet, bool, error) {
	query, args, err := qb.Select("*").From("bets").
		Where(
			qb.Eq("entity_public_id", entityID),
			qb.Eq("league_public_id", leagueID),
			qb.Eq("user_id", userID),
			qb.IsNull("deleted_at"),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return prediction.Bet{}, false, fmt.Errorf("build find active bet query: %w", err)
	}

	var row betTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return prediction.Bet{}, false, nil
		}
		return prediction.Bet{}, false, fmt.Errorf("find active bet: %w", err)
	}

	bet, err := betFromRow(row)
	if err != nil {
		return prediction.Bet{}, false, fmt.Errorf("decode bet %s: %w", row.PublicID, err)
	}
	return bet, true, nil
}
