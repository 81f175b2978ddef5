package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/prediction-pool/internal/domain/prediction"
)

type entityTableModel struct {
	ID         int64          `db:"id"`
	PublicID   string         `db:"public_id"`
	Kind       string         `db:"kind"`
	Subject    string         `db:"subject"`
	Name       string         `db:"name"`
	HomeTeamID string         `db:"home_team_id"`
	AwayTeamID string         `db:"away_team_id"`
	IsPlayoff  bool           `db:"is_playoff"`
	LockAt     time.Time      `db:"lock_at"`
	Status     string         `db:"status"`
	OutcomeTag sql.NullString `db:"outcome_tag"`
	Outcome    sql.NullString `db:"outcome"`
	ResolvedAt sql.NullTime   `db:"resolved_at"`
	UpdatedAt  time.Time      `db:"updated_at"`
}

type entityInsertModel struct {
	PublicID   string         `db:"public_id"`
	Kind       string         `db:"kind"`
	Subject    string         `db:"subject"`
	Name       string         `db:"name"`
	HomeTeamID string         `db:"home_team_id"`
	AwayTeamID string         `db:"away_team_id"`
	IsPlayoff  bool           `db:"is_playoff"`
	LockAt     time.Time      `db:"lock_at"`
	Status     string         `db:"status"`
	OutcomeTag sql.NullString `db:"outcome_tag"`
	Outcome    sql.NullString `db:"outcome"`
	ResolvedAt sql.NullTime   `db:"resolved_at"`
	UpdatedAt  time.Time      `db:"updated_at"`
}

type betTableModel struct {
	ID            int64      `db:"id"`
	PublicID      string     `db:"public_id"`
	EntityID      string     `db:"entity_public_id"`
	LeagueID      string     `db:"league_public_id"`
	UserID        string     `db:"user_id"`
	PredictionTag string     `db:"prediction_tag"`
	Prediction    []byte     `db:"prediction"`
	CreatedAt     time.Time  `db:"created_at"`
	DeletedAt     *time.Time `db:"deleted_at"`
}

type betInsertModel struct {
	PublicID      string    `db:"public_id"`
	EntityID      string    `db:"entity_public_id"`
	LeagueID      string    `db:"league_public_id"`
	UserID        string    `db:"user_id"`
	PredictionTag string    `db:"prediction_tag"`
	Prediction    []byte    `db:"prediction"`
	CreatedAt     time.Time `db:"created_at"`
}

func entityToInsertModel(entity prediction.Entity) (entityInsertModel, error) {
	model := entityInsertModel{
		PublicID:   entity.ID,
		Kind:       string(entity.Kind),
		Subject:    string(entity.Subject),
		Name:       entity.Name,
		HomeTeamID: entity.HomeTeamID,
		AwayTeamID: entity.AwayTeamID,
		IsPlayoff:  entity.IsPlayoff,
		LockAt:     entity.LockAt.UTC(),
		Status:     string(entity.Status),
		ResolvedAt: nullableTime(entity.ResolvedAt),
		UpdatedAt:  entity.UpdatedAt.UTC(),
	}
	if model.UpdatedAt.IsZero() {
		model.UpdatedAt = time.Now().UTC()
	}
	if entity.Outcome != nil {
		tag, raw, err := prediction.EncodeOutcome(entity.Outcome)
		if err != nil {
			return entityInsertModel{}, err
		}
		model.OutcomeTag = nullableString(tag)
		model.Outcome = nullableString(string(raw))
	}
	return model, nil
}

func entityFromRow(row entityTableModel) (prediction.Entity, error) {
	entity := prediction.Entity{
		ID:         row.PublicID,
		Kind:       prediction.Kind(row.Kind),
		Subject:    prediction.Subject(row.Subject),
		Name:       row.Name,
		HomeTeamID: row.HomeTeamID,
		AwayTeamID: row.AwayTeamID,
		IsPlayoff:  row.IsPlayoff,
		LockAt:     row.LockAt.UTC(),
		Status:     prediction.NormalizeStatus(row.Status),
		ResolvedAt: nullTimeToPtr(row.ResolvedAt),
		UpdatedAt:  row.UpdatedAt.UTC(),
	}
	if row.OutcomeTag.Valid && row.Outcome.Valid {
		outcome, err := prediction.DecodeOutcome(row.OutcomeTag.String, []byte(row.Outcome.String))
		if err != nil {
			return prediction.Entity{}, err
		}
		entity.Outcome = outcome
	}
	return entity, nil
}

func betFromRow(row betTableModel) (prediction.Bet, error) {
	pick, err := prediction.DecodePrediction(row.PredictionTag, row.Prediction)
	if err != nil {
		return prediction.Bet{}, err
	}
	return prediction.Bet{
		ID:         row.PublicID,
		EntityID:   row.EntityID,
		LeagueID:   row.LeagueID,
		UserID:     row.UserID,
		Prediction: pick,
		CreatedAt:  row.CreatedAt.UTC(),
		DeletedAt:  row.DeletedAt,
	}, nil
}
