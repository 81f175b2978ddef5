package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/riskibarqy/prediction-pool/internal/domain/evaluator"
	"github.com/riskibarqy/prediction-pool/internal/domain/leaderboard"
	"github.com/riskibarqy/prediction-pool/internal/domain/league"
	"github.com/riskibarqy/prediction-pool/internal/domain/points"
	"github.com/riskibarqy/prediction-pool/internal/domain/prediction"
	"github.com/riskibarqy/prediction-pool/internal/usecase"
)

// payloadDTO carries a tagged prediction or outcome body, e.g. {"type":"match","data":{"home":2,"away":1}}.
type payloadDTO struct {
	Type string          `json:"type" validate:"required,oneof=match series player team value answer"`
	Data json.RawMessage `json:"data" validate:"required"`
}

type placeBetRequest struct {
	EntityID   string     `json:"entity_id" validate:"required,max=128"`
	LeagueID   string     `json:"league_id" validate:"required,max=128"`
	UserID     string     `json:"user_id" validate:"required,max=128"`
	Prediction payloadDTO `json:"prediction"`
}

type recordOutcomeRequest struct {
	Outcome    payloadDTO `json:"outcome"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
}

type saveEvaluatorRequest struct {
	Type   string `json:"type" validate:"required"`
	Points *int   `json:"points" validate:"required"`
}

type saveSettingsRequest struct {
	ScoreDifferencePercent       *int   `json:"score_difference_percent,omitempty"`
	ScoreDifferenceIncludesExact *bool  `json:"score_difference_includes_exact,omitempty"`
	PlayoffAdvance               string `json:"playoff_advance,omitempty" validate:"omitempty,oneof=any regulation_only"`
	TieBreak                     string `json:"tie_break,omitempty" validate:"omitempty,oneof=none match_points"`
	RankingMode                  string `json:"ranking_mode,omitempty" validate:"omitempty,oneof=dense competition"`
}

type betDTO struct {
	ID         string     `json:"id"`
	EntityID   string     `json:"entity_id"`
	LeagueID   string     `json:"league_id"`
	UserID     string     `json:"user_id"`
	Prediction payloadDTO `json:"prediction"`
	CreatedAt  time.Time  `json:"created_at"`
}

type entityDTO struct {
	ID         string      `json:"id"`
	Kind       string      `json:"kind"`
	Subject    string      `json:"subject,omitempty"`
	Name       string      `json:"name,omitempty"`
	HomeTeamID string      `json:"home_team_id,omitempty"`
	AwayTeamID string      `json:"away_team_id,omitempty"`
	IsPlayoff  bool        `json:"is_playoff"`
	Status     string      `json:"status"`
	LockAt     time.Time   `json:"lock_at"`
	ResolvedAt *time.Time  `json:"resolved_at,omitempty"`
	Outcome    *payloadDTO `json:"outcome,omitempty"`
}

type leaderboardEntryDTO struct {
	Rank           int    `json:"rank"`
	UserID         string `json:"user_id"`
	MatchPoints    int    `json:"match_points"`
	SeriesPoints   int    `json:"series_points"`
	SpecialPoints  int    `json:"special_points"`
	QuestionPoints int    `json:"question_points"`
	TotalPoints    int    `json:"total_points"`
}

type pointsRecordDTO struct {
	BetID       string    `json:"bet_id"`
	EvaluatorID string    `json:"evaluator_id"`
	EntityID    string    `json:"entity_id"`
	LeagueID    string    `json:"league_id"`
	UserID      string    `json:"user_id"`
	Category    string    `json:"category"`
	Points      int       `json:"points"`
	EvaluatedAt time.Time `json:"evaluated_at"`
}

type userPointsDTO struct {
	LeagueID   string            `json:"league_id"`
	UserID     string            `json:"user_id"`
	Total      int               `json:"total"`
	ByCategory map[string]int    `json:"by_category"`
	Records    []pointsRecordDTO `json:"records"`
}

type leagueDTO struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Season string `json:"season,omitempty"`
}

type evaluatorDTO struct {
	ID        string    `json:"id"`
	LeagueID  string    `json:"league_id"`
	Type      string    `json:"type"`
	Category  string    `json:"category"`
	Points    int       `json:"points"`
	UpdatedAt time.Time `json:"updated_at"`
}

type scoringRulesDTO struct {
	ScoreDifferencePercent       int    `json:"score_difference_percent"`
	ScoreDifferenceIncludesExact bool   `json:"score_difference_includes_exact"`
	PlayoffAdvance               string `json:"playoff_advance"`
}

type leaderboardOptionsDTO struct {
	TieBreak    string `json:"tie_break"`
	RankingMode string `json:"ranking_mode"`
}

type settingsDTO struct {
	LeagueID    string                `json:"league_id"`
	Scoring     scoringRulesDTO       `json:"scoring"`
	Leaderboard leaderboardOptionsDTO `json:"leaderboard"`
	UpdatedAt   *time.Time            `json:"updated_at,omitempty"`
}

type lockDueDTO struct {
	Locked int `json:"locked"`
}

type resetEvaluationDTO struct {
	EntityID       string `json:"entity_id"`
	RemovedRecords int    `json:"removed_records"`
}

func (p payloadDTO) prediction() (prediction.Prediction, error) {
	value, err := prediction.DecodePrediction(p.Type, p.Data)
	if err != nil {
		return nil, fmt.Errorf("%w: prediction: %v", usecase.ErrInvalidInput, err)
	}
	return value, nil
}

func (p payloadDTO) outcome() (prediction.Outcome, error) {
	value, err := prediction.DecodeOutcome(p.Type, p.Data)
	if err != nil {
		return nil, fmt.Errorf("%w: outcome: %v", usecase.ErrInvalidInput, err)
	}
	return value, nil
}

func betToDTO(ctx context.Context, v prediction.Bet) (betDTO, error) {
	_, span := startSpan(ctx, "httpapi.betToDTO")
	defer span.End()

	tag, raw, err := prediction.EncodePrediction(v.Prediction)
	if err != nil {
		return betDTO{}, fmt.Errorf("encode prediction: %w", err)
	}

	return betDTO{
		ID:         v.ID,
		EntityID:   v.EntityID,
		LeagueID:   v.LeagueID,
		UserID:     v.UserID,
		Prediction: payloadDTO{Type: tag, Data: raw},
		CreatedAt:  v.CreatedAt,
	}, nil
}

func entityToDTO(ctx context.Context, v prediction.Entity) (entityDTO, error) {
	_, span := startSpan(ctx, "httpapi.entityToDTO")
	defer span.End()

	out := entityDTO{
		ID:         v.ID,
		Kind:       string(v.Kind),
		Subject:    string(v.ResolvedSubject()),
		Name:       v.Name,
		HomeTeamID: v.HomeTeamID,
		AwayTeamID: v.AwayTeamID,
		IsPlayoff:  v.IsPlayoff,
		Status:     string(v.Status),
		LockAt:     v.LockAt,
		ResolvedAt: v.ResolvedAt,
	}
	if v.Outcome != nil {
		tag, raw, err := prediction.EncodeOutcome(v.Outcome)
		if err != nil {
			return entityDTO{}, fmt.Errorf("encode outcome: %w", err)
		}
		out.Outcome = &payloadDTO{Type: tag, Data: raw}
	}
	return out, nil
}

func leaderboardToDTO(entries []leaderboard.Entry) []leaderboardEntryDTO {
	out := make([]leaderboardEntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, leaderboardEntryDTO{
			Rank:           e.Rank,
			UserID:         e.UserID,
			MatchPoints:    e.MatchPoints,
			SeriesPoints:   e.SeriesPoints,
			SpecialPoints:  e.SpecialPoints,
			QuestionPoints: e.QuestionPoints,
			TotalPoints:    e.TotalPoints,
		})
	}
	return out
}

func pointsRecordsToDTO(records []points.Record) []pointsRecordDTO {
	out := make([]pointsRecordDTO, 0, len(records))
	for _, r := range records {
		out = append(out, pointsRecordDTO{
			BetID:       r.BetID,
			EvaluatorID: r.EvaluatorID,
			EntityID:    r.EntityID,
			LeagueID:    r.LeagueID,
			UserID:      r.UserID,
			Category:    string(r.Category),
			Points:      r.Points,
			EvaluatedAt: r.EvaluatedAt,
		})
	}
	return out
}

func userPointsToDTO(v usecase.UserPoints) userPointsDTO {
	byCategory := make(map[string]int, len(evaluator.Categories))
	for _, category := range evaluator.Categories {
		byCategory[string(category)] = v.ByCategory[category]
	}
	return userPointsDTO{
		LeagueID:   v.LeagueID,
		UserID:     v.UserID,
		Total:      v.Total,
		ByCategory: byCategory,
		Records:    pointsRecordsToDTO(v.Records),
	}
}

func leagueToDTO(v league.League) leagueDTO {
	return leagueDTO{ID: v.ID, Name: v.Name, Season: v.Season}
}

func evaluatorToDTO(v evaluator.Evaluator) evaluatorDTO {
	return evaluatorDTO{
		ID:        v.ID,
		LeagueID:  v.LeagueID,
		Type:      v.Kind.String(),
		Category:  string(v.Category()),
		Points:    v.Points,
		UpdatedAt: v.UpdatedAt,
	}
}

func settingsToDTO(v league.Settings) settingsDTO {
	out := settingsDTO{
		LeagueID: v.LeagueID,
		Scoring: scoringRulesDTO{
			ScoreDifferencePercent:       v.Scoring.ScoreDifferencePercent,
			ScoreDifferenceIncludesExact: v.Scoring.ScoreDifferenceIncludesExact,
			PlayoffAdvance:               string(v.Scoring.PlayoffAdvance),
		},
		Leaderboard: leaderboardOptionsDTO{
			TieBreak:    string(v.Leaderboard.TieBreak),
			RankingMode: string(v.Leaderboard.RankingMode),
		},
	}
	if !v.UpdatedAt.IsZero() {
		updatedAt := v.UpdatedAt
		out.UpdatedAt = &updatedAt
	}
	return out
}

// apply overlays the provided fields on top of base.
func (req saveSettingsRequest) apply(base league.Settings) league.Settings {
	if req.ScoreDifferencePercent != nil {
		base.Scoring.ScoreDifferencePercent = *req.ScoreDifferencePercent
	}
	if req.ScoreDifferenceIncludesExact != nil {
		base.Scoring.ScoreDifferenceIncludesExact = *req.ScoreDifferenceIncludesExact
	}
	if req.PlayoffAdvance != "" {
		base.Scoring.PlayoffAdvance = evaluator.PlayoffAdvanceRule(req.PlayoffAdvance)
	}
	if req.TieBreak != "" {
		base.Leaderboard.TieBreak = leaderboard.TieBreak(req.TieBreak)
	}
	if req.RankingMode != "" {
		base.Leaderboard.RankingMode = leaderboard.RankingMode(req.RankingMode)
	}
	return base
}
