package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/riskibarqy/prediction-pool/internal/domain/evaluator"
	"github.com/riskibarqy/prediction-pool/internal/domain/points"
)

type PointsService struct {
	ledger points.Ledger
}

type UserPoints struct {
	LeagueID   string                     `json:"league_id"`
	UserID     string                     `json:"user_id"`
	Total      int                        `json:"total"`
	ByCategory map[evaluator.Category]int `json:"by_category"`
	Records    []points.Record            `json:"records"`
}

func NewPointsService(ledger points.Ledger) *PointsService {
	return &PointsService{ledger: ledger}
}

func (s *PointsService) ListByBet(ctx context.Context, betID string) ([]points.Record, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PointsService.ListByBet")
	defer span.End()

	betID = strings.TrimSpace(betID)
	if betID == "" {
		return nil, fmt.Errorf("%w: bet id is required", ErrInvalidInput)
	}

	items, err := s.ledger.ListByBet(ctx, betID)
	if err != nil {
		return nil, fmt.Errorf("list points by bet: %w", err)
	}
	return items, nil
}

// UserPoints returns a member's points in a league with the per-category breakdown.
func (s *PointsService) UserPoints(ctx context.Context, leagueID, userID string) (UserPoints, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PointsService.UserPoints")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	userID = strings.TrimSpace(userID)
	if leagueID == "" || userID == "" {
		return UserPoints{}, fmt.Errorf("%w: league id and user id are required", ErrInvalidInput)
	}

	items, err := s.ledger.ListByLeagueUser(ctx, leagueID, userID)
	if err != nil {
		return UserPoints{}, fmt.Errorf("list points by league user: %w", err)
	}

	out := UserPoints{
		LeagueID:   leagueID,
		UserID:     userID,
		ByCategory: make(map[evaluator.Category]int, len(evaluator.Categories)),
		Records:    items,
	}
	for _, category := range evaluator.Categories {
		out.ByCategory[category] = 0
	}
	for _, item := range items {
		out.ByCategory[item.Category] += item.Points
		out.Total += item.Points
	}

	sort.SliceStable(out.Records, func(i, j int) bool {
		if !out.Records[i].EvaluatedAt.Equal(out.Records[j].EvaluatedAt) {
			return out.Records[i].EvaluatedAt.After(out.Records[j].EvaluatedAt)
		}
		return out.Records[i].Key() < out.Records[j].Key()
	})
	return out, nil
}
