package leaderboard

import (
	"testing"

	"github.com/riskibarqy/prediction-pool/internal/domain/evaluator"
	"github.com/riskibarqy/prediction-pool/internal/domain/points"
)

func TestBuild_DenseRankingSharesTies(t *testing.T) {
	t.Parallel()

	got := Build([]points.UserCategoryTotal{
		{UserID: "user-c", Category: evaluator.CategoryMatch, Points: 8},
		{UserID: "user-a", Category: evaluator.CategoryMatch, Points: 6},
		{UserID: "user-a", Category: evaluator.CategorySpecial, Points: 4},
		{UserID: "user-b", Category: evaluator.CategoryQuestion, Points: 10},
	}, DefaultOptions())

	if len(got) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(got))
	}
	wantRanks := map[string]int{"user-a": 1, "user-b": 1, "user-c": 2}
	for _, entry := range got {
		if entry.Rank != wantRanks[entry.UserID] {
			t.Fatalf("unexpected rank for %s: got=%d want=%d", entry.UserID, entry.Rank, wantRanks[entry.UserID])
		}
	}
	if got[0].UserID != "user-a" || got[1].UserID != "user-b" {
		t.Fatalf("tied users must be ordered by user id, got %s, %s", got[0].UserID, got[1].UserID)
	}
}

func TestBuild_CompetitionRanking(t *testing.T) {
	t.Parallel()

	got := Build([]points.UserCategoryTotal{
		{UserID: "a", Category: evaluator.CategoryMatch, Points: 10},
		{UserID: "b", Category: evaluator.CategoryMatch, Points: 10},
		{UserID: "c", Category: evaluator.CategoryMatch, Points: 8},
	}, Options{TieBreak: TieBreakNone, RankingMode: RankingCompetition})

	if got[2].UserID != "c" || got[2].Rank != 3 {
		t.Fatalf("expected c at rank 3 in competition ranking, got %+v", got[2])
	}
}

func TestBuild_MatchPointsTieBreak(t *testing.T) {
	t.Parallel()

	got := Build([]points.UserCategoryTotal{
		{UserID: "a", Category: evaluator.CategoryMatch, Points: 4},
		{UserID: "a", Category: evaluator.CategorySeries, Points: 6},
		{UserID: "b", Category: evaluator.CategoryMatch, Points: 10},
	}, Options{TieBreak: TieBreakMatchPoints, RankingMode: RankingDense})

	if got[0].UserID != "b" || got[0].Rank != 1 {
		t.Fatalf("expected b first, got %+v", got[0])
	}
	if got[1].UserID != "a" || got[1].Rank != 2 {
		t.Fatalf("expected a second, got %+v", got[1])
	}
}

func TestBuild_TotalsEqualCategorySums(t *testing.T) {
	t.Parallel()

	got := Build([]points.UserCategoryTotal{
		{UserID: "a", Category: evaluator.CategoryMatch, Points: 3},
		{UserID: "a", Category: evaluator.CategorySeries, Points: 5},
		{UserID: "a", Category: evaluator.CategorySpecial, Points: 7},
		{UserID: "a", Category: evaluator.CategoryQuestion, Points: 11},
	}, DefaultOptions())

	entry := got[0]
	sum := 0
	for _, category := range evaluator.Categories {
		sum += entry.CategoryPoints(category)
	}
	if sum != entry.TotalPoints || entry.TotalPoints != 26 {
		t.Fatalf("total must equal category sum: total=%d sum=%d", entry.TotalPoints, sum)
	}
}
