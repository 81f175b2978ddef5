package memory

import (
	"time"

	"github.com/riskibarqy/prediction-pool/internal/domain/evaluator"
	"github.com/riskibarqy/prediction-pool/internal/domain/leaderboard"
	"github.com/riskibarqy/prediction-pool/internal/domain/league"
	"github.com/riskibarqy/prediction-pool/internal/domain/prediction"
)

const (
	LeagueIDOffice  = "pool-office-2026"
	LeagueIDFriends = "pool-friends-2026"
)

func SeedLeagues() []league.League {
	return []league.League{
		{ID: LeagueIDOffice, Name: "Office Pool", Season: "2026"},
		{ID: LeagueIDFriends, Name: "Friends Pool", Season: "2026"},
	}
}

// SeedEvaluators configures every evaluator type for the office pool and a match-only set for friends.
func SeedEvaluators() []evaluator.Evaluator {
	officePoints := map[evaluator.Kind]int{
		evaluator.KindExactScore:      5,
		evaluator.KindScoreDifference: 3,
		evaluator.KindWinner:          2,
		evaluator.KindScorer:          2,
		evaluator.KindDraw:            3,
		evaluator.KindPlayoffAdvance:  4,
		evaluator.KindSeriesExact:     8,
		evaluator.KindSeriesWinner:    4,
		evaluator.KindExactPlayer:     10,
		evaluator.KindExactTeam:       10,
		evaluator.KindExactValue:      10,
		evaluator.KindClosestValue:    6,
		evaluator.KindQuestion:        3,
	}

	out := make([]evaluator.Evaluator, 0, len(officePoints)+3)
	for _, kind := range evaluator.Kinds() {
		out = append(out, evaluator.Evaluator{
			ID:       LeagueIDOffice + ":" + kind.String(),
			LeagueID: LeagueIDOffice,
			Kind:     kind,
			Points:   officePoints[kind],
		})
	}
	for kind, pts := range map[evaluator.Kind]int{
		evaluator.KindExactScore: 3,
		evaluator.KindWinner:     1,
		evaluator.KindQuestion:   1,
	} {
		out = append(out, evaluator.Evaluator{
			ID:       LeagueIDFriends + ":" + kind.String(),
			LeagueID: LeagueIDFriends,
			Kind:     kind,
			Points:   pts,
		})
	}
	return out
}

func SeedSettings() []league.Settings {
	friends := league.DefaultSettings(LeagueIDFriends)
	friends.Leaderboard.TieBreak = leaderboard.TieBreakMatchPoints
	return []league.Settings{
		league.DefaultSettings(LeagueIDOffice),
		friends,
	}
}

func SeedEntities(now time.Time) []prediction.Entity {
	now = now.UTC().Truncate(time.Hour)
	return []prediction.Entity{
		{ID: "match-opening", Kind: prediction.KindMatch, Name: "Opening match", HomeTeamID: "team-mex", AwayTeamID: "team-rsa", LockAt: now.Add(48 * time.Hour), Status: prediction.StatusScheduled, UpdatedAt: now},
		{ID: "match-final", Kind: prediction.KindMatch, Name: "Final", IsPlayoff: true, LockAt: now.Add(30 * 24 * time.Hour), Status: prediction.StatusScheduled, UpdatedAt: now},
		{ID: "series-conference-final", Kind: prediction.KindSeries, Name: "Conference final", LockAt: now.Add(72 * time.Hour), Status: prediction.StatusScheduled, UpdatedAt: now},
		{ID: "special-top-scorer", Kind: prediction.KindSpecialBet, Subject: prediction.SubjectPlayer, Name: "Tournament top scorer", LockAt: now.Add(24 * time.Hour), Status: prediction.StatusScheduled, UpdatedAt: now},
		{ID: "special-total-goals", Kind: prediction.KindSpecialBet, Subject: prediction.SubjectValue, Name: "Total tournament goals", LockAt: now.Add(24 * time.Hour), Status: prediction.StatusScheduled, UpdatedAt: now},
		{ID: "question-red-card-final", Kind: prediction.KindQuestion, Name: "Red card in the final?", LockAt: now.Add(30 * 24 * time.Hour), Status: prediction.StatusScheduled, UpdatedAt: now},
	}
}
