package leaderboard

import (
	"sort"

	"github.com/riskibarqy/prediction-pool/internal/domain/evaluator"
	"github.com/riskibarqy/prediction-pool/internal/domain/points"
)

type TieBreak string

const (
	// TieBreakNone lets equal totals share a rank.
	TieBreakNone TieBreak = "none"
	// TieBreakMatchPoints orders equal totals by match category points.
	TieBreakMatchPoints TieBreak = "match_points"
)

type RankingMode string

const (
	// RankingDense gives the next distinct total the next integer rank (1, 1, 2).
	RankingDense RankingMode = "dense"
	// RankingCompetition skips ranks consumed by a tie group (1, 1, 3).
	RankingCompetition RankingMode = "competition"
)

type Options struct {
	TieBreak    TieBreak
	RankingMode RankingMode
}

func DefaultOptions() Options {
	return Options{
		TieBreak:    TieBreakNone,
		RankingMode: RankingDense,
	}
}

func (o Options) Valid() bool {
	switch o.TieBreak {
	case TieBreakNone, TieBreakMatchPoints:
	default:
		return false
	}
	switch o.RankingMode {
	case RankingDense, RankingCompetition:
		return true
	default:
		return false
	}
}

// Entry is one derived leaderboard row. It is never persisted.
type Entry struct {
	Rank           int
	UserID         string
	MatchPoints    int
	SeriesPoints   int
	SpecialPoints  int
	QuestionPoints int
	TotalPoints    int
}

func (e Entry) CategoryPoints(category evaluator.Category) int {
	switch category {
	case evaluator.CategoryMatch:
		return e.MatchPoints
	case evaluator.CategorySeries:
		return e.SeriesPoints
	case evaluator.CategorySpecial:
		return e.SpecialPoints
	case evaluator.CategoryQuestion:
		return e.QuestionPoints
	default:
		return 0
	}
}

// Build groups per-category sums by user, computes totals and assigns ranks.
func Build(totals []points.UserCategoryTotal, opts Options) []Entry {
	if !opts.Valid() {
		opts = DefaultOptions()
	}

	byUser := make(map[string]*Entry)
	for _, row := range totals {
		item, ok := byUser[row.UserID]
		if !ok {
			item = &Entry{UserID: row.UserID}
			byUser[row.UserID] = item
		}
		switch row.Category {
		case evaluator.CategoryMatch:
			item.MatchPoints += row.Points
		case evaluator.CategorySeries:
			item.SeriesPoints += row.Points
		case evaluator.CategorySpecial:
			item.SpecialPoints += row.Points
		case evaluator.CategoryQuestion:
			item.QuestionPoints += row.Points
		default:
			continue
		}
	}

	out := make([]Entry, 0, len(byUser))
	for _, item := range byUser {
		item.TotalPoints = item.MatchPoints + item.SeriesPoints + item.SpecialPoints + item.QuestionPoints
		out = append(out, *item)
	}

	tieKey := func(e Entry) int {
		if opts.TieBreak == TieBreakMatchPoints {
			return e.MatchPoints
		}
		return 0
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].TotalPoints != out[j].TotalPoints {
			return out[i].TotalPoints > out[j].TotalPoints
		}
		if ki, kj := tieKey(out[i]), tieKey(out[j]); ki != kj {
			return ki > kj
		}
		return out[i].UserID < out[j].UserID
	})

	rank := 0
	for idx := range out {
		if idx == 0 || out[idx].TotalPoints != out[idx-1].TotalPoints || tieKey(out[idx]) != tieKey(out[idx-1]) {
			if opts.RankingMode == RankingCompetition {
				rank = idx + 1
			} else {
				rank++
			}
		}
		out[idx].Rank = rank
	}

	return out
}
