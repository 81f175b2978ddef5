package points

import (
	"time"

	"github.com/riskibarqy/prediction-pool/internal/domain/evaluator"
)

// Record is the persisted result of applying one evaluator to one bet.
// (BetID, EvaluatorID) is the identity; recomputation overwrites the same row.
type Record struct {
	BetID       string
	EvaluatorID string
	EntityID    string
	LeagueID    string
	UserID      string
	Category    evaluator.Category
	Points      int
	EvaluatedAt time.Time
}

func (r Record) Key() string {
	return r.BetID + "|" + r.EvaluatorID
}

// UserCategoryTotal is the summed points of one user in one category of a league.
type UserCategoryTotal struct {
	UserID   string
	Category evaluator.Category
	Points   int
	Records  int
}
