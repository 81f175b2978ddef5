package evaluator

import (
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/prediction-pool/internal/domain/prediction"
)

// Category groups evaluators for leaderboard breakdowns.
type Category string

const (
	CategoryMatch    Category = "match"
	CategorySeries   Category = "series"
	CategorySpecial  Category = "special"
	CategoryQuestion Category = "question"
)

// Categories lists every category in leaderboard column order.
var Categories = []Category{CategoryMatch, CategorySeries, CategorySpecial, CategoryQuestion}

// CategoryForEntity maps an entity variant onto the evaluator category that scores it.
func CategoryForEntity(kind prediction.Kind) (Category, bool) {
	switch kind {
	case prediction.KindMatch:
		return CategoryMatch, true
	case prediction.KindSeries:
		return CategorySeries, true
	case prediction.KindSpecialBet:
		return CategorySpecial, true
	case prediction.KindQuestion:
		return CategoryQuestion, true
	default:
		return "", false
	}
}

// Kind is the closed set of scoring strategies.
type Kind uint8

const (
	KindExactScore Kind = iota + 1
	KindScoreDifference
	KindWinner
	KindScorer
	KindDraw
	KindPlayoffAdvance
	KindSeriesExact
	KindSeriesWinner
	KindExactPlayer
	KindExactTeam
	KindExactValue
	KindClosestValue
	KindQuestion

	kindEnd
)

var kindNames = [kindEnd]string{
	KindExactScore:      "exact-score",
	KindScoreDifference: "score-difference",
	KindWinner:          "winner",
	KindScorer:          "scorer",
	KindDraw:            "draw",
	KindPlayoffAdvance:  "playoff-advance",
	KindSeriesExact:     "series-exact",
	KindSeriesWinner:    "series-winner",
	KindExactPlayer:     "exact-player",
	KindExactTeam:       "exact-team",
	KindExactValue:      "exact-value",
	KindClosestValue:    "closest-value",
	KindQuestion:        "question",
}

var kindCategories = [kindEnd]Category{
	KindExactScore:      CategoryMatch,
	KindScoreDifference: CategoryMatch,
	KindWinner:          CategoryMatch,
	KindScorer:          CategoryMatch,
	KindDraw:            CategoryMatch,
	KindPlayoffAdvance:  CategoryMatch,
	KindSeriesExact:     CategorySeries,
	KindSeriesWinner:    CategorySeries,
	KindExactPlayer:     CategorySpecial,
	KindExactTeam:       CategorySpecial,
	KindExactValue:      CategorySpecial,
	KindClosestValue:    CategorySpecial,
	KindQuestion:        CategoryQuestion,
}

// kindSubjects pins special evaluators to the answer shape they compare.
var kindSubjects = [kindEnd]prediction.Subject{
	KindExactPlayer:  prediction.SubjectPlayer,
	KindExactTeam:    prediction.SubjectTeam,
	KindExactValue:   prediction.SubjectValue,
	KindClosestValue: prediction.SubjectValue,
}

func (k Kind) Valid() bool {
	return k > 0 && k < kindEnd
}

func (k Kind) String() string {
	if !k.Valid() {
		return "unknown"
	}
	return kindNames[k]
}

func (k Kind) Category() Category {
	if !k.Valid() {
		return ""
	}
	return kindCategories[k]
}

// Subject is the special-bet subject the kind scores, or "" when it is not subject specific.
func (k Kind) Subject() prediction.Subject {
	if !k.Valid() {
		return ""
	}
	return kindSubjects[k]
}

// AppliesTo reports whether the kind can score the entity. A special evaluator for another
// subject does not apply and is skipped rather than reported as a malformed bet.
func (k Kind) AppliesTo(entity prediction.Entity) bool {
	category, ok := CategoryForEntity(entity.Kind)
	if !ok || k.Category() != category {
		return false
	}
	subject := k.Subject()
	return subject == "" || subject == entity.ResolvedSubject()
}

// ParseKind converts a stored type name into a Kind.
func ParseKind(name string) (Kind, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	normalized = strings.ReplaceAll(normalized, "_", "-")
	for k := KindExactScore; k < kindEnd; k++ {
		if kindNames[k] == normalized {
			return k, nil
		}
	}
	return 0, crerr.Wrapf(ErrUnknownKind, "evaluator type %q", name)
}

// Kinds returns every kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, int(kindEnd)-1)
	for k := KindExactScore; k < kindEnd; k++ {
		out = append(out, k)
	}
	return out
}
