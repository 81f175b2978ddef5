package evaluator

import (
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
)

const (
	MinPoints = 0
	MaxPoints = 100
)

var (
	ErrMalformedPrediction = crerr.New("malformed prediction")
	ErrOutcomeMismatch     = crerr.New("outcome does not match evaluator")
	ErrPointsOutOfRange    = crerr.New("evaluator points out of range")
	ErrUnknownKind         = crerr.New("unknown evaluator type")
	ErrInvalidRules        = crerr.New("invalid league rules")
)

// Evaluator is a league-scoped scoring rule with its configured point value.
type Evaluator struct {
	ID        string
	LeagueID  string
	Kind      Kind
	Points    int
	UpdatedAt time.Time
}

func (e Evaluator) Category() Category {
	return e.Kind.Category()
}

func (e Evaluator) Validate() error {
	if strings.TrimSpace(e.ID) == "" || strings.TrimSpace(e.LeagueID) == "" {
		return crerr.New("evaluator id and league id are required")
	}
	if !e.Kind.Valid() {
		return crerr.Wrapf(ErrUnknownKind, "evaluator %s", e.ID)
	}
	if e.Points < MinPoints || e.Points > MaxPoints {
		return crerr.Wrapf(ErrPointsOutOfRange, "evaluator %s points=%d allowed=[%d,%d]", e.ID, e.Points, MinPoints, MaxPoints)
	}
	return nil
}

type PlayoffAdvanceRule string

const (
	// PlayoffAdvanceAny accepts the advancing team regardless of how the tie was decided.
	PlayoffAdvanceAny PlayoffAdvanceRule = "any"
	// PlayoffAdvanceRegulationOnly only awards points when the tie was decided in regulation.
	PlayoffAdvanceRegulationOnly PlayoffAdvanceRule = "regulation_only"
)

// Rules holds per-league scoring parameters that are not fixed by the strategies themselves.
type Rules struct {
	ScoreDifferencePercent       int
	ScoreDifferenceIncludesExact bool
	PlayoffAdvance               PlayoffAdvanceRule
}

func DefaultRules() Rules {
	return Rules{
		ScoreDifferencePercent:       100,
		ScoreDifferenceIncludesExact: true,
		PlayoffAdvance:               PlayoffAdvanceAny,
	}
}

func (r Rules) Validate() error {
	if r.ScoreDifferencePercent < 0 || r.ScoreDifferencePercent > 100 {
		return crerr.Wrapf(ErrInvalidRules, "score difference percent=%d", r.ScoreDifferencePercent)
	}
	switch r.PlayoffAdvance {
	case PlayoffAdvanceAny, PlayoffAdvanceRegulationOnly:
	default:
		return crerr.Wrapf(ErrInvalidRules, "playoff advance rule %q", r.PlayoffAdvance)
	}
	return nil
}
