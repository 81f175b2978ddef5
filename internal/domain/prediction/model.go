package prediction

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidPrediction = errors.New("invalid prediction")
	ErrInvalidOutcome    = errors.New("invalid outcome")
	// ErrDuplicateBet is returned by bet stores when an active bet already exists for (entity, league, user).
	ErrDuplicateBet      = errors.New("duplicate active bet")
)

// Side is the winning side of a score pair.
type Side string

const (
	SideHome Side = "home"
	SideAway Side = "away"
	SideDraw Side = "draw"
)

func SideOf(home, away int) Side {
	switch {
	case home > away:
		return SideHome
	case away > home:
		return SideAway
	default:
		return SideDraw
	}
}

// Prediction is the member's pick. The concrete type always matches the entity variant.
type Prediction interface {
	EntityKind() Kind
	Validate() error
	isPrediction()
}

type MatchPick struct {
	Home            int
	Away            int
	ScorerID        string
	NoScorer        bool
	AdvancingTeamID string
}

func (MatchPick) EntityKind() Kind { return KindMatch }
func (MatchPick) isPrediction()    {}

func (p MatchPick) Validate() error {
	if p.Home < 0 || p.Away < 0 {
		return fmt.Errorf("%w: scores must be >= 0", ErrInvalidPrediction)
	}
	if p.NoScorer && strings.TrimSpace(p.ScorerID) != "" {
		return fmt.Errorf("%w: scorer and no-scorer are mutually exclusive", ErrInvalidPrediction)
	}
	return nil
}

func (p MatchPick) Side() Side { return SideOf(p.Home, p.Away) }

type SeriesPick struct {
	HomeWins int
	AwayWins int
}

func (SeriesPick) EntityKind() Kind { return KindSeries }
func (SeriesPick) isPrediction()    {}

func (p SeriesPick) Validate() error {
	if p.HomeWins < 0 || p.AwayWins < 0 {
		return fmt.Errorf("%w: series wins must be >= 0", ErrInvalidPrediction)
	}
	if p.HomeWins == p.AwayWins {
		return fmt.Errorf("%w: series cannot end level", ErrInvalidPrediction)
	}
	return nil
}

type PlayerPick struct {
	PlayerID string
}

func (PlayerPick) EntityKind() Kind { return KindSpecialBet }
func (PlayerPick) isPrediction()    {}

func (p PlayerPick) Validate() error {
	if strings.TrimSpace(p.PlayerID) == "" {
		return fmt.Errorf("%w: player id is required", ErrInvalidPrediction)
	}
	return nil
}

type TeamPick struct {
	TeamID string
}

func (TeamPick) EntityKind() Kind { return KindSpecialBet }
func (TeamPick) isPrediction()    {}

func (p TeamPick) Validate() error {
	if strings.TrimSpace(p.TeamID) == "" {
		return fmt.Errorf("%w: team id is required", ErrInvalidPrediction)
	}
	return nil
}

type ValuePick struct {
	Value decimal.Decimal
}

func (ValuePick) EntityKind() Kind { return KindSpecialBet }
func (ValuePick) isPrediction()    {}
func (ValuePick) Validate() error  { return nil }

type AnswerPick struct {
	Answer bool
}

func (AnswerPick) EntityKind() Kind { return KindQuestion }
func (AnswerPick) isPrediction()    {}
func (AnswerPick) Validate() error  { return nil }

// Resolution describes how a playoff match was decided.
type Resolution string

const (
	ResolutionRegulation Resolution = "regulation"
	ResolutionOvertime   Resolution = "overtime"
	ResolutionAggregate  Resolution = "aggregate"
	ResolutionPenalties  Resolution = "penalties"
)

// Outcome is the final real-world result of an entity.
type Outcome interface {
	EntityKind() Kind
	Validate() error
	isOutcome()
}

type MatchResult struct {
	Home            int
	Away            int
	ScorerIDs       []string
	AdvancingTeamID string
	Resolution      Resolution
}

func (MatchResult) EntityKind() Kind { return KindMatch }
func (MatchResult) isOutcome()       {}

func (r MatchResult) Validate() error {
	if r.Home < 0 || r.Away < 0 {
		return fmt.Errorf("%w: scores must be >= 0", ErrInvalidOutcome)
	}
	switch r.Resolution {
	case "", ResolutionRegulation, ResolutionOvertime, ResolutionAggregate, ResolutionPenalties:
	default:
		return fmt.Errorf("%w: unknown resolution %q", ErrInvalidOutcome, r.Resolution)
	}
	return nil
}

func (r MatchResult) Side() Side { return SideOf(r.Home, r.Away) }

// Scoreless reports whether no scorer was recorded for the match.
func (r MatchResult) Scoreless() bool {
	return len(r.ScorerIDs) == 0
}

type SeriesResult struct {
	HomeWins int
	AwayWins int
}

func (SeriesResult) EntityKind() Kind { return KindSeries }
func (SeriesResult) isOutcome()       {}

func (r SeriesResult) Validate() error {
	if r.HomeWins < 0 || r.AwayWins < 0 || r.HomeWins == r.AwayWins {
		return fmt.Errorf("%w: series result must have a winner", ErrInvalidOutcome)
	}
	return nil
}

type PlayerResult struct {
	PlayerID string
}

func (PlayerResult) EntityKind() Kind { return KindSpecialBet }
func (PlayerResult) isOutcome()       {}

func (r PlayerResult) Validate() error {
	if strings.TrimSpace(r.PlayerID) == "" {
		return fmt.Errorf("%w: player id is required", ErrInvalidOutcome)
	}
	return nil
}

type TeamResult struct {
	TeamID string
}

func (TeamResult) EntityKind() Kind { return KindSpecialBet }
func (TeamResult) isOutcome()       {}

func (r TeamResult) Validate() error {
	if strings.TrimSpace(r.TeamID) == "" {
		return fmt.Errorf("%w: team id is required", ErrInvalidOutcome)
	}
	return nil
}

type ValueResult struct {
	Value decimal.Decimal
}

func (ValueResult) EntityKind() Kind { return KindSpecialBet }
func (ValueResult) isOutcome()       {}
func (ValueResult) Validate() error  { return nil }

type AnswerResult struct {
	Answer bool
}

func (AnswerResult) EntityKind() Kind { return KindQuestion }
func (AnswerResult) isOutcome()       {}
func (AnswerResult) Validate() error  { return nil }

// Bet is one member's prediction on one entity within one league.
type Bet struct {
	ID         string
	EntityID   string
	LeagueID   string
	UserID     string
	Prediction Prediction
	CreatedAt  time.Time
	DeletedAt  *time.Time
}

func (b Bet) Active() bool {
	return b.DeletedAt == nil
}
