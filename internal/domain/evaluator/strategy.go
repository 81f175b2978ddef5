package evaluator

import (
	"slices"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/prediction-pool/internal/domain/prediction"
	"github.com/shopspring/decimal"
)

// Input is everything a strategy may look at. Strategies never perform lookups of their own.
type Input struct {
	Prediction prediction.Prediction
	Outcome    prediction.Outcome
	Points     int
	Rules      Rules
	Field      Field
}

// Field carries statistics computed over every bet of one entity, for strategies that
// score a bet relative to its siblings.
type Field struct {
	ClosestDistance decimal.Decimal
	HasClosest      bool
}

// Strategy converts one prediction into points.
type Strategy interface {
	Score(in Input) (int, error)
}

// FieldStrategy is a Strategy that needs Field statistics before scoring.
type FieldStrategy interface {
	Strategy
	Prepare(outcome prediction.Outcome, predictions []prediction.Prediction) (Field, error)
}

func award(points int, hit bool) int {
	if !hit || points <= 0 {
		return 0
	}
	return points
}

func malformed(kind Kind, p prediction.Prediction) error {
	return crerr.Wrapf(ErrMalformedPrediction, "%s cannot score %T", kind, p)
}

func mismatch(kind Kind, o prediction.Outcome) error {
	return crerr.Wrapf(ErrOutcomeMismatch, "%s cannot use %T", kind, o)
}

func matchInputs(kind Kind, in Input) (prediction.MatchPick, prediction.MatchResult, error) {
	pick, ok := in.Prediction.(prediction.MatchPick)
	if !ok {
		return prediction.MatchPick{}, prediction.MatchResult{}, malformed(kind, in.Prediction)
	}
	result, ok := in.Outcome.(prediction.MatchResult)
	if !ok {
		return prediction.MatchPick{}, prediction.MatchResult{}, mismatch(kind, in.Outcome)
	}
	return pick, result, nil
}

func seriesInputs(kind Kind, in Input) (prediction.SeriesPick, prediction.SeriesResult, error) {
	pick, ok := in.Prediction.(prediction.SeriesPick)
	if !ok {
		return prediction.SeriesPick{}, prediction.SeriesResult{}, malformed(kind, in.Prediction)
	}
	result, ok := in.Outcome.(prediction.SeriesResult)
	if !ok {
		return prediction.SeriesPick{}, prediction.SeriesResult{}, mismatch(kind, in.Outcome)
	}
	return pick, result, nil
}

func valueInputs(kind Kind, in Input) (prediction.ValuePick, prediction.ValueResult, error) {
	pick, ok := in.Prediction.(prediction.ValuePick)
	if !ok {
		return prediction.ValuePick{}, prediction.ValueResult{}, malformed(kind, in.Prediction)
	}
	result, ok := in.Outcome.(prediction.ValueResult)
	if !ok {
		return prediction.ValuePick{}, prediction.ValueResult{}, mismatch(kind, in.Outcome)
	}
	return pick, result, nil
}

type exactScoreStrategy struct{}

func (exactScoreStrategy) Score(in Input) (int, error) {
	pick, result, err := matchInputs(KindExactScore, in)
	if err != nil {
		return 0, err
	}
	return award(in.Points, pick.Home == result.Home && pick.Away == result.Away), nil
}

type scoreDifferenceStrategy struct{}

func (scoreDifferenceStrategy) Score(in Input) (int, error) {
	pick, result, err := matchInputs(KindScoreDifference, in)
	if err != nil {
		return 0, err
	}
	if pick.Home-pick.Away != result.Home-result.Away {
		return 0, nil
	}
	exact := pick.Home == result.Home && pick.Away == result.Away
	if exact && !in.Rules.ScoreDifferenceIncludesExact {
		return 0, nil
	}
	return award(in.Points*in.Rules.ScoreDifferencePercent/100, true), nil
}

type winnerStrategy struct{}

func (winnerStrategy) Score(in Input) (int, error) {
	pick, result, err := matchInputs(KindWinner, in)
	if err != nil {
		return 0, err
	}
	return award(in.Points, pick.Side() == result.Side()), nil
}

type scorerStrategy struct{}

func (scorerStrategy) Score(in Input) (int, error) {
	pick, result, err := matchInputs(KindScorer, in)
	if err != nil {
		return 0, err
	}
	if pick.NoScorer && pick.ScorerID != "" {
		return 0, crerr.Wrap(ErrMalformedPrediction, "scorer and no-scorer both set")
	}
	switch {
	case pick.NoScorer:
		return award(in.Points, result.Scoreless()), nil
	case pick.ScorerID != "":
		return award(in.Points, slices.Contains(result.ScorerIDs, pick.ScorerID)), nil
	default:
		return 0, nil
	}
}

type drawStrategy struct{}

func (drawStrategy) Score(in Input) (int, error) {
	pick, result, err := matchInputs(KindDraw, in)
	if err != nil {
		return 0, err
	}
	return award(in.Points, pick.Side() == prediction.SideDraw && result.Side() == prediction.SideDraw), nil
}

type playoffAdvanceStrategy struct{}

func (playoffAdvanceStrategy) Score(in Input) (int, error) {
	pick, result, err := matchInputs(KindPlayoffAdvance, in)
	if err != nil {
		return 0, err
	}
	if pick.AdvancingTeamID == "" || result.AdvancingTeamID == "" {
		return 0, nil
	}
	if in.Rules.PlayoffAdvance == PlayoffAdvanceRegulationOnly &&
		result.Resolution != "" && result.Resolution != prediction.ResolutionRegulation {
		return 0, nil
	}
	return award(in.Points, pick.AdvancingTeamID == result.AdvancingTeamID), nil
}

type seriesExactStrategy struct{}

func (seriesExactStrategy) Score(in Input) (int, error) {
	pick, result, err := seriesInputs(KindSeriesExact, in)
	if err != nil {
		return 0, err
	}
	return award(in.Points, pick.HomeWins == result.HomeWins && pick.AwayWins == result.AwayWins), nil
}

type seriesWinnerStrategy struct{}

func (seriesWinnerStrategy) Score(in Input) (int, error) {
	pick, result, err := seriesInputs(KindSeriesWinner, in)
	if err != nil {
		return 0, err
	}
	return award(in.Points, prediction.SideOf(pick.HomeWins, pick.AwayWins) == prediction.SideOf(result.HomeWins, result.AwayWins)), nil
}

type exactPlayerStrategy struct{}

func (exactPlayerStrategy) Score(in Input) (int, error) {
	pick, ok := in.Prediction.(prediction.PlayerPick)
	if !ok {
		return 0, malformed(KindExactPlayer, in.Prediction)
	}
	result, ok := in.Outcome.(prediction.PlayerResult)
	if !ok {
		return 0, mismatch(KindExactPlayer, in.Outcome)
	}
	return award(in.Points, pick.PlayerID == result.PlayerID), nil
}

type exactTeamStrategy struct{}

func (exactTeamStrategy) Score(in Input) (int, error) {
	pick, ok := in.Prediction.(prediction.TeamPick)
	if !ok {
		return 0, malformed(KindExactTeam, in.Prediction)
	}
	result, ok := in.Outcome.(prediction.TeamResult)
	if !ok {
		return 0, mismatch(KindExactTeam, in.Outcome)
	}
	return award(in.Points, pick.TeamID == result.TeamID), nil
}

type exactValueStrategy struct{}

func (exactValueStrategy) Score(in Input) (int, error) {
	pick, result, err := valueInputs(KindExactValue, in)
	if err != nil {
		return 0, err
	}
	return award(in.Points, pick.Value.Equal(result.Value)), nil
}

type closestValueStrategy struct{}

func (closestValueStrategy) Prepare(outcome prediction.Outcome, predictions []prediction.Prediction) (Field, error) {
	result, ok := outcome.(prediction.ValueResult)
	if !ok {
		return Field{}, mismatch(KindClosestValue, outcome)
	}

	field := Field{}
	for _, item := range predictions {
		pick, ok := item.(prediction.ValuePick)
		if !ok {
			// Reported per bet when it is scored.
			continue
		}
		distance := pick.Value.Sub(result.Value).Abs()
		if !field.HasClosest || distance.LessThan(field.ClosestDistance) {
			field.ClosestDistance = distance
			field.HasClosest = true
		}
	}
	return field, nil
}

func (closestValueStrategy) Score(in Input) (int, error) {
	pick, result, err := valueInputs(KindClosestValue, in)
	if err != nil {
		return 0, err
	}
	if !in.Field.HasClosest {
		return 0, nil
	}
	distance := pick.Value.Sub(result.Value).Abs()
	return award(in.Points, distance.Equal(in.Field.ClosestDistance)), nil
}

type questionStrategy struct{}

func (questionStrategy) Score(in Input) (int, error) {
	pick, ok := in.Prediction.(prediction.AnswerPick)
	if !ok {
		return 0, malformed(KindQuestion, in.Prediction)
	}
	result, ok := in.Outcome.(prediction.AnswerResult)
	if !ok {
		return 0, mismatch(KindQuestion, in.Outcome)
	}
	return award(in.Points, pick.Answer == result.Answer), nil
}
