package evaluator

import (
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/prediction-pool/internal/domain/prediction"
)

// Registry maps every Kind onto its strategy. It is built once and never mutated.
type Registry struct {
	strategies [kindEnd]Strategy
}

func NewRegistry() *Registry {
	return &Registry{
		strategies: [kindEnd]Strategy{
			KindExactScore:      exactScoreStrategy{},
			KindScoreDifference: scoreDifferenceStrategy{},
			KindWinner:          winnerStrategy{},
			KindScorer:          scorerStrategy{},
			KindDraw:            drawStrategy{},
			KindPlayoffAdvance:  playoffAdvanceStrategy{},
			KindSeriesExact:     seriesExactStrategy{},
			KindSeriesWinner:    seriesWinnerStrategy{},
			KindExactPlayer:     exactPlayerStrategy{},
			KindExactTeam:       exactTeamStrategy{},
			KindExactValue:      exactValueStrategy{},
			KindClosestValue:    closestValueStrategy{},
			KindQuestion:        questionStrategy{},
		},
	}
}

func (r *Registry) Strategy(kind Kind) (Strategy, error) {
	if !kind.Valid() || r.strategies[kind] == nil {
		return nil, crerr.Wrapf(ErrUnknownKind, "kind=%d", uint8(kind))
	}
	return r.strategies[kind], nil
}

// Score applies the strategy registered for kind.
func (r *Registry) Score(kind Kind, in Input) (int, error) {
	strategy, err := r.Strategy(kind)
	if err != nil {
		return 0, err
	}
	return strategy.Score(in)
}

// Prepare computes Field statistics for kind. Strategies without field needs return an empty Field.
func (r *Registry) Prepare(kind Kind, outcome prediction.Outcome, predictions []prediction.Prediction) (Field, error) {
	strategy, err := r.Strategy(kind)
	if err != nil {
		return Field{}, err
	}
	fieldStrategy, ok := strategy.(FieldStrategy)
	if !ok {
		return Field{}, nil
	}
	return fieldStrategy.Prepare(outcome, predictions)
}
