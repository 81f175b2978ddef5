package evaluator

import (
	"errors"
	"testing"

	"github.com/riskibarqy/prediction-pool/internal/domain/prediction"
	"github.com/shopspring/decimal"
)

func TestRegistry_MatchStrategies(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	rules := DefaultRules()

	tests := []struct {
		name    string
		kind    Kind
		pick    prediction.MatchPick
		result  prediction.MatchResult
		points  int
		rules   *Rules
		want    int
		wantErr error
	}{
		{
			name:   "exact score hit",
			kind:   KindExactScore,
			pick:   prediction.MatchPick{Home: 2, Away: 1},
			result: prediction.MatchResult{Home: 2, Away: 1},
			points: 5,
			want:   5,
		},
		{
			name:   "exact score miss",
			kind:   KindExactScore,
			pick:   prediction.MatchPick{Home: 2, Away: 0},
			result: prediction.MatchResult{Home: 2, Away: 1},
			points: 5,
			want:   0,
		},
		{
			name:   "score difference same signed difference",
			kind:   KindScoreDifference,
			pick:   prediction.MatchPick{Home: 3, Away: 2},
			result: prediction.MatchResult{Home: 2, Away: 1},
			points: 4,
			want:   4,
		},
		{
			name:   "score difference opposite sign",
			kind:   KindScoreDifference,
			pick:   prediction.MatchPick{Home: 1, Away: 2},
			result: prediction.MatchResult{Home: 2, Away: 1},
			points: 4,
			want:   0,
		},
		{
			name:   "score difference partial credit",
			kind:   KindScoreDifference,
			pick:   prediction.MatchPick{Home: 1, Away: 1},
			result: prediction.MatchResult{Home: 0, Away: 0},
			points: 5,
			rules:  &Rules{ScoreDifferencePercent: 50, ScoreDifferenceIncludesExact: true, PlayoffAdvance: PlayoffAdvanceAny},
			want:   2,
		},
		{
			name:   "score difference excludes exact",
			kind:   KindScoreDifference,
			pick:   prediction.MatchPick{Home: 2, Away: 1},
			result: prediction.MatchResult{Home: 2, Away: 1},
			points: 3,
			rules:  &Rules{ScoreDifferencePercent: 100, ScoreDifferenceIncludesExact: false, PlayoffAdvance: PlayoffAdvanceAny},
			want:   0,
		},
		{
			name:   "winner home win predicted on draw",
			kind:   KindWinner,
			pick:   prediction.MatchPick{Home: 2, Away: 0},
			result: prediction.MatchResult{Home: 1, Away: 1},
			points: 3,
			want:   0,
		},
		{
			name:   "winner draw on draw",
			kind:   KindWinner,
			pick:   prediction.MatchPick{Home: 0, Away: 0},
			result: prediction.MatchResult{Home: 1, Away: 1},
			points: 3,
			want:   3,
		},
		{
			name:   "draw evaluator ignores non-draw pick",
			kind:   KindDraw,
			pick:   prediction.MatchPick{Home: 2, Away: 0},
			result: prediction.MatchResult{Home: 1, Away: 1},
			points: 3,
			want:   0,
		},
		{
			name:   "draw evaluator any draw pick",
			kind:   KindDraw,
			pick:   prediction.MatchPick{Home: 2, Away: 2},
			result: prediction.MatchResult{Home: 1, Away: 1},
			points: 3,
			want:   3,
		},
		{
			name:   "scorer in scorer set",
			kind:   KindScorer,
			pick:   prediction.MatchPick{Home: 1, Away: 0, ScorerID: "p9"},
			result: prediction.MatchResult{Home: 2, Away: 0, ScorerIDs: []string{"p7", "p9"}},
			points: 2,
			want:   2,
		},
		{
			name:   "no scorer on scoreless match",
			kind:   KindScorer,
			pick:   prediction.MatchPick{NoScorer: true},
			result: prediction.MatchResult{},
			points: 2,
			want:   2,
		},
		{
			name:   "no scorer on match with goals",
			kind:   KindScorer,
			pick:   prediction.MatchPick{NoScorer: true},
			result: prediction.MatchResult{Home: 1, ScorerIDs: []string{"p1"}},
			points: 2,
			want:   0,
		},
		{
			name:    "scorer modes both set",
			kind:    KindScorer,
			pick:    prediction.MatchPick{NoScorer: true, ScorerID: "p1"},
			result:  prediction.MatchResult{},
			points:  2,
			wantErr: ErrMalformedPrediction,
		},
		{
			name:   "playoff advance any resolution",
			kind:   KindPlayoffAdvance,
			pick:   prediction.MatchPick{Home: 1, Away: 1, AdvancingTeamID: "team-a"},
			result: prediction.MatchResult{Home: 1, Away: 1, AdvancingTeamID: "team-a", Resolution: prediction.ResolutionPenalties},
			points: 4,
			want:   4,
		},
		{
			name:   "playoff advance regulation only rule",
			kind:   KindPlayoffAdvance,
			pick:   prediction.MatchPick{Home: 1, Away: 1, AdvancingTeamID: "team-a"},
			result: prediction.MatchResult{Home: 1, Away: 1, AdvancingTeamID: "team-a", Resolution: prediction.ResolutionOvertime},
			points: 4,
			rules:  &Rules{ScoreDifferencePercent: 100, PlayoffAdvance: PlayoffAdvanceRegulationOnly},
			want:   0,
		},
		{
			name:   "zero points never contribute",
			kind:   KindExactScore,
			pick:   prediction.MatchPick{Home: 2, Away: 1},
			result: prediction.MatchResult{Home: 2, Away: 1},
			points: 0,
			want:   0,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			in := Input{Prediction: tc.pick, Outcome: tc.result, Points: tc.points, Rules: rules}
			if tc.rules != nil {
				in.Rules = *tc.rules
			}
			got, err := registry.Score(tc.kind, in)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected error %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("score: %v", err)
			}
			if got != tc.want {
				t.Fatalf("unexpected points: got=%d want=%d", got, tc.want)
			}
		})
	}
}

func TestRegistry_SeriesSpecialAndQuestion(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	rules := DefaultRules()

	score := func(kind Kind, p prediction.Prediction, o prediction.Outcome) int {
		t.Helper()
		got, err := registry.Score(kind, Input{Prediction: p, Outcome: o, Points: 10, Rules: rules})
		if err != nil {
			t.Fatalf("score %s: %v", kind, err)
		}
		return got
	}

	if got := score(KindSeriesExact, prediction.SeriesPick{HomeWins: 4, AwayWins: 2}, prediction.SeriesResult{HomeWins: 4, AwayWins: 2}); got != 10 {
		t.Fatalf("series exact hit: got=%d", got)
	}
	if got := score(KindSeriesExact, prediction.SeriesPick{HomeWins: 4, AwayWins: 1}, prediction.SeriesResult{HomeWins: 4, AwayWins: 2}); got != 0 {
		t.Fatalf("series exact miss: got=%d", got)
	}
	if got := score(KindSeriesWinner, prediction.SeriesPick{HomeWins: 4, AwayWins: 1}, prediction.SeriesResult{HomeWins: 4, AwayWins: 3}); got != 10 {
		t.Fatalf("series winner hit: got=%d", got)
	}
	if got := score(KindExactPlayer, prediction.PlayerPick{PlayerID: "p1"}, prediction.PlayerResult{PlayerID: "p1"}); got != 10 {
		t.Fatalf("exact player hit: got=%d", got)
	}
	if got := score(KindExactTeam, prediction.TeamPick{TeamID: "t1"}, prediction.TeamResult{TeamID: "t2"}); got != 0 {
		t.Fatalf("exact team miss: got=%d", got)
	}
	if got := score(KindExactValue, prediction.ValuePick{Value: decimal.RequireFromString("2.50")}, prediction.ValueResult{Value: decimal.RequireFromString("2.5")}); got != 10 {
		t.Fatalf("exact value must compare numerically: got=%d", got)
	}
	if got := score(KindQuestion, prediction.AnswerPick{Answer: true}, prediction.AnswerResult{Answer: true}); got != 10 {
		t.Fatalf("question hit: got=%d", got)
	}
	if got := score(KindQuestion, prediction.AnswerPick{Answer: false}, prediction.AnswerResult{Answer: true}); got != 0 {
		t.Fatalf("question miss: got=%d", got)
	}
}

func TestRegistry_ClosestValueTiesShareAward(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	actual := prediction.ValueResult{Value: decimal.NewFromInt(10)}
	picks := []prediction.Prediction{
		prediction.ValuePick{Value: decimal.NewFromInt(13)},
		prediction.ValuePick{Value: decimal.NewFromInt(9)},
		prediction.ValuePick{Value: decimal.NewFromInt(11)},
		prediction.ValuePick{Value: decimal.NewFromInt(15)},
	}

	field, err := registry.Prepare(KindClosestValue, actual, picks)
	if err != nil {
		t.Fatalf("prepare: %v", err)
	}
	if !field.HasClosest || !field.ClosestDistance.Equal(decimal.NewFromInt(1)) {
		t.Fatalf("unexpected closest distance: %+v", field)
	}

	want := []int{0, 7, 7, 0}
	for idx, pick := range picks {
		got, err := registry.Score(KindClosestValue, Input{Prediction: pick, Outcome: actual, Points: 7, Rules: DefaultRules(), Field: field})
		if err != nil {
			t.Fatalf("score pick %d: %v", idx, err)
		}
		if got != want[idx] {
			t.Fatalf("pick %d: got=%d want=%d", idx, got, want[idx])
		}
	}
}

func TestRegistry_MalformedPrediction(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	_, err := registry.Score(KindExactValue, Input{
		Prediction: prediction.TeamPick{TeamID: "t1"},
		Outcome:    prediction.ValueResult{Value: decimal.NewFromInt(1)},
		Points:     5,
	})
	if !errors.Is(err, ErrMalformedPrediction) {
		t.Fatalf("expected ErrMalformedPrediction, got %v", err)
	}

	_, err = registry.Score(KindWinner, Input{
		Prediction: prediction.MatchPick{Home: 1},
		Outcome:    prediction.AnswerResult{Answer: true},
		Points:     5,
	})
	if !errors.Is(err, ErrOutcomeMismatch) {
		t.Fatalf("expected ErrOutcomeMismatch, got %v", err)
	}

	if _, err := registry.Score(Kind(0), Input{}); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
}

func TestRegistry_EveryKindRegistered(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	for _, kind := range Kinds() {
		if _, err := registry.Strategy(kind); err != nil {
			t.Fatalf("kind %s has no strategy: %v", kind, err)
		}
		if kind.Category() == "" {
			t.Fatalf("kind %s has no category", kind)
		}
	}
}
