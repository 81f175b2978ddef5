package prediction

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestPredictionCodec(t *testing.T) {
	t.Parallel()

	items := []Prediction{
		MatchPick{Home: 2, Away: 1, ScorerID: "p9"},
		SeriesPick{HomeWins: 4, AwayWins: 2},
		PlayerPick{PlayerID: "p1"},
		TeamPick{TeamID: "t1"},
		AnswerPick{Answer: true},
	}
	for _, item := range items {
		tag, raw, err := EncodePrediction(item)
		if err != nil {
			t.Fatalf("encode %T: %v", item, err)
		}
		got, err := DecodePrediction(tag, raw)
		if err != nil {
			t.Fatalf("decode %T: %v", item, err)
		}
		if !reflect.DeepEqual(got, item) {
			t.Fatalf("decoded prediction differs: got=%#v want=%#v", got, item)
		}
	}
}

func TestDecodeValuePrediction_AcceptsStringAndNumber(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{`{"value":"12.5"}`, `{"value":12.5}`} {
		got, err := DecodePrediction(TagValue, []byte(raw))
		if err != nil {
			t.Fatalf("decode %s: %v", raw, err)
		}
		pick, ok := got.(ValuePick)
		if !ok || !pick.Value.Equal(decimal.RequireFromString("12.5")) {
			t.Fatalf("unexpected value pick: %#v", got)
		}
	}
}

func TestDecodePrediction_Malformed(t *testing.T) {
	t.Parallel()

	if _, err := DecodePrediction("horoscope", []byte(`{}`)); !errors.Is(err, ErrMalformedPayload) {
		t.Fatalf("expected ErrMalformedPayload for unknown tag, got %v", err)
	}
	if _, err := DecodePrediction(TagMatch, []byte(`{"home":"two"}`)); !errors.Is(err, ErrMalformedPayload) {
		t.Fatalf("expected ErrMalformedPayload for bad body, got %v", err)
	}
	if _, err := DecodeOutcome(TagSeries, nil); !errors.Is(err, ErrMalformedPayload) {
		t.Fatalf("expected ErrMalformedPayload for empty body, got %v", err)
	}
}

func TestEntity_AcceptsBets(t *testing.T) {
	t.Parallel()

	lockAt := time.Date(2026, 5, 1, 18, 0, 0, 0, time.UTC)
	item := Entity{ID: "m1", Kind: KindMatch, Status: StatusScheduled, LockAt: lockAt}

	if !item.AcceptsBets(lockAt.Add(-time.Minute)) {
		t.Fatalf("expected bets accepted before lock")
	}
	if item.AcceptsBets(lockAt) {
		t.Fatalf("expected bets rejected at lock time")
	}
	item.Status = StatusLocked
	if item.AcceptsBets(lockAt.Add(-time.Hour)) {
		t.Fatalf("expected bets rejected once locked")
	}
}

func TestEntity_AcceptsSubject(t *testing.T) {
	t.Parallel()

	special := Entity{ID: "s1", Kind: KindSpecialBet, Subject: SubjectTeam}
	if !special.Accepts(KindSpecialBet, SubjectOf(TeamPick{TeamID: "t1"})) {
		t.Fatalf("expected team pick accepted on team special")
	}
	if special.Accepts(KindSpecialBet, SubjectOf(PlayerPick{PlayerID: "p1"})) {
		t.Fatalf("expected player pick rejected on team special")
	}
	if special.Accepts(KindMatch, "") {
		t.Fatalf("expected match pick rejected on special")
	}

	undeclared := Entity{ID: "s2", Kind: KindSpecialBet}
	if !undeclared.Accepts(KindSpecialBet, SubjectValue) {
		t.Fatalf("expected any subject accepted before one is known")
	}
	undeclared.Outcome = PlayerResult{PlayerID: "p1"}
	if undeclared.ResolvedSubject() != SubjectPlayer || undeclared.Accepts(KindSpecialBet, SubjectValue) {
		t.Fatalf("expected subject to follow the recorded outcome")
	}
}

func TestMatchPick_Validate(t *testing.T) {
	t.Parallel()

	if err := (MatchPick{Home: 1, NoScorer: true, ScorerID: "p1"}).Validate(); !errors.Is(err, ErrInvalidPrediction) {
		t.Fatalf("expected ErrInvalidPrediction, got %v", err)
	}
	if err := (MatchPick{Home: -1}).Validate(); !errors.Is(err, ErrInvalidPrediction) {
		t.Fatalf("expected ErrInvalidPrediction for negative score, got %v", err)
	}
}
