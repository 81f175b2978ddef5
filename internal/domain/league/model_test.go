package league

import (
	"errors"
	"testing"

	"github.com/riskibarqy/prediction-pool/internal/domain/evaluator"
)

func TestLeague_Validate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		league  League
		wantErr bool
	}{
		{name: "complete", league: League{ID: "l1", Name: "Office Pool", Season: "2026"}},
		{name: "season optional", league: League{ID: "l1", Name: "Office Pool"}},
		{name: "missing id", league: League{Name: "Office Pool"}, wantErr: true},
		{name: "missing name", league: League{ID: "l1"}, wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := tc.league.Validate()
			if tc.wantErr && err == nil {
				t.Fatalf("expected error for %+v", tc.league)
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestSettings_ValidateRejectsUnknownTieBreak(t *testing.T) {
	t.Parallel()

	settings := DefaultSettings("l1")
	if err := settings.Validate(); err != nil {
		t.Fatalf("default settings should be valid: %v", err)
	}

	settings.Leaderboard.TieBreak = "coin-flip"
	if err := settings.Validate(); !errors.Is(err, evaluator.ErrInvalidRules) {
		t.Fatalf("expected ErrInvalidRules, got %v", err)
	}
}
