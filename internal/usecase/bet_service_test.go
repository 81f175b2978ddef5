package usecase

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/riskibarqy/prediction-pool/internal/domain/league"
	"github.com/riskibarqy/prediction-pool/internal/domain/prediction"
	"github.com/riskibarqy/prediction-pool/internal/infrastructure/repository/memory"
)

type sequenceIDGenerator struct {
	next int
}

func (g *sequenceIDGenerator) NewID() (string, error) {
	g.next++
	return "bet-" + strconv.Itoa(g.next), nil
}

func newBetServiceFixture(now time.Time) (*BetService, *memory.EntityRepository) {
	entities := memory.NewEntityRepository([]prediction.Entity{
		{ID: "open", Kind: prediction.KindMatch, LockAt: now.Add(time.Hour), Status: prediction.StatusScheduled},
		{ID: "past-lock", Kind: prediction.KindMatch, LockAt: now.Add(-time.Minute), Status: prediction.StatusScheduled},
		{ID: "question", Kind: prediction.KindQuestion, LockAt: now.Add(time.Hour), Status: prediction.StatusScheduled},
		{ID: "top-scorer", Kind: prediction.KindSpecialBet, Subject: prediction.SubjectPlayer, LockAt: now.Add(time.Hour), Status: prediction.StatusScheduled},
	})
	leagues := memory.NewLeagueRepository([]league.League{{ID: testLeagueA, Name: "League A"}})

	svc := NewBetService(leagues, entities, memory.NewBetRepository(), &sequenceIDGenerator{})
	svc.now = func() time.Time { return now }
	return svc, entities
}

func TestBetService_PlaceBet(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	svc, _ := newBetServiceFixture(now)

	bet, err := svc.PlaceBet(context.Background(), PlaceBetInput{
		EntityID:   "open",
		LeagueID:   testLeagueA,
		UserID:     "user-1",
		Prediction: prediction.MatchPick{Home: 1, Away: 0, ScorerID: "p9"},
	})
	if err != nil {
		t.Fatalf("place bet: %v", err)
	}
	if bet.ID != "bet-1" || !bet.CreatedAt.Equal(now) || !bet.Active() {
		t.Fatalf("unexpected bet: %+v", bet)
	}

	_, err = svc.PlaceBet(context.Background(), PlaceBetInput{
		EntityID:   "open",
		LeagueID:   testLeagueA,
		UserID:     "user-1",
		Prediction: prediction.MatchPick{Home: 2, Away: 0},
	})
	if !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestBetService_PlaceBet_Rejections(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		input   PlaceBetInput
		wantErr error
	}{
		{
			name:    "after lock time",
			input:   PlaceBetInput{EntityID: "past-lock", LeagueID: testLeagueA, UserID: "u", Prediction: prediction.MatchPick{}},
			wantErr: ErrBettingClosed,
		},
		{
			name:    "prediction shape does not fit entity",
			input:   PlaceBetInput{EntityID: "question", LeagueID: testLeagueA, UserID: "u", Prediction: prediction.MatchPick{}},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "special pick for another subject",
			input:   PlaceBetInput{EntityID: "top-scorer", LeagueID: testLeagueA, UserID: "u", Prediction: prediction.ValuePick{}},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "scorer modes both set",
			input:   PlaceBetInput{EntityID: "open", LeagueID: testLeagueA, UserID: "u", Prediction: prediction.MatchPick{NoScorer: true, ScorerID: "p1"}},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "unknown league",
			input:   PlaceBetInput{EntityID: "open", LeagueID: "nope", UserID: "u", Prediction: prediction.MatchPick{}},
			wantErr: ErrNotFound,
		},
		{
			name:    "unknown entity",
			input:   PlaceBetInput{EntityID: "nope", LeagueID: testLeagueA, UserID: "u", Prediction: prediction.MatchPick{}},
			wantErr: ErrNotFound,
		},
		{
			name:    "missing prediction",
			input:   PlaceBetInput{EntityID: "open", LeagueID: testLeagueA, UserID: "u"},
			wantErr: ErrInvalidInput,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			svc, _ := newBetServiceFixture(now)
			if _, err := svc.PlaceBet(context.Background(), tc.input); !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestOutcomeService_LockDueAndRecordOutcome(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	entities := memory.NewEntityRepository([]prediction.Entity{
		{ID: "m1", Kind: prediction.KindMatch, LockAt: now.Add(-time.Hour), Status: prediction.StatusScheduled},
		{ID: "m2", Kind: prediction.KindMatch, LockAt: now.Add(time.Hour), Status: prediction.StatusScheduled},
	})
	svc := NewOutcomeService(entities, memory.NewEntityLocker(), nil)
	svc.now = func() time.Time { return now }

	locked, err := svc.LockDue(ctx)
	if err != nil {
		t.Fatalf("lock due: %v", err)
	}
	if locked != 1 {
		t.Fatalf("expected one locked entity, got %d", locked)
	}

	if _, err := svc.RecordOutcome(ctx, RecordOutcomeInput{EntityID: "m2", Outcome: prediction.MatchResult{Home: 1}}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for open entity, got %v", err)
	}
	if _, err := svc.RecordOutcome(ctx, RecordOutcomeInput{EntityID: "m1", Outcome: prediction.AnswerResult{Answer: true}}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for outcome kind mismatch, got %v", err)
	}

	entity, err := svc.RecordOutcome(ctx, RecordOutcomeInput{EntityID: "m1", Outcome: prediction.MatchResult{Home: 2, Away: 1, ScorerIDs: []string{"p1"}}})
	if err != nil {
		t.Fatalf("record outcome: %v", err)
	}
	if entity.Status != prediction.StatusPlayed || entity.ResolvedAt == nil || !entity.ResolvedAt.Equal(now) {
		t.Fatalf("unexpected entity after outcome: %+v", entity)
	}

	if err := entities.UpdateStatus(ctx, "m1", prediction.StatusEvaluated, now); err != nil {
		t.Fatalf("mark evaluated: %v", err)
	}
	same, err := svc.RecordOutcome(ctx, RecordOutcomeInput{EntityID: "m1", Outcome: prediction.MatchResult{Home: 2, Away: 1, ScorerIDs: []string{"p1"}}})
	if err != nil {
		t.Fatalf("record same outcome: %v", err)
	}
	if same.Status != prediction.StatusEvaluated {
		t.Fatalf("unchanged outcome must keep evaluated status, got %s", same.Status)
	}

	corrected, err := svc.RecordOutcome(ctx, RecordOutcomeInput{EntityID: "m1", Outcome: prediction.MatchResult{Home: 2, Away: 2, ScorerIDs: []string{"p1", "p2"}}})
	if err != nil {
		t.Fatalf("record corrected outcome: %v", err)
	}
	if corrected.Status != prediction.StatusPlayed {
		t.Fatalf("corrected outcome must reopen entity, got %s", corrected.Status)
	}
}

func TestOutcomeService_RecordOutcomeWaitsForEvaluationLock(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	resolvedAt := now.Add(-time.Hour)
	entities := memory.NewEntityRepository([]prediction.Entity{{
		ID:         "m1",
		Kind:       prediction.KindMatch,
		LockAt:     now.Add(-2 * time.Hour),
		Status:     prediction.StatusEvaluated,
		Outcome:    prediction.MatchResult{Home: 1, Away: 0},
		ResolvedAt: &resolvedAt,
	}})
	locker := memory.NewEntityLocker()
	svc := NewOutcomeService(entities, locker, nil)
	svc.now = func() time.Time { return now }

	release, ok, err := locker.TryLock(ctx, "m1")
	if err != nil || !ok {
		t.Fatalf("pre-lock: ok=%v err=%v", ok, err)
	}

	correction := RecordOutcomeInput{EntityID: "m1", Outcome: prediction.MatchResult{Home: 1, Away: 1}}
	if _, err := svc.RecordOutcome(ctx, correction); !errors.Is(err, ErrLockConflict) {
		t.Fatalf("expected ErrLockConflict while evaluation holds the lock, got %v", err)
	}
	entity, _, _ := entities.GetByID(ctx, "m1")
	if entity.Status != prediction.StatusEvaluated {
		t.Fatalf("busy entity must be left untouched, got %s", entity.Status)
	}

	release()
	corrected, err := svc.RecordOutcome(ctx, correction)
	if err != nil {
		t.Fatalf("record correction after release: %v", err)
	}
	if corrected.Status != prediction.StatusPlayed {
		t.Fatalf("correction must reopen entity, got %s", corrected.Status)
	}
}

func TestOutcomeService_RecordOutcomeChecksSpecialSubject(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	entities := memory.NewEntityRepository([]prediction.Entity{
		{ID: "top-scorer", Kind: prediction.KindSpecialBet, Subject: prediction.SubjectPlayer, LockAt: now.Add(-time.Hour), Status: prediction.StatusLocked},
	})
	svc := NewOutcomeService(entities, memory.NewEntityLocker(), nil)
	svc.now = func() time.Time { return now }

	if _, err := svc.RecordOutcome(ctx, RecordOutcomeInput{EntityID: "top-scorer", Outcome: prediction.TeamResult{TeamID: "t1"}}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for subject mismatch, got %v", err)
	}
	if _, err := svc.RecordOutcome(ctx, RecordOutcomeInput{EntityID: "top-scorer", Outcome: prediction.PlayerResult{PlayerID: "p1"}}); err != nil {
		t.Fatalf("record player outcome: %v", err)
	}
}
