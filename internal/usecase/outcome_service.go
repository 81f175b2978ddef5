package usecase

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/prediction-pool/internal/domain/prediction"
	"github.com/riskibarqy/prediction-pool/internal/platform/logging"
)

// OutcomeService is the boundary where resolved real-world results enter the system.
type OutcomeService struct {
	entityRepo prediction.EntityRepository
	locker     EntityLocker
	logger     *logging.Logger
	now        func() time.Time
}

type RecordOutcomeInput struct {
	EntityID   string
	Outcome    prediction.Outcome
	ResolvedAt *time.Time
}

func NewOutcomeService(entityRepo prediction.EntityRepository, locker EntityLocker, logger *logging.Logger) *OutcomeService {
	if logger == nil {
		logger = logging.Default()
	}
	return &OutcomeService{
		entityRepo: entityRepo,
		locker:     locker,
		logger:     logger,
		now:        time.Now,
	}
}

// LockDue moves every Scheduled entity whose lock time has passed to Locked.
func (s *OutcomeService) LockDue(ctx context.Context) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OutcomeService.LockDue")
	defer span.End()

	now := s.now().UTC()
	items, err := s.entityRepo.ListLockDue(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("list lock due entities: %w", err)
	}

	locked := 0
	for _, item := range items {
		if item.Status != prediction.StatusScheduled {
			continue
		}
		if err := s.entityRepo.UpdateStatus(ctx, item.ID, prediction.StatusLocked, now); err != nil {
			return locked, fmt.Errorf("lock entity %s: %w", item.ID, err)
		}
		locked++
	}
	if locked > 0 {
		s.logger.InfoContext(ctx, "entities locked", "count", locked)
	}
	return locked, nil
}

// RecordOutcome stores the final result of an entity and marks it Played.
// A different outcome on an Evaluated entity is a correction and reopens it for evaluation.
// The entity lock is held so a correction never interleaves with an evaluation pass.
func (s *OutcomeService) RecordOutcome(ctx context.Context, input RecordOutcomeInput) (prediction.Entity, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OutcomeService.RecordOutcome")
	defer span.End()

	input.EntityID = strings.TrimSpace(input.EntityID)
	if input.EntityID == "" {
		return prediction.Entity{}, fmt.Errorf("%w: entity id is required", ErrInvalidInput)
	}
	if input.Outcome == nil {
		return prediction.Entity{}, fmt.Errorf("%w: outcome is required", ErrInvalidInput)
	}
	if err := input.Outcome.Validate(); err != nil {
		return prediction.Entity{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	release, ok, err := s.locker.TryLock(ctx, input.EntityID)
	if err != nil {
		return prediction.Entity{}, fmt.Errorf("%w: acquire entity lock: %v", ErrDependencyUnavailable, err)
	}
	if !ok {
		return prediction.Entity{}, fmt.Errorf("%w: entity=%s", ErrLockConflict, input.EntityID)
	}
	defer release()

	entity, exists, err := s.entityRepo.GetByID(ctx, input.EntityID)
	if err != nil {
		return prediction.Entity{}, fmt.Errorf("get entity: %w", err)
	}
	if !exists {
		return prediction.Entity{}, fmt.Errorf("%w: entity=%s", ErrNotFound, input.EntityID)
	}
	if !entity.Accepts(input.Outcome.EntityKind(), prediction.SubjectOf(input.Outcome)) {
		return prediction.Entity{}, fmt.Errorf("%w: outcome %T does not fit entity kind %s subject %q", ErrInvalidInput, input.Outcome, entity.Kind, entity.ResolvedSubject())
	}

	now := s.now().UTC()
	if entity.AcceptsBets(now) {
		return prediction.Entity{}, fmt.Errorf("%w: entity=%s is still open for bets until %s", ErrInvalidInput, entity.ID, entity.LockAt.UTC().Format(time.RFC3339))
	}

	same, err := sameOutcome(entity.Outcome, input.Outcome)
	if err != nil {
		return prediction.Entity{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if same && entity.Resolved() {
		return entity, nil
	}

	resolvedAt := now
	if input.ResolvedAt != nil && !input.ResolvedAt.IsZero() {
		resolvedAt = input.ResolvedAt.UTC()
	}

	previous := entity.Status
	entity.Outcome = input.Outcome
	entity.ResolvedAt = &resolvedAt
	entity.Status = prediction.StatusPlayed
	entity.UpdatedAt = now
	if err := s.entityRepo.Upsert(ctx, entity); err != nil {
		return prediction.Entity{}, fmt.Errorf("store outcome: %w", err)
	}

	s.logger.InfoContext(ctx, "outcome recorded",
		"entity_id", entity.ID,
		"kind", entity.Kind,
		"previous_status", previous,
	)
	return entity, nil
}

func sameOutcome(current, next prediction.Outcome) (bool, error) {
	if current == nil {
		return false, nil
	}
	currentTag, currentRaw, err := prediction.EncodeOutcome(current)
	if err != nil {
		return false, err
	}
	nextTag, nextRaw, err := prediction.EncodeOutcome(next)
	if err != nil {
		return false, err
	}
	return currentTag == nextTag && bytes.Equal(currentRaw, nextRaw), nil
}
