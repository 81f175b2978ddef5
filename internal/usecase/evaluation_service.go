package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/riskibarqy/prediction-pool/internal/domain/evaluator"
	"github.com/riskibarqy/prediction-pool/internal/domain/league"
	"github.com/riskibarqy/prediction-pool/internal/domain/points"
	"github.com/riskibarqy/prediction-pool/internal/domain/prediction"
	"github.com/riskibarqy/prediction-pool/internal/platform/logging"
	"github.com/sourcegraph/conc/panics"
)

const defaultEvaluationWorkers = 4

// LeaderboardInvalidator drops cached leaderboard views after the ledger changes.
type LeaderboardInvalidator interface {
	Invalidate(ctx context.Context, leagueID string)
}

type EvaluationServiceOptions struct {
	Workers  int
	Notifier ScoreNotifier
	Recorder EvaluationRecorder
	Logger   *logging.Logger
}

type EvaluationService struct {
	entityRepo   prediction.EntityRepository
	betRepo      prediction.BetRepository
	configRepo   league.ConfigRepository
	ledger       points.Ledger
	registry     *evaluator.Registry
	locker       EntityLocker
	leaderboards LeaderboardInvalidator
	notifier     ScoreNotifier
	recorder     EvaluationRecorder
	logger       *logging.Logger
	workers      int
	now          func() time.Time
}

type EvaluationResult struct {
	EntityID    string            `json:"entity_id"`
	Status      prediction.Status `json:"status"`
	Bets        int               `json:"bets"`
	Records     int               `json:"records"`
	SkippedBets int               `json:"skipped_bets"`
	FailedBets  map[string]string `json:"failed_bets,omitempty"`
}

type BatchItem struct {
	EntityID   string `json:"entity_id"`
	Status     string `json:"status"`
	Records    int    `json:"records"`
	FailedBets int    `json:"failed_bets"`
	DurationMs int64  `json:"duration_ms"`
	Message    string `json:"message,omitempty"`
}

type BatchSummary struct {
	Processed   int         `json:"processed"`
	Succeeded   int         `json:"succeeded"`
	Failed      int         `json:"failed"`
	Interrupted bool        `json:"interrupted"`
	Items       []BatchItem `json:"items"`
}

const (
	batchStatusSucceeded = "succeeded"
	batchStatusPartial   = "partial"
	batchStatusFailed    = "failed"
	batchStatusConflict  = "lock_conflict"
	batchStatusCancelled = "cancelled"
)

func NewEvaluationService(
	entityRepo prediction.EntityRepository,
	betRepo prediction.BetRepository,
	configRepo league.ConfigRepository,
	ledger points.Ledger,
	registry *evaluator.Registry,
	locker EntityLocker,
	leaderboards LeaderboardInvalidator,
	opts EvaluationServiceOptions,
) *EvaluationService {
	if opts.Workers <= 0 {
		opts.Workers = defaultEvaluationWorkers
	}
	if opts.Recorder == nil {
		opts.Recorder = nopRecorder{}
	}
	if opts.Logger == nil {
		opts.Logger = logging.Default()
	}
	if opts.Notifier == nil {
		opts.Notifier = NewLoggingNotifier(opts.Logger)
	}
	if registry == nil {
		registry = evaluator.NewRegistry()
	}

	return &EvaluationService{
		entityRepo:   entityRepo,
		betRepo:      betRepo,
		configRepo:   configRepo,
		ledger:       ledger,
		registry:     registry,
		locker:       locker,
		leaderboards: leaderboards,
		notifier:     opts.Notifier,
		recorder:     opts.Recorder,
		logger:       opts.Logger,
		workers:      opts.Workers,
		now:          time.Now,
	}
}

// EvaluateOne scores every active bet of a resolved entity and writes the points records.
// A *PartialEvaluationError is returned together with a populated result when some bets failed.
func (s *EvaluationService) EvaluateOne(ctx context.Context, entityID string) (EvaluationResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EvaluationService.EvaluateOne")
	defer span.End()

	entityID = strings.TrimSpace(entityID)
	if entityID == "" {
		return EvaluationResult{}, fmt.Errorf("%w: entity id is required", ErrInvalidInput)
	}

	start := s.now()
	result, err := s.evaluateLocked(ctx, entityID)
	s.recorder.ObserveEvaluation(evaluationResultLabel(err), s.now().Sub(start))
	return result, err
}

func (s *EvaluationService) evaluateLocked(ctx context.Context, entityID string) (EvaluationResult, error) {
	release, ok, err := s.locker.TryLock(ctx, entityID)
	if err != nil {
		return EvaluationResult{}, fmt.Errorf("%w: acquire entity lock: %v", ErrDependencyUnavailable, err)
	}
	if !ok {
		return EvaluationResult{}, fmt.Errorf("%w: entity=%s", ErrLockConflict, entityID)
	}
	defer release()

	entity, exists, err := s.entityRepo.GetByID(ctx, entityID)
	if err != nil {
		return EvaluationResult{}, fmt.Errorf("get entity: %w", err)
	}
	if !exists {
		return EvaluationResult{}, fmt.Errorf("%w: entity=%s", ErrNotFound, entityID)
	}
	if !entity.Resolved() {
		return EvaluationResult{}, fmt.Errorf("%w: entity=%s status=%s", ErrNotReady, entityID, entity.Status)
	}
	category, ok := evaluator.CategoryForEntity(entity.Kind)
	if !ok {
		return EvaluationResult{}, fmt.Errorf("%w: entity=%s kind=%q", ErrConfiguration, entityID, entity.Kind)
	}

	bets, err := s.betRepo.ListActiveByEntity(ctx, entityID)
	if err != nil {
		return EvaluationResult{}, fmt.Errorf("list active bets: %w", err)
	}

	evaluatedAt := entity.UpdatedAt.UTC()
	if entity.ResolvedAt != nil {
		evaluatedAt = entity.ResolvedAt.UTC()
	}

	result := EvaluationResult{
		EntityID: entityID,
		Status:   entity.Status,
		Bets:     len(bets),
	}
	failed := make(map[string]string)
	records := make([]points.Record, 0, len(bets))

	betsByLeague := groupBetsByLeague(bets)
	leagueIDs := sortedKeys(betsByLeague)
	for _, leagueID := range leagueIDs {
		leagueBets := betsByLeague[leagueID]

		evaluators, rules, err := s.loadLeagueScoring(ctx, leagueID, category)
		if err != nil {
			s.logger.WarnContext(ctx, "load league scoring failed",
				"entity_id", entityID,
				"league_id", leagueID,
				"error", err,
			)
			for _, bet := range leagueBets {
				failed[bet.ID] = err.Error()
			}
			continue
		}
		evaluators = applicableEvaluators(entity, evaluators)
		if len(evaluators) == 0 {
			result.SkippedBets += len(leagueBets)
			continue
		}

		leagueRecords := s.scoreLeague(entity, leagueBets, evaluators, rules, evaluatedAt, failed)
		records = append(records, leagueRecords...)
	}

	// Records the current pass no longer produces are dropped with the write.
	if err := s.ledger.ReplaceEntity(ctx, entityID, records); err != nil {
		return result, fmt.Errorf("replace points records: %w", err)
	}
	result.Records = len(records)
	s.recorder.AddPointsRecords(len(records))
	s.recorder.AddBetFailures(len(failed))

	if len(failed) == 0 && entity.Status != prediction.StatusEvaluated {
		if err := s.entityRepo.UpdateStatus(ctx, entityID, prediction.StatusEvaluated, s.now().UTC()); err != nil {
			return result, fmt.Errorf("mark entity evaluated: %w", err)
		}
		result.Status = prediction.StatusEvaluated
	}

	s.invalidateLeaderboards(ctx, leagueIDs)

	if len(records) > 0 {
		if err := s.notifier.NotifyScored(ctx, entityID, records); err != nil {
			s.logger.WarnContext(ctx, "notify scored points failed", "entity_id", entityID, "error", err)
		}
	}

	s.logger.InfoContext(ctx, "entity evaluated",
		"entity_id", entityID,
		"bets", len(bets),
		"records", len(records),
		"skipped_bets", result.SkippedBets,
		"failed_bets", len(failed),
	)

	if len(failed) > 0 {
		result.FailedBets = failed
		for betID, reason := range failed {
			s.logger.WarnContext(ctx, "bet evaluation failed", "entity_id", entityID, "bet_id", betID, "reason", reason)
		}
		return result, &PartialEvaluationError{EntityID: entityID, FailedBets: failed}
	}
	return result, nil
}

func (s *EvaluationService) loadLeagueScoring(ctx context.Context, leagueID string, category evaluator.Category) ([]evaluator.Evaluator, evaluator.Rules, error) {
	evaluators, err := s.configRepo.ListEvaluators(ctx, leagueID, category)
	if err != nil {
		return nil, evaluator.Rules{}, fmt.Errorf("list evaluators: %w", err)
	}

	settings, ok, err := s.configRepo.GetSettings(ctx, leagueID)
	if err != nil {
		return nil, evaluator.Rules{}, fmt.Errorf("get league settings: %w", err)
	}
	if !ok {
		settings = league.DefaultSettings(leagueID)
	}

	return evaluators, settings.Scoring, nil
}

// scoreLeague applies every evaluator of one league to that league's bets.
// Field statistics (closest-value) are computed over the league's bets only.
func (s *EvaluationService) scoreLeague(
	entity prediction.Entity,
	bets []prediction.Bet,
	evaluators []evaluator.Evaluator,
	rules evaluator.Rules,
	evaluatedAt time.Time,
	failed map[string]string,
) []points.Record {
	predictions := make([]prediction.Prediction, 0, len(bets))
	for _, bet := range bets {
		predictions = append(predictions, bet.Prediction)
	}

	out := make([]points.Record, 0, len(bets)*len(evaluators))
	for _, item := range evaluators {
		var (
			field      evaluator.Field
			prepareErr error
		)
		if recovered := panics.Try(func() {
			field, prepareErr = s.registry.Prepare(item.Kind, entity.Outcome, predictions)
		}); recovered != nil {
			prepareErr = recovered.AsError()
		}
		if prepareErr != nil {
			for _, bet := range bets {
				failed[bet.ID] = fmt.Sprintf("evaluator %s: %v", item.ID, prepareErr)
			}
			continue
		}

		for _, bet := range bets {
			value, err := s.scoreBet(item, bet, entity.Outcome, rules, field)
			if err != nil {
				failed[bet.ID] = fmt.Sprintf("evaluator %s: %v", item.ID, err)
				continue
			}
			out = append(out, points.Record{
				BetID:       bet.ID,
				EvaluatorID: item.ID,
				EntityID:    entity.ID,
				LeagueID:    bet.LeagueID,
				UserID:      bet.UserID,
				Category:    item.Category(),
				Points:      value,
				EvaluatedAt: evaluatedAt,
			})
		}
	}
	return out
}

func (s *EvaluationService) scoreBet(item evaluator.Evaluator, bet prediction.Bet, outcome prediction.Outcome, rules evaluator.Rules, field evaluator.Field) (value int, err error) {
	recovered := panics.Try(func() {
		value, err = s.registry.Score(item.Kind, evaluator.Input{
			Prediction: bet.Prediction,
			Outcome:    outcome,
			Points:     item.Points,
			Rules:      rules,
			Field:      field,
		})
	})
	if recovered != nil {
		return 0, recovered.AsError()
	}
	return value, err
}

// EvaluatePending evaluates every Played entity on a bounded worker pool.
// Cancelling ctx stops the batch between entities; an entity already started runs to completion.
func (s *EvaluationService) EvaluatePending(ctx context.Context) (BatchSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EvaluationService.EvaluatePending")
	defer span.End()

	entities, err := s.entityRepo.ListByStatus(ctx, prediction.StatusPlayed)
	if err != nil {
		return BatchSummary{}, fmt.Errorf("list played entities: %w", err)
	}
	if len(entities) == 0 {
		return BatchSummary{Items: []BatchItem{}}, nil
	}

	items, err := runPool(ctx, s.workers, entities, func(ctx context.Context, entity prediction.Entity) BatchItem {
		return s.evaluateBatchItem(ctx, entity.ID)
	})
	if err != nil {
		return BatchSummary{}, err
	}

	summary := BatchSummary{Items: items}
	for _, item := range items {
		switch item.Status {
		case batchStatusCancelled:
			summary.Interrupted = true
			continue
		case batchStatusSucceeded:
			summary.Succeeded++
		default:
			summary.Failed++
		}
		summary.Processed++
	}

	s.logger.InfoContext(ctx, "pending evaluation finished",
		"processed", summary.Processed,
		"succeeded", summary.Succeeded,
		"failed", summary.Failed,
		"interrupted", summary.Interrupted,
	)
	return summary, nil
}

func (s *EvaluationService) evaluateBatchItem(ctx context.Context, entityID string) BatchItem {
	item := BatchItem{EntityID: entityID}
	if ctx.Err() != nil {
		item.Status = batchStatusCancelled
		return item
	}

	start := s.now()
	result, err := s.EvaluateOne(context.WithoutCancel(ctx), entityID)
	item.DurationMs = s.now().Sub(start).Milliseconds()
	item.Records = result.Records
	item.FailedBets = len(result.FailedBets)

	switch {
	case err == nil:
		item.Status = batchStatusSucceeded
	case isPartial(err):
		item.Status = batchStatusPartial
		item.Message = err.Error()
	case isLockConflict(err):
		item.Status = batchStatusConflict
		item.Message = err.Error()
	default:
		item.Status = batchStatusFailed
		item.Message = err.Error()
		s.logger.WarnContext(ctx, "evaluate entity failed", "entity_id", entityID, "error", err)
	}
	return item
}

// ResetEvaluation removes every points record of the entity and returns it to Played.
func (s *EvaluationService) ResetEvaluation(ctx context.Context, entityID string) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EvaluationService.ResetEvaluation")
	defer span.End()

	entityID = strings.TrimSpace(entityID)
	if entityID == "" {
		return 0, fmt.Errorf("%w: entity id is required", ErrInvalidInput)
	}

	release, ok, err := s.locker.TryLock(ctx, entityID)
	if err != nil {
		return 0, fmt.Errorf("%w: acquire entity lock: %v", ErrDependencyUnavailable, err)
	}
	if !ok {
		return 0, fmt.Errorf("%w: entity=%s", ErrLockConflict, entityID)
	}
	defer release()

	entity, exists, err := s.entityRepo.GetByID(ctx, entityID)
	if err != nil {
		return 0, fmt.Errorf("get entity: %w", err)
	}
	if !exists {
		return 0, fmt.Errorf("%w: entity=%s", ErrNotFound, entityID)
	}

	existing, err := s.ledger.ListByEntity(ctx, entityID)
	if err != nil {
		return 0, fmt.Errorf("list points records: %w", err)
	}
	removed, err := s.ledger.ResetByEntity(ctx, entityID)
	if err != nil {
		return 0, fmt.Errorf("reset points records: %w", err)
	}

	if entity.Status == prediction.StatusEvaluated {
		if err := s.entityRepo.UpdateStatus(ctx, entityID, prediction.StatusPlayed, s.now().UTC()); err != nil {
			return removed, fmt.Errorf("return entity to played: %w", err)
		}
	}

	leagues := make(map[string]struct{}, len(existing))
	for _, item := range existing {
		leagues[item.LeagueID] = struct{}{}
	}
	s.invalidateLeaderboards(ctx, sortedKeys(leagues))

	s.logger.InfoContext(ctx, "entity evaluation reset", "entity_id", entityID, "removed_records", removed)
	return removed, nil
}

func (s *EvaluationService) invalidateLeaderboards(ctx context.Context, leagueIDs []string) {
	if s.leaderboards == nil {
		return
	}
	for _, leagueID := range leagueIDs {
		s.leaderboards.Invalidate(ctx, leagueID)
	}
}

func applicableEvaluators(entity prediction.Entity, items []evaluator.Evaluator) []evaluator.Evaluator {
	out := items[:0:0]
	for _, item := range items {
		if item.Kind.AppliesTo(entity) {
			out = append(out, item)
		}
	}
	return out
}

func groupBetsByLeague(bets []prediction.Bet) map[string][]prediction.Bet {
	out := make(map[string][]prediction.Bet)
	for _, bet := range bets {
		out[bet.LeagueID] = append(out[bet.LeagueID], bet)
	}
	return out
}

func sortedKeys[V any](in map[string]V) []string {
	out := make([]string, 0, len(in))
	for key := range in {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}

func evaluationResultLabel(err error) string {
	switch {
	case err == nil:
		return evaluationResultSucceeded
	case isPartial(err):
		return evaluationResultPartial
	case isLockConflict(err):
		return evaluationResultConflict
	case isNotReady(err):
		return evaluationResultNotReady
	default:
		return evaluationResultFailed
	}
}
