package usecase

import "time"

// EvaluationRecorder receives engine counters. observability.Metrics implements it.
type EvaluationRecorder interface {
	ObserveEvaluation(result string, duration time.Duration)
	AddPointsRecords(n int)
	AddBetFailures(n int)
}

const (
	evaluationResultSucceeded = "succeeded"
	evaluationResultPartial   = "partial"
	evaluationResultFailed    = "failed"
	evaluationResultNotReady  = "not_ready"
	evaluationResultConflict  = "lock_conflict"
)

type nopRecorder struct{}

func (nopRecorder) ObserveEvaluation(string, time.Duration) {}
func (nopRecorder) AddPointsRecords(int)                    {}
func (nopRecorder) AddBetFailures(int)                      {}
