package usecase

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")

	ErrAlreadyExists     = errors.New("resource already exists")
	ErrBettingClosed     = errors.New("betting closed")
	ErrNotReady          = errors.New("entity not ready for evaluation")
	ErrLockConflict      = errors.New("entity evaluation already in progress")
	ErrConfiguration     = errors.New("invalid configuration")
	ErrPartialEvaluation = errors.New("partial evaluation")
)

// PartialEvaluationError lists the bets that failed while their siblings were scored.
type PartialEvaluationError struct {
	EntityID   string
	FailedBets map[string]string
}

func (e *PartialEvaluationError) Error() string {
	ids := e.BetIDs()
	return fmt.Sprintf("partial evaluation of entity %s: %d bet(s) failed [%s]", e.EntityID, len(ids), strings.Join(ids, ","))
}

func (e *PartialEvaluationError) Is(target error) bool {
	return target == ErrPartialEvaluation
}

// BetIDs returns the failed bet ids in stable order.
func (e *PartialEvaluationError) BetIDs() []string {
	out := make([]string, 0, len(e.FailedBets))
	for id := range e.FailedBets {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func isPartial(err error) bool      { return errors.Is(err, ErrPartialEvaluation) }
func isLockConflict(err error) bool { return errors.Is(err, ErrLockConflict) }
func isNotReady(err error) bool     { return errors.Is(err, ErrNotReady) }
