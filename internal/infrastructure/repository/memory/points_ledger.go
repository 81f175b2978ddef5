package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/prediction-pool/internal/domain/evaluator"
	"github.com/riskibarqy/prediction-pool/internal/domain/points"
)

// PointsLedger keeps one record per (bet, evaluator) key.
type PointsLedger struct {
	mu    sync.RWMutex
	items map[string]points.Record
}

func NewPointsLedger() *PointsLedger {
	return &PointsLedger{items: make(map[string]points.Record)}
}

func (l *PointsLedger) ReplaceEntity(_ context.Context, entityID string, records []points.Record) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for key, item := range l.items {
		if item.EntityID == entityID {
			delete(l.items, key)
		}
	}
	for _, item := range records {
		l.items[item.Key()] = item
	}
	return nil
}

func (l *PointsLedger) ResetByEntity(_ context.Context, entityID string) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for key, item := range l.items {
		if item.EntityID == entityID {
			delete(l.items, key)
			removed++
		}
	}
	return removed, nil
}

func (l *PointsLedger) ListByEntity(_ context.Context, entityID string) ([]points.Record, error) {
	return l.filter(func(item points.Record) bool { return item.EntityID == entityID }), nil
}

func (l *PointsLedger) ListByBet(_ context.Context, betID string) ([]points.Record, error) {
	return l.filter(func(item points.Record) bool { return item.BetID == betID }), nil
}

func (l *PointsLedger) ListByLeagueUser(_ context.Context, leagueID, userID string) ([]points.Record, error) {
	return l.filter(func(item points.Record) bool {
		return item.LeagueID == leagueID && item.UserID == userID
	}), nil
}

func (l *PointsLedger) SumByLeague(_ context.Context, leagueID string) ([]points.UserCategoryTotal, error) {
	type sumKey struct {
		userID   string
		category evaluator.Category
	}

	l.mu.RLock()
	sums := make(map[sumKey]*points.UserCategoryTotal)
	for _, item := range l.items {
		if item.LeagueID != leagueID {
			continue
		}
		key := sumKey{userID: item.UserID, category: item.Category}
		total, ok := sums[key]
		if !ok {
			total = &points.UserCategoryTotal{UserID: item.UserID, Category: item.Category}
			sums[key] = total
		}
		total.Points += item.Points
		total.Records++
	}
	l.mu.RUnlock()

	out := make([]points.UserCategoryTotal, 0, len(sums))
	for _, total := range sums {
		out = append(out, *total)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UserID != out[j].UserID {
			return out[i].UserID < out[j].UserID
		}
		return out[i].Category < out[j].Category
	})
	return out, nil
}

func (l *PointsLedger) filter(match func(points.Record) bool) []points.Record {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]points.Record, 0)
	for _, item := range l.items {
		if match(item) {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key() < out[j].Key() })
	return out
}
