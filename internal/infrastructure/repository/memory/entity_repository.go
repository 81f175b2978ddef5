package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/prediction-pool/internal/domain/prediction"
)

type EntityRepository struct {
	mu    sync.RWMutex
	items map[string]prediction.Entity
}

func NewEntityRepository(entities []prediction.Entity) *EntityRepository {
	items := make(map[string]prediction.Entity, len(entities))
	for _, item := range entities {
		items[item.ID] = item
	}
	return &EntityRepository{items: items}
}

func (r *EntityRepository) GetByID(_ context.Context, entityID string) (prediction.Entity, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[entityID]
	return item, ok, nil
}

func (r *EntityRepository) ListByStatus(_ context.Context, status prediction.Status) ([]prediction.Entity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]prediction.Entity, 0)
	for _, item := range r.items {
		if item.Status == status {
			out = append(out, item)
		}
	}
	sortEntities(out)
	return out, nil
}

func (r *EntityRepository) ListLockDue(_ context.Context, now time.Time) ([]prediction.Entity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]prediction.Entity, 0)
	for _, item := range r.items {
		if item.Status == prediction.StatusScheduled && !now.Before(item.LockAt) {
			out = append(out, item)
		}
	}
	sortEntities(out)
	return out, nil
}

func (r *EntityRepository) Upsert(_ context.Context, entity prediction.Entity) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[entity.ID] = entity
	return nil
}

func (r *EntityRepository) UpdateStatus(_ context.Context, entityID string, status prediction.Status, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[entityID]
	if !ok {
		return nil
	}
	item.Status = status
	item.UpdatedAt = updatedAt
	r.items[entityID] = item
	return nil
}

func sortEntities(items []prediction.Entity) {
	sort.Slice(items, func(i, j int) bool {
		if !items[i].LockAt.Equal(items[j].LockAt) {
			return items[i].LockAt.Before(items[j].LockAt)
		}
		return items[i].ID < items[j].ID
	})
}
