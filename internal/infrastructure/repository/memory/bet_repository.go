package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/prediction-pool/internal/domain/prediction"
)

type BetRepository struct {
	mu       sync.RWMutex
	items    map[string]prediction.Bet
	byEntity map[string][]string
}

func NewBetRepository() *BetRepository {
	return &BetRepository{
		items:    make(map[string]prediction.Bet),
		byEntity: make(map[string][]string),
	}
}

func (r *BetRepository) Create(_ context.Context, bet prediction.Bet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range r.byEntity[bet.EntityID] {
		existing := r.items[id]
		if existing.Active() && existing.LeagueID == bet.LeagueID && existing.UserID == bet.UserID {
			return prediction.ErrDuplicateBet
		}
	}

	r.items[bet.ID] = bet
	r.byEntity[bet.EntityID] = append(r.byEntity[bet.EntityID], bet.ID)
	return nil
}

func (r *BetRepository) ListActiveByEntity(_ context.Context, entityID string) ([]prediction.Bet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]prediction.Bet, 0, len(r.byEntity[entityID]))
	for _, id := range r.byEntity[entityID] {
		item := r.items[id]
		if item.Active() {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *BetRepository) FindActive(_ context.Context, entityID, leagueID, userID string) (prediction.Bet, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.byEntity[entityID] {
		item := r.items[id]
		if item.Active() && item.LeagueID == leagueID && item.UserID == userID {
			return item, true, nil
		}
	}
	return prediction.Bet{}, false, nil
}
