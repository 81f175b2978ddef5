package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/riskibarqy/prediction-pool/internal/domain/league"
)

// LeagueRepository keeps leagues in insertion order with an id index.
type LeagueRepository struct {
	mu    sync.RWMutex
	index map[string]int
	items []league.League
}

func NewLeagueRepository(leagues []league.League) *LeagueRepository {
	r := &LeagueRepository{index: make(map[string]int, len(leagues))}
	for _, l := range leagues {
		r.put(l)
	}
	return r
}

// Add validates and stores a league. A known id is replaced in place.
func (r *LeagueRepository) Add(l league.League) error {
	if err := l.Validate(); err != nil {
		return fmt.Errorf("add league %q: %w", l.ID, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.put(l)
	return nil
}

func (r *LeagueRepository) put(l league.League) {
	if i, ok := r.index[l.ID]; ok {
		r.items[i] = l
		return
	}
	r.index[l.ID] = len(r.items)
	r.items = append(r.items, l)
}

func (r *LeagueRepository) List(_ context.Context) ([]league.League, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]league.League, len(r.items))
	copy(out, r.items)
	return out, nil
}

func (r *LeagueRepository) GetByID(_ context.Context, leagueID string) (league.League, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[leagueID]
	if !ok {
		return league.League{}, false, nil
	}
	return r.items[i], true, nil
}
