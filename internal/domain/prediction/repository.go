package prediction

import (
	"context"
	"time"
)

type EntityRepository interface {
	GetByID(ctx context.Context, entityID string) (Entity, bool, error)
	ListByStatus(ctx context.Context, status Status) ([]Entity, error)
	ListLockDue(ctx context.Context, now time.Time) ([]Entity, error)
	Upsert(ctx context.Context, entity Entity) error
	UpdateStatus(ctx context.Context, entityID string, status Status, updatedAt time.Time) error
}

type BetRepository interface {
	Create(ctx context.Context, bet Bet) error
	ListActiveByEntity(ctx context.Context, entityID string) ([]Bet, error)
	FindActive(ctx context.Context, entityID, leagueID, userID string) (Bet, bool, error)
}
