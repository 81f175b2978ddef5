package points

import "context"

// Ledger is the durable store of points records.
type Ledger interface {
	// ReplaceEntity writes the entity's records in one transaction. Records with the same
	// (bet, evaluator) key are overwritten and the entity's other records are removed.
	ReplaceEntity(ctx context.Context, entityID string, records []Record) error
	ResetByEntity(ctx context.Context, entityID string) (int, error)
	ListByEntity(ctx context.Context, entityID string) ([]Record, error)
	ListByBet(ctx context.Context, betID string) ([]Record, error)
	ListByLeagueUser(ctx context.Context, leagueID, userID string) ([]Record, error)
	SumByLeague(ctx context.Context, leagueID string) ([]UserCategoryTotal, error)
}
