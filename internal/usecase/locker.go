package usecase

import "context"

// EntityLocker serializes evaluation passes for one entity across workers and processes.
type EntityLocker interface {
	// TryLock never blocks. ok=false means another holder owns the lock.
	TryLock(ctx context.Context, entityID string) (release func(), ok bool, err error)
}
