package memory

import (
	"context"
	"sync"
)

// EntityLocker is a process-local try-lock keyed by entity id.
type EntityLocker struct {
	mu   sync.Mutex
	held map[string]struct{}
}

func NewEntityLocker() *EntityLocker {
	return &EntityLocker{held: make(map[string]struct{})}
}

func (l *EntityLocker) TryLock(_ context.Context, entityID string) (func(), bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, busy := l.held[entityID]; busy {
		return nil, false, nil
	}
	l.held[entityID] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.held, entityID)
			l.mu.Unlock()
		})
	}, true, nil
}
