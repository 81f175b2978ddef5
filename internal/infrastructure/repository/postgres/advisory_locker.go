package postgres

import (
	"context"
	"database/sql/driver"
	"fmt"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/prediction-pool/internal/platform/logging"
)

const advisoryUnlockTimeout = 5 * time.Second

// AdvisoryLocker serializes entity evaluation across processes with session-level advisory locks.
// Each held lock pins one pooled connection until it is released.
type AdvisoryLocker struct {
	db     *sqlx.DB
	logger *logging.Logger
}

func NewAdvisoryLocker(db *sqlx.DB, logger *logging.Logger) *AdvisoryLocker {
	if logger == nil {
		logger = logging.Default()
	}
	return &AdvisoryLocker{db: db, logger: logger}
}

func (l *AdvisoryLocker) TryLock(ctx context.Context, entityID string) (func(), bool, error) {
	conn, err := l.db.Connx(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("acquire lock connection: %w", err)
	}

	var acquired bool
	if err := conn.GetContext(ctx, &acquired, `SELECT pg_try_advisory_lock(hashtext($1))`, entityID); err != nil {
		_ = conn.Close()
		return nil, false, fmt.Errorf("try advisory lock entity=%s: %w", entityID, err)
	}
	if !acquired {
		_ = conn.Close()
		return nil, false, nil
	}

	var once sync.Once
	release := func() {
		once.Do(func() {
			unlockCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), advisoryUnlockTimeout)
			defer cancel()

			if _, err := conn.ExecContext(unlockCtx, `SELECT pg_advisory_unlock(hashtext($1))`, entityID); err != nil {
				l.logger.WarnContext(unlockCtx, "release advisory lock failed, discarding connection", "entity_id", entityID, "error", err)
				discardConn(conn)
				return
			}
			if err := conn.Close(); err != nil {
				l.logger.WarnContext(unlockCtx, "close lock connection failed", "entity_id", entityID, "error", err)
			}
		})
	}
	return release, true, nil
}

// discardConn closes the session behind conn instead of returning it to the pool,
// so a lock that could not be released dies with its session.
func discardConn(conn *sqlx.Conn) {
	_ = conn.Raw(func(any) error {
		return driver.ErrBadConn
	})
}
