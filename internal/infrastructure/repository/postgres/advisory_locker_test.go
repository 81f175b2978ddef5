package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
)

func newMockLocker(t *testing.T) (*AdvisoryLocker, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("open sqlmock: %v", err)
	}
	return NewAdvisoryLocker(sqlx.NewDb(db, "sqlmock"), nil), mock
}

func TestAdvisoryLocker_ReleaseReturnsConnectionToPool(t *testing.T) {
	locker, mock := newMockLocker(t)

	mock.ExpectQuery(`pg_try_advisory_lock`).WithArgs("m1").
		WillReturnRows(sqlmock.NewRows([]string{"pg_try_advisory_lock"}).AddRow(true))
	mock.ExpectExec(`pg_advisory_unlock`).WithArgs("m1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	release, ok, err := locker.TryLock(context.Background(), "m1")
	if err != nil || !ok {
		t.Fatalf("try lock: ok=%v err=%v", ok, err)
	}
	release()
	release()

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAdvisoryLocker_FailedUnlockDiscardsConnection(t *testing.T) {
	locker, mock := newMockLocker(t)

	mock.ExpectQuery(`pg_try_advisory_lock`).WithArgs("m1").
		WillReturnRows(sqlmock.NewRows([]string{"pg_try_advisory_lock"}).AddRow(true))
	mock.ExpectExec(`pg_advisory_unlock`).WithArgs("m1").
		WillReturnError(errors.New("statement timeout"))
	mock.ExpectClose()

	release, ok, err := locker.TryLock(context.Background(), "m1")
	if err != nil || !ok {
		t.Fatalf("try lock: ok=%v err=%v", ok, err)
	}
	release()

	// The driver connection is closed by the release itself, not by a pool shutdown.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("connection was not discarded: %v", err)
	}
}

func TestAdvisoryLocker_BusyLockReportsNotAcquired(t *testing.T) {
	locker, mock := newMockLocker(t)

	mock.ExpectQuery(`pg_try_advisory_lock`).WithArgs("m1").
		WillReturnRows(sqlmock.NewRows([]string{"pg_try_advisory_lock"}).AddRow(false))

	release, ok, err := locker.TryLock(context.Background(), "m1")
	if err != nil {
		t.Fatalf("try lock: %v", err)
	}
	if ok || release != nil {
		t.Fatalf("expected busy lock, ok=%v", ok)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
