package postgres

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
)

func TestIsNotFound(t *testing.T) {
	if !isNotFound(fmt.Errorf("get entity: %w", sql.ErrNoRows)) {
		t.Fatalf("expected wrapped sql.ErrNoRows to be not found")
	}
	if isNotFound(fakeErr("pq: relation bets does not exist")) {
		t.Fatalf("expected unrelated error to be ignored")
	}
}

func TestIsUniqueViolation(t *testing.T) {
	t.Run("matches 23505", func(t *testing.T) {
		err := fmt.Errorf("insert bet: %w", &pq.Error{Code: "23505"})
		if !isUniqueViolation(err) {
			t.Fatalf("expected true for unique violation")
		}
	})

	t.Run("ignores other codes", func(t *testing.T) {
		if isUniqueViolation(&pq.Error{Code: "23503"}) {
			t.Fatalf("expected false for foreign key violation")
		}
		if isUniqueViolation(fakeErr("duplicate")) {
			t.Fatalf("expected false for plain error")
		}
	})
}

func TestNullableTimeRoundTrip(t *testing.T) {
	if got := nullTimeToPtr(nullableTime(nil)); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}

	at := time.Date(2026, 6, 1, 12, 0, 0, 0, time.FixedZone("WIB", 7*3600))
	got := nullTimeToPtr(nullableTime(&at))
	if got == nil || !got.Equal(at) || got.Location() != time.UTC {
		t.Fatalf("unexpected time: %v", got)
	}
}

type fakeErr string

func (e fakeErr) Error() string { return string(e) }
