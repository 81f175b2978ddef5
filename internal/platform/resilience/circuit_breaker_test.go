package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCircuitBreaker_Transitions(t *testing.T) {
	var transitions []string
	b := NewCircuitBreakerFromConfig(CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 2,
		OpenTimeout:      5 * time.Second,
		HalfOpenMaxReq:   1,
		OnStateChange: func(from, to CircuitState) {
			transitions = append(transitions, string(from)+"->"+string(to))
		},
	})

	now := time.Date(2026, 6, 11, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }

	require.NoError(t, b.Allow())
	b.RecordFailure()
	require.Equal(t, CircuitStateClosed, b.State())

	b.RecordFailure()
	require.Equal(t, CircuitStateOpen, b.State())
	require.ErrorIs(t, b.Allow(), ErrCircuitOpen)

	now = now.Add(6 * time.Second)
	require.Equal(t, CircuitStateHalfOpen, b.State())
	require.NoError(t, b.Allow(), "first probe passes")
	require.ErrorIs(t, b.Allow(), ErrCircuitOpen, "probe limit reached")

	b.RecordSuccess()
	require.Equal(t, CircuitStateClosed, b.State())
	require.Equal(t, []string{"closed->open", "open->half_open", "half_open->closed"}, transitions)
}

func TestCircuitBreaker_FailedProbeReopens(t *testing.T) {
	b := NewCircuitBreaker(1, time.Second, 1)
	now := time.Date(2026, 6, 11, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }

	b.RecordFailure()
	now = now.Add(2 * time.Second)
	require.NoError(t, b.Allow())

	b.RecordFailure()
	require.Equal(t, CircuitStateOpen, b.State())
	require.ErrorIs(t, b.Allow(), ErrCircuitOpen)
}

func TestCircuitBreaker_Execute(t *testing.T) {
	b := NewCircuitBreakerFromConfig(CircuitBreakerConfig{Enabled: true, FailureThreshold: 1, OpenTimeout: time.Minute, HalfOpenMaxReq: 1})
	failure := errors.New("webhook down")

	require.ErrorIs(t, b.Execute(context.Background(), func(context.Context) error { return failure }), failure)
	require.ErrorIs(t, b.Execute(context.Background(), func(context.Context) error { return nil }), ErrCircuitOpen)

	var disabled *CircuitBreaker
	require.NoError(t, disabled.Execute(context.Background(), func(context.Context) error { return nil }))
	require.Nil(t, NewCircuitBreakerFromConfig(CircuitBreakerConfig{}))
}

func TestCircuitBreaker_CancellationIsNotAFailure(t *testing.T) {
	b := NewCircuitBreaker(1, time.Minute, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := b.Execute(ctx, func(ctx context.Context) error { return ctx.Err() })
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, CircuitStateClosed, b.State())
}
