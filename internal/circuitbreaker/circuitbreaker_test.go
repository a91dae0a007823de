package circuitbreaker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var errStore = errors.New("store unavailable")

func TestCircuitBreaker_ClosedState(t *testing.T) {
	cb := New(DefaultConfig())

	err := cb.Execute(context.Background(), func() error { return nil })

	assert.NoError(t, err)
	assert.Equal(t, StateClosed, cb.State())
	assert.True(t, cb.GetStats().IsHealthy)
}

func TestCircuitBreaker_OpensAfterThreshold(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FailureThreshold = 3
	cb := New(cfg)

	for i := 0; i < 3; i++ {
		err := cb.Execute(context.Background(), func() error { return errStore })
		assert.ErrorIs(t, err, errStore)
	}

	assert.Equal(t, StateOpen, cb.State())
	assert.True(t, cb.IsOpen())

	err := cb.Execute(context.Background(), func() error { return nil })
	assert.ErrorIs(t, err, ErrCircuitOpen)
}

func TestCircuitBreaker_SuccessResetsFailureCount(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FailureThreshold = 3
	cb := New(cfg)

	_ = cb.Execute(context.Background(), func() error { return errStore })
	_ = cb.Execute(context.Background(), func() error { return errStore })
	_ = cb.Execute(context.Background(), func() error { return nil })
	_ = cb.Execute(context.Background(), func() error { return errStore })
	_ = cb.Execute(context.Background(), func() error { return errStore })

	assert.Equal(t, StateClosed, cb.State())
}

func TestCircuitBreaker_HalfOpenRecovery(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FailureThreshold = 1
	cfg.SuccessThreshold = 2
	cfg.Timeout = 10 * time.Millisecond
	cb := New(cfg)

	_ = cb.Execute(context.Background(), func() error { return errStore })
	assert.Equal(t, StateOpen, cb.State())

	time.Sleep(20 * time.Millisecond)

	// First success while half-open
	assert.NoError(t, cb.Execute(context.Background(), func() error { return nil }))
	assert.Equal(t, StateHalfOpen, cb.State())

	// Second success closes the circuit
	assert.NoError(t, cb.Execute(context.Background(), func() error { return nil }))
	assert.Equal(t, StateClosed, cb.State())
}

func TestCircuitBreaker_HalfOpenFailureReopens(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FailureThreshold = 1
	cfg.Timeout = 10 * time.Millisecond
	cb := New(cfg)

	_ = cb.Execute(context.Background(), func() error { return errStore })
	time.Sleep(20 * time.Millisecond)

	err := cb.Execute(context.Background(), func() error { return errStore })

	assert.ErrorIs(t, err, errStore)
	assert.Equal(t, StateOpen, cb.State())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "closed", StateClosed.String())
	assert.Equal(t, "open", StateOpen.String())
	assert.Equal(t, "half-open", StateHalfOpen.String())
	assert.Equal(t, "unknown", State(99).String())
}

func TestCircuitBreaker_GetStats(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FailureThreshold = 5
	cb := New(cfg)

	_ = cb.Execute(context.Background(), func() error { return errStore })
	stats := cb.GetStats()

	assert.Equal(t, "closed", stats.State)
	assert.Equal(t, 1, stats.FailureCount)
	assert.False(t, stats.LastFailure.IsZero())
	assert.True(t, stats.IsHealthy)
}
