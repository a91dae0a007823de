// Package circuitbreaker shields the MongoDB-backed repositories from
// cascading failures. Ledger debits and order-item updates keep failing
// fast while the store is down instead of piling up blocked reservations.
package circuitbreaker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// ErrCircuitOpen is returned without invoking the protected call while the
// breaker is open.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// State is the breaker's position in the closed/open/half-open cycle.
type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// Config tunes when a breaker trips and how it probes for recovery.
type Config struct {
	// FailureThreshold is how many consecutive failures trip the breaker.
	FailureThreshold int
	// SuccessThreshold is how many consecutive probe successes close it again.
	SuccessThreshold int
	// Timeout is how long the breaker stays open before letting probes through.
	Timeout time.Duration
	// Name identifies the breaker in logs and readiness output.
	Name string
}

// DefaultConfig matches the settings used for the repository breakers.
func DefaultConfig() Config {
	return Config{
		FailureThreshold: 5,
		SuccessThreshold: 2,
		Timeout:          30 * time.Second,
		Name:             "circuit-breaker",
	}
}

// CircuitBreaker tracks consecutive outcomes of a protected dependency and
// rejects calls while the dependency is considered down.
type CircuitBreaker struct {
	mu       sync.RWMutex
	cfg      Config
	state    State
	failures int
	probes   int
	openedAt time.Time
}

// New creates a closed breaker.
func New(cfg Config) *CircuitBreaker {
	return &CircuitBreaker{cfg: cfg, state: StateClosed}
}

// Execute runs fn under breaker protection. While open it returns
// ErrCircuitOpen immediately; once the open timeout elapses a single caller
// is let through as a recovery probe. A cancelled context counts as neither
// success nor failure.
func (cb *CircuitBreaker) Execute(ctx context.Context, fn func() error) error {
	if err := cb.admit(); err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	err := fn()
	cb.record(err)
	return err
}

// admit decides whether the next call may proceed, moving an expired open
// breaker to half-open on the way.
func (cb *CircuitBreaker) admit() error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state != StateOpen {
		return nil
	}
	if time.Since(cb.openedAt) < cb.cfg.Timeout {
		return ErrCircuitOpen
	}

	cb.state = StateHalfOpen
	cb.probes = 0
	log.Info().
		Str("circuit_breaker", cb.cfg.Name).
		Msg("Circuit breaker probing for recovery")
	return nil
}

// record applies the call outcome to the breaker state.
func (cb *CircuitBreaker) record(err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if err != nil {
		cb.failures++
		cb.openedAt = time.Now()

		tripped := cb.state == StateHalfOpen ||
			(cb.state == StateClosed && cb.failures >= cb.cfg.FailureThreshold)
		if tripped {
			if cb.state == StateHalfOpen {
				// A failed probe restarts the full open window.
				cb.failures = cb.cfg.FailureThreshold
			}
			cb.state = StateOpen
			log.Warn().
				Str("circuit_breaker", cb.cfg.Name).
				Int("failure_count", cb.failures).
				Msg("Circuit breaker opened")
		}
		return
	}

	cb.failures = 0
	if cb.state == StateHalfOpen {
		cb.probes++
		if cb.probes >= cb.cfg.SuccessThreshold {
			cb.state = StateClosed
			cb.probes = 0
			log.Info().
				Str("circuit_breaker", cb.cfg.Name).
				Msg("Circuit breaker closed after recovery")
		}
	}
}

// State returns the current breaker state.
func (cb *CircuitBreaker) State() State {
	cb.mu.RLock()
	defer cb.mu.RUnlock()
	return cb.state
}

// IsOpen reports whether calls are currently rejected.
func (cb *CircuitBreaker) IsOpen() bool {
	return cb.State() == StateOpen
}

// Stats is a point-in-time snapshot for readiness reporting.
type Stats struct {
	State        string
	FailureCount int
	SuccessCount int
	LastFailure  time.Time
	IsHealthy    bool
}

// GetStats snapshots the breaker for the readiness endpoint.
func (cb *CircuitBreaker) GetStats() Stats {
	cb.mu.RLock()
	defer cb.mu.RUnlock()

	return Stats{
		State:        cb.state.String(),
		FailureCount: cb.failures,
		SuccessCount: cb.probes,
		LastFailure:  cb.openedAt,
		IsHealthy:    cb.state == StateClosed,
	}
}
