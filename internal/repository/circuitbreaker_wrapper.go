// Package repository provides circuit breaker wrappers for MongoDB operations.
package repository

import (
	"context"

	"github.com/guttosm/fulfillment-service/internal/circuitbreaker"
	"github.com/guttosm/fulfillment-service/internal/domain/model"
)

// LedgerRepositoryWithCircuitBreaker wraps LedgerRepository with circuit
// breaker protection. Ledger operations are never silently absorbed: an
// open circuit surfaces as an error so no reservation proceeds against
// unknown state.
type LedgerRepositoryWithCircuitBreaker struct {
	repo           *LedgerRepository
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewLedgerRepositoryWithCircuitBreaker creates a new ledger repository wrapper.
func NewLedgerRepositoryWithCircuitBreaker(repo *LedgerRepository, cb *circuitbreaker.CircuitBreaker) *LedgerRepositoryWithCircuitBreaker {
	return &LedgerRepositoryWithCircuitBreaker{
		repo:           repo,
		circuitBreaker: cb,
	}
}

// GetEntry loads a ledger entry with circuit breaker protection.
func (r *LedgerRepositoryWithCircuitBreaker) GetEntry(ctx context.Context, itemCode string) (*LedgerEntryDocument, error) {
	var result *LedgerEntryDocument
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.GetEntry(ctx, itemCode)
		return cbErr
	})
	return result, err
}

// SaveEntry persists a ledger entry with circuit breaker protection.
// A version conflict is a domain outcome, not a dependency failure, so it
// must not count toward opening the circuit.
func (r *LedgerRepositoryWithCircuitBreaker) SaveEntry(ctx context.Context, entry *LedgerEntryDocument) error {
	var conflict bool
	err := r.circuitBreaker.Execute(ctx, func() error {
		cbErr := r.repo.SaveEntry(ctx, entry)
		if cbErr == ErrVersionConflict {
			conflict = true
			return nil
		}
		return cbErr
	})
	if conflict {
		return ErrVersionConflict
	}
	return err
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *LedgerRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}

// OrderItemRepositoryWithCircuitBreaker wraps OrderItemRepository with
// circuit breaker protection.
type OrderItemRepositoryWithCircuitBreaker struct {
	repo           *OrderItemRepository
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewOrderItemRepositoryWithCircuitBreaker creates a new order item repository wrapper.
func NewOrderItemRepositoryWithCircuitBreaker(repo *OrderItemRepository, cb *circuitbreaker.CircuitBreaker) *OrderItemRepositoryWithCircuitBreaker {
	return &OrderItemRepositoryWithCircuitBreaker{
		repo:           repo,
		circuitBreaker: cb,
	}
}

// Get loads an order item with circuit breaker protection.
func (r *OrderItemRepositoryWithCircuitBreaker) Get(ctx context.Context, orderID string, itemIndex int) (*model.OrderItem, error) {
	var result *model.OrderItem
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.Get(ctx, orderID, itemIndex)
		return cbErr
	})
	return result, err
}

// Put creates or replaces an order item with circuit breaker protection.
func (r *OrderItemRepositoryWithCircuitBreaker) Put(ctx context.Context, item *model.OrderItem) error {
	return r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Put(ctx, item)
	})
}

// Update persists an order item with circuit breaker protection.
// A missing item is a domain outcome and must not open the circuit.
func (r *OrderItemRepositoryWithCircuitBreaker) Update(ctx context.Context, item *model.OrderItem) error {
	var notFound bool
	err := r.circuitBreaker.Execute(ctx, func() error {
		cbErr := r.repo.Update(ctx, item)
		if cbErr == ErrOrderItemNotFound {
			notFound = true
			return nil
		}
		return cbErr
	})
	if notFound {
		return ErrOrderItemNotFound
	}
	return err
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *OrderItemRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}

// LogsRepositoryWithCircuitBreaker wraps LogsRepository with circuit
// breaker protection. Logging is non-critical: when the circuit is open,
// writes silently fail instead of blocking request handling.
type LogsRepositoryWithCircuitBreaker struct {
	repo           *LogsRepository
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewLogsRepositoryWithCircuitBreaker creates a new logs repository wrapper.
func NewLogsRepositoryWithCircuitBreaker(repo *LogsRepository, cb *circuitbreaker.CircuitBreaker) *LogsRepositoryWithCircuitBreaker {
	return &LogsRepositoryWithCircuitBreaker{
		repo:           repo,
		circuitBreaker: cb,
	}
}

// Create stores a single log entry with circuit breaker protection.
func (r *LogsRepositoryWithCircuitBreaker) Create(ctx context.Context, entry *LogEntryDocument) error {
	err := r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Create(ctx, entry)
	})
	if err == circuitbreaker.ErrCircuitOpen {
		return nil
	}
	return err
}

// CreateMany stores multiple log entries with circuit breaker protection.
func (r *LogsRepositoryWithCircuitBreaker) CreateMany(ctx context.Context, entries []*LogEntryDocument) error {
	err := r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.CreateMany(ctx, entries)
	})
	if err == circuitbreaker.ErrCircuitOpen {
		return nil
	}
	return err
}

// Query retrieves log entries with circuit breaker protection.
func (r *LogsRepositoryWithCircuitBreaker) Query(ctx context.Context, opts LogQueryOptions) ([]*LogEntryDocument, error) {
	var result []*LogEntryDocument
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.Query(ctx, opts)
		return cbErr
	})
	return result, err
}

// Count returns the count of log entries with circuit breaker protection.
func (r *LogsRepositoryWithCircuitBreaker) Count(ctx context.Context, opts LogQueryOptions) (int64, error) {
	var result int64
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.Count(ctx, opts)
		return cbErr
	})
	return result, err
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *LogsRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}
