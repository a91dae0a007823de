// Package service implements the order-item fulfillment engine: the stock
// ledger, the reservation engine, and the read-only query surface.
package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/guttosm/fulfillment-service/internal/domain/model"
	"github.com/guttosm/fulfillment-service/internal/lock"
	"github.com/guttosm/fulfillment-service/internal/metrics"
	"github.com/guttosm/fulfillment-service/internal/repository"
)

var (
	// ErrInvalidQuantity is returned when a credited or debited quantity
	// is not a positive integer. Rejected before any mutation.
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")

	// ErrInvalidItemCode is returned when an item code is empty.
	ErrInvalidItemCode = errors.New("item code must be a non-empty string")
)

// creditRetries bounds optimistic-concurrency retries for a single credit.
const creditRetries = 3

// LedgerService defines ledger operations for a per-item-code pool of
// reusable surplus stock.
type LedgerService interface {
	// Available returns the total live surplus for an item code.
	Available(ctx context.Context, itemCode string) (int, error)

	// Sources returns the per-source breakdown of live surplus, oldest first.
	Sources(ctx context.Context, itemCode string) ([]model.ReservationSource, error)

	// Credit appends surplus units produced by sourceOrderID.
	Credit(ctx context.Context, itemCode string, quantity int, sourceOrderID string) error

	// Debit consumes up to quantity units oldest-first. A shortfall is a
	// valid outcome, reported in the result rather than as an error.
	Debit(ctx context.Context, itemCode string, quantity int) (model.ReservationResult, error)
}

// StockLedger is the authoritative record of surplus units per item code.
// All mutation of one item code's entry is serialized through a keyed
// mutex shared with the ReservationEngine, so a debit and the order-item
// update it belongs to are observed as a single atomic unit.
type StockLedger struct {
	repo  repository.LedgerRepositoryInterface
	locks *lock.KeyedMutex
	clock Clock
}

// NewStockLedger creates a StockLedger over the given repository. The
// KeyedMutex must be the same instance handed to the ReservationEngine.
func NewStockLedger(repo repository.LedgerRepositoryInterface, locks *lock.KeyedMutex) *StockLedger {
	return &StockLedger{
		repo:  repo,
		locks: locks,
		clock: systemClock{},
	}
}

// Available returns the total live surplus for an item code.
func (l *StockLedger) Available(ctx context.Context, itemCode string) (int, error) {
	entry, err := l.loadEntry(ctx, itemCode)
	if err != nil {
		return 0, err
	}
	return model.AvailableQuantity(entry.Units), nil
}

// Sources returns the provenance breakdown of live surplus, oldest first.
func (l *StockLedger) Sources(ctx context.Context, itemCode string) ([]model.ReservationSource, error) {
	entry, err := l.loadEntry(ctx, itemCode)
	if err != nil {
		return nil, err
	}
	return model.SourceBreakdown(entry.Units), nil
}

// Credit appends a new surplus unit for the item code. Fails with
// ErrInvalidQuantity before any mutation if quantity is not positive.
func (l *StockLedger) Credit(ctx context.Context, itemCode string, quantity int, sourceOrderID string) error {
	if itemCode == "" {
		return ErrInvalidItemCode
	}
	if quantity <= 0 {
		return ErrInvalidQuantity
	}

	unlock := l.locks.Lock(itemCode)
	defer unlock()

	var err error
	for attempt := 0; attempt < creditRetries; attempt++ {
		err = l.creditLocked(ctx, itemCode, quantity, sourceOrderID)
		if !errors.Is(err, repository.ErrVersionConflict) {
			return err
		}
		log.Warn().
			Str("item_code", itemCode).
			Int("attempt", attempt+1).
			Msg("Ledger credit hit a version conflict, retrying")
	}
	return err
}

// Debit consumes up to quantity units oldest-first. Fails with
// ErrInvalidQuantity before any mutation if quantity is not positive.
func (l *StockLedger) Debit(ctx context.Context, itemCode string, quantity int) (model.ReservationResult, error) {
	if itemCode == "" {
		return model.EmptyReservation(quantity), ErrInvalidItemCode
	}
	if quantity <= 0 {
		return model.EmptyReservation(quantity), ErrInvalidQuantity
	}

	unlock := l.locks.Lock(itemCode)
	defer unlock()

	entry, err := l.loadEntry(ctx, itemCode)
	if err != nil {
		return model.EmptyReservation(quantity), err
	}

	remaining, result := model.DebitUnits(entry.Units, quantity)
	entry.Units = remaining
	if err := l.repo.SaveEntry(ctx, entry); err != nil {
		return model.EmptyReservation(quantity), err
	}

	metrics.SetStockAvailable(itemCode, model.AvailableQuantity(remaining))
	return result, nil
}

// creditLocked performs one load-append-save cycle. The per-item-code
// lock must be held by the caller.
func (l *StockLedger) creditLocked(ctx context.Context, itemCode string, quantity int, sourceOrderID string) error {
	entry, err := l.loadEntry(ctx, itemCode)
	if err != nil {
		return err
	}

	entry.Units = model.CreditUnits(entry.Units, model.StockUnit{
		ItemCode:      itemCode,
		Quantity:      quantity,
		SourceOrderID: sourceOrderID,
		CreatedAt:     l.clock.Now(),
	})

	if err := l.repo.SaveEntry(ctx, entry); err != nil {
		return err
	}

	metrics.SetStockAvailable(itemCode, model.AvailableQuantity(entry.Units))
	return nil
}

// loadEntry fetches the entry for an item code, normalizing a missing
// document to an empty, version-zero entry.
func (l *StockLedger) loadEntry(ctx context.Context, itemCode string) (*repository.LedgerEntryDocument, error) {
	entry, err := l.repo.GetEntry(ctx, itemCode)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		entry = &repository.LedgerEntryDocument{
			ItemCode: itemCode,
			Units:    []model.StockUnit{},
		}
	}
	return entry, nil
}
