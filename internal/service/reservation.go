package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/guttosm/fulfillment-service/internal/domain/model"
	"github.com/guttosm/fulfillment-service/internal/metrics"
	"github.com/guttosm/fulfillment-service/internal/repository"
)

var (
	// ErrInvalidRequest is returned when a reservation request fails
	// validation. Rejected before any mutation.
	ErrInvalidRequest = errors.New("invalid reservation request")

	// ErrTargetNotFound is returned when the target order item does not
	// exist. The ledger is left exactly as it was before the call.
	ErrTargetNotFound = errors.New("target order item not found")

	// ErrConcurrentConflict is returned when reservation retries were
	// exhausted because the ledger entry kept being modified by another
	// writer.
	ErrConcurrentConflict = errors.New("reservation aborted after concurrent modification conflicts")
)

// DefaultReserveRetries is the default bound on whole-operation retries
// after an optimistic-concurrency conflict.
const DefaultReserveRetries = 3

// ReservationOutcome bundles the ledger result with the recomputed order
// item, so callers render the post-reservation status instead of deriving
// it themselves.
type ReservationOutcome struct {
	Result model.ReservationResult
	Item   model.OrderItem
}

// ReservationService executes reservation requests against the stock ledger.
type ReservationService interface {
	Reserve(ctx context.Context, req model.ReservationRequest) (*ReservationOutcome, error)
}

// Option configures a ReservationEngine.
type Option func(*ReservationEngine)

// WithMaxRetries sets the retry bound for concurrent modification conflicts.
func WithMaxRetries(n int) Option {
	return func(e *ReservationEngine) {
		if n > 0 {
			e.maxRetries = n
		}
	}
}

// ReservationEngine turns a reservation request into a ledger debit plus
// an order-item update, observed as one atomic unit per item code.
//
// The engine shares the StockLedger's keyed mutex and holds the target
// item code's lock across the debit, the order-item update, and the
// status recomputation, so no concurrent reservation or credit against
// the same item code sees an intermediate state. Distinct item codes
// never contend.
type ReservationEngine struct {
	ledger     *StockLedger
	orders     repository.OrderItemRepositoryInterface
	maxRetries int
}

// NewReservationEngine creates a ReservationEngine over the shared ledger
// and the order item repository.
func NewReservationEngine(ledger *StockLedger, orders repository.OrderItemRepositoryInterface, opts ...Option) *ReservationEngine {
	e := &ReservationEngine{
		ledger:     ledger,
		orders:     orders,
		maxRetries: DefaultReserveRetries,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Reserve validates and executes a reservation request.
//
// Partial fulfillment is a success outcome, reported through
// RemainingShortfall. A missing target fails with ErrTargetNotFound and
// leaves the ledger unchanged. A concurrent modification conflict retries
// the whole locked section; it is never partially replayed.
func (e *ReservationEngine) Reserve(ctx context.Context, req model.ReservationRequest) (*ReservationOutcome, error) {
	if req.QuantityRequested <= 0 || req.ItemCode == "" || req.TargetOrderID == "" || req.TargetItemIndex < 0 {
		return nil, ErrInvalidRequest
	}

	var (
		outcome *ReservationOutcome
		err     error
	)
	for attempt := 0; attempt < e.maxRetries; attempt++ {
		outcome, err = e.reserveOnce(ctx, req)
		if !errors.Is(err, repository.ErrVersionConflict) {
			return outcome, err
		}
		log.Warn().
			Str("item_code", req.ItemCode).
			Str("target_order_id", req.TargetOrderID).
			Int("attempt", attempt+1).
			Msg("Reservation hit a version conflict, retrying")
	}

	return nil, ErrConcurrentConflict
}

// reserveOnce performs a single locked debit-and-update cycle.
func (e *ReservationEngine) reserveOnce(ctx context.Context, req model.ReservationRequest) (*ReservationOutcome, error) {
	unlock := e.ledger.locks.Lock(req.ItemCode)
	defer unlock()

	entry, err := e.ledger.loadEntry(ctx, req.ItemCode)
	if err != nil {
		return nil, err
	}

	// Locate the target before touching the ledger: a missing target must
	// leave the pool untouched.
	item, err := e.orders.Get(ctx, req.TargetOrderID, req.TargetItemIndex)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrTargetNotFound
	}

	debited := make([]model.StockUnit, len(entry.Units))
	copy(debited, entry.Units)
	remaining, result := model.DebitUnits(entry.Units, req.QuantityRequested)

	entry.Units = remaining
	if err := e.ledger.repo.SaveEntry(ctx, entry); err != nil {
		return nil, err
	}

	item.ApplyReservation(result.QuantityFulfilled)
	if err := e.orders.Update(ctx, item); err != nil {
		e.rollbackDebit(ctx, entry, debited)
		if errors.Is(err, repository.ErrOrderItemNotFound) {
			return nil, ErrTargetNotFound
		}
		return nil, err
	}

	metrics.SetStockAvailable(req.ItemCode, model.AvailableQuantity(remaining))

	log.Info().
		Str("item_code", req.ItemCode).
		Str("target_order_id", req.TargetOrderID).
		Int("target_item_index", req.TargetItemIndex).
		Int("requested", result.QuantityRequested).
		Int("fulfilled", result.QuantityFulfilled).
		Int("shortfall", result.RemainingShortfall).
		Str("status", string(item.Status)).
		Msg("Reservation executed")

	return &ReservationOutcome{Result: result, Item: *item}, nil
}

// rollbackDebit re-credits the units consumed by a debit whose companion
// order-item update failed, restoring the original FIFO sequence so no
// stock is lost and provenance stays intact. The per-item-code lock is
// still held, so nobody can observe the debited state in between.
func (e *ReservationEngine) rollbackDebit(ctx context.Context, entry *repository.LedgerEntryDocument, original []model.StockUnit) {
	entry.Units = original
	if err := e.ledger.repo.SaveEntry(ctx, entry); err != nil {
		// The lock is held and the entry version was just written by us, so
		// this only fails if the store itself is down.
		log.Error().
			Err(err).
			Str("item_code", entry.ItemCode).
			Msg("Failed to restore ledger entry after aborted reservation")
		return
	}
	metrics.SetStockAvailable(entry.ItemCode, model.AvailableQuantity(original))
}
