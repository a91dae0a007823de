package service

import (
	"context"

	"github.com/guttosm/fulfillment-service/internal/domain/model"
	"github.com/guttosm/fulfillment-service/internal/repository"
)

// Suggestion is a fresh snapshot answering "how much should this order
// item reserve from surplus right now".
type Suggestion struct {
	Item              model.OrderItem
	Shortfall         int
	Available         int
	SuggestedQuantity int
}

// FulfillmentQueryService composes read-only views for presentation. Every
// call produces a fresh snapshot; nothing is cached between calls.
type FulfillmentQueryService interface {
	// Shortfall returns the quantity an item still needs, never negative.
	Shortfall(item model.OrderItem) int

	// SuggestedReservation returns min(shortfall, available) for the
	// order item, along with both inputs.
	SuggestedReservation(ctx context.Context, orderID string, itemIndex int) (*Suggestion, error)

	// OrderItem loads a single order item. Returns ErrTargetNotFound when
	// it does not exist.
	OrderItem(ctx context.Context, orderID string, itemIndex int) (*model.OrderItem, error)
}

// FulfillmentQuery implements FulfillmentQueryService over the ledger and
// the order item repository.
type FulfillmentQuery struct {
	ledger LedgerService
	orders repository.OrderItemRepositoryInterface
}

// NewFulfillmentQuery creates a new query service.
func NewFulfillmentQuery(ledger LedgerService, orders repository.OrderItemRepositoryInterface) *FulfillmentQuery {
	return &FulfillmentQuery{
		ledger: ledger,
		orders: orders,
	}
}

// Shortfall returns max(required - purchased - reserved, 0).
func (q *FulfillmentQuery) Shortfall(item model.OrderItem) int {
	return item.Shortfall()
}

// OrderItem loads the order item, mapping absence to ErrTargetNotFound.
func (q *FulfillmentQuery) OrderItem(ctx context.Context, orderID string, itemIndex int) (*model.OrderItem, error) {
	item, err := q.orders.Get(ctx, orderID, itemIndex)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrTargetNotFound
	}
	return item, nil
}

// SuggestedReservation answers the presentation boundary's pre-fill query:
// the lesser of the item's shortfall and the surplus available for its
// item code.
func (q *FulfillmentQuery) SuggestedReservation(ctx context.Context, orderID string, itemIndex int) (*Suggestion, error) {
	item, err := q.OrderItem(ctx, orderID, itemIndex)
	if err != nil {
		return nil, err
	}

	available, err := q.ledger.Available(ctx, item.ItemCode)
	if err != nil {
		return nil, err
	}

	shortfall := item.Shortfall()
	suggested := shortfall
	if available < suggested {
		suggested = available
	}

	return &Suggestion{
		Item:              *item,
		Shortfall:         shortfall,
		Available:         available,
		SuggestedQuantity: suggested,
	}, nil
}
