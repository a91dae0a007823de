// Package repository provides interfaces for repository operations.
package repository

import (
	"context"
	"errors"

	"github.com/guttosm/fulfillment-service/internal/domain/model"
)

var (
	// ErrVersionConflict is returned when a ledger entry was modified
	// concurrently between load and save. Callers retry the whole
	// operation; partial replays are never safe.
	ErrVersionConflict = errors.New("ledger entry version conflict")

	// ErrOrderItemNotFound is returned when updating an order item that
	// does not exist.
	ErrOrderItemNotFound = errors.New("order item not found")
)

// LedgerRepositoryInterface defines persistence for per-item-code ledger
// entries. Each call has single-document semantics: a save either applies
// fully or not at all.
type LedgerRepositoryInterface interface {
	// GetEntry loads the ledger entry for an item code.
	// Returns (nil, nil) when the item code has no surplus.
	GetEntry(ctx context.Context, itemCode string) (*LedgerEntryDocument, error)

	// SaveEntry persists the entry, enforcing optimistic concurrency on
	// Version. Saving an entry with no units removes it. Returns
	// ErrVersionConflict when the stored version no longer matches.
	SaveEntry(ctx context.Context, entry *LedgerEntryDocument) error
}

// OrderItemRepositoryInterface defines persistence for order items.
type OrderItemRepositoryInterface interface {
	// Get loads an order item by order ID and item index.
	// Returns (nil, nil) when the item does not exist.
	Get(ctx context.Context, orderID string, itemIndex int) (*model.OrderItem, error)

	// Put creates or replaces an order item.
	Put(ctx context.Context, item *model.OrderItem) error

	// Update persists the item's quantities and status. Returns
	// ErrOrderItemNotFound when the item does not exist.
	Update(ctx context.Context, item *model.OrderItem) error
}

// LogsRepositoryInterface defines the interface for logs repository operations.
type LogsRepositoryInterface interface {
	Create(ctx context.Context, entry *LogEntryDocument) error
	CreateMany(ctx context.Context, entries []*LogEntryDocument) error
	Query(ctx context.Context, opts LogQueryOptions) ([]*LogEntryDocument, error)
	Count(ctx context.Context, opts LogQueryOptions) (int64, error)
}
