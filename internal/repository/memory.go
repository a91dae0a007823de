package repository

import (
	"context"
	"sync"
	"time"

	"github.com/guttosm/fulfillment-service/internal/domain/model"
)

// InMemoryLedgerRepository is a mutex-guarded in-memory implementation of
// LedgerRepositoryInterface. It backs the service when MongoDB is disabled
// and is the storage used by unit tests. Version checks behave exactly as
// the MongoDB implementation so conflict handling is exercised either way.
type InMemoryLedgerRepository struct {
	mu      sync.RWMutex
	entries map[string]*LedgerEntryDocument
}

// NewInMemoryLedgerRepository creates an empty in-memory ledger repository.
func NewInMemoryLedgerRepository() *InMemoryLedgerRepository {
	return &InMemoryLedgerRepository{
		entries: make(map[string]*LedgerEntryDocument),
	}
}

// GetEntry returns a copy of the stored entry, or (nil, nil) when absent.
func (r *InMemoryLedgerRepository) GetEntry(_ context.Context, itemCode string) (*LedgerEntryDocument, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.entries[itemCode]
	if !ok {
		return nil, nil
	}
	return copyEntry(entry), nil
}

// SaveEntry stores a copy of the entry under the same optimistic
// concurrency rules as the MongoDB repository.
func (r *InMemoryLedgerRepository) SaveEntry(_ context.Context, entry *LedgerEntryDocument) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, exists := r.entries[entry.ItemCode]

	if len(entry.Units) == 0 {
		if entry.Version == 0 {
			return nil
		}
		if !exists || stored.Version != entry.Version {
			return ErrVersionConflict
		}
		delete(r.entries, entry.ItemCode)
		// The entry is gone; a later save of this entry must insert.
		entry.Version = 0
		return nil
	}

	if entry.Version == 0 {
		if exists {
			return ErrVersionConflict
		}
	} else if !exists || stored.Version != entry.Version {
		return ErrVersionConflict
	}

	next := copyEntry(entry)
	next.Version = entry.Version + 1
	next.UpdatedAt = time.Now()
	r.entries[entry.ItemCode] = next
	entry.Version = next.Version
	return nil
}

func copyEntry(entry *LedgerEntryDocument) *LedgerEntryDocument {
	units := make([]model.StockUnit, len(entry.Units))
	copy(units, entry.Units)
	return &LedgerEntryDocument{
		ItemCode:  entry.ItemCode,
		Units:     units,
		Version:   entry.Version,
		UpdatedAt: entry.UpdatedAt,
	}
}

// InMemoryOrderItemRepository is a mutex-guarded in-memory implementation
// of OrderItemRepositoryInterface.
type InMemoryOrderItemRepository struct {
	mu    sync.RWMutex
	items map[orderItemKey]*model.OrderItem
}

type orderItemKey struct {
	orderID   string
	itemIndex int
}

// NewInMemoryOrderItemRepository creates an empty in-memory order item repository.
func NewInMemoryOrderItemRepository() *InMemoryOrderItemRepository {
	return &InMemoryOrderItemRepository{
		items: make(map[orderItemKey]*model.OrderItem),
	}
}

// Get returns a copy of the stored item, or (nil, nil) when absent.
func (r *InMemoryOrderItemRepository) Get(_ context.Context, orderID string, itemIndex int) (*model.OrderItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[orderItemKey{orderID, itemIndex}]
	if !ok {
		return nil, nil
	}
	cp := *item
	return &cp, nil
}

// Put creates or replaces an order item.
func (r *InMemoryOrderItemRepository) Put(_ context.Context, item *model.OrderItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *item
	r.items[orderItemKey{item.OrderID, item.ItemIndex}] = &cp
	return nil
}

// Update persists quantities and status for an existing item.
func (r *InMemoryOrderItemRepository) Update(_ context.Context, item *model.OrderItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := orderItemKey{item.OrderID, item.ItemIndex}
	stored, ok := r.items[key]
	if !ok {
		return ErrOrderItemNotFound
	}
	stored.PurchasedQuantity = item.PurchasedQuantity
	stored.ReservedFromStockQuantity = item.ReservedFromStockQuantity
	stored.Status = item.Status
	return nil
}
