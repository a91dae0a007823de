package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/guttosm/fulfillment-service/internal/domain/model"
)

// LedgerEntryDocument is the stored ledger entry for one item code.
// Units are kept in credit order; consumption is always oldest-first.
// Version increments on every save and backs the optimistic concurrency
// check, so a stale writer gets ErrVersionConflict instead of silently
// overwriting another instance's debit.
type LedgerEntryDocument struct {
	ItemCode  string            `bson:"_id" json:"item_code"`
	Units     []model.StockUnit `bson:"units" json:"units"`
	Version   int64             `bson:"version" json:"version"`
	UpdatedAt time.Time         `bson:"updated_at" json:"updated_at"`
}

// LedgerRepository provides MongoDB persistence for stock ledger entries.
type LedgerRepository struct {
	collection *mongo.Collection
}

// NewLedgerRepository creates a new stock ledger repository.
func NewLedgerRepository(db *MongoDB) *LedgerRepository {
	return &LedgerRepository{
		collection: db.StockLedger,
	}
}

// GetEntry loads the ledger entry for an item code.
// Returns (nil, nil) when the item code has no surplus on record.
func (r *LedgerRepository) GetEntry(ctx context.Context, itemCode string) (*LedgerEntryDocument, error) {
	var entry LedgerEntryDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": itemCode}).Decode(&entry)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// SaveEntry persists the entry under optimistic concurrency.
//
// The entry's Version must be the version that was loaded (zero for a new
// entry). An entry left with no units is deleted rather than stored, so
// zero-quantity state never persists.
func (r *LedgerRepository) SaveEntry(ctx context.Context, entry *LedgerEntryDocument) error {
	if len(entry.Units) == 0 {
		return r.deleteEntry(ctx, entry)
	}

	next := LedgerEntryDocument{
		ItemCode:  entry.ItemCode,
		Units:     entry.Units,
		Version:   entry.Version + 1,
		UpdatedAt: time.Now(),
	}

	if entry.Version == 0 {
		// New entry: insert fails on duplicate key if someone else
		// created it first, which is a concurrency conflict.
		_, err := r.collection.InsertOne(ctx, next)
		if mongo.IsDuplicateKeyError(err) {
			return ErrVersionConflict
		}
		if err == nil {
			entry.Version = next.Version
		}
		return err
	}

	res, err := r.collection.ReplaceOne(
		ctx,
		bson.M{"_id": entry.ItemCode, "version": entry.Version},
		next,
		options.Replace(),
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrVersionConflict
	}
	entry.Version = next.Version
	return nil
}

// deleteEntry removes an exhausted entry, still honoring the version check.
func (r *LedgerRepository) deleteEntry(ctx context.Context, entry *LedgerEntryDocument) error {
	if entry.Version == 0 {
		// Never persisted; nothing to remove.
		return nil
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": entry.ItemCode, "version": entry.Version})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrVersionConflict
	}
	// The document is gone; a later save of this entry must insert.
	entry.Version = 0
	return nil
}
