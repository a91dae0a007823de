package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/guttosm/fulfillment-service/internal/domain/model"
)

// orderItemDocument wraps the domain order item with storage metadata.
type orderItemDocument struct {
	model.OrderItem `bson:",inline"`
	UpdatedAt       time.Time `bson:"updated_at"`
}

// OrderItemRepository provides MongoDB persistence for order items.
type OrderItemRepository struct {
	collection *mongo.Collection
}

// NewOrderItemRepository creates a new order item repository.
func NewOrderItemRepository(db *MongoDB) *OrderItemRepository {
	return &OrderItemRepository{
		collection: db.OrderItems,
	}
}

// Get loads an order item by order ID and item index.
// Returns (nil, nil) when the item does not exist.
func (r *OrderItemRepository) Get(ctx context.Context, orderID string, itemIndex int) (*model.OrderItem, error) {
	var doc orderItemDocument
	err := r.collection.FindOne(ctx, bson.M{
		"order_id":   orderID,
		"item_index": itemIndex,
	}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc.OrderItem, nil
}

// Put creates or replaces an order item.
func (r *OrderItemRepository) Put(ctx context.Context, item *model.OrderItem) error {
	doc := orderItemDocument{
		OrderItem: *item,
		UpdatedAt: time.Now(),
	}
	_, err := r.collection.ReplaceOne(
		ctx,
		bson.M{"order_id": item.OrderID, "item_index": item.ItemIndex},
		doc,
		options.Replace().SetUpsert(true),
	)
	return err
}

// Update persists the item's quantities and derived status.
// Returns ErrOrderItemNotFound when the item does not exist.
func (r *OrderItemRepository) Update(ctx context.Context, item *model.OrderItem) error {
	res, err := r.collection.UpdateOne(
		ctx,
		bson.M{"order_id": item.OrderID, "item_index": item.ItemIndex},
		bson.M{"$set": bson.M{
			"purchased_quantity":           item.PurchasedQuantity,
			"reserved_from_stock_quantity": item.ReservedFromStockQuantity,
			"status":                       item.Status,
			"updated_at":                   time.Now(),
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrOrderItemNotFound
	}
	return nil
}
