// Package repository provides the MongoDB persistence layer for the
// stock ledger, order items and the log trail.
package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoConfig tunes the connection pool and driver timeouts.
type MongoConfig struct {
	MaxPoolSize            uint64
	MinPoolSize            uint64
	MaxConnIdleTime        time.Duration
	ConnectTimeout         time.Duration
	ServerSelectionTimeout time.Duration
	SocketTimeout          time.Duration

	// EnableCompression turns on wire protocol compression.
	EnableCompression bool
}

// DefaultMongoConfig returns pool settings suitable for production.
func DefaultMongoConfig() MongoConfig {
	return MongoConfig{
		MaxPoolSize:            50,
		MinPoolSize:            10,
		MaxConnIdleTime:        10 * time.Minute,
		ConnectTimeout:         10 * time.Second,
		ServerSelectionTimeout: 5 * time.Second,
		SocketTimeout:          30 * time.Second,
		EnableCompression:      true,
	}
}

// MongoDB bundles the client with the collections the repositories use.
type MongoDB struct {
	Client      *mongo.Client
	Database    *mongo.Database
	StockLedger *mongo.Collection
	OrderItems  *mongo.Collection
	Logs        *mongo.Collection
}

// NewMongoDB connects with the default pool configuration.
func NewMongoDB(uri, databaseName string) (*MongoDB, error) {
	return NewMongoDBWithConfig(uri, databaseName, DefaultMongoConfig())
}

// NewMongoDBWithConfig connects, pings, and ensures the collection indexes.
func NewMongoDBWithConfig(uri, databaseName string, cfg MongoConfig) (*MongoDB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(cfg.MaxPoolSize).
		SetMinPoolSize(cfg.MinPoolSize).
		SetMaxConnIdleTime(cfg.MaxConnIdleTime).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetServerSelectionTimeout(cfg.ServerSelectionTimeout).
		SetSocketTimeout(cfg.SocketTimeout).
		SetRetryWrites(true).
		SetRetryReads(true)
	if cfg.EnableCompression {
		opts.SetCompressors([]string{"zstd", "snappy", "zlib"})
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	db := client.Database(databaseName)
	m := &MongoDB{
		Client:      client,
		Database:    db,
		StockLedger: db.Collection("stock_ledger"),
		OrderItems:  db.Collection("order_items"),
		Logs:        db.Collection("logs"),
	}
	if err := m.ensureIndexes(ctx); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *MongoDB) ensureIndexes(ctx context.Context) error {
	// One order-item document per (order_id, item_index) pair.
	_, err := m.OrderItems.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "order_id", Value: 1},
			{Key: "item_index", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	// Secondary lookups; failures here are not fatal.
	_, _ = m.OrderItems.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "item_code", Value: 1}},
	})
	_, _ = m.Logs.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "request_id", Value: 1}},
	})
	return nil
}

// SetLogsTTL replaces the TTL index on the logs collection so entries
// expire after ttlDays.
func (m *MongoDB) SetLogsTTL(ctx context.Context, ttlDays int) error {
	// The old index may not exist, so the drop error is ignored.
	_, _ = m.Logs.Indexes().DropOne(ctx, "timestamp_1")

	_, err := m.Logs.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "timestamp", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(int32(ttlDays * 24 * 60 * 60)),
	})
	return err
}

// Close disconnects the underlying client.
func (m *MongoDB) Close(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}

// HealthCheck pings the server with a short deadline.
func (m *MongoDB) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return m.Client.Ping(ctx, nil)
}