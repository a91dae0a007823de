// Package app provides database initialization and setup.
package app

import (
	"context"

	"github.com/guttosm/fulfillment-service/config"
	"github.com/guttosm/fulfillment-service/internal/circuitbreaker"
	"github.com/guttosm/fulfillment-service/internal/repository"
	"github.com/guttosm/fulfillment-service/internal/service"
	"github.com/rs/zerolog/log"
)

// DatabaseComponents holds database-related components.
type DatabaseComponents struct {
	LedgerRepo           repository.LedgerRepositoryInterface
	OrderItemRepo        repository.OrderItemRepositoryInterface
	LoggingService       service.LoggingService
	LedgerCircuitBreaker *circuitbreaker.CircuitBreaker
	OrdersCircuitBreaker *circuitbreaker.CircuitBreaker
	LogsCircuitBreaker   *circuitbreaker.CircuitBreaker
	DB                   *repository.MongoDB
}

// InitializeDatabase initializes the MongoDB connection and creates the
// ledger, order item, and logs repositories behind circuit breakers.
// Returns nil if the database is disabled or the connection fails; callers
// fall back to in-memory repositories in that case.
func InitializeDatabase(cfg config.DatabaseConfig) *DatabaseComponents {
	if !cfg.Enabled {
		return nil
	}

	db, err := repository.NewMongoDB(cfg.URI, cfg.DatabaseName)
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to MongoDB - continuing with in-memory storage")
		return nil
	}

	log.Info().Msg("Connected to MongoDB")

	ttlDays := int(cfg.LogsTTL.Hours() / 24)
	if err := db.SetLogsTTL(context.Background(), ttlDays); err != nil {
		log.Warn().Err(err).Msg("Failed to set logs TTL index (may already exist)")
	}

	// One breaker per collection, so a flapping logs collection does not
	// take reservations down with it.
	breaker := func(name string) *circuitbreaker.CircuitBreaker {
		return circuitbreaker.New(circuitbreaker.Config{
			FailureThreshold: cfg.CircuitBreakerFailureThreshold,
			SuccessThreshold: cfg.CircuitBreakerSuccessThreshold,
			Timeout:          cfg.CircuitBreakerTimeout,
			Name:             name,
		})
	}
	ledgerCB := breaker("mongodb-stock-ledger")
	ordersCB := breaker("mongodb-order-items")
	logsCB := breaker("mongodb-logs")

	ledgerRepo := repository.NewLedgerRepositoryWithCircuitBreaker(repository.NewLedgerRepository(db), ledgerCB)
	orderItemRepo := repository.NewOrderItemRepositoryWithCircuitBreaker(repository.NewOrderItemRepository(db), ordersCB)
	logsRepo := repository.NewLogsRepositoryWithCircuitBreaker(repository.NewLogsRepository(db), logsCB)
	loggingService := service.NewLoggingService(logsRepo)

	return &DatabaseComponents{
		LedgerRepo:           ledgerRepo,
		OrderItemRepo:        orderItemRepo,
		LoggingService:       loggingService,
		LedgerCircuitBreaker: ledgerCB,
		OrdersCircuitBreaker: ordersCB,
		LogsCircuitBreaker:   logsCB,
		DB:                   db,
	}
}
