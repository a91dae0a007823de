// Package app provides service initialization.
package app

import (
	"github.com/guttosm/fulfillment-service/config"
	"github.com/guttosm/fulfillment-service/internal/lock"
	"github.com/guttosm/fulfillment-service/internal/repository"
	"github.com/guttosm/fulfillment-service/internal/service"
)

// ServiceComponents holds business service components.
type ServiceComponents struct {
	Ledger       *service.StockLedger
	Reservations service.ReservationService
	Queries      service.FulfillmentQueryService
}

// InitializeServices wires the stock ledger, reservation engine, and
// query service over the given repositories. When dbComponents is nil the
// services run on in-memory repositories.
func InitializeServices(cfg config.ReservationConfig, dbComponents *DatabaseComponents) *ServiceComponents {
	var ledgerRepo repository.LedgerRepositoryInterface
	var orderItemRepo repository.OrderItemRepositoryInterface
	if dbComponents != nil {
		ledgerRepo = dbComponents.LedgerRepo
		orderItemRepo = dbComponents.OrderItemRepo
	} else {
		ledgerRepo = repository.NewInMemoryLedgerRepository()
		orderItemRepo = repository.NewInMemoryOrderItemRepository()
	}

	// One lock registry shared by credits and reservations, so both
	// serialize on the same per-item-code keys.
	locks := lock.NewKeyedMutex()

	ledger := service.NewStockLedger(ledgerRepo, locks)

	var opts []service.Option
	if cfg.MaxRetries > 0 {
		opts = append(opts, service.WithMaxRetries(cfg.MaxRetries))
	}
	reservations := service.NewReservationEngine(ledger, orderItemRepo, opts...)
	queries := service.NewFulfillmentQuery(ledger, orderItemRepo)

	return &ServiceComponents{
		Ledger:       ledger,
		Reservations: reservations,
		Queries:      queries,
	}
}
