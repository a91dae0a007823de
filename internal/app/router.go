// Package app provides router configuration.
package app

import (
	"github.com/guttosm/fulfillment-service/config"
	"github.com/guttosm/fulfillment-service/internal/circuitbreaker"
	"github.com/guttosm/fulfillment-service/internal/http"
	"github.com/guttosm/fulfillment-service/internal/service"
)

// RouterComponents holds router-related components.
type RouterComponents struct {
	Handler       *http.Handler
	HealthHandler *http.HealthHandler
	Config        http.RouterConfig
}

// InitializeRouter initializes HTTP handlers and router configuration.
func InitializeRouter(
	services *ServiceComponents,
	dbComponents *DatabaseComponents,
	cfg config.Config,
) *RouterComponents {
	var loggingService service.LoggingService
	if dbComponents != nil {
		loggingService = dbComponents.LoggingService
	}

	handler := http.NewHandler(services.Reservations, services.Ledger, services.Queries)
	healthHandler := http.NewHealthHandler()

	// Readiness reports the state of each storage circuit breaker.
	if dbComponents != nil {
		for name, cb := range map[string]*circuitbreaker.CircuitBreaker{
			"mongodb_stock_ledger": dbComponents.LedgerCircuitBreaker,
			"mongodb_order_items":  dbComponents.OrdersCircuitBreaker,
			"mongodb_logs":         dbComponents.LogsCircuitBreaker,
		} {
			if cb != nil {
				healthHandler.RegisterCircuitBreaker(name, cb)
			}
		}
	}

	routerCfg := http.RouterConfig{
		RateLimit:         cfg.Server.RateLimit,
		RateWindow:        cfg.Server.RateWindow,
		RequestTimeout:    cfg.Server.RequestTimeout,
		EnableIdempotency: true,
		CORSOrigins:       cfg.Server.CORSOrigins,
		SwaggerUser:       cfg.Server.SwaggerUser,
		SwaggerPass:       cfg.Server.SwaggerPass,
		LoggingService:    loggingService,
	}

	return &RouterComponents{
		Handler:       handler,
		HealthHandler: healthHandler,
		Config:        routerCfg,
	}
}
