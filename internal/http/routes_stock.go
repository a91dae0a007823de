package http

import (
	"github.com/gin-gonic/gin"
)

// StockRoutes handles reservation and stock route registration.
type StockRoutes struct {
	handler *Handler
}

// NewStockRoutes creates a new StockRoutes instance.
func NewStockRoutes(handler *Handler) *StockRoutes {
	return &StockRoutes{handler: handler}
}

// RegisterRoutes registers reservation, stock, and order item routes.
func (r *StockRoutes) RegisterRoutes(rg *gin.RouterGroup, _ *RouterConfig) {
	rg.POST("/reservations", r.handler.ReserveStock)

	stock := rg.Group("/stock")
	stock.POST("/credit", r.handler.CreditStock)
	stock.GET("/:item_code", r.handler.GetAvailability)
	stock.GET("/:item_code/sources", r.handler.GetSources)

	orders := rg.Group("/orders")
	orders.GET("/:order_id/items/:item_index", r.handler.GetOrderItem)
	orders.GET("/:order_id/items/:item_index/suggestion", r.handler.GetSuggestedReservation)
}

// GetHandler returns the underlying handler.
func (r *StockRoutes) GetHandler() *Handler {
	return r.handler
}
