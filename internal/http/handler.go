package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/fulfillment-service/internal/domain/dto"
	"github.com/guttosm/fulfillment-service/internal/i18n"
	"github.com/guttosm/fulfillment-service/internal/metrics"
	"github.com/guttosm/fulfillment-service/internal/middleware"
	"github.com/guttosm/fulfillment-service/internal/service"
)

// Handler provides HTTP handlers for stock reservation and query routes.
type Handler struct {
	reservations service.ReservationService
	ledger       service.LedgerService
	queries      service.FulfillmentQueryService
}

// NewHandler creates a new Handler instance.
func NewHandler(reservations service.ReservationService, ledger service.LedgerService, queries service.FulfillmentQueryService) *Handler {
	return &Handler{
		reservations: reservations,
		ledger:       ledger,
		queries:      queries,
	}
}

// ReserveStock handles POST /api/reservations requests.
//
// @Summary      Reserve surplus stock for an order item
// @Description  Debits surplus stock for the requested item code in FIFO order and applies the fulfilled quantity to the target order item. Partial fulfillment is a success: the response reports the shortfall and the sources the stock was taken from. Supports idempotency via Idempotency-Key header.
// @Tags         Reservations
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Idempotency key for request deduplication"
// @Param        request body dto.ReserveStockRequest true "Reservation request"
// @Success      200 {object} dto.SuccessResponse "Reservation outcome (full or partial)"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      404 {object} dto.ErrorResponse "Not found - target order item does not exist"
// @Failure      409 {object} dto.ErrorResponse "Conflict - concurrent modification retries exhausted"
// @Failure      429 {object} dto.ErrorResponse "Too many requests - rate limit exceeded"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/reservations [post]
func (h *Handler) ReserveStock(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequestAndValidate[dto.ReserveStockRequest](c)
	if err != nil {
		var validationErr *dto.ValidationError
		if errors.As(err, &validationErr) {
			metrics.RecordReservation(0, "invalid_request", 0)
			builder.Error(http.StatusBadRequest, i18n.ErrKeyValidationQuantity, err)
		} else {
			builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		}
		return
	}

	// Audit log (async)
	if loggingService, exists := c.Get("logging_service"); exists {
		if ls, ok := loggingService.(service.LoggingService); ok {
			middleware.AuditLog(ls, c, "reserve_stock", "Stock reservation requested", map[string]interface{}{
				"target_order_id":    req.TargetOrderID,
				"target_item_index":  req.TargetItemIndex,
				"item_code":          req.ItemCode,
				"quantity_requested": req.QuantityRequested,
			})
		}
	}

	start := time.Now()
	outcome, err := h.reservations.Reserve(c.Request.Context(), req.ToModel())
	duration := time.Since(start)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRequest):
			metrics.RecordReservation(duration, "invalid_request", 0)
			builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequest, err)
		case errors.Is(err, service.ErrTargetNotFound):
			metrics.RecordReservation(duration, "target_not_found", 0)
			builder.Error(http.StatusNotFound, i18n.ErrKeyTargetNotFound, err)
		case errors.Is(err, service.ErrConcurrentConflict):
			metrics.RecordReservation(duration, "conflict", 0)
			builder.Error(http.StatusConflict, i18n.ErrKeyConflict, err)
		default:
			metrics.RecordReservation(duration, "error", 0)
			builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		}
		return
	}

	messageKey := i18n.SuccessKeyReservationFull
	reservationOutcome := "full"
	if outcome.Result.IsPartial() {
		messageKey = i18n.SuccessKeyReservationPartial
		reservationOutcome = "partial"
	}
	metrics.RecordReservation(duration, reservationOutcome, outcome.Result.QuantityFulfilled)
	locale := i18n.GetLocale(c)

	builder.SuccessOK(dto.ReservationResponse{
		Result:  outcome.Result,
		Status:  outcome.Item.Status,
		Message: i18n.GetTranslator().Translate(messageKey, locale),
	})
}

// CreditStock handles POST /api/stock/credit requests.
//
// @Summary      Credit surplus stock
// @Description  Appends a surplus stock unit for the given item code, tagged with the order that over-purchased it. Units credited earlier are consumed first by reservations.
// @Tags         Stock
// @Accept       json
// @Produce      json
// @Param        request body dto.CreditStockRequest true "Surplus credit request"
// @Success      201 {object} dto.SuccessResponse "Stock credited"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      429 {object} dto.ErrorResponse "Too many requests - rate limit exceeded"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/stock/credit [post]
func (h *Handler) CreditStock(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequestAndValidate[dto.CreditStockRequest](c)
	if err != nil {
		var validationErr *dto.ValidationError
		if errors.As(err, &validationErr) {
			builder.Error(http.StatusBadRequest, i18n.ErrKeyValidationQuantity, err)
		} else {
			builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		}
		return
	}

	// Audit log (async)
	if loggingService, exists := c.Get("logging_service"); exists {
		if ls, ok := loggingService.(service.LoggingService); ok {
			middleware.AuditLog(ls, c, "credit_stock", "Surplus stock credited", map[string]interface{}{
				"item_code":       req.ItemCode,
				"quantity":        req.Quantity,
				"source_order_id": req.SourceOrderID,
			})
		}
	}

	if err := h.ledger.Credit(c.Request.Context(), req.ItemCode, req.Quantity, req.SourceOrderID); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidQuantity), errors.Is(err, service.ErrInvalidItemCode):
			metrics.RecordCredit("invalid_request")
			builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequest, err)
		default:
			metrics.RecordCredit("error")
			builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		}
		return
	}
	metrics.RecordCredit("success")

	locale := i18n.GetLocale(c)
	builder.SuccessCreated(gin.H{
		"item_code": req.ItemCode,
		"quantity":  req.Quantity,
		"message":   i18n.GetTranslator().Translate(i18n.SuccessKeyStockCredited, locale),
	})
}

// GetAvailability handles GET /api/stock/:item_code requests.
//
// @Summary      Get available surplus for an item code
// @Description  Returns the total surplus quantity currently available for the given item code. The value is a fresh snapshot and may change before a subsequent reservation.
// @Tags         Stock
// @Produce      json
// @Param        item_code path string true "Item code"
// @Success      200 {object} dto.SuccessResponse "Available quantity"
// @Failure      429 {object} dto.ErrorResponse "Too many requests - rate limit exceeded"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/stock/{item_code} [get]
func (h *Handler) GetAvailability(c *gin.Context) {
	builder := NewResponseBuilder(c)
	itemCode := c.Param("item_code")

	available, err := h.ledger.Available(c.Request.Context(), itemCode)
	if err != nil {
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}

	builder.SuccessOK(dto.AvailabilityResponse{
		ItemCode:  itemCode,
		Available: available,
	})
}

// GetSources handles GET /api/stock/:item_code/sources requests.
//
// @Summary      Get provenance breakdown for an item code
// @Description  Returns the surplus stock for the item code broken down by source order, in the FIFO order reservations would consume it.
// @Tags         Stock
// @Produce      json
// @Param        item_code path string true "Item code"
// @Success      200 {object} dto.SuccessResponse "Per-source breakdown"
// @Failure      429 {object} dto.ErrorResponse "Too many requests - rate limit exceeded"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/stock/{item_code}/sources [get]
func (h *Handler) GetSources(c *gin.Context) {
	builder := NewResponseBuilder(c)
	itemCode := c.Param("item_code")

	sources, err := h.ledger.Sources(c.Request.Context(), itemCode)
	if err != nil {
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}

	builder.SuccessOK(dto.SourcesResponse{
		ItemCode: itemCode,
		Sources:  sources,
	})
}

// GetOrderItem handles GET /api/orders/:order_id/items/:item_index requests.
//
// @Summary      Get an order item
// @Description  Returns a single order item with its quantities and derived fulfillment status.
// @Tags         Orders
// @Produce      json
// @Param        order_id path string true "Order ID"
// @Param        item_index path int true "Item index within the order"
// @Success      200 {object} dto.SuccessResponse "Order item"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid item index"
// @Failure      404 {object} dto.ErrorResponse "Not found - order item does not exist"
// @Failure      429 {object} dto.ErrorResponse "Too many requests - rate limit exceeded"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/orders/{order_id}/items/{item_index} [get]
func (h *Handler) GetOrderItem(c *gin.Context) {
	builder := NewResponseBuilder(c)

	orderID, itemIndex, ok := h.orderItemParams(c, builder)
	if !ok {
		return
	}

	item, err := h.queries.OrderItem(c.Request.Context(), orderID, itemIndex)
	if err != nil {
		if errors.Is(err, service.ErrTargetNotFound) {
			builder.Error(http.StatusNotFound, i18n.ErrKeyTargetNotFound, err)
		} else {
			builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		}
		return
	}

	builder.SuccessOK(item)
}

// GetSuggestedReservation handles GET /api/orders/:order_id/items/:item_index/suggestion requests.
//
// @Summary      Get a suggested reservation quantity
// @Description  Returns min(shortfall, available surplus) for the order item, along with the inputs. The suggestion is a fresh snapshot, not a hold: a later reservation may fulfill less.
// @Tags         Orders
// @Produce      json
// @Param        order_id path string true "Order ID"
// @Param        item_index path int true "Item index within the order"
// @Success      200 {object} dto.SuccessResponse "Suggested reservation"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid item index"
// @Failure      404 {object} dto.ErrorResponse "Not found - order item does not exist"
// @Failure      429 {object} dto.ErrorResponse "Too many requests - rate limit exceeded"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/orders/{order_id}/items/{item_index}/suggestion [get]
func (h *Handler) GetSuggestedReservation(c *gin.Context) {
	builder := NewResponseBuilder(c)

	orderID, itemIndex, ok := h.orderItemParams(c, builder)
	if !ok {
		return
	}

	suggestion, err := h.queries.SuggestedReservation(c.Request.Context(), orderID, itemIndex)
	if err != nil {
		if errors.Is(err, service.ErrTargetNotFound) {
			builder.Error(http.StatusNotFound, i18n.ErrKeyTargetNotFound, err)
		} else {
			builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		}
		return
	}

	builder.SuccessOK(dto.SuggestionResponse{
		OrderID:           suggestion.Item.OrderID,
		ItemIndex:         suggestion.Item.ItemIndex,
		ItemCode:          suggestion.Item.ItemCode,
		Shortfall:         suggestion.Shortfall,
		Available:         suggestion.Available,
		SuggestedQuantity: suggestion.SuggestedQuantity,
	})
}

// orderItemParams parses the order_id and item_index path parameters.
func (h *Handler) orderItemParams(c *gin.Context, builder *ResponseBuilder) (string, int, bool) {
	orderID := c.Param("order_id")
	itemIndex, err := strconv.Atoi(c.Param("item_index"))
	if err != nil || itemIndex < 0 {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequest, err)
		return "", 0, false
	}
	return orderID, itemIndex, true
}
