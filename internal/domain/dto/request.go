// Package dto defines Data Transfer Objects for HTTP request and response handling.
//
// DTOs decouple the HTTP layer from the domain model, providing validation
// and serialization for API communication. Field names follow the wire
// contract of the fulfillment engine: all quantities are positive integers
// and item_code is a non-empty string.
package dto

import (
	"github.com/guttosm/fulfillment-service/internal/domain/model"
)

// ReserveStockRequest is the JSON request body for the stock reservation
// endpoint. Reservations consume surplus stock for the target order item.
//
// @Description Request to reserve surplus stock for an order item
// @Example {"target_order_id": "orderC", "target_item_index": 0, "item_code": "X-100", "quantity_requested": 6}
type ReserveStockRequest struct {
	// TargetOrderID is the order whose item receives the reserved units.
	TargetOrderID string `json:"target_order_id" binding:"required" example:"orderC"`
	// TargetItemIndex is the index of the item within the target order.
	TargetItemIndex int `json:"target_item_index" binding:"min=0" example:"0" minimum:"0"`
	// ItemCode is the item whose surplus pool is consumed.
	ItemCode string `json:"item_code" binding:"required" example:"X-100"`
	// QuantityRequested is the number of units to reserve. Must be positive.
	QuantityRequested int `json:"quantity_requested" binding:"required,gt=0" example:"6" minimum:"1"`
} // @name ReserveStockRequest

// CreditStockRequest is the JSON request body for crediting surplus into
// the ledger. Crediting is an explicit operation triggered when an order
// is finalized with excess quantity, cancelled, or reduced.
//
// @Description Request to credit surplus stock from an originating order
// @Example {"item_code": "X-100", "quantity": 5, "source_order_id": "orderA"}
type CreditStockRequest struct {
	// ItemCode is the item the surplus belongs to.
	ItemCode string `json:"item_code" binding:"required" example:"X-100"`
	// Quantity is the number of surplus units. Must be positive.
	Quantity int `json:"quantity" binding:"required,gt=0" example:"5" minimum:"1"`
	// SourceOrderID is the order that produced the surplus.
	SourceOrderID string `json:"source_order_id" binding:"required" example:"orderA"`
} // @name CreditStockRequest

// ValidationError represents a field validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns the error message for ValidationError.
func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

var (
	// ErrInvalidQuantityRequested is returned when quantity_requested is not positive.
	ErrInvalidQuantityRequested = &ValidationError{
		Field:   "quantity_requested",
		Message: "must be a positive integer",
	}
	// ErrInvalidCreditQuantity is returned when a credited quantity is not positive.
	ErrInvalidCreditQuantity = &ValidationError{
		Field:   "quantity",
		Message: "must be a positive integer",
	}
	// ErrMissingItemCode is returned when item_code is empty.
	ErrMissingItemCode = &ValidationError{
		Field:   "item_code",
		Message: "must be a non-empty string",
	}
	// ErrMissingTargetOrder is returned when target_order_id is empty.
	ErrMissingTargetOrder = &ValidationError{
		Field:   "target_order_id",
		Message: "must be a non-empty string",
	}
	// ErrMissingSourceOrder is returned when source_order_id is empty.
	ErrMissingSourceOrder = &ValidationError{
		Field:   "source_order_id",
		Message: "must be a non-empty string",
	}
	// ErrNegativeItemIndex is returned when target_item_index is negative.
	ErrNegativeItemIndex = &ValidationError{
		Field:   "target_item_index",
		Message: "must not be negative",
	}
)

// Validate performs custom validation on the reservation request.
func (r *ReserveStockRequest) Validate() error {
	if r.TargetOrderID == "" {
		return ErrMissingTargetOrder
	}
	if r.TargetItemIndex < 0 {
		return ErrNegativeItemIndex
	}
	if r.ItemCode == "" {
		return ErrMissingItemCode
	}
	if r.QuantityRequested <= 0 {
		return ErrInvalidQuantityRequested
	}
	return nil
}

// ToModel converts the request into its domain form.
func (r *ReserveStockRequest) ToModel() model.ReservationRequest {
	return model.ReservationRequest{
		TargetOrderID:     r.TargetOrderID,
		TargetItemIndex:   r.TargetItemIndex,
		ItemCode:          r.ItemCode,
		QuantityRequested: r.QuantityRequested,
	}
}

// Validate performs custom validation on the credit request.
func (r *CreditStockRequest) Validate() error {
	if r.ItemCode == "" {
		return ErrMissingItemCode
	}
	if r.Quantity <= 0 {
		return ErrInvalidCreditQuantity
	}
	if r.SourceOrderID == "" {
		return ErrMissingSourceOrder
	}
	return nil
}
