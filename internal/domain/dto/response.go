package dto

import (
	"net/http"
	"time"

	"github.com/guttosm/fulfillment-service/internal/domain/model"
)

const (
	// ErrCodeInvalidRequest indicates an invalid request.
	ErrCodeInvalidRequest = "invalid_request"
	// ErrCodeInternal indicates an internal server error.
	ErrCodeInternal = "internal_error"
	// ErrCodeNotFound indicates a resource was not found.
	ErrCodeNotFound = "not_found"
	// ErrCodeRateLimit indicates rate limit exceeded.
	ErrCodeRateLimit = "rate_limit_exceeded"
	// ErrCodeConflict indicates a conflict with current state.
	ErrCodeConflict = "conflict"
	// ErrCodeTimeout indicates a request timeout.
	ErrCodeTimeout = "timeout"
)

// SuccessResponse wraps successful API responses with metadata.
// @Description Successful API response wrapper
type SuccessResponse struct {
	// Data contains the actual response data
	Data interface{} `json:"data" swaggertype:"object"`
	// RequestID is the unique request identifier
	RequestID string `json:"request_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	// Timestamp is when the response was generated
	Timestamp time.Time `json:"timestamp" example:"2025-01-28T10:00:00Z"`
} // @name SuccessResponse

// ErrorResponse represents a standardized error response for the API.
// @Description Standardized error response
type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_request"`
	Message string `json:"message,omitempty" example:"quantity_requested: must be a positive integer"`
	// Details contains additional error details (optional)
	Details   map[string]string `json:"details,omitempty"`
	RequestID string            `json:"request_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	TraceID   string            `json:"trace_id,omitempty" example:"trace-123"`
	Timestamp time.Time         `json:"timestamp" example:"2025-01-28T10:00:00Z"`
} // @name ErrorResponse

// ReservationResponse is the payload returned by the reservation endpoint.
// Status is the order item's post-reservation status; clients must render
// it instead of computing status locally.
//
// @Description Reservation outcome including the recomputed order item status
type ReservationResponse struct {
	Result model.ReservationResult `json:"result"`
	// Status is the target order item's status after the reservation
	Status model.ItemStatus `json:"status" example:"purchased"`
	// Message is a localized human summary of full vs. partial fulfillment
	Message string `json:"message" example:"Reservation fully fulfilled"`
} // @name ReservationResponse

// AvailabilityResponse reports the live surplus for an item code.
// @Description Available surplus quantity for an item code
type AvailabilityResponse struct {
	ItemCode string `json:"item_code" example:"X-100"`
	// Available is the sum of live surplus unit quantities
	Available int `json:"available" example:"8"`
} // @name AvailabilityResponse

// SourcesResponse reports the provenance breakdown of an item's surplus.
// @Description Per-source breakdown of available surplus, oldest first
type SourcesResponse struct {
	ItemCode string                    `json:"item_code" example:"X-100"`
	Sources  []model.ReservationSource `json:"sources"`
} // @name SourcesResponse

// SuggestionResponse pre-fills the reservation quantity input for an order
// item: the lesser of its shortfall and the available surplus.
// @Description Suggested reservation quantity for an order item
type SuggestionResponse struct {
	OrderID   string `json:"order_id" example:"orderC"`
	ItemIndex int    `json:"item_index" example:"0"`
	ItemCode  string `json:"item_code" example:"X-100"`
	// Shortfall is the quantity the item still needs
	Shortfall int `json:"shortfall" example:"6"`
	// Available is the surplus currently in the ledger
	Available int `json:"available" example:"8"`
	// SuggestedQuantity is min(shortfall, available)
	SuggestedQuantity int `json:"suggested_quantity" example:"6"`
} // @name SuggestionResponse

// NewError creates a new ErrorResponse with the given code and message.
func NewError(code, message string) ErrorResponse {
	return ErrorResponse{
		Error:     code,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// WithRequestID adds a request ID to the error response.
func (e ErrorResponse) WithRequestID(requestID string) ErrorResponse {
	e.RequestID = requestID
	return e
}

// ErrCodeFromStatus returns the appropriate error code for an HTTP status.
func ErrCodeFromStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return ErrCodeInvalidRequest
	case http.StatusNotFound:
		return ErrCodeNotFound
	case http.StatusConflict:
		return ErrCodeConflict
	case http.StatusTooManyRequests:
		return ErrCodeRateLimit
	case http.StatusGatewayTimeout, http.StatusRequestTimeout:
		return ErrCodeTimeout
	default:
		return ErrCodeInternal
	}
}
