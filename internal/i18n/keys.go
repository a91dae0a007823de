// Package i18n provides internationalization support for the fulfillment service.
package i18n

// Error message translation keys.
const (
	// ErrKeyInvalidRequest indicates an invalid request.
	ErrKeyInvalidRequest = "error.invalid_request"
	// ErrKeyInvalidRequestBody indicates an invalid request body.
	ErrKeyInvalidRequestBody = "error.invalid_request_body"
	// ErrKeyInternalError indicates an internal server error.
	ErrKeyInternalError = "error.internal_error"
	// ErrKeyNotFound indicates a resource was not found.
	ErrKeyNotFound = "error.not_found"
	// ErrKeyTargetNotFound indicates the target order item does not exist.
	ErrKeyTargetNotFound = "error.target_not_found"
	// ErrKeyRateLimitExceeded indicates rate limit exceeded.
	ErrKeyRateLimitExceeded = "error.rate_limit_exceeded"
	// ErrKeyConflict indicates a conflict with current state.
	ErrKeyConflict = "error.conflict"
	// ErrKeyValidationQuantity indicates an invalid quantity validation.
	ErrKeyValidationQuantity = "error.validation.quantity"
	// ErrKeyTimeout indicates a request timeout.
	ErrKeyTimeout = "error.timeout"
)

// Success message translation keys.
const (
	// SuccessKeyReservationFull indicates a fully satisfied reservation.
	SuccessKeyReservationFull = "success.reservation_full"
	// SuccessKeyReservationPartial indicates a partially satisfied reservation.
	SuccessKeyReservationPartial = "success.reservation_partial"
	// SuccessKeyStockCredited indicates surplus stock was credited.
	SuccessKeyStockCredited = "success.stock_credited"
)
