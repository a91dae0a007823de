package http

import (
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/fulfillment-service/internal/domain/dto"
	"github.com/guttosm/fulfillment-service/internal/i18n"
	"github.com/guttosm/fulfillment-service/internal/middleware"
)

// Response envelopes are pooled; reservation traffic is bursty and the
// envelopes are identical in shape across endpoints. Gin serializes
// synchronously inside JSON, so returning to the pool right after the
// write is safe.
var (
	successResponsePool = sync.Pool{
		New: func() interface{} { return &dto.SuccessResponse{} },
	}
	errorResponsePool = sync.Pool{
		New: func() interface{} { return &dto.ErrorResponse{} },
	}
)

func borrowSuccess() *dto.SuccessResponse {
	resp := successResponsePool.Get().(*dto.SuccessResponse)
	resp.Timestamp = time.Now()
	return resp
}

func releaseSuccess(resp *dto.SuccessResponse) {
	*resp = dto.SuccessResponse{}
	successResponsePool.Put(resp)
}

func borrowError() *dto.ErrorResponse {
	resp := errorResponsePool.Get().(*dto.ErrorResponse)
	resp.Timestamp = time.Now()
	return resp
}

func releaseError(resp *dto.ErrorResponse) {
	*resp = dto.ErrorResponse{}
	errorResponsePool.Put(resp)
}

// Validator is implemented by request DTOs that carry cross-field rules
// gin's binding tags cannot express.
type Validator interface {
	Validate() error
}

// BuildRequestAndValidate binds the JSON body into T and runs the DTO's
// own validation when it implements Validator. Binding-tag violations and
// Validate errors are returned alike; handlers map both to invalid_request.
func BuildRequestAndValidate[T any](c *gin.Context) (*T, error) {
	var req T
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, err
	}
	if v, ok := any(&req).(Validator); ok {
		if err := v.Validate(); err != nil {
			return nil, err
		}
	}
	return &req, nil
}

// UnmarshalFromReader decodes a JSON stream into T.
func UnmarshalFromReader[T any](r io.Reader) (*T, error) {
	var v T
	if err := json.NewDecoder(r).Decode(&v); err != nil {
		return nil, err
	}
	return &v, nil
}

// UnmarshalFromBytes decodes JSON bytes into T.
func UnmarshalFromBytes[T any](data []byte) (*T, error) {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// MarshalJSON encodes v to JSON bytes.
func MarshalJSON(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

// ResponseBuilder writes the service's response envelopes for one request,
// stamping each with the request ID so a reservation can be traced from
// response to log line.
type ResponseBuilder struct {
	c *gin.Context
}

// NewResponseBuilder creates a builder bound to the request context.
func NewResponseBuilder(c *gin.Context) *ResponseBuilder {
	return &ResponseBuilder{c: c}
}

// Success writes a success envelope around data.
func (b *ResponseBuilder) Success(statusCode int, data interface{}) {
	resp := borrowSuccess()
	resp.Data = data
	resp.RequestID = middleware.GetRequestID(b.c)

	b.c.JSON(statusCode, resp)
	releaseSuccess(resp)
}

// SuccessOK writes a 200 envelope. Partial fulfillment uses this path too.
func (b *ResponseBuilder) SuccessOK(data interface{}) {
	b.Success(http.StatusOK, data)
}

// SuccessCreated writes a 201 envelope, used when a credit creates surplus.
func (b *ResponseBuilder) SuccessCreated(data interface{}) {
	b.Success(http.StatusCreated, data)
}

// Error aborts the request with a translated error envelope. messageKey is
// resolved against the request's Accept-Language locale.
func (b *ResponseBuilder) Error(statusCode int, messageKey string, err error) {
	locale := i18n.GetLocale(b.c)
	message := i18n.GetTranslator().Translate(messageKey, locale)
	b.writeError(statusCode, message, err)
}

// ErrorWithMessage aborts the request with a verbatim message, for errors
// whose text is built dynamically.
func (b *ResponseBuilder) ErrorWithMessage(statusCode int, message string, err error) {
	b.writeError(statusCode, message, err)
}

func (b *ResponseBuilder) writeError(statusCode int, message string, err error) {
	resp := borrowError()
	resp.Error = dto.ErrCodeFromStatus(statusCode)
	resp.Message = message
	resp.RequestID = middleware.GetRequestID(b.c)

	// Attach the cause so the error handler middleware logs it.
	if err != nil {
		_ = b.c.Error(err)
	}

	b.c.AbortWithStatusJSON(statusCode, resp)
	releaseError(resp)
}
