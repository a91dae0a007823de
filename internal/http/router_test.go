package http

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/fulfillment-service/internal/domain/model"
	"github.com/guttosm/fulfillment-service/internal/service"
	"github.com/stretchr/testify/assert"
)

func TestNewRouter(t *testing.T) {
	tests := []struct {
		name string
		cfg  RouterConfig
	}{
		{
			name: "creates router with default config",
			cfg:  DefaultRouterConfig(),
		},
		{
			name: "creates router with idempotency enabled",
			cfg: RouterConfig{
				RateLimit:         100,
				RateWindow:        time.Minute,
				EnableIdempotency: true,
			},
		},
		{
			name: "creates router with rate limiting",
			cfg: RouterConfig{
				RateLimit:  5,
				RateWindow: time.Second,
			},
		},
		{
			name: "creates router with protected swagger",
			cfg: RouterConfig{
				RateLimit:   100,
				RateWindow:  time.Minute,
				SwaggerUser: "admin",
				SwaggerPass: "secret",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := NewRouter(NewHandler(nil, nil, nil), NewHealthHandler(), tt.cfg)
			assert.NotNil(t, router)
		})
	}
}

func TestRouter_Endpoints(t *testing.T) {
	fixture := setupRouter()

	tests := []struct {
		name           string
		method         string
		path           string
		expectedStatus int
	}{
		{
			name:           "healthz endpoint",
			method:         http.MethodGet,
			path:           "/healthz",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "readyz endpoint",
			method:         http.MethodGet,
			path:           "/readyz",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "metrics endpoint",
			method:         http.MethodGet,
			path:           "/metrics",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "swagger endpoint",
			method:         http.MethodGet,
			path:           "/swagger/index.html",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "reservations endpoint rejects empty body",
			method:         http.MethodPost,
			path:           "/api/reservations",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "credit endpoint rejects empty body",
			method:         http.MethodPost,
			path:           "/api/stock/credit",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			w := httptest.NewRecorder()

			fixture.router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestRouter_RequestIDHeader(t *testing.T) {
	fixture := setupRouter()

	w := httptest.NewRecorder()
	fixture.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRouter_UnknownRoute(t *testing.T) {
	fixture := setupRouter()

	w := httptest.NewRecorder()
	fixture.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/nope", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

// stalledReservations blocks until the request deadline fires.
type stalledReservations struct {
	delay time.Duration
}

func (s *stalledReservations) Reserve(ctx context.Context, _ model.ReservationRequest) (*service.ReservationOutcome, error) {
	select {
	case <-time.After(s.delay):
	case <-ctx.Done():
	}
	return nil, ctx.Err()
}

func TestRouter_RequestTimeout(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := DefaultRouterConfig()
	cfg.RequestTimeout = 20 * time.Millisecond
	handler := NewHandler(&stalledReservations{delay: time.Second}, nil, nil)
	router := NewRouter(handler, NewHealthHandler(), cfg)

	body := `{"target_order_id":"orderC","target_item_index":0,"item_code":"X-100","quantity_requested":3}`
	req := httptest.NewRequest(http.MethodPost, "/api/reservations", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
	assert.True(t, strings.Contains(strings.ToLower(w.Body.String()), "timeout"))
}

func TestRouter_SwaggerBasicAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := DefaultRouterConfig()
	cfg.SwaggerUser = "admin"
	cfg.SwaggerPass = "secret"
	router := NewRouter(NewHandler(nil, nil, nil), NewHealthHandler(), cfg)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil)
	req.SetBasicAuth("admin", "secret")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
