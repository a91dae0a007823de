package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/fulfillment-service/internal/domain/dto"
	"github.com/guttosm/fulfillment-service/internal/domain/model"
	"github.com/guttosm/fulfillment-service/internal/lock"
	"github.com/guttosm/fulfillment-service/internal/repository"
	"github.com/guttosm/fulfillment-service/internal/service"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type routerFixture struct {
	router *gin.Engine
	ledger *service.StockLedger
	orders *repository.InMemoryOrderItemRepository
}

func setupRouter() *routerFixture {
	locks := lock.NewKeyedMutex()
	ledger := service.NewStockLedger(repository.NewInMemoryLedgerRepository(), locks)
	orders := repository.NewInMemoryOrderItemRepository()
	reservations := service.NewReservationEngine(ledger, orders)
	queries := service.NewFulfillmentQuery(ledger, orders)

	handler := NewHandler(reservations, ledger, queries)
	healthHandler := NewHealthHandler()
	return &routerFixture{
		router: NewRouter(handler, healthHandler, DefaultRouterConfig()),
		ledger: ledger,
		orders: orders,
	}
}

func (f *routerFixture) do(method, path, body string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decodeData[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var resp dto.SuccessResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.RequestID)

	dataBytes, err := json.Marshal(resp.Data)
	assert.NoError(t, err)
	var out T
	assert.NoError(t, json.Unmarshal(dataBytes, &out))
	return out
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

// TestCreditStock tests POST /api/stock/credit.
func TestCreditStock(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "valid credit",
			body:           `{"item_code": "X-100", "quantity": 5, "source_order_id": "orderA"}`,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "zero quantity",
			body:           `{"item_code": "X-100", "quantity": 0, "source_order_id": "orderA"}`,
			expectedStatus: http.StatusBadRequest,
			expectedError:  dto.ErrCodeInvalidRequest,
		},
		{
			name:           "negative quantity",
			body:           `{"item_code": "X-100", "quantity": -3, "source_order_id": "orderA"}`,
			expectedStatus: http.StatusBadRequest,
			expectedError:  dto.ErrCodeInvalidRequest,
		},
		{
			name:           "missing item code",
			body:           `{"quantity": 5, "source_order_id": "orderA"}`,
			expectedStatus: http.StatusBadRequest,
			expectedError:  dto.ErrCodeInvalidRequest,
		},
		{
			name:           "malformed json",
			body:           `{"item_code": `,
			expectedStatus: http.StatusBadRequest,
			expectedError:  dto.ErrCodeInvalidRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setupRouter()
			w := f.do(http.MethodPost, "/api/stock/credit", tt.body)
			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, decodeError(t, w).Error)
			}
		})
	}
}

// TestReserveStock tests POST /api/reservations.
func TestReserveStock(t *testing.T) {
	t.Run("full fulfillment", func(t *testing.T) {
		f := setupRouter()
		seedStockAndItem(t, f, 5, 3, 6)

		w := f.do(http.MethodPost, "/api/reservations",
			`{"target_order_id": "orderC", "target_item_index": 0, "item_code": "X-100", "quantity_requested": 6}`)
		assert.Equal(t, http.StatusOK, w.Code)

		resp := decodeData[dto.ReservationResponse](t, w)
		assert.Equal(t, 6, resp.Result.QuantityFulfilled)
		assert.Equal(t, 0, resp.Result.RemainingShortfall)
		assert.Equal(t, model.StatusPurchased, resp.Status)
		assert.Len(t, resp.Result.Sources, 2)
	})

	t.Run("partial fulfillment is 200", func(t *testing.T) {
		f := setupRouter()
		seedStockAndItem(t, f, 4, 0, 10)

		w := f.do(http.MethodPost, "/api/reservations",
			`{"target_order_id": "orderC", "target_item_index": 0, "item_code": "X-100", "quantity_requested": 10}`)
		assert.Equal(t, http.StatusOK, w.Code)

		resp := decodeData[dto.ReservationResponse](t, w)
		assert.Equal(t, 4, resp.Result.QuantityFulfilled)
		assert.Equal(t, 6, resp.Result.RemainingShortfall)
		assert.Equal(t, model.StatusPurchasedPartial, resp.Status)
	})

	t.Run("unknown target is 404 and leaves stock untouched", func(t *testing.T) {
		f := setupRouter()
		assert.NoError(t, f.ledger.Credit(t.Context(), "X-100", 5, "orderA"))

		w := f.do(http.MethodPost, "/api/reservations",
			`{"target_order_id": "ghost", "target_item_index": 0, "item_code": "X-100", "quantity_requested": 3}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, dto.ErrCodeNotFound, decodeError(t, w).Error)

		available, err := f.ledger.Available(t.Context(), "X-100")
		assert.NoError(t, err)
		assert.Equal(t, 5, available)
	})

	t.Run("invalid quantity is 400", func(t *testing.T) {
		f := setupRouter()
		w := f.do(http.MethodPost, "/api/reservations",
			`{"target_order_id": "orderC", "target_item_index": 0, "item_code": "X-100", "quantity_requested": 0}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeInvalidRequest, decodeError(t, w).Error)
	})

	t.Run("malformed body is 400", func(t *testing.T) {
		f := setupRouter()
		w := f.do(http.MethodPost, "/api/reservations", `{"target_order_id"`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func seedStockAndItem(t *testing.T, f *routerFixture, creditA, creditB, required int) {
	t.Helper()
	if creditA > 0 {
		assert.NoError(t, f.ledger.Credit(t.Context(), "X-100", creditA, "orderA"))
	}
	if creditB > 0 {
		assert.NoError(t, f.ledger.Credit(t.Context(), "X-100", creditB, "orderB"))
	}
	assert.NoError(t, f.orders.Put(t.Context(), &model.OrderItem{
		OrderID: "orderC", ItemIndex: 0, ItemCode: "X-100",
		RequiredQuantity: required, Status: model.StatusPending,
	}))
}

// TestGetAvailability tests GET /api/stock/:item_code.
func TestGetAvailability(t *testing.T) {
	f := setupRouter()
	assert.NoError(t, f.ledger.Credit(t.Context(), "X-100", 5, "orderA"))
	assert.NoError(t, f.ledger.Credit(t.Context(), "X-100", 3, "orderB"))

	w := f.do(http.MethodGet, "/api/stock/X-100", "")
	assert.Equal(t, http.StatusOK, w.Code)

	resp := decodeData[dto.AvailabilityResponse](t, w)
	assert.Equal(t, "X-100", resp.ItemCode)
	assert.Equal(t, 8, resp.Available)

	// unknown item code has zero surplus, not an error
	w = f.do(http.MethodGet, "/api/stock/ghost", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, decodeData[dto.AvailabilityResponse](t, w).Available)
}

// TestGetSources tests GET /api/stock/:item_code/sources.
func TestGetSources(t *testing.T) {
	f := setupRouter()
	assert.NoError(t, f.ledger.Credit(t.Context(), "X-100", 5, "orderA"))
	assert.NoError(t, f.ledger.Credit(t.Context(), "X-100", 3, "orderB"))

	w := f.do(http.MethodGet, "/api/stock/X-100/sources", "")
	assert.Equal(t, http.StatusOK, w.Code)

	resp := decodeData[dto.SourcesResponse](t, w)
	assert.Equal(t, []model.ReservationSource{
		{SourceOrderID: "orderA", QuantityTaken: 5},
		{SourceOrderID: "orderB", QuantityTaken: 3},
	}, resp.Sources)
}

// TestGetOrderItem tests GET /api/orders/:order_id/items/:item_index.
func TestGetOrderItem(t *testing.T) {
	f := setupRouter()
	assert.NoError(t, f.orders.Put(t.Context(), &model.OrderItem{
		OrderID: "orderC", ItemIndex: 0, ItemCode: "X-100",
		RequiredQuantity: 6, Status: model.StatusPending,
	}))

	t.Run("existing item", func(t *testing.T) {
		w := f.do(http.MethodGet, "/api/orders/orderC/items/0", "")
		assert.Equal(t, http.StatusOK, w.Code)

		item := decodeData[model.OrderItem](t, w)
		assert.Equal(t, "X-100", item.ItemCode)
		assert.Equal(t, model.StatusPending, item.Status)
	})

	t.Run("missing item is 404", func(t *testing.T) {
		w := f.do(http.MethodGet, "/api/orders/ghost/items/0", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("non-numeric index is 400", func(t *testing.T) {
		w := f.do(http.MethodGet, "/api/orders/orderC/items/abc", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

// TestGetSuggestedReservation tests the suggestion endpoint.
func TestGetSuggestedReservation(t *testing.T) {
	f := setupRouter()
	assert.NoError(t, f.ledger.Credit(t.Context(), "X-100", 3, "orderA"))
	assert.NoError(t, f.orders.Put(t.Context(), &model.OrderItem{
		OrderID: "orderC", ItemIndex: 0, ItemCode: "X-100",
		RequiredQuantity: 10, PurchasedQuantity: 2, Status: model.StatusPurchasedPartial,
	}))

	w := f.do(http.MethodGet, "/api/orders/orderC/items/0/suggestion", "")
	assert.Equal(t, http.StatusOK, w.Code)

	resp := decodeData[dto.SuggestionResponse](t, w)
	assert.Equal(t, "orderC", resp.OrderID)
	assert.Equal(t, "X-100", resp.ItemCode)
	assert.Equal(t, 8, resp.Shortfall)
	assert.Equal(t, 3, resp.Available)
	assert.Equal(t, 3, resp.SuggestedQuantity)
}

// TestReserveThenQuery exercises the credit-reserve-query round trip.
func TestReserveThenQuery(t *testing.T) {
	f := setupRouter()
	seedStockAndItem(t, f, 5, 3, 6)

	w := f.do(http.MethodPost, "/api/reservations",
		`{"target_order_id": "orderC", "target_item_index": 0, "item_code": "X-100", "quantity_requested": 6}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w = f.do(http.MethodGet, "/api/stock/X-100", "")
	assert.Equal(t, 2, decodeData[dto.AvailabilityResponse](t, w).Available)

	w = f.do(http.MethodGet, "/api/orders/orderC/items/0", "")
	item := decodeData[model.OrderItem](t, w)
	assert.Equal(t, 6, item.ReservedFromStockQuantity)
	assert.Equal(t, model.StatusPurchased, item.Status)
}
