package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/guttosm/fulfillment-service/internal/domain/model"
	"github.com/guttosm/fulfillment-service/internal/lock"
	"github.com/guttosm/fulfillment-service/internal/mocks"
	"github.com/guttosm/fulfillment-service/internal/repository"
	"github.com/guttosm/fulfillment-service/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newTestLedger() (*service.StockLedger, *repository.InMemoryLedgerRepository) {
	repo := repository.NewInMemoryLedgerRepository()
	return service.NewStockLedger(repo, lock.NewKeyedMutex()), repo
}

// TestStockLedger_Credit tests surplus crediting.
func TestStockLedger_Credit(t *testing.T) {
	ctx := context.Background()

	t.Run("credits accumulate in FIFO order", func(t *testing.T) {
		ledger, _ := newTestLedger()

		assert.NoError(t, ledger.Credit(ctx, "X-100", 5, "orderA"))
		assert.NoError(t, ledger.Credit(ctx, "X-100", 3, "orderB"))

		available, err := ledger.Available(ctx, "X-100")
		assert.NoError(t, err)
		assert.Equal(t, 8, available)

		sources, err := ledger.Sources(ctx, "X-100")
		assert.NoError(t, err)
		assert.Equal(t, []model.ReservationSource{
			{SourceOrderID: "orderA", QuantityTaken: 5},
			{SourceOrderID: "orderB", QuantityTaken: 3},
		}, sources)
	})

	t.Run("rejects non-positive quantity before any mutation", func(t *testing.T) {
		ledger, _ := newTestLedger()

		assert.ErrorIs(t, ledger.Credit(ctx, "X-100", 0, "orderA"), service.ErrInvalidQuantity)
		assert.ErrorIs(t, ledger.Credit(ctx, "X-100", -2, "orderA"), service.ErrInvalidQuantity)

		available, err := ledger.Available(ctx, "X-100")
		assert.NoError(t, err)
		assert.Equal(t, 0, available)
	})

	t.Run("rejects empty item code", func(t *testing.T) {
		ledger, _ := newTestLedger()
		assert.ErrorIs(t, ledger.Credit(ctx, "", 5, "orderA"), service.ErrInvalidItemCode)
	})

	t.Run("retries version conflicts and succeeds", func(t *testing.T) {
		repo := new(mocks.MockLedgerRepositoryInterface)
		ledger := service.NewStockLedger(repo, lock.NewKeyedMutex())

		repo.On("GetEntry", mock.Anything, "X-100").Return(nil, nil)
		repo.On("SaveEntry", mock.Anything, mock.Anything).Return(repository.ErrVersionConflict).Once()
		repo.On("SaveEntry", mock.Anything, mock.Anything).Return(nil).Once()

		assert.NoError(t, ledger.Credit(ctx, "X-100", 5, "orderA"))
		repo.AssertExpectations(t)
	})

	t.Run("gives up after exhausting conflict retries", func(t *testing.T) {
		repo := new(mocks.MockLedgerRepositoryInterface)
		ledger := service.NewStockLedger(repo, lock.NewKeyedMutex())

		repo.On("GetEntry", mock.Anything, "X-100").Return(nil, nil)
		repo.On("SaveEntry", mock.Anything, mock.Anything).Return(repository.ErrVersionConflict)

		assert.ErrorIs(t, ledger.Credit(ctx, "X-100", 5, "orderA"), repository.ErrVersionConflict)
	})
}

// TestStockLedger_Debit tests FIFO consumption through the ledger.
func TestStockLedger_Debit(t *testing.T) {
	ctx := context.Background()

	t.Run("debits oldest units first", func(t *testing.T) {
		ledger, _ := newTestLedger()
		assert.NoError(t, ledger.Credit(ctx, "X-100", 5, "orderA"))
		assert.NoError(t, ledger.Credit(ctx, "X-100", 3, "orderB"))

		result, err := ledger.Debit(ctx, "X-100", 6)
		assert.NoError(t, err)
		assert.Equal(t, 6, result.QuantityFulfilled)
		assert.Equal(t, 0, result.RemainingShortfall)
		assert.Equal(t, []model.ReservationSource{
			{SourceOrderID: "orderA", QuantityTaken: 5},
			{SourceOrderID: "orderB", QuantityTaken: 1},
		}, result.Sources)

		available, err := ledger.Available(ctx, "X-100")
		assert.NoError(t, err)
		assert.Equal(t, 2, available)
	})

	t.Run("shortfall is an outcome not an error", func(t *testing.T) {
		ledger, _ := newTestLedger()
		assert.NoError(t, ledger.Credit(ctx, "X-100", 4, "orderA"))

		result, err := ledger.Debit(ctx, "X-100", 10)
		assert.NoError(t, err)
		assert.Equal(t, 4, result.QuantityFulfilled)
		assert.Equal(t, 6, result.RemainingShortfall)
		assert.True(t, result.IsPartial())
	})

	t.Run("debiting an unknown item code fulfills nothing", func(t *testing.T) {
		ledger, _ := newTestLedger()

		result, err := ledger.Debit(ctx, "Y-200", 3)
		assert.NoError(t, err)
		assert.Equal(t, 0, result.QuantityFulfilled)
		assert.Equal(t, 3, result.RemainingShortfall)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		ledger, _ := newTestLedger()
		_, err := ledger.Debit(ctx, "X-100", 0)
		assert.ErrorIs(t, err, service.ErrInvalidQuantity)
	})

	t.Run("distinct item codes are independent pools", func(t *testing.T) {
		ledger, _ := newTestLedger()
		assert.NoError(t, ledger.Credit(ctx, "X-100", 5, "orderA"))
		assert.NoError(t, ledger.Credit(ctx, "Y-200", 3, "orderB"))

		_, err := ledger.Debit(ctx, "X-100", 5)
		assert.NoError(t, err)

		available, err := ledger.Available(ctx, "Y-200")
		assert.NoError(t, err)
		assert.Equal(t, 3, available)
	})
}

// TestStockLedger_ConcurrentCredits verifies no units are lost under
// concurrent crediting of the same item code.
func TestStockLedger_ConcurrentCredits(t *testing.T) {
	ctx := context.Background()
	ledger, _ := newTestLedger()

	const goroutines = 20
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, ledger.Credit(ctx, "X-100", 1, "orderA"))
		}()
	}
	wg.Wait()

	available, err := ledger.Available(ctx, "X-100")
	assert.NoError(t, err)
	assert.Equal(t, goroutines, available)
}

// TestStockLedger_RepositoryErrors verifies storage failures surface.
func TestStockLedger_RepositoryErrors(t *testing.T) {
	ctx := context.Background()
	storeErr := errors.New("store down")

	repo := new(mocks.MockLedgerRepositoryInterface)
	ledger := service.NewStockLedger(repo, lock.NewKeyedMutex())
	repo.On("GetEntry", mock.Anything, "X-100").Return(nil, storeErr)

	_, err := ledger.Available(ctx, "X-100")
	assert.ErrorIs(t, err, storeErr)

	_, err = ledger.Sources(ctx, "X-100")
	assert.ErrorIs(t, err, storeErr)

	_, err = ledger.Debit(ctx, "X-100", 1)
	assert.ErrorIs(t, err, storeErr)

	assert.ErrorIs(t, ledger.Credit(ctx, "X-100", 1, "orderA"), storeErr)
}
