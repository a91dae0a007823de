// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/guttosm/fulfillment-service/internal/domain/model"
	"github.com/stretchr/testify/mock"
)

type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) Available(ctx context.Context, itemCode string) (int, error) {
	args := m.Called(ctx, itemCode)
	return args.Int(0), args.Error(1)
}

func (m *MockLedgerService) Sources(ctx context.Context, itemCode string) ([]model.ReservationSource, error) {
	args := m.Called(ctx, itemCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ReservationSource), args.Error(1)
}

func (m *MockLedgerService) Credit(ctx context.Context, itemCode string, quantity int, sourceOrderID string) error {
	args := m.Called(ctx, itemCode, quantity, sourceOrderID)
	return args.Error(0)
}

func (m *MockLedgerService) Debit(ctx context.Context, itemCode string, quantity int) (model.ReservationResult, error) {
	args := m.Called(ctx, itemCode, quantity)
	return args.Get(0).(model.ReservationResult), args.Error(1)
}
