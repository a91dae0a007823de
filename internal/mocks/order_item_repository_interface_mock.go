// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/guttosm/fulfillment-service/internal/domain/model"
	"github.com/stretchr/testify/mock"
)

type MockOrderItemRepositoryInterface struct {
	mock.Mock
}

func (m *MockOrderItemRepositoryInterface) Get(ctx context.Context, orderID string, itemIndex int) (*model.OrderItem, error) {
	args := m.Called(ctx, orderID, itemIndex)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OrderItem), args.Error(1)
}

func (m *MockOrderItemRepositoryInterface) Put(ctx context.Context, item *model.OrderItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockOrderItemRepositoryInterface) Update(ctx context.Context, item *model.OrderItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}
