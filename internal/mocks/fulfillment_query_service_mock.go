// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/guttosm/fulfillment-service/internal/domain/model"
	"github.com/guttosm/fulfillment-service/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockFulfillmentQueryService struct {
	mock.Mock
}

func (m *MockFulfillmentQueryService) Shortfall(item model.OrderItem) int {
	args := m.Called(item)
	return args.Int(0)
}

func (m *MockFulfillmentQueryService) SuggestedReservation(ctx context.Context, orderID string, itemIndex int) (*service.Suggestion, error) {
	args := m.Called(ctx, orderID, itemIndex)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Suggestion), args.Error(1)
}

func (m *MockFulfillmentQueryService) OrderItem(ctx context.Context, orderID string, itemIndex int) (*model.OrderItem, error) {
	args := m.Called(ctx, orderID, itemIndex)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OrderItem), args.Error(1)
}
