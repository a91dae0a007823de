// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/guttosm/fulfillment-service/internal/repository"
	"github.com/stretchr/testify/mock"
)

type MockLedgerRepositoryInterface struct {
	mock.Mock
}

func (m *MockLedgerRepositoryInterface) GetEntry(ctx context.Context, itemCode string) (*repository.LedgerEntryDocument, error) {
	args := m.Called(ctx, itemCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.LedgerEntryDocument), args.Error(1)
}

func (m *MockLedgerRepositoryInterface) SaveEntry(ctx context.Context, entry *repository.LedgerEntryDocument) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}
