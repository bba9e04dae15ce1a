package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/guild-hub/guild-hub/internal/domain/inventory"
)

// MockRepository is a mock implementation of inventory.Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) UpsertItem(ctx context.Context, item *inventory.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockRepository) GetItem(ctx context.Context, itemID string) (*inventory.Item, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Item), args.Error(1)
}

func (m *MockRepository) GetItems(ctx context.Context, itemIDs []string) ([]*inventory.Item, error) {
	args := m.Called(ctx, itemIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*inventory.Item), args.Error(1)
}

func (m *MockRepository) ListItems(ctx context.Context, limit, offset int) ([]*inventory.Item, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*inventory.Item), args.Error(1)
}

func (m *MockRepository) ListHoldings(ctx context.Context, userID string) ([]*inventory.Holding, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*inventory.Holding), args.Error(1)
}

func (m *MockRepository) GetHolding(ctx context.Context, userID, itemID string) (*inventory.Holding, error) {
	args := m.Called(ctx, userID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Holding), args.Error(1)
}

func (m *MockRepository) AdjustQuantity(ctx context.Context, userID, itemID string, delta int64) error {
	args := m.Called(ctx, userID, itemID, delta)
	return args.Error(0)
}

func (m *MockRepository) TransferAtomic(ctx context.Context, legs []inventory.TransferLeg) error {
	args := m.Called(ctx, legs)
	return args.Error(0)
}
