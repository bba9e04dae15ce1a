package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/guild-hub/guild-hub/internal/domain/member"
)

// MockRepository is a mock implementation of member.Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, mem *member.Member) error {
	args := m.Called(ctx, mem)
	return args.Error(0)
}

func (m *MockRepository) GetByUserID(ctx context.Context, userID string) (*member.Member, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*member.Member), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, limit, offset int) ([]*member.Member, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*member.Member), args.Error(1)
}

func (m *MockRepository) AddXP(ctx context.Context, userID string, delta int64, level int) error {
	args := m.Called(ctx, userID, delta, level)
	return args.Error(0)
}

func (m *MockRepository) UpdateStatus(ctx context.Context, userID string, status member.Status) error {
	args := m.Called(ctx, userID, status)
	return args.Error(0)
}
