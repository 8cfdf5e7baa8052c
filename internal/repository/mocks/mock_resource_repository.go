package mocks

import (
	"context"

	"studyvault/internal/model"
	"studyvault/internal/repository"

	"github.com/stretchr/testify/mock"
)

type MockResourceRepository struct {
	mock.Mock
}

func (m *MockResourceRepository) Create(ctx context.Context, res *model.Resource) (*model.Resource, error) {
	args := m.Called(ctx, res)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Resource), args.Error(1)
}

func (m *MockResourceRepository) IncrementCounter(ctx context.Context, id string, counter repository.Counter) error {
	args := m.Called(ctx, id, counter)
	return args.Error(0)
}

func (m *MockResourceRepository) Search(ctx context.Context, f repository.ResourceFilter) ([]model.Resource, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Resource), args.Error(1)
}

func (m *MockResourceRepository) ListByUploader(ctx context.Context, uploaderID string) ([]model.Resource, error) {
	args := m.Called(ctx, uploaderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Resource), args.Error(1)
}

type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) DisplayName(ctx context.Context, userID string) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}
