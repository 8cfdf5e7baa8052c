package mocks

import (
	"context"
	"io"

	"studyvault/internal/model"
	"studyvault/internal/repository"

	"github.com/stretchr/testify/mock"
)

type MockResourceService struct {
	mock.Mock
}

func (m *MockResourceService) Upload(ctx context.Context, p *model.Principal, req *model.UploadRequest, r io.Reader) (*model.Resource, error) {
	args := m.Called(ctx, p, req, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Resource), args.Error(1)
}

func (m *MockResourceService) Search(ctx context.Context, f repository.ResourceFilter) ([]model.Resource, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Resource), args.Error(1)
}

func (m *MockResourceService) ListByUploader(ctx context.Context, uploaderID string) ([]model.Resource, error) {
	args := m.Called(ctx, uploaderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Resource), args.Error(1)
}

func (m *MockResourceService) CountRead(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockResourceService) CountDownload(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
