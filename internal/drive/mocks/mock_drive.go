package mocks

import (
	"context"
	"io"

	"studyvault/internal/drive"

	"github.com/stretchr/testify/mock"
)

type MockDrive struct {
	mock.Mock
}

func (m *MockDrive) Root() drive.Folder {
	args := m.Called()
	return args.Get(0).(drive.Folder)
}

func (m *MockDrive) FindFolder(ctx context.Context, name string, parent drive.Folder) (*drive.Folder, error) {
	args := m.Called(ctx, name, parent)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*drive.Folder), args.Error(1)
}

func (m *MockDrive) CreateFolder(ctx context.Context, name string, parent drive.Folder) (drive.Folder, error) {
	args := m.Called(ctx, name, parent)
	return args.Get(0).(drive.Folder), args.Error(1)
}

func (m *MockDrive) UploadFile(ctx context.Context, parent drive.Folder, name, contentType string, r io.Reader, size int64) (drive.ObjectRef, error) {
	args := m.Called(ctx, parent, name, contentType, r, size)
	return args.Get(0).(drive.ObjectRef), args.Error(1)
}

func (m *MockDrive) AllowPublicRead(ctx context.Context, obj drive.ObjectRef) (string, error) {
	args := m.Called(ctx, obj)
	return args.String(0), args.Error(1)
}

func (m *MockDrive) Health(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
