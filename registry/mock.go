package registry

import (
	"context"

	"github.com/ruteri/swarm-package-registry/interfaces"
	"github.com/stretchr/testify/mock"
)

// MockRegistry mocks the PackageRegistry interface
type MockRegistry struct {
	mock.Mock
}

// Register mocks the Register method
func (m *MockRegistry) Register(ctx context.Context, name interfaces.PackageName) (interfaces.PackageHandle, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(interfaces.PackageHandle), args.Error(1)
}

// Resolve mocks the Resolve method
func (m *MockRegistry) Resolve(ctx context.Context, name interfaces.PackageName) (interfaces.PackageHandle, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(interfaces.PackageHandle), args.Error(1)
}

// Publish mocks the Publish method
func (m *MockRegistry) Publish(ctx context.Context, handle interfaces.PackageHandle, version interfaces.Version, address interfaces.ContentAddress) error {
	args := m.Called(ctx, handle, version, address)
	return args.Error(0)
}
