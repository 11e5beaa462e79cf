package storage

import (
	"context"

	"github.com/ruteri/swarm-package-registry/interfaces"
	"github.com/stretchr/testify/mock"
)

// MockPublisher mocks the ContentPublisher interface
type MockPublisher struct {
	mock.Mock
}

// PublishDirectory mocks the PublishDirectory method
func (m *MockPublisher) PublishDirectory(ctx context.Context, path string) (interfaces.ContentAddress, error) {
	args := m.Called(ctx, path)
	return args.Get(0).(interfaces.ContentAddress), args.Error(1)
}

// LocationURI returns a fixed URI
func (m *MockPublisher) LocationURI() string {
	return "mock:"
}
