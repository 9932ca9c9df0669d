package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"gretutor/internal/port"
)

// MockCompletionClient is a mock implementation of port.CompletionClient.
type MockCompletionClient struct {
	mock.Mock
}

func (m *MockCompletionClient) Complete(ctx context.Context, input port.CompletionInput) (string, error) {
	args := m.Called(ctx, input)
	return args.String(0), args.Error(1)
}
