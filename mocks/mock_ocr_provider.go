package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"splitbill/internal/port"
)

// MockOCRProvider is a testify mock for port.OCRProvider.
type MockOCRProvider struct {
	mock.Mock
}

func (m *MockOCRProvider) ExtractText(ctx context.Context, input port.OCRInput) (string, error) {
	args := m.Called(ctx, input)
	return args.String(0), args.Error(1)
}

func (m *MockOCRProvider) Complete(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}
