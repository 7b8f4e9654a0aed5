package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"splitbill/internal/service"
)

// MockBillService is a testify mock for service.BillService.
type MockBillService struct {
	mock.Mock
}

func (m *MockBillService) ProcessBill(ctx context.Context, input service.FileInput) (*service.BillResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.BillResult), args.Error(1)
}

func (m *MockBillService) ProcessBills(ctx context.Context, inputs []service.FileInput) (*service.BatchResult, error) {
	args := m.Called(ctx, inputs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.BatchResult), args.Error(1)
}

func (m *MockBillService) CheckFile(input service.FileInput) (*service.UploadInfo, error) {
	args := m.Called(input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.UploadInfo), args.Error(1)
}
