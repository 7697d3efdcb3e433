package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"lekha/internal/domain"
	"lekha/internal/port"
)

// MockInvoiceRepo is a mock implementation of port.InvoiceRepository.
type MockInvoiceRepo struct {
	mock.Mock
}

func (m *MockInvoiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepo) Update(ctx context.Context, id uuid.UUID, input *port.UpdateInvoiceInput) error {
	args := m.Called(ctx, id, input)
	return args.Error(0)
}

func (m *MockInvoiceRepo) Submit(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockInvoiceRepo) ApproveOrReject(ctx context.Context, id uuid.UUID, input port.ActionInput) error {
	args := m.Called(ctx, id, input)
	return args.Error(0)
}
