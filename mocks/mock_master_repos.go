package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"lekha/internal/domain"
)

// MockItemRepo is a mock implementation of port.ItemRepository.
type MockItemRepo struct {
	mock.Mock
}

func (m *MockItemRepo) List(ctx context.Context, limit, offset int) ([]domain.ItemMaster, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ItemMaster), args.Error(1)
}

// MockTaxRepo is a mock implementation of port.TaxRepository.
type MockTaxRepo struct {
	mock.Mock
}

func (m *MockTaxRepo) List(ctx context.Context, limit, offset int) ([]domain.TaxCode, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TaxCode), args.Error(1)
}

// MockTDSRepo is a mock implementation of port.TDSRepository.
type MockTDSRepo struct {
	mock.Mock
}

func (m *MockTDSRepo) List(ctx context.Context, limit, offset int) ([]domain.TDSCode, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TDSCode), args.Error(1)
}
