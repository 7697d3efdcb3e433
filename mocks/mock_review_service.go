package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"lekha/internal/port"
	"lekha/internal/service"
)

// MockReviewService is a mock implementation of service.ReviewService.
type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) Open(ctx context.Context, invoiceID uuid.UUID) (*service.ReviewView, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ReviewView), args.Error(1)
}

func (m *MockReviewService) EditHeaderField(ctx context.Context, invoiceID uuid.UUID, field, value string) (*service.ReviewView, error) {
	args := m.Called(ctx, invoiceID, field, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ReviewView), args.Error(1)
}

func (m *MockReviewService) EditRowField(ctx context.Context, invoiceID, rowID uuid.UUID, field, value string) (*service.ReviewView, error) {
	args := m.Called(ctx, invoiceID, rowID, field, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ReviewView), args.Error(1)
}

func (m *MockReviewService) AddRow(ctx context.Context, invoiceID uuid.UUID) (*service.ReviewView, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ReviewView), args.Error(1)
}

func (m *MockReviewService) Update(ctx context.Context, invoiceID uuid.UUID) (*service.ReviewView, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ReviewView), args.Error(1)
}

func (m *MockReviewService) Submit(ctx context.Context, invoiceID uuid.UUID) (*service.ReviewView, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ReviewView), args.Error(1)
}

func (m *MockReviewService) Action(ctx context.Context, invoiceID uuid.UUID, input port.ActionInput) error {
	args := m.Called(ctx, invoiceID, input)
	return args.Error(0)
}
