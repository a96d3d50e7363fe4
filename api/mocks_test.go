package api

import (
	"context"

	"github.com/Domenick1991/airbooking-gateway/internal/domain"
	"github.com/stretchr/testify/mock"
)

// MockFlightUseCase is a mock implementation of flights.FlightUseCase
type MockFlightUseCase struct {
	mock.Mock
}

func (m *MockFlightUseCase) List(ctx context.Context, page, size int) (*domain.FlightPage, error) {
	args := m.Called(ctx, page, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FlightPage), args.Error(1)
}

func (m *MockFlightUseCase) GetByNumber(ctx context.Context, number string) (*domain.Flight, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

// MockAggregatorUseCase is a mock implementation of aggregator.AggregatorUseCase
type MockAggregatorUseCase struct {
	mock.Mock
}

func (m *MockAggregatorUseCase) Profile(ctx context.Context, p domain.Principal) (*domain.UserProfile, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProfile), args.Error(1)
}

func (m *MockAggregatorUseCase) Tickets(ctx context.Context, p domain.Principal) ([]domain.TicketView, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TicketView), args.Error(1)
}

func (m *MockAggregatorUseCase) Ticket(ctx context.Context, p domain.Principal, uid string) (*domain.TicketView, error) {
	args := m.Called(ctx, p, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TicketView), args.Error(1)
}

func (m *MockAggregatorUseCase) Privilege(ctx context.Context, p domain.Principal) (*domain.Privilege, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Privilege), args.Error(1)
}

func (m *MockAggregatorUseCase) Health(ctx context.Context) domain.HealthReport {
	args := m.Called(ctx)
	return args.Get(0).(domain.HealthReport)
}

// MockSagaUseCase is a mock implementation of saga.SagaUseCase
type MockSagaUseCase struct {
	mock.Mock
}

func (m *MockSagaUseCase) Purchase(ctx context.Context, p domain.Principal, req domain.PurchaseRequest) (*domain.PurchaseOutcome, error) {
	args := m.Called(ctx, p, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PurchaseOutcome), args.Error(1)
}

func (m *MockSagaUseCase) Refund(ctx context.Context, p domain.Principal, ticketUID string) error {
	args := m.Called(ctx, p, ticketUID)
	return args.Error(0)
}
