package saga

import (
	"context"

	"github.com/Domenick1991/airbooking-gateway/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockFlightReader struct {
	mock.Mock
}

func (m *MockFlightReader) GetByNumber(ctx context.Context, number string) (*domain.Flight, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

type MockTicketStore struct {
	mock.Mock
}

func (m *MockTicketStore) Get(ctx context.Context, p domain.Principal, uid string) (*domain.Ticket, error) {
	args := m.Called(ctx, p, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ticket), args.Error(1)
}

func (m *MockTicketStore) Create(ctx context.Context, p domain.Principal, in domain.CreateTicketInput) (*domain.Ticket, error) {
	args := m.Called(ctx, p, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ticket), args.Error(1)
}

func (m *MockTicketStore) Cancel(ctx context.Context, p domain.Principal, uid string) error {
	args := m.Called(ctx, p, uid)
	return args.Error(0)
}

type MockBonusLedger struct {
	mock.Mock
}

func (m *MockBonusLedger) GetPrivilege(ctx context.Context, p domain.Principal) (*domain.Privilege, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Privilege), args.Error(1)
}

func (m *MockBonusLedger) ApplyDelta(ctx context.Context, p domain.Principal, delta domain.BalanceDelta) error {
	args := m.Called(ctx, p, delta)
	return args.Error(0)
}

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) Publish(ctx context.Context, topic, key string, value interface{}) error {
	args := m.Called(ctx, topic, key, value)
	return args.Error(0)
}
