package saga

import (
	"context"
	"time"

	"github.com/Domenick1991/airbooking-gateway/internal/domain"
	"github.com/Domenick1991/airbooking-gateway/internal/kafka"
	"go.uber.org/zap"
)

// SagaUseCase runs the write flows that span the Ticket and Bonus
// services. There is no distributed transaction: once a ticket is created
// or cancelled the flow runs to the end and bonus failures are absorbed.
type SagaUseCase interface {
	Purchase(ctx context.Context, p domain.Principal, req domain.PurchaseRequest) (*domain.PurchaseOutcome, error)
	Refund(ctx context.Context, p domain.Principal, ticketUID string) error
}

type FlightReader interface {
	GetByNumber(ctx context.Context, number string) (*domain.Flight, error)
}

type TicketStore interface {
	Get(ctx context.Context, p domain.Principal, uid string) (*domain.Ticket, error)
	Create(ctx context.Context, p domain.Principal, in domain.CreateTicketInput) (*domain.Ticket, error)
	Cancel(ctx context.Context, p domain.Principal, uid string) error
}

type BonusLedger interface {
	GetPrivilege(ctx context.Context, p domain.Principal) (*domain.Privilege, error)
	ApplyDelta(ctx context.Context, p domain.Principal, delta domain.BalanceDelta) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type SagaService struct {
	flights  FlightReader
	tickets  TicketStore
	bonus    BonusLedger
	producer Producer
	topic    string
	logger   *zap.Logger
	now      func() time.Time
}

type Option func(*SagaService)

// WithProducer enables saga events on topic.
func WithProducer(producer Producer, topic string) Option {
	return func(s *SagaService) {
		s.producer = producer
		s.topic = topic
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *SagaService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *SagaService) {
		s.now = now
	}
}

func NewSagaService(flights FlightReader, tickets TicketStore, bonus BonusLedger, opts ...Option) *SagaService {
	service := &SagaService{
		flights: flights,
		tickets: tickets,
		bonus:   bonus,
		logger:  zap.NewNop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// publish is best effort: the saga has already committed.
func (s *SagaService) publish(ctx context.Context, event kafka.SagaEvent) {
	if s.producer == nil || s.topic == "" {
		return
	}
	event.OccurredAt = s.now().UTC()
	if err := s.producer.Publish(ctx, s.topic, event.TicketUID, event); err != nil {
		s.logger.Warn("failed to publish saga event",
			zap.String("type", event.Type),
			zap.String("ticket_uid", event.TicketUID),
			zap.Error(err),
		)
	}
}

var _ SagaUseCase = (*SagaService)(nil)
