package aggregator

import (
	"context"
	"errors"

	"github.com/Domenick1991/airbooking-gateway/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const defaultEnrichmentLimit = 8

// AggregatorUseCase serves the read side of the gateway. Only the primary
// resource of a call can fail it; lookups that merely enrich a response
// fall back to empty values.
type AggregatorUseCase interface {
	Profile(ctx context.Context, p domain.Principal) (*domain.UserProfile, error)
	Tickets(ctx context.Context, p domain.Principal) ([]domain.TicketView, error)
	Ticket(ctx context.Context, p domain.Principal, uid string) (*domain.TicketView, error)
	Privilege(ctx context.Context, p domain.Principal) (*domain.Privilege, error)
	Health(ctx context.Context) domain.HealthReport
}

type FlightReader interface {
	GetByNumber(ctx context.Context, number string) (*domain.Flight, error)
}

type TicketReader interface {
	List(ctx context.Context, p domain.Principal) ([]domain.Ticket, error)
	Get(ctx context.Context, p domain.Principal, uid string) (*domain.Ticket, error)
}

type PrivilegeReader interface {
	GetPrivilege(ctx context.Context, p domain.Principal) (*domain.Privilege, error)
}

type HealthChecker interface {
	Health(ctx context.Context) error
	BaseURL() string
}

// Dependency is a backing service reported by the health endpoint. Key is
// used in the services map, Name in the failed list.
type Dependency struct {
	Key     string
	Name    string
	Checker HealthChecker
}

// Dependencies returns the three backing services in reporting order.
func Dependencies(flight, ticket, bonus HealthChecker) []Dependency {
	return []Dependency{
		{Key: "flight_service", Name: "Flight Service", Checker: flight},
		{Key: "ticket_service", Name: "Ticket Service", Checker: ticket},
		{Key: "bonus_service", Name: "Bonus Service", Checker: bonus},
	}
}

type AggregatorService struct {
	flights      FlightReader
	tickets      TicketReader
	bonus        PrivilegeReader
	dependencies []Dependency
	limit        int
	logger       *zap.Logger
}

type Option func(*AggregatorService)

// WithEnrichmentLimit bounds concurrent flight lookups per request.
func WithEnrichmentLimit(n int) Option {
	return func(s *AggregatorService) {
		if n > 0 {
			s.limit = n
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *AggregatorService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func NewAggregatorService(
	flights FlightReader,
	tickets TicketReader,
	bonus PrivilegeReader,
	dependencies []Dependency,
	opts ...Option,
) *AggregatorService {
	service := &AggregatorService{
		flights:      flights,
		tickets:      tickets,
		bonus:        bonus,
		dependencies: dependencies,
		limit:        defaultEnrichmentLimit,
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// Profile never fails: a broken ticket list becomes [] and a broken
// privilege read becomes the default tier with zero balance.
func (s *AggregatorService) Profile(ctx context.Context, p domain.Principal) (*domain.UserProfile, error) {
	profile := &domain.UserProfile{
		Tickets:   []domain.TicketView{},
		Privilege: domain.DefaultPrivilegeInfo(),
	}

	var g errgroup.Group
	g.Go(func() error {
		views, err := s.Tickets(ctx, p)
		if err != nil {
			s.logger.Warn("profile: ticket list unavailable", zap.String("username", p.Username), zap.Error(err))
			return nil
		}
		profile.Tickets = views
		return nil
	})
	g.Go(func() error {
		privilege, err := s.bonus.GetPrivilege(ctx, p)
		if err != nil {
			s.logger.Warn("profile: privilege unavailable", zap.String("username", p.Username), zap.Error(err))
			return nil
		}
		profile.Privilege = privilege.Info()
		return nil
	})
	_ = g.Wait()

	return profile, nil
}

func (s *AggregatorService) Tickets(ctx context.Context, p domain.Principal) ([]domain.TicketView, error) {
	tickets, err := s.tickets.List(ctx, p)
	if err != nil {
		return nil, err
	}

	numbers := make([]string, 0, len(tickets))
	for _, t := range tickets {
		numbers = append(numbers, t.FlightNumber)
	}
	flights := s.lookupFlights(ctx, numbers)

	views := make([]domain.TicketView, 0, len(tickets))
	for _, t := range tickets {
		views = append(views, domain.NewTicketView(t, flights[t.FlightNumber]))
	}
	return views, nil
}

func (s *AggregatorService) Ticket(ctx context.Context, p domain.Principal, uid string) (*domain.TicketView, error) {
	ticket, err := s.tickets.Get(ctx, p, uid)
	if err != nil {
		return nil, err
	}

	flights := s.lookupFlights(ctx, []string{ticket.FlightNumber})
	view := domain.NewTicketView(*ticket, flights[ticket.FlightNumber])
	return &view, nil
}

func (s *AggregatorService) Privilege(ctx context.Context, p domain.Principal) (*domain.Privilege, error) {
	return s.bonus.GetPrivilege(ctx, p)
}

// Health probes every dependency concurrently. Failed services are listed
// in dependency order regardless of which probe finished first.
func (s *AggregatorService) Health(ctx context.Context) domain.HealthReport {
	healthy := make([]bool, len(s.dependencies))

	var g errgroup.Group
	for i, dep := range s.dependencies {
		g.Go(func() error {
			if err := dep.Checker.Health(ctx); err != nil {
				s.logger.Warn("health check failed", zap.String("service", dep.Name), zap.Error(err))
				return nil
			}
			healthy[i] = true
			return nil
		})
	}
	_ = g.Wait()

	report := domain.HealthReport{
		Status:   domain.HealthOK,
		Services: make(map[string]string, len(s.dependencies)),
	}
	for i, dep := range s.dependencies {
		report.Services[dep.Key] = dep.Checker.BaseURL()
		if !healthy[i] {
			report.FailedServices = append(report.FailedServices, dep.Name)
		}
	}
	if len(report.FailedServices) > 0 {
		report.Status = domain.HealthDegraded
	}
	return report
}

// lookupFlights fetches each distinct flight once. Missing or failed
// lookups are absent from the result.
func (s *AggregatorService) lookupFlights(ctx context.Context, numbers []string) map[string]*domain.Flight {
	unique := make([]string, 0, len(numbers))
	seen := make(map[string]struct{}, len(numbers))
	for _, n := range numbers {
		if _, ok := seen[n]; ok || n == "" {
			continue
		}
		seen[n] = struct{}{}
		unique = append(unique, n)
	}

	found := make([]*domain.Flight, len(unique))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.limit)
	for i, number := range unique {
		g.Go(func() error {
			flight, err := s.flights.GetByNumber(gctx, number)
			if err != nil {
				if !errors.Is(err, domain.ErrFlightNotFound) {
					s.logger.Warn("flight enrichment failed", zap.String("flight_number", number), zap.Error(err))
				}
				return nil
			}
			found[i] = flight
			return nil
		})
	}
	_ = g.Wait()

	result := make(map[string]*domain.Flight, len(unique))
	for i, number := range unique {
		if found[i] != nil {
			result[number] = found[i]
		}
	}
	return result
}

var _ AggregatorUseCase = (*AggregatorService)(nil)
