package flights

import (
	"context"

	"github.com/Domenick1991/airbooking-gateway/internal/domain"
	"go.uber.org/zap"
)

const (
	DefaultPage = 1
	DefaultSize = 10
	MaxPageSize = 100
)

type FlightUseCase interface {
	List(ctx context.Context, page, size int) (*domain.FlightPage, error)
	GetByNumber(ctx context.Context, number string) (*domain.Flight, error)
}

// FlightCatalog is the Flight service as seen by the gateway.
type FlightCatalog interface {
	List(ctx context.Context, page, size int) (*domain.FlightPage, error)
	GetByNumber(ctx context.Context, number string) (*domain.Flight, error)
}

type FlightCache interface {
	GetFlight(ctx context.Context, number string) (*domain.Flight, error)
	SetFlight(ctx context.Context, flight *domain.Flight) error
	GetFlightPage(ctx context.Context, page, size int) (*domain.FlightPage, error)
	SetFlightPage(ctx context.Context, page, size int, result *domain.FlightPage) error
}

// FlightService reads the catalog through an optional cache. Cache errors
// never fail a request.
type FlightService struct {
	catalog FlightCatalog
	cache   FlightCache
	logger  *zap.Logger
}

func NewFlightService(catalog FlightCatalog, cache FlightCache, logger *zap.Logger) *FlightService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FlightService{catalog: catalog, cache: cache, logger: logger}
}

func (s *FlightService) List(ctx context.Context, page, size int) (*domain.FlightPage, error) {
	if err := ValidatePage(page, size); err != nil {
		return nil, err
	}

	if s.cache != nil {
		cached, err := s.cache.GetFlightPage(ctx, page, size)
		if err != nil {
			s.logger.Debug("flight page cache read failed", zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	result, err := s.catalog.List(ctx, page, size)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetFlightPage(ctx, page, size, result); err != nil {
			s.logger.Debug("flight page cache write failed", zap.Error(err))
		}
	}
	return result, nil
}

func (s *FlightService) GetByNumber(ctx context.Context, number string) (*domain.Flight, error) {
	if s.cache != nil {
		cached, err := s.cache.GetFlight(ctx, number)
		if err != nil {
			s.logger.Debug("flight cache read failed", zap.String("flight_number", number), zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	flight, err := s.catalog.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetFlight(ctx, flight); err != nil {
			s.logger.Debug("flight cache write failed", zap.String("flight_number", number), zap.Error(err))
		}
	}
	return flight, nil
}

// ValidatePage rejects pagination the Flight service would silently clamp.
func ValidatePage(page, size int) error {
	var fields []domain.FieldError
	if page < 1 {
		fields = append(fields, domain.FieldError{Field: "page", Description: "page must be >= 1"})
	}
	if size < 1 || size > MaxPageSize {
		fields = append(fields, domain.FieldError{Field: "size", Description: "size must be between 1 and 100"})
	}
	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

var _ FlightUseCase = (*FlightService)(nil)
