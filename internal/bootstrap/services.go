package bootstrap

import (
	"context"

	"github.com/Domenick1991/airbooking-gateway/config"
	"github.com/Domenick1991/airbooking-gateway/internal/cache"
	"github.com/Domenick1991/airbooking-gateway/internal/clients"
	"github.com/Domenick1991/airbooking-gateway/internal/kafka"
	"github.com/Domenick1991/airbooking-gateway/internal/service/aggregator"
	"github.com/Domenick1991/airbooking-gateway/internal/service/flights"
	"github.com/Domenick1991/airbooking-gateway/internal/service/saga"
	"go.uber.org/zap"
)

// NewServices wires clients, the optional flight cache and the optional
// saga event producer into the use cases. The returned cleanup releases
// Redis and Kafka connections.
func NewServices(ctx context.Context, cfg *config.Config, logger *zap.Logger) (Services, func()) {
	var closers []func() error

	var flightCache flights.FlightCache
	if cfg.Redis.Enabled() {
		redisCache := cache.NewRedisCache(cfg.Redis)
		if err := redisCache.Ping(ctx); err != nil {
			logger.Warn("redis unavailable, flight cache disabled", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
			_ = redisCache.Close()
		} else {
			flightCache = redisCache
			closers = append(closers, redisCache.Close)
		}
	}

	sagaOpts := []saga.Option{saga.WithLogger(logger)}
	if cfg.Kafka.Enabled() {
		producer := kafka.NewProducer(cfg.Kafka.Brokers, logger)
		if err := producer.CheckConnection(ctx); err != nil {
			// publishing is best effort, keep the producer for when Kafka comes back
			logger.Warn("kafka unavailable", zap.Strings("brokers", cfg.Kafka.Brokers), zap.Error(err))
		}
		closers = append(closers, producer.Close)
		sagaOpts = append(sagaOpts, saga.WithProducer(producer, cfg.Kafka.SagaEventsTopic))
	}

	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				logger.Warn("close failed", zap.Error(err))
			}
		}
	}

	return assembleServices(cfg, logger, flightCache, sagaOpts...), cleanup
}

// assembleServices builds the use cases over the backing service clients.
// Reads for display go through the flight cache when there is one; the
// sagas always ask the Flight service so a sale is checked against the
// live catalog.
func assembleServices(cfg *config.Config, logger *zap.Logger, flightCache flights.FlightCache, sagaOpts ...saga.Option) Services {
	timeout := cfg.Services.RequestTimeout
	flightClient := clients.NewFlightClient(cfg.Services.FlightURL, timeout)
	ticketClient := clients.NewTicketClient(cfg.Services.TicketURL, timeout)
	bonusClient := clients.NewBonusClient(cfg.Services.BonusURL, timeout)

	flightService := flights.NewFlightService(flightClient, flightCache, logger)
	aggregatorService := aggregator.NewAggregatorService(
		flightService,
		ticketClient,
		bonusClient,
		aggregator.Dependencies(flightClient, ticketClient, bonusClient),
		aggregator.WithEnrichmentLimit(cfg.Aggregator.EnrichmentConcurrency),
		aggregator.WithLogger(logger),
	)
	sagaService := saga.NewSagaService(flightClient, ticketClient, bonusClient, sagaOpts...)

	return Services{
		Flights:    flightService,
		Aggregator: aggregatorService,
		Sagas:      sagaService,
	}
}
