package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/Domenick1991/airbooking-gateway/api"
	"github.com/Domenick1991/airbooking-gateway/config"
	"github.com/Domenick1991/airbooking-gateway/internal/middleware"
	"github.com/Domenick1991/airbooking-gateway/internal/service/aggregator"
	"github.com/Domenick1991/airbooking-gateway/internal/service/flights"
	"github.com/Domenick1991/airbooking-gateway/internal/service/saga"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Services are the use cases served over HTTP.
type Services struct {
	Flights    flights.FlightUseCase
	Aggregator aggregator.AggregatorUseCase
	Sagas      saga.SagaUseCase
}

// Run starts the HTTP server and blocks until ctx is cancelled or the
// server fails. In-flight requests get cfg.HTTP.ShutdownTimeout to finish.
func Run(ctx context.Context, cfg *config.Config, logger *zap.Logger, svc Services) error {
	srv := &http.Server{
		Addr:         cfg.HTTP.Address,
		Handler:      NewRouter(cfg, logger, svc),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server started", zap.String("address", cfg.HTTP.Address))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
		logger.Info("shutting down http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

func NewRouter(cfg *config.Config, logger *zap.Logger, svc Services) *gin.Engine {
	if cfg.HTTP.GinMode != "" {
		gin.SetMode(cfg.HTTP.GinMode)
	}

	router := gin.New()
	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(logger),
		middleware.Recovery(logger),
	)
	if len(cfg.HTTP.CORSAllowedOrigins) > 0 {
		router.Use(middleware.CORS(cfg.HTTP.CORSAllowedOrigins))
	}
	if rl := cfg.HTTP.RateLimit; rl.Enabled() {
		router.Use(middleware.RateLimit(middleware.NewRateLimiter(rl.RPS, rl.Burst, rl.TTL)))
	}
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "route not found"})
	})

	api.NewHealthHandler(svc.Aggregator).Register(router.Group("/manage"))

	v1 := router.Group("/api/v1")
	api.NewFlightHandler(svc.Flights).Register(v1.Group("/flights"))
	api.NewTicketHandler(svc.Aggregator, svc.Sagas).Register(v1.Group("/tickets"))
	api.NewUserHandler(svc.Aggregator).Register(v1)

	return router
}
