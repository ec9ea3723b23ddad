package server

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	r "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/jamkick/jamkick/pkg/aggregator"
	"github.com/jamkick/jamkick/pkg/api"
	"github.com/jamkick/jamkick/pkg/cache"
	"github.com/jamkick/jamkick/pkg/events"
	"github.com/jamkick/jamkick/pkg/history"
	"github.com/jamkick/jamkick/pkg/observability"
)

// Server wires the aggregation pipeline to its API surface
type Server struct {
	log    logrus.FieldLogger
	config *Config

	redis *r.Client
	api   api.Service
}

// NewServer creates a new server instance
func NewServer(log logrus.FieldLogger, config *Config) (*Server, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	redisClient, err := config.Redis.NewClient()
	if err != nil {
		return nil, fmt.Errorf("failed to create redis client: %w", err)
	}

	cacheGateway := cache.New(redisClient, log)
	historyClient := history.NewClient(&config.History, log)
	eventsClient := events.NewClient(&config.Events, log)

	aggregatorService := aggregator.NewService(&config.Aggregator, cacheGateway, historyClient, eventsClient, log)

	return &Server{
		log:    log,
		config: config,
		redis:  redisClient,
		api:    api.NewService(&config.API, aggregatorService, log),
	}, nil
}

// Start starts the server and blocks until shutdown
func (s *Server) Start(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	observability.StartMetricsServer(s.config.MetricsAddr)

	if err := s.api.Start(ctx); err != nil {
		return fmt.Errorf("failed to start API service: %w", err)
	}

	// Wait for shutdown signal
	g.Go(func() error {
		<-ctx.Done()

		// Use a fresh context for cleanup since the current one is canceled
		return s.stop(context.Background())
	})

	return g.Wait()
}

func (s *Server) stop(_ context.Context) error {
	s.log.Info("Starting graceful shutdown...")

	if err := s.api.Stop(); err != nil {
		s.log.WithError(err).Error("failed to stop API service")
	}

	if s.redis != nil {
		s.log.Info("Closing Redis connection...")

		if err := s.redis.Close(); err != nil {
			s.log.WithError(err).Error("failed to close redis")
		}
	}

	s.log.Info("Shutdown complete")

	return nil
}
