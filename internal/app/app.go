package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/utafrali/finsearch/internal/config"
	"github.com/utafrali/finsearch/internal/event"
	"github.com/utafrali/finsearch/internal/export"
	"github.com/utafrali/finsearch/internal/findologic"
	handler "github.com/utafrali/finsearch/internal/handler/http"
	"github.com/utafrali/finsearch/internal/repository/postgres"
	"github.com/utafrali/finsearch/internal/search"
	"github.com/utafrali/finsearch/internal/settings"
	"github.com/utafrali/finsearch/pkg/database"
	"github.com/utafrali/finsearch/pkg/health"
	"github.com/utafrali/finsearch/pkg/httpclient"
	pkgkafka "github.com/utafrali/finsearch/pkg/kafka"
)

// App wires together all dependencies and runs the finsearch service.
type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	pool       *pgxpool.Pool
	redis      *redis.Client
	producer   *pkgkafka.Producer
	consumer   *pkgkafka.Consumer
	httpServer *http.Server
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize PostgreSQL connection pool.
	pgCfg := cfg.PostgresConfig()
	pool, err := database.NewPostgresPoolWithLogger(ctx, &pgCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	logger.Info("connected to PostgreSQL",
		slog.String("host", pgCfg.Host),
		slog.Int("port", pgCfg.Port),
		slog.String("database", pgCfg.DBName),
	)

	// Initialize Redis for the settings cache. A missing Redis only disables
	// caching; the service stays up.
	redisClient, err := database.NewRedisClient(ctx, cfg.RedisConfig())
	if err != nil {
		logger.Warn("redis unavailable, settings caching disabled",
			slog.String("error", err.Error()),
		)
		redisClient = nil
	} else {
		logger.Info("connected to Redis", slog.String("addr", cfg.RedisConfig().Addr()))
	}

	// Initialize Kafka producer.
	kafkaCfg := pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers)
	producer := pkgkafka.NewProducer(kafkaCfg, logger)
	logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))

	// Build the dependency graph.
	catalogRepo := postgres.NewCatalogRepository(pool)
	settingsRepo := postgres.NewSettingsRepository(pool)
	settingsProvider := settings.NewProvider(settingsRepo, redisClient, cfg.SettingsCacheTTL, logger)

	eventProducer := event.NewProducer(producer, logger)
	exportService := export.NewService(
		catalogRepo,
		export.NewEligibilityFilter(cfg.HideNoInStock),
		eventProducer,
		logger,
	)

	httpCfg := httpclient.DefaultConfig()
	httpCfg.Timeout = cfg.FindologicTimeout
	findologicClient := findologic.NewClient(cfg.FindologicBaseURL, httpclient.New(httpCfg), logger)
	searchService := search.NewService(catalogRepo, settingsProvider, findologicClient, logger)

	// Kafka consumer for settings invalidation events.
	settingsConsumer := event.NewSettingsConsumer(settingsProvider, logger)
	consumerCfg := pkgkafka.ConsumerConfig{
		Brokers:  cfg.KafkaBrokers,
		GroupID:  cfg.KafkaGroupID,
		Topic:    event.TopicSettingsUpdated,
		MinBytes: 1,
		MaxBytes: 10e6, // 10 MB
	}
	consumer := pkgkafka.NewConsumer(consumerCfg, settingsConsumer.Handle, logger)
	logger.Info("kafka consumer initialized",
		slog.Any("brokers", cfg.KafkaBrokers),
		slog.String("topic", event.TopicSettingsUpdated),
	)

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.Register("postgres", func(ctx context.Context) error {
		return pool.Ping(ctx)
	})
	if redisClient != nil {
		healthHandler.Register("redis", func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		})
	}
	healthHandler.Register("kafka", func(ctx context.Context) error {
		return pkgkafka.PingBrokers(ctx, cfg.KafkaBrokers)
	})

	// HTTP router.
	router := handler.NewRouter(exportService, searchService, healthHandler, handler.RouterConfig{
		BaseCategoryID: cfg.BaseCategoryID,
		DefaultShopID:  cfg.DefaultShopID,
		Environment:    cfg.Environment,
	}, logger)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:        cfg,
		logger:     logger,
		pool:       pool,
		redis:      redisClient,
		producer:   producer,
		consumer:   consumer,
		httpServer: httpServer,
	}, nil
}

// Run starts the HTTP server and Kafka consumer, blocking until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 2)

	go func() {
		if err := a.consumer.Start(ctx); err != nil {
			errCh <- fmt.Errorf("kafka consumer: %w", err)
		}
	}()

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	var errs []error

	// Graceful HTTP server shutdown with a 10-second deadline.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	if err := a.consumer.Close(); err != nil {
		a.logger.Error("kafka consumer close error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	if err := a.producer.Close(); err != nil {
		a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Error("redis close error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	a.pool.Close()

	a.logger.Info("application shutdown complete")
	return errors.Join(errs...)
}
