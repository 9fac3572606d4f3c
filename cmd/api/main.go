package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hostelhunt/internal/api"
	"hostelhunt/internal/config"
	"hostelhunt/internal/database"
	"hostelhunt/internal/domain"
	"hostelhunt/internal/events"
	"hostelhunt/internal/logging"
	"hostelhunt/internal/metrics"
	"hostelhunt/internal/models"
	"hostelhunt/internal/repository"
	"hostelhunt/internal/service"
	"hostelhunt/internal/store"
	"hostelhunt/internal/worker"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	cfg, logger, closer, err := loadConfigAndLogger()
	if err != nil {
		return err
	}
	if closer != nil {
		defer (func() { _ = closer.Close() })()
	}

	seed, err := loadSeed(logger)
	if err != nil {
		return err
	}

	db, err := initDatabase(cfg, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	redisClient := initRedis(ctx, cfg, logger)
	if redisClient != nil {
		defer repository.Close(redisClient)
	}
	slots, checks := initSlotStore(cfg, db, redisClient, logger)

	bus := initEventBus(logger)

	users := store.NewCollection[models.User](db, models.KeyUsers, logging.Component(logger, "store"))
	hostels := store.NewCollection[models.Hostel](db, models.KeyHostels, logging.Component(logger, "store"))
	bookings := store.NewCollection[models.Booking](db, models.KeyBookings, logging.Component(logger, "store"))
	sessions := service.NewSessionService(slots, logging.Component(logger, "sessions"))

	seeder := service.NewSeeder(users, hostels, bookings, seed, logging.Component(logger, "seeder"))
	if err := seeder.EnsureSeeded(ctx); err != nil {
		logger.Error().Err(err).Msg("seed records")
		return err
	}
	if keys, err := db.Keys(ctx, "hh_"); err == nil {
		logger.Info().Int("records", len(keys)).Str("db_path", db.Path()).Msg("record store ready")
	}

	httpServer, err := api.NewHTTPServer(cfg.API, api.Services{
		Account:  service.NewAccountService(users, sessions, bus, logging.Component(logger, "account")),
		Catalog:  service.NewCatalogService(hostels, sessions, bus, logging.Component(logger, "catalog")),
		Owner:    service.NewOwnerService(hostels, bus, cfg.Catalog, logging.Component(logger, "owner")),
		Booking:  service.NewBookingService(bookings, sessions, bus, logging.Component(logger, "booking")),
		Admin:    service.NewAdminService(users, hostels, bookings, bus, logging.Component(logger, "admin")),
		Sessions: sessions,
		Checks:   checks,
	}, logging.Component(logger, "http"))
	if err != nil {
		logger.Error().Err(err).Msg("create http server")
		return err
	}

	if cfg.Backup.Enabled {
		backups := database.NewBackupService(db, cfg.Backup, logging.Component(logger, "backup"))
		go backups.Start(ctx)
	}

	startMetrics(ctx, cfg, logger)

	return startServer(ctx, httpServer, cfg, logger)
}

func loadConfigAndLogger() (*config.Config, *zerolog.Logger, io.Closer, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}

	baseLogger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("init logger: %w", err)
	}

	return cfg, logging.Component(baseLogger, "api-main"), closer, nil
}

func loadSeed(logger *zerolog.Logger) (service.SeedData, error) {
	seedPath := os.Getenv("SEED_PATH")
	if seedPath == "" {
		seedPath = "configs/seed.yaml"
	}

	seed, err := service.LoadSeed(seedPath)
	if err != nil {
		logger.Error().Err(err).Str("seed_path", seedPath).Msg("load seed")
		return service.SeedData{}, err
	}
	return seed, nil
}

func initDatabase(cfg *config.Config, logger *zerolog.Logger) (*database.DB, error) {
	db, err := database.NewDB(cfg.Database.Path, logging.Component(logger, "database"))
	if err != nil {
		logger.Error().Err(err).Str("db_path", cfg.Database.Path).Msg("init database")
		return nil, err
	}
	return db, nil
}

// initRedis connects with retries and returns nil when Redis is not configured or unreachable.
func initRedis(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) *redis.Client {
	if cfg.Redis.Address == "" {
		return nil
	}

	redisClient := repository.NewRedisClient(cfg.Redis)
	policy := worker.RetryPolicy{
		MaxRetries:    cfg.Redis.ConnectAttempts - 1,
		InitialDelay:  500 * time.Millisecond,
		MaxDelay:      5 * time.Second,
		BackoffFactor: 2,
	}

	err := worker.Retry(ctx, policy, func(ctx context.Context) error {
		return repository.Ping(ctx, redisClient)
	}, func(attempt int, err error) {
		logger.Warn().Err(err).Int("attempt", attempt).Msg("redis not ready, retrying")
	})
	if err != nil {
		logger.Warn().Err(err).Msg("redis connection failed, continuing without redis")
		_ = repository.Close(redisClient)
		return nil
	}

	logger.Info().Str("addr", cfg.Redis.Address).Msg("redis connected")
	return redisClient
}

// initSlotStore keeps client slots in Redis with a memory fallback, or in SQLite without Redis.
func initSlotStore(cfg *config.Config, db *database.DB, redisClient *redis.Client, logger *zerolog.Logger) (domain.KVStore, map[string]domain.Pinger) {
	checks := map[string]domain.Pinger{"database": db}
	if redisClient == nil {
		return db, checks
	}

	ttl := time.Duration(cfg.Redis.StateTTL) * time.Second
	primary := repository.NewRedisStore(redisClient, cfg.App.Name+":", ttl)
	slots := repository.NewFailoverStore(primary, repository.NewMemoryStore(), logging.Component(logger, "slots"))
	checks["redis"] = slots

	return slots, checks
}

func initEventBus(logger *zerolog.Logger) *events.EventBus {
	bus := events.NewEventBus()
	eventLogger := logging.Component(logger, "events")
	bus.SubscribeAll(func(event *events.Event) error {
		metrics.IncEvent(event.Type)
		eventLogger.Info().
			Int64("event_id", event.ID).
			Str("type", event.Type).
			RawJSON("payload", event.Payload).
			Msg("domain event")
		return nil
	})

	audit := func(event *events.Event) error {
		eventLogger.Warn().Str("type", event.Type).RawJSON("payload", event.Payload).Msg("admin removed record")
		return nil
	}
	bus.Subscribe(events.EventUserDeleted, audit)
	bus.Subscribe(events.EventHostelDeleted, audit)
	return bus
}

func startMetrics(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) {
	if !cfg.Monitoring.PrometheusEnabled {
		return
	}

	metrics.Register()
	port := cfg.Monitoring.PrometheusPort
	if port == 0 {
		port = 9090
	}
	go startMetricsServer(ctx, port, logger)
}

func startServer(ctx context.Context, httpServer *api.HTTPServer, cfg *config.Config, logger *zerolog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.Start()
	}()

	logger.Info().Int("http_port", cfg.API.HTTP.Port).Bool("enforce_roles", cfg.API.EnforceRoles).Msg("hostelhunt started")

	select {
	case <-ctx.Done():
		logger.Info().Msg("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			logger.Error().Err(err).Msg("http server stopped")
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown")
	}

	logger.Info().Msg("hostelhunt stopped")
	return nil
}

func startMetricsServer(ctx context.Context, port int, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctxShutdown)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("metrics server error")
	}
}
