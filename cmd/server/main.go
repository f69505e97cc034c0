package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	httpAdapter "github.com/iho/gojournal/internal/adapter/http"
	"github.com/iho/gojournal/internal/adapter/http/handler"
	"github.com/iho/gojournal/internal/adapter/http/middleware"
	"github.com/iho/gojournal/internal/adapter/repository/memory"
	postgresRepo "github.com/iho/gojournal/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/gojournal/internal/adapter/repository/redis"
	"github.com/iho/gojournal/internal/infrastructure/config"
	"github.com/iho/gojournal/internal/infrastructure/eventpublisher"
	"github.com/iho/gojournal/internal/infrastructure/logger"
	"github.com/iho/gojournal/internal/infrastructure/metrics"
	"github.com/iho/gojournal/internal/infrastructure/postgres"
	"github.com/iho/gojournal/internal/infrastructure/redis"
	"github.com/iho/gojournal/internal/usecase"
)

const (
	rateLimitCleanupInterval = 10 * time.Minute
	rateLimitMaxIdle         = time.Hour
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: os.Stderr,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}

// storage is the set of repositories behind one storage driver.
type storage struct {
	txManager   usecase.TransactionManager
	accounts    usecase.AccountRepository
	entries     usecase.EntryRepository
	balances    usecase.BalanceRepository
	idempotency usecase.IdempotencyRepository
	outbox      usecase.OutboxRepository
	ledger      usecase.LedgerRepository
	retrier     usecase.Retrier
	checks      map[string]handler.HealthCheck
	close       func()
}

func newStorage(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*storage, error) {
	if cfg.StorageDriver == config.StorageMemory {
		log.Warn().Msg("using in-memory storage; data is lost on restart")
		store := memory.NewStore()
		return &storage{
			txManager:   store,
			accounts:    memory.NewAccountRepository(store),
			entries:     memory.NewEntryRepository(store),
			balances:    memory.NewBalanceRepository(store),
			idempotency: memory.NewIdempotencyRepository(store),
			outbox:      outboxOrNull(cfg, memory.NewOutboxRepository(store)),
			ledger:      memory.NewLedgerRepository(store),
			checks:      map[string]handler.HealthCheck{},
			close:       func() {},
		}, nil
	}

	if cfg.RunMigrations {
		if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, log); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}

	pool, err := postgres.NewPoolWithConfig(ctx, postgres.PoolConfig{
		DatabaseURL:    cfg.DatabaseURL,
		MaxConns:       cfg.DatabaseMaxConns,
		MinConns:       cfg.DatabaseMinConns,
		ConnectTimeout: cfg.DatabaseTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	log.Info().Msg("connected to postgres")

	return &storage{
		txManager:   postgresRepo.NewTxManager(pool),
		accounts:    postgresRepo.NewAccountRepository(pool),
		entries:     postgresRepo.NewEntryRepository(pool),
		balances:    postgresRepo.NewBalanceRepository(pool),
		idempotency: postgresRepo.NewIdempotencyRepository(pool),
		outbox:      outboxOrNull(cfg, postgresRepo.NewOutboxRepository(pool)),
		ledger:      postgresRepo.NewLedgerRepository(pool),
		retrier: postgresRepo.NewRetrier(postgresRepo.RetryPolicy{
			MaxRetries:      cfg.RetryMaxAttempts,
			InitialInterval: cfg.RetryInitialInterval,
			MaxInterval:     cfg.RetryMaxInterval,
		}, logger.Component(log, "retrier")),
		checks: map[string]handler.HealthCheck{
			"postgres": pool.Ping,
		},
		close: pool.Close,
	}, nil
}

func outboxOrNull(cfg *config.Config, repo usecase.OutboxRepository) usecase.OutboxRepository {
	if !cfg.OutboxEnabled {
		return postgresRepo.NewNullOutboxRepository()
	}
	return repo
}

// newPublisher picks Kafka when brokers are configured and the log otherwise.
func newPublisher(cfg *config.Config, log zerolog.Logger) (eventpublisher.Publisher, func() error) {
	if len(cfg.KafkaBrokers) == 0 {
		return eventpublisher.NewLogPublisher(log), func() error { return nil }
	}
	p := eventpublisher.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
	return p, p.Close
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	store, err := newStorage(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer store.close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	opts := []usecase.Option{usecase.WithMetrics(m)}
	if store.retrier != nil {
		opts = append(opts, usecase.WithRetrier(store.retrier))
	}

	if cfg.RedisURL != "" {
		client, err := redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("connect to redis: %w", err)
		}
		defer client.Close()
		log.Info().Msg("connected to redis")

		opts = append(opts,
			usecase.WithAccountCache(redisRepo.NewAccountCache(client, cfg.AccountCacheTTL)),
			usecase.WithIdempotencyCache(redisRepo.NewIdempotencyCache(client, cfg.IdempotencyTTL)),
		)
		store.checks["redis"] = redis.HealthCheck(client)
	}

	idGen := postgresRepo.NewULIDGenerator()

	accountUC := usecase.NewAccountUseCase(store.txManager, store.accounts, store.outbox, idGen, opts...)
	postingUC := usecase.NewPostingUseCase(store.txManager, store.accounts, store.entries, store.balances,
		store.idempotency, store.outbox, idGen, opts...)
	balanceUC := usecase.NewBalanceUseCase(store.txManager, store.accounts, store.entries, store.balances, opts...)
	reconUC := usecase.NewReconciliationUseCase(store.txManager, store.accounts, store.entries, store.balances, store.ledger)
	reportUC := usecase.NewReportUseCase(store.txManager, store.accounts, store.entries, opts...)
	entryUC := usecase.NewEntryUseCase(store.txManager, store.entries)

	var rl *middleware.RateLimiter
	if cfg.RateLimitRPS > 0 {
		rl = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst).WithHitCounter(m.RateLimitHits)
		go rl.RunCleanup(ctx, rateLimitCleanupInterval, rateLimitMaxIdle)
	}

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AccountHandler:     handler.NewAccountHandler(accountUC, balanceUC),
		TransactionHandler: handler.NewTransactionHandler(postingUC),
		EntryHandler:       handler.NewEntryHandler(entryUC),
		ReportHandler:      handler.NewReportHandler(reportUC),
		LedgerHandler:      handler.NewLedgerHandler(reconUC),
		HealthHandler:      handler.NewHealthHandler(store.checks),
		Logger:             logger.Component(log, "http"),
		Metrics:            m,
		MetricsHandler:     promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		RateLimiter:        rl,
	})

	if cfg.OutboxEnabled {
		outboxLog := logger.Component(log, "outbox")
		publisher, closePublisher := newPublisher(cfg, outboxLog)
		defer closePublisher()

		worker := eventpublisher.NewEventPublisher(eventpublisher.Config{
			OutboxRepo: store.outbox,
			Publisher:  publisher,
			Recorder:   m,
			Logger:     outboxLog,
			BatchSize:  cfg.OutboxBatchSize,
			Interval:   cfg.OutboxInterval,
			Retention:  cfg.OutboxRetention,
		})
		go func() {
			if err := worker.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error().Err(err).Msg("event publisher stopped")
			}
		}()
	}

	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Str("storage", cfg.StorageDriver).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info().Msg("server stopped")
	return nil
}
