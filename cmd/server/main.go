package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	"github.com/paymint/paymint/internal/adapter/fraud"
	httpAdapter "github.com/paymint/paymint/internal/adapter/http"
	"github.com/paymint/paymint/internal/adapter/http/handler"
	"github.com/paymint/paymint/internal/adapter/repository/memory"
	postgresRepo "github.com/paymint/paymint/internal/adapter/repository/postgres"
	redisRepo "github.com/paymint/paymint/internal/adapter/repository/redis"
	"github.com/paymint/paymint/internal/infrastructure/auth"
	"github.com/paymint/paymint/internal/infrastructure/config"
	"github.com/paymint/paymint/internal/infrastructure/logger"
	"github.com/paymint/paymint/internal/infrastructure/metrics"
	"github.com/paymint/paymint/internal/infrastructure/postgres"
	"github.com/paymint/paymint/internal/infrastructure/redis"
	"github.com/paymint/paymint/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	log.Logger = logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx := context.Background()

	var (
		accountRepo usecase.AccountRepository
		ledgerRepo  usecase.LedgerRepository
		txManager   usecase.TransactionManager
		checks      []handler.ReadinessCheck
		retrier     *postgresRepo.Retrier
	)

	switch cfg.StorageDriver {
	case "memory":
		store := memory.NewStore()
		accountRepo = memory.NewAccountRepository(store)
		ledgerRepo = memory.NewLedgerRepository(store)
		txManager = memory.NewTxManager(store)
		log.Info().Msg("using in-memory storage")

	case "postgres":
		pool, err := postgres.NewPool(ctx, postgres.PoolConfig{
			DatabaseURL: cfg.DatabaseURL,
			MaxConns:    cfg.DatabaseMaxConns,
			MinConns:    cfg.DatabaseMinConns,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to postgres")
		}
		defer pool.Close()
		log.Info().Msg("connected to postgres")

		if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, log.Logger); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}

		accountRepo = postgresRepo.NewAccountRepository(pool)
		ledgerRepo = postgresRepo.NewLedgerRepository(pool)
		txManager = postgresRepo.NewTxManager(pool)
		retrier = postgresRepo.NewRetrier(log.Logger)
		checks = append(checks, handler.ReadinessCheck{Name: "postgres", Probe: pool.Ping})

	default:
		log.Fatal().Str("driver", cfg.StorageDriver).Msg("unknown storage driver")
	}

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	var cache usecase.Cache
	if cfg.RedisURL != "" {
		redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer redisClient.Close()
		log.Info().Msg("connected to redis")

		cache = redisRepo.NewCache(redisClient, m.CacheHits, m.CacheMisses)
		checks = append(checks, handler.ReadinessCheck{
			Name:  "redis",
			Probe: func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
		})
	}

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)

	evaluator := fraud.NewEvaluator(
		cfg.EvaluatorURL,
		cfg.EvaluatorAPIKey,
		cfg.EvaluatorModel,
		&http.Client{Timeout: cfg.EvaluatorTimeout},
		log.Logger,
	)

	idGen := postgresRepo.NewULIDGenerator()

	accountUC := usecase.NewAccountUseCase(accountRepo, idGen)
	transferUC := usecase.NewTransferUseCase(txManager, accountRepo, ledgerRepo, idGen, cache)
	ledgerUC := usecase.NewLedgerUseCase(ledgerRepo, cache)
	fraudUC := usecase.NewFraudUseCase(ledgerRepo, evaluator, cache, cfg.EvaluatorTimeout)

	// Serialization failures only happen on the postgres driver
	var transfers handler.TransferService = transferUC
	if retrier != nil {
		transfers = postgresRepo.NewRetryingTransferService(transferUC, retrier)
	}

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		SessionHandler:  handler.NewSessionHandler(accountUC, jwtManager, m),
		TransferHandler: handler.NewTransferHandler(transfers, m),
		LedgerHandler:   handler.NewLedgerHandler(ledgerUC),
		FraudHandler:    handler.NewFraudHandler(ledgerUC, fraudUC, m),
		HealthHandler:   handler.NewHealthHandler(checks...),
		JWTManager:      jwtManager,
		Metrics:         m,
		Registry:        registry,
		Logger:          log.Logger,
		RateLimitRPS:    cfg.RateLimitRPS,
		RateLimitBurst:  cfg.RateLimitBurst,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
