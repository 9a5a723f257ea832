package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/iho/campusledger/internal/adapter/http"
	"github.com/iho/campusledger/internal/adapter/http/handler"
	postgresRepo "github.com/iho/campusledger/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/campusledger/internal/adapter/repository/redis"
	"github.com/iho/campusledger/internal/infrastructure/config"
	"github.com/iho/campusledger/internal/infrastructure/logger"
	"github.com/iho/campusledger/internal/infrastructure/metrics"
	"github.com/iho/campusledger/internal/infrastructure/notifier"
	"github.com/iho/campusledger/internal/infrastructure/postgres"
	"github.com/iho/campusledger/internal/infrastructure/redis"
	"github.com/iho/campusledger/internal/usecase"
)

func main() {
	// .env is optional, real deployments configure through the environment
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	log.Logger = logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	zerolog.DefaultContextLogger = &log.Logger

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to Redis when the summary cache is enabled
	var summaryCache usecase.SummaryCache
	var redisClient *goredis.Client
	if cfg.CacheEnabled() {
		redisClient, err = redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer redisClient.Close()
		summaryCache = redisRepo.NewCache(redisClient)
		log.Info().Msg("connected to redis")
	}

	appMetrics := metrics.New()

	// Initialize repositories
	studentRepo := postgresRepo.NewStudentRepository(pool)
	expenditureRepo := postgresRepo.NewExpenditureRepository(pool)
	idGen := postgresRepo.NewULIDGenerator()

	// Receipt notifications are best-effort and optional
	var receiptNotifier usecase.Notifier
	if cfg.NotificationsEnabled() {
		receiptNotifier = notifier.NewEmailNotifier(notifier.Config{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
		}, log.Logger, appMetrics)
		log.Info().Str("host", cfg.SMTPHost).Msg("smtp receipts enabled")
	}

	// Initialize use cases
	rosterUC := usecase.NewRosterUseCase(studentRepo, idGen, summaryCache)
	ledgerUC := usecase.NewLedgerUseCase(studentRepo, idGen, receiptNotifier, summaryCache)
	studentUC := usecase.NewStudentUseCase(studentRepo)
	expenditureUC := usecase.NewExpenditureUseCase(expenditureRepo, idGen, summaryCache)
	summaryUC := usecase.NewSummaryUseCase(studentRepo, expenditureRepo, summaryCache)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		UploadHandler:      handler.NewUploadHandler(rosterUC, appMetrics),
		StudentHandler:     handler.NewStudentHandler(studentUC),
		LedgerHandler:      handler.NewLedgerHandler(ledgerUC, appMetrics),
		ExpenditureHandler: handler.NewExpenditureHandler(expenditureUC, appMetrics),
		SummaryHandler:     handler.NewSummaryHandler(summaryUC),
		HealthHandler:      handler.NewHealthHandler(pool, redisClient),
		Logger:             log.Logger,
		RateLimit:          cfg.RateLimit,
		RateBurst:          cfg.RateBurst,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
