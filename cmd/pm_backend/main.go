package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	listener "github.com/SscSPs/property_market_app/internal/adapters/database/pgsql"
	"github.com/SscSPs/property_market_app/internal/adapters/translator"
	portssvc "github.com/SscSPs/property_market_app/internal/core/ports/services"
	"github.com/SscSPs/property_market_app/internal/core/services"
	"github.com/SscSPs/property_market_app/internal/handlers"
	"github.com/SscSPs/property_market_app/internal/middleware"
	"github.com/SscSPs/property_market_app/internal/platform/config"
	"github.com/SscSPs/property_market_app/internal/platform/metrics"
	"github.com/SscSPs/property_market_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/property_market_app/pkg/database"
	"github.com/SscSPs/property_market_app/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// @title Property Market Backend API
// @version 1.0
// @description Exchange rates, multi-currency listing prices and translated content.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Default().Errorw("Failed to load config", "error", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{Level: cfg.LogLevel, Development: !cfg.IsProduction})
	if err != nil {
		logger.Default().Errorw("Failed to build logger", "error", err)
		os.Exit(1)
	}
	logger.SetDefault(log)
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logger.WithLogger(ctx, log)

	if err := run(ctx, cfg, log); err != nil {
		log.Errorw("Server exited with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, database.PoolOptions{Ping: cfg.EnableDBCheck})
	if err != nil {
		return err
	}
	defer database.ClosePgxPool(context.Background(), dbPool)
	log.Infow("Database connection pool established")

	if err := runMigrations(cfg.DatabaseURL, log); err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	tr, closeTranslator := buildTranslator(ctx, cfg, log)
	defer closeTranslator()

	repos := pgsql.NewRepositoryProvider(dbPool, cfg.RecalcNotifyChannel)
	container, trigger := services.NewServiceContainer(cfg, repos, tr, m)

	trigger.Start(ctx)
	defer trigger.Stop()

	rateListener := listener.NewRateListener(dbPool, cfg.RecalcNotifyChannel, trigger)
	rateListener.Start(ctx)
	defer rateListener.Stop()

	// Prices may have been written while no process was listening.
	trigger.Schedule(ctx)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(log), gin.Recovery())
	if err := r.SetTrustedProxies(nil); err != nil {
		return err
	}
	if err := handlers.RegisterRoutes(r, cfg, container, registry); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infow("Server starting", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Infow("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// buildTranslator assembles Google Translate behind the quota limiter and the
// optional redis memo. Without an API key every call fails and canonical text is served.
func buildTranslator(ctx context.Context, cfg *config.Config, log *logger.Logger) (portssvc.Translator, func()) {
	var tr portssvc.Translator = translator.Unavailable{}
	if cfg.TranslatorAPIKey != "" {
		google, err := translator.NewGoogleTranslator(ctx, cfg.TranslatorAPIKey, cfg.CanonicalLanguage)
		if err != nil {
			log.Errorw("Failed to create Google translator, translations disabled", "error", err)
		} else {
			tr = google
		}
	}

	limited, err := translator.NewRateLimited(tr, cfg.TranslatorRateLimit)
	if err != nil {
		log.Warnw("Invalid translator rate limit, running unlimited", "error", err)
	} else {
		tr = limited
	}

	if cfg.RedisURL == "" {
		return tr, func() {}
	}
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Warnw("Invalid REDIS_URL, translation memo disabled", "error", err)
		return tr, func() {}
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warnw("Redis unreachable, memo lookups will fall through", "error", err)
	}
	return translator.NewMemo(tr, client, cfg.TranslationMemoTTL), func() { _ = client.Close() }
}

func runMigrations(databaseURL string, log *logger.Logger) error {
	log.Infow("Running database migrations...")
	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			log.Errorw("Error closing migration DB connection", "error", cerr)
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	upErr := m.Up()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return upErr
	}
	if sourceErr, dbErr := m.Close(); sourceErr != nil || dbErr != nil {
		return errors.Join(sourceErr, dbErr)
	}

	if errors.Is(upErr, migrate.ErrNoChange) {
		log.Infow("No new migrations to apply.")
	} else {
		log.Infow("Database migrations applied successfully.")
	}
	return nil
}
