package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"

	"github.com/demandlens/backend/internal/adapters/cache"
	"github.com/demandlens/backend/internal/adapters/database"
	"github.com/demandlens/backend/internal/api/handlers"
	"github.com/demandlens/backend/internal/api/middleware"
	"github.com/demandlens/backend/internal/api/routes"
	"github.com/demandlens/backend/internal/application/services"
	"github.com/demandlens/backend/internal/domain/providers"
	"github.com/demandlens/backend/internal/infrastructure/clients/openai"
	"github.com/demandlens/backend/internal/infrastructure/clients/postgres"
	"github.com/demandlens/backend/internal/infrastructure/clients/redis"
	"github.com/demandlens/backend/internal/infrastructure/notifications"
	"github.com/demandlens/backend/internal/infrastructure/observability"
	"github.com/demandlens/backend/pkg/config"
)

const cacheJanitorInterval = time.Minute

func main() {
	// Load .env in development; ignored when absent
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger("demandlens-api", cfg.Server.Env)
	logger := observability.GetLogger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer shutdownCancel()
				if err := shutdown(shutdownCtx); err != nil {
					logger.Error().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()

	// Redis is optional; the API degrades to uncached responses without it
	var cacheProvider providers.CacheProvider
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		logger.Warn().Err(err).Msg("Redis unavailable, response caching disabled")
	} else {
		defer redisClient.Close()
		cacheProvider = cache.NewRedisAdapter(redisClient)
	}

	// Repositories
	runAdapter := database.NewRunAdapter(pgClient)
	accountAdapter := database.NewAccountAdapter(pgClient)
	creativeAdapter := database.NewCreativeAdapter(pgClient)
	mentionAdapter := database.NewMentionAdapter(pgClient)
	extractionAdapter := database.NewExtractionAdapter(pgClient)
	clusterAdapter := database.NewClusterAdapter(pgClient)
	gapAdapter := database.NewGapAdapter(pgClient)
	conceptAdapter := database.NewConceptAdapter(pgClient)
	appStoreAdapter := database.NewAppStoreAdapter(pgClient)
	ugcAdapter := database.NewUGCAdapter(pgClient)
	nicheAdapter := database.NewNicheAdapter(pgClient)
	snapshotAdapter := database.NewSnapshotAdapter(pgClient)
	notificationAdapter := database.NewNotificationAdapter(sqlx.NewDb(pgClient.DB(), "postgres"))

	// Services
	reportCache := cache.NewReportCache(services.DefaultReportTTL)
	reportService := services.NewReportService(services.ReportDeps{
		Runs:        runAdapter,
		Creatives:   creativeAdapter,
		Mentions:    mentionAdapter,
		Extractions: extractionAdapter,
		Clusters:    clusterAdapter,
		Gaps:        gapAdapter,
		Concepts:    conceptAdapter,
		AppStore:    appStoreAdapter,
		Accounts:    accountAdapter,
		Metrics:     metrics,
	}, reportCache)

	// The report cache evicts lazily on read; the janitor bounds memory for
	// entries nobody asks for again.
	go func() {
		ticker := time.NewTicker(cacheJanitorInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if removed := reportCache.CleanupExpired(); removed > 0 {
					logger.Debug().Int("removed", removed).Msg("report cache cleanup")
				}
			}
		}
	}()

	// Alert processing is exposed on the internal routes when SMTP is up
	var alertHandler *handlers.AlertHandler
	emailSender, err := notifications.NewSMTPSender(&cfg.SMTP)
	if err != nil {
		logger.Warn().Err(err).Msg("SMTP not configured, alert endpoints disabled")
	} else {
		trigger := services.NewAlertTrigger(emailSender, notificationAdapter).
			WithDigestMinimum(cfg.Alerts.DigestMinimum)
		processor := services.NewAlertProcessor(nicheAdapter, snapshotAdapter, trigger).WithMetrics(metrics)
		alertHandler = handlers.NewAlertHandler(processor)
	}

	// Pattern extraction runs heuristics alone when no LLM key is set
	var patternProvider providers.PatternProvider
	if cfg.OpenAI.APIKey != "" {
		llmClient, err := openai.NewClient(&cfg.OpenAI)
		if err != nil {
			logger.Warn().Err(err).Msg("LLM client unavailable, heuristic patterns only")
		} else {
			patternProvider = llmClient
		}
	}
	patternService := services.NewPatternServiceWithAssets(patternProvider, ugcAdapter)
	ugcHandler := handlers.NewUGCHandler(patternService)

	reportHandler := handlers.NewReportHandler(reportService)

	var cacheMiddleware *middleware.CacheMiddleware
	if cacheProvider != nil {
		cacheMiddleware = middleware.NewCacheMiddleware(cacheProvider)
	}

	router := routes.NewRouter(reportHandler, alertHandler, ugcHandler, cacheMiddleware, metrics)
	handler := router.SetupRoutes()

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", serverAddr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("error during server shutdown")
	}

	logger.Info().Msg("server stopped")
}
