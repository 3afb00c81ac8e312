package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"

	"github.com/demandlens/backend/internal/adapters/database"
	"github.com/demandlens/backend/internal/application/services"
	"github.com/demandlens/backend/internal/infrastructure/clients/postgres"
	"github.com/demandlens/backend/internal/infrastructure/notifications"
	"github.com/demandlens/backend/internal/infrastructure/observability"
	"github.com/demandlens/backend/internal/scheduler"
	"github.com/demandlens/backend/pkg/config"
)

func main() {
	runOnce := flag.Bool("once", false, "run one detection pass and exit instead of scheduling")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger("demandlens-alerts", cfg.Server.Env)
	logger := observability.GetLogger()

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()

	emailSender, err := notifications.NewSMTPSender(&cfg.SMTP)
	if err != nil {
		logger.Fatal().Err(err).Msg("SMTP configuration is required for alert delivery")
	}

	nicheAdapter := database.NewNicheAdapter(pgClient)
	snapshotAdapter := database.NewSnapshotAdapter(pgClient)
	notificationAdapter := database.NewNotificationAdapter(sqlx.NewDb(pgClient.DB(), "postgres"))

	trigger := services.NewAlertTrigger(emailSender, notificationAdapter).
		WithDigestMinimum(cfg.Alerts.DigestMinimum)
	processor := services.NewAlertProcessor(nicheAdapter, snapshotAdapter, trigger)

	if *runOnce {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
		defer cancel()

		summary, err := processor.ProcessAll(ctx)
		if err != nil {
			logger.Fatal().Err(err).Msg("alert pass failed")
		}
		logger.Info().
			Int("processed", summary.NichesProcessed).
			Int("alerts", summary.AlertsDetected).
			Msg("alert pass complete")
		return
	}

	schedulerService := scheduler.NewService(cfg, processor)
	if err := schedulerService.Start(); err != nil {
		logger.Fatal().Err(err).Msg("failed to start scheduler")
	}
	defer schedulerService.Stop()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("alert worker shutting down")
}
