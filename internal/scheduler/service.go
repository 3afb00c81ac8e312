package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/demandlens/backend/internal/application/services"
	"github.com/demandlens/backend/internal/infrastructure/observability"
	"github.com/demandlens/backend/pkg/config"
)

const passTimeout = 30 * time.Minute

// Service schedules the weekly alert detection pass
type Service struct {
	config    *config.Config
	processor *services.AlertProcessor
	cron      *cron.Cron
}

// NewService creates a new scheduler service
func NewService(cfg *config.Config, processor *services.AlertProcessor) *Service {
	return &Service{
		config:    cfg,
		processor: processor,
		cron:      cron.New(cron.WithSeconds()),
	}
}

// Start begins the scheduled alert passes
func (s *Service) Start() error {
	var cronExpression string

	switch s.config.Alerts.Schedule {
	case "daily":
		// Run daily at 9 AM UTC
		cronExpression = "0 0 9 * * *"
	case "weekly":
		// Run weekly on Monday at 9 AM UTC
		cronExpression = "0 0 9 * * MON"
	default:
		cronExpression = "0 0 9 * * MON"
	}

	_, err := s.cron.AddFunc(cronExpression, func() {
		logger := observability.GetLogger()
		logger.Info().Msg("starting scheduled alert pass")

		ctx, cancel := context.WithTimeout(context.Background(), passTimeout)
		defer cancel()

		if _, err := s.processor.ProcessAll(ctx); err != nil {
			logger.Error().Err(err).Msg("scheduled alert pass failed")
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	observability.GetLogger().Info().
		Str("schedule", s.config.Alerts.Schedule).
		Msg("alert scheduler started")
	return nil
}

// Stop stops the scheduler
func (s *Service) Stop() {
	if s.cron != nil {
		s.cron.Stop()
		observability.GetLogger().Info().Msg("alert scheduler stopped")
	}
}
