package services

import (
	"context"
	"time"

	"github.com/demandlens/backend/internal/domain/entities"
	"github.com/demandlens/backend/internal/domain/repositories"
	"github.com/demandlens/backend/internal/infrastructure/observability"
	apperrors "github.com/demandlens/backend/pkg/errors"
)

const defaultNicheTimeout = 15 * time.Second

// AlertProcessor runs the weekly detection pass over all tracked niches
type AlertProcessor struct {
	niches    repositories.NicheRepository
	snapshots repositories.SnapshotRepository
	trigger   *AlertTrigger
	metrics   *observability.Metrics

	nicheTimeout time.Duration
}

// NewAlertProcessor creates a new alert processor
func NewAlertProcessor(niches repositories.NicheRepository, snapshots repositories.SnapshotRepository, trigger *AlertTrigger) *AlertProcessor {
	return &AlertProcessor{
		niches:       niches,
		snapshots:    snapshots,
		trigger:      trigger,
		nicheTimeout: defaultNicheTimeout,
	}
}

// WithMetrics enables alert counters on the processor. metrics may be nil.
func (p *AlertProcessor) WithMetrics(metrics *observability.Metrics) *AlertProcessor {
	p.metrics = metrics
	return p
}

// ProcessSummary totals one full detection pass
type ProcessSummary struct {
	NichesProcessed int
	NichesFailed    int
	AlertsDetected  int
	EmailsSent      int
}

// ProcessAll detects and delivers alerts for every active niche, one niche at
// a time. A failing niche is logged and skipped; it never stops the pass.
func (p *AlertProcessor) ProcessAll(ctx context.Context) (*ProcessSummary, error) {
	ctx, span := observability.StartSpan(ctx, "alerts.process_all")
	defer span.End()

	niches, err := p.niches.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	summary := &ProcessSummary{}
	logger := observability.LoggerFromContext(ctx)

	for _, niche := range niches {
		if err := ctx.Err(); err != nil {
			return summary, apperrors.NewUpstreamError("alert pass cancelled", err)
		}

		detected, sent, err := p.processNiche(ctx, niche)
		if err != nil {
			summary.NichesFailed++
			logger.Error().
				Err(err).
				Str("niche_id", niche.ID).
				Msg("alert detection failed for niche")
			continue
		}

		summary.NichesProcessed++
		summary.AlertsDetected += detected
		summary.EmailsSent += sent
	}

	logger.Info().
		Int("processed", summary.NichesProcessed).
		Int("failed", summary.NichesFailed).
		Int("alerts", summary.AlertsDetected).
		Int("emails", summary.EmailsSent).
		Msg("alert pass finished")

	return summary, nil
}

// ProcessNiche runs detection and delivery for a single niche
func (p *AlertProcessor) ProcessNiche(ctx context.Context, nicheID string) (*ProcessSummary, error) {
	niche, err := p.niches.GetByID(ctx, nicheID)
	if err != nil {
		return nil, err
	}

	detected, sent, err := p.processNiche(ctx, niche)
	if err != nil {
		return nil, err
	}
	return &ProcessSummary{
		NichesProcessed: 1,
		AlertsDetected:  detected,
		EmailsSent:      sent,
	}, nil
}

func (p *AlertProcessor) processNiche(ctx context.Context, niche *entities.Niche) (detected, sent int, err error) {
	ctx, cancel := context.WithTimeout(ctx, p.nicheTimeout)
	defer cancel()

	current, previous, err := p.snapshots.GetLatestPair(ctx, niche.ID)
	if err != nil {
		// A niche with no snapshots yet has nothing to diff.
		if apperrors.IsNotFound(err) {
			return 0, 0, nil
		}
		return 0, 0, err
	}

	alerts := DetectAlerts(current, previous)
	if len(alerts) == 0 {
		return 0, 0, nil
	}
	observability.RecordAlertsEmitted(ctx, p.metrics, len(alerts))

	result := p.trigger.TriggerBatch(ctx, niche, alerts)
	for _, triggerErr := range result.Errors {
		observability.LoggerFromContext(ctx).Warn().
			Err(triggerErr).
			Str("niche_id", niche.ID).
			Msg("alert delivery error")
	}

	return len(alerts), result.EmailsSent, nil
}
