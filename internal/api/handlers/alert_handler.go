package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/demandlens/backend/internal/application/services"
	"github.com/demandlens/backend/internal/infrastructure/observability"
)

// AlertProcessor defines the alert operations used by the handler.
type AlertProcessor interface {
	ProcessAll(ctx context.Context) (*services.ProcessSummary, error)
	ProcessNiche(ctx context.Context, nicheID string) (*services.ProcessSummary, error)
}

// AlertHandler exposes the internal endpoints for kicking off detection
// passes outside the weekly schedule.
type AlertHandler struct {
	processor AlertProcessor
}

// NewAlertHandler creates a new alert handler.
func NewAlertHandler(processor AlertProcessor) *AlertHandler {
	return &AlertHandler{processor: processor}
}

// RunAll handles POST /internal/alerts/run
func (h *AlertHandler) RunAll(w http.ResponseWriter, r *http.Request) {
	summary, err := h.processor.ProcessAll(r.Context())
	if err != nil {
		observability.LoggerFromContext(r.Context()).Error().
			Err(err).
			Msg("manual alert pass failed")
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, summaryPayload(summary))
}

// RunNiche handles POST /internal/alerts/run/{nicheId}
func (h *AlertHandler) RunNiche(w http.ResponseWriter, r *http.Request) {
	nicheID := strings.TrimSpace(r.PathValue("nicheId"))
	if nicheID == "" {
		respondWithError(w, http.StatusBadRequest, "niche id is required")
		return
	}

	summary, err := h.processor.ProcessNiche(r.Context(), nicheID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, summaryPayload(summary))
}

func summaryPayload(summary *services.ProcessSummary) map[string]int {
	return map[string]int{
		"niches_processed": summary.NichesProcessed,
		"niches_failed":    summary.NichesFailed,
		"alerts_detected":  summary.AlertsDetected,
		"emails_sent":      summary.EmailsSent,
	}
}
