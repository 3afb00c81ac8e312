package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/demandlens/backend/internal/adapters/cache"
	"github.com/demandlens/backend/internal/domain/entities"
	"github.com/demandlens/backend/internal/infrastructure/observability"
)

// ReportService defines the report operations used by the handler.
type ReportService interface {
	GenerateReport(ctx context.Context, runID, userID string) (*entities.ReportData, error)
	InvalidateReport(runID string)
	CacheStats() cache.Stats
}

// ReportHandler handles report generation and cache administration.
type ReportHandler struct {
	service ReportService
}

// NewReportHandler creates a new report handler.
func NewReportHandler(service ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// GetReport handles GET /api/runs/{id}/report
func (h *ReportHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	runID := strings.TrimSpace(r.PathValue("id"))
	if runID == "" {
		respondWithError(w, http.StatusBadRequest, "run id is required")
		return
	}

	userID := strings.TrimSpace(r.URL.Query().Get("user_id"))
	if userID == "" {
		respondWithError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	report, err := h.service.GenerateReport(r.Context(), runID, userID)
	if err != nil {
		observability.LoggerFromContext(r.Context()).Error().
			Err(err).
			Str("run_id", runID).
			Msg("report generation failed")
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, report)
}

// GetCacheStats handles GET /api/reports/cache/stats
func (h *ReportHandler) GetCacheStats(w http.ResponseWriter, r *http.Request) {
	stats := h.service.CacheStats()
	respondWithJSON(w, http.StatusOK, map[string]int{
		"total":   stats.Total,
		"valid":   stats.Valid,
		"expired": stats.Expired,
	})
}

// InvalidateReport handles DELETE /api/reports/cache/{runId}
func (h *ReportHandler) InvalidateReport(w http.ResponseWriter, r *http.Request) {
	runID := strings.TrimSpace(r.PathValue("runId"))
	if runID == "" {
		respondWithError(w, http.StatusBadRequest, "run id is required")
		return
	}

	h.service.InvalidateReport(runID)
	respondWithJSON(w, http.StatusOK, map[string]string{
		"status": "invalidated",
		"run_id": runID,
	})
}
