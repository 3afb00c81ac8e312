package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/demandlens/backend/internal/domain/entities"
)

// PatternService defines the UGC classification operations used by the handler.
type PatternService interface {
	ExtractForRun(ctx context.Context, runID string) ([]*entities.UGCAsset, error)
}

// UGCHandler serves a run's UGC assets with creative patterns attached.
type UGCHandler struct {
	service PatternService
}

// NewUGCHandler creates a new UGC handler.
func NewUGCHandler(service PatternService) *UGCHandler {
	return &UGCHandler{service: service}
}

// GetPatterns handles GET /api/runs/{id}/ugc/patterns
func (h *UGCHandler) GetPatterns(w http.ResponseWriter, r *http.Request) {
	runID := strings.TrimSpace(r.PathValue("id"))
	if runID == "" {
		respondWithError(w, http.StatusBadRequest, "run id is required")
		return
	}

	assets, err := h.service.ExtractForRun(r.Context(), runID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"assets": assets,
		"count":  len(assets),
	})
}
