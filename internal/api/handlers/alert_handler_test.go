package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/demandlens/backend/internal/application/services"
	apperrors "github.com/demandlens/backend/pkg/errors"
)

type stubAlertProcessor struct {
	summary *services.ProcessSummary
	err     error
	niches  []string
}

func (s *stubAlertProcessor) ProcessAll(ctx context.Context) (*services.ProcessSummary, error) {
	return s.summary, s.err
}

func (s *stubAlertProcessor) ProcessNiche(ctx context.Context, nicheID string) (*services.ProcessSummary, error) {
	s.niches = append(s.niches, nicheID)
	return s.summary, s.err
}

func newAlertMux(processor *stubAlertProcessor) *http.ServeMux {
	handler := NewAlertHandler(processor)
	mux := http.NewServeMux()
	mux.HandleFunc("POST /internal/alerts/run", handler.RunAll)
	mux.HandleFunc("POST /internal/alerts/run/{nicheId}", handler.RunNiche)
	return mux
}

func TestRunAll(t *testing.T) {
	processor := &stubAlertProcessor{
		summary: &services.ProcessSummary{NichesProcessed: 4, AlertsDetected: 2, EmailsSent: 2},
	}
	mux := newAlertMux(processor)

	req := httptest.NewRequest(http.MethodPost, "/internal/alerts/run", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]int
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 4, body["niches_processed"])
	assert.Equal(t, 2, body["alerts_detected"])
}

func TestRunAll_UpstreamFailure(t *testing.T) {
	processor := &stubAlertProcessor{err: apperrors.NewUpstreamError("db down", nil)}
	mux := newAlertMux(processor)

	req := httptest.NewRequest(http.MethodPost, "/internal/alerts/run", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestRunNiche(t *testing.T) {
	processor := &stubAlertProcessor{
		summary: &services.ProcessSummary{NichesProcessed: 1, AlertsDetected: 3, EmailsSent: 1},
	}
	mux := newAlertMux(processor)

	req := httptest.NewRequest(http.MethodPost, "/internal/alerts/run/niche-7", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"niche-7"}, processor.niches)
}

func TestRunNiche_NotFound(t *testing.T) {
	processor := &stubAlertProcessor{err: apperrors.NewNotFoundError("niche not found")}
	mux := newAlertMux(processor)

	req := httptest.NewRequest(http.MethodPost, "/internal/alerts/run/missing", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
