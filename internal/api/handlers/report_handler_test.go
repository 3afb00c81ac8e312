package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/demandlens/backend/internal/adapters/cache"
	"github.com/demandlens/backend/internal/domain/entities"
	apperrors "github.com/demandlens/backend/pkg/errors"
)

type stubReportService struct {
	report      *entities.ReportData
	err         error
	invalidated []string
	stats       cache.Stats
}

func (s *stubReportService) GenerateReport(ctx context.Context, runID, userID string) (*entities.ReportData, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.report, nil
}

func (s *stubReportService) InvalidateReport(runID string) {
	s.invalidated = append(s.invalidated, runID)
}

func (s *stubReportService) CacheStats() cache.Stats {
	return s.stats
}

func newReportMux(service *stubReportService) *http.ServeMux {
	handler := NewReportHandler(service)
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/runs/{id}/report", handler.GetReport)
	mux.HandleFunc("GET /api/reports/cache/stats", handler.GetCacheStats)
	mux.HandleFunc("DELETE /api/reports/cache/{runId}", handler.InvalidateReport)
	return mux
}

func TestGetReport_OK(t *testing.T) {
	service := &stubReportService{
		report: &entities.ReportData{RunID: "run-1", NicheQuery: "meal prep apps"},
	}
	mux := newReportMux(service)

	req := httptest.NewRequest(http.MethodGet, "/api/runs/run-1/report?user_id=user-1", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body entities.ReportData
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "run-1", body.RunID)
	assert.Equal(t, "meal prep apps", body.NicheQuery)
}

func TestGetReport_MissingUserID(t *testing.T) {
	mux := newReportMux(&stubReportService{})

	req := httptest.NewRequest(http.MethodGet, "/api/runs/run-1/report", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetReport_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"not found", apperrors.NewNotFoundError("run not found"), http.StatusNotFound},
		{"unauthorized", apperrors.NewUnauthorizedError("run does not belong to caller"), http.StatusUnauthorized},
		{"upstream", apperrors.NewUpstreamError("query failed", nil), http.StatusBadGateway},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := newReportMux(&stubReportService{err: tt.err})

			req := httptest.NewRequest(http.MethodGet, "/api/runs/run-1/report?user_id=u", nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestGetCacheStats(t *testing.T) {
	service := &stubReportService{stats: cache.Stats{Total: 3, Valid: 2, Expired: 1}}
	mux := newReportMux(service)

	req := httptest.NewRequest(http.MethodGet, "/api/reports/cache/stats", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]int
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 3, body["total"])
	assert.Equal(t, 2, body["valid"])
	assert.Equal(t, 1, body["expired"])
}

func TestInvalidateReport(t *testing.T) {
	service := &stubReportService{}
	mux := newReportMux(service)

	req := httptest.NewRequest(http.MethodDelete, "/api/reports/cache/run-9", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"run-9"}, service.invalidated)
}
