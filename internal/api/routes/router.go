package routes

import (
	"net/http"

	"github.com/demandlens/backend/internal/api/handlers"
	"github.com/demandlens/backend/internal/api/middleware"
	"github.com/demandlens/backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	reportHandler *handlers.ReportHandler
	alertHandler  *handlers.AlertHandler
	ugcHandler    *handlers.UGCHandler

	cacheMiddleware *middleware.CacheMiddleware
	metrics         *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	reportHandler *handlers.ReportHandler,
	alertHandler *handlers.AlertHandler,
	ugcHandler *handlers.UGCHandler,
	cacheMiddleware *middleware.CacheMiddleware,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:             http.NewServeMux(),
		reportHandler:   reportHandler,
		alertHandler:    alertHandler,
		ugcHandler:      ugcHandler,
		cacheMiddleware: cacheMiddleware,
		metrics:         metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Report endpoints
	r.mux.HandleFunc("GET /api/runs/{id}/report", r.reportHandler.GetReport)
	r.mux.HandleFunc("GET /api/reports/cache/stats", r.reportHandler.GetCacheStats)
	r.mux.HandleFunc("DELETE /api/reports/cache/{runId}", r.reportHandler.InvalidateReport)

	// UGC pattern endpoints
	if r.ugcHandler != nil {
		r.mux.HandleFunc("GET /api/runs/{id}/ugc/patterns", r.ugcHandler.GetPatterns)
	}

	// Internal alert endpoints for on-demand detection passes
	if r.alertHandler != nil {
		r.mux.HandleFunc("POST /internal/alerts/run", r.alertHandler.RunAll)
		r.mux.HandleFunc("POST /internal/alerts/run/{nicheId}", r.alertHandler.RunNiche)
	}

	// Apply middleware in reverse order (last middleware wraps first).
	// CORS must be outermost so cached responses also get CORS headers.
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)

	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}

	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.ResponseOptimization(handler)
	handler = middleware.CORSMiddleware(handler)

	return handler
}
