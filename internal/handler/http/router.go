package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/utafrali/finsearch/internal/export"
	"github.com/utafrali/finsearch/internal/search"
	"github.com/utafrali/finsearch/pkg/health"
	"github.com/utafrali/finsearch/pkg/middleware"
)

// RouterConfig carries the handler wiring parameters.
type RouterConfig struct {
	BaseCategoryID int64
	DefaultShopID  int64
	Environment    string
}

// NewRouter creates a chi router with all routes registered.
func NewRouter(
	exportService *export.Service,
	searchService *search.Service,
	healthHandler *health.Handler,
	cfg RouterConfig,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.Environment = cfg.Environment
	r.Use(middleware.CORS(corsCfg))
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(60 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics("finsearch"))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	// Catalog feed export
	exportHandler := NewExportHandler(exportService, cfg.BaseCategoryID, logger)
	r.Get("/export", exportHandler.Export)

	// Search API endpoints
	searchHandler := NewSearchHandler(searchService, cfg.DefaultShopID, logger)
	r.Route("/api/v1/search", func(r chi.Router) {
		r.Get("/facets", searchHandler.Facets)

		r.Group(func(r chi.Router) {
			r.Use(ContentTypeJSON)
			r.Post("/", searchHandler.Search)
		})
	})

	return r
}
