package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MikeSquared-Agency/Advisory/internal/config"
	"github.com/MikeSquared-Agency/Advisory/internal/hermes"
	"github.com/MikeSquared-Agency/Advisory/internal/metrics"
	"github.com/MikeSquared-Agency/Advisory/internal/pipeline"
	"github.com/MikeSquared-Agency/Advisory/internal/scoring"
	"github.com/MikeSquared-Agency/Advisory/internal/simulation"
	"github.com/MikeSquared-Agency/Advisory/internal/store"
)

func NewRouter(s store.Store, h hermes.Client, p *pipeline.Pipeline, ev *scoring.Evaluator, cs pipeline.CapacitySource, proj *simulation.Projector, m *metrics.Collector, cfg *config.Config, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Use(RateLimitMiddleware(cfg.Server.RateLimitPerMin))

	sim := NewSimulationHandler(proj, cfg.Simulation.DefaultLevers, h, m, logger)
	qual := NewQualificationHandler(ev, cs, m)
	tenders := NewTendersHandler(p, s, m)
	explain := NewExplainHandler(s)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/simulation/defaults", sim.Defaults)
		r.Post("/simulation/project", sim.Project)

		r.Post("/qualification/evaluate", qual.Evaluate)
		r.Get("/qualification/capacity", qual.Capacity)

		r.Post("/tenders", tenders.Create)
		r.Get("/tenders", tenders.List)
		r.Get("/tenders/{id}", tenders.Get)
		r.Post("/tenders/{id}/evaluate", tenders.Evaluate)

		r.Get("/scoring/explain/{id}", explain.Explain)
	})

	return r
}

func NewMetricsRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}
