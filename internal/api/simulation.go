package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/MikeSquared-Agency/Advisory/internal/hermes"
	"github.com/MikeSquared-Agency/Advisory/internal/metrics"
	"github.com/MikeSquared-Agency/Advisory/internal/simulation"
)

type SimulationHandler struct {
	projector *simulation.Projector
	defaults  simulation.LeverSet
	hermes    hermes.Client
	metrics   *metrics.Collector
	logger    *slog.Logger
}

func NewSimulationHandler(p *simulation.Projector, defaults simulation.LeverSet, h hermes.Client, m *metrics.Collector, logger *slog.Logger) *SimulationHandler {
	return &SimulationHandler{projector: p, defaults: defaults, hermes: h, metrics: m, logger: logger}
}

type ProjectionResponse struct {
	Levers   simulation.LeverSet         `json:"levers"`
	BaseYear int                         `json:"base_year"`
	Series   simulation.ProjectionSeries `json:"series"`
	Summary  simulation.Summary          `json:"summary"`
}

// Defaults returns the default lever positions and their projection.
// GET /api/v1/simulation/defaults
func (h *SimulationHandler) Defaults(w http.ResponseWriter, r *http.Request) {
	resp, err := h.project(h.defaults)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Project runs a projection. Levers missing from the body keep their default.
// POST /api/v1/simulation/project
func (h *SimulationHandler) Project(w http.ResponseWriter, r *http.Request) {
	var patch simulation.LeverPatch
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&patch); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body: " + err.Error()})
		return
	}

	resp, err := h.project(patch.Apply(h.defaults))
	if err != nil {
		h.metrics.ObserveInvalidInput("simulation")
		writeError(w, err)
		return
	}

	if h.hermes != nil {
		evt := hermes.ProjectionEvent{
			Levers:           resp.Levers.Map(),
			BaseYear:         resp.BaseYear,
			EfficiencyTarget: resp.Summary.EfficiencyTarget,
			TrustGain:        resp.Summary.TrustGain,
			CostReduction:    resp.Summary.CostReduction,
			Timestamp:        time.Now().UTC(),
		}
		if err := h.hermes.Publish(hermes.SubjectSimulationProjected, evt); err != nil {
			h.logger.Warn("failed to publish projection event", "error", err)
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *SimulationHandler) project(levers simulation.LeverSet) (*ProjectionResponse, error) {
	series, err := h.projector.Project(levers)
	if err != nil {
		return nil, err
	}
	h.metrics.ObserveProjection()
	return &ProjectionResponse{
		Levers:   levers,
		BaseYear: series[0].Year,
		Series:   series,
		Summary:  simulation.Summarize(series),
	}, nil
}
