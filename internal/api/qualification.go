package api

import (
	"io"
	"net/http"

	"github.com/MikeSquared-Agency/Advisory/internal/intake"
	"github.com/MikeSquared-Agency/Advisory/internal/metrics"
	"github.com/MikeSquared-Agency/Advisory/internal/pipeline"
	"github.com/MikeSquared-Agency/Advisory/internal/scoring"
)

const maxTenderBody = 1 << 20

type QualificationHandler struct {
	evaluator *scoring.Evaluator
	capacity  pipeline.CapacitySource
	metrics   *metrics.Collector
}

func NewQualificationHandler(ev *scoring.Evaluator, cs pipeline.CapacitySource, m *metrics.Collector) *QualificationHandler {
	return &QualificationHandler{evaluator: ev, capacity: cs, metrics: m}
}

type QualificationResponse struct {
	Tender *scoring.TenderRecord `json:"tender"`
	scoring.Evaluation
}

// Evaluate scores a tender record without registering it.
// POST /api/v1/qualification/evaluate
func (h *QualificationHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxTenderBody))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	rec, err := intake.DecodeTender(body)
	if err != nil {
		h.metrics.ObserveInvalidInput("scoring")
		writeError(w, err)
		return
	}

	ev, err := h.evaluator.Qualify(rec, h.capacity.Capacity(r.Context()))
	if err != nil {
		h.metrics.ObserveInvalidInput("scoring")
		writeError(w, err)
		return
	}
	h.metrics.ObserveEvaluation(string(ev.Decision.Label), ev.Decision.PercentScore)
	writeJSON(w, http.StatusOK, QualificationResponse{Tender: rec, Evaluation: ev})
}

// Capacity returns the capacity constants evaluations currently use.
// GET /api/v1/qualification/capacity
func (h *QualificationHandler) Capacity(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.capacity.Capacity(r.Context()))
}
