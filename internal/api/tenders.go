package api

import (
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Advisory/internal/intake"
	"github.com/MikeSquared-Agency/Advisory/internal/metrics"
	"github.com/MikeSquared-Agency/Advisory/internal/pipeline"
	"github.com/MikeSquared-Agency/Advisory/internal/scoring"
	"github.com/MikeSquared-Agency/Advisory/internal/store"
)

type TendersHandler struct {
	pipeline *pipeline.Pipeline
	store    store.Store
	metrics  *metrics.Collector
}

func NewTendersHandler(p *pipeline.Pipeline, s store.Store, m *metrics.Collector) *TendersHandler {
	return &TendersHandler{pipeline: p, store: s, metrics: m}
}

type TenderResponse struct {
	Tender     *store.Tender       `json:"tender"`
	Evaluation *scoring.Evaluation `json:"evaluation,omitempty"`
}

// Create registers a tender in the pipeline and scores it.
// POST /api/v1/tenders
func (h *TendersHandler) Create(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxTenderBody))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	payload, err := intake.DecodePayload(body)
	if err != nil {
		writeError(w, err)
		return
	}
	rec, err := payload.Record()
	if err != nil {
		h.metrics.ObserveInvalidInput("scoring")
		writeError(w, err)
		return
	}

	tender, ev, err := h.pipeline.Submit(r.Context(), payload.Code, rec)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, TenderResponse{Tender: tender, Evaluation: ev})
}

// List returns tenders, newest first.
// GET /api/v1/tenders?status=open&limit=20&offset=0
func (h *TendersHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var filter store.TenderFilter
	if s := q.Get("status"); s != "" {
		status, err := store.ParseStatus(s)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid status: " + s})
			return
		}
		filter.Status = &status
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid limit"})
			return
		}
		filter.Limit = n
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid offset"})
			return
		}
		filter.Offset = n
	}

	tenders, err := h.store.ListTenders(r.Context(), filter)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if tenders == nil {
		tenders = []*store.Tender{}
	}
	writeJSON(w, http.StatusOK, tenders)
}

// GET /api/v1/tenders/{id}
func (h *TendersHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid tender id"})
		return
	}

	tender, err := h.store.GetTender(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if tender == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "tender not found"})
		return
	}
	writeJSON(w, http.StatusOK, tender)
}

// Evaluate re-scores a registered tender as of today.
// POST /api/v1/tenders/{id}/evaluate
func (h *TendersHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid tender id"})
		return
	}

	tender, ev, err := h.pipeline.Reevaluate(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, TenderResponse{Tender: tender, Evaluation: ev})
}
