package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Advisory/internal/scoring"
	"github.com/MikeSquared-Agency/Advisory/internal/store"
)

type ExplainHandler struct {
	store store.Store
}

func NewExplainHandler(s store.Store) *ExplainHandler {
	return &ExplainHandler{store: s}
}

// Explain returns the criteria breakdown of a tender's last evaluation.
// GET /api/v1/scoring/explain/{id}
func (h *ExplainHandler) Explain(w http.ResponseWriter, r *http.Request) {
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
	if tender.EvaluatedAt == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "tender has not been evaluated"})
		return
	}

	resp := map[string]interface{}{
		"tender_id":      tender.ID,
		"status":         tender.Status,
		"decision":       tender.Decision,
		"go_no_go_score": tender.GoNoGoScore,
		"evaluated_at":   tender.EvaluatedAt,
		"criteria":       tender.Criteria,
	}

	var total, maxTotal int
	for _, c := range tender.Criteria {
		total += c.Score * c.Weight
		maxTotal += scoring.MaxCriterionScore * c.Weight
	}
	resp["weighted_total"] = total
	resp["weighted_max"] = maxTotal

	writeJSON(w, http.StatusOK, resp)
}
