package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MikeSquared-Agency/Advisory/internal/intake"
	"github.com/MikeSquared-Agency/Advisory/internal/pipeline"
	"github.com/MikeSquared-Agency/Advisory/internal/scoring"
	"github.com/MikeSquared-Agency/Advisory/internal/simulation"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps engine and pipeline errors to HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	var simErr *simulation.ValidationError
	var scoreErr *scoring.ValidationError
	switch {
	case errors.As(err, &simErr):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": simErr.Error(), "field": simErr.Field})
	case errors.As(err, &scoreErr):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": scoreErr.Error(), "field": scoreErr.Field})
	case errors.Is(err, intake.ErrMalformed):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, pipeline.ErrTenderNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "tender not found"})
	case errors.Is(err, pipeline.ErrTenderClosed):
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}
