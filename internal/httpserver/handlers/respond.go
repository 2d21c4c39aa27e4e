package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nadalpiantini/tabgrouper/internal/metrics"
	"github.com/nadalpiantini/tabgrouper/internal/store"
)

type errorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{OK: false, Error: err.Error()})
}

// writeStoreError maps the store's sentinel errors onto HTTP statuses so
// not-found failures never degrade to a 500, and counts the failure under
// the calling module.
func writeStoreError(w http.ResponseWriter, m *metrics.Metrics, module string, err error) {
	switch {
	case errors.Is(err, store.ErrWorkspaceNotFound),
		errors.Is(err, store.ErrAutosaveNotFound),
		errors.Is(err, store.ErrLayoutNotFound):
		m.RecordError(module, "not_found")
		writeError(w, http.StatusNotFound, err)
	case errors.Is(err, store.ErrWorkspaceExists):
		m.RecordError(module, "conflict")
		writeError(w, http.StatusConflict, err)
	default:
		m.RecordError(module, "internal")
		writeError(w, http.StatusInternalServerError, err)
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return false
	}
	return true
}
