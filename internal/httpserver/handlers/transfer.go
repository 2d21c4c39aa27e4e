package handlers

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nadalpiantini/tabgrouper/internal/httpserver/deps"
	"github.com/nadalpiantini/tabgrouper/internal/logger"
)

// ExportWorkspace serves one workspace as a formatted JSON envelope.
func ExportWorkspace(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := d.Workspaces.ExportWorkspace(r.Context(), chi.URLParam(r, "name"))
		if err != nil {
			writeStoreError(w, d.Metrics, "transfer", err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", `attachment; filename="workspace.json"`)
		if _, err := w.Write(data); err != nil {
			d.Logger.Debug("failed to write export", logger.Error(err))
		}
	}
}

// ExportAll serves the whole collection as one envelope.
func ExportAll(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := d.Workspaces.ExportAll(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", `attachment; filename="workspaces.json"`)
		if _, err := w.Write(data); err != nil {
			d.Logger.Debug("failed to write export", logger.Error(err))
		}
	}
}

// ImportWorkspaces merges an exported file into the store. Partial import
// (some valid, some rejected) is a 200; zero valid items is a 400 carrying
// the per-item reasons.
func ImportWorkspaces(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 16<<20))
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}

		result, err := d.Workspaces.Import(r.Context(), body)
		if err != nil {
			d.Metrics.RecordOperation("import", "error")
			writeError(w, http.StatusBadRequest, err)
			return
		}
		d.Metrics.RecordOperation("import", "ok")
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":       true,
			"imported": result.Imported,
			"skipped":  result.Skipped,
			"errors":   result.Errors,
		})
	}
}
