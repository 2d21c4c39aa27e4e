package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/nadalpiantini/tabgrouper/internal/httpserver/deps"
	"github.com/nadalpiantini/tabgrouper/internal/workspace"
)

// ListAutosaves returns the ring's listings, newest first. The id of each
// entry is a stable handle that survives ring shifts, unlike a position.
func ListAutosaves(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		listings, err := d.Store.ListAutosaves(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "autosaves": listings})
	}
}

// TriggerAutosave captures the session into the ring right now.
func TriggerAutosave(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := d.Workspaces.Autosave(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		if id == 0 {
			writeJSON(w, http.StatusOK, map[string]any{"ok": false, "reason": "autosave disabled or nothing to save"})
			return
		}
		d.Metrics.IncAutosaves()
		writeJSON(w, http.StatusCreated, map[string]any{"ok": true, "id": id})
	}
}

// RestoreAutosave rehydrates an autosave by stable id.
func RestoreAutosave(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		var req restoreRequest
		if r.ContentLength > 0 && !decodeBody(w, r, &req) {
			return
		}
		mode, err := workspace.ParseRestoreMode(req.Mode)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}

		if err := d.Workspaces.RestoreAutosave(r.Context(), id, mode); err != nil {
			d.Metrics.RecordOperation("restore_autosave", "error")
			writeStoreError(w, d.Metrics, "autosaves", err)
			return
		}
		d.Metrics.RecordOperation("restore_autosave", "ok")
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	}
}
