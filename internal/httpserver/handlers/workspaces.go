package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/nadalpiantini/tabgrouper/internal/httpserver/deps"
	"github.com/nadalpiantini/tabgrouper/internal/workspace"
)

// ListWorkspaces returns the light projection of every workspace, newest
// first, optionally filtered by ?tag=.
func ListWorkspaces(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		listings, err := d.Store.ListWorkspaces(r.Context(), r.URL.Query().Get("tag"))
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		d.Metrics.SetWorkspaces(len(listings))
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "workspaces": listings})
	}
}

// SaveWorkspace captures the live session under a new name.
func SaveWorkspace(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var opts workspace.CaptureOptions
		if !decodeBody(w, r, &opts) {
			return
		}
		snap, err := d.Workspaces.Save(r.Context(), opts)
		if err != nil {
			writeStoreError(w, d.Metrics, "workspaces", err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"ok": true, "workspace": snap})
	}
}

// GetWorkspace returns one full workspace by name.
func GetWorkspace(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, err := d.Store.GetWorkspace(r.Context(), chi.URLParam(r, "name"))
		if err != nil {
			writeStoreError(w, d.Metrics, "workspaces", err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "workspace": snap})
	}
}

// DeleteWorkspace removes a workspace by name.
func DeleteWorkspace(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := d.Store.DeleteWorkspace(r.Context(), chi.URLParam(r, "name")); err != nil {
			writeStoreError(w, d.Metrics, "workspaces", err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	}
}

type renameRequest struct {
	NewName string `json:"newName"`
}

// RenameWorkspace renames in place; the new name must be free.
func RenameWorkspace(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req renameRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if err := d.Store.RenameWorkspace(r.Context(), chi.URLParam(r, "name"), req.NewName); err != nil {
			writeStoreError(w, d.Metrics, "workspaces", err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	}
}

// DuplicateWorkspace deep-copies under a new name with a fresh date.
func DuplicateWorkspace(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req renameRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if err := d.Store.DuplicateWorkspace(r.Context(), chi.URLParam(r, "name"), req.NewName); err != nil {
			writeStoreError(w, d.Metrics, "workspaces", err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"ok": true})
	}
}

type restoreRequest struct {
	Mode string `json:"mode"`
}

// RestoreWorkspace rehydrates a workspace in one of the three modes.
func RestoreWorkspace(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req restoreRequest
		if r.ContentLength > 0 && !decodeBody(w, r, &req) {
			return
		}
		mode, err := workspace.ParseRestoreMode(req.Mode)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}

		start := time.Now()
		if err := d.Workspaces.Restore(r.Context(), chi.URLParam(r, "name"), mode); err != nil {
			d.Metrics.RecordOperation("restore", "error")
			writeStoreError(w, d.Metrics, "workspaces", err)
			return
		}
		d.Metrics.RecordOperation("restore", "ok")
		d.Metrics.ObserveRestore(time.Since(start).Seconds())
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	}
}
