package handlers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nadalpiantini/tabgrouper/internal/host"
	"github.com/nadalpiantini/tabgrouper/internal/httpserver/deps"
)

// ListLayouts returns every saved window layout keyed by name.
func ListLayouts(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		layouts, err := d.Layouts.List(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "layouts": layouts})
	}
}

type saveLayoutRequest struct {
	Name string `json:"name"`
}

// SaveLayout records the current window arrangement under a name.
func SaveLayout(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req saveLayoutRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if req.Name == "" {
			writeError(w, http.StatusBadRequest, fmt.Errorf("layout name is required"))
			return
		}
		layout, err := d.Layouts.Save(r.Context(), req.Name)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"ok": true, "layout": layout})
	}
}

// LoadLayout re-applies a saved arrangement to the open windows.
func LoadLayout(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := d.Layouts.Load(r.Context(), chi.URLParam(r, "name")); err != nil {
			writeStoreError(w, d.Metrics, "layouts", err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	}
}

// DeleteLayout removes a saved arrangement.
func DeleteLayout(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := d.Layouts.Delete(r.Context(), chi.URLParam(r, "name")); err != nil {
			writeStoreError(w, d.Metrics, "layouts", err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	}
}

type positionRequest struct {
	WindowID int    `json:"windowId"`
	Preset   string `json:"preset"`
}

// PositionWindow moves one window to a named position preset.
func PositionWindow(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req positionRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if err := d.Layouts.Position(r.Context(), host.WindowID(req.WindowID), req.Preset); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	}
}

// QuickLayout arranges the open windows per a named quick layout.
func QuickLayout(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := d.Layouts.ApplyQuick(r.Context(), chi.URLParam(r, "name")); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	}
}
