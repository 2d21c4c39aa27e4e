package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nadalpiantini/tabgrouper/internal/domain"
	"github.com/nadalpiantini/tabgrouper/internal/engine"
	"github.com/nadalpiantini/tabgrouper/internal/host"
	"github.com/nadalpiantini/tabgrouper/internal/httpserver/deps"
)

type groupRequest struct {
	WindowID     int    `json:"windowId"`
	WindowOnly   *bool  `json:"windowOnly"`
	IgnorePinned *bool  `json:"ignorePinned"`
	Mode         string `json:"mode"`
}

type countResponse struct {
	OK    bool `json:"ok"`
	Count int  `json:"count"`
}

// GroupTabs runs a grouping pass. An empty body falls back to the stored
// legacy settings.
func GroupTabs(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts, err := d.Engine.DefaultGroupOptions(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		if r.ContentLength > 0 {
			var req groupRequest
			if !decodeBody(w, r, &req) {
				return
			}
			opts.WindowID = host.WindowID(req.WindowID)
			if req.WindowOnly != nil {
				opts.WindowOnly = *req.WindowOnly
			}
			if req.IgnorePinned != nil {
				opts.IgnorePinned = *req.IgnorePinned
			}
			if req.Mode != "" {
				opts.Mode = domain.Mode(req.Mode)
			}
		}

		count, err := d.Engine.GroupTabs(r.Context(), opts)
		if err != nil {
			d.Metrics.RecordOperation("group", "error")
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		d.Metrics.RecordOperation("group", "ok")
		d.Metrics.AddGroups(count)
		writeJSON(w, http.StatusOK, countResponse{OK: true, Count: count})
	}
}

// UngroupAll dissolves every group in the current (or requested) window.
func UngroupAll(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req groupRequest
		if r.ContentLength > 0 && !decodeBody(w, r, &req) {
			return
		}
		count, err := d.Engine.UngroupAll(r.Context(), host.WindowID(req.WindowID))
		if err != nil {
			d.Metrics.RecordOperation("ungroup", "error")
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		d.Metrics.RecordOperation("ungroup", "ok")
		writeJSON(w, http.StatusOK, countResponse{OK: true, Count: count})
	}
}

// CollapseAll collapses every group in the current (or requested) window.
func CollapseAll(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req groupRequest
		if r.ContentLength > 0 && !decodeBody(w, r, &req) {
			return
		}
		count, err := d.Engine.CollapseAllGroups(r.Context(), host.WindowID(req.WindowID))
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, countResponse{OK: true, Count: count})
	}
}

// SmartMerge runs the three-tier merge on the current window.
func SmartMerge(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		count, err := d.Engine.SmartMerge(r.Context(), engine.MergeOptions{
			WindowOnly:   true,
			IgnorePinned: true,
		})
		if err != nil {
			d.Metrics.RecordOperation("smart_merge", "error")
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		d.Metrics.RecordOperation("smart_merge", "ok")
		d.Metrics.AddGroups(count)
		writeJSON(w, http.StatusOK, countResponse{OK: true, Count: count})
	}
}

// SplitBigGroups rebuilds oversized groups as capped chunks.
func SplitBigGroups(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		count, err := d.Engine.SplitBigGroups(r.Context())
		if err != nil {
			d.Metrics.RecordOperation("split", "error")
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		d.Metrics.RecordOperation("split", "ok")
		writeJSON(w, http.StatusOK, countResponse{OK: true, Count: count})
	}
}

// Undo reverses the last grouping pass.
func Undo(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		done, err := d.Engine.Undo(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		if !done {
			writeJSON(w, http.StatusOK, map[string]any{"ok": false, "reason": "nothing to undo"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	}
}

// MergeWindows pulls every other window's tabs into the current one.
func MergeWindows(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		count, err := d.Engine.MergeAllWindows(r.Context(), true)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, countResponse{OK: true, Count: count})
	}
}

// GroupsToWindows breaks each group out into its own window.
func GroupsToWindows(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		count, err := d.Engine.GroupsToWindows(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, countResponse{OK: true, Count: count})
	}
}

// Templates lists the built-in template names.
func Templates(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "templates": domain.TemplateNames()})
	}
}

// ApplyTemplate opens a named template's groups in the current window.
func ApplyTemplate(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		count, err := d.Engine.ApplyTemplate(r.Context(), name)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		d.Metrics.AddGroups(count)
		writeJSON(w, http.StatusOK, countResponse{OK: true, Count: count})
	}
}
