package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nadalpiantini/tabgrouper/internal/httpserver/deps"
)

// ProfileStatus reports whether the optional profile bridge is reachable.
// Unavailable is a normal answer here, never an error.
func ProfileStatus(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		connected := d.Bridge != nil && d.Bridge.Connect(r.Context())
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "connected": connected})
	}
}

// ListProfiles returns the bridge's profiles, or an empty set when the
// bridge is unavailable.
func ListProfiles(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.Bridge == nil {
			writeJSON(w, http.StatusOK, map[string]any{"ok": true, "profiles": map[string]any{}})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "profiles": d.Bridge.Profiles(r.Context())})
	}
}

// ApplyProfile activates a bridge profile. applied=false means the bridge
// was unavailable or refused, which degrades rather than fails.
func ApplyProfile(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		applied := d.Bridge != nil && d.Bridge.Apply(r.Context(), chi.URLParam(r, "name"))
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "applied": applied})
	}
}
