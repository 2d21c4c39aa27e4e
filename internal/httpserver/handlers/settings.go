package handlers

import (
	"net/http"

	"github.com/nadalpiantini/tabgrouper/internal/domain"
	"github.com/nadalpiantini/tabgrouper/internal/httpserver/deps"
	"github.com/nadalpiantini/tabgrouper/internal/store"
)

// GetConfig returns the grouping configuration.
func GetConfig(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg, err := d.Store.GroupingConfig(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "config": cfg})
	}
}

// SetConfig replaces the grouping configuration.
func SetConfig(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var cfg domain.GroupingConfig
		if !decodeBody(w, r, &cfg) {
			return
		}
		if err := d.Store.SetGroupingConfig(r.Context(), &cfg); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	}
}

// GetRules returns the user-defined custom category rules.
func GetRules(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rules, err := d.Store.CustomRules(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "rules": rules})
	}
}

// SetRules replaces the user-defined custom category rules.
func SetRules(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var rules []domain.Rule
		if !decodeBody(w, r, &rules) {
			return
		}
		if err := d.Store.SetCustomRules(r.Context(), rules); err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	}
}

// GetSettings returns the workspace capture/autosave settings.
func GetSettings(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		settings, err := d.Store.Settings(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "settings": settings})
	}
}

// SetSettings replaces the workspace capture/autosave settings.
func SetSettings(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var settings store.Settings
		if !decodeBody(w, r, &settings) {
			return
		}
		if err := d.Store.SetSettings(r.Context(), settings); err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	}
}

// GetLegacySettings returns the flat grouping-form toggles.
func GetLegacySettings(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		settings, err := d.Store.LegacySettings(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "settings": settings})
	}
}

// SetLegacySettings replaces the flat grouping-form toggles.
func SetLegacySettings(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var settings store.LegacySettings
		if !decodeBody(w, r, &settings) {
			return
		}
		if err := d.Store.SetLegacySettings(r.Context(), settings); err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	}
}
