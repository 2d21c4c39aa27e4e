package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/nadalpiantini/tabgrouper/internal/httpserver/deps"
	"github.com/nadalpiantini/tabgrouper/internal/httpserver/handlers"
)

func init() { Register(registerSettings) }

func registerSettings(r chi.Router, d deps.Deps) {
	r.Get("/api/config", handlers.GetConfig(d))
	r.Put("/api/config", handlers.SetConfig(d))
	r.Get("/api/rules", handlers.GetRules(d))
	r.Put("/api/rules", handlers.SetRules(d))
	r.Get("/api/settings", handlers.GetSettings(d))
	r.Put("/api/settings", handlers.SetSettings(d))
	r.Get("/api/settings/legacy", handlers.GetLegacySettings(d))
	r.Put("/api/settings/legacy", handlers.SetLegacySettings(d))
}
