package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/nadalpiantini/tabgrouper/internal/httpserver/deps"
	"github.com/nadalpiantini/tabgrouper/internal/httpserver/handlers"
)

func init() { Register(registerLayouts) }

func registerLayouts(r chi.Router, d deps.Deps) {
	r.Get("/api/layouts", handlers.ListLayouts(d))
	r.Post("/api/layouts", handlers.SaveLayout(d))
	r.Post("/api/layouts/{name}/load", handlers.LoadLayout(d))
	r.Delete("/api/layouts/{name}", handlers.DeleteLayout(d))
	r.Post("/api/layouts/quick/{name}", handlers.QuickLayout(d))
	r.Post("/api/windows/position", handlers.PositionWindow(d))

	r.Get("/api/profiles", handlers.ListProfiles(d))
	r.Get("/api/profiles/status", handlers.ProfileStatus(d))
	r.Post("/api/profiles/{name}/apply", handlers.ApplyProfile(d))
}
