package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/nadalpiantini/tabgrouper/internal/httpserver/deps"
	"github.com/nadalpiantini/tabgrouper/internal/httpserver/handlers"
)

func init() { Register(registerWorkspaces) }

func registerWorkspaces(r chi.Router, d deps.Deps) {
	r.Get("/api/workspaces", handlers.ListWorkspaces(d))
	r.Post("/api/workspaces", handlers.SaveWorkspace(d))
	r.Get("/api/workspaces/export", handlers.ExportAll(d))
	r.Post("/api/workspaces/import", handlers.ImportWorkspaces(d))
	r.Get("/api/workspaces/{name}", handlers.GetWorkspace(d))
	r.Delete("/api/workspaces/{name}", handlers.DeleteWorkspace(d))
	r.Post("/api/workspaces/{name}/rename", handlers.RenameWorkspace(d))
	r.Post("/api/workspaces/{name}/duplicate", handlers.DuplicateWorkspace(d))
	r.Post("/api/workspaces/{name}/restore", handlers.RestoreWorkspace(d))
	r.Get("/api/workspaces/{name}/export", handlers.ExportWorkspace(d))

	r.Get("/api/autosaves", handlers.ListAutosaves(d))
	r.Post("/api/autosaves", handlers.TriggerAutosave(d))
	r.Post("/api/autosaves/{id}/restore", handlers.RestoreAutosave(d))
}
