package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/nadalpiantini/tabgrouper/internal/httpserver/deps"
	"github.com/nadalpiantini/tabgrouper/internal/httpserver/handlers"
)

func init() { Register(registerGroups) }

func registerGroups(r chi.Router, d deps.Deps) {
	r.Post("/api/command", handlers.Command(d))

	r.Post("/api/group", handlers.GroupTabs(d))
	r.Post("/api/ungroup", handlers.UngroupAll(d))
	r.Post("/api/collapse", handlers.CollapseAll(d))
	r.Post("/api/merge", handlers.SmartMerge(d))
	r.Post("/api/split", handlers.SplitBigGroups(d))
	r.Post("/api/undo", handlers.Undo(d))
	r.Post("/api/windows/merge", handlers.MergeWindows(d))
	r.Post("/api/windows/from-groups", handlers.GroupsToWindows(d))

	r.Get("/api/templates", handlers.Templates(d))
	r.Post("/api/templates/{name}/apply", handlers.ApplyTemplate(d))
}
