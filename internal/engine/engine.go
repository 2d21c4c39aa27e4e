// Package engine implements the tab bucketing operations: rule-driven
// grouping, smart merge with chunking, big-group splitting, window
// consolidation and the single-step undo.
package engine

import (
	"context"

	"github.com/nadalpiantini/tabgrouper/internal/host"
	"github.com/nadalpiantini/tabgrouper/internal/logger"
	"github.com/nadalpiantini/tabgrouper/internal/store"
	"github.com/nadalpiantini/tabgrouper/internal/workspace"
)

// Engine drives the host adapter from the stored configuration. It autosaves
// through the workspace manager after destructive operations.
type Engine struct {
	host       host.Adapter
	store      *store.Store
	workspaces *workspace.Manager
	log        logger.Logger
}

func New(h host.Adapter, s *store.Store, wm *workspace.Manager, log logger.Logger) *Engine {
	return &Engine{host: h, store: s, workspaces: wm, log: log}
}

// autosave triggers a best-effort session autosave. Failures are logged and
// swallowed so they never abort the grouping operation that succeeded.
func (e *Engine) autosave(ctx context.Context) {
	if _, err := e.workspaces.Autosave(ctx); err != nil {
		e.log.Warn("autosave after operation failed", logger.Error(err))
	}
}
