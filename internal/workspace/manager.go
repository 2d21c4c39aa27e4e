// Package workspace implements the session snapshot engine: capture of live
// windows into durable workspace snapshots, the three restore modes, the
// autosave ring and the import/export codec.
package workspace

import (
	"context"
	"fmt"
	"time"

	"github.com/nadalpiantini/tabgrouper/internal/host"
	"github.com/nadalpiantini/tabgrouper/internal/logger"
	"github.com/nadalpiantini/tabgrouper/internal/store"
)

// Manager coordinates the host adapter and the durable store for every
// workspace operation.
type Manager struct {
	host  host.Adapter
	store *store.Store
	log   logger.Logger
}

func NewManager(h host.Adapter, s *store.Store, log logger.Logger) *Manager {
	return &Manager{host: h, store: s, log: log}
}

// Autosave captures the current session into the local autosave ring. It is
// a no-op returning (0, nil) when autosave is disabled in settings.
func (m *Manager) Autosave(ctx context.Context) (int64, error) {
	settings, err := m.store.Settings(ctx)
	if err != nil {
		return 0, err
	}
	if !settings.AutosaveEnabled {
		return 0, nil
	}

	snap, err := m.Capture(ctx, CaptureOptions{
		Name: fmt.Sprintf("Autosave %s", time.Now().Format("2006-01-02 15:04")),
	})
	if err != nil {
		return 0, fmt.Errorf("autosave capture failed: %w", err)
	}
	if snap.Stats.Tabs == 0 {
		// Nothing open, nothing worth keeping.
		return 0, nil
	}

	id, err := m.store.PushAutosave(ctx, snap, settings.AutosaveMax)
	if err != nil {
		return 0, err
	}

	m.log.Debug("autosaved session",
		logger.Int64("id", id),
		logger.Int("windows", snap.Stats.Windows),
		logger.Int("tabs", snap.Stats.Tabs))
	return id, nil
}
