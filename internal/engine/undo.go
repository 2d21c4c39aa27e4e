package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/nadalpiantini/tabgrouper/internal/host"
	"github.com/nadalpiantini/tabgrouper/internal/logger"
	"github.com/nadalpiantini/tabgrouper/internal/store"
)

// saveUndoSnapshot records every tab's group membership in scope before a
// grouping pass mutates anything. Zero windowID spans all windows.
func (e *Engine) saveUndoSnapshot(ctx context.Context, windowID host.WindowID) error {
	tabs, err := e.host.ListTabs(ctx, host.TabFilter{WindowID: windowID})
	if err != nil {
		return fmt.Errorf("failed to snapshot tabs for undo: %w", err)
	}

	snap := &store.UndoSnapshot{
		Timestamp: time.Now().UTC(),
		WindowID:  windowID,
		Tabs:      make([]store.UndoTab, 0, len(tabs)),
	}
	for _, t := range tabs {
		snap.Tabs = append(snap.Tabs, store.UndoTab{
			ID:      t.ID,
			GroupID: t.GroupID,
			Pinned:  t.Pinned,
		})
	}
	return e.store.SetUndo(ctx, snap)
}

// Undo reverses the last grouping pass: every tab that was ungrouped when
// the snapshot was taken is ungrouped again. It is a narrow best-effort
// inverse, not a full restore, and the snapshot is consumed regardless of
// outcome. Returns false when no snapshot is available.
func (e *Engine) Undo(ctx context.Context) (bool, error) {
	snap, err := e.store.Undo(ctx)
	if err != nil {
		return false, err
	}
	if snap == nil {
		return false, nil
	}

	for _, t := range snap.Tabs {
		if t.GroupID != host.GroupNone {
			continue
		}
		if err := e.host.UngroupTabs(ctx, []host.TabID{t.ID}); err != nil {
			// The tab may be gone by now; undo keeps going.
			e.log.Warn("could not restore tab during undo",
				logger.Int("tab", int(t.ID)), logger.Error(err))
		}
	}

	if err := e.store.ClearUndo(ctx); err != nil {
		return true, err
	}
	return true, nil
}
