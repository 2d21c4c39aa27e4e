package workspace

import (
	"context"
	"fmt"

	"github.com/nadalpiantini/tabgrouper/internal/domain"
	"github.com/nadalpiantini/tabgrouper/internal/host"
	"github.com/nadalpiantini/tabgrouper/internal/logger"
)

// RestoreMode governs how a snapshot is rehydrated relative to the live
// windows.
type RestoreMode string

const (
	// RestoreNewWindow materializes every snapshot window as a fresh host
	// window and never touches existing ones.
	RestoreNewWindow RestoreMode = "NEW_WINDOW"
	// RestoreReplaceCurrent empties the current window and reuses it for the
	// first snapshot window; subsequent ones get new windows.
	RestoreReplaceCurrent RestoreMode = "REPLACE_CURRENT"
	// RestoreMergeCurrent appends the first snapshot window into the current
	// window without closing anything; subsequent ones get new windows.
	RestoreMergeCurrent RestoreMode = "MERGE_CURRENT"
)

// ParseRestoreMode validates a caller-provided mode string. An empty string
// defaults to NEW_WINDOW.
func ParseRestoreMode(s string) (RestoreMode, error) {
	switch RestoreMode(s) {
	case "":
		return RestoreNewWindow, nil
	case RestoreNewWindow, RestoreReplaceCurrent, RestoreMergeCurrent:
		return RestoreMode(s), nil
	}
	return "", fmt.Errorf("unknown restore mode %q", s)
}

// Restore rehydrates the named workspace. A missing name surfaces
// store.ErrWorkspaceNotFound, never a silent no-op.
func (m *Manager) Restore(ctx context.Context, name string, mode RestoreMode) error {
	snap, err := m.store.GetWorkspace(ctx, name)
	if err != nil {
		return err
	}
	return m.restoreSnapshot(ctx, snap, mode)
}

// RestoreAutosave rehydrates an autosave by its stable id.
func (m *Manager) RestoreAutosave(ctx context.Context, id int64, mode RestoreMode) error {
	snap, err := m.store.GetAutosave(ctx, id)
	if err != nil {
		return err
	}
	return m.restoreSnapshot(ctx, snap, mode)
}

func (m *Manager) restoreSnapshot(ctx context.Context, snap *domain.WorkspaceSnapshot, mode RestoreMode) error {
	if len(snap.Windows) == 0 {
		return fmt.Errorf("workspace %q has no windows", snap.Name)
	}

	m.log.Info("restoring workspace",
		logger.String("name", snap.Name),
		logger.String("mode", string(mode)),
		logger.Int("windows", len(snap.Windows)))

	switch mode {
	case RestoreNewWindow:
		for i := range snap.Windows {
			if err := m.restoreIntoNewWindow(ctx, &snap.Windows[i]); err != nil {
				return err
			}
		}
		return nil

	case RestoreReplaceCurrent:
		current, err := m.host.CurrentWindow(ctx)
		if err != nil {
			return fmt.Errorf("no current window: %w", err)
		}
		if err := m.closeAllTabs(ctx, current.ID); err != nil {
			return err
		}
		if err := m.host.UpdateWindow(ctx, current.ID, snap.Windows[0].Bounds); err != nil {
			m.log.Warn("failed to apply window bounds",
				logger.Int("window", int(current.ID)), logger.Error(err))
		}
		if err := m.restoreWindowInto(ctx, current.ID, &snap.Windows[0]); err != nil {
			return err
		}
		for i := 1; i < len(snap.Windows); i++ {
			if err := m.restoreIntoNewWindow(ctx, &snap.Windows[i]); err != nil {
				return err
			}
		}
		return nil

	case RestoreMergeCurrent:
		current, err := m.host.CurrentWindow(ctx)
		if err != nil {
			return fmt.Errorf("no current window: %w", err)
		}
		if err := m.restoreWindowInto(ctx, current.ID, &snap.Windows[0]); err != nil {
			return err
		}
		for i := 1; i < len(snap.Windows); i++ {
			if err := m.restoreIntoNewWindow(ctx, &snap.Windows[i]); err != nil {
				return err
			}
		}
		return nil
	}

	return fmt.Errorf("unknown restore mode %q", mode)
}

func (m *Manager) restoreIntoNewWindow(ctx context.Context, ws *domain.WindowSnapshot) error {
	w, err := m.host.CreateWindow(ctx, ws.Bounds)
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}
	return m.restoreWindowInto(ctx, w.ID, ws)
}

// restoreWindowInto repopulates one window: ungrouped tabs first, then each
// group in snapshot order. A tab that fails to create is logged and omitted
// from its group; partial success is the designed failure mode.
func (m *Manager) restoreWindowInto(ctx context.Context, windowID host.WindowID, ws *domain.WindowSnapshot) error {
	for _, rec := range ws.Ungrouped {
		if _, err := m.createTab(ctx, windowID, rec); err != nil {
			m.log.Warn("skipping tab that failed to restore",
				logger.String("url", rec.URL), logger.Error(err))
		}
	}

	for _, g := range ws.Groups {
		ids := make([]host.TabID, 0, len(g.Tabs))
		for _, rec := range g.Tabs {
			tab, err := m.createTab(ctx, windowID, rec)
			if err != nil {
				m.log.Warn("skipping tab that failed to restore",
					logger.String("group", g.Title),
					logger.String("url", rec.URL),
					logger.Error(err))
				continue
			}
			ids = append(ids, tab.ID)
		}
		if len(ids) == 0 {
			continue
		}

		groupID, err := m.host.GroupTabs(ctx, ids, host.GroupTabsOptions{WindowID: windowID})
		if err != nil {
			m.log.Warn("failed to group restored tabs",
				logger.String("group", g.Title), logger.Error(err))
			continue
		}
		update := host.GroupUpdate{Title: host.StringPtr(g.Title)}
		if g.Color.Valid() {
			update.Color = host.ColorPtr(g.Color)
		}
		if err := m.host.UpdateGroup(ctx, groupID, update); err != nil {
			m.log.Warn("failed to style restored group",
				logger.String("group", g.Title), logger.Error(err))
		}
	}

	return nil
}

func (m *Manager) createTab(ctx context.Context, windowID host.WindowID, rec domain.TabRecord) (host.Tab, error) {
	return m.host.CreateTab(ctx, host.CreateTabOptions{
		WindowID: windowID,
		URL:      rec.URL,
		Pinned:   rec.Pinned,
	})
}

func (m *Manager) closeAllTabs(ctx context.Context, windowID host.WindowID) error {
	tabs, err := m.host.ListTabs(ctx, host.TabFilter{WindowID: windowID})
	if err != nil {
		return fmt.Errorf("failed to list tabs: %w", err)
	}
	if len(tabs) == 0 {
		return nil
	}
	ids := make([]host.TabID, 0, len(tabs))
	for _, t := range tabs {
		ids = append(ids, t.ID)
	}
	if err := m.host.RemoveTabs(ctx, ids); err != nil {
		return fmt.Errorf("failed to close tabs: %w", err)
	}
	return nil
}
