package workspace

import (
	"context"
	"fmt"
	"time"

	"github.com/nadalpiantini/tabgrouper/internal/domain"
	"github.com/nadalpiantini/tabgrouper/internal/host"
)

// CaptureOptions names a capture. Tags and Notes are optional.
type CaptureOptions struct {
	Name  string   `json:"name"`
	Tags  []string `json:"tags"`
	Notes string   `json:"notes"`
}

// Capture snapshots every open window into a WorkspaceSnapshot. It reads
// live host state without mutating it; pinned tabs and tab metadata are
// included per the stored settings.
func (m *Manager) Capture(ctx context.Context, opts CaptureOptions) (*domain.WorkspaceSnapshot, error) {
	if opts.Name == "" {
		return nil, fmt.Errorf("workspace name is required")
	}

	settings, err := m.store.Settings(ctx)
	if err != nil {
		return nil, err
	}

	windows, err := m.host.ListWindows(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list windows: %w", err)
	}

	snap := &domain.WorkspaceSnapshot{
		Name:  opts.Name,
		Date:  time.Now().UTC(),
		Tags:  append([]string(nil), opts.Tags...),
		Notes: opts.Notes,
	}

	for _, w := range windows {
		ws, err := m.captureWindow(ctx, w, settings.IncludePinned, settings.IncludeMeta)
		if err != nil {
			return nil, err
		}
		snap.Windows = append(snap.Windows, *ws)
	}

	snap.Stats = domain.Summarize(snap.Windows)
	return snap, nil
}

func (m *Manager) captureWindow(ctx context.Context, w host.Window, includePinned, includeMeta bool) (*domain.WindowSnapshot, error) {
	tabs, err := m.host.ListTabs(ctx, host.TabFilter{WindowID: w.ID})
	if err != nil {
		return nil, fmt.Errorf("failed to list tabs of window %d: %w", w.ID, err)
	}
	groups, err := m.host.ListGroups(ctx, host.GroupFilter{WindowID: w.ID})
	if err != nil {
		return nil, fmt.Errorf("failed to list groups of window %d: %w", w.ID, err)
	}

	ws := &domain.WindowSnapshot{Bounds: w.Bounds}

	// Partition tabs by group id, preserving host-reported tab order within
	// each bucket.
	byGroup := make(map[host.GroupID][]domain.TabRecord)
	for _, t := range tabs {
		if t.Pinned && !includePinned {
			continue
		}
		rec := domain.TabRecord{URL: t.URL, Pinned: t.Pinned}
		if includeMeta {
			rec.Title = t.Title
			rec.Favicon = t.Favicon
		}
		byGroup[t.GroupID] = append(byGroup[t.GroupID], rec)
	}

	for _, g := range groups {
		members := byGroup[g.ID]
		if len(members) == 0 {
			continue
		}
		ws.Groups = append(ws.Groups, domain.GroupRecord{
			Title: g.Title,
			Color: g.Color,
			Tabs:  members,
		})
	}
	ws.Ungrouped = byGroup[host.GroupNone]

	return ws, nil
}

// Save captures the current session and persists it under opts.Name. The
// store rejects a name that already exists.
func (m *Manager) Save(ctx context.Context, opts CaptureOptions) (*domain.WorkspaceSnapshot, error) {
	snap, err := m.Capture(ctx, opts)
	if err != nil {
		return nil, err
	}
	if err := m.store.SaveWorkspace(ctx, snap); err != nil {
		return nil, err
	}
	return snap, nil
}
