package engine

import (
	"context"
	"fmt"

	"github.com/nadalpiantini/tabgrouper/internal/domain"
	"github.com/nadalpiantini/tabgrouper/internal/host"
	"github.com/nadalpiantini/tabgrouper/internal/logger"
)

// GroupOptions scopes a grouping pass. Zero WindowID with WindowOnly set
// targets the current window; WindowOnly false spans every window.
type GroupOptions struct {
	WindowID     host.WindowID
	WindowOnly   bool
	IgnorePinned bool
	Mode         domain.Mode
}

// DefaultGroupOptions builds options from the stored legacy settings.
func (e *Engine) DefaultGroupOptions(ctx context.Context) (GroupOptions, error) {
	settings, err := e.store.LegacySettings(ctx)
	if err != nil {
		return GroupOptions{}, err
	}
	return GroupOptions{
		WindowOnly:   settings.WindowOnly,
		IgnorePinned: settings.IgnorePinned,
		Mode:         settings.Mode,
	}, nil
}

// bucket accumulates tab ids sharing a grouping key, in first-seen order.
type bucket struct {
	title  string
	color  domain.Color
	tabIDs []host.TabID
}

// GroupTabs partitions ungrouped tabs into groups keyed by the categorizer.
// Already-grouped tabs are never re-grouped, which makes repeated runs
// idempotent. An undo snapshot is taken before the first mutation so undo
// reflects the pre-grouping state. Returns the number of groups created.
func (e *Engine) GroupTabs(ctx context.Context, opts GroupOptions) (int, error) {
	windowID, err := e.resolveWindow(ctx, opts.WindowID, opts.WindowOnly)
	if err != nil {
		return 0, err
	}
	if opts.Mode == "" {
		opts.Mode = domain.ModeDomain
	}

	if err := e.saveUndoSnapshot(ctx, windowID); err != nil {
		return 0, err
	}

	tabs, err := e.host.ListTabs(ctx, host.TabFilter{WindowID: windowID})
	if err != nil {
		return 0, fmt.Errorf("failed to list tabs: %w", err)
	}

	var rules []domain.Rule
	if opts.Mode == domain.ModeCategory {
		custom, err := e.store.CustomRules(ctx)
		if err != nil {
			return 0, err
		}
		rules = domain.MergedRules(custom)
	}

	buckets := make(map[string]*bucket)
	var order []string
	for _, t := range tabs {
		if opts.IgnorePinned && t.Pinned {
			continue
		}
		if t.GroupID != host.GroupNone {
			continue
		}
		cat := domain.Categorize(t.URL, opts.Mode, rules)
		if cat == nil {
			continue
		}
		b, ok := buckets[cat.Key]
		if !ok {
			b = &bucket{title: cat.Key, color: cat.Color}
			buckets[cat.Key] = b
			order = append(order, cat.Key)
		}
		b.tabIDs = append(b.tabIDs, t.ID)
	}

	created := 0
	for i, key := range order {
		b := buckets[key]
		if len(b.tabIDs) == 0 {
			continue
		}
		color := b.color
		if !color.Valid() {
			// Domain mode carries no rule color; cycle the palette so
			// adjacent groups stay visually distinct.
			color = domain.PaletteColor(i)
		}
		if err := e.materializeGroup(ctx, b.tabIDs, b.title, color); err != nil {
			return created, err
		}
		created++
	}

	e.log.Info("grouped tabs",
		logger.Int("window", int(windowID)),
		logger.String("mode", string(opts.Mode)),
		logger.Int("groups", created))
	return created, nil
}

func (e *Engine) materializeGroup(ctx context.Context, ids []host.TabID, title string, color domain.Color) error {
	gid, err := e.host.GroupTabs(ctx, ids, host.GroupTabsOptions{})
	if err != nil {
		return fmt.Errorf("failed to group %q: %w", title, err)
	}
	update := host.GroupUpdate{
		Title:     host.StringPtr(title),
		Collapsed: host.BoolPtr(false),
	}
	if color.Valid() {
		update.Color = host.ColorPtr(color)
	}
	if err := e.host.UpdateGroup(ctx, gid, update); err != nil {
		return fmt.Errorf("failed to style group %q: %w", title, err)
	}
	return nil
}

// UngroupAll removes every tab in the window from its group. Returns the
// number of tabs ungrouped.
func (e *Engine) UngroupAll(ctx context.Context, windowID host.WindowID) (int, error) {
	windowID, err := e.resolveWindow(ctx, windowID, true)
	if err != nil {
		return 0, err
	}
	tabs, err := e.host.ListTabs(ctx, host.TabFilter{WindowID: windowID})
	if err != nil {
		return 0, fmt.Errorf("failed to list tabs: %w", err)
	}

	var ids []host.TabID
	for _, t := range tabs {
		if t.GroupID != host.GroupNone {
			ids = append(ids, t.ID)
		}
	}
	if len(ids) == 0 {
		return 0, nil
	}
	if err := e.host.UngroupTabs(ctx, ids); err != nil {
		return 0, fmt.Errorf("failed to ungroup tabs: %w", err)
	}
	return len(ids), nil
}

// CollapseAllGroups collapses every group in the window. Returns the number
// of groups touched.
func (e *Engine) CollapseAllGroups(ctx context.Context, windowID host.WindowID) (int, error) {
	windowID, err := e.resolveWindow(ctx, windowID, true)
	if err != nil {
		return 0, err
	}
	groups, err := e.host.ListGroups(ctx, host.GroupFilter{WindowID: windowID})
	if err != nil {
		return 0, fmt.Errorf("failed to list groups: %w", err)
	}
	for _, g := range groups {
		if err := e.host.UpdateGroup(ctx, g.ID, host.GroupUpdate{Collapsed: host.BoolPtr(true)}); err != nil {
			return 0, fmt.Errorf("failed to collapse group %q: %w", g.Title, err)
		}
	}
	return len(groups), nil
}

// MergeAllWindows moves every other window's tabs into the current one.
// Returns the number of windows whose tabs were merged in. A window that
// fails to move is logged and skipped.
func (e *Engine) MergeAllWindows(ctx context.Context, ignorePinned bool) (int, error) {
	windows, err := e.host.ListWindows(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list windows: %w", err)
	}
	if len(windows) <= 1 {
		return 0, nil
	}
	current, err := e.host.CurrentWindow(ctx)
	if err != nil {
		return 0, fmt.Errorf("no current window: %w", err)
	}

	merged := 0
	for _, w := range windows {
		if w.ID == current.ID {
			continue
		}
		tabs, err := e.host.ListTabs(ctx, host.TabFilter{WindowID: w.ID})
		if err != nil {
			e.log.Warn("skipping window that failed to enumerate",
				logger.Int("window", int(w.ID)), logger.Error(err))
			continue
		}
		var ids []host.TabID
		for _, t := range tabs {
			if ignorePinned && t.Pinned {
				continue
			}
			ids = append(ids, t.ID)
		}
		if len(ids) == 0 {
			continue
		}
		if err := e.host.MoveTabs(ctx, ids, host.MoveTabsOptions{WindowID: current.ID, Index: -1}); err != nil {
			e.log.Warn("failed to move tabs from window",
				logger.Int("window", int(w.ID)), logger.Error(err))
			continue
		}
		merged++
	}
	return merged, nil
}

// GroupsToWindows breaks every group of the current window out into its own
// window, recreating the group there with its title, color and collapsed
// state. Returns the number of windows created.
func (e *Engine) GroupsToWindows(ctx context.Context) (int, error) {
	current, err := e.host.CurrentWindow(ctx)
	if err != nil {
		return 0, fmt.Errorf("no current window: %w", err)
	}
	groups, err := e.host.ListGroups(ctx, host.GroupFilter{WindowID: current.ID})
	if err != nil {
		return 0, fmt.Errorf("failed to list groups: %w", err)
	}
	if len(groups) == 0 {
		return 0, nil
	}
	tabs, err := e.host.ListTabs(ctx, host.TabFilter{WindowID: current.ID})
	if err != nil {
		return 0, fmt.Errorf("failed to list tabs: %w", err)
	}

	created := 0
	for _, g := range groups {
		var ids []host.TabID
		for _, t := range tabs {
			if t.GroupID == g.ID {
				ids = append(ids, t.ID)
			}
		}
		if len(ids) == 0 {
			continue
		}

		w, err := e.host.CreateWindow(ctx, current.Bounds)
		if err != nil {
			e.log.Warn("failed to create window for group",
				logger.String("group", g.Title), logger.Error(err))
			continue
		}
		// Moving tabs across windows drops their group membership, so the
		// group is recreated in the new window afterwards.
		if err := e.host.MoveTabs(ctx, ids, host.MoveTabsOptions{WindowID: w.ID, Index: -1}); err != nil {
			e.log.Warn("failed to move group tabs",
				logger.String("group", g.Title), logger.Error(err))
			continue
		}
		gid, err := e.host.GroupTabs(ctx, ids, host.GroupTabsOptions{WindowID: w.ID})
		if err != nil {
			e.log.Warn("failed to regroup tabs in new window",
				logger.String("group", g.Title), logger.Error(err))
			continue
		}
		update := host.GroupUpdate{
			Title:     host.StringPtr(g.Title),
			Collapsed: host.BoolPtr(g.Collapsed),
		}
		if g.Color.Valid() {
			update.Color = host.ColorPtr(g.Color)
		}
		if err := e.host.UpdateGroup(ctx, gid, update); err != nil {
			e.log.Warn("failed to style regrouped tabs",
				logger.String("group", g.Title), logger.Error(err))
		}
		created++
	}
	return created, nil
}

// ApplyTemplate opens a built-in template's groups in the current window.
// Returns the number of groups created.
func (e *Engine) ApplyTemplate(ctx context.Context, name string) (int, error) {
	groups := domain.Template(name)
	if groups == nil {
		return 0, fmt.Errorf("unknown template %q", name)
	}
	current, err := e.host.CurrentWindow(ctx)
	if err != nil {
		return 0, fmt.Errorf("no current window: %w", err)
	}

	created := 0
	for _, g := range groups {
		var ids []host.TabID
		for _, rec := range g.Tabs {
			tab, err := e.host.CreateTab(ctx, host.CreateTabOptions{WindowID: current.ID, URL: rec.URL})
			if err != nil {
				e.log.Warn("failed to open template tab",
					logger.String("url", rec.URL), logger.Error(err))
				continue
			}
			ids = append(ids, tab.ID)
		}
		if len(ids) == 0 {
			continue
		}
		if err := e.materializeGroup(ctx, ids, g.Title, g.Color); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

// resolveWindow maps the zero WindowID onto the current window when the
// operation is window-scoped.
func (e *Engine) resolveWindow(ctx context.Context, windowID host.WindowID, windowOnly bool) (host.WindowID, error) {
	if windowID != 0 || !windowOnly {
		return windowID, nil
	}
	current, err := e.host.CurrentWindow(ctx)
	if err != nil {
		return 0, fmt.Errorf("no current window: %w", err)
	}
	return current.ID, nil
}
