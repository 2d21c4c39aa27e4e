package engine

import (
	"context"
	"fmt"

	"github.com/nadalpiantini/tabgrouper/internal/host"
	"github.com/nadalpiantini/tabgrouper/internal/logger"
)

// SplitBigGroups rebuilds every group of the current window whose member
// count exceeds groupMaxTabs as fixed-size chunks titled
// "<original> (<n>)", preserving the group color. Once every group is under
// the cap, further calls are no-ops. Returns the number of groups split.
func (e *Engine) SplitBigGroups(ctx context.Context) (int, error) {
	cfg, err := e.store.GroupingConfig(ctx)
	if err != nil {
		return 0, err
	}
	current, err := e.host.CurrentWindow(ctx)
	if err != nil {
		return 0, fmt.Errorf("no current window: %w", err)
	}
	tabs, err := e.host.ListTabs(ctx, host.TabFilter{WindowID: current.ID})
	if err != nil {
		return 0, fmt.Errorf("failed to list tabs: %w", err)
	}
	groups, err := e.host.ListGroups(ctx, host.GroupFilter{WindowID: current.ID})
	if err != nil {
		return 0, fmt.Errorf("failed to list groups: %w", err)
	}

	affected := 0
	for _, g := range groups {
		var ids []host.TabID
		for _, t := range tabs {
			if t.GroupID == g.ID {
				ids = append(ids, t.ID)
			}
		}
		if len(ids) <= cfg.GroupMaxTabs {
			continue
		}

		if err := e.host.UngroupTabs(ctx, ids); err != nil {
			return affected, fmt.Errorf("failed to ungroup %q: %w", g.Title, err)
		}

		title := g.Title
		if title == "" {
			title = "Group"
		}
		for i, chunk := range chunkIDs(ids, cfg.GroupMaxTabs) {
			chunkTitle := fmt.Sprintf("%s (%d)", title, i+1)
			if err := e.materializeGroup(ctx, chunk, chunkTitle, g.Color); err != nil {
				return affected, err
			}
		}
		affected++
	}

	if err := e.maybeAutoCollapse(ctx, current.ID, cfg); err != nil {
		e.log.Warn("auto-collapse after split failed", logger.Error(err))
	}
	e.autosave(ctx)

	if affected > 0 {
		e.log.Info("split oversized groups",
			logger.Int("window", int(current.ID)),
			logger.Int("affected", affected))
	}
	return affected, nil
}
