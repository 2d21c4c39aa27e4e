package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/nadalpiantini/tabgrouper/internal/domain"
	"github.com/nadalpiantini/tabgrouper/internal/host"
	"github.com/nadalpiantini/tabgrouper/internal/logger"
)

// MergeOptions scopes a smart merge. Zero WindowID with WindowOnly set
// targets the current window.
type MergeOptions struct {
	WindowID     host.WindowID
	WindowOnly   bool
	IgnorePinned bool
}

// SmartMerge buckets tabs by a three-tier key, strict priority order:
// a whitelisted hostname gets its own bucket, then a preset rule match
// buckets by group label, then everything else falls back to the normalized
// base host. Buckets over groupMaxTabs are chunked into fixed-size slices
// at creation. Returns the number of groups created.
func (e *Engine) SmartMerge(ctx context.Context, opts MergeOptions) (int, error) {
	cfg, err := e.store.GroupingConfig(ctx)
	if err != nil {
		return 0, err
	}
	windowID, err := e.resolveWindow(ctx, opts.WindowID, opts.WindowOnly)
	if err != nil {
		return 0, err
	}

	tabs, err := e.host.ListTabs(ctx, host.TabFilter{WindowID: windowID})
	if err != nil {
		return 0, fmt.Errorf("failed to list tabs: %w", err)
	}

	buckets := make(map[string]*bucket)
	var order []string
	for _, t := range tabs {
		if opts.IgnorePinned && t.Pinned {
			continue
		}
		if domain.IsIgnored(t.URL, cfg) {
			continue
		}

		key, title, color := mergeKey(t.URL, cfg)
		b, ok := buckets[key]
		if !ok {
			b = &bucket{title: title, color: color}
			buckets[key] = b
			order = append(order, key)
		}
		b.tabIDs = append(b.tabIDs, t.ID)
	}

	created := 0
	for _, key := range order {
		b := buckets[key]
		n, err := e.materializeChunked(ctx, b, cfg.GroupMaxTabs)
		if err != nil {
			return created, err
		}
		created += n
	}

	if err := e.maybeAutoCollapse(ctx, windowID, cfg); err != nil {
		e.log.Warn("auto-collapse after merge failed", logger.Error(err))
	}
	e.autosave(ctx)

	e.log.Info("smart merge complete",
		logger.Int("window", int(windowID)),
		logger.Int("buckets", len(order)),
		logger.Int("groups", created))
	return created, nil
}

// mergeKey resolves the bucket for one URL. The key is namespaced per tier
// so a whitelisted host never collides with a preset label of the same text.
func mergeKey(rawURL string, cfg *domain.GroupingConfig) (key, title string, color domain.Color) {
	if hostname := domain.Hostname(rawURL); hostname != "" && cfg.Whitelisted(hostname) {
		return "wl:" + hostname, hostname, ""
	}
	if m := domain.MatchPreset(rawURL, cfg); m != nil {
		return "px:" + m.Group, m.Group, m.Color
	}
	bh := domain.BaseHost(rawURL, cfg.NormalizeSubdomains)
	if bh == "" {
		bh = "misc"
	}
	return "bh:" + bh, bh, ""
}

// materializeChunked slices a bucket into groups of at most max tabs. A
// bucket that fits in one chunk keeps its bare title; otherwise every chunk
// gets a 1-based " (n)" suffix. Chunk boundaries are fixed-size slicing over
// bucket order, not semantic re-clustering.
func (e *Engine) materializeChunked(ctx context.Context, b *bucket, max int) (int, error) {
	chunks := chunkIDs(b.tabIDs, max)
	for i, chunk := range chunks {
		title := b.title
		if len(chunks) > 1 {
			title = fmt.Sprintf("%s (%d)", b.title, i+1)
		}
		if err := e.materializeGroup(ctx, chunk, title, b.color); err != nil {
			return i, err
		}
	}
	return len(chunks), nil
}

// chunkIDs slices ids into ceil(len/max) pieces preserving order.
func chunkIDs(ids []host.TabID, max int) [][]host.TabID {
	if max <= 0 || len(ids) == 0 {
		return nil
	}
	chunks := make([][]host.TabID, 0, (len(ids)+max-1)/max)
	for i := 0; i < len(ids); i += max {
		end := i + max
		if end > len(ids) {
			end = len(ids)
		}
		chunks = append(chunks, ids[i:end])
	}
	return chunks
}

// maybeAutoCollapse applies the configured collapse policy: selective
// collapse by title prefix when enabled, otherwise collapse everything when
// autoCollapseAfterMerge is set.
func (e *Engine) maybeAutoCollapse(ctx context.Context, windowID host.WindowID, cfg *domain.GroupingConfig) error {
	if !cfg.AutoCollapseAfterMerge && !cfg.AutoCollapseByType.Enabled {
		return nil
	}
	groups, err := e.host.ListGroups(ctx, host.GroupFilter{WindowID: windowID})
	if err != nil {
		return fmt.Errorf("failed to list groups: %w", err)
	}

	if cfg.AutoCollapseByType.Enabled {
		for _, g := range groups {
			if !matchesAnyPrefix(g.Title, cfg.AutoCollapseByType.Only) {
				continue
			}
			if err := e.host.UpdateGroup(ctx, g.ID, host.GroupUpdate{Collapsed: host.BoolPtr(true)}); err != nil {
				return err
			}
		}
		return nil
	}

	for _, g := range groups {
		if err := e.host.UpdateGroup(ctx, g.ID, host.GroupUpdate{Collapsed: host.BoolPtr(true)}); err != nil {
			return err
		}
	}
	return nil
}

func matchesAnyPrefix(title string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(title, p) {
			return true
		}
	}
	return false
}
