package host

import (
	"context"
	"sort"
	"sync"

	"github.com/nadalpiantini/tabgrouper/internal/domain"
)

// MemoryHost is an in-memory host adapter. It backs the server when no real
// browser is attached and every engine test.
type MemoryHost struct {
	mu       sync.RWMutex
	workArea domain.Bounds
	windows  map[WindowID]*Window
	tabs     map[TabID]*Tab
	groups   map[GroupID]*Group
	order    map[WindowID][]TabID
	current  WindowID

	nextWindow WindowID
	nextTab    TabID
	nextGroup  GroupID
}

// NewMemoryHost creates an empty host with the given work area.
func NewMemoryHost(workArea domain.Bounds) *MemoryHost {
	return &MemoryHost{
		workArea: workArea,
		windows:  make(map[WindowID]*Window),
		tabs:     make(map[TabID]*Tab),
		groups:   make(map[GroupID]*Group),
		order:    make(map[WindowID][]TabID),
	}
}

// SetCurrent marks a window as the current one.
func (h *MemoryHost) SetCurrent(id WindowID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.windows[id]; ok {
		h.current = id
	}
}

func (h *MemoryHost) ListWindows(_ context.Context) ([]Window, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	wins := make([]Window, 0, len(h.windows))
	for _, w := range h.windows {
		wins = append(wins, *w)
	}
	sort.Slice(wins, func(i, j int) bool { return wins[i].ID < wins[j].ID })
	return wins, nil
}

func (h *MemoryHost) CurrentWindow(_ context.Context) (Window, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if w, ok := h.windows[h.current]; ok {
		return *w, nil
	}
	// Fall back to the lowest-id window.
	var best *Window
	for _, w := range h.windows {
		if best == nil || w.ID < best.ID {
			best = w
		}
	}
	if best == nil {
		return Window{}, ErrWindowNotFound
	}
	return *best, nil
}

func (h *MemoryHost) CreateWindow(_ context.Context, bounds domain.Bounds) (Window, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextWindow++
	w := &Window{ID: h.nextWindow, Bounds: bounds}
	h.windows[w.ID] = w
	h.order[w.ID] = nil
	if h.current == 0 {
		h.current = w.ID
	}
	return *w, nil
}

func (h *MemoryHost) RemoveWindow(_ context.Context, id WindowID) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.windows[id]; !ok {
		return ErrWindowNotFound
	}
	for _, tid := range h.order[id] {
		delete(h.tabs, tid)
	}
	for gid, g := range h.groups {
		if g.WindowID == id {
			delete(h.groups, gid)
		}
	}
	delete(h.order, id)
	delete(h.windows, id)
	if h.current == id {
		h.current = 0
	}
	return nil
}

func (h *MemoryHost) UpdateWindow(_ context.Context, id WindowID, bounds domain.Bounds) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	w, ok := h.windows[id]
	if !ok {
		return ErrWindowNotFound
	}
	w.Bounds = bounds
	return nil
}

func (h *MemoryHost) ListTabs(_ context.Context, f TabFilter) ([]Tab, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	var winIDs []WindowID
	if f.WindowID != 0 {
		if _, ok := h.windows[f.WindowID]; !ok {
			return nil, ErrWindowNotFound
		}
		winIDs = []WindowID{f.WindowID}
	} else {
		for id := range h.windows {
			winIDs = append(winIDs, id)
		}
		sort.Slice(winIDs, func(i, j int) bool { return winIDs[i] < winIDs[j] })
	}

	var tabs []Tab
	for _, wid := range winIDs {
		for i, tid := range h.order[wid] {
			t := *h.tabs[tid]
			t.Index = i
			tabs = append(tabs, t)
		}
	}
	return tabs, nil
}

func (h *MemoryHost) CreateTab(_ context.Context, opts CreateTabOptions) (Tab, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	wid := opts.WindowID
	if wid == 0 {
		wid = h.current
	}
	if _, ok := h.windows[wid]; !ok {
		return Tab{}, ErrWindowNotFound
	}

	h.nextTab++
	t := &Tab{
		ID:       h.nextTab,
		WindowID: wid,
		URL:      opts.URL,
		Pinned:   opts.Pinned,
		GroupID:  GroupNone,
	}
	h.tabs[t.ID] = t
	h.order[wid] = append(h.order[wid], t.ID)
	return *t, nil
}

// AddTab seeds a tab with metadata, for wiring up simulated sessions.
func (h *MemoryHost) AddTab(windowID WindowID, url, title string, pinned bool) (Tab, error) {
	t, err := h.CreateTab(context.Background(), CreateTabOptions{WindowID: windowID, URL: url, Pinned: pinned})
	if err != nil {
		return Tab{}, err
	}
	h.mu.Lock()
	h.tabs[t.ID].Title = title
	h.mu.Unlock()
	t.Title = title
	return t, nil
}

func (h *MemoryHost) RemoveTabs(_ context.Context, ids []TabID) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, id := range ids {
		t, ok := h.tabs[id]
		if !ok {
			return ErrTabNotFound
		}
		h.order[t.WindowID] = removeID(h.order[t.WindowID], id)
		h.dropFromGroupLocked(t)
		delete(h.tabs, id)
	}
	return nil
}

func (h *MemoryHost) MoveTabs(_ context.Context, ids []TabID, opts MoveTabsOptions) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.windows[opts.WindowID]; !ok {
		return ErrWindowNotFound
	}
	for _, id := range ids {
		t, ok := h.tabs[id]
		if !ok {
			return ErrTabNotFound
		}
		h.order[t.WindowID] = removeID(h.order[t.WindowID], id)
		h.dropFromGroupLocked(t)
		t.WindowID = opts.WindowID
		t.GroupID = GroupNone
		if opts.Index < 0 || opts.Index >= len(h.order[opts.WindowID]) {
			h.order[opts.WindowID] = append(h.order[opts.WindowID], id)
		} else {
			tail := h.order[opts.WindowID][opts.Index:]
			head := append([]TabID{}, h.order[opts.WindowID][:opts.Index]...)
			h.order[opts.WindowID] = append(append(head, id), tail...)
		}
	}
	return nil
}

func (h *MemoryHost) ListGroups(_ context.Context, f GroupFilter) ([]Group, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	groups := make([]Group, 0, len(h.groups))
	for _, g := range h.groups {
		if f.WindowID != 0 && g.WindowID != f.WindowID {
			continue
		}
		groups = append(groups, *g)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].ID < groups[j].ID })
	return groups, nil
}

func (h *MemoryHost) GroupTabs(_ context.Context, ids []TabID, opts GroupTabsOptions) (GroupID, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(ids) == 0 {
		return GroupNone, ErrTabNotFound
	}
	first, ok := h.tabs[ids[0]]
	if !ok {
		return GroupNone, ErrTabNotFound
	}
	wid := opts.WindowID
	if wid == 0 {
		wid = first.WindowID
	}
	if _, ok := h.windows[wid]; !ok {
		return GroupNone, ErrWindowNotFound
	}

	h.nextGroup++
	g := &Group{ID: h.nextGroup, WindowID: wid}
	h.groups[g.ID] = g

	for _, id := range ids {
		t, ok := h.tabs[id]
		if !ok {
			return GroupNone, ErrTabNotFound
		}
		if t.WindowID != wid {
			h.order[t.WindowID] = removeID(h.order[t.WindowID], id)
			t.WindowID = wid
			h.order[wid] = append(h.order[wid], id)
		}
		h.dropFromGroupLocked(t)
		t.GroupID = g.ID
	}
	return g.ID, nil
}

func (h *MemoryHost) UngroupTabs(_ context.Context, ids []TabID) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, id := range ids {
		t, ok := h.tabs[id]
		if !ok {
			return ErrTabNotFound
		}
		h.dropFromGroupLocked(t)
	}
	return nil
}

func (h *MemoryHost) UpdateGroup(_ context.Context, id GroupID, update GroupUpdate) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	g, ok := h.groups[id]
	if !ok {
		return ErrGroupNotFound
	}
	if update.Title != nil {
		g.Title = *update.Title
	}
	if update.Color != nil {
		g.Color = *update.Color
	}
	if update.Collapsed != nil {
		g.Collapsed = *update.Collapsed
	}
	return nil
}

func (h *MemoryHost) WorkArea(_ context.Context) (domain.Bounds, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.workArea, nil
}

// dropFromGroupLocked detaches a tab from its group and deletes the group
// once its last member leaves, matching browser behavior.
func (h *MemoryHost) dropFromGroupLocked(t *Tab) {
	if t.GroupID == GroupNone {
		return
	}
	gid := t.GroupID
	t.GroupID = GroupNone
	for _, other := range h.tabs {
		if other.GroupID == gid {
			return
		}
	}
	delete(h.groups, gid)
}

func removeID(ids []TabID, id TabID) []TabID {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
