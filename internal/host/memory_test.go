package host

import (
	"context"
	"errors"
	"testing"

	"github.com/nadalpiantini/tabgrouper/internal/domain"
)

func newHostWithWindow(t *testing.T) (*MemoryHost, WindowID) {
	t.Helper()
	h := NewMemoryHost(domain.Bounds{Width: 1920, Height: 1080})
	w, err := h.CreateWindow(context.Background(), domain.Bounds{Width: 1920, Height: 1080})
	if err != nil {
		t.Fatalf("create window: %v", err)
	}
	return h, w.ID
}

func TestListTabs_OrderAndIndex(t *testing.T) {
	h, wid := newHostWithWindow(t)
	ctx := context.Background()

	for _, u := range []string{"https://a/", "https://b/", "https://c/"} {
		if _, err := h.CreateTab(ctx, CreateTabOptions{WindowID: wid, URL: u}); err != nil {
			t.Fatalf("create tab: %v", err)
		}
	}

	tabs, err := h.ListTabs(ctx, TabFilter{WindowID: wid})
	if err != nil {
		t.Fatalf("list tabs: %v", err)
	}
	if len(tabs) != 3 {
		t.Fatalf("tabs = %d, want 3", len(tabs))
	}
	for i, tab := range tabs {
		if tab.Index != i {
			t.Errorf("tab %d Index = %d, want %d", tab.ID, tab.Index, i)
		}
	}
	if tabs[0].URL != "https://a/" || tabs[2].URL != "https://c/" {
		t.Errorf("creation order not preserved: %+v", tabs)
	}
}

func TestListTabs_UnknownWindow(t *testing.T) {
	h, _ := newHostWithWindow(t)
	if _, err := h.ListTabs(context.Background(), TabFilter{WindowID: 99}); !errors.Is(err, ErrWindowNotFound) {
		t.Errorf("got %v, want ErrWindowNotFound", err)
	}
}

func TestGroupTabs_AndEmptyGroupCleanup(t *testing.T) {
	h, wid := newHostWithWindow(t)
	ctx := context.Background()

	a, _ := h.CreateTab(ctx, CreateTabOptions{WindowID: wid, URL: "https://a/"})
	b, _ := h.CreateTab(ctx, CreateTabOptions{WindowID: wid, URL: "https://b/"})

	gid, err := h.GroupTabs(ctx, []TabID{a.ID, b.ID}, GroupTabsOptions{})
	if err != nil {
		t.Fatalf("group: %v", err)
	}

	tabs, err := h.ListTabs(ctx, TabFilter{WindowID: wid})
	if err != nil {
		t.Fatalf("list tabs: %v", err)
	}
	for _, tab := range tabs {
		if tab.GroupID != gid {
			t.Errorf("tab %d GroupID = %d, want %d", tab.ID, tab.GroupID, gid)
		}
	}

	// Releasing the last member deletes the group, like the browser does.
	if err := h.UngroupTabs(ctx, []TabID{a.ID, b.ID}); err != nil {
		t.Fatalf("ungroup: %v", err)
	}
	groups, err := h.ListGroups(ctx, GroupFilter{WindowID: wid})
	if err != nil {
		t.Fatalf("list groups: %v", err)
	}
	if len(groups) != 0 {
		t.Errorf("groups = %+v, want the emptied group gone", groups)
	}
}

func TestMoveTabs_AcrossWindowsDropsGroup(t *testing.T) {
	h, wid := newHostWithWindow(t)
	ctx := context.Background()

	a, _ := h.CreateTab(ctx, CreateTabOptions{WindowID: wid, URL: "https://a/"})
	b, _ := h.CreateTab(ctx, CreateTabOptions{WindowID: wid, URL: "https://b/"})
	if _, err := h.GroupTabs(ctx, []TabID{a.ID, b.ID}, GroupTabsOptions{}); err != nil {
		t.Fatalf("group: %v", err)
	}

	other, err := h.CreateWindow(ctx, domain.Bounds{Width: 800, Height: 600})
	if err != nil {
		t.Fatalf("create window: %v", err)
	}
	if err := h.MoveTabs(ctx, []TabID{a.ID, b.ID}, MoveTabsOptions{WindowID: other.ID, Index: -1}); err != nil {
		t.Fatalf("move: %v", err)
	}

	tabs, err := h.ListTabs(ctx, TabFilter{WindowID: other.ID})
	if err != nil {
		t.Fatalf("list tabs: %v", err)
	}
	if len(tabs) != 2 {
		t.Fatalf("moved tabs = %d, want 2", len(tabs))
	}
	for _, tab := range tabs {
		if tab.GroupID != GroupNone {
			t.Errorf("tab %d kept group %d across the window move", tab.ID, tab.GroupID)
		}
	}
	groups, err := h.ListGroups(ctx, GroupFilter{})
	if err != nil {
		t.Fatalf("list groups: %v", err)
	}
	if len(groups) != 0 {
		t.Errorf("groups = %+v, want none after all members moved away", groups)
	}
}

func TestMoveTabs_IndexInsertion(t *testing.T) {
	h, wid := newHostWithWindow(t)
	ctx := context.Background()

	a, _ := h.CreateTab(ctx, CreateTabOptions{WindowID: wid, URL: "https://a/"})
	_, _ = h.CreateTab(ctx, CreateTabOptions{WindowID: wid, URL: "https://b/"})
	c, _ := h.CreateTab(ctx, CreateTabOptions{WindowID: wid, URL: "https://c/"})

	// Move c to the front.
	if err := h.MoveTabs(ctx, []TabID{c.ID}, MoveTabsOptions{WindowID: wid, Index: 0}); err != nil {
		t.Fatalf("move: %v", err)
	}
	tabs, err := h.ListTabs(ctx, TabFilter{WindowID: wid})
	if err != nil {
		t.Fatalf("list tabs: %v", err)
	}
	if tabs[0].ID != c.ID || tabs[1].ID != a.ID {
		t.Errorf("order = %v, want c first", []TabID{tabs[0].ID, tabs[1].ID, tabs[2].ID})
	}
}

func TestRemoveWindow_DropsTabsAndGroups(t *testing.T) {
	h, wid := newHostWithWindow(t)
	ctx := context.Background()

	a, _ := h.CreateTab(ctx, CreateTabOptions{WindowID: wid, URL: "https://a/"})
	if _, err := h.GroupTabs(ctx, []TabID{a.ID}, GroupTabsOptions{}); err != nil {
		t.Fatalf("group: %v", err)
	}

	if err := h.RemoveWindow(ctx, wid); err != nil {
		t.Fatalf("remove window: %v", err)
	}
	if _, err := h.CurrentWindow(ctx); !errors.Is(err, ErrWindowNotFound) {
		t.Errorf("got %v, want ErrWindowNotFound with no windows left", err)
	}
	groups, err := h.ListGroups(ctx, GroupFilter{})
	if err != nil {
		t.Fatalf("list groups: %v", err)
	}
	if len(groups) != 0 {
		t.Errorf("groups survived window removal: %+v", groups)
	}
}

func TestCurrentWindow_FallsBackToLowestID(t *testing.T) {
	h := NewMemoryHost(domain.Bounds{})
	ctx := context.Background()

	first, err := h.CreateWindow(ctx, domain.Bounds{})
	if err != nil {
		t.Fatalf("create window: %v", err)
	}
	second, err := h.CreateWindow(ctx, domain.Bounds{})
	if err != nil {
		t.Fatalf("create window: %v", err)
	}
	h.SetCurrent(second.ID)
	if err := h.RemoveWindow(ctx, second.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}

	current, err := h.CurrentWindow(ctx)
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if current.ID != first.ID {
		t.Errorf("current = %d, want fallback to %d", current.ID, first.ID)
	}
}
