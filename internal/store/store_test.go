package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nadalpiantini/tabgrouper/internal/domain"
)

func newTestStore() *Store {
	return New(NewMemoryKV(), NewMemoryKV())
}

func snapshot(name string) *domain.WorkspaceSnapshot {
	return &domain.WorkspaceSnapshot{
		Name: name,
		Date: time.Now(),
		Windows: []domain.WindowSnapshot{
			{Ungrouped: []domain.TabRecord{{URL: "https://example.com"}}},
		},
		Stats: domain.Stats{Windows: 1, Groups: 1, Tabs: 1},
	}
}

func TestSaveWorkspace_NameUniqueness(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	if err := s.SaveWorkspace(ctx, snapshot("work")); err != nil {
		t.Fatalf("first save: %v", err)
	}
	err := s.SaveWorkspace(ctx, snapshot("work"))
	if !errors.Is(err, ErrWorkspaceExists) {
		t.Errorf("second save under the same name: got %v, want ErrWorkspaceExists", err)
	}
}

func TestSaveWorkspace_RejectsInvalid(t *testing.T) {
	s := newTestStore()
	if err := s.SaveWorkspace(context.Background(), &domain.WorkspaceSnapshot{}); err == nil {
		t.Error("expected an error for a nameless workspace")
	}
	if err := s.SaveWorkspace(context.Background(), nil); err == nil {
		t.Error("expected an error for a nil workspace")
	}
}

func TestSaveWorkspace_AcceptsInternalSchemeTabs(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	// Strict URL validation is an import concern; live captures keep
	// whatever tabs the session had open.
	snap := &domain.WorkspaceSnapshot{
		Name: "session",
		Windows: []domain.WindowSnapshot{{
			Ungrouped: []domain.TabRecord{
				{URL: "https://github.com/x"},
				{URL: "chrome://settings"},
				{URL: "about:blank"},
			},
		}},
	}
	if err := s.SaveWorkspace(ctx, snap); err != nil {
		t.Fatalf("SaveWorkspace: %v", err)
	}
	got, err := s.GetWorkspace(ctx, "session")
	if err != nil {
		t.Fatalf("GetWorkspace: %v", err)
	}
	if len(got.Windows[0].Ungrouped) != 3 {
		t.Errorf("tabs = %d, want 3", len(got.Windows[0].Ungrouped))
	}
}

func TestWorkspaceCRUD(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	if err := s.SaveWorkspace(ctx, snapshot("alpha")); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.GetWorkspace(ctx, "alpha")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "alpha" {
		t.Errorf("Name = %q, want alpha", got.Name)
	}

	if err := s.RenameWorkspace(ctx, "alpha", "beta"); err != nil {
		t.Fatalf("rename: %v", err)
	}
	if _, err := s.GetWorkspace(ctx, "alpha"); !errors.Is(err, ErrWorkspaceNotFound) {
		t.Errorf("old name still resolves after rename: %v", err)
	}

	if err := s.DuplicateWorkspace(ctx, "beta", "beta copy"); err != nil {
		t.Fatalf("duplicate: %v", err)
	}
	cp, err := s.GetWorkspace(ctx, "beta copy")
	if err != nil {
		t.Fatalf("get duplicate: %v", err)
	}
	if len(cp.Windows) != 1 {
		t.Errorf("duplicate windows = %d, want 1", len(cp.Windows))
	}

	if err := s.DeleteWorkspace(ctx, "beta"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.GetWorkspace(ctx, "beta"); !errors.Is(err, ErrWorkspaceNotFound) {
		t.Errorf("deleted workspace still resolves: %v", err)
	}
	if err := s.DeleteWorkspace(ctx, "beta"); !errors.Is(err, ErrWorkspaceNotFound) {
		t.Errorf("double delete: got %v, want ErrWorkspaceNotFound", err)
	}
}

func TestRenameWorkspace_CollisionAndNoop(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	if err := s.SaveWorkspace(ctx, snapshot("a")); err != nil {
		t.Fatalf("save a: %v", err)
	}
	if err := s.SaveWorkspace(ctx, snapshot("b")); err != nil {
		t.Fatalf("save b: %v", err)
	}

	if err := s.RenameWorkspace(ctx, "a", "b"); !errors.Is(err, ErrWorkspaceExists) {
		t.Errorf("rename onto taken name: got %v, want ErrWorkspaceExists", err)
	}
	if err := s.RenameWorkspace(ctx, "a", "a"); err != nil {
		t.Errorf("rename to the same name should succeed, got %v", err)
	}
}

func TestListWorkspaces_TagFilterAndOrder(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	older := snapshot("older")
	older.Date = time.Now().Add(-time.Hour)
	older.Tags = []string{"work"}
	newer := snapshot("newer")
	newer.Tags = []string{"play"}

	if err := s.SaveWorkspace(ctx, older); err != nil {
		t.Fatalf("save older: %v", err)
	}
	if err := s.SaveWorkspace(ctx, newer); err != nil {
		t.Fatalf("save newer: %v", err)
	}

	all, err := s.ListWorkspaces(ctx, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("len = %d, want 2", len(all))
	}
	if all[0].Name != "newer" {
		t.Errorf("first listing = %q, want newer (newest first)", all[0].Name)
	}

	tagged, err := s.ListWorkspaces(ctx, "work")
	if err != nil {
		t.Fatalf("list tagged: %v", err)
	}
	if len(tagged) != 1 || tagged[0].Name != "older" {
		t.Errorf("tag filter returned %+v, want only older", tagged)
	}
}

func TestPushAutosave_RingEvictionAndStableIDs(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	var ids []int64
	for i := 0; i < 5; i++ {
		id, err := s.PushAutosave(ctx, snapshot("auto"), 3)
		if err != nil {
			t.Fatalf("push %d: %v", i, err)
		}
		ids = append(ids, id)
	}

	for i := 1; i < len(ids); i++ {
		if ids[i] <= ids[i-1] {
			t.Fatalf("ids must be strictly increasing, got %v", ids)
		}
	}

	listings, err := s.ListAutosaves(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listings) != 3 {
		t.Fatalf("ring holds %d entries, want 3", len(listings))
	}
	// Newest first, oldest two evicted.
	if listings[0].ID != ids[4] || listings[2].ID != ids[2] {
		t.Errorf("ring order = %v, want [%d %d %d]", listings, ids[4], ids[3], ids[2])
	}

	if _, err := s.GetAutosave(ctx, ids[0]); !errors.Is(err, ErrAutosaveNotFound) {
		t.Errorf("evicted id still resolves: %v", err)
	}
	got, err := s.GetAutosave(ctx, ids[3])
	if err != nil {
		t.Fatalf("surviving id failed to resolve: %v", err)
	}
	if got.Name != "auto" {
		t.Errorf("Name = %q, want auto", got.Name)
	}
}

func TestPushAutosave_IDsSurviveEviction(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	first, err := s.PushAutosave(ctx, snapshot("a"), 1)
	if err != nil {
		t.Fatalf("push: %v", err)
	}
	second, err := s.PushAutosave(ctx, snapshot("b"), 1)
	if err != nil {
		t.Fatalf("push: %v", err)
	}
	if second != first+1 {
		t.Errorf("counter must keep growing across evictions: %d then %d", first, second)
	}
}

func TestSettings_ClampsAutosaveMax(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	tests := []struct {
		name     string
		stored   int
		expected int
	}{
		{name: "zero defaults", stored: 0, expected: DefaultAutosaveMax},
		{name: "negative defaults", stored: -3, expected: DefaultAutosaveMax},
		{name: "over cap clamps", stored: 200, expected: MaxAutosaveMax},
		{name: "in range kept", stored: 25, expected: 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := s.SetSettings(ctx, Settings{AutosaveMax: tt.stored}); err != nil {
				t.Fatalf("set: %v", err)
			}
			got, err := s.Settings(ctx)
			if err != nil {
				t.Fatalf("get: %v", err)
			}
			if got.AutosaveMax != tt.expected {
				t.Errorf("AutosaveMax = %d, want %d", got.AutosaveMax, tt.expected)
			}
		})
	}
}

func TestSettings_DefaultsWhenUnset(t *testing.T) {
	s := newTestStore()
	got, err := s.Settings(context.Background())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != DefaultSettings() {
		t.Errorf("got %+v, want defaults %+v", got, DefaultSettings())
	}
}

func TestGroupingConfig_DefaultsAndValidation(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	cfg, err := s.GroupingConfig(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if cfg.Preset != domain.DefaultPreset {
		t.Errorf("Preset = %q, want %q", cfg.Preset, domain.DefaultPreset)
	}

	cfg.GroupMaxTabs = 0
	if err := s.SetGroupingConfig(ctx, cfg); err == nil {
		t.Error("expected an error for groupMaxTabs <= 0")
	}

	cfg.GroupMaxTabs = 15
	if err := s.SetGroupingConfig(ctx, cfg); err != nil {
		t.Fatalf("set: %v", err)
	}
	back, err := s.GroupingConfig(ctx)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if back.GroupMaxTabs != 15 {
		t.Errorf("GroupMaxTabs = %d, want 15", back.GroupMaxTabs)
	}
}

func TestUndoSnapshot_SetGetClear(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	got, err := s.Undo(ctx)
	if err != nil {
		t.Fatalf("get empty: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil before any grouping, got %+v", got)
	}

	snap := &UndoSnapshot{Timestamp: time.Now(), WindowID: 1, Tabs: []UndoTab{{ID: 10, GroupID: 0}}}
	if err := s.SetUndo(ctx, snap); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err = s.Undo(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || len(got.Tabs) != 1 || got.Tabs[0].ID != 10 {
		t.Errorf("got %+v, want the stored snapshot back", got)
	}

	if err := s.ClearUndo(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	got, err = s.Undo(ctx)
	if err != nil {
		t.Fatalf("get after clear: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil after clear, got %+v", got)
	}
}

func TestLayouts_CRUD(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	if err := s.SaveLayout(ctx, WindowLayout{}); err == nil {
		t.Error("expected an error for a nameless layout")
	}

	layout := WindowLayout{
		Name:    "dual",
		SavedAt: time.Now(),
		Windows: []WindowPlacement{{Bounds: domain.Bounds{Width: 960, Height: 1080}}},
	}
	if err := s.SaveLayout(ctx, layout); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.GetLayout(ctx, "dual")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.Windows) != 1 || got.Windows[0].Bounds.Width != 960 {
		t.Errorf("got %+v, want the saved placement", got)
	}

	if err := s.DeleteLayout(ctx, "dual"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.GetLayout(ctx, "dual"); !errors.Is(err, ErrLayoutNotFound) {
		t.Errorf("deleted layout still resolves: %v", err)
	}
}
