package scheduler

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nadalpiantini/tabgrouper/internal/domain"
	"github.com/nadalpiantini/tabgrouper/internal/logger"
	"github.com/nadalpiantini/tabgrouper/internal/store"
)

func writePresetFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "presets.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write presets file: %v", err)
	}
	return path
}

func TestPresetReloader_Reload(t *testing.T) {
	s := store.New(store.NewMemoryKV(), store.NewMemoryKV())
	path := writePresetFile(t, `---
presets:
  Focus:
    - pattern: "github"
      group: "💻 Code"
      color: cyan
`)

	pr := NewPresetReloader(path, s, logger.NewNop(), time.Hour, make(chan struct{}))
	if err := pr.Reload(context.Background()); err != nil {
		t.Fatalf("Reload: %v", err)
	}

	cfg, err := s.GroupingConfig(context.Background())
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	rules, ok := cfg.Presets["Focus"]
	if !ok {
		t.Fatal("file preset missing from stored config")
	}
	if len(rules) != 1 || rules[0].Group != "💻 Code" {
		t.Errorf("rules = %+v, want the file rule", rules)
	}
	// The built-in preset survives the merge.
	if _, ok := cfg.Presets[domain.DefaultPreset]; !ok {
		t.Error("default preset lost during file merge")
	}
}

func TestPresetReloader_KeepsStoreOnlyPresets(t *testing.T) {
	s := store.New(store.NewMemoryKV(), store.NewMemoryKV())
	ctx := context.Background()

	cfg := domain.DefaultGroupingConfig()
	cfg.Presets["Custom"] = []domain.Rule{domain.MustRule(`example`, "Example", domain.Blue)}
	if err := s.SetGroupingConfig(ctx, cfg); err != nil {
		t.Fatalf("set config: %v", err)
	}

	path := writePresetFile(t, `---
presets:
  Focus:
    - pattern: "github"
      group: "💻 Code"
`)
	pr := NewPresetReloader(path, s, logger.NewNop(), time.Hour, make(chan struct{}))
	if err := pr.Reload(ctx); err != nil {
		t.Fatalf("Reload: %v", err)
	}

	got, err := s.GroupingConfig(ctx)
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	if _, ok := got.Presets["Custom"]; !ok {
		t.Error("store-only preset dropped; file reload must merge, not replace")
	}
	if _, ok := got.Presets["Focus"]; !ok {
		t.Error("file preset missing")
	}
}

func TestPresetReloader_MissingFile(t *testing.T) {
	s := store.New(store.NewMemoryKV(), store.NewMemoryKV())
	pr := NewPresetReloader("/nonexistent/presets.yaml", s, logger.NewNop(), time.Hour, make(chan struct{}))

	if err := pr.Reload(context.Background()); err == nil {
		t.Error("expected an error for a missing file")
	}
}
