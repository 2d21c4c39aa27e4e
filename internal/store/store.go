package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nadalpiantini/tabgrouper/internal/domain"
)

// DefaultAutosaveMax bounds the autosave ring when settings carry no value.
const DefaultAutosaveMax = 10

// MaxAutosaveMax is the hard upper bound for the configurable ring size.
const MaxAutosaveMax = 50

var (
	ErrWorkspaceNotFound = errors.New("workspace not found")
	ErrWorkspaceExists   = errors.New("workspace already exists")
	ErrAutosaveNotFound  = errors.New("autosave not found")
	ErrLayoutNotFound    = errors.New("layout not found")
)

// Store owns the durable collections. Every operation reads, modifies and
// rewrites a whole collection document; there is no partial update.
// Correctness of those read-modify-write sequences relies on the single
// logical flow of execution, concurrent writers are last-write-wins.
type Store struct {
	synced KV
	local  KV
}

// New creates a store over the synced and local namespaces.
func New(synced, local KV) *Store {
	return &Store{synced: synced, local: local}
}

// Settings are the workspace capture/autosave preferences.
type Settings struct {
	IncludePinned   bool `json:"includePinned"`
	IncludeMeta     bool `json:"includeMeta"`
	AutosaveEnabled bool `json:"autosaveEnabled"`
	AutosaveMax     int  `json:"autosaveMax"`
}

// DefaultSettings mirrors the original defaults.
func DefaultSettings() Settings {
	return Settings{
		IncludePinned:   false,
		IncludeMeta:     true,
		AutosaveEnabled: true,
		AutosaveMax:     DefaultAutosaveMax,
	}
}

// LegacySettings are the flat per-surface toggles kept for the presentation
// layer's grouping form.
type LegacySettings struct {
	IgnorePinned bool        `json:"ignorePinned"`
	WindowOnly   bool        `json:"windowOnly"`
	Mode         domain.Mode `json:"mode"`
}

func DefaultLegacySettings() LegacySettings {
	return LegacySettings{IgnorePinned: true, WindowOnly: true, Mode: domain.ModeDomain}
}

func (s *Store) getJSON(ctx context.Context, kv KV, key string, out any) (bool, error) {
	data, err := kv.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get %s: %w", key, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return true, nil
}

func (s *Store) setJSON(ctx context.Context, kv KV, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := kv.Set(ctx, key, data); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

// GroupingConfig loads the grouping configuration, falling back to the
// built-in defaults when none was persisted yet.
func (s *Store) GroupingConfig(ctx context.Context) (*domain.GroupingConfig, error) {
	var cfg domain.GroupingConfig
	found, err := s.getJSON(ctx, s.synced, KeyConfig, &cfg)
	if err != nil {
		return nil, err
	}
	if !found {
		return domain.DefaultGroupingConfig(), nil
	}
	return &cfg, nil
}

func (s *Store) SetGroupingConfig(ctx context.Context, cfg *domain.GroupingConfig) error {
	if cfg.GroupMaxTabs <= 0 {
		return fmt.Errorf("groupMaxTabs must be > 0, got %d", cfg.GroupMaxTabs)
	}
	return s.setJSON(ctx, s.synced, KeyConfig, cfg)
}

// CustomRules loads user-defined category rules. They are appended after the
// built-in defaults by callers.
func (s *Store) CustomRules(ctx context.Context) ([]domain.Rule, error) {
	var rules []domain.Rule
	if _, err := s.getJSON(ctx, s.synced, KeyCustomRules, &rules); err != nil {
		return nil, err
	}
	return rules, nil
}

func (s *Store) SetCustomRules(ctx context.Context, rules []domain.Rule) error {
	return s.setJSON(ctx, s.synced, KeyCustomRules, rules)
}

// Settings loads the workspace settings, defaulting when unset and clamping
// the autosave bound into its valid range.
func (s *Store) Settings(ctx context.Context) (Settings, error) {
	settings := DefaultSettings()
	found, err := s.getJSON(ctx, s.synced, KeySettings, &settings)
	if err != nil {
		return Settings{}, err
	}
	if !found {
		return DefaultSettings(), nil
	}
	if settings.AutosaveMax < 1 {
		settings.AutosaveMax = DefaultAutosaveMax
	}
	if settings.AutosaveMax > MaxAutosaveMax {
		settings.AutosaveMax = MaxAutosaveMax
	}
	return settings, nil
}

func (s *Store) SetSettings(ctx context.Context, settings Settings) error {
	return s.setJSON(ctx, s.synced, KeySettings, settings)
}

func (s *Store) LegacySettings(ctx context.Context) (LegacySettings, error) {
	settings := DefaultLegacySettings()
	found, err := s.getJSON(ctx, s.synced, KeyLegacySettings, &settings)
	if err != nil {
		return LegacySettings{}, err
	}
	if !found {
		return DefaultLegacySettings(), nil
	}
	return settings, nil
}

func (s *Store) SetLegacySettings(ctx context.Context, settings LegacySettings) error {
	return s.setJSON(ctx, s.synced, KeyLegacySettings, settings)
}
