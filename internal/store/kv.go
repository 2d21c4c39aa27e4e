// Package store persists the durable collections: grouping configuration,
// workspace snapshots, the autosave ring, and the undo snapshot. Two
// independent key/value namespaces back it (spec'd as synced vs local); both
// are simple get/set over JSON values with no cross-key transactions.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by KV.Get for missing keys.
var ErrNotFound = errors.New("key not found")

// KV is one key/value namespace.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Keys within each namespace. Workspaces, configuration and legacy flat
// settings live in the synced namespace; autosaves and the undo snapshot are
// local-only.
const (
	KeyConfig         = "config"
	KeyCustomRules    = "custom_rules"
	KeyWorkspaces     = "workspaces"
	KeySettings       = "ws_settings"
	KeyLegacySettings = "settings"
	KeyLayouts        = "layouts"
	KeyAutosaves      = "workspace_autosaves"
	KeyUndo           = "undo_snapshot"
)
