package workspace

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nadalpiantini/tabgrouper/internal/domain"
	"github.com/nadalpiantini/tabgrouper/internal/logger"
)

// Envelope schema versions. The schema string is the contract for the export
// file shape; bump it when the payload layout changes.
const (
	SchemaWorkspace     = "tabgrouper.workspace@1"
	SchemaWorkspaceList = "tabgrouper.workspace.list@1"
)

type envelope struct {
	Schema     string          `json:"schema"`
	ExportedAt time.Time       `json:"exportedAt"`
	Data       json.RawMessage `json:"data"`
}

// ImportResult reports the outcome of a bulk import. Partial import is
// success; the call as a whole fails only when zero items validate.
type ImportResult struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors"`
}

// ExportWorkspace serializes one named workspace as a formatted JSON
// envelope.
func (m *Manager) ExportWorkspace(ctx context.Context, name string) ([]byte, error) {
	snap, err := m.store.GetWorkspace(ctx, name)
	if err != nil {
		return nil, err
	}
	return marshalEnvelope(SchemaWorkspace, snap)
}

// ExportAll serializes the whole workspace collection.
func (m *Manager) ExportAll(ctx context.Context) ([]byte, error) {
	all, err := m.store.Workspaces(ctx)
	if err != nil {
		return nil, err
	}
	return marshalEnvelope(SchemaWorkspaceList, all)
}

func marshalEnvelope(schema string, data any) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to encode export payload: %w", err)
	}
	out, err := json.MarshalIndent(envelope{
		Schema:     schema,
		ExportedAt: time.Now().UTC(),
		Data:       raw,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode export envelope: %w", err)
	}
	return out, nil
}

// Import parses exported JSON and merges the contained workspaces into the
// store. Accepted shapes: a single envelope, a list of envelopes, or a bare
// list of workspace objects. Each candidate is validated independently; name
// collisions against the existing collection are resolved by appending
// " (2)", " (3)", ... so nothing is ever silently overwritten.
func (m *Manager) Import(ctx context.Context, data []byte) (*ImportResult, error) {
	candidates, err := decodeCandidates(data)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{}
	accepted := make([]domain.WorkspaceSnapshot, 0, len(candidates))
	for i := range candidates {
		if reason := domain.ValidateWorkspace(&candidates[i]); reason != "" {
			result.Skipped++
			result.Errors = append(result.Errors,
				fmt.Sprintf("workspace %d (%s): %s", i+1, displayName(&candidates[i]), reason))
			continue
		}
		accepted = append(accepted, candidates[i])
	}

	if len(accepted) == 0 {
		return result, fmt.Errorf("no valid workspaces in import: %v", result.Errors)
	}

	all, err := m.store.Workspaces(ctx)
	if err != nil {
		return nil, err
	}
	existing := make(map[string]*domain.WorkspaceSnapshot, len(all))
	taken := make(map[string]bool, len(all))
	for i := range all {
		existing[all[i].Name] = &all[i]
		taken[all[i].Name] = true
	}

	for i := range accepted {
		ws := accepted[i]
		// Re-importing an unchanged export must be a no-op: a candidate that
		// is byte-for-byte the workspace already stored under its name is a
		// duplicate, not a collision.
		if prev, ok := existing[ws.Name]; ok && sameWorkspace(prev, &ws) {
			result.Skipped++
			continue
		}
		ws.Name = uniqueName(ws.Name, taken)
		taken[ws.Name] = true
		// Stats travel with the file but are derived state; recompute so a
		// hand-edited export cannot smuggle in wrong numbers.
		ws.Stats = domain.Summarize(ws.Windows)
		all = append(all, ws)
		result.Imported++
	}

	if err := m.store.SetWorkspaces(ctx, all); err != nil {
		return nil, err
	}

	m.log.Info("imported workspaces",
		logger.Int("imported", result.Imported),
		logger.Int("skipped", result.Skipped))
	return result, nil
}

func decodeCandidates(data []byte) ([]domain.WorkspaceSnapshot, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty import payload")
	}

	if trimmed[0] == '[' {
		// Bare list: elements are either envelopes or workspace objects.
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("malformed import JSON: %w", err)
		}
		out := make([]domain.WorkspaceSnapshot, 0, len(items))
		for _, item := range items {
			ws, err := decodeOne(item)
			if err != nil {
				return nil, err
			}
			out = append(out, ws...)
		}
		return out, nil
	}

	return decodeOne(trimmed)
}

func decodeOne(raw json.RawMessage) ([]domain.WorkspaceSnapshot, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("malformed import JSON: %w", err)
	}
	payload := raw
	if env.Schema != "" && len(env.Data) > 0 {
		payload = env.Data
	}

	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var list []domain.WorkspaceSnapshot
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, fmt.Errorf("malformed workspace list: %w", err)
		}
		return list, nil
	}

	var ws domain.WorkspaceSnapshot
	if err := json.Unmarshal(trimmed, &ws); err != nil {
		return nil, fmt.Errorf("malformed workspace object: %w", err)
	}
	return []domain.WorkspaceSnapshot{ws}, nil
}

// sameWorkspace compares two snapshots through their JSON form, which both
// sides have already round-tripped through.
func sameWorkspace(a, b *domain.WorkspaceSnapshot) bool {
	ja, err := json.Marshal(a)
	if err != nil {
		return false
	}
	jb, err := json.Marshal(b)
	if err != nil {
		return false
	}
	return bytes.Equal(ja, jb)
}

// uniqueName appends " (2)", " (3)", ... until the name is unused.
func uniqueName(name string, taken map[string]bool) string {
	if !taken[name] {
		return name
	}
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s (%d)", name, n)
		if !taken[candidate] {
			return candidate
		}
	}
}

func displayName(ws *domain.WorkspaceSnapshot) string {
	if ws.Name == "" {
		return "unnamed"
	}
	return ws.Name
}
