package store

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/nadalpiantini/tabgrouper/internal/domain"
)

// WorkspaceListing is the light projection used by list views: identity and
// stats only, no windows payload.
type WorkspaceListing struct {
	Name  string       `json:"name"`
	Date  time.Time    `json:"date"`
	Tags  []string     `json:"tags"`
	Stats domain.Stats `json:"stats"`
}

// Workspaces returns the raw workspace collection.
func (s *Store) Workspaces(ctx context.Context) ([]domain.WorkspaceSnapshot, error) {
	var all []domain.WorkspaceSnapshot
	if _, err := s.getJSON(ctx, s.synced, KeyWorkspaces, &all); err != nil {
		return nil, err
	}
	return all, nil
}

// SetWorkspaces rewrites the whole collection. Import uses it after collision
// resolution; everything else goes through the CRUD operations.
func (s *Store) SetWorkspaces(ctx context.Context, all []domain.WorkspaceSnapshot) error {
	return s.setJSON(ctx, s.synced, KeyWorkspaces, all)
}

// SaveWorkspace appends a snapshot. Names are unique at the moment of save;
// a second save under an existing name is rejected, never an overwrite.
// Live captures are stored as-is: a session can legitimately contain
// browser-internal tabs, so the strict URL validation only runs on import.
func (s *Store) SaveWorkspace(ctx context.Context, snap *domain.WorkspaceSnapshot) error {
	if snap == nil {
		return fmt.Errorf("invalid workspace: not an object")
	}
	if snap.Name == "" {
		return fmt.Errorf("invalid workspace: missing name")
	}
	all, err := s.Workspaces(ctx)
	if err != nil {
		return err
	}
	for i := range all {
		if all[i].Name == snap.Name {
			return fmt.Errorf("%w: %s", ErrWorkspaceExists, snap.Name)
		}
	}
	all = append(all, *snap)
	return s.SetWorkspaces(ctx, all)
}

// RenameWorkspace mutates the name field in place.
func (s *Store) RenameWorkspace(ctx context.Context, oldName, newName string) error {
	if newName == "" {
		return fmt.Errorf("invalid workspace: missing name")
	}
	all, err := s.Workspaces(ctx)
	if err != nil {
		return err
	}
	idx := -1
	for i := range all {
		if all[i].Name == newName && oldName != newName {
			return fmt.Errorf("%w: %s", ErrWorkspaceExists, newName)
		}
		if all[i].Name == oldName {
			idx = i
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrWorkspaceNotFound, oldName)
	}
	all[idx].Name = newName
	return s.SetWorkspaces(ctx, all)
}

// DuplicateWorkspace deep-copies a snapshot under a new name with a fresh
// timestamp.
func (s *Store) DuplicateWorkspace(ctx context.Context, name, newName string) error {
	if newName == "" {
		return fmt.Errorf("invalid workspace: missing name")
	}
	all, err := s.Workspaces(ctx)
	if err != nil {
		return err
	}
	var src *domain.WorkspaceSnapshot
	for i := range all {
		if all[i].Name == newName {
			return fmt.Errorf("%w: %s", ErrWorkspaceExists, newName)
		}
		if all[i].Name == name {
			src = &all[i]
		}
	}
	if src == nil {
		return fmt.Errorf("%w: %s", ErrWorkspaceNotFound, name)
	}
	cp := src.Clone()
	cp.Name = newName
	cp.Date = time.Now()
	all = append(all, *cp)
	return s.SetWorkspaces(ctx, all)
}

// DeleteWorkspace removes a snapshot by name.
func (s *Store) DeleteWorkspace(ctx context.Context, name string) error {
	all, err := s.Workspaces(ctx)
	if err != nil {
		return err
	}
	kept := all[:0]
	found := false
	for i := range all {
		if all[i].Name == name {
			found = true
			continue
		}
		kept = append(kept, all[i])
	}
	if !found {
		return fmt.Errorf("%w: %s", ErrWorkspaceNotFound, name)
	}
	return s.SetWorkspaces(ctx, kept)
}

// ListWorkspaces returns light projections, newest first, optionally
// filtered by tag. Stats are recomputed when a stored entry predates them.
func (s *Store) ListWorkspaces(ctx context.Context, tag string) ([]WorkspaceListing, error) {
	all, err := s.Workspaces(ctx)
	if err != nil {
		return nil, err
	}
	listings := make([]WorkspaceListing, 0, len(all))
	for i := range all {
		w := &all[i]
		if tag != "" && !w.HasTag(tag) {
			continue
		}
		stats := w.Stats
		if stats == (domain.Stats{}) && len(w.Windows) > 0 {
			stats = domain.Summarize(w.Windows)
		}
		listings = append(listings, WorkspaceListing{
			Name:  w.Name,
			Date:  w.Date,
			Tags:  w.Tags,
			Stats: stats,
		})
	}
	sort.Slice(listings, func(i, j int) bool { return listings[i].Date.After(listings[j].Date) })
	return listings, nil
}

// GetWorkspace returns the full snapshot by name.
func (s *Store) GetWorkspace(ctx context.Context, name string) (*domain.WorkspaceSnapshot, error) {
	all, err := s.Workspaces(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].Name == name {
			return &all[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrWorkspaceNotFound, name)
}
