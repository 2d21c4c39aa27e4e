package store

import (
	"context"
	"fmt"
	"time"

	"github.com/nadalpiantini/tabgrouper/internal/domain"
	"github.com/nadalpiantini/tabgrouper/internal/host"
)

// Autosave is one entry of the autosave ring. The id is assigned at
// insertion from a counter that lives with the ring and only ever grows, so
// an id stays a valid handle across later inserts and evictions (a
// positional index would shift underneath callers).
type Autosave struct {
	ID int64 `json:"id"`
	domain.WorkspaceSnapshot
}

// AutosaveListing is the light projection for ring views.
type AutosaveListing struct {
	ID    int64        `json:"id"`
	Name  string       `json:"name"`
	Date  time.Time    `json:"date"`
	Stats domain.Stats `json:"stats"`
}

// autosaveRing is the persisted document: newest first, bounded at Max,
// strict FIFO-by-insertion eviction.
type autosaveRing struct {
	NextID  int64      `json:"nextId"`
	Max     int        `json:"max"`
	Entries []Autosave `json:"entries"`
}

func (s *Store) autosaves(ctx context.Context) (*autosaveRing, error) {
	ring := &autosaveRing{NextID: 1, Max: DefaultAutosaveMax}
	if _, err := s.getJSON(ctx, s.local, KeyAutosaves, ring); err != nil {
		return nil, err
	}
	if ring.NextID < 1 {
		ring.NextID = 1
	}
	if ring.Max < 1 {
		ring.Max = DefaultAutosaveMax
	}
	return ring, nil
}

// PushAutosave prepends a snapshot to the ring and truncates to max. Returns
// the id assigned to the new entry.
func (s *Store) PushAutosave(ctx context.Context, snap *domain.WorkspaceSnapshot, max int) (int64, error) {
	ring, err := s.autosaves(ctx)
	if err != nil {
		return 0, err
	}
	if max < 1 {
		max = DefaultAutosaveMax
	}
	if max > MaxAutosaveMax {
		max = MaxAutosaveMax
	}

	entry := Autosave{ID: ring.NextID, WorkspaceSnapshot: *snap}
	ring.NextID++
	ring.Max = max
	ring.Entries = append([]Autosave{entry}, ring.Entries...)
	if len(ring.Entries) > max {
		ring.Entries = ring.Entries[:max]
	}

	if err := s.setJSON(ctx, s.local, KeyAutosaves, ring); err != nil {
		return 0, err
	}
	return entry.ID, nil
}

// ListAutosaves returns the ring's light projections, newest first.
func (s *Store) ListAutosaves(ctx context.Context) ([]AutosaveListing, error) {
	ring, err := s.autosaves(ctx)
	if err != nil {
		return nil, err
	}
	listings := make([]AutosaveListing, 0, len(ring.Entries))
	for i := range ring.Entries {
		e := &ring.Entries[i]
		listings = append(listings, AutosaveListing{
			ID:    e.ID,
			Name:  e.Name,
			Date:  e.Date,
			Stats: e.Stats,
		})
	}
	return listings, nil
}

// GetAutosave resolves an entry by its stable id.
func (s *Store) GetAutosave(ctx context.Context, id int64) (*domain.WorkspaceSnapshot, error) {
	ring, err := s.autosaves(ctx)
	if err != nil {
		return nil, err
	}
	for i := range ring.Entries {
		if ring.Entries[i].ID == id {
			return &ring.Entries[i].WorkspaceSnapshot, nil
		}
	}
	return nil, fmt.Errorf("%w: id %d", ErrAutosaveNotFound, id)
}

// UndoTab records one tab's pre-grouping assignment.
type UndoTab struct {
	ID      host.TabID   `json:"id"`
	GroupID host.GroupID `json:"groupId"`
	Pinned  bool         `json:"pinned"`
}

// UndoSnapshot is the single-step companion record: overwritten on every
// grouping operation, consumed by the first undo after it.
type UndoSnapshot struct {
	Timestamp time.Time     `json:"timestamp"`
	WindowID  host.WindowID `json:"windowId"`
	Tabs      []UndoTab     `json:"tabs"`
}

func (s *Store) SetUndo(ctx context.Context, snap *UndoSnapshot) error {
	return s.setJSON(ctx, s.local, KeyUndo, snap)
}

// Undo returns the stored snapshot, or nil when none exists.
func (s *Store) Undo(ctx context.Context) (*UndoSnapshot, error) {
	var snap UndoSnapshot
	found, err := s.getJSON(ctx, s.local, KeyUndo, &snap)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &snap, nil
}

func (s *Store) ClearUndo(ctx context.Context) error {
	return s.local.Delete(ctx, KeyUndo)
}
