package store

import (
	"context"
	"fmt"
	"time"

	"github.com/nadalpiantini/tabgrouper/internal/domain"
)

// WindowPlacement is one window's saved position within a layout.
type WindowPlacement struct {
	Bounds  domain.Bounds `json:"bounds"`
	Focused bool          `json:"focused"`
}

// WindowLayout is a named arrangement of window positions.
type WindowLayout struct {
	Name    string            `json:"name"`
	SavedAt time.Time         `json:"savedAt"`
	Windows []WindowPlacement `json:"windows"`
}

// Layouts returns all saved layouts keyed by name.
func (s *Store) Layouts(ctx context.Context) (map[string]WindowLayout, error) {
	layouts := make(map[string]WindowLayout)
	if _, err := s.getJSON(ctx, s.synced, KeyLayouts, &layouts); err != nil {
		return nil, err
	}
	return layouts, nil
}

// SaveLayout stores or replaces a named layout.
func (s *Store) SaveLayout(ctx context.Context, layout WindowLayout) error {
	if layout.Name == "" {
		return fmt.Errorf("invalid layout: missing name")
	}
	layouts, err := s.Layouts(ctx)
	if err != nil {
		return err
	}
	layouts[layout.Name] = layout
	return s.setJSON(ctx, s.synced, KeyLayouts, layouts)
}

// GetLayout resolves a layout by name.
func (s *Store) GetLayout(ctx context.Context, name string) (*WindowLayout, error) {
	layouts, err := s.Layouts(ctx)
	if err != nil {
		return nil, err
	}
	layout, ok := layouts[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLayoutNotFound, name)
	}
	return &layout, nil
}

// DeleteLayout removes a layout by name.
func (s *Store) DeleteLayout(ctx context.Context, name string) error {
	layouts, err := s.Layouts(ctx)
	if err != nil {
		return err
	}
	if _, ok := layouts[name]; !ok {
		return fmt.Errorf("%w: %s", ErrLayoutNotFound, name)
	}
	delete(layouts, name)
	return s.setJSON(ctx, s.synced, KeyLayouts, layouts)
}
