// Package layout positions windows on the work area: fractional position
// presets, multi-window quick layouts and named saved arrangements.
package layout

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/nadalpiantini/tabgrouper/internal/domain"
	"github.com/nadalpiantini/tabgrouper/internal/host"
	"github.com/nadalpiantini/tabgrouper/internal/logger"
	"github.com/nadalpiantini/tabgrouper/internal/store"
)

// Preset is a window position expressed as fractions of the work area.
// Maximized presets carry no fractions.
type Preset struct {
	Left        float64
	Top         float64
	Width       float64
	Height      float64
	Maximized   bool
	Description string
}

// Presets is the position catalog, keyed by preset name.
var Presets = map[string]Preset{
	"fullscreen":    {Maximized: true, Description: "Full screen"},
	"left_half":     {Left: 0, Top: 0, Width: 0.5, Height: 1.0, Description: "Left half"},
	"right_half":    {Left: 0.5, Top: 0, Width: 0.5, Height: 1.0, Description: "Right half"},
	"top_half":      {Left: 0, Top: 0, Width: 1.0, Height: 0.5, Description: "Top half"},
	"bottom_half":   {Left: 0, Top: 0.5, Width: 1.0, Height: 0.5, Description: "Bottom half"},
	"center":        {Left: 0.15, Top: 0.1, Width: 0.7, Height: 0.8, Description: "Center (70%)"},
	"top_left":      {Left: 0, Top: 0, Width: 0.5, Height: 0.5, Description: "Top left quarter"},
	"top_right":     {Left: 0.5, Top: 0, Width: 0.5, Height: 0.5, Description: "Top right quarter"},
	"bottom_left":   {Left: 0, Top: 0.5, Width: 0.5, Height: 0.5, Description: "Bottom left quarter"},
	"bottom_right":  {Left: 0.5, Top: 0.5, Width: 0.5, Height: 0.5, Description: "Bottom right quarter"},
	"thirds_left":   {Left: 0, Top: 0, Width: 0.333, Height: 1.0, Description: "Left third"},
	"thirds_center": {Left: 0.333, Top: 0, Width: 0.334, Height: 1.0, Description: "Center third"},
	"thirds_right":  {Left: 0.667, Top: 0, Width: 0.333, Height: 1.0, Description: "Right third"},
}

// quickLayouts assigns position presets to the first N windows in order.
var quickLayouts = map[string][]string{
	"dual_vertical":   {"left_half", "right_half"},
	"dual_horizontal": {"top_half", "bottom_half"},
	"triple_columns":  {"thirds_left", "thirds_center", "thirds_right"},
	"quad":            {"top_left", "top_right", "bottom_left", "bottom_right"},
	"focus":           {"center"},
}

// Manager resolves presets against the host work area and keeps named
// layouts in the store.
type Manager struct {
	host  host.Adapter
	store *store.Store
	log   logger.Logger
}

func NewManager(h host.Adapter, s *store.Store, log logger.Logger) *Manager {
	return &Manager{host: h, store: s, log: log}
}

// Resolve turns a preset into absolute bounds on the work area.
func Resolve(p Preset, workArea domain.Bounds) domain.Bounds {
	if p.Maximized {
		return domain.Bounds{
			Left: workArea.Left, Top: workArea.Top,
			Width: workArea.Width, Height: workArea.Height,
			State: "maximized",
		}
	}
	return domain.Bounds{
		Left:   workArea.Left + int(math.Round(p.Left*float64(workArea.Width))),
		Top:    workArea.Top + int(math.Round(p.Top*float64(workArea.Height))),
		Width:  int(math.Round(p.Width * float64(workArea.Width))),
		Height: int(math.Round(p.Height * float64(workArea.Height))),
		State:  "normal",
	}
}

// Position moves one window to a named preset.
func (m *Manager) Position(ctx context.Context, windowID host.WindowID, preset string) error {
	p, ok := Presets[preset]
	if !ok {
		return fmt.Errorf("unknown position preset %q", preset)
	}
	area, err := m.host.WorkArea(ctx)
	if err != nil {
		return fmt.Errorf("failed to read work area: %w", err)
	}
	return m.host.UpdateWindow(ctx, windowID, Resolve(p, area))
}

// ApplyQuick arranges the open windows per a quick layout, in window id
// order. Windows beyond the layout's slots are left alone; a layout needing
// more windows than are open fails.
func (m *Manager) ApplyQuick(ctx context.Context, name string) error {
	slots, ok := quickLayouts[name]
	if !ok {
		return fmt.Errorf("unknown quick layout %q", name)
	}
	windows, err := m.host.ListWindows(ctx)
	if err != nil {
		return fmt.Errorf("failed to list windows: %w", err)
	}
	if len(windows) < len(slots) {
		return fmt.Errorf("layout %q needs %d windows, have %d", name, len(slots), len(windows))
	}
	for i, preset := range slots {
		if err := m.Position(ctx, windows[i].ID, preset); err != nil {
			return err
		}
	}
	return nil
}

// Save records every open window's current bounds under a layout name.
func (m *Manager) Save(ctx context.Context, name string) (*store.WindowLayout, error) {
	windows, err := m.host.ListWindows(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list windows: %w", err)
	}

	layout := store.WindowLayout{
		Name:    name,
		SavedAt: time.Now().UTC(),
	}
	for _, w := range windows {
		layout.Windows = append(layout.Windows, store.WindowPlacement{
			Bounds:  w.Bounds,
			Focused: w.Focused,
		})
	}
	if err := m.store.SaveLayout(ctx, layout); err != nil {
		return nil, err
	}
	return &layout, nil
}

// Load re-applies a saved layout to the open windows, pairing them in
// order. Extra open windows keep their bounds; extra saved placements are
// ignored. A missing layout surfaces store.ErrLayoutNotFound.
func (m *Manager) Load(ctx context.Context, name string) error {
	layout, err := m.store.GetLayout(ctx, name)
	if err != nil {
		return err
	}
	windows, err := m.host.ListWindows(ctx)
	if err != nil {
		return fmt.Errorf("failed to list windows: %w", err)
	}

	for i, placement := range layout.Windows {
		if i >= len(windows) {
			break
		}
		if err := m.host.UpdateWindow(ctx, windows[i].ID, placement.Bounds); err != nil {
			m.log.Warn("failed to place window",
				logger.Int("window", int(windows[i].ID)), logger.Error(err))
		}
	}
	return nil
}

// List returns all saved layouts keyed by name.
func (m *Manager) List(ctx context.Context) (map[string]store.WindowLayout, error) {
	return m.store.Layouts(ctx)
}

// Delete removes a saved layout.
func (m *Manager) Delete(ctx context.Context, name string) error {
	return m.store.DeleteLayout(ctx, name)
}
