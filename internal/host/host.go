// Package host defines the browser host adapter: the enumeration and
// mutation primitives the engines drive. The real browser lives behind this
// interface; the repository ships an in-memory implementation.
package host

import (
	"context"
	"errors"

	"github.com/nadalpiantini/tabgrouper/internal/domain"
)

type (
	WindowID int
	TabID    int
	GroupID  int
)

// GroupNone is the sentinel group id meaning "not in any group".
const GroupNone GroupID = -1

var (
	ErrWindowNotFound = errors.New("window not found")
	ErrTabNotFound    = errors.New("tab not found")
	ErrGroupNotFound  = errors.New("group not found")
)

// Window is a live browser window.
type Window struct {
	ID      WindowID
	Bounds  domain.Bounds
	Focused bool
}

// Tab is a live browser tab. GroupID is GroupNone for ungrouped tabs.
type Tab struct {
	ID       TabID
	WindowID WindowID
	Index    int
	URL      string
	Title    string
	Favicon  string
	Pinned   bool
	GroupID  GroupID
}

// Group is a live tab group.
type Group struct {
	ID        GroupID
	WindowID  WindowID
	Title     string
	Color     domain.Color
	Collapsed bool
}

// TabFilter scopes a tab enumeration. Zero WindowID means all windows.
type TabFilter struct {
	WindowID WindowID
}

// GroupFilter scopes a group enumeration. Zero WindowID means all windows.
type GroupFilter struct {
	WindowID WindowID
}

// CreateTabOptions describes a tab to create.
type CreateTabOptions struct {
	WindowID WindowID
	URL      string
	Pinned   bool
	Active   bool
}

// MoveTabsOptions targets a window; Index -1 appends at the end.
type MoveTabsOptions struct {
	WindowID WindowID
	Index    int
}

// GroupTabsOptions optionally pins the created group to a window; zero means
// the window of the first tab.
type GroupTabsOptions struct {
	WindowID WindowID
}

// GroupUpdate applies partial updates to a group; nil fields are untouched.
type GroupUpdate struct {
	Title     *string
	Color     *domain.Color
	Collapsed *bool
}

// Adapter is the host surface consumed by every engine. Mutations are issued
// one call at a time; later calls depend on identifiers returned by earlier
// ones, so ordering is correctness-critical.
type Adapter interface {
	ListWindows(ctx context.Context) ([]Window, error)
	CurrentWindow(ctx context.Context) (Window, error)
	CreateWindow(ctx context.Context, bounds domain.Bounds) (Window, error)
	RemoveWindow(ctx context.Context, id WindowID) error
	UpdateWindow(ctx context.Context, id WindowID, bounds domain.Bounds) error

	ListTabs(ctx context.Context, f TabFilter) ([]Tab, error)
	CreateTab(ctx context.Context, opts CreateTabOptions) (Tab, error)
	RemoveTabs(ctx context.Context, ids []TabID) error
	MoveTabs(ctx context.Context, ids []TabID, opts MoveTabsOptions) error

	ListGroups(ctx context.Context, f GroupFilter) ([]Group, error)
	GroupTabs(ctx context.Context, ids []TabID, opts GroupTabsOptions) (GroupID, error)
	UngroupTabs(ctx context.Context, ids []TabID) error
	UpdateGroup(ctx context.Context, id GroupID, update GroupUpdate) error

	// WorkArea is the usable screen rectangle, consumed by window layouts.
	WorkArea(ctx context.Context) (domain.Bounds, error)
}

// Helpers for building GroupUpdate values without pointer noise.

func StringPtr(s string) *string          { return &s }
func ColorPtr(c domain.Color) *domain.Color { return &c }
func BoolPtr(b bool) *bool                { return &b }
