package domain

import "time"

// TabRecord is one captured tab. Title and Favicon are present only when
// metadata capture is enabled in the workspace settings.
type TabRecord struct {
	URL     string `json:"url"`
	Pinned  bool   `json:"pinned"`
	Title   string `json:"title,omitempty"`
	Favicon string `json:"favicon,omitempty"`
}

// GroupRecord is one captured tab group with its member tabs in order.
type GroupRecord struct {
	Title string      `json:"title"`
	Color Color       `json:"color,omitempty"`
	Tabs  []TabRecord `json:"tabs"`
}

// Bounds describes a window's placement and state.
type Bounds struct {
	Left   int    `json:"left"`
	Top    int    `json:"top"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	State  string `json:"state,omitempty"`
}

// WindowSnapshot captures one window: its bounds, its groups in order, and
// its ungrouped tabs in order.
type WindowSnapshot struct {
	Bounds    Bounds        `json:"bounds"`
	Groups    []GroupRecord `json:"groups"`
	Ungrouped []TabRecord   `json:"ungrouped"`
}

// Stats summarizes a workspace. It is always derived from the windows via
// Summarize, never hand-edited.
type Stats struct {
	Windows int `json:"windows"`
	Groups  int `json:"groups"`
	Tabs    int `json:"tabs"`
}

// WorkspaceSnapshot is the durable unit: a named, dated capture of an entire
// multi-window session. Name uniqueness is enforced by the store at save
// time, not by the snapshot itself.
type WorkspaceSnapshot struct {
	Name    string           `json:"name"`
	Date    time.Time        `json:"date"`
	Tags    []string         `json:"tags"`
	Notes   string           `json:"notes"`
	Windows []WindowSnapshot `json:"windows"`
	Stats   Stats            `json:"stats"`
}

// Summarize folds over captured windows: ungrouped tabs count as one extra
// group per window when non-empty.
func Summarize(windows []WindowSnapshot) Stats {
	s := Stats{Windows: len(windows)}
	for _, w := range windows {
		s.Groups += len(w.Groups)
		if len(w.Ungrouped) > 0 {
			s.Groups++
		}
		s.Tabs += len(w.Ungrouped)
		for _, g := range w.Groups {
			s.Tabs += len(g.Tabs)
		}
	}
	return s
}

// Clone returns a deep copy of the snapshot.
func (ws *WorkspaceSnapshot) Clone() *WorkspaceSnapshot {
	cp := *ws
	cp.Tags = append([]string(nil), ws.Tags...)
	cp.Windows = make([]WindowSnapshot, len(ws.Windows))
	for i, w := range ws.Windows {
		cw := w
		cw.Ungrouped = append([]TabRecord(nil), w.Ungrouped...)
		cw.Groups = make([]GroupRecord, len(w.Groups))
		for j, g := range w.Groups {
			cg := g
			cg.Tabs = append([]TabRecord(nil), g.Tabs...)
			cw.Groups[j] = cg
		}
		cp.Windows[i] = cw
	}
	return &cp
}

// HasTag reports whether the snapshot carries the given tag.
func (ws *WorkspaceSnapshot) HasTag(tag string) bool {
	for _, t := range ws.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
