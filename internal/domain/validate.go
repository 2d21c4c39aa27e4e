package domain

import (
	"fmt"
	"net/url"
)

// Validation returns descriptive reason strings instead of errors so that
// bulk callers (import) can aggregate failures across many items. An empty
// string means valid.

// ValidateTabRecord checks that a tab record carries an absolute http(s) URL.
// Live tabs may hold other schemes; imported ones may not.
func ValidateTabRecord(t *TabRecord) string {
	if t == nil || t.URL == "" {
		return "tab missing url"
	}
	u, err := url.Parse(t.URL)
	if err != nil || u.Host == "" {
		return fmt.Sprintf("invalid url %q", t.URL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Sprintf("unsupported scheme %q, only http/https", u.Scheme)
	}
	return ""
}

// ValidateGroupRecord checks a group's color and every member tab.
func ValidateGroupRecord(g *GroupRecord) string {
	if g == nil {
		return "group invalid"
	}
	if g.Color != "" && !g.Color.Valid() {
		return fmt.Sprintf("invalid color %q", g.Color)
	}
	for i := range g.Tabs {
		if reason := ValidateTabRecord(&g.Tabs[i]); reason != "" {
			return reason
		}
	}
	return ""
}

// ValidateWindowSnapshot checks every group and ungrouped tab of a window.
func ValidateWindowSnapshot(w *WindowSnapshot) string {
	if w == nil {
		return "window invalid"
	}
	for i := range w.Groups {
		if reason := ValidateGroupRecord(&w.Groups[i]); reason != "" {
			return reason
		}
	}
	for i := range w.Ungrouped {
		if reason := ValidateTabRecord(&w.Ungrouped[i]); reason != "" {
			return reason
		}
	}
	return ""
}

// ValidateWorkspace checks that a workspace object is well-formed: a
// non-empty name and valid windows throughout.
func ValidateWorkspace(ws *WorkspaceSnapshot) string {
	if ws == nil {
		return "not an object"
	}
	if ws.Name == "" {
		return "missing name"
	}
	for i := range ws.Windows {
		if reason := ValidateWindowSnapshot(&ws.Windows[i]); reason != "" {
			return reason
		}
	}
	return ""
}
