package domain

import "testing"

func TestSummarize(t *testing.T) {
	tests := []struct {
		name     string
		windows  []WindowSnapshot
		expected Stats
	}{
		{
			name:     "empty",
			windows:  nil,
			expected: Stats{},
		},
		{
			name: "groups and ungrouped",
			windows: []WindowSnapshot{
				{
					Groups: []GroupRecord{
						{Title: "Code", Tabs: []TabRecord{{URL: "https://a"}, {URL: "https://b"}}},
					},
					Ungrouped: []TabRecord{{URL: "https://c"}},
				},
			},
			expected: Stats{Windows: 1, Groups: 2, Tabs: 3},
		},
		{
			name: "ungrouped only counts one extra group when non-empty",
			windows: []WindowSnapshot{
				{Groups: []GroupRecord{{Title: "A", Tabs: []TabRecord{{URL: "https://a"}}}}},
				{Ungrouped: []TabRecord{{URL: "https://b"}, {URL: "https://c"}}},
			},
			expected: Stats{Windows: 2, Groups: 2, Tabs: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Summarize(tt.windows); got != tt.expected {
				t.Errorf("Summarize = %+v, want %+v", got, tt.expected)
			}
		})
	}
}

func TestWorkspaceSnapshot_Clone(t *testing.T) {
	ws := &WorkspaceSnapshot{
		Name: "original",
		Tags: []string{"work"},
		Windows: []WindowSnapshot{
			{
				Groups:    []GroupRecord{{Title: "Code", Tabs: []TabRecord{{URL: "https://a"}}}},
				Ungrouped: []TabRecord{{URL: "https://b"}},
			},
		},
	}

	cp := ws.Clone()
	cp.Tags[0] = "mutated"
	cp.Windows[0].Groups[0].Tabs[0].URL = "https://mutated"
	cp.Windows[0].Ungrouped[0].URL = "https://mutated"

	if ws.Tags[0] != "work" {
		t.Error("Clone must not share the tags slice")
	}
	if ws.Windows[0].Groups[0].Tabs[0].URL != "https://a" {
		t.Error("Clone must not share group tab slices")
	}
	if ws.Windows[0].Ungrouped[0].URL != "https://b" {
		t.Error("Clone must not share ungrouped slices")
	}
}

func TestValidateWorkspace(t *testing.T) {
	valid := &WorkspaceSnapshot{
		Name: "ok",
		Windows: []WindowSnapshot{
			{
				Groups:    []GroupRecord{{Title: "Code", Color: Cyan, Tabs: []TabRecord{{URL: "https://github.com"}}}},
				Ungrouped: []TabRecord{{URL: "http://example.com"}},
			},
		},
	}

	tests := []struct {
		name   string
		ws     *WorkspaceSnapshot
		reason string
	}{
		{name: "valid workspace", ws: valid, reason: ""},
		{name: "nil", ws: nil, reason: "not an object"},
		{name: "missing name", ws: &WorkspaceSnapshot{}, reason: "missing name"},
		{
			name: "bad tab url",
			ws: &WorkspaceSnapshot{
				Name:    "x",
				Windows: []WindowSnapshot{{Ungrouped: []TabRecord{{URL: "not-a-url"}}}},
			},
			reason: `invalid url "not-a-url"`,
		},
		{
			name: "non-http scheme",
			ws: &WorkspaceSnapshot{
				Name:    "x",
				Windows: []WindowSnapshot{{Ungrouped: []TabRecord{{URL: "ftp://example.com/file"}}}},
			},
			reason: `unsupported scheme "ftp", only http/https`,
		},
		{
			name: "bad group color",
			ws: &WorkspaceSnapshot{
				Name:    "x",
				Windows: []WindowSnapshot{{Groups: []GroupRecord{{Title: "g", Color: "magenta"}}}},
			},
			reason: `invalid color "magenta"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateWorkspace(tt.ws); got != tt.reason {
				t.Errorf("ValidateWorkspace = %q, want %q", got, tt.reason)
			}
		})
	}
}

func TestHasTag(t *testing.T) {
	ws := &WorkspaceSnapshot{Tags: []string{"work", "daily"}}
	if !ws.HasTag("daily") {
		t.Error("expected daily tag")
	}
	if ws.HasTag("weekend") {
		t.Error("unexpected weekend tag")
	}
}
