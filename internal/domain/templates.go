package domain

import "sort"

// Templates is the static catalog of pre-configured workspace group sets for
// common workflows. Pure data; materialization lives in the engine.
var Templates = map[string][]GroupRecord{
	"Docs": {{
		Title: "📑 Docs",
		Color: Yellow,
		Tabs: []TabRecord{
			{URL: "https://notion.so"},
			{URL: "https://drive.google.com"},
			{URL: "https://docs.google.com"},
		},
	}},
	"AI": {{
		Title: "🤖 AI",
		Color: Purple,
		Tabs: []TabRecord{
			{URL: "https://chat.openai.com"},
			{URL: "https://claude.ai"},
			{URL: "https://gemini.google.com"},
		},
	}},
	"Code": {{
		Title: "💻 Code",
		Color: Cyan,
		Tabs: []TabRecord{
			{URL: "https://github.com"},
			{URL: "https://cursor.sh"},
			{URL: "https://stackblitz.com"},
		},
	}},
	"Social": {{
		Title: "📱 Social",
		Color: Green,
		Tabs: []TabRecord{
			{URL: "https://twitter.com"},
			{URL: "https://www.reddit.com"},
			{URL: "https://www.youtube.com"},
		},
	}},
	"Empleaido": {
		{
			Title: "📑 Docs",
			Color: Yellow,
			Tabs: []TabRecord{
				{URL: "https://notion.so"},
				{URL: "https://docs.google.com"},
			},
		},
		{
			Title: "🤖 AI",
			Color: Purple,
			Tabs: []TabRecord{
				{URL: "https://chat.openai.com"},
				{URL: "https://claude.ai"},
			},
		},
		{
			Title: "💻 Code",
			Color: Cyan,
			Tabs: []TabRecord{
				{URL: "https://github.com"},
				{URL: "https://cursor.sh"},
			},
		},
		{
			Title: "📱 Social",
			Color: Green,
			Tabs: []TabRecord{
				{URL: "https://twitter.com"},
				{URL: "https://linkedin.com"},
			},
		},
	},
}

// TemplateNames returns the catalog names, sorted.
func TemplateNames() []string {
	names := make([]string, 0, len(Templates))
	for name := range Templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Template returns the named template, or nil when unknown.
func Template(name string) []GroupRecord {
	return Templates[name]
}
