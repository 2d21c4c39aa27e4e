package presets

import (
	"testing"

	"github.com/nadalpiantini/tabgrouper/internal/domain"
)

func TestMapPresets(t *testing.T) {
	mapper := NewMapper()

	file := &File{
		Presets: map[string][]RuleSpec{
			"Focus": {
				{Pattern: "github|gitlab", Group: "💻 Code", Color: "cyan"},
				{Pattern: "youtube", Group: "🎥 Video", Color: "red"},
			},
		},
	}

	presets, err := mapper.MapPresets(file)
	if err != nil {
		t.Fatalf("MapPresets() error = %v", err)
	}

	rules, ok := presets["Focus"]
	if !ok {
		t.Fatal("MapPresets() dropped the Focus preset")
	}
	if len(rules) != 2 {
		t.Fatalf("MapPresets() returned %d rules, want 2", len(rules))
	}
	if !rules[0].Pattern.MatchString("https://github.com/x") {
		t.Error("compiled pattern does not match")
	}
	if rules[0].Group != "💻 Code" || rules[0].Color != domain.Cyan {
		t.Errorf("first rule = %+v, want group/color carried over", rules[0])
	}
}

func TestMapPresetsSkipsInvalidRules(t *testing.T) {
	mapper := NewMapper()

	file := &File{
		Presets: map[string][]RuleSpec{
			"Mixed": {
				{Pattern: "", Group: "No Pattern"},
				{Pattern: "valid", Group: ""},
				{Pattern: "[broken", Group: "Bad Regex"},
				{Pattern: "ok", Group: "Bad Color", Color: "magenta"},
				{Pattern: "good", Group: "Kept", Color: "blue"},
			},
		},
	}

	presets, err := mapper.MapPresets(file)
	if err != nil {
		t.Fatalf("MapPresets() error = %v", err)
	}
	rules := presets["Mixed"]
	if len(rules) != 1 || rules[0].Group != "Kept" {
		t.Errorf("rules = %+v, want only the one valid rule", rules)
	}
}

func TestMapPresetsDropsEmptyPresets(t *testing.T) {
	mapper := NewMapper()

	file := &File{
		Presets: map[string][]RuleSpec{
			"Empty": {{Pattern: "[broken", Group: "x"}},
			"Good":  {{Pattern: "ok", Group: "Kept"}},
		},
	}

	presets, err := mapper.MapPresets(file)
	if err != nil {
		t.Fatalf("MapPresets() error = %v", err)
	}
	if _, ok := presets["Empty"]; ok {
		t.Error("preset with zero usable rules should be dropped")
	}
	if _, ok := presets["Good"]; !ok {
		t.Error("valid preset missing")
	}
}

func TestMapPresetsAllInvalid(t *testing.T) {
	mapper := NewMapper()

	file := &File{
		Presets: map[string][]RuleSpec{
			"Broken": {{Pattern: "[", Group: "x"}},
		},
	}

	if _, err := mapper.MapPresets(file); err == nil {
		t.Error("MapPresets() with no usable presets should return error")
	}
}

func TestMapPresetsRuleWithoutColor(t *testing.T) {
	mapper := NewMapper()

	file := &File{
		Presets: map[string][]RuleSpec{
			"Plain": {{Pattern: "example", Group: "Example"}},
		},
	}

	presets, err := mapper.MapPresets(file)
	if err != nil {
		t.Fatalf("MapPresets() error = %v", err)
	}
	if presets["Plain"][0].Color != "" {
		t.Errorf("color = %q, want empty (palette assigned downstream)", presets["Plain"][0].Color)
	}
}
