package presets

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoaderLoad(t *testing.T) {
	tmpDir := t.TempDir()
	yamlPath := filepath.Join(tmpDir, "presets.yaml")

	yamlContent := `---
presets:
  Focus:
    - pattern: "github|gitlab"
      group: "💻 Code"
      color: cyan
    - pattern: "youtube|vimeo"
      group: "🎥 Video"
      color: red
`

	err := os.WriteFile(yamlPath, []byte(yamlContent), 0o644)
	if err != nil {
		t.Fatalf("Failed to create test YAML file: %v", err)
	}

	loader := NewLoader(yamlPath)
	file, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	specs, ok := file.Presets["Focus"]
	if !ok {
		t.Fatal("Load() dropped the Focus preset")
	}
	if len(specs) != 2 {
		t.Fatalf("Load() returned %d rules, want 2", len(specs))
	}
	if specs[0].Pattern != "github|gitlab" || specs[0].Group != "💻 Code" || specs[0].Color != "cyan" {
		t.Errorf("first rule = %+v, want the file values in order", specs[0])
	}
}

func TestLoaderLoadFileNotFound(t *testing.T) {
	loader := NewLoader("/nonexistent/path/presets.yaml")
	_, err := loader.Load()
	if err == nil {
		t.Error("Load() with non-existent file should return error")
	}
}

func TestLoaderLoadMalformedYAML(t *testing.T) {
	tmpDir := t.TempDir()
	yamlPath := filepath.Join(tmpDir, "presets.yaml")

	if err := os.WriteFile(yamlPath, []byte("presets: [broken"), 0o644); err != nil {
		t.Fatalf("Failed to create test YAML file: %v", err)
	}

	loader := NewLoader(yamlPath)
	if _, err := loader.Load(); err == nil {
		t.Error("Load() with malformed YAML should return error")
	}
}
