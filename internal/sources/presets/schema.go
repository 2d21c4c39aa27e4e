package presets

// File is the top-level structure of a presets.yaml file. Each preset is an
// ordered rule list; order in the file is evaluation order.
type File struct {
	Presets map[string][]RuleSpec `yaml:"presets"`
}

// RuleSpec is one rule as written in the file.
type RuleSpec struct {
	Pattern string `yaml:"pattern"`
	Group   string `yaml:"group"`
	Color   string `yaml:"color,omitempty"`
}
