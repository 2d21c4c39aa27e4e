package presets

import (
	"fmt"
	"regexp"

	"github.com/nadalpiantini/tabgrouper/internal/domain"
)

// Mapper converts file rule specs to domain rules
type Mapper struct{}

// NewMapper creates a new mapper instance
func NewMapper() *Mapper {
	return &Mapper{}
}

// MapPresets compiles every preset's rule list, preserving file order. A
// rule with a bad pattern, an empty group or an unknown color is skipped; a
// file yielding zero usable presets is an error.
func (m *Mapper) MapPresets(file *File) (map[string][]domain.Rule, error) {
	out := make(map[string][]domain.Rule, len(file.Presets))

	for name, specs := range file.Presets {
		var rules []domain.Rule
		for _, spec := range specs {
			if spec.Pattern == "" || spec.Group == "" {
				continue
			}
			pattern, err := regexp.Compile(spec.Pattern)
			if err != nil {
				continue
			}
			color := domain.Color(spec.Color)
			if spec.Color != "" && !color.Valid() {
				continue
			}
			rules = append(rules, domain.Rule{
				Pattern: pattern,
				Group:   spec.Group,
				Color:   color,
			})
		}
		if len(rules) > 0 {
			out[name] = rules
		}
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("no valid presets found in config")
	}

	return out, nil
}
