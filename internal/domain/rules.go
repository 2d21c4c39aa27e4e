package domain

import (
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// Rule maps URLs matching Pattern to a named group with an optional color.
// Rules are always evaluated in declaration order, first match wins; that
// ordering is part of the contract, not an implementation detail.
type Rule struct {
	Pattern *regexp.Regexp
	Group   string
	Color   Color
}

// ruleJSON is the persisted shape of a Rule. The pattern is stored as its
// regular-expression source and recompiled on load.
type ruleJSON struct {
	Pattern string `json:"pattern"`
	Group   string `json:"group"`
	Color   Color  `json:"color,omitempty"`
}

func (r Rule) MarshalJSON() ([]byte, error) {
	j := ruleJSON{Group: r.Group, Color: r.Color}
	if r.Pattern != nil {
		j.Pattern = r.Pattern.String()
	}
	return json.Marshal(j)
}

func (r *Rule) UnmarshalJSON(data []byte) error {
	var j ruleJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	re, err := regexp.Compile(j.Pattern)
	if err != nil {
		return fmt.Errorf("invalid rule pattern %q: %w", j.Pattern, err)
	}
	r.Pattern = re
	r.Group = j.Group
	r.Color = j.Color
	return nil
}

// MustRule builds a Rule from a pattern source, panicking on a bad pattern.
// Only used for the built-in rule tables.
func MustRule(pattern, group string, color Color) Rule {
	return Rule{Pattern: regexp.MustCompile(pattern), Group: group, Color: color}
}

// RuleMatch is the outcome of a successful rule evaluation.
type RuleMatch struct {
	Group string
	Color Color
}

// AutoCollapse selects which groups get collapsed after a merge.
type AutoCollapse struct {
	Enabled bool     `json:"enabled"`
	Only    []string `json:"only"`
}

// GroupingConfig is the process-wide grouping configuration. It is a plain
// value passed explicitly into every rule-engine and bucketing call; callers
// load it from the store, they never read ambient global state.
type GroupingConfig struct {
	NormalizeSubdomains    bool              `json:"normalizeSubdomains"`
	Whitelist              []string          `json:"whitelist"`
	BlacklistIgnore        []string          `json:"blacklistIgnore"`
	GroupMaxTabs           int               `json:"groupMaxTabs"`
	AutoCollapseAfterMerge bool              `json:"autoCollapseAfterMerge"`
	AutoCollapseByType     AutoCollapse      `json:"autoCollapseByType"`
	Preset                 string            `json:"preset"`
	Presets                map[string][]Rule `json:"presets"`
}

// DefaultPreset is the preset selected when none is configured.
const DefaultPreset = "Empleaido"

// DefaultGroupingConfig returns the built-in configuration.
func DefaultGroupingConfig() *GroupingConfig {
	return &GroupingConfig{
		NormalizeSubdomains:    true,
		Whitelist:              []string{"drive.google.com"},
		BlacklistIgnore:        []string{"chrome://", "about:", "blob:", "data:"},
		GroupMaxTabs:           30,
		AutoCollapseAfterMerge: true,
		AutoCollapseByType:     AutoCollapse{Enabled: false, Only: []string{"🎥 Video", "📱 Social"}},
		Preset:                 DefaultPreset,
		Presets: map[string][]Rule{
			DefaultPreset: {
				MustRule(`notion|docs\.google|drive\.google|sheets\.google|evernote`, "📑 Docs", Yellow),
				MustRule(`openai|chatgpt|claude|anthropic|gemini`, "🤖 AI", Purple),
				MustRule(`github|cursor|stackblitz|gitlab|bitbucket|stackoverflow`, "💻 Code", Cyan),
				MustRule(`youtube|vimeo|twitch`, "🎥 Video", Red),
				MustRule(`mail\.google|outlook|proton`, "📬 Mail", Green),
				MustRule(`twitter|x\.com|reddit|instagram|linkedin|facebook`, "📱 Social", Orange),
			},
		},
	}
}

// DefaultRules is the built-in category rule list. User-defined custom rules
// are appended after these, so built-ins always win ties.
var DefaultRules = []Rule{
	MustRule(`youtube|vimeo|twitch`, "🎥 Video", Red),
	MustRule(`notion|docs\.google|drive\.google|evernote`, "📑 Docs", Yellow),
	MustRule(`openai|chatgpt|claude|gemini|anthropic`, "🤖 AI", Purple),
	MustRule(`mail\.google|outlook|proton`, "📬 Mail", Blue),
	MustRule(`github|gitlab|bitbucket|stackoverflow`, "💻 Code", Cyan),
	MustRule(`twitter|x\.com|linkedin|facebook|instagram`, "📱 Social", Green),
}

// MergedRules appends custom rules after the built-in defaults, keeping the
// top-to-bottom first-match contract.
func MergedRules(custom []Rule) []Rule {
	merged := make([]Rule, 0, len(DefaultRules)+len(custom))
	merged = append(merged, DefaultRules...)
	merged = append(merged, custom...)
	return merged
}

// ActiveRules returns the rule list for the configured preset, falling back
// to the built-in defaults when the preset does not key into Presets.
func (c *GroupingConfig) ActiveRules() []Rule {
	if rules, ok := c.Presets[c.Preset]; ok {
		return rules
	}
	return DefaultRules
}

// Whitelisted reports whether the exact hostname is whitelisted.
func (c *GroupingConfig) Whitelisted(hostname string) bool {
	for _, h := range c.Whitelist {
		if h == hostname {
			return true
		}
	}
	return false
}

// compoundSuffixes are second-level public suffixes that keep a third label
// when normalizing (example.co.uk stays example.co.uk, not co.uk).
var compoundSuffixes = map[string]struct{}{
	"co.uk":  {},
	"com.br": {},
	"com.ar": {},
	"com.mx": {},
	"com.do": {},
	"com.co": {},
}

// Hostname extracts the hostname from a raw URL, or "" when it does not
// parse as an absolute URL with a host.
func Hostname(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

// BaseHost strips a URL down to its registrable domain. With normalize off it
// returns the raw hostname. Malformed URLs yield "", never an error; callers
// treat "" as "skip".
func BaseHost(rawURL string, normalize bool) string {
	hostname := Hostname(rawURL)
	if hostname == "" {
		return ""
	}
	if !normalize {
		return hostname
	}

	parts := strings.Split(hostname, ".")
	if len(parts) <= 2 {
		return hostname
	}
	suffix := strings.Join(parts[len(parts)-2:], ".")
	if _, ok := compoundSuffixes[suffix]; ok {
		return strings.Join(parts[len(parts)-3:], ".")
	}
	return strings.Join(parts[len(parts)-2:], ".")
}

// IsIgnored reports whether a URL is excluded from grouping: empty, or
// prefixed by any configured blacklist entry.
func IsIgnored(rawURL string, cfg *GroupingConfig) bool {
	if rawURL == "" {
		return true
	}
	for _, prefix := range cfg.BlacklistIgnore {
		if strings.HasPrefix(rawURL, prefix) {
			return true
		}
	}
	return false
}

// MatchPreset evaluates the active preset's rules against the full URL in
// declaration order and returns the first match, or nil.
func MatchPreset(rawURL string, cfg *GroupingConfig) *RuleMatch {
	for _, r := range cfg.ActiveRules() {
		if r.Pattern.MatchString(rawURL) {
			return &RuleMatch{Group: r.Group, Color: r.Color}
		}
	}
	return nil
}

// Mode selects how tabs are keyed when grouping.
type Mode string

const (
	ModeDomain   Mode = "domain"
	ModeCategory Mode = "category"
)

// FallbackCategory is the bucket for tabs no category rule matches.
const FallbackCategory = "🌐 Other"

// Category is the grouping key assigned to a single tab.
type Category struct {
	Key   string
	Color Color
}

// Categorize maps a tab URL to its grouping key. Domain mode keys by raw
// hostname with no color. Category mode walks the merged rule list against
// the hostname, first match wins, falling back to FallbackCategory. A URL
// with no parseable hostname yields nil, which means "skip this tab".
func Categorize(rawURL string, mode Mode, rules []Rule) *Category {
	hostname := Hostname(rawURL)
	if hostname == "" {
		return nil
	}

	switch mode {
	case ModeDomain:
		return &Category{Key: hostname}
	case ModeCategory:
		for _, r := range rules {
			if r.Pattern.MatchString(hostname) {
				return &Category{Key: r.Group, Color: r.Color}
			}
		}
		return &Category{Key: FallbackCategory, Color: Grey}
	}
	return nil
}
