package classify

import (
	"fmt"
	"regexp"
	"strings"
)

// The pattern library is an immutable, ordered rule catalog loaded from YAML
// (builtin via go:embed, optionally overridden by a synced external catalog).
// Rules are compiled once at load time; a Catalog is never mutated after
// prepare, so instances can be shared freely across engines.

// FallbackPattern is one named fallback in a version cascade, covering a
// known mobile or legacy variant of the label's UA token.
type FallbackPattern struct {
	Name    string `yaml:"name" validate:"required"`
	Pattern string `yaml:"pattern" validate:"required"`

	regex *regexp.Regexp
}

// VersionRule is the ordered extraction cascade for one browser label: a
// primary pattern tuned for desktop UAs, then fallbacks tried in order.
type VersionRule struct {
	Label     string            `yaml:"label" validate:"required"`
	Primary   string            `yaml:"primary" validate:"required"`
	Fallbacks []FallbackPattern `yaml:"fallbacks" validate:"dive"`

	primaryRegex *regexp.Regexp
}

// EngineRule maps a browser label to its rendering engine. When the engine
// version tracks the browser version (Blink, Gecko) VersionFromLabel is set;
// otherwise Token holds a UA pattern for the engine's own version.
type EngineRule struct {
	Label            string `yaml:"label" validate:"required"`
	Engine           string `yaml:"engine" validate:"required"`
	VersionFromLabel bool   `yaml:"version_from_label"`
	Token            string `yaml:"token"`

	tokenRegex *regexp.Regexp
}

// OSRule identifies one operating-system family by UA tokens and maps captured
// version tokens through a fixed release-name table. Excludes suppress a match
// when a more specific family shares the token (Android UAs contain "linux").
type OSRule struct {
	Family         string            `yaml:"family" validate:"required"`
	Tokens         []string          `yaml:"tokens" validate:"required,min=1"`
	Excludes       []string          `yaml:"excludes"`
	VersionPattern string            `yaml:"version_pattern"`
	Releases       map[string]string `yaml:"releases"`

	versionRegex *regexp.Regexp
}

// Catalog is the full pattern library. Rule order within each list is
// significant and preserved from the source document.
type Catalog struct {
	VersionRules []VersionRule `yaml:"version_rules" validate:"required,min=1,dive"`
	EngineRules  []EngineRule  `yaml:"engine_rules" validate:"required,min=1,dive"`
	OSRules      []OSRule      `yaml:"os_rules" validate:"required,min=1,dive"`

	// GenericVersionPattern is the last-resort extraction applied when a
	// label's whole cascade is exhausted: the first dotted number anywhere
	// in the user agent string.
	GenericVersionPattern string `yaml:"generic_version_pattern" validate:"required"`

	genericRegex *regexp.Regexp
}

// prepare compiles every pattern in the catalog. Invalid patterns fail the
// whole load; a half-compiled catalog is never returned.
func (c *Catalog) prepare() error {
	for i := range c.VersionRules {
		r := &c.VersionRules[i]
		re, err := regexp.Compile(r.Primary)
		if err != nil {
			return fmt.Errorf("version rule %q: compile primary: %w", r.Label, err)
		}
		r.primaryRegex = re
		for j := range r.Fallbacks {
			f := &r.Fallbacks[j]
			re, err := regexp.Compile(f.Pattern)
			if err != nil {
				return fmt.Errorf("version rule %q: compile fallback %q: %w", r.Label, f.Name, err)
			}
			f.regex = re
		}
	}

	for i := range c.EngineRules {
		r := &c.EngineRules[i]
		if r.Token == "" {
			continue
		}
		re, err := regexp.Compile(r.Token)
		if err != nil {
			return fmt.Errorf("engine rule %q: compile token: %w", r.Label, err)
		}
		r.tokenRegex = re
	}

	for i := range c.OSRules {
		r := &c.OSRules[i]
		if r.VersionPattern == "" {
			continue
		}
		re, err := regexp.Compile(r.VersionPattern)
		if err != nil {
			return fmt.Errorf("os rule %q: compile version pattern: %w", r.Family, err)
		}
		r.versionRegex = re
	}

	if c.GenericVersionPattern != "" {
		re, err := regexp.Compile(c.GenericVersionPattern)
		if err != nil {
			return fmt.Errorf("compile generic version pattern: %w", err)
		}
		c.genericRegex = re
	}

	return nil
}

// versionRule returns the cascade for a label, or nil when the catalog has
// none for it.
func (c *Catalog) versionRule(label Label) *VersionRule {
	for i := range c.VersionRules {
		if strings.EqualFold(c.VersionRules[i].Label, string(label)) {
			return &c.VersionRules[i]
		}
	}
	return nil
}

// engineRule returns the engine mapping for a label, or nil.
func (c *Catalog) engineRule(label Label) *EngineRule {
	for i := range c.EngineRules {
		if strings.EqualFold(c.EngineRules[i].Label, string(label)) {
			return &c.EngineRules[i]
		}
	}
	return nil
}
