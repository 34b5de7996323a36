package classify

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var catalogValidator = validator.New()

// ParseCatalog parses raw YAML bytes into a compiled Catalog. The document
// may be either a bare Catalog mapping or wrapped under a "catalog" key.
// Validation and pattern compilation both run before the catalog is returned,
// so a non-nil Catalog is always usable.
func ParseCatalog(data []byte) (*Catalog, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("rule catalog data is empty")
	}

	var catalog Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse rule catalog YAML: %w", err)
	}

	if len(catalog.VersionRules) == 0 {
		var wrapper struct {
			Catalog Catalog `yaml:"catalog"`
		}
		if err := yaml.Unmarshal(data, &wrapper); err != nil {
			return nil, fmt.Errorf("failed to parse rule catalog YAML: %w", err)
		}
		catalog = wrapper.Catalog
	}

	if err := validateCatalog(&catalog); err != nil {
		return nil, err
	}
	if err := catalog.prepare(); err != nil {
		return nil, err
	}
	return &catalog, nil
}

func validateCatalog(c *Catalog) error {
	if err := catalogValidator.Struct(c); err != nil {
		return fmt.Errorf("invalid rule catalog: %w", err)
	}

	// Cross-field checks the struct tags cannot express.
	for i, r := range c.VersionRules {
		if !Label(r.Label).Valid() || Label(r.Label) == LabelUnknown {
			return fmt.Errorf("version rule at index %d: unknown label %q", i, r.Label)
		}
	}
	for i, r := range c.EngineRules {
		if !Label(r.Label).Valid() || Label(r.Label) == LabelUnknown {
			return fmt.Errorf("engine rule at index %d: unknown label %q", i, r.Label)
		}
		if !r.VersionFromLabel && r.Token == "" {
			return fmt.Errorf("engine rule %q: needs version_from_label or a token pattern", r.Label)
		}
	}
	return nil
}
