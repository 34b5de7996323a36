// pkg/config/types.go
package config

// Config is the root configuration structure for the uasense application.
type Config struct {
	Log       LogConfig       `description:"Logging configuration" koanf:"log"`
	Rules     RulesConfig     `description:"Pattern catalog configuration" koanf:"rules"`
	Telemetry TelemetryConfig `description:"Telemetry configuration" koanf:"telemetry"`
	Policy    PolicyConfig    `description:"Trust policy configuration" koanf:"policy"`
}

// LogConfig holds logging related configuration.
type LogConfig struct {
	Level  string `description:"Log level applied to uasense logs" koanf:"level"`
	Format string `description:"Log format: json | text" koanf:"format"`
	File   string `description:"Log file path (optional)" koanf:"file"`
}

// RulesConfig holds pattern-catalog related configuration.
type RulesConfig struct {
	// CacheDir overrides the workspace cache directory for the synced catalog.
	CacheDir string `description:"Catalog cache directory override" koanf:"cache_dir"`
	// URL is the default remote catalog source for 'rules sync'.
	URL string `description:"Default remote catalog URL" koanf:"url"`
}

// TelemetryConfig holds classification telemetry configuration.
type TelemetryConfig struct {
	File string `description:"JSONL telemetry file path (empty disables telemetry)" koanf:"file"`
}

// PolicyConfig holds the trust thresholds applied by 'classify --policy'.
type PolicyConfig struct {
	MinConfidence float64           `description:"Minimum fused confidence to trust a result" koanf:"min_confidence"`
	MinVersions   map[string]string `description:"Minimum browser version per label" koanf:"min_versions"`
}
