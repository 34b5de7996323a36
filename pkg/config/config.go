// pkg/config/config.go
package config

import (
	"fmt"
	"sort"
	"sync"

	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Manager handles loading and accessing application configuration. It merges
// prioritized sources (defaults, file, environment, flags) into one typed
// Config and guards it for concurrent readers.
type Manager struct {
	koanfInstance *koanf.Koanf
	currentConfig Config
	mu            sync.RWMutex
}

// NewManager creates a Manager with a fresh koanf instance.
func NewManager() *Manager {
	return &Manager{koanfInstance: koanf.New(".")}
}

// DefaultConfig returns a Config populated with hardcoded default values.
// These serve as the baseline if no other source overrides them.
func DefaultConfig() Config {
	return Config{
		Log: LogConfig{
			Level:  "error",
			Format: "text",
			File:   "",
		},
		Rules: RulesConfig{
			CacheDir: "",
			URL:      "",
		},
		Telemetry: TelemetryConfig{
			File: "",
		},
		Policy: PolicyConfig{
			MinConfidence: 0.5,
			MinVersions:   map[string]string{},
		},
	}
}

// Load merges the given sources in priority order (lowest first) and
// unmarshals the result into the manager's current config.
func (m *Manager) Load(sources ...Source) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ordered := append([]Source(nil), sources...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority() < ordered[j].Priority()
	})

	for _, src := range ordered {
		if err := src.Load(m.koanfInstance); err != nil {
			return fmt.Errorf("config source %s: %w", src.Name(), err)
		}
	}

	var newCfg Config
	if err := m.koanfInstance.UnmarshalWithConf("", &newCfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return fmt.Errorf("error unmarshaling final config: %w", err)
	}
	m.currentConfig = newCfg

	return nil
}

// LoadDefaults loads the standard source chain: hardcoded defaults, the
// optional config file, UASENSE_* environment variables, then flags.
func (m *Manager) LoadDefaults(configPath string, flags *pflag.FlagSet, debug bool) error {
	return m.Load(DefaultSources(configPath, flags, debug)...)
}

// Get returns a copy of the current configuration.
func (m *Manager) Get() Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentConfig
}

// DefaultConfigAsMap converts DefaultConfig to a flat map for koanf's
// confmap provider, so koanf knows every key up front.
func DefaultConfigAsMap() map[string]interface{} {
	def := DefaultConfig()
	return map[string]interface{}{
		"log.level":  def.Log.Level,
		"log.format": def.Log.Format,
		"log.file":   def.Log.File,

		"rules.cache_dir": def.Rules.CacheDir,
		"rules.url":       def.Rules.URL,

		"telemetry.file": def.Telemetry.File,

		"policy.min_confidence": def.Policy.MinConfidence,
		"policy.min_versions":   def.Policy.MinVersions,
	}
}
