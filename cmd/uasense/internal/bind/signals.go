// Package bind converts loosely typed CLI inputs (flags, probe bundle
// documents) into the typed records the engine consumes.
package bind

import (
	"fmt"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"

	"github.com/uasense/uasense/pkg/classify"
)

// Signals decodes a host-probe bundle document (YAML; JSON works through the
// same decoder) into a typed Signals record. Probe bundles come from
// arbitrary host adapters, so field values arrive loosely typed ("true",
// 1, 768.0); cast normalizes them. Unknown keys are ignored, absent keys
// leave the zero value; absence of a signal is never an error.
func Signals(data []byte) (classify.Signals, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return classify.Signals{}, fmt.Errorf("parse signal bundle: %w", err)
	}
	if raw == nil {
		return classify.Signals{}, nil
	}

	sig := classify.Signals{
		UserAgent: cast.ToString(raw["user_agent"]),
		Vendor:    cast.ToString(raw["vendor"]),
	}

	if caps := cast.ToStringMap(raw["capabilities"]); len(caps) > 0 {
		sig.Capabilities = classify.Capabilities{
			FirefoxInstallTrigger:  cast.ToBool(caps["firefox_install_trigger"]),
			ChromeRuntime:          cast.ToBool(caps["chrome_runtime"]),
			SafariPushNotification: cast.ToBool(caps["safari_push_notification"]),
			OperaVersionObject:     cast.ToBool(caps["opera_version_object"]),
			DocumentMode:           cast.ToBool(caps["document_mode"]),
		}
	}

	if features := cast.ToStringMap(raw["features"]); len(features) > 0 {
		sig.Features = classify.FeatureProbes{
			Failed:           cast.ToBool(features["failed"]),
			WebkitAppearance: cast.ToBool(features["webkit_appearance"]),
			MozAppearance:    cast.ToBool(features["moz_appearance"]),
		}
	}

	if rawBrands, ok := raw["brands"]; ok {
		for _, item := range cast.ToSlice(rawBrands) {
			entry := cast.ToStringMapString(item)
			brand := classify.Brand{Name: entry["name"], Version: entry["version"]}
			if brand.Name == "" {
				continue
			}
			sig.Brands = append(sig.Brands, brand)
		}
	}

	sig.TouchCapable = cast.ToBool(raw["touch_capable"])
	if v, ok := raw["viewport_width"]; ok {
		sig.ViewportWidth = cast.ToInt(v)
		sig.HasViewport = true
	}

	return sig, nil
}
