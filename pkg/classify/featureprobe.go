package classify

import "strings"

// featureProbeExtractor interprets the host's vendor-prefixed CSS probe
// results. CSS prefix behavior is the weakest signal in the set, so prefix
// matches are only trusted when the corresponding capability hook confirms
// them, and everything here sits at or below 0.7 confidence. A failed probe
// yields no candidate rather than an error surfaced to the caller.
type featureProbeExtractor struct{}

func (featureProbeExtractor) ID() ExtractorID { return ExtractorFeatureProbe }

func (featureProbeExtractor) Extract(sig Signals) (*Candidate, error) {
	if sig.Features.Failed {
		return nil, nil
	}

	ua := strings.ToLower(sig.UserAgent)
	vendor := strings.ToLower(sig.Vendor)

	// Webkit prefix support alone matches every Blink and WebKit engine;
	// require the capability hook as redundant confirmation.
	if sig.Features.WebkitAppearance {
		if sig.Capabilities.ChromeRuntime {
			return candidate(LabelChrome, 0.7, ExtractorFeatureProbe), nil
		}
		if sig.Capabilities.SafariPushNotification {
			return candidate(LabelSafari, 0.7, ExtractorFeatureProbe), nil
		}
	}

	if sig.Features.MozAppearance && sig.Capabilities.FirefoxInstallTrigger {
		return candidate(LabelFirefox, 0.7, ExtractorFeatureProbe), nil
	}

	// Edge heuristics mirror the UA extractor's patterns at lower confidence.
	if strings.Contains(ua, "edg") || strings.Contains(ua, "edge") {
		return candidate(LabelEdge, 0.7, ExtractorFeatureProbe), nil
	}
	if vendor == "" && strings.Contains(ua, "android") && strings.Contains(ua, "chrome") && strings.Contains(ua, "safari") {
		return candidate(LabelEdge, 0.6, ExtractorFeatureProbe), nil
	}

	return nil, nil
}
