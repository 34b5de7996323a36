package classify

import "strings"

// userAgentExtractor runs an ordered, short-circuiting substring cascade over
// the lower-cased user-agent. Two orderings are load-bearing:
//
//   - Firefox before Safari: Firefox UAs carry "like Gecko" tokens that naive
//     Safari matchers misclassify.
//   - "edg" before "chrome": Chromium-based Edge UAs always also contain
//     "chrome".
//
// The plain-Safari rule fires last at low confidence because "safari" is the
// least specific token on the web.
type userAgentExtractor struct{}

func (userAgentExtractor) ID() ExtractorID { return ExtractorUserAgent }

func (userAgentExtractor) Extract(sig Signals) (*Candidate, error) {
	ua := strings.ToLower(sig.UserAgent)
	vendor := strings.ToLower(sig.Vendor)
	if ua == "" {
		return nil, nil
	}

	switch {
	case strings.Contains(ua, "firefox"), strings.Contains(ua, "fxios"):
		return candidate(LabelFirefox, 0.9, ExtractorUserAgent), nil

	case strings.Contains(ua, "edg"):
		return candidate(LabelEdge, 0.9, ExtractorUserAgent), nil

	case strings.Contains(ua, "opr"), strings.Contains(ua, "opera"):
		return candidate(LabelOpera, 0.9, ExtractorUserAgent), nil

	case strings.Contains(ua, "msie"), strings.Contains(ua, "trident"):
		return candidate(LabelIE, 0.9, ExtractorUserAgent), nil

	case strings.Contains(ua, "chrome"):
		// "edg" and "opr" were already excluded by the earlier arms.
		if strings.Contains(ua, "crios") {
			return candidate(LabelChrome, 0.95, ExtractorUserAgent), nil
		}
		return candidate(LabelChrome, 0.8, ExtractorUserAgent), nil

	case strings.Contains(ua, "safari") && strings.Contains(vendor, "google"):
		// Chrome on mobile emulating Safari.
		return candidate(LabelChrome, 0.85, ExtractorUserAgent), nil

	case strings.Contains(ua, "edge"):
		// Legacy (EdgeHTML) token.
		return candidate(LabelEdge, 0.9, ExtractorUserAgent), nil

	case vendor == "" && strings.Contains(ua, "android") && strings.Contains(ua, "chrome") && strings.Contains(ua, "safari"):
		// Android WebView pattern used by mobile Edge. In practice the Chrome
		// arm above consumes these UAs first; the arm is kept for parity with
		// the vendor extractor's WebView rule.
		return candidate(LabelEdge, 0.8, ExtractorUserAgent), nil

	case strings.Contains(ua, "safari"):
		return candidate(LabelSafari, 0.7, ExtractorUserAgent), nil
	}

	return nil, nil
}
