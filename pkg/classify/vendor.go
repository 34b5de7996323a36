package classify

import "strings"

// vendorExtractor maps the navigator vendor string to a label. The Edge "edg"
// UA token takes precedence over vendor matching because Edge ships an empty
// or Google-flavored vendor string depending on platform. An empty vendor is
// itself a signal: combined with Android+Chrome+Safari UA tokens it matches
// the WebView pattern mobile Edge uses.
type vendorExtractor struct{}

func (vendorExtractor) ID() ExtractorID { return ExtractorVendor }

func (vendorExtractor) Extract(sig Signals) (*Candidate, error) {
	vendor := strings.ToLower(sig.Vendor)
	ua := strings.ToLower(sig.UserAgent)

	if strings.Contains(ua, "edg") {
		return candidate(LabelEdge, 0.9, ExtractorVendor), nil
	}

	switch {
	case strings.Contains(vendor, "google"):
		return candidate(LabelChrome, 0.9, ExtractorVendor), nil
	case strings.Contains(vendor, "apple"):
		return candidate(LabelSafari, 0.9, ExtractorVendor), nil
	case strings.Contains(vendor, "mozilla"):
		return candidate(LabelFirefox, 0.8, ExtractorVendor), nil
	}

	if vendor == "" {
		if strings.Contains(ua, "edg") || strings.Contains(ua, "edge") {
			return candidate(LabelEdge, 0.8, ExtractorVendor), nil
		}
		if strings.Contains(ua, "android") && strings.Contains(ua, "chrome") && strings.Contains(ua, "safari") {
			return candidate(LabelEdge, 0.7, ExtractorVendor), nil
		}
	}

	return nil, nil
}
