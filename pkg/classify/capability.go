package classify

import "strings"

// capabilityExtractor keys off browser-exclusive runtime hooks. These are the
// strongest individual signals available, so matches carry 0.95 confidence
// (0.9 for Opera, whose version object has historically leaked into forks).
//
// The checks short-circuit: once one hook matches, later checks never run.
// Firefox goes first; its install hook is the least likely to be faked by a
// polyfill or shim on another engine.
type capabilityExtractor struct{}

func (capabilityExtractor) ID() ExtractorID { return ExtractorCapability }

func (capabilityExtractor) Extract(sig Signals) (*Candidate, error) {
	caps := sig.Capabilities

	switch {
	case caps.FirefoxInstallTrigger:
		return candidate(LabelFirefox, 0.95, ExtractorCapability), nil
	case caps.ChromeRuntime:
		return candidate(LabelChrome, 0.95, ExtractorCapability), nil
	case caps.SafariPushNotification:
		return candidate(LabelSafari, 0.95, ExtractorCapability), nil
	case brandListHasEdge(sig.Brands):
		return candidate(LabelEdge, 0.95, ExtractorCapability), nil
	case caps.OperaVersionObject:
		return candidate(LabelOpera, 0.9, ExtractorCapability), nil
	case caps.DocumentMode:
		return candidate(LabelIE, 0.95, ExtractorCapability), nil
	}

	return nil, nil
}

func brandListHasEdge(brands []Brand) bool {
	for _, b := range brands {
		if strings.EqualFold(b.Name, "Microsoft Edge") {
			return true
		}
	}
	return false
}
