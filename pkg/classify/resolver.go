package classify

import "strings"

// resolver fills in the derived fields of a detection: browser version,
// rendering engine + version, and OS family + release name. It owns no state
// beyond the compiled catalog and is safe for concurrent use.
type resolver struct {
	catalog *Catalog
}

// brandAliases maps platform-brand names to labels where the brand string
// differs from the canonical label. "Chromium" has no alias here: it appears
// on every Chromium brand list and would defeat the Edge alias.
var brandAliases = map[string]Label{
	"microsoft edge": LabelEdge,
	"google chrome":  LabelChrome,
}

// resolveVersion derives the version string for the fused label. A structured
// brand list carrying the label is authoritative and short-circuits the
// pattern cascade entirely.
func (r resolver) resolveVersion(label Label, sig Signals) string {
	if label == LabelUnknown {
		return unknownValue
	}

	if v := brandVersion(label, sig.Brands); v != "" {
		return v
	}

	ua := strings.ToLower(sig.UserAgent)
	if ua == "" {
		return unknownValue
	}

	if rule := r.catalog.versionRule(label); rule != nil {
		if m := rule.primaryRegex.FindStringSubmatch(ua); len(m) >= 2 {
			return m[1]
		}
		for _, f := range rule.Fallbacks {
			if m := f.regex.FindStringSubmatch(ua); len(m) >= 2 {
				return m[1]
			}
		}
	}

	// Cascade exhausted: take the first dotted number anywhere in the UA
	// rather than giving up. Recall over precision.
	if r.catalog.genericRegex != nil {
		if m := r.catalog.genericRegex.FindStringSubmatch(ua); len(m) >= 2 {
			return m[1]
		}
	}

	return unknownValue
}

func brandVersion(label Label, brands []Brand) string {
	for _, b := range brands {
		name := strings.ToLower(strings.TrimSpace(b.Name))
		if name == "" || b.Version == "" {
			continue
		}
		if aliased, ok := brandAliases[name]; ok && aliased == label {
			return b.Version
		}
		if strings.EqualFold(name, string(label)) {
			return b.Version
		}
	}
	return ""
}

// resolveEngine maps the label to its rendering engine and derives the engine
// version: from the browser version when the engine tracks it (Blink, Gecko),
// otherwise from the engine's own UA token.
func (r resolver) resolveEngine(label Label, version string, sig Signals) (string, string) {
	rule := r.catalog.engineRule(label)
	if rule == nil {
		return unknownValue, unknownValue
	}

	if rule.VersionFromLabel && version != "" && version != unknownValue {
		return rule.Engine, version
	}

	if rule.tokenRegex != nil {
		ua := strings.ToLower(sig.UserAgent)
		if m := rule.tokenRegex.FindStringSubmatch(ua); len(m) >= 2 {
			return rule.Engine, m[1]
		}
	}

	return rule.Engine, unknownValue
}

// resolveOS identifies the OS family and release name from the UA alone; it
// is independent of the fused browser label. Token priority follows the rule
// order in the catalog.
func (r resolver) resolveOS(sig Signals) (string, string) {
	ua := strings.ToLower(sig.UserAgent)
	if ua == "" {
		return unknownValue, unknownValue
	}

	for i := range r.catalog.OSRules {
		rule := &r.catalog.OSRules[i]
		if !osRuleMatches(rule, ua) {
			continue
		}

		if rule.versionRegex == nil {
			return rule.Family, rule.Family
		}
		m := rule.versionRegex.FindStringSubmatch(ua)
		if len(m) < 2 {
			// Family token present but no version token at all.
			return rule.Family, rule.Family
		}

		token := strings.ReplaceAll(m[1], "_", ".")
		if name := lookupRelease(rule.Releases, token); name != "" {
			return rule.Family, name
		}
		// Version token present but unmapped.
		return rule.Family, rule.Family + " " + token
	}

	return unknownValue, unknownValue
}

func osRuleMatches(rule *OSRule, ua string) bool {
	for _, ex := range rule.Excludes {
		if strings.Contains(ua, ex) {
			return false
		}
	}
	for _, tok := range rule.Tokens {
		if strings.Contains(ua, tok) {
			return true
		}
	}
	return false
}

// lookupRelease tries the release table with progressively coarser keys:
// the full token, then major.minor, then the bare major version.
func lookupRelease(releases map[string]string, token string) string {
	if len(releases) == 0 {
		return ""
	}
	if name, ok := releases[token]; ok {
		return name
	}
	parts := strings.Split(token, ".")
	if len(parts) >= 2 {
		if name, ok := releases[parts[0]+"."+parts[1]]; ok {
			return name
		}
	}
	if name, ok := releases[parts[0]]; ok {
		return name
	}
	return ""
}
