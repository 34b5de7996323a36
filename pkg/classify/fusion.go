package classify

// fusion implements the deterministic conflict-resolution step. Candidates
// are grouped by label; each label scores count × maxConfidence. Two override
// rules are evaluated ahead of the plain score comparison, in a single pass
// over the labels in first-appearance order:
//
//   - Edge with ≥2 agreeing extractors wins outright. Edge's individual
//     signals are the most spoofing-prone in the set, so multi-signal
//     agreement is weighted specially. Two weak corroborating Edge
//     candidates can beat one strong non-Edge capability candidate.
//   - Chrome with max confidence ≥0.9 (i.e. corroborated by the capability
//     extractor) wins outright.
//
// The overrides are tie-break priorities, not veto gates: the pass does not
// exit early, and a later label matching an override overwrites the running
// best. Given the same candidates in the same order the function always
// returns the same result.

type labelGroup struct {
	label         Label
	count         int
	maxConfidence float64
	contributors  []ExtractorID
}

// fuse merges the candidate list into a single decision. Candidates with the
// Unknown label do not participate. An empty list yields Unknown at
// confidence 0 with no contributors.
func fuse(candidates []Candidate) FusionResult {
	groups := make(map[Label]*labelGroup)
	var order []Label

	for _, c := range candidates {
		if c.Label == LabelUnknown || !c.Label.Valid() {
			continue
		}
		g, ok := groups[c.Label]
		if !ok {
			g = &labelGroup{label: c.Label}
			groups[c.Label] = g
			order = append(order, c.Label)
		}
		g.count++
		if c.Confidence > g.maxConfidence {
			g.maxConfidence = c.Confidence
		}
		g.contributors = append(g.contributors, c.Source)
	}

	if len(order) == 0 {
		return FusionResult{Label: LabelUnknown, Confidence: 0, Contributors: []ExtractorID{}}
	}

	var (
		best         *labelGroup
		bestScore    float64
		bestOverride bool
	)
	for _, label := range order {
		g := groups[label]
		score := float64(g.count) * g.maxConfidence

		switch {
		case label == LabelEdge && g.count >= 2:
			best, bestScore, bestOverride = g, score, true
		case label == LabelChrome && g.maxConfidence >= 0.9:
			best, bestScore, bestOverride = g, score, true
		case !bestOverride && (best == nil || score > bestScore):
			best, bestScore = g, score
		}
	}

	return FusionResult{
		Label:        best.label,
		Confidence:   best.maxConfidence,
		Contributors: append([]ExtractorID(nil), best.contributors...),
	}
}
