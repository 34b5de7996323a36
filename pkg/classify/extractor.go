package classify

// Extractor is a single independent signal interpreter. Extract inspects the
// signal bundle and returns at most one candidate; returning (nil, nil) means
// the extractor has no opinion. A non-nil error marks the extractor as failed
// for this pass; the fusion step discards it but records the failure for
// diagnostics. Extractors are pure functions of their input and mutually
// independent; they must tolerate missing signals without raising.
type Extractor interface {
	ID() ExtractorID
	Extract(sig Signals) (*Candidate, error)
}

// defaultExtractors returns the extractor set in evaluation order. The order
// is part of the contract: contributor lists and fusion tie-breaking are
// reproducible only because this order is fixed.
func defaultExtractors() []Extractor {
	return []Extractor{
		capabilityExtractor{},
		vendorExtractor{},
		userAgentExtractor{},
		featureProbeExtractor{},
	}
}

func candidate(label Label, confidence float64, source ExtractorID) *Candidate {
	return &Candidate{Label: label, Confidence: confidence, Source: source}
}
