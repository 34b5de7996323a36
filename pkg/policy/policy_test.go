package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/uasense/uasense/pkg/classify"
)

func TestEvaluate_Trusted(t *testing.T) {
	e := Evaluator{
		MinConfidence: 0.5,
		MinVersions:   map[classify.Label]string{classify.LabelChrome: "110"},
	}
	res := e.Evaluate(classify.DetectionResult{
		Label:      classify.LabelChrome,
		Version:    "120.0.6099.129",
		Confidence: 0.95,
	})
	assert.True(t, res.Trusted)
	assert.Empty(t, res.Reasons)
}

func TestEvaluate_UnknownLabelNeverTrusted(t *testing.T) {
	e := Evaluator{MinConfidence: 0}
	res := e.Evaluate(classify.DetectionResult{Label: classify.LabelUnknown, Confidence: 1})
	assert.False(t, res.Trusted)
	assert.Len(t, res.Reasons, 1)
}

func TestEvaluate_ConfidenceFloor(t *testing.T) {
	e := Evaluator{MinConfidence: 0.8}
	res := e.Evaluate(classify.DetectionResult{
		Label:      classify.LabelSafari,
		Version:    "17.0",
		Confidence: 0.7,
	})
	assert.False(t, res.Trusted)
	assert.Contains(t, res.Reasons[0], "confidence")
}

func TestEvaluate_MinVersion(t *testing.T) {
	e := Evaluator{
		MinConfidence: 0.5,
		MinVersions:   map[classify.Label]string{classify.LabelFirefox: "115"},
	}

	old := e.Evaluate(classify.DetectionResult{
		Label:      classify.LabelFirefox,
		Version:    "102.0",
		Confidence: 0.9,
	})
	assert.False(t, old.Trusted)
	assert.Contains(t, old.Reasons[0], "below minimum")

	current := e.Evaluate(classify.DetectionResult{
		Label:      classify.LabelFirefox,
		Version:    "120.0",
		Confidence: 0.9,
	})
	assert.True(t, current.Trusted)
}

func TestEvaluate_FourPartVersionCoerced(t *testing.T) {
	e := Evaluator{
		MinConfidence: 0.5,
		MinVersions:   map[classify.Label]string{classify.LabelEdge: "119.0.0.0"},
	}
	res := e.Evaluate(classify.DetectionResult{
		Label:      classify.LabelEdge,
		Version:    "120.0.2210.91",
		Confidence: 0.9,
	})
	assert.True(t, res.Trusted)
}

func TestEvaluate_UnparseableVersion(t *testing.T) {
	e := Evaluator{
		MinConfidence: 0.5,
		MinVersions:   map[classify.Label]string{classify.LabelChrome: "110"},
	}
	res := e.Evaluate(classify.DetectionResult{
		Label:      classify.LabelChrome,
		Version:    "Unknown",
		Confidence: 0.9,
	})
	assert.False(t, res.Trusted)
	assert.Contains(t, res.Reasons[0], "not comparable")
}

func TestEvaluate_MultipleReasonsAccumulate(t *testing.T) {
	e := Evaluator{MinConfidence: 0.9}
	res := e.Evaluate(classify.DetectionResult{Label: classify.LabelUnknown, Confidence: 0})
	assert.False(t, res.Trusted)
	assert.Len(t, res.Reasons, 2)
}

func TestEvaluate_NoMinVersionForLabel(t *testing.T) {
	e := Evaluator{
		MinConfidence: 0.5,
		MinVersions:   map[classify.Label]string{classify.LabelChrome: "110"},
	}
	res := e.Evaluate(classify.DetectionResult{
		Label:      classify.LabelOpera,
		Version:    "Unknown",
		Confidence: 0.9,
	})
	assert.True(t, res.Trusted)
}
