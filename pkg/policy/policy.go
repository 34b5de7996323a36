// Package policy turns a detection result into a trust decision. The engine
// never errors on weak evidence; callers that need a yes/no
// answer configure an Evaluator with a confidence floor and per-browser
// minimum versions and branch on the assessment instead.
package policy

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/uasense/uasense/pkg/classify"
)

// Evaluator holds the trust thresholds for one deployment.
type Evaluator struct {
	// MinConfidence is the lowest fused confidence considered trustworthy.
	MinConfidence float64
	// MinVersions maps browser labels to the minimum acceptable version
	// (semver constraints are built from these, so "120", "120.0" and
	// "120.0.1" all work).
	MinVersions map[classify.Label]string
}

// Assessment is the outcome of evaluating one detection result.
type Assessment struct {
	Trusted bool     `json:"trusted"`
	Reasons []string `json:"reasons,omitempty"`
}

// Evaluate checks the result against the evaluator's thresholds. An Unknown
// label or an unparseable version is never trusted; the reasons name every
// failed check.
func (e Evaluator) Evaluate(result classify.DetectionResult) Assessment {
	var reasons []string

	if result.Label == classify.LabelUnknown {
		reasons = append(reasons, "browser could not be identified")
	}

	if result.Confidence < e.MinConfidence {
		reasons = append(reasons, fmt.Sprintf("confidence %.2f below floor %.2f", result.Confidence, e.MinConfidence))
	}

	if min, ok := e.MinVersions[result.Label]; ok && min != "" {
		if reason := checkMinVersion(result.Version, min); reason != "" {
			reasons = append(reasons, reason)
		}
	}

	return Assessment{Trusted: len(reasons) == 0, Reasons: reasons}
}

// checkMinVersion compares a detected version against a minimum. Detected
// versions can carry four dotted parts (Chrome's "120.0.0.0"), so they are
// coerced down to three before semver parsing.
func checkMinVersion(detected, min string) string {
	v, err := semver.NewVersion(coerce(detected))
	if err != nil {
		return fmt.Sprintf("version %q is not comparable", detected)
	}

	constraint, err := semver.NewConstraint(">= " + coerce(min))
	if err != nil {
		return fmt.Sprintf("minimum version %q is invalid", min)
	}

	if !constraint.Check(v) {
		return fmt.Sprintf("version %s is below minimum %s", detected, min)
	}
	return ""
}

func coerce(version string) string {
	parts := strings.Split(version, ".")
	if len(parts) > 3 {
		parts = parts[:3]
	}
	return strings.Join(parts, ".")
}
