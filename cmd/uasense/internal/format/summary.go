package format

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/uasense/uasense/pkg/classify"
	"github.com/uasense/uasense/pkg/policy"
)

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 2)

	labelStyle = lipgloss.NewStyle().Bold(true)

	confidentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	uncertainStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	unknownStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))

	fieldStyle = lipgloss.NewStyle().Faint(true)
)

// RenderDetection renders a detection result as a styled card for table mode.
func RenderDetection(result classify.DetectionResult) string {
	title := cases.Title(language.English)

	header := labelStyle.Render(fmt.Sprintf("%s %s", result.Label, result.Version))
	confidence := confidenceStyleFor(result).Render(fmt.Sprintf("confidence %.2f", result.Confidence))

	var contributors []string
	for _, id := range result.Contributors {
		contributors = append(contributors, string(id))
	}
	contributorLine := "none"
	if len(contributors) > 0 {
		contributorLine = strings.Join(contributors, ", ")
	}

	lines := []string{
		header + "  " + confidence,
		fieldStyle.Render("engine:  ") + fmt.Sprintf("%s %s", result.Engine, result.EngineVersion),
		fieldStyle.Render("os:      ") + fmt.Sprintf("%s (%s)", result.OS, result.OSVersion),
		fieldStyle.Render("device:  ") + title.String(string(result.Device())),
		fieldStyle.Render("sources: ") + contributorLine,
	}

	return cardStyle.Render(strings.Join(lines, "\n"))
}

// RenderAssessment renders a policy assessment below the detection card.
func RenderAssessment(assessment policy.Assessment) string {
	if assessment.Trusted {
		return confidentStyle.Render("✓ trusted by policy")
	}

	lines := []string{unknownStyle.Render("✗ not trusted by policy")}
	for _, reason := range assessment.Reasons {
		lines = append(lines, "  - "+reason)
	}
	return strings.Join(lines, "\n")
}

func confidenceStyleFor(result classify.DetectionResult) lipgloss.Style {
	switch {
	case result.Label == classify.LabelUnknown:
		return unknownStyle
	case result.Confidence >= 0.9:
		return confidentStyle
	default:
		return uncertainStyle
	}
}
