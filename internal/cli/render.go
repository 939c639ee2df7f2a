package cli

import (
	"fmt"
	"strings"

	"github.com/meridianrcm/denialflow/internal/model"
	"github.com/meridianrcm/denialflow/internal/remediation"
)

// RenderClassification formats a completed classification as a detail view.
func RenderClassification(claimID string, c model.DenialClassification) string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("Denial Classification"))
	b.WriteString("\n")

	writeField(&b, "Claim", claimID)
	writeField(&b, "Cause", string(c.CauseCategory))
	writeField(&b, "Subcategory", c.Subcategory)
	writeField(&b, "Workflow", string(c.ResolutionWorkflow))
	writeField(&b, "Confidence", fmt.Sprintf("%.2f", c.Confidence))
	writeField(&b, "Appeal probability", fmt.Sprintf("%.2f", c.AppealSuccessProbability))

	b.WriteString(LabelStyle.Render("Priority"))
	b.WriteString(PriorityStyle(c.PriorityScore).Render(fmt.Sprintf("%d/10", c.PriorityScore)))
	b.WriteString("\n")

	if len(c.RecommendedActions) > 0 {
		b.WriteString(LabelStyle.Render("Recommended"))
		b.WriteString("\n")
		for _, action := range c.RecommendedActions {
			b.WriteString(SubtleStyle.Render("  - " + action))
			b.WriteString("\n")
		}
	}

	return b.String()
}

// RenderOutcome formats a remediation outcome.
func RenderOutcome(outcome remediation.Outcome) string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("Remediation"))
	b.WriteString("\n")

	statusStyle := WarningStyle
	if outcome.Status == remediation.StatusAutomated {
		statusStyle = SuccessStyle
	}

	b.WriteString(LabelStyle.Render("Status"))
	b.WriteString(statusStyle.Render(outcome.Status))
	b.WriteString("\n")

	writeField(&b, "Workflow ID", outcome.WorkflowID)
	if outcome.Reason != "" {
		writeField(&b, "Reason", outcome.Reason)
	}
	writeField(&b, "Estimated days", fmt.Sprintf("%d", outcome.EstimatedResolutionDays))

	if len(outcome.ActionsTaken) > 0 {
		b.WriteString(LabelStyle.Render("Actions taken"))
		b.WriteString("\n")
		for _, action := range outcome.ActionsTaken {
			b.WriteString(SuccessStyle.Render("  + " + action))
			b.WriteString("\n")
		}
	}
	if len(outcome.ManualActions) > 0 {
		b.WriteString(LabelStyle.Render("Manual steps"))
		b.WriteString("\n")
		for _, action := range outcome.ManualActions {
			b.WriteString(WarningStyle.Render("  ! " + action))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func writeField(b *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	b.WriteString(LabelStyle.Render(label))
	b.WriteString(value)
	b.WriteString("\n")
}
