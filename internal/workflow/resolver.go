// Package workflow maps classified denials to remediation workflows and
// fills in the triage scoring fields.
package workflow

import (
	"github.com/meridianrcm/denialflow/internal/model"
)

// Priority scoring thresholds.
const (
	basePriority        = 5
	highAmountThreshold = 10000
	midAmountThreshold  = 5000
	highConfidence      = 0.9
)

// Resolver completes a partial classification with workflow, recommended
// actions, priority score and appeal success probability.
type Resolver struct{}

// NewResolver creates a workflow resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve returns a completed copy of the classification. The cause→workflow
// table is total, so the workflow is always set.
func (r *Resolver) Resolve(classification model.DenialClassification, input model.DenialInput) model.DenialClassification {
	cause := classification.CauseCategory

	classification.ResolutionWorkflow = model.WorkflowForCause(cause)
	classification.RecommendedActions = model.ActionsForCause(cause)
	classification.PriorityScore = priorityScore(cause, classification.Confidence, input.Claim.ClaimAmount)
	classification.AppealSuccessProbability = appealProbability(cause, classification.Confidence, input.Claim.PriorAuthNum != "")

	return classification
}

// priorityScore computes the 1-10 triage urgency for a denial.
func priorityScore(cause model.DenialCause, confidence, claimAmount float64) int {
	score := basePriority

	switch {
	case claimAmount > highAmountThreshold:
		score += 2
	case claimAmount > midAmountThreshold:
		score++
	}

	if confidence > highConfidence {
		score++
	}

	switch cause {
	case model.CauseTimelyFiling, model.CauseEligibilityIssue:
		score += 2
	case model.CauseMissingAuthorization, model.CauseInvalidCode:
		score++
	}

	if score < 1 {
		score = 1
	}
	if score > 10 {
		score = 10
	}
	return score
}

// appealProbability estimates the likelihood that a formal appeal succeeds.
func appealProbability(cause model.DenialCause, confidence float64, hasPriorAuth bool) float64 {
	probability := model.AppealBaseRate(cause)
	probability += (confidence - 0.5) * 0.2
	if hasPriorAuth {
		probability += 0.1
	}

	if probability < 0.0 {
		probability = 0.0
	}
	if probability > 1.0 {
		probability = 1.0
	}
	return probability
}
