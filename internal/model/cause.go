// Package model defines the core domain models used throughout the application.
package model

// DenialCause is the classified root reason for a claim denial.
type DenialCause string

// Denial cause constants. Declaration order matters: ensemble ties and
// keyword-template scans resolve in this order.
const (
	CauseMissingAuthorization      DenialCause = "missing_authorization"
	CauseInvalidCode               DenialCause = "invalid_code"
	CauseEligibilityIssue          DenialCause = "eligibility_issue"
	CauseDuplicateClaim            DenialCause = "duplicate_claim"
	CauseInsufficientDocumentation DenialCause = "insufficient_documentation"
	CauseMedicalNecessity          DenialCause = "medical_necessity"
	CauseTimelyFiling              DenialCause = "timely_filing"
	CauseCoordinationOfBenefits    DenialCause = "coordination_of_benefits"
	CauseOther                     DenialCause = "other"
)

// Causes returns every denial cause in declaration order.
func Causes() []DenialCause {
	return []DenialCause{
		CauseMissingAuthorization,
		CauseInvalidCode,
		CauseEligibilityIssue,
		CauseDuplicateClaim,
		CauseInsufficientDocumentation,
		CauseMedicalNecessity,
		CauseTimelyFiling,
		CauseCoordinationOfBenefits,
		CauseOther,
	}
}

// IsValid reports whether c is a known denial cause.
func (c DenialCause) IsValid() bool {
	for _, known := range Causes() {
		if c == known {
			return true
		}
	}
	return false
}

// ResolutionWorkflow identifies the remediation workflow bound to a denial cause.
type ResolutionWorkflow string

// Resolution workflow constants, one per denial cause plus the catch-all
// manual review workflow.
const (
	WorkflowResubmitWithAuth       ResolutionWorkflow = "resubmit_with_auth"
	WorkflowCodeReviewAndCorrect   ResolutionWorkflow = "code_review_and_correct"
	WorkflowVerifyEligibility      ResolutionWorkflow = "verify_eligibility"
	WorkflowInvestigateDuplicate   ResolutionWorkflow = "investigate_duplicate"
	WorkflowRequestDocumentation   ResolutionWorkflow = "request_documentation"
	WorkflowMedicalReview          ResolutionWorkflow = "medical_review"
	WorkflowAppealFiling           ResolutionWorkflow = "appeal_filing"
	WorkflowCoordinationOfBenefits ResolutionWorkflow = "coordination_of_benefits"
	WorkflowManualReview           ResolutionWorkflow = "manual_review"
)

// Workflows returns every resolution workflow in declaration order.
func Workflows() []ResolutionWorkflow {
	return []ResolutionWorkflow{
		WorkflowResubmitWithAuth,
		WorkflowCodeReviewAndCorrect,
		WorkflowVerifyEligibility,
		WorkflowInvestigateDuplicate,
		WorkflowRequestDocumentation,
		WorkflowMedicalReview,
		WorkflowAppealFiling,
		WorkflowCoordinationOfBenefits,
		WorkflowManualReview,
	}
}

// causeWorkflows is the fixed one-to-one mapping from cause to workflow.
var causeWorkflows = map[DenialCause]ResolutionWorkflow{
	CauseMissingAuthorization:      WorkflowResubmitWithAuth,
	CauseInvalidCode:               WorkflowCodeReviewAndCorrect,
	CauseEligibilityIssue:          WorkflowVerifyEligibility,
	CauseDuplicateClaim:            WorkflowInvestigateDuplicate,
	CauseInsufficientDocumentation: WorkflowRequestDocumentation,
	CauseMedicalNecessity:          WorkflowMedicalReview,
	CauseTimelyFiling:              WorkflowAppealFiling,
	CauseCoordinationOfBenefits:    WorkflowCoordinationOfBenefits,
	CauseOther:                     WorkflowManualReview,
}

// WorkflowForCause returns the remediation workflow for a denial cause.
// The mapping is total: unmapped causes fall back to manual review.
func WorkflowForCause(cause DenialCause) ResolutionWorkflow {
	if wf, ok := causeWorkflows[cause]; ok {
		return wf
	}
	return WorkflowManualReview
}
