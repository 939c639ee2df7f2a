package remediation

import (
	"context"

	"github.com/meridianrcm/denialflow/internal/model"
	"github.com/meridianrcm/denialflow/internal/service"
)

// verifyEligibilityHandler remediates eligibility denials by re-verifying
// coverage for the date of service.
type verifyEligibilityHandler struct {
	eligibility service.EligibilityVerifier
}

func newVerifyEligibilityHandler(eligibility service.EligibilityVerifier) Handler {
	return &verifyEligibilityHandler{eligibility: eligibility}
}

func (h *verifyEligibilityHandler) Workflow() model.ResolutionWorkflow {
	return model.WorkflowVerifyEligibility
}

func (h *verifyEligibilityHandler) Resolve(ctx context.Context, req Request) Resolution {
	claim := req.Input.Claim

	result, err := h.eligibility.VerifyEligibility(ctx, claim.PatientID, claim.ServiceDate)
	if err != nil {
		return ManualFallback("eligibility verification failed: "+err.Error(), 21,
			"Confirm coverage directly with the payer",
			"Identify alternate coverage or determine patient responsibility",
		).Log("eligibility_check", model.ActionPendingManual,
			map[string]string{"patient_id": claim.PatientID}, nil)
	}

	if !result.Eligible {
		return ManualFallback("member not eligible for date of service", 21,
			"Confirm the coverage termination date with the payer",
			"Identify alternate coverage or determine patient responsibility",
		).Log("eligibility_check", model.ActionPendingManual,
			map[string]string{"patient_id": claim.PatientID},
			map[string]string{"eligible": "false"})
	}

	return Automated(2,
		"Verified member eligibility for the date of service",
		"Resubmitted claim with eligibility confirmation",
	).Log("eligibility_check", model.ActionCompleted,
		map[string]string{"patient_id": claim.PatientID},
		result.CoverageDetails,
	).Log("claim_resubmission", model.ActionSubmitted,
		map[string]string{"claim_id": req.Input.ClaimID}, nil)
}
