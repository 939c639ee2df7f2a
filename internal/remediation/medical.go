package remediation

import (
	"context"
	"strings"

	"github.com/meridianrcm/denialflow/internal/model"
	"github.com/meridianrcm/denialflow/internal/service"
)

// medicalReviewHandler remediates medical-necessity denials. When payer
// policy strongly supports the procedure it files an appeal automatically;
// anything weaker goes to clinical review.
type medicalReviewHandler struct {
	policy service.MedicalPolicyChecker
}

func newMedicalReviewHandler(policy service.MedicalPolicyChecker) Handler {
	return &medicalReviewHandler{policy: policy}
}

func (h *medicalReviewHandler) Workflow() model.ResolutionWorkflow {
	return model.WorkflowMedicalReview
}

func (h *medicalReviewHandler) Resolve(ctx context.Context, req Request) Resolution {
	claim := req.Input.Claim

	result, err := h.policy.CheckPolicy(ctx, claim.ProcedureCodes, claim.DiagnosisCodes,
		map[string]string{"denial_text": req.Input.DenialText})
	if err != nil {
		return ManualFallback("medical-policy check failed: "+err.Error(), 45,
			"Schedule a peer-to-peer review with the payer medical director",
			"Collect clinical literature supporting medical necessity",
		).Log("policy_check", model.ActionPendingManual,
			map[string]string{"claim_id": req.Input.ClaimID}, nil)
	}

	if !result.Supported || result.Strength != service.PolicyStrengthStrong {
		return ManualFallback("policy support insufficient for automated appeal", 45,
			"Schedule a peer-to-peer review with the payer medical director",
			"Collect clinical literature supporting medical necessity",
		).Log("policy_check", model.ActionPendingManual,
			map[string]string{"claim_id": req.Input.ClaimID},
			map[string]string{"strength": result.Strength, "gaps": strings.Join(result.Gaps, "; ")})
	}

	return Automated(30,
		"Compiled medical-policy support for the billed procedure",
		"Filed appeal citing payer medical policy",
	).Log("policy_check", model.ActionCompleted,
		map[string]string{"claim_id": req.Input.ClaimID},
		map[string]string{"strength": result.Strength},
	).Log("appeal_submission", model.ActionSubmitted,
		map[string]string{"claim_id": req.Input.ClaimID}, nil)
}
