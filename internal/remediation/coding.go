package remediation

import (
	"context"
	"strings"

	"github.com/meridianrcm/denialflow/internal/model"
	"github.com/meridianrcm/denialflow/internal/service"
)

// codeReviewHandler remediates invalid-code denials by validating the billed
// codes against payer policy and resubmitting when they check out.
type codeReviewHandler struct {
	policy service.MedicalPolicyChecker
}

func newCodeReviewHandler(policy service.MedicalPolicyChecker) Handler {
	return &codeReviewHandler{policy: policy}
}

func (h *codeReviewHandler) Workflow() model.ResolutionWorkflow {
	return model.WorkflowCodeReviewAndCorrect
}

func (h *codeReviewHandler) Resolve(ctx context.Context, req Request) Resolution {
	claim := req.Input.Claim

	result, err := h.policy.CheckPolicy(ctx, claim.ProcedureCodes, claim.DiagnosisCodes, nil)
	if err != nil {
		return ManualFallback("code validation failed: "+err.Error(), 10,
			"Route claim to a certified coder for review",
			"Correct flagged codes and resubmit",
		).Log("code_validation", model.ActionPendingManual,
			map[string]string{"claim_id": req.Input.ClaimID}, nil)
	}

	if !result.Supported || len(result.Gaps) > 0 {
		return ManualFallback("billed codes not supported by payer policy", 10,
			"Route claim to a certified coder for review",
			"Correct flagged codes and resubmit",
		).Log("code_validation", model.ActionPendingManual,
			map[string]string{"claim_id": req.Input.ClaimID},
			map[string]string{"gaps": strings.Join(result.Gaps, "; ")})
	}

	return Automated(5,
		"Validated procedure and diagnosis codes against payer policy",
		"Resubmitted claim with confirmed codes",
	).Log("code_validation", model.ActionCompleted,
		map[string]string{"claim_id": req.Input.ClaimID},
		map[string]string{"strength": result.Strength},
	).Log("claim_resubmission", model.ActionSubmitted,
		map[string]string{"claim_id": req.Input.ClaimID}, nil)
}
