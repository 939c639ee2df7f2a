package remediation

import (
	"context"

	"github.com/meridianrcm/denialflow/internal/model"
	"github.com/meridianrcm/denialflow/internal/service"
)

// resubmitWithAuthHandler remediates missing-authorization denials by
// requesting an authorization and resubmitting the claim with it.
type resubmitWithAuthHandler struct {
	auth service.AuthorizationRequester
}

func newResubmitWithAuthHandler(auth service.AuthorizationRequester) Handler {
	return &resubmitWithAuthHandler{auth: auth}
}

func (h *resubmitWithAuthHandler) Workflow() model.ResolutionWorkflow {
	return model.WorkflowResubmitWithAuth
}

func (h *resubmitWithAuthHandler) Resolve(ctx context.Context, req Request) Resolution {
	result, err := h.auth.RequestAuthorization(ctx, req.Input)
	if err != nil {
		return ManualFallback("authorization request failed: "+err.Error(), 14,
			"Obtain clinical documentation supporting the authorization",
			"Submit a manual authorization request to the payer",
			"Resubmit the claim once authorization is granted",
		).Log("authorization_request", model.ActionPendingManual,
			map[string]string{"claim_id": req.Input.ClaimID}, nil)
	}

	if !result.Approved {
		return ManualFallback("payer declined automated authorization", 14,
			"Obtain clinical documentation supporting the authorization",
			"Escalate the authorization request through the payer portal",
			"Resubmit the claim once authorization is granted",
		).Log("authorization_request", model.ActionPendingManual,
			map[string]string{"claim_id": req.Input.ClaimID},
			map[string]string{"approved": "false"})
	}

	return Automated(3,
		"Requested prior authorization from payer",
		"Received authorization "+result.AuthNumber,
		"Resubmitted claim with authorization number",
	).Log("authorization_request", model.ActionCompleted,
		map[string]string{"claim_id": req.Input.ClaimID},
		map[string]string{"auth_number": result.AuthNumber},
	).Log("claim_resubmission", model.ActionSubmitted,
		map[string]string{"claim_id": req.Input.ClaimID, "auth_number": result.AuthNumber}, nil)
}
