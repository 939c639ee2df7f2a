package remediation

import (
	"context"
	"time"

	"github.com/meridianrcm/denialflow/internal/model"
)

// appealWindow is how long after claim submission an appeal can be filed.
const appealWindow = 180 * 24 * time.Hour

// minimumAppealProbability gates automated filing: weak appeals waste the
// payer's one formal review and are better prepared by hand.
const minimumAppealProbability = 0.4

// appealFilingHandler remediates timely-filing denials by filing an appeal
// while the appeal window is still open.
type appealFilingHandler struct {
	now func() time.Time
}

func newAppealFilingHandler() Handler {
	return &appealFilingHandler{now: time.Now}
}

func (h *appealFilingHandler) Workflow() model.ResolutionWorkflow {
	return model.WorkflowAppealFiling
}

func (h *appealFilingHandler) Resolve(_ context.Context, req Request) Resolution {
	claim := req.Input.Claim

	deadline := claim.SubmissionDate.Add(appealWindow)
	if claim.SubmissionDate.IsZero() || !h.now().Before(deadline) {
		return ManualFallback("appeal window closed or submission date unknown", 60,
			"Confirm the appeal deadline with the payer",
			"Prepare an appeal packet with proof of timely submission for manual filing",
		).Log("deadline_check", model.ActionPendingManual,
			map[string]string{"claim_id": req.Input.ClaimID}, nil)
	}

	if req.Classification.AppealSuccessProbability < minimumAppealProbability {
		return ManualFallback("appeal success probability below filing threshold", 60,
			"Gather additional submission evidence before filing",
			"Prepare an appeal packet for manual review and filing",
		).Log("deadline_check", model.ActionCompleted,
			map[string]string{"claim_id": req.Input.ClaimID},
			map[string]string{"deadline": deadline.Format("2006-01-02")})
	}

	return Automated(30,
		"Verified the appeal window is open",
		"Filed appeal with proof of timely submission",
	).Log("deadline_check", model.ActionCompleted,
		map[string]string{"claim_id": req.Input.ClaimID},
		map[string]string{"deadline": deadline.Format("2006-01-02")},
	).Log("appeal_submission", model.ActionSubmitted,
		map[string]string{"claim_id": req.Input.ClaimID}, nil)
}
