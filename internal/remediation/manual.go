package remediation

import (
	"context"
	"time"

	"github.com/meridianrcm/denialflow/internal/model"
)

// followUpAfter is how long until an assigned denial is re-checked.
const followUpAfter = 7 * 24 * time.Hour

// manualReviewHandler is the unconditional fallback workflow. It always
// succeeds: it creates a work-queue assignment and a follow-up schedule and
// has no automated branch to fail.
type manualReviewHandler struct {
	now func() time.Time
}

func newManualReviewHandler() Handler {
	return &manualReviewHandler{now: time.Now}
}

func (h *manualReviewHandler) Workflow() model.ResolutionWorkflow {
	return model.WorkflowManualReview
}

func (h *manualReviewHandler) Resolve(_ context.Context, req Request) Resolution {
	followUp := h.now().Add(followUpAfter).Format("2006-01-02")

	res := Resolution{
		Status:        StatusAssigned,
		EstimatedDays: 14,
		ManualActions: []string{
			"Assigned to the claims-operations review queue",
			"Review denial text and claim data to determine root cause",
			"Follow up by " + followUp,
		},
	}

	return res.Log("manual_assignment", model.ActionCompleted,
		map[string]string{"claim_id": req.Input.ClaimID, "queue": "claims-operations"},
		map[string]string{"follow_up": followUp})
}
