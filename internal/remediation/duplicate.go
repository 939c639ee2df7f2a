package remediation

import (
	"context"

	"github.com/meridianrcm/denialflow/internal/model"
	"github.com/meridianrcm/denialflow/internal/service"
)

// investigateDuplicateHandler remediates duplicate-claim denials by locating
// the original submission in claim history.
type investigateDuplicateHandler struct {
	duplicates service.DuplicateSearcher
}

func newInvestigateDuplicateHandler(duplicates service.DuplicateSearcher) Handler {
	return &investigateDuplicateHandler{duplicates: duplicates}
}

func (h *investigateDuplicateHandler) Workflow() model.ResolutionWorkflow {
	return model.WorkflowInvestigateDuplicate
}

func (h *investigateDuplicateHandler) Resolve(ctx context.Context, req Request) Resolution {
	result, err := h.duplicates.FindDuplicate(ctx, req.Input)
	if err != nil {
		return ManualFallback("duplicate search failed: "+err.Error(), 10,
			"Compare claim lines against payer claim history",
			"Dispute the duplicate denial with supporting documentation",
		).Log("duplicate_search", model.ActionPendingManual,
			map[string]string{"claim_id": req.Input.ClaimID}, nil)
	}

	if !result.Found {
		// No matching claim on file, so the denial itself is suspect.
		return ManualFallback("no duplicate found in claim history", 10,
			"Compare claim lines against payer claim history",
			"Dispute the duplicate denial with supporting documentation",
		).Log("duplicate_search", model.ActionPendingManual,
			map[string]string{"claim_id": req.Input.ClaimID},
			map[string]string{"found_duplicate": "false"})
	}

	return Automated(1,
		"Located original claim "+result.DuplicateClaimID,
		"Confirmed duplicate submission and closed the denial",
	).Log("duplicate_search", model.ActionCompleted,
		map[string]string{"claim_id": req.Input.ClaimID},
		map[string]string{"duplicate_claim_id": result.DuplicateClaimID},
	).Log("denial_closure", model.ActionCompleted,
		map[string]string{"claim_id": req.Input.ClaimID}, nil)
}
