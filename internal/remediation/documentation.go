package remediation

import (
	"context"
	"strconv"
	"strings"

	"github.com/meridianrcm/denialflow/internal/model"
	"github.com/meridianrcm/denialflow/internal/service"
)

// defaultDocRequirements is the documentation set requested when the payer
// does not enumerate specific requirements in the denial.
var defaultDocRequirements = []string{
	"medical records",
	"physician notes",
	"operative report",
}

// requestDocumentationHandler remediates documentation denials by gathering
// the requested records and submitting them to the payer.
type requestDocumentationHandler struct {
	docs service.DocumentationProvider
}

func newRequestDocumentationHandler(docs service.DocumentationProvider) Handler {
	return &requestDocumentationHandler{docs: docs}
}

func (h *requestDocumentationHandler) Workflow() model.ResolutionWorkflow {
	return model.WorkflowRequestDocumentation
}

func (h *requestDocumentationHandler) Resolve(ctx context.Context, req Request) Resolution {
	claim := req.Input.Claim

	result, err := h.docs.GatherDocumentation(ctx, claim.PatientID, claim.ServiceDate, defaultDocRequirements)
	if err != nil {
		return ManualFallback("documentation lookup failed: "+err.Error(), 21,
			"Request missing records from the rendering provider",
			"Submit documentation to the payer once complete",
		).Log("documentation_gather", model.ActionPendingManual,
			map[string]string{"patient_id": claim.PatientID}, nil)
	}

	if !result.Complete {
		return ManualFallback("documentation set incomplete", 21,
			"Request missing records from the rendering provider",
			"Submit documentation to the payer once complete",
		).Log("documentation_gather", model.ActionPendingManual,
			map[string]string{"patient_id": claim.PatientID},
			map[string]string{"documents_found": strconv.Itoa(len(result.Documents))})
	}

	return Automated(7,
		"Gathered the requested documentation",
		"Submitted documentation to the payer",
	).Log("documentation_gather", model.ActionCompleted,
		map[string]string{"patient_id": claim.PatientID},
		map[string]string{"documents": strings.Join(result.Documents, "; ")},
	).Log("documentation_submission", model.ActionSubmitted,
		map[string]string{"claim_id": req.Input.ClaimID}, nil)
}
