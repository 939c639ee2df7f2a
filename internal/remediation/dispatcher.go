package remediation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/meridianrcm/denialflow/internal/model"
	"github.com/meridianrcm/denialflow/internal/service"
)

// Handler is the unit of remediation logic bound to exactly one workflow.
type Handler interface {
	// Workflow returns the workflow this handler serves.
	Workflow() model.ResolutionWorkflow
	// Resolve runs the handler's automated path and falls back to its manual
	// branch on any external-check failure. It never returns an error.
	Resolve(ctx context.Context, req Request) Resolution
}

// Collaborators bundles the external systems handlers call out to.
type Collaborators struct {
	Eligibility   service.EligibilityVerifier
	Authorization service.AuthorizationRequester
	Duplicates    service.DuplicateSearcher
	Documentation service.DocumentationProvider
	Policy        service.MedicalPolicyChecker
}

// DefaultHandlers constructs one handler per resolution workflow.
func DefaultHandlers(collab Collaborators) []Handler {
	return []Handler{
		newResubmitWithAuthHandler(collab.Authorization),
		newCodeReviewHandler(collab.Policy),
		newVerifyEligibilityHandler(collab.Eligibility),
		newInvestigateDuplicateHandler(collab.Duplicates),
		newRequestDocumentationHandler(collab.Documentation),
		newMedicalReviewHandler(collab.Policy),
		newAppealFilingHandler(),
		newCoordinationOfBenefitsHandler(collab.Eligibility),
		newManualReviewHandler(),
	}
}

// Dispatcher routes a classified denial to the handler for its workflow.
// The dispatch table is built once at construction and never mutated.
type Dispatcher struct {
	handlers map[model.ResolutionWorkflow]Handler
	logger   *slog.Logger
}

// NewDispatcher builds a dispatcher over an explicit handler set.
func NewDispatcher(handlers []Handler, logger *slog.Logger) *Dispatcher {
	table := make(map[model.ResolutionWorkflow]Handler, len(handlers))
	for _, h := range handlers {
		table[h.Workflow()] = h
	}
	return &Dispatcher{
		handlers: table,
		logger:   logger,
	}
}

// Dispatch invokes the handler registered for the workflow and converts its
// resolution into an outcome. A missing handler yields a no_handler outcome
// and a panicking handler yields an error outcome; a handler failure is
// never propagated to the caller.
func (d *Dispatcher) Dispatch(ctx context.Context, wf model.ResolutionWorkflow, req Request) (outcome Outcome) {
	handler, ok := d.handlers[wf]
	if !ok {
		d.logger.Warn("no handler registered for workflow", "workflow", wf)
		return Outcome{Status: StatusNoHandler}
	}

	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("remediation handler panicked",
				"workflow", wf,
				"record_id", req.RecordID,
				"panic", r)
			outcome = Outcome{
				Status: StatusError,
				Error:  fmt.Sprintf("handler for %s panicked: %v", wf, r),
			}
		}
	}()

	resolution := handler.Resolve(ctx, req)

	d.logger.Info("remediation dispatched",
		"workflow", wf,
		"record_id", req.RecordID,
		"status", resolution.Status,
		"automated", resolution.Automated,
		"estimated_days", resolution.EstimatedDays)

	return Outcome{
		Status:                  resolution.Status,
		WorkflowID:              WorkflowID(wf, req.RecordID),
		Reason:                  resolution.Reason,
		ActionsTaken:            resolution.ActionsTaken,
		ManualActions:           resolution.ManualActions,
		Actions:                 resolution.Actions,
		EstimatedResolutionDays: resolution.EstimatedDays,
	}
}

// Registered reports whether a handler exists for the workflow.
func (d *Dispatcher) Registered(wf model.ResolutionWorkflow) bool {
	_, ok := d.handlers[wf]
	return ok
}

// WorkflowID synthesizes the deterministic workflow identifier for a denial.
func WorkflowID(wf model.ResolutionWorkflow, recordID string) string {
	return fmt.Sprintf("WF-%s-%s", strings.ToUpper(string(wf)), recordID)
}
