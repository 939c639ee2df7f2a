package remediation

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridianrcm/denialflow/internal/model"
	"github.com/meridianrcm/denialflow/internal/payer"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func defaultCollaborators() Collaborators {
	gateway := payer.NewMockGateway()
	return Collaborators{
		Eligibility:   gateway,
		Authorization: gateway,
		Duplicates:    gateway,
		Documentation: gateway,
		Policy:        gateway,
	}
}

func testRequest(wf model.ResolutionWorkflow) Request {
	return Request{
		RecordID: "rec-1",
		Input: model.DenialInput{
			ClaimID: "CLM-1",
			Claim: model.ClaimData{
				PatientID:      "PAT-1",
				ProcedureCodes: []string{"99213"},
				DiagnosisCodes: []string{"E11.9"},
			},
		},
		Classification: model.DenialClassification{
			ResolutionWorkflow:       wf,
			AppealSuccessProbability: 0.8,
		},
	}
}

func TestDefaultHandlersCoverEveryWorkflow(t *testing.T) {
	handlers := DefaultHandlers(defaultCollaborators())
	require.Len(t, handlers, len(model.Workflows()))

	d := NewDispatcher(handlers, testLogger())
	for _, wf := range model.Workflows() {
		assert.True(t, d.Registered(wf), "workflow %s has no handler", wf)
	}
}

func TestDispatchEveryWorkflowSucceedsOrFallsBack(t *testing.T) {
	d := NewDispatcher(DefaultHandlers(defaultCollaborators()), testLogger())

	for _, wf := range model.Workflows() {
		t.Run(string(wf), func(t *testing.T) {
			req := testRequest(wf)
			// The appeal handler checks the submission-date window.
			req.Input.Claim.SubmissionDate = recentSubmissionDate()

			outcome := d.Dispatch(context.Background(), wf, req)

			assert.NotEqual(t, StatusNoHandler, outcome.Status)
			assert.NotEqual(t, StatusError, outcome.Status)
			assert.Empty(t, outcome.Error)
			assert.Equal(t, WorkflowID(wf, req.RecordID), outcome.WorkflowID)
			assert.Positive(t, outcome.EstimatedResolutionDays)
			assert.NotEmpty(t, outcome.Actions)
		})
	}
}

func TestDispatchMissingHandler(t *testing.T) {
	d := NewDispatcher(nil, testLogger())

	outcome := d.Dispatch(context.Background(), model.WorkflowResubmitWithAuth, testRequest(model.WorkflowResubmitWithAuth))
	assert.Equal(t, StatusNoHandler, outcome.Status)
	assert.Empty(t, outcome.WorkflowID)
}

// panickingHandler always panics; used to prove the dispatcher contains it.
type panickingHandler struct{}

func (panickingHandler) Workflow() model.ResolutionWorkflow { return model.WorkflowManualReview }
func (panickingHandler) Resolve(context.Context, Request) Resolution {
	panic("handler exploded")
}

func TestDispatchRecoversFromPanic(t *testing.T) {
	d := NewDispatcher([]Handler{panickingHandler{}}, testLogger())

	outcome := d.Dispatch(context.Background(), model.WorkflowManualReview, testRequest(model.WorkflowManualReview))
	assert.Equal(t, StatusError, outcome.Status)
	assert.Contains(t, outcome.Error, "handler exploded")
}

func TestWorkflowID(t *testing.T) {
	assert.Equal(t, "WF-RESUBMIT_WITH_AUTH-rec-9",
		WorkflowID(model.WorkflowResubmitWithAuth, "rec-9"))
	assert.Equal(t, "WF-MANUAL_REVIEW-abc",
		WorkflowID(model.WorkflowManualReview, "abc"))
}

func TestResolutionLogAccumulates(t *testing.T) {
	res := Automated(3, "step one").
		Log("first", model.ActionCompleted, nil, nil).
		Log("second", model.ActionSubmitted, map[string]string{"k": "v"}, nil)

	require.Len(t, res.Actions, 2)
	assert.Equal(t, "first", res.Actions[0].Type)
	assert.Equal(t, model.ActionSubmitted, res.Actions[1].Status)
	assert.True(t, res.Automated)
}
