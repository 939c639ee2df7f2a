package remediation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridianrcm/denialflow/internal/model"
	"github.com/meridianrcm/denialflow/internal/payer"
	"github.com/meridianrcm/denialflow/internal/service"
)

func recentSubmissionDate() time.Time {
	return time.Now().AddDate(0, 0, -30)
}

func TestResubmitWithAuthHandler(t *testing.T) {
	tests := []struct {
		name       string
		setup      func(*payer.MockGateway)
		wantStatus string
	}{
		{
			name:       "approved authorization resolves automatically",
			setup:      func(_ *payer.MockGateway) {},
			wantStatus: StatusAutomated,
		},
		{
			name: "declined authorization falls back",
			setup: func(m *payer.MockGateway) {
				m.RequestAuthorizationFn = func(_ context.Context, _ model.DenialInput) (*service.AuthorizationResult, error) {
					return &service.AuthorizationResult{Approved: false}, nil
				}
			},
			wantStatus: StatusManual,
		},
		{
			name: "gateway error falls back",
			setup: func(m *payer.MockGateway) {
				m.RequestAuthorizationFn = func(_ context.Context, _ model.DenialInput) (*service.AuthorizationResult, error) {
					return nil, errors.New("gateway timeout")
				}
			},
			wantStatus: StatusManual,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gateway := payer.NewMockGateway()
			tt.setup(gateway)

			h := newResubmitWithAuthHandler(gateway)
			res := h.Resolve(context.Background(), testRequest(model.WorkflowResubmitWithAuth))

			assert.Equal(t, tt.wantStatus, res.Status)
			assert.Equal(t, 1, gateway.AuthorizationCalls)
			require.NotEmpty(t, res.Actions)
			if tt.wantStatus == StatusAutomated {
				assert.True(t, res.Automated)
				assert.NotEmpty(t, res.ActionsTaken)
				assert.Equal(t, "authorization_request", res.Actions[0].Type)
				assert.Equal(t, model.ActionCompleted, res.Actions[0].Status)
			} else {
				assert.False(t, res.Automated)
				assert.NotEmpty(t, res.Reason)
				assert.NotEmpty(t, res.ManualActions)
				assert.Equal(t, model.ActionPendingManual, res.Actions[0].Status)
			}
		})
	}
}

func TestCodeReviewHandler(t *testing.T) {
	t.Run("supported codes resubmit automatically", func(t *testing.T) {
		gateway := payer.NewMockGateway()
		h := newCodeReviewHandler(gateway)

		res := h.Resolve(context.Background(), testRequest(model.WorkflowCodeReviewAndCorrect))
		assert.Equal(t, StatusAutomated, res.Status)
		assert.Equal(t, 1, gateway.PolicyCalls)
	})

	t.Run("policy gaps fall back", func(t *testing.T) {
		gateway := payer.NewMockGateway()
		gateway.CheckPolicyFn = func(_ context.Context, _, _ []string, _ map[string]string) (*service.PolicyResult, error) {
			return &service.PolicyResult{Supported: true, Gaps: []string{"modifier 25 unsupported"}}, nil
		}
		h := newCodeReviewHandler(gateway)

		res := h.Resolve(context.Background(), testRequest(model.WorkflowCodeReviewAndCorrect))
		assert.Equal(t, StatusManual, res.Status)
		assert.Contains(t, res.Actions[0].Result["gaps"], "modifier 25")
	})
}

func TestVerifyEligibilityHandler(t *testing.T) {
	t.Run("eligible member resolves automatically", func(t *testing.T) {
		gateway := payer.NewMockGateway()
		h := newVerifyEligibilityHandler(gateway)

		res := h.Resolve(context.Background(), testRequest(model.WorkflowVerifyEligibility))
		assert.Equal(t, StatusAutomated, res.Status)
		assert.Equal(t, 1, gateway.EligibilityCalls)
	})

	t.Run("ineligible member falls back", func(t *testing.T) {
		gateway := payer.NewMockGateway()
		gateway.VerifyEligibilityFn = func(_ context.Context, _ string, _ time.Time) (*service.EligibilityResult, error) {
			return &service.EligibilityResult{Eligible: false}, nil
		}
		h := newVerifyEligibilityHandler(gateway)

		res := h.Resolve(context.Background(), testRequest(model.WorkflowVerifyEligibility))
		assert.Equal(t, StatusManual, res.Status)
		assert.Equal(t, "member not eligible for date of service", res.Reason)
	})
}

func TestInvestigateDuplicateHandler(t *testing.T) {
	t.Run("located original closes denial", func(t *testing.T) {
		gateway := payer.NewMockGateway()
		h := newInvestigateDuplicateHandler(gateway)

		res := h.Resolve(context.Background(), testRequest(model.WorkflowInvestigateDuplicate))
		assert.Equal(t, StatusAutomated, res.Status)
		assert.Contains(t, res.ActionsTaken[0], "ORIG-CLM-1")
	})

	t.Run("no duplicate on file falls back", func(t *testing.T) {
		gateway := payer.NewMockGateway()
		gateway.FindDuplicateFn = func(_ context.Context, _ model.DenialInput) (*service.DuplicateResult, error) {
			return &service.DuplicateResult{Found: false}, nil
		}
		h := newInvestigateDuplicateHandler(gateway)

		res := h.Resolve(context.Background(), testRequest(model.WorkflowInvestigateDuplicate))
		assert.Equal(t, StatusManual, res.Status)
	})
}

func TestRequestDocumentationHandler(t *testing.T) {
	t.Run("complete documentation submits automatically", func(t *testing.T) {
		gateway := payer.NewMockGateway()
		h := newRequestDocumentationHandler(gateway)

		res := h.Resolve(context.Background(), testRequest(model.WorkflowRequestDocumentation))
		assert.Equal(t, StatusAutomated, res.Status)
		assert.Equal(t, 1, gateway.DocumentationCalls)
	})

	t.Run("incomplete documentation falls back", func(t *testing.T) {
		gateway := payer.NewMockGateway()
		gateway.GatherDocumentationFn = func(_ context.Context, _ string, _ time.Time, _ []string) (*service.DocumentationResult, error) {
			return &service.DocumentationResult{Complete: false, Documents: []string{"physician notes"}}, nil
		}
		h := newRequestDocumentationHandler(gateway)

		res := h.Resolve(context.Background(), testRequest(model.WorkflowRequestDocumentation))
		assert.Equal(t, StatusManual, res.Status)
		assert.Equal(t, "1", res.Actions[0].Result["documents_found"])
	})
}

func TestMedicalReviewHandler(t *testing.T) {
	t.Run("strong policy support files appeal", func(t *testing.T) {
		gateway := payer.NewMockGateway()
		h := newMedicalReviewHandler(gateway)

		res := h.Resolve(context.Background(), testRequest(model.WorkflowMedicalReview))
		assert.Equal(t, StatusAutomated, res.Status)
	})

	t.Run("weak policy support goes to clinical review", func(t *testing.T) {
		gateway := payer.NewMockGateway()
		gateway.CheckPolicyFn = func(_ context.Context, _, _ []string, _ map[string]string) (*service.PolicyResult, error) {
			return &service.PolicyResult{Supported: true, Strength: service.PolicyStrengthWeak}, nil
		}
		h := newMedicalReviewHandler(gateway)

		res := h.Resolve(context.Background(), testRequest(model.WorkflowMedicalReview))
		assert.Equal(t, StatusManual, res.Status)
	})
}

func TestAppealFilingHandler(t *testing.T) {
	fixedNow := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		submissionDate time.Time
		probability    float64
		wantStatus     string
	}{
		{
			name:           "window open and strong appeal files automatically",
			submissionDate: fixedNow.AddDate(0, 0, -30),
			probability:    0.8,
			wantStatus:     StatusAutomated,
		},
		{
			name:           "window closed falls back",
			submissionDate: fixedNow.AddDate(0, 0, -200),
			probability:    0.8,
			wantStatus:     StatusManual,
		},
		{
			name:           "unknown submission date falls back",
			submissionDate: time.Time{},
			probability:    0.8,
			wantStatus:     StatusManual,
		},
		{
			name:           "weak appeal prepared by hand",
			submissionDate: fixedNow.AddDate(0, 0, -30),
			probability:    0.3,
			wantStatus:     StatusManual,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &appealFilingHandler{now: func() time.Time { return fixedNow }}

			req := testRequest(model.WorkflowAppealFiling)
			req.Input.Claim.SubmissionDate = tt.submissionDate
			req.Classification.AppealSuccessProbability = tt.probability

			res := h.Resolve(context.Background(), req)
			assert.Equal(t, tt.wantStatus, res.Status)
		})
	}
}

func TestCoordinationOfBenefitsHandler(t *testing.T) {
	t.Run("primary payer on file rebills automatically", func(t *testing.T) {
		gateway := payer.NewMockGateway()
		h := newCoordinationOfBenefitsHandler(gateway)

		res := h.Resolve(context.Background(), testRequest(model.WorkflowCoordinationOfBenefits))
		assert.Equal(t, StatusAutomated, res.Status)
		assert.Equal(t, "PAYER-001", res.Actions[0].Result["primary_payer"])
	})

	t.Run("no primary payer falls back", func(t *testing.T) {
		gateway := payer.NewMockGateway()
		gateway.VerifyEligibilityFn = func(_ context.Context, _ string, _ time.Time) (*service.EligibilityResult, error) {
			return &service.EligibilityResult{Eligible: true, CoverageDetails: map[string]string{}}, nil
		}
		h := newCoordinationOfBenefitsHandler(gateway)

		res := h.Resolve(context.Background(), testRequest(model.WorkflowCoordinationOfBenefits))
		assert.Equal(t, StatusManual, res.Status)
	})
}

func TestManualReviewHandlerAlwaysAssigns(t *testing.T) {
	fixedNow := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	h := &manualReviewHandler{now: func() time.Time { return fixedNow }}

	res := h.Resolve(context.Background(), testRequest(model.WorkflowManualReview))

	assert.Equal(t, StatusAssigned, res.Status)
	assert.Equal(t, 14, res.EstimatedDays)
	require.NotEmpty(t, res.ManualActions)
	assert.Contains(t, res.ManualActions[2], "2025-06-08")
	require.Len(t, res.Actions, 1)
	assert.Equal(t, "manual_assignment", res.Actions[0].Type)
	assert.Equal(t, "2025-06-08", res.Actions[0].Result["follow_up"])
}
