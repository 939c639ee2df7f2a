package payer

import (
	"context"
	"time"

	"github.com/meridianrcm/denialflow/internal/model"
	"github.com/meridianrcm/denialflow/internal/service"
)

// MockGateway is a deterministic in-process implementation of every
// remediation collaborator. Tests set the Fn fields to control behavior;
// offline CLI runs use the defaults.
type MockGateway struct {
	// Functions that can be set to control behavior
	VerifyEligibilityFn    func(ctx context.Context, patientID string, serviceDate time.Time) (*service.EligibilityResult, error)
	RequestAuthorizationFn func(ctx context.Context, denial model.DenialInput) (*service.AuthorizationResult, error)
	FindDuplicateFn        func(ctx context.Context, denial model.DenialInput) (*service.DuplicateResult, error)
	GatherDocumentationFn  func(ctx context.Context, patientID string, serviceDate time.Time, requirements []string) (*service.DocumentationResult, error)
	CheckPolicyFn          func(ctx context.Context, procedureCodes, diagnosisCodes []string, clinical map[string]string) (*service.PolicyResult, error)

	// Call tracking
	EligibilityCalls   int
	AuthorizationCalls int
	DuplicateCalls     int
	DocumentationCalls int
	PolicyCalls        int
}

// NewMockGateway creates a mock gateway with permissive defaults.
func NewMockGateway() *MockGateway {
	return &MockGateway{}
}

// VerifyEligibility implements service.EligibilityVerifier.
func (m *MockGateway) VerifyEligibility(ctx context.Context, patientID string, serviceDate time.Time) (*service.EligibilityResult, error) {
	m.EligibilityCalls++
	if m.VerifyEligibilityFn != nil {
		return m.VerifyEligibilityFn(ctx, patientID, serviceDate)
	}
	return &service.EligibilityResult{
		Eligible:        true,
		CoverageDetails: map[string]string{"plan": "PPO", "primary_payer": "PAYER-001"},
	}, nil
}

// RequestAuthorization implements service.AuthorizationRequester.
func (m *MockGateway) RequestAuthorization(ctx context.Context, denial model.DenialInput) (*service.AuthorizationResult, error) {
	m.AuthorizationCalls++
	if m.RequestAuthorizationFn != nil {
		return m.RequestAuthorizationFn(ctx, denial)
	}
	return &service.AuthorizationResult{
		Approved:   true,
		AuthNumber: "AUTH-" + denial.ClaimID,
	}, nil
}

// FindDuplicate implements service.DuplicateSearcher.
func (m *MockGateway) FindDuplicate(ctx context.Context, denial model.DenialInput) (*service.DuplicateResult, error) {
	m.DuplicateCalls++
	if m.FindDuplicateFn != nil {
		return m.FindDuplicateFn(ctx, denial)
	}
	return &service.DuplicateResult{
		Found:            true,
		DuplicateClaimID: "ORIG-" + denial.ClaimID,
	}, nil
}

// GatherDocumentation implements service.DocumentationProvider.
func (m *MockGateway) GatherDocumentation(ctx context.Context, patientID string, serviceDate time.Time, requirements []string) (*service.DocumentationResult, error) {
	m.DocumentationCalls++
	if m.GatherDocumentationFn != nil {
		return m.GatherDocumentationFn(ctx, patientID, serviceDate, requirements)
	}
	return &service.DocumentationResult{
		Complete:  true,
		Documents: requirements,
	}, nil
}

// CheckPolicy implements service.MedicalPolicyChecker.
func (m *MockGateway) CheckPolicy(ctx context.Context, procedureCodes, diagnosisCodes []string, clinical map[string]string) (*service.PolicyResult, error) {
	m.PolicyCalls++
	if m.CheckPolicyFn != nil {
		return m.CheckPolicyFn(ctx, procedureCodes, diagnosisCodes, clinical)
	}
	return &service.PolicyResult{
		Supported: true,
		Strength:  service.PolicyStrengthStrong,
	}, nil
}

// Reset clears all call tracking.
func (m *MockGateway) Reset() {
	m.EligibilityCalls = 0
	m.AuthorizationCalls = 0
	m.DuplicateCalls = 0
	m.DocumentationCalls = 0
	m.PolicyCalls = 0
}

// Interface checks.
var (
	_ service.EligibilityVerifier    = (*MockGateway)(nil)
	_ service.AuthorizationRequester = (*MockGateway)(nil)
	_ service.DuplicateSearcher      = (*MockGateway)(nil)
	_ service.DocumentationProvider  = (*MockGateway)(nil)
	_ service.MedicalPolicyChecker   = (*MockGateway)(nil)
)
