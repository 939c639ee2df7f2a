// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/meridianrcm/denialflow/internal/model"
)

// Storage defines the contract for our persistence layer.
type Storage interface {
	// Denial record operations
	SaveDenialRecord(ctx context.Context, record *model.DenialRecord) error
	GetDenialRecord(ctx context.Context, id string) (*model.DenialRecord, error)
	GetDenialRecordsByStatus(ctx context.Context, status model.ResolutionStatus) ([]model.DenialRecord, error)
	UpdateResolutionStatus(ctx context.Context, recordID string, status model.ResolutionStatus) error
	UpdateWorkflowID(ctx context.Context, recordID, workflowID string) error

	// Remediation action log
	AppendRemediationAction(ctx context.Context, action *model.RemediationAction) error
	GetRemediationActions(ctx context.Context, recordID string) ([]model.RemediationAction, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// EligibilityResult is the outcome of an eligibility verification call.
type EligibilityResult struct {
	CoverageDetails map[string]string
	Eligible        bool
}

// EligibilityVerifier checks member eligibility with the payer.
type EligibilityVerifier interface {
	VerifyEligibility(ctx context.Context, patientID string, serviceDate time.Time) (*EligibilityResult, error)
}

// AuthorizationResult is the outcome of an authorization request.
type AuthorizationResult struct {
	AuthNumber string
	Approved   bool
}

// AuthorizationRequester submits prior-authorization requests to the payer.
type AuthorizationRequester interface {
	RequestAuthorization(ctx context.Context, denial model.DenialInput) (*AuthorizationResult, error)
}

// DuplicateResult is the outcome of a duplicate claim search.
type DuplicateResult struct {
	DuplicateClaimID string
	Found            bool
}

// DuplicateSearcher searches claim history for duplicate submissions.
type DuplicateSearcher interface {
	FindDuplicate(ctx context.Context, denial model.DenialInput) (*DuplicateResult, error)
}

// DocumentationResult is the outcome of a documentation lookup.
type DocumentationResult struct {
	Documents []string
	Complete  bool
}

// DocumentationProvider gathers clinical documentation for a patient encounter.
type DocumentationProvider interface {
	GatherDocumentation(ctx context.Context, patientID string, serviceDate time.Time, requirements []string) (*DocumentationResult, error)
}

// PolicyResult is the outcome of a medical-policy check.
type PolicyResult struct {
	Strength  string
	Gaps      []string
	Supported bool
}

// Policy strength values returned by medical-policy checks.
const (
	PolicyStrengthStrong = "strong"
	PolicyStrengthWeak   = "weak"
)

// MedicalPolicyChecker evaluates procedures against payer medical policy.
type MedicalPolicyChecker interface {
	CheckPolicy(ctx context.Context, procedureCodes, diagnosisCodes []string, clinical map[string]string) (*PolicyResult, error)
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

// CompletionStats shows the results of a batch processing run.
type CompletionStats struct {
	TotalDenials      int
	AutomatedResolved int
	ManualAssigned    int
	DispatchErrors    int
	Duration          time.Duration
}
