package model

import "time"

// ClaimData carries the structured claim fields attached to a denial notice.
type ClaimData struct {
	ServiceDate    time.Time `json:"service_date"`
	SubmissionDate time.Time `json:"submission_date"`
	ProviderID     string    `json:"provider_id"`
	PayerID        string    `json:"payer_id"`
	PatientID      string    `json:"patient_id"`
	PriorAuthNum   string    `json:"prior_auth_number,omitempty"`
	ProcedureCodes []string  `json:"procedure_codes"`
	DiagnosisCodes []string  `json:"diagnosis_codes"`
	Modifiers      []string  `json:"modifiers,omitempty"`
	ClaimAmount    float64   `json:"claim_amount"`
}

// DenialInput is one denial notice to classify. Treated as immutable once
// constructed: classification and remediation only ever read from it.
type DenialInput struct {
	ClaimID     string    `json:"claim_id"`
	DenialText  string    `json:"denial_text"`
	RawSegment  string    `json:"raw_segment,omitempty"`
	DenialCodes []string  `json:"denial_codes"`
	Claim       ClaimData `json:"claim"`
}

// ResolutionStatus tracks a denial record through its lifecycle.
type ResolutionStatus string

// Resolution status constants.
const (
	ResolutionAccepted   ResolutionStatus = "ACCEPTED"
	ResolutionClassified ResolutionStatus = "CLASSIFIED"
	ResolutionAutomated  ResolutionStatus = "AUTOMATED"
	ResolutionManual     ResolutionStatus = "MANUAL_REVIEW"
	ResolutionFailed     ResolutionStatus = "FAILED"
)

// DenialRecord is the persisted representation of a denial and its
// classification. Created when a denial is accepted for processing and
// updated as the remediation workflow progresses; never deleted by this core.
type DenialRecord struct {
	CreatedAt      time.Time
	UpdatedAt      time.Time
	ID             string
	WorkflowID     string
	Status         ResolutionStatus
	Input          DenialInput
	Classification *DenialClassification
}

// ActionStatus indicates the state of a logged remediation step.
type ActionStatus string

// Remediation action status constants.
const (
	ActionPending       ActionStatus = "pending"
	ActionCompleted     ActionStatus = "completed"
	ActionSubmitted     ActionStatus = "submitted"
	ActionPendingManual ActionStatus = "pending_manual"
)

// RemediationAction is one logged step taken (or required) during
// remediation. Append-only: a record accumulates actions over its lifetime.
type RemediationAction struct {
	ExecutedAt time.Time         `json:"executed_at"`
	ID         string            `json:"id"`
	RecordID   string            `json:"record_id"`
	ActionType string            `json:"action_type"`
	Status     ActionStatus      `json:"status"`
	Data       map[string]string `json:"data,omitempty"`
	Result     map[string]string `json:"result,omitempty"`
}
