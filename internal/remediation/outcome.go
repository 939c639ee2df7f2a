// Package remediation implements the workflow dispatcher and the per-workflow
// remediation handlers.
package remediation

import (
	"github.com/meridianrcm/denialflow/internal/model"
)

// Outcome statuses returned by the dispatcher.
const (
	StatusAutomated = "automated_resolution"
	StatusManual    = "pending_manual_review"
	StatusAssigned  = "assigned_for_manual_review"
	StatusNoHandler = "no_handler"
	StatusError     = "error"
)

// Request carries everything a handler needs to remediate one denial.
type Request struct {
	RecordID       string
	Input          model.DenialInput
	Classification model.DenialClassification
}

// ActionEntry is a remediation step to be logged against the denial record.
type ActionEntry struct {
	Type   string
	Status model.ActionStatus
	Data   map[string]string
	Result map[string]string
}

// Resolution is a handler's structured result. Every handler has exactly two
// exit paths — an automated resolution or a manual fallback — and both are
// expressed here rather than through errors: handlers never fail.
type Resolution struct {
	Status        string
	Reason        string
	ActionsTaken  []string
	ManualActions []string
	Actions       []ActionEntry
	EstimatedDays int
	Automated     bool
}

// Automated builds the automated-resolution exit of a handler.
func Automated(days int, actionsTaken ...string) Resolution {
	return Resolution{
		Status:        StatusAutomated,
		Automated:     true,
		EstimatedDays: days,
		ActionsTaken:  actionsTaken,
	}
}

// ManualFallback builds the manual exit of a handler. The reason records why
// the automated path was not taken.
func ManualFallback(reason string, days int, manualActions ...string) Resolution {
	return Resolution{
		Status:        StatusManual,
		Reason:        reason,
		EstimatedDays: days,
		ManualActions: manualActions,
	}
}

// Log appends a remediation step to the resolution.
func (r Resolution) Log(actionType string, status model.ActionStatus, data, result map[string]string) Resolution {
	r.Actions = append(r.Actions, ActionEntry{
		Type:   actionType,
		Status: status,
		Data:   data,
		Result: result,
	})
	return r
}

// Outcome is the dispatcher's structured result for one denial.
type Outcome struct {
	Status                  string
	WorkflowID              string
	Error                   string
	Reason                  string
	ActionsTaken            []string
	ManualActions           []string
	Actions                 []ActionEntry
	EstimatedResolutionDays int
}
