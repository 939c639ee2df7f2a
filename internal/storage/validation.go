package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/meridianrcm/denialflow/internal/model"
)

// Validation errors returned by the storage layer.
var (
	ErrRecordNotFound = errors.New("denial record not found")
	ErrNilRecord      = errors.New("denial record is nil")
	ErrNilAction      = errors.New("remediation action is nil")
)

func validateContext(ctx context.Context) error {
	if ctx == nil {
		return errors.New("context is required")
	}
	return ctx.Err()
}

func validateString(value, name string) error {
	if value == "" {
		return fmt.Errorf("%s is required", name)
	}
	return nil
}

func validateRecord(record *model.DenialRecord) error {
	if record == nil {
		return ErrNilRecord
	}
	if record.ID == "" {
		return fmt.Errorf("denial record ID is required")
	}
	if record.Input.ClaimID == "" {
		return fmt.Errorf("denial record claim ID is required")
	}
	return nil
}

func validateAction(action *model.RemediationAction) error {
	if action == nil {
		return ErrNilAction
	}
	if action.ID == "" {
		return fmt.Errorf("remediation action ID is required")
	}
	if action.RecordID == "" {
		return fmt.Errorf("remediation action record ID is required")
	}
	if action.ActionType == "" {
		return fmt.Errorf("remediation action type is required")
	}
	return nil
}
