package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/meridianrcm/denialflow/internal/model"
)

// AppendRemediationAction records one remediation step. The action log is
// append-only; existing rows are never modified.
func (s *SQLiteStorage) AppendRemediationAction(ctx context.Context, action *model.RemediationAction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateAction(action); err != nil {
		return err
	}

	if action.ExecutedAt.IsZero() {
		action.ExecutedAt = time.Now()
	}

	dataJSON, err := marshalStringMap(action.Data)
	if err != nil {
		return fmt.Errorf("failed to serialize action data: %w", err)
	}
	resultJSON, err := marshalStringMap(action.Result)
	if err != nil {
		return fmt.Errorf("failed to serialize action result: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO remediation_actions (
			id, record_id, action_type, status, data, result, executed_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		action.ID,
		action.RecordID,
		action.ActionType,
		string(action.Status),
		dataJSON,
		resultJSON,
		action.ExecutedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append remediation action: %w", err)
	}

	return nil
}

// GetRemediationActions returns the action log for a record in execution
// order.
func (s *SQLiteStorage) GetRemediationActions(ctx context.Context, recordID string) ([]model.RemediationAction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(recordID, "recordID"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, record_id, action_type, status, data, result, executed_at
		FROM remediation_actions
		WHERE record_id = ?
		ORDER BY executed_at ASC, id ASC
	`, recordID)
	if err != nil {
		return nil, fmt.Errorf("failed to query remediation actions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var actions []model.RemediationAction
	for rows.Next() {
		var action model.RemediationAction
		var status string
		var dataJSON, resultJSON sql.NullString

		err := rows.Scan(
			&action.ID,
			&action.RecordID,
			&action.ActionType,
			&status,
			&dataJSON,
			&resultJSON,
			&action.ExecutedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan remediation action: %w", err)
		}

		action.Status = model.ActionStatus(status)
		if action.Data, err = unmarshalStringMap(dataJSON); err != nil {
			return nil, fmt.Errorf("failed to deserialize action data: %w", err)
		}
		if action.Result, err = unmarshalStringMap(resultJSON); err != nil {
			return nil, fmt.Errorf("failed to deserialize action result: %w", err)
		}

		actions = append(actions, action)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate remediation actions: %w", err)
	}

	return actions, nil
}

func marshalStringMap(m map[string]string) (any, error) {
	if len(m) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func unmarshalStringMap(s sql.NullString) (map[string]string, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	var m map[string]string
	if err := json.Unmarshal([]byte(s.String), &m); err != nil {
		return nil, err
	}
	return m, nil
}
