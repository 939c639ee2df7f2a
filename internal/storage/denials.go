package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/meridianrcm/denialflow/internal/model"
)

// SaveDenialRecord inserts or updates a denial record.
func (s *SQLiteStorage) SaveDenialRecord(ctx context.Context, record *model.DenialRecord) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateRecord(record); err != nil {
		return err
	}

	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}
	record.UpdatedAt = time.Now()

	inputJSON, err := json.Marshal(record.Input)
	if err != nil {
		return fmt.Errorf("failed to serialize denial input: %w", err)
	}

	var classificationJSON []byte
	if record.Classification != nil {
		classificationJSON, err = json.Marshal(record.Classification)
		if err != nil {
			return fmt.Errorf("failed to serialize classification: %w", err)
		}
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO denial_records (
			id, claim_id, input, classification, workflow_id, status,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			classification = excluded.classification,
			workflow_id = excluded.workflow_id,
			status = excluded.status,
			updated_at = excluded.updated_at
	`,
		record.ID,
		record.Input.ClaimID,
		string(inputJSON),
		nullableString(classificationJSON),
		nullIfEmpty(record.WorkflowID),
		string(record.Status),
		record.CreatedAt,
		record.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to save denial record: %w", err)
	}

	return nil
}

// GetDenialRecord retrieves a denial record by ID.
func (s *SQLiteStorage) GetDenialRecord(ctx context.Context, id string) (*model.DenialRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, claim_id, input, classification, workflow_id, status,
		       created_at, updated_at
		FROM denial_records
		WHERE id = ?
	`, id)

	record, err := scanDenialRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return record, nil
}

// GetDenialRecordsByStatus retrieves all records with the given resolution
// status, oldest first.
func (s *SQLiteStorage) GetDenialRecordsByStatus(ctx context.Context, status model.ResolutionStatus) ([]model.DenialRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, claim_id, input, classification, workflow_id, status,
		       created_at, updated_at
		FROM denial_records
		WHERE status = ?
		ORDER BY created_at ASC
	`, string(status))
	if err != nil {
		return nil, fmt.Errorf("failed to query denial records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []model.DenialRecord
	for rows.Next() {
		record, scanErr := scanDenialRecord(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		records = append(records, *record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate denial records: %w", err)
	}

	return records, nil
}

// UpdateResolutionStatus sets the resolution status of a record.
func (s *SQLiteStorage) UpdateResolutionStatus(ctx context.Context, recordID string, status model.ResolutionStatus) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(recordID, "recordID"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE denial_records
		SET status = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, string(status), recordID)
	if err != nil {
		return fmt.Errorf("failed to update resolution status: %w", err)
	}

	return requireRowAffected(result)
}

// UpdateWorkflowID sets the workflow identifier of a record once remediation
// has been dispatched.
func (s *SQLiteStorage) UpdateWorkflowID(ctx context.Context, recordID, workflowID string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(recordID, "recordID"); err != nil {
		return err
	}
	if err := validateString(workflowID, "workflowID"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE denial_records
		SET workflow_id = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, workflowID, recordID)
	if err != nil {
		return fmt.Errorf("failed to update workflow id: %w", err)
	}

	return requireRowAffected(result)
}

// rowScanner abstracts sql.Row and sql.Rows for shared scanning.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanDenialRecord(row rowScanner) (*model.DenialRecord, error) {
	var record model.DenialRecord
	var inputJSON string
	var classificationJSON sql.NullString
	var workflowID sql.NullString
	var status string

	err := row.Scan(
		&record.ID,
		new(string), // claim_id is denormalized; the input JSON is canonical
		&inputJSON,
		&classificationJSON,
		&workflowID,
		&status,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(inputJSON), &record.Input); err != nil {
		return nil, fmt.Errorf("failed to deserialize denial input: %w", err)
	}

	if classificationJSON.Valid && classificationJSON.String != "" {
		var classification model.DenialClassification
		if err := json.Unmarshal([]byte(classificationJSON.String), &classification); err != nil {
			return nil, fmt.Errorf("failed to deserialize classification: %w", err)
		}
		record.Classification = &classification
	}

	record.WorkflowID = workflowID.String
	record.Status = model.ResolutionStatus(status)

	return &record, nil
}

func requireRowAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if affected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullableString(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return string(b)
}
