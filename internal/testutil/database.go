// Package testutil provides shared test fixtures: in-memory databases and
// denial builders.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/meridianrcm/denialflow/internal/model"
	"github.com/meridianrcm/denialflow/internal/storage"
)

// SetupTestDB creates a migrated in-memory database and registers cleanup.
func SetupTestDB(t *testing.T) *storage.SQLiteStorage {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return store
}

// DenialBuilder assembles denial inputs for tests with sensible defaults.
type DenialBuilder struct {
	input model.DenialInput
}

// NewDenial starts a builder for the given claim.
func NewDenial(claimID string) *DenialBuilder {
	return &DenialBuilder{
		input: model.DenialInput{
			ClaimID: claimID,
			Claim: model.ClaimData{
				ServiceDate:    time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
				SubmissionDate: time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC),
				ProviderID:     "PRV-100",
				PayerID:        "PAYER-001",
				PatientID:      "PAT-500",
				ProcedureCodes: []string{"99213"},
				DiagnosisCodes: []string{"E11.9"},
				ClaimAmount:    1200,
			},
		},
	}
}

// WithText sets the denial reason text.
func (b *DenialBuilder) WithText(text string) *DenialBuilder {
	b.input.DenialText = text
	return b
}

// WithCodes sets the denial codes.
func (b *DenialBuilder) WithCodes(codes ...string) *DenialBuilder {
	b.input.DenialCodes = codes
	return b
}

// WithAmount sets the claim amount.
func (b *DenialBuilder) WithAmount(amount float64) *DenialBuilder {
	b.input.Claim.ClaimAmount = amount
	return b
}

// WithPriorAuth sets the prior authorization number.
func (b *DenialBuilder) WithPriorAuth(authNum string) *DenialBuilder {
	b.input.Claim.PriorAuthNum = authNum
	return b
}

// WithSubmissionDate sets the claim submission date.
func (b *DenialBuilder) WithSubmissionDate(date time.Time) *DenialBuilder {
	b.input.Claim.SubmissionDate = date
	return b
}

// Build returns the assembled denial input.
func (b *DenialBuilder) Build() model.DenialInput {
	return b.input
}
