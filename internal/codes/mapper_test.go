package codes

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/meridianrcm/denialflow/internal/model"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name           string
		codes          []string
		wantCause      model.DenialCause
		wantConfidence float64
	}{
		{
			name:           "exact match authorization",
			codes:          []string{"CO-197"},
			wantCause:      model.CauseMissingAuthorization,
			wantConfidence: 0.95,
		},
		{
			name:           "exact match wins over later codes",
			codes:          []string{"CO-18", "CO-197"},
			wantCause:      model.CauseDuplicateClaim,
			wantConfidence: 0.95,
		},
		{
			name:           "bare numeric code",
			codes:          []string{"29"},
			wantCause:      model.CauseTimelyFiling,
			wantConfidence: 0.95,
		},
		{
			name:           "substring auth fragment",
			codes:          []string{"AUTH-REQ"},
			wantCause:      model.CauseMissingAuthorization,
			wantConfidence: 0.8,
		},
		{
			name:           "substring pa fragment",
			codes:          []string{"PA01"},
			wantCause:      model.CauseMissingAuthorization,
			wantConfidence: 0.8,
		},
		{
			name:           "substring dup fragment",
			codes:          []string{"DUP-CLM"},
			wantCause:      model.CauseDuplicateClaim,
			wantConfidence: 0.8,
		},
		{
			name:           "substring elig fragment",
			codes:          []string{"ELIG-TERM"},
			wantCause:      model.CauseEligibilityIssue,
			wantConfidence: 0.8,
		},
		{
			name:           "unknown codes",
			codes:          []string{"ZZ-1", "XY-2"},
			wantCause:      model.CauseOther,
			wantConfidence: 0.1,
		},
		{
			name:           "no codes",
			codes:          nil,
			wantCause:      model.CauseOther,
			wantConfidence: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			signal := Classify(tt.codes)
			assert.Equal(t, tt.wantCause, signal.Cause)
			assert.InDelta(t, tt.wantConfidence, signal.Confidence, 1e-9)
		})
	}
}

func TestMapperClassifyMatchesPackageFunction(t *testing.T) {
	mapper := NewMapper()
	signal := mapper.Classify([]string{"CO-16"})
	assert.Equal(t, model.CauseMissingAuthorization, signal.Cause)
	assert.InDelta(t, 0.95, signal.Confidence, 1e-9)
}

func TestClassifyIsDeterministic(t *testing.T) {
	codes := []string{"ZZDUP", "AUTHX"}
	first := Classify(codes)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Classify(codes))
	}
}
