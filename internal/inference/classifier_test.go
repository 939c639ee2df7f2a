package inference

import (
	"context"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridianrcm/denialflow/internal/model"
)

// stubClient returns a fixed distribution or error.
type stubClient struct {
	dist  Distribution
	err   error
	calls int
}

func (s *stubClient) ClassifyText(_ context.Context, _ string) (Distribution, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.dist, nil
}

func testLogger() *slog.Logger {
	return slog.Default()
}

func TestDistributionArgMax(t *testing.T) {
	tests := []struct {
		name      string
		dist      Distribution
		wantCause model.DenialCause
		wantScore float64
	}{
		{
			name:      "single cause",
			dist:      Distribution{model.CauseDuplicateClaim: 0.8},
			wantCause: model.CauseDuplicateClaim,
			wantScore: 0.8,
		},
		{
			name: "highest score wins",
			dist: Distribution{
				model.CauseMissingAuthorization: 0.3,
				model.CauseMedicalNecessity:     0.6,
			},
			wantCause: model.CauseMedicalNecessity,
			wantScore: 0.6,
		},
		{
			name: "tie resolves in declaration order",
			dist: Distribution{
				model.CauseTimelyFiling: 0.5,
				model.CauseInvalidCode:  0.5,
			},
			wantCause: model.CauseInvalidCode,
			wantScore: 0.5,
		},
		{
			name:      "empty distribution",
			dist:      Distribution{},
			wantCause: model.CauseOther,
			wantScore: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cause, score := tt.dist.ArgMax()
			assert.Equal(t, tt.wantCause, cause)
			assert.InDelta(t, tt.wantScore, score, 1e-9)
		})
	}
}

func TestClassifierClassify(t *testing.T) {
	client := &stubClient{dist: Distribution{model.CauseEligibilityIssue: 0.85}}
	c := NewClassifierWithClient(client, testLogger())

	signal := c.Classify(context.Background(), "coverage terminated")
	assert.Equal(t, model.CauseEligibilityIssue, signal.Cause)
	assert.InDelta(t, 0.85, signal.Confidence, 1e-9)
	assert.Equal(t, 1, client.calls)
}

func TestClassifierEmptyText(t *testing.T) {
	client := &stubClient{dist: Distribution{model.CauseEligibilityIssue: 0.85}}
	c := NewClassifierWithClient(client, testLogger())

	signal := c.Classify(context.Background(), "   ")
	assert.Equal(t, model.CauseOther, signal.Cause)
	assert.Zero(t, signal.Confidence)
	assert.Zero(t, client.calls, "provider should not be called for empty text")
}

func TestClassifierDegradesOnFailure(t *testing.T) {
	client := &stubClient{err: fmt.Errorf("provider unavailable")}
	c := NewClassifierWithClient(client, testLogger())

	signal := c.Classify(context.Background(), "some denial text")
	assert.Equal(t, model.CauseOther, signal.Cause)
	assert.Zero(t, signal.Confidence)
}

func TestNewClassifierProviders(t *testing.T) {
	tests := []struct {
		name     string
		provider string
		apiKey   string
		wantErr  bool
	}{
		{name: "default is keyword", provider: "", wantErr: false},
		{name: "explicit keyword", provider: "keyword", wantErr: false},
		{name: "openai requires key", provider: "openai", wantErr: true},
		{name: "openai with key", provider: "openai", apiKey: "sk-test", wantErr: false},
		{name: "unknown provider", provider: "oracle", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewClassifier(Config{Provider: tt.provider, APIKey: tt.apiKey}, testLogger())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, c)
		})
	}
}

func TestKeywordClient(t *testing.T) {
	client := newKeywordClient()

	tests := []struct {
		name      string
		text      string
		wantCause model.DenialCause
	}{
		{
			name:      "authorization keywords",
			text:      "prior authorization required for this service",
			wantCause: model.CauseMissingAuthorization,
		},
		{
			name:      "duplicate keywords",
			text:      "duplicate of a claim already adjudicated",
			wantCause: model.CauseDuplicateClaim,
		},
		{
			name:      "no keywords",
			text:      "unintelligible remark text",
			wantCause: model.CauseOther,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dist, err := client.ClassifyText(context.Background(), tt.text)
			require.NoError(t, err)
			cause, score := dist.ArgMax()
			assert.Equal(t, tt.wantCause, cause)
			assert.Positive(t, score)
		})
	}
}

func TestKeywordClientScoresScaleWithHits(t *testing.T) {
	client := newKeywordClient()

	single, err := client.ClassifyText(context.Background(), "duplicate submission")
	require.NoError(t, err)
	double, err := client.ClassifyText(context.Background(), "duplicate claim already adjudicated")
	require.NoError(t, err)

	assert.InDelta(t, 0.6, single[model.CauseDuplicateClaim], 1e-9)
	assert.InDelta(t, 0.7, double[model.CauseDuplicateClaim], 1e-9)
}
