package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridianrcm/denialflow/internal/model"
)

func TestClassifyExactExemplar(t *testing.T) {
	m := NewMatcher()

	// A corpus sentence matches itself with similarity 1.0.
	signal := m.Classify("Prior authorization was not obtained before the procedure was performed")
	assert.Equal(t, model.CauseMissingAuthorization, signal.Cause)
	assert.InDelta(t, 1.0, signal.Confidence, 1e-9)
}

func TestClassifySimilarText(t *testing.T) {
	m := NewMatcher()

	tests := []struct {
		name      string
		text      string
		wantCause model.DenialCause
	}{
		{
			name:      "authorization paraphrase",
			text:      "prior authorization was not obtained for the procedure",
			wantCause: model.CauseMissingAuthorization,
		},
		{
			name:      "duplicate paraphrase",
			text:      "this claim is a duplicate of one previously processed",
			wantCause: model.CauseDuplicateClaim,
		},
		{
			name:      "timely filing paraphrase",
			text:      "the claim was received after the timely filing limit passed",
			wantCause: model.CauseTimelyFiling,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			signal := m.Classify(tt.text)
			assert.Equal(t, tt.wantCause, signal.Cause)
			assert.Greater(t, signal.Confidence, similarityThreshold)
		})
	}
}

func TestClassifyKeywordFallback(t *testing.T) {
	// A corpus with no overlap with the query forces the keyword path.
	m := NewMatcherWithCorpus([]model.Exemplar{
		{Text: "zzz qqq xxx", Cause: model.CauseOther},
	})

	signal := m.Classify("member coverage terminated last year")
	assert.Equal(t, model.CauseEligibilityIssue, signal.Cause)
	assert.InDelta(t, keywordConfidence, signal.Confidence, 1e-9)
}

func TestClassifyNoMatch(t *testing.T) {
	m := NewMatcher()

	signal := m.Classify("qqqq wwww zzzz")
	assert.Equal(t, model.CauseOther, signal.Cause)
	assert.InDelta(t, noMatchConfidence, signal.Confidence, 1e-9)
}

func TestClassifyEmptyText(t *testing.T) {
	m := NewMatcher()

	for _, text := range []string{"", "   ", "\t\n"} {
		signal := m.Classify(text)
		assert.Equal(t, model.CauseOther, signal.Cause)
		assert.Zero(t, signal.Confidence)
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	m := NewMatcher()
	text := "documentation was requested to support the level of service"

	first := m.Classify(text)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, m.Classify(text))
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "lowercases and splits on punctuation",
			text: "Prior-Authorization, required!",
			want: []string{"prior", "authorization", "required"},
		},
		{
			name: "drops single characters",
			text: "a claim I filed",
			want: []string{"claim", "filed"},
		},
		{
			name: "keeps digits",
			text: "code 99213 billed",
			want: []string{"code", "99213", "billed"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tokenize(tt.text))
		})
	}
}

func TestVocabularyIsSortedAndComplete(t *testing.T) {
	m := NewMatcherWithCorpus([]model.Exemplar{
		{Text: "beta alpha", Cause: model.CauseOther},
		{Text: "gamma alpha", Cause: model.CauseOther},
	})

	vocab := m.Vocabulary()
	require.Equal(t, []string{"alpha", "beta", "gamma"}, vocab)
}
