// Package pattern implements similarity-based denial classification against
// a historical corpus of denial texts.
package pattern

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/meridianrcm/denialflow/internal/model"
)

// Confidence levels and thresholds for pattern-based classification.
const (
	similarityThreshold = 0.3
	keywordConfidence   = 0.7
	noMatchConfidence   = 0.1
)

// Matcher classifies denial texts by cosine similarity in a TF-IDF vector
// space built from the exemplar corpus. The vector space is built once at
// construction and never mutated afterwards.
type Matcher struct {
	vocab     map[string]int
	idf       []float64
	exemplars []model.Exemplar
	vectors   [][]float64
}

// NewMatcher builds a matcher over the fixed exemplar corpus.
func NewMatcher() *Matcher {
	return NewMatcherWithCorpus(model.ExemplarCorpus())
}

// NewMatcherWithCorpus builds a matcher over the given corpus.
func NewMatcherWithCorpus(corpus []model.Exemplar) *Matcher {
	m := &Matcher{
		vocab:     make(map[string]int),
		exemplars: corpus,
	}

	docs := make([][]string, len(corpus))
	for i, ex := range corpus {
		docs[i] = tokenize(ex.Text)
		for _, term := range docs[i] {
			if _, ok := m.vocab[term]; !ok {
				m.vocab[term] = len(m.vocab)
			}
		}
	}

	// Smoothed inverse document frequency
	df := make([]int, len(m.vocab))
	for _, doc := range docs {
		seen := make(map[int]bool, len(doc))
		for _, term := range doc {
			idx := m.vocab[term]
			if !seen[idx] {
				seen[idx] = true
				df[idx]++
			}
		}
	}

	n := float64(len(docs))
	m.idf = make([]float64, len(m.vocab))
	for idx, count := range df {
		m.idf[idx] = math.Log((1+n)/(1+float64(count))) + 1
	}

	m.vectors = make([][]float64, len(docs))
	for i, doc := range docs {
		m.vectors[i] = m.vectorize(doc)
	}

	return m
}

// Classify returns the cause whose exemplar is most similar to the text.
// Below the similarity threshold it falls back to the fixed keyword-template
// table, scanned in denial-cause declaration order.
func (m *Matcher) Classify(text string) model.Signal {
	if strings.TrimSpace(text) == "" {
		return model.Signal{Cause: model.CauseOther, Confidence: 0.0}
	}

	lower := strings.ToLower(text)
	query := m.vectorize(tokenize(text))

	bestIdx := -1
	bestSim := 0.0
	for i, vec := range m.vectors {
		sim := dot(query, vec)
		if sim > bestSim {
			bestSim = sim
			bestIdx = i
		}
	}

	if bestIdx >= 0 && bestSim > similarityThreshold {
		return model.Signal{Cause: m.exemplars[bestIdx].Cause, Confidence: bestSim}
	}

	for _, cause := range model.Causes() {
		for _, keyword := range model.KeywordsForCause(cause) {
			if strings.Contains(lower, keyword) {
				return model.Signal{Cause: cause, Confidence: keywordConfidence}
			}
		}
	}

	return model.Signal{Cause: model.CauseOther, Confidence: noMatchConfidence}
}

// vectorize builds an L2-normalized TF-IDF vector for a tokenized document.
// Terms outside the corpus vocabulary are ignored.
func (m *Matcher) vectorize(doc []string) []float64 {
	vec := make([]float64, len(m.vocab))
	for _, term := range doc {
		if idx, ok := m.vocab[term]; ok {
			vec[idx] += m.idf[idx]
		}
	}

	var norm float64
	for _, v := range vec {
		norm += v * v
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}

// dot computes the dot product of two equal-length vectors. Both sides are
// normalized, so this is the cosine similarity.
func dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

// tokenize lowercases and splits text into terms, dropping single characters.
func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	terms := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) > 1 {
			terms = append(terms, f)
		}
	}
	return terms
}

// Vocabulary returns the corpus vocabulary in deterministic order. Used by
// diagnostics and tests.
func (m *Matcher) Vocabulary() []string {
	terms := make([]string, 0, len(m.vocab))
	for term := range m.vocab {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	return terms
}
