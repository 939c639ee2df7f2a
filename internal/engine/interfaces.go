package engine

import (
	"context"

	"github.com/meridianrcm/denialflow/internal/model"
)

// TextClassifier defines the contract for the free-text classification
// signal. The production implementation calls an inference provider; tests
// inject deterministic stand-ins.
type TextClassifier interface {
	Classify(ctx context.Context, text string) model.Signal
}

// CodeClassifier produces the signal derived from the denial's CARC codes.
type CodeClassifier interface {
	Classify(denialCodes []string) model.Signal
}

// PatternClassifier produces the signal derived from similarity against the
// exemplar corpus.
type PatternClassifier interface {
	Classify(text string) model.Signal
}

// Combiner merges the three signals into a partial classification.
type Combiner interface {
	Combine(codeSignal, textSignal, patternSignal model.Signal, input model.DenialInput) model.DenialClassification
}

// Resolver completes a partial classification with workflow routing and
// triage scoring.
type Resolver interface {
	Resolve(classification model.DenialClassification, input model.DenialInput) model.DenialClassification
}
