// Package ensemble merges the independent classification signals into one
// denial classification via weighted voting.
package ensemble

import (
	"fmt"
	"strings"

	"github.com/meridianrcm/denialflow/internal/common"
	"github.com/meridianrcm/denialflow/internal/model"
)

// Weights holds the voting weight of each classification signal. The
// normalization step in Combine depends on the weights summing to 1.0, so
// Validate rejects any other total.
type Weights struct {
	Codes   float64
	Text    float64
	Pattern float64
}

// DefaultWeights returns the fixed production weights.
func DefaultWeights() Weights {
	return Weights{
		Codes:   0.40,
		Text:    0.35,
		Pattern: 0.25,
	}
}

const weightSumTolerance = 1e-9

// Validate checks that the weights are non-negative and sum to 1.0.
func (w Weights) Validate() error {
	if w.Codes < 0 || w.Text < 0 || w.Pattern < 0 {
		return fmt.Errorf("%w: ensemble weights must be non-negative", common.ErrInvalidConfig)
	}
	sum := w.Codes + w.Text + w.Pattern
	if sum < 1.0-weightSumTolerance || sum > 1.0+weightSumTolerance {
		return fmt.Errorf("%w: ensemble weights must sum to 1.0, got %g", common.ErrInvalidConfig, sum)
	}
	return nil
}

// Combiner implements the weighted-voting ensemble.
type Combiner struct {
	weights Weights
}

// NewCombiner creates a combiner with the default weights.
func NewCombiner() *Combiner {
	return &Combiner{weights: DefaultWeights()}
}

// NewCombinerWithWeights creates a combiner with custom weights.
func NewCombinerWithWeights(weights Weights) (*Combiner, error) {
	if err := weights.Validate(); err != nil {
		return nil, err
	}
	return &Combiner{weights: weights}, nil
}

// Combine merges the three signals into a partial classification: cause,
// confidence and subcategory. Workflow, priority, appeal probability and
// recommended actions are filled by the workflow resolver. Given identical
// inputs the result is bit-for-bit reproducible.
func (c *Combiner) Combine(codeSignal, textSignal, patternSignal model.Signal, input model.DenialInput) model.DenialClassification {
	scores := make(map[model.DenialCause]float64)
	scores[codeSignal.Cause] += c.weights.Codes * codeSignal.Confidence
	scores[textSignal.Cause] += c.weights.Text * textSignal.Confidence
	scores[patternSignal.Cause] += c.weights.Pattern * patternSignal.Confidence

	// Arg-max in cause declaration order so ties resolve deterministically.
	winner := model.CauseOther
	winningScore := 0.0
	found := false
	for _, cause := range model.Causes() {
		score, ok := scores[cause]
		if !ok {
			continue
		}
		if !found || score > winningScore {
			winner = cause
			winningScore = score
			found = true
		}
	}

	weightBudget := c.weights.Codes + c.weights.Text + c.weights.Pattern
	confidence := winningScore / weightBudget
	if confidence > 1.0 {
		confidence = 1.0
	}

	return model.DenialClassification{
		CauseCategory: winner,
		Confidence:    confidence,
		Subcategory:   model.SubcategoryForText(winner, strings.ToLower(input.DenialText)),
	}
}
