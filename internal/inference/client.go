// Package inference provides the pluggable text-classification capability
// used as one signal in the denial classification ensemble.
package inference

import (
	"context"
	"time"

	"github.com/meridianrcm/denialflow/internal/model"
)

// Distribution is a probability distribution over the denial causes.
// Scores are relative; causes absent from the map are treated as zero.
type Distribution map[model.DenialCause]float64

// Client defines the interface for text-classification providers.
type Client interface {
	ClassifyText(ctx context.Context, text string) (Distribution, error)
}

// Config holds configuration for the text classifier.
type Config struct {
	Provider    string
	APIKey      string
	Model       string
	Endpoint    string
	MaxRetries  int
	MaxTokens   int
	RetryDelay  time.Duration
	Temperature float64
}

// ArgMax returns the highest-scoring cause in the distribution and its
// score. Ties resolve in denial-cause declaration order; an empty
// distribution yields (other, 0).
func (d Distribution) ArgMax() (model.DenialCause, float64) {
	best := model.CauseOther
	bestScore := 0.0
	found := false

	for _, cause := range model.Causes() {
		score, ok := d[cause]
		if !ok {
			continue
		}
		if !found || score > bestScore {
			best = cause
			bestScore = score
			found = true
		}
	}

	if !found {
		return model.CauseOther, 0.0
	}
	return best, bestScore
}
