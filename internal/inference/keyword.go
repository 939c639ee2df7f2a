package inference

import (
	"context"
	"strings"

	"github.com/meridianrcm/denialflow/internal/model"
)

// keywordClient is a deterministic, offline text-classification provider.
// It scores causes by keyword-template hits and is the default provider when
// no remote model is configured. Also used as the test double.
type keywordClient struct{}

func newKeywordClient() Client {
	return &keywordClient{}
}

// ClassifyText builds a distribution from keyword-template hits in the text.
func (c *keywordClient) ClassifyText(_ context.Context, text string) (Distribution, error) {
	lower := strings.ToLower(text)

	hits := make(map[model.DenialCause]int)
	total := 0
	for _, cause := range model.Causes() {
		for _, keyword := range model.KeywordsForCause(cause) {
			if strings.Contains(lower, keyword) {
				hits[cause]++
				total++
			}
		}
	}

	if total == 0 {
		return Distribution{model.CauseOther: 0.6}, nil
	}

	dist := make(Distribution, len(hits))
	for cause, count := range hits {
		// One hit is moderately confident; each extra hit adds a little.
		score := 0.6 + 0.1*float64(count-1)
		if score > 0.9 {
			score = 0.9
		}
		dist[cause] = score
	}

	return dist, nil
}
