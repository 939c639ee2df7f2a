// Package codes implements rule-based classification of denials by their
// standard denial codes.
package codes

import (
	"strings"

	"github.com/meridianrcm/denialflow/internal/model"
)

// Confidence levels for code-based classification.
const (
	exactMatchConfidence = 0.95
	partialConfidence    = 0.8
	noMatchConfidence    = 0.1
)

// substringRule maps a substring of the concatenated codes to a cause.
// Scanned in order; first hit wins.
type substringRule struct {
	fragment string
	cause    model.DenialCause
}

var substringRules = []substringRule{
	{fragment: "auth", cause: model.CauseMissingAuthorization},
	{fragment: "pa", cause: model.CauseMissingAuthorization},
	{fragment: "dup", cause: model.CauseDuplicateClaim},
	{fragment: "elig", cause: model.CauseEligibilityIssue},
}

// Classify maps an ordered list of denial codes to a cause. Exact table hits
// win with high confidence; otherwise the concatenated lowercased codes are
// scanned for known fragments. Pure function over the static tables.
func Classify(denialCodes []string) model.Signal {
	if len(denialCodes) == 0 {
		return model.Signal{Cause: model.CauseOther, Confidence: 0.0}
	}

	for _, code := range denialCodes {
		if cause, ok := model.CauseForCode(code); ok {
			return model.Signal{Cause: cause, Confidence: exactMatchConfidence}
		}
	}

	joined := strings.ToLower(strings.Join(denialCodes, " "))
	for _, rule := range substringRules {
		if strings.Contains(joined, rule.fragment) {
			return model.Signal{Cause: rule.cause, Confidence: partialConfidence}
		}
	}

	return model.Signal{Cause: model.CauseOther, Confidence: noMatchConfidence}
}

// Mapper exposes code classification as an injectable component.
type Mapper struct{}

// NewMapper creates a code mapper.
func NewMapper() *Mapper {
	return &Mapper{}
}

// Classify implements the code-based classification signal.
func (*Mapper) Classify(denialCodes []string) model.Signal {
	return Classify(denialCodes)
}
