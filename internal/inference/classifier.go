package inference

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/meridianrcm/denialflow/internal/common"
	"github.com/meridianrcm/denialflow/internal/model"
	"github.com/meridianrcm/denialflow/internal/service"
)

// Classifier wraps a text-classification provider behind the ensemble's
// signal contract. Inference failures degrade to (other, 0) rather than
// propagating: text classification is an optional signal, not a required one.
type Classifier struct {
	client    Client
	logger    *slog.Logger
	retryOpts service.RetryOptions
}

// NewClassifier creates a text classifier for the configured provider.
func NewClassifier(cfg Config, logger *slog.Logger) (*Classifier, error) {
	var client Client
	var err error

	switch strings.ToLower(cfg.Provider) {
	case "openai":
		client, err = newOpenAIClient(cfg)
	case "keyword", "":
		client = newKeywordClient()
	default:
		return nil, fmt.Errorf("unsupported inference provider: %s", cfg.Provider)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to create inference client: %w", err)
	}

	retryOpts := service.RetryOptions{
		MaxAttempts:  cfg.MaxRetries,
		InitialDelay: cfg.RetryDelay,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}
	if retryOpts.MaxAttempts == 0 {
		retryOpts.MaxAttempts = 3
	}
	if retryOpts.InitialDelay == 0 {
		retryOpts.InitialDelay = time.Second
	}

	return &Classifier{
		client:    client,
		logger:    logger,
		retryOpts: retryOpts,
	}, nil
}

// NewClassifierWithClient wraps an existing provider. Used by tests to
// inject deterministic or failing clients.
func NewClassifierWithClient(client Client, logger *slog.Logger) *Classifier {
	return &Classifier{
		client:    client,
		logger:    logger,
		retryOpts: service.RetryOptions{MaxAttempts: 1},
	}
}

// Classify maps the denial text to the most probable cause. Empty text and
// any provider failure both yield (other, 0).
func (c *Classifier) Classify(ctx context.Context, text string) model.Signal {
	if strings.TrimSpace(text) == "" {
		return model.Signal{Cause: model.CauseOther, Confidence: 0.0}
	}

	var dist Distribution
	err := common.WithRetry(ctx, func() error {
		var classifyErr error
		dist, classifyErr = c.client.ClassifyText(ctx, text)
		if classifyErr != nil {
			return &common.RetryableError{Err: classifyErr, Retryable: true}
		}
		return nil
	}, c.retryOpts)

	if err != nil {
		c.logger.Warn("text classification failed, degrading signal",
			"error", err)
		return model.Signal{Cause: model.CauseOther, Confidence: 0.0}
	}

	cause, score := dist.ArgMax()

	c.logger.Debug("text classified",
		"cause", cause,
		"confidence", score)

	return model.Signal{Cause: cause, Confidence: score}
}
