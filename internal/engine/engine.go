// Package engine orchestrates denial classification and remediation: it fans
// the three classification signals out concurrently, combines them, routes
// the result to a remediation workflow, and persists every step.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/meridianrcm/denialflow/internal/common"
	"github.com/meridianrcm/denialflow/internal/model"
	"github.com/meridianrcm/denialflow/internal/remediation"
	"github.com/meridianrcm/denialflow/internal/service"
)

// Engine wires the classification ensemble to storage and the remediation
// dispatcher.
type Engine struct {
	storage     service.Storage
	codes       CodeClassifier
	text        TextClassifier
	pattern     PatternClassifier
	combiner    Combiner
	resolver    Resolver
	dispatcher  *remediation.Dispatcher
	logger      *slog.Logger
	concurrency int
}

// Config holds configuration options for the engine.
type Config struct {
	// Concurrency bounds the number of denials processed in parallel during
	// batch runs.
	Concurrency int
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() Config {
	return Config{
		Concurrency: 4,
	}
}

// New creates an engine with the default configuration.
func New(storage service.Storage, codes CodeClassifier, text TextClassifier, pattern PatternClassifier, combiner Combiner, resolver Resolver, dispatcher *remediation.Dispatcher, logger *slog.Logger) *Engine {
	return NewWithConfig(storage, codes, text, pattern, combiner, resolver, dispatcher, logger, DefaultConfig())
}

// NewWithConfig creates an engine with custom configuration.
func NewWithConfig(storage service.Storage, codes CodeClassifier, text TextClassifier, pattern PatternClassifier, combiner Combiner, resolver Resolver, dispatcher *remediation.Dispatcher, logger *slog.Logger, config Config) *Engine {
	if config.Concurrency < 1 {
		config.Concurrency = 1
	}
	return &Engine{
		storage:     storage,
		codes:       codes,
		text:        text,
		pattern:     pattern,
		combiner:    combiner,
		resolver:    resolver,
		dispatcher:  dispatcher,
		logger:      logger,
		concurrency: config.Concurrency,
	}
}

// Classify runs the three classification signals concurrently and returns
// the completed classification. The signals are independent, so their order
// of completion never affects the result.
func (e *Engine) Classify(ctx context.Context, input model.DenialInput) (model.DenialClassification, error) {
	if input.ClaimID == "" {
		return model.DenialClassification{}, fmt.Errorf("%w: claim ID is required", common.ErrInvalidConfig)
	}

	var codeSignal, textSignal, patternSignal model.Signal

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		codeSignal = e.codes.Classify(input.DenialCodes)
	}()
	go func() {
		defer wg.Done()
		textSignal = e.text.Classify(ctx, input.DenialText)
	}()
	go func() {
		defer wg.Done()
		patternSignal = e.pattern.Classify(input.DenialText)
	}()
	wg.Wait()

	classification := e.combiner.Combine(codeSignal, textSignal, patternSignal, input)
	classification = e.resolver.Resolve(classification, input)

	e.logger.Info("denial classified",
		"claim_id", input.ClaimID,
		"cause", classification.CauseCategory,
		"workflow", classification.ResolutionWorkflow,
		"confidence", classification.Confidence,
		"priority", classification.PriorityScore)

	return classification, nil
}

// ProcessResult is the outcome of processing one denial end to end.
type ProcessResult struct {
	RecordID       string
	WorkflowID     string
	Status         model.ResolutionStatus
	Classification model.DenialClassification
	Outcome        remediation.Outcome
}

// Process runs a single denial through classification, remediation dispatch,
// and persistence. Handler failures never surface as errors; only invalid
// input and persistence failures do.
func (e *Engine) Process(ctx context.Context, input model.DenialInput) (*ProcessResult, error) {
	record := &model.DenialRecord{
		ID:     uuid.New().String(),
		Input:  input,
		Status: model.ResolutionAccepted,
	}

	classification, err := e.Classify(ctx, input)
	if err != nil {
		return nil, err
	}

	record.Classification = &classification
	record.Status = model.ResolutionClassified
	if err := e.storage.SaveDenialRecord(ctx, record); err != nil {
		return nil, fmt.Errorf("%w: failed to save denial record: %w", common.ErrPersistence, err)
	}

	outcome := e.dispatcher.Dispatch(ctx, classification.ResolutionWorkflow, remediation.Request{
		RecordID:       record.ID,
		Input:          input,
		Classification: classification,
	})

	for _, entry := range outcome.Actions {
		action := &model.RemediationAction{
			ID:         uuid.New().String(),
			RecordID:   record.ID,
			ActionType: entry.Type,
			Status:     entry.Status,
			Data:       entry.Data,
			Result:     entry.Result,
		}
		if err := e.storage.AppendRemediationAction(ctx, action); err != nil {
			return nil, fmt.Errorf("%w: failed to record remediation action: %w", common.ErrPersistence, err)
		}
	}

	if outcome.WorkflowID != "" {
		if err := e.storage.UpdateWorkflowID(ctx, record.ID, outcome.WorkflowID); err != nil {
			return nil, fmt.Errorf("%w: failed to update workflow id: %w", common.ErrPersistence, err)
		}
	}

	status := resolutionStatus(outcome.Status)
	if err := e.storage.UpdateResolutionStatus(ctx, record.ID, status); err != nil {
		return nil, fmt.Errorf("%w: failed to update resolution status: %w", common.ErrPersistence, err)
	}

	return &ProcessResult{
		RecordID:       record.ID,
		WorkflowID:     outcome.WorkflowID,
		Status:         status,
		Classification: classification,
		Outcome:        outcome,
	}, nil
}

// ProcessBatch processes denials through a bounded worker pool and reports
// aggregate statistics. Per-denial failures are counted, not propagated;
// the first context cancellation stops the batch.
func (e *Engine) ProcessBatch(ctx context.Context, inputs []model.DenialInput) (service.CompletionStats, error) {
	start := time.Now()
	stats := service.CompletionStats{TotalDenials: len(inputs)}

	if len(inputs) == 0 {
		return stats, nil
	}

	e.logger.Info("starting batch processing",
		"denials", len(inputs),
		"concurrency", e.concurrency)

	var mu sync.Mutex
	var wg sync.WaitGroup
	sem := make(chan struct{}, e.concurrency)

	for _, input := range inputs {
		select {
		case <-ctx.Done():
			wg.Wait()
			stats.Duration = time.Since(start)
			return stats, ctx.Err()
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func(input model.DenialInput) {
			defer wg.Done()
			defer func() { <-sem }()

			result, err := e.Process(ctx, input)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err != nil:
				stats.DispatchErrors++
				e.logger.Error("failed to process denial",
					"claim_id", input.ClaimID,
					"error", err)
			case result.Status == model.ResolutionAutomated:
				stats.AutomatedResolved++
			case result.Status == model.ResolutionManual:
				stats.ManualAssigned++
			default:
				stats.DispatchErrors++
			}
		}(input)
	}

	wg.Wait()
	stats.Duration = time.Since(start)

	e.logger.Info("batch processing complete",
		"total", stats.TotalDenials,
		"automated", stats.AutomatedResolved,
		"manual", stats.ManualAssigned,
		"errors", stats.DispatchErrors,
		"duration", stats.Duration)

	return stats, nil
}

// resolutionStatus maps a dispatch outcome to the stored record status.
func resolutionStatus(outcomeStatus string) model.ResolutionStatus {
	switch outcomeStatus {
	case remediation.StatusAutomated:
		return model.ResolutionAutomated
	case remediation.StatusManual, remediation.StatusAssigned:
		return model.ResolutionManual
	default:
		return model.ResolutionFailed
	}
}
