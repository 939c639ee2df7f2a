package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/meridianrcm/denialflow/internal/codes"
	"github.com/meridianrcm/denialflow/internal/config"
	"github.com/meridianrcm/denialflow/internal/engine"
	"github.com/meridianrcm/denialflow/internal/ensemble"
	"github.com/meridianrcm/denialflow/internal/inference"
	"github.com/meridianrcm/denialflow/internal/model"
	"github.com/meridianrcm/denialflow/internal/pattern"
	"github.com/meridianrcm/denialflow/internal/payer"
	"github.com/meridianrcm/denialflow/internal/remediation"
	"github.com/meridianrcm/denialflow/internal/storage"
	"github.com/meridianrcm/denialflow/internal/workflow"
)

// databasePath resolves the SQLite path from config with a sensible default.
func databasePath() (string, error) {
	if dbPath := viper.GetString("database.path"); dbPath != "" {
		return config.ExpandPath(dbPath), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", "denialflow", "denialflow.db"), nil
}

// openStorage opens the database and applies pending migrations.
func openStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	dbPath, err := databasePath()
	if err != nil {
		return nil, err
	}

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// newTextClassifier builds the configured text-classification signal.
func newTextClassifier() (*inference.Classifier, error) {
	return inference.NewClassifier(config.LoadInferenceConfig(), slog.Default())
}

// newCollaborators selects the payer gateway: a real HTTP client when an
// endpoint is configured, the deterministic in-process gateway otherwise.
func newCollaborators() (remediation.Collaborators, error) {
	endpoint := viper.GetString("payer.endpoint")
	if endpoint == "" {
		slog.Debug("no payer gateway configured, using offline gateway")
		gateway := payer.NewMockGateway()
		return remediation.Collaborators{
			Eligibility:   gateway,
			Authorization: gateway,
			Duplicates:    gateway,
			Documentation: gateway,
			Policy:        gateway,
		}, nil
	}

	client, err := payer.NewClient(endpoint, viper.GetString("payer.api_key"))
	if err != nil {
		return remediation.Collaborators{}, fmt.Errorf("failed to create payer client: %w", err)
	}
	return remediation.Collaborators{
		Eligibility:   client,
		Authorization: client,
		Duplicates:    client,
		Documentation: client,
		Policy:        client,
	}, nil
}

// newCombiner builds the ensemble combiner, honoring configured weights.
func newCombiner() (*ensemble.Combiner, error) {
	if !viper.IsSet("ensemble.codes_weight") {
		return ensemble.NewCombiner(), nil
	}
	return ensemble.NewCombinerWithWeights(ensemble.Weights{
		Codes:   viper.GetFloat64("ensemble.codes_weight"),
		Text:    viper.GetFloat64("ensemble.text_weight"),
		Pattern: viper.GetFloat64("ensemble.pattern_weight"),
	})
}

// newEngine assembles the full processing engine over the given storage.
func newEngine(store *storage.SQLiteStorage) (*engine.Engine, error) {
	text, err := newTextClassifier()
	if err != nil {
		return nil, err
	}

	combiner, err := newCombiner()
	if err != nil {
		return nil, err
	}

	collab, err := newCollaborators()
	if err != nil {
		return nil, err
	}

	dispatcher := remediation.NewDispatcher(remediation.DefaultHandlers(collab), slog.Default())

	cfg := engine.DefaultConfig()
	if v := viper.GetInt("engine.concurrency"); v > 0 {
		cfg.Concurrency = v
	}

	return engine.NewWithConfig(
		store,
		codes.NewMapper(),
		text,
		pattern.NewMatcher(),
		combiner,
		workflow.NewResolver(),
		dispatcher,
		slog.Default(),
		cfg,
	), nil
}

// readDenialInput loads a single denial, either from a JSON file or from
// command-line flags.
func readDenialInput(inputFile, claimID, text string, denialCodes []string, amount float64) (model.DenialInput, error) {
	if inputFile != "" {
		data, err := os.ReadFile(config.ExpandPath(inputFile)) // #nosec G304 -- user-supplied path
		if err != nil {
			return model.DenialInput{}, fmt.Errorf("failed to read input file: %w", err)
		}
		var input model.DenialInput
		if err := json.Unmarshal(data, &input); err != nil {
			return model.DenialInput{}, fmt.Errorf("failed to parse denial input: %w", err)
		}
		return input, nil
	}

	if claimID == "" {
		return model.DenialInput{}, fmt.Errorf("either --input or --claim-id is required")
	}

	return model.DenialInput{
		ClaimID:     claimID,
		DenialText:  text,
		DenialCodes: denialCodes,
		Claim:       model.ClaimData{ClaimAmount: amount},
	}, nil
}

// readDenialBatch loads denials from a JSONL file, one denial per line.
func readDenialBatch(path string) ([]model.DenialInput, error) {
	f, err := os.Open(config.ExpandPath(path)) // #nosec G304 -- user-supplied path
	if err != nil {
		return nil, fmt.Errorf("failed to open batch file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var inputs []model.DenialInput
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		var input model.DenialInput
		if err := json.Unmarshal(raw, &input); err != nil {
			return nil, fmt.Errorf("failed to parse denial on line %d: %w", line, err)
		}
		inputs = append(inputs, input)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}

	return inputs, nil
}
