package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/meridianrcm/denialflow/internal/cli"
	"github.com/meridianrcm/denialflow/internal/codes"
	"github.com/meridianrcm/denialflow/internal/ensemble"
	"github.com/meridianrcm/denialflow/internal/model"
	"github.com/meridianrcm/denialflow/internal/pattern"
	"github.com/meridianrcm/denialflow/internal/workflow"
)

func classifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify denials without persisting or remediating",
		Long: `Run the classification ensemble over one denial or a batch and print the
resulting cause, workflow routing and triage scores. Nothing is written to
the database; use "remediate" for end-to-end processing.`,
		RunE: runClassify,
	}

	cmd.Flags().String("input", "", "JSON file containing one denial")
	cmd.Flags().String("file", "", "JSONL file containing one denial per line")
	cmd.Flags().String("claim-id", "", "claim identifier")
	cmd.Flags().String("text", "", "denial reason text")
	cmd.Flags().StringSlice("codes", nil, "denial codes (e.g. CO-197)")
	cmd.Flags().Float64("amount", 0, "claim amount in dollars")
	cmd.Flags().Bool("json", false, "emit JSON instead of styled output")

	return cmd
}

func runClassify(cmd *cobra.Command, _ []string) error {
	batchFile, _ := cmd.Flags().GetString("file")
	asJSON, _ := cmd.Flags().GetBool("json")

	if batchFile != "" {
		return classifyBatch(cmd, batchFile, asJSON)
	}

	inputFile, _ := cmd.Flags().GetString("input")
	claimID, _ := cmd.Flags().GetString("claim-id")
	denialText, _ := cmd.Flags().GetString("text")
	denialCodes, _ := cmd.Flags().GetStringSlice("codes")
	amount, _ := cmd.Flags().GetFloat64("amount")

	input, err := readDenialInput(inputFile, claimID, denialText, denialCodes, amount)
	if err != nil {
		return err
	}

	text, err := newTextClassifier()
	if err != nil {
		return err
	}

	codeSignal := codes.Classify(input.DenialCodes)
	textSignal := text.Classify(cmd.Context(), input.DenialText)
	patternSignal := pattern.NewMatcher().Classify(input.DenialText)

	classification := ensemble.NewCombiner().Combine(codeSignal, textSignal, patternSignal, input)
	classification = workflow.NewResolver().Resolve(classification, input)

	if asJSON {
		return printJSON(classification)
	}
	fmt.Print(cli.RenderClassification(input.ClaimID, classification))
	return nil
}

// classifiedDenial pairs a claim with its classification for batch output.
type classifiedDenial struct {
	ClaimID        string                     `json:"claim_id"`
	Classification model.DenialClassification `json:"classification"`
}

func classifyBatch(cmd *cobra.Command, batchFile string, asJSON bool) error {
	inputs, err := readDenialBatch(batchFile)
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		fmt.Println(cli.SubtleStyle.Render("No denials in batch file"))
		return nil
	}

	text, err := newTextClassifier()
	if err != nil {
		return err
	}
	matcher := pattern.NewMatcher()
	combiner := ensemble.NewCombiner()
	resolver := workflow.NewResolver()

	bar := progressbar.NewOptions(len(inputs),
		progressbar.OptionSetDescription("Classifying denials"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	results := make([]classifiedDenial, 0, len(inputs))
	for _, input := range inputs {
		if err := cmd.Context().Err(); err != nil {
			return err
		}

		codeSignal := codes.Classify(input.DenialCodes)
		textSignal := text.Classify(cmd.Context(), input.DenialText)
		patternSignal := matcher.Classify(input.DenialText)

		classification := combiner.Combine(codeSignal, textSignal, patternSignal, input)
		classification = resolver.Resolve(classification, input)

		results = append(results, classifiedDenial{
			ClaimID:        input.ClaimID,
			Classification: classification,
		})
		_ = bar.Add(1)
	}
	_ = bar.Finish()

	if asJSON {
		return printJSON(results)
	}

	for _, result := range results {
		fmt.Print(cli.RenderClassification(result.ClaimID, result.Classification))
		fmt.Println()
	}
	return nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
