package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/meridianrcm/denialflow/internal/cli"
)

func remediateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remediate",
		Short: "Classify denials and run their remediation workflows",
		Long: `Process denials end to end: classify each one, persist the record, dispatch
it to the remediation workflow for its cause, and log every action taken.

Without a configured payer gateway the external checks run against the
offline gateway, which approves everything.`,
		RunE: runRemediate,
	}

	cmd.Flags().String("input", "", "JSON file containing one denial")
	cmd.Flags().String("file", "", "JSONL file containing one denial per line")
	cmd.Flags().String("claim-id", "", "claim identifier")
	cmd.Flags().String("text", "", "denial reason text")
	cmd.Flags().StringSlice("codes", nil, "denial codes (e.g. CO-197)")
	cmd.Flags().Float64("amount", 0, "claim amount in dollars")

	return cmd
}

func runRemediate(cmd *cobra.Command, _ []string) error {
	store, err := openStorage(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	eng, err := newEngine(store)
	if err != nil {
		return err
	}

	if batchFile, _ := cmd.Flags().GetString("file"); batchFile != "" {
		inputs, err := readDenialBatch(batchFile)
		if err != nil {
			return err
		}

		stats, err := eng.ProcessBatch(cmd.Context(), inputs)
		if err != nil {
			return err
		}

		fmt.Println(cli.TitleStyle.Render("Batch Complete"))
		fmt.Printf("%s%d\n", cli.LabelStyle.Render("Denials"), stats.TotalDenials)
		fmt.Printf("%s%s\n", cli.LabelStyle.Render("Automated"), cli.SuccessStyle.Render(fmt.Sprintf("%d", stats.AutomatedResolved)))
		fmt.Printf("%s%s\n", cli.LabelStyle.Render("Manual review"), cli.WarningStyle.Render(fmt.Sprintf("%d", stats.ManualAssigned)))
		if stats.DispatchErrors > 0 {
			fmt.Printf("%s%s\n", cli.LabelStyle.Render("Errors"), cli.ErrorStyle.Render(fmt.Sprintf("%d", stats.DispatchErrors)))
		}
		fmt.Printf("%s%s\n", cli.LabelStyle.Render("Duration"), stats.Duration.Round(time.Millisecond).String())
		return nil
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

	result, err := eng.Process(cmd.Context(), input)
	if err != nil {
		return err
	}

	fmt.Print(cli.RenderClassification(input.ClaimID, result.Classification))
	fmt.Println()
	fmt.Print(cli.RenderOutcome(result.Outcome))
	fmt.Printf("%s%s\n", cli.LabelStyle.Render("Record"), cli.SubtleStyle.Render(result.RecordID))
	return nil
}
