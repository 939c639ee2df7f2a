package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/meridianrcm/denialflow/internal/cli"
	"github.com/meridianrcm/denialflow/internal/model"
	"github.com/meridianrcm/denialflow/internal/storage"
)

func recordsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "records",
		Short: "Inspect stored denial records",
	}

	cmd.AddCommand(recordsListCmd())
	cmd.AddCommand(recordsShowCmd())

	return cmd
}

func recordsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List denial records by resolution status",
		RunE:  runRecordsList,
	}

	cmd.Flags().String("status", string(model.ResolutionManual), "resolution status to filter by")

	return cmd
}

func runRecordsList(cmd *cobra.Command, _ []string) error {
	statusFlag, _ := cmd.Flags().GetString("status")

	store, err := openStorage(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	records, err := store.GetDenialRecordsByStatus(cmd.Context(), model.ResolutionStatus(statusFlag))
	if err != nil {
		return err
	}

	if len(records) == 0 {
		fmt.Println(cli.SubtleStyle.Render("No records with status " + statusFlag))
		return nil
	}

	fmt.Println(cli.TitleStyle.Render("Denial Records"))
	header := fmt.Sprintf("%-38s %-14s %-25s %-8s %s", "RECORD", "CLAIM", "CAUSE", "PRIORITY", "WORKFLOW ID")
	fmt.Println(cli.TableHeaderStyle.Render(header))

	for _, record := range records {
		cause := ""
		priority := ""
		if record.Classification != nil {
			cause = string(record.Classification.CauseCategory)
			priority = fmt.Sprintf("%d", record.Classification.PriorityScore)
		}
		fmt.Printf("%-38s %-14s %-25s %-8s %s\n",
			record.ID, record.Input.ClaimID, cause, priority, record.WorkflowID)
	}

	return nil
}

func recordsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <record-id>",
		Short: "Show one denial record with its remediation action log",
		Args:  cobra.ExactArgs(1),
		RunE:  runRecordsShow,
	}
}

func runRecordsShow(cmd *cobra.Command, args []string) error {
	store, err := openStorage(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	record, err := store.GetDenialRecord(cmd.Context(), args[0])
	if err != nil {
		if errors.Is(err, storage.ErrRecordNotFound) {
			return fmt.Errorf("no denial record with id %s", args[0])
		}
		return err
	}

	fmt.Println(cli.TitleStyle.Render("Denial Record"))
	fmt.Printf("%s%s\n", cli.LabelStyle.Render("Record"), record.ID)
	fmt.Printf("%s%s\n", cli.LabelStyle.Render("Claim"), record.Input.ClaimID)
	fmt.Printf("%s%s\n", cli.LabelStyle.Render("Status"), record.Status)
	fmt.Printf("%s%s\n", cli.LabelStyle.Render("Workflow ID"), record.WorkflowID)
	fmt.Printf("%s%s\n", cli.LabelStyle.Render("Created"), record.CreatedAt.Format("2006-01-02 15:04:05"))

	if record.Classification != nil {
		fmt.Println()
		fmt.Print(cli.RenderClassification(record.Input.ClaimID, *record.Classification))
	}

	actions, err := store.GetRemediationActions(cmd.Context(), record.ID)
	if err != nil {
		return err
	}

	if len(actions) > 0 {
		fmt.Println(cli.TitleStyle.Render("Action Log"))
		for _, action := range actions {
			line := fmt.Sprintf("%s  %-28s %s",
				action.ExecutedAt.Format("2006-01-02 15:04:05"),
				action.ActionType,
				action.Status)
			style := cli.SuccessStyle
			if action.Status == model.ActionPendingManual || action.Status == model.ActionPending {
				style = cli.WarningStyle
			}
			fmt.Println(style.Render(line))
		}
	}

	return nil
}
