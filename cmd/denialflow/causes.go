package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/meridianrcm/denialflow/internal/cli"
	"github.com/meridianrcm/denialflow/internal/model"
)

func causesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "causes",
		Short: "List the denial cause categories and their workflow routing",
		RunE:  runCauses,
	}

	cmd.Flags().Bool("codes", false, "also list the known denial codes per cause")
	cmd.Flags().Bool("actions", false, "also list the recommended actions per cause")

	return cmd
}

func runCauses(cmd *cobra.Command, _ []string) error {
	showCodes, _ := cmd.Flags().GetBool("codes")
	showActions, _ := cmd.Flags().GetBool("actions")

	fmt.Println(cli.TitleStyle.Render("Denial Causes"))
	header := fmt.Sprintf("%-30s %-25s %s", "CAUSE", "WORKFLOW", "APPEAL BASE")
	fmt.Println(cli.TableHeaderStyle.Render(header))

	codesByCause := make(map[model.DenialCause][]string)
	if showCodes {
		for _, code := range model.KnownDenialCodes() {
			cause, _ := model.CauseForCode(code)
			codesByCause[cause] = append(codesByCause[cause], code)
		}
	}

	for _, cause := range model.Causes() {
		fmt.Printf("%-30s %-25s %.2f\n",
			cause,
			model.WorkflowForCause(cause),
			model.AppealBaseRate(cause))

		if showCodes {
			if codes := codesByCause[cause]; len(codes) > 0 {
				fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf("  codes: %v", codes)))
			}
		}

		if showActions {
			for _, action := range model.ActionsForCause(cause) {
				fmt.Println(cli.SubtleStyle.Render("  - " + action))
			}
		}
	}

	return nil
}
