package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xvierd/dayblocks/internal/adapters/tui"
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the plan",
	Long:  `Print the configured blocks with their clock times for the current window, without opening the planner.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		view := app.planner.View()

		if jsonOutput {
			jsonData, err := json.MarshalIndent(view.Document(), "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal plan: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
			return nil
		}

		return tui.ShowPlan(cmd.OutOrStdout(), app.config.Title, view)
	},
}
