// Package cmd provides the CLI commands for the dayblocks application.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/xvierd/dayblocks/internal/adapters/tui"
)

var (
	// Version info (set at build time via ldflags)
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"

	// Global flags
	configPath    string
	viewStartFlag string
	jsonOutput    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "dayblocks",
	Short: "dayblocks - Plan a 12-hour stretch of your day as time blocks",
	Long: `dayblocks shows a 12-hour window of the day as a horizontal track.
Drag blocks to move them, drag their edges to resize, and drag the ruler
to pan the window around the clock. Click a block's times, name or
duration to type a new value.

Run "dayblocks" with no arguments to open the planner.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeServices()
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return cleanupServices()
	},
	RunE: runPlanner,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		tui.ShowError(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the config file (default: ~/.dayblocks/config.toml)")
	rootCmd.PersistentFlags().StringVar(&viewStartFlag, "view-start", "", "Start the window at this time (H or H:MM)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output results in JSON format")

	// Set version - cobra handles --version automatically
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("dayblocks\nVersion: {{.Version}}\n")

	// Add subcommands
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(configCmd)
}

// runPlanner opens the interactive timeline.
func runPlanner(cmd *cobra.Command, args []string) error {
	ctx := setupSignalHandler()

	planner := tui.NewApp(app.planner, tui.Options{
		Title:  app.config.Title,
		Theme:  &app.config.Theme,
		Logger: app.logger,
	})
	if err := planner.Run(ctx); err != nil {
		return fmt.Errorf("planner error: %w", err)
	}

	app.logger.Info("planner closed", "blocks", len(app.planner.Blocks()))
	return nil
}
