package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xvierd/dayblocks/internal/adapters/tui"
	"github.com/xvierd/dayblocks/internal/config"
	"github.com/xvierd/dayblocks/internal/domain"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View and edit the planner settings",
	Long:  `Show where the config file lives, print its current values, or edit the title, window start and new-block defaults.`,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), app.configPath)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		printConfig(cmd.OutOrStdout(), app.config)
		return nil
	},
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Interactively edit the configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		cfg := app.config

		items := make([]tui.PickerItem, 0, len(configFields)+1)
		for _, f := range configFields {
			items = append(items, tui.PickerItem{Label: f.label, Desc: f.get(cfg)})
		}
		items = append(items, tui.PickerItem{Label: "Quit", Desc: "Leave without saving"})

		choice := tui.RunPicker("Change:", items, "Saved to "+app.configPath, &cfg.Theme)
		if choice.Aborted || choice.Index == len(configFields) {
			fmt.Fprintln(out, "  No changes made.")
			return nil
		}

		field := configFields[choice.Index]
		input := tui.RunTextPrompt(field.label+":", field.get(cfg), &cfg.Theme)
		if input.Aborted {
			fmt.Fprintln(out, "  No changes made.")
			return nil
		}

		if err := applyConfigEdit(cfg, field.key, input.Value); err != nil {
			return err
		}
		if err := config.SaveTo(app.configPath, cfg); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}

		fmt.Fprintf(out, "\n  Saved: %s = %s\n", strings.ToLower(field.label), field.get(cfg))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configEditCmd)
}

// configField is one value `config edit` can change.
type configField struct {
	key   string
	label string
	get   func(*config.Config) string
}

var configFields = []configField{
	{
		key:   "title",
		label: "Title",
		get:   func(c *config.Config) string { return c.Title },
	},
	{
		key:   "view_start",
		label: "Window start",
		get:   func(c *config.Config) string { return domain.FormatTime(c.ViewStart) },
	},
	{
		key:   "new_block.name",
		label: "New block name",
		get:   func(c *config.Config) string { return c.NewBlockDefaults().Name },
	},
	{
		key:   "new_block.hours",
		label: "New block length",
		get: func(c *config.Config) string {
			return fmt.Sprintf("%.1fh", domain.RoundTenth(domain.WidthToHours(c.NewBlockDefaults().Width)))
		},
	},
}

// applyConfigEdit validates value and stores it in cfg under key.
func applyConfigEdit(cfg *config.Config, key, value string) error {
	value = strings.TrimSpace(value)
	switch key {
	case "title":
		if value == "" {
			return fmt.Errorf("title cannot be empty")
		}
		cfg.Title = value

	case "view_start":
		t, err := domain.ParseTimeString(value)
		if err != nil {
			return fmt.Errorf("invalid window start: %w", err)
		}
		cfg.ViewStart = domain.SnapHalfHour(t)

	case "new_block.name":
		if value == "" {
			return fmt.Errorf("block name cannot be empty")
		}
		nb := cfg.NewBlockDefaults()
		nb.Name = value
		cfg.NewBlock = nb

	case "new_block.hours":
		h, err := domain.ParseHours(value)
		if err != nil {
			return fmt.Errorf("invalid block length: %w", err)
		}
		nb := cfg.NewBlockDefaults()
		g := domain.ClampGeometry(nb.Left, domain.HoursToWidth(h))
		nb.Left, nb.Width = g.Left, g.Width
		cfg.NewBlock = nb

	default:
		return fmt.Errorf("unknown setting %q", key)
	}
	return nil
}

// printConfig writes a human-readable summary of cfg.
func printConfig(w io.Writer, cfg *config.Config) {
	nb := cfg.NewBlockDefaults()

	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Current configuration:")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "    Title:          %s\n", cfg.Title)
	fmt.Fprintf(w, "    Window start:   %s\n", domain.FormatTime(cfg.ViewStart))
	fmt.Fprintf(w, "    New block:      %s, %.1fh at %.0f%%\n",
		nb.Name, domain.RoundTenth(domain.WidthToHours(nb.Width)), nb.Left)

	logStatus := "off"
	if cfg.Log.File != "" {
		logStatus = fmt.Sprintf("%s (%s)", cfg.Log.File, cfg.LogLevel())
	}
	fmt.Fprintf(w, "    Debug log:      %s\n", logStatus)

	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Starting blocks (%d):\n", len(cfg.Blocks))
	for i, b := range cfg.SeedBlocks() {
		fmt.Fprintf(w, "    [%d] %-16s %s - %s\n", i+1, b.Name,
			domain.FormatTime(b.StartTime(cfg.ViewStart)),
			domain.FormatTime(b.EndTime(cfg.ViewStart)))
	}
}
