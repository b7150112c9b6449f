// Package config provides configuration management for dayblocks.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"github.com/xvierd/dayblocks/internal/domain"
)

// Config holds all configuration for the dayblocks application.
type Config struct {
	Title     string        `mapstructure:"title"`
	ViewStart float64       `mapstructure:"view_start"`
	NewBlock  BlockConfig   `mapstructure:"new_block"`
	Blocks    []BlockConfig `mapstructure:"blocks"`
	Theme     ThemeConfig   `mapstructure:"theme"`
	Log       LogConfig     `mapstructure:"log"`
}

// BlockConfig describes a block by name and viewport geometry.
type BlockConfig struct {
	Name  string  `mapstructure:"name"`
	Left  float64 `mapstructure:"left"`
	Width float64 `mapstructure:"width"`
}

// LogConfig holds debug logging settings. Logging is off when File is empty.
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// PaletteEntry is the set of colors used for one block.
type PaletteEntry struct {
	Background string `mapstructure:"background"`
	Border     string `mapstructure:"border"`
	Text       string `mapstructure:"text"`
	Handle     string `mapstructure:"handle"`
	Dark       string `mapstructure:"dark"`
}

// ThemeConfig holds theme customization settings.
type ThemeConfig struct {
	ColorTitle     string         `mapstructure:"color_title"`
	ColorSubtle    string         `mapstructure:"color_subtle"`
	ColorHelp      string         `mapstructure:"color_help"`
	ColorTick      string         `mapstructure:"color_tick"`
	ColorMidnight  string         `mapstructure:"color_midnight"`
	ColorNoon      string         `mapstructure:"color_noon"`
	ColorDotActive string         `mapstructure:"color_dot_active"`
	ColorDotIdle   string         `mapstructure:"color_dot_idle"`
	Palette        []PaletteEntry `mapstructure:"palette"`
}

// DefaultPalette returns the five built-in block color sets.
func DefaultPalette() []PaletteEntry {
	return []PaletteEntry{
		{Background: "#e0f2fe", Border: "#38bdf8", Text: "#0c4a6e", Handle: "#0ea5e9", Dark: "#075985"},
		{Background: "#fce7f3", Border: "#f472b6", Text: "#831843", Handle: "#ec4899", Dark: "#9d174d"},
		{Background: "#dcfce7", Border: "#4ade80", Text: "#14532d", Handle: "#22c55e", Dark: "#15803d"},
		{Background: "#fef3c7", Border: "#fbbf24", Text: "#78350f", Handle: "#f59e0b", Dark: "#92400e"},
		{Background: "#ede9fe", Border: "#a78bfa", Text: "#4c1d95", Handle: "#8b5cf6", Dark: "#5b21b6"},
	}
}

// DefaultThemeConfig returns the default theme configuration.
func DefaultThemeConfig() ThemeConfig {
	return ThemeConfig{
		ColorTitle:     "#0f172a",
		ColorSubtle:    "#94a3b8",
		ColorHelp:      "#cbd5e1",
		ColorTick:      "#94a3b8",
		ColorMidnight:  "#1e293b",
		ColorNoon:      "#475569",
		ColorDotActive: "#38bdf8",
		ColorDotIdle:   "#e2e8f0",
		Palette:        DefaultPalette(),
	}
}

// DefaultBlocks returns the blocks a fresh plan starts with.
func DefaultBlocks() []BlockConfig {
	return []BlockConfig{
		{Name: "Sleep", Left: 5, Width: 25},
		{Name: "Read", Left: 35, Width: 20},
		{Name: "Exercise", Left: 60, Width: 20},
	}
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Title:     "Screen-Free Time",
		ViewStart: domain.DefaultViewStart,
		NewBlock: BlockConfig{
			Name:  domain.DefaultBlockName,
			Left:  domain.DefaultBlockLeft,
			Width: domain.DefaultBlockWidth,
		},
		Blocks: DefaultBlocks(),
		Theme:  DefaultThemeConfig(),
		Log: LogConfig{
			Level: "info",
		},
	}
}

// LoadFrom loads the configuration from configPath, creating the file with
// defaults on first run.
func LoadFrom(configPath string) (*Config, error) {
	// Ensure config directory exists
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")
	setDefaults(v)

	// If config file doesn't exist, create it with defaults
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := SaveTo(configPath, DefaultConfig()); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.ViewStart = domain.Normalize(cfg.ViewStart)
	if !v.IsSet("blocks") {
		cfg.Blocks = DefaultBlocks()
	}
	if len(cfg.Theme.Palette) == 0 {
		cfg.Theme.Palette = DefaultPalette()
	}

	return &cfg, nil
}

// SaveTo writes the configuration to configPath.
func SaveTo(configPath string, cfg *Config) error {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")

	v.Set("title", cfg.Title)
	v.Set("view_start", cfg.ViewStart)
	v.Set("new_block", blockMap(cfg.NewBlock))
	blocks := make([]map[string]interface{}, 0, len(cfg.Blocks))
	for _, b := range cfg.Blocks {
		blocks = append(blocks, blockMap(b))
	}
	v.Set("blocks", blocks)
	v.Set("theme.color_title", cfg.Theme.ColorTitle)
	v.Set("theme.color_subtle", cfg.Theme.ColorSubtle)
	v.Set("theme.color_help", cfg.Theme.ColorHelp)
	v.Set("theme.color_tick", cfg.Theme.ColorTick)
	v.Set("theme.color_midnight", cfg.Theme.ColorMidnight)
	v.Set("theme.color_noon", cfg.Theme.ColorNoon)
	v.Set("theme.color_dot_active", cfg.Theme.ColorDotActive)
	v.Set("theme.color_dot_idle", cfg.Theme.ColorDotIdle)
	palette := make([]map[string]interface{}, 0, len(cfg.Theme.Palette))
	for _, p := range cfg.Theme.Palette {
		palette = append(palette, map[string]interface{}{
			"background": p.Background,
			"border":     p.Border,
			"text":       p.Text,
			"handle":     p.Handle,
			"dark":       p.Dark,
		})
	}
	v.Set("theme.palette", palette)
	v.Set("log.file", cfg.Log.File)
	v.Set("log.level", cfg.Log.Level)

	return v.WriteConfigAs(configPath)
}

func blockMap(b BlockConfig) map[string]interface{} {
	return map[string]interface{}{
		"name":  b.Name,
		"left":  b.Left,
		"width": b.Width,
	}
}

// GetConfigPath returns the path to the config file.
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".dayblocks", "config.toml"), nil
}

// setDefaults sets default values for viper.
func setDefaults(v *viper.Viper) {
	defaults := DefaultConfig()
	v.SetDefault("title", defaults.Title)
	v.SetDefault("view_start", defaults.ViewStart)
	v.SetDefault("new_block.name", defaults.NewBlock.Name)
	v.SetDefault("new_block.left", defaults.NewBlock.Left)
	v.SetDefault("new_block.width", defaults.NewBlock.Width)
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", defaults.Log.Level)

	// Theme defaults
	theme := defaults.Theme
	v.SetDefault("theme.color_title", theme.ColorTitle)
	v.SetDefault("theme.color_subtle", theme.ColorSubtle)
	v.SetDefault("theme.color_help", theme.ColorHelp)
	v.SetDefault("theme.color_tick", theme.ColorTick)
	v.SetDefault("theme.color_midnight", theme.ColorMidnight)
	v.SetDefault("theme.color_noon", theme.ColorNoon)
	v.SetDefault("theme.color_dot_active", theme.ColorDotActive)
	v.SetDefault("theme.color_dot_idle", theme.ColorDotIdle)
}

// SeedBlocks converts the configured blocks to domain blocks.
func (c *Config) SeedBlocks() []domain.Block {
	out := make([]domain.Block, 0, len(c.Blocks))
	for _, b := range c.Blocks {
		out = append(out, domain.NewBlock(b.Name, b.Left, b.Width))
	}
	return out
}

// NewBlockDefaults returns the geometry and name used for added blocks,
// falling back to the built-in defaults for unset values.
func (c *Config) NewBlockDefaults() BlockConfig {
	nb := c.NewBlock
	if nb.Name == "" {
		nb.Name = domain.DefaultBlockName
	}
	if nb.Width <= 0 {
		nb.Left = domain.DefaultBlockLeft
		nb.Width = domain.DefaultBlockWidth
	}
	return nb
}

// LogLevel parses the configured level, defaulting to info.
func (c *Config) LogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.Log.Level))); err != nil {
		return slog.LevelInfo
	}
	return level
}
