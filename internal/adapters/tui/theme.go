package tui

import (
	"reflect"

	"github.com/charmbracelet/lipgloss"
	"github.com/xvierd/dayblocks/internal/config"
)

// resolveTheme fills any empty string fields in the given ThemeConfig with defaults.
// If theme is nil, returns the full default theme.
func resolveTheme(theme *config.ThemeConfig) config.ThemeConfig {
	defaults := config.DefaultThemeConfig()
	if theme == nil {
		return defaults
	}
	resolved := *theme
	rv := reflect.ValueOf(&resolved).Elem()
	dv := reflect.ValueOf(defaults)
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if f.Kind() == reflect.String && f.String() == "" {
			f.SetString(dv.Field(i).String())
		}
	}
	if len(resolved.Palette) == 0 {
		resolved.Palette = defaults.Palette
	}
	return resolved
}

// blockStyles is the rendered look of one palette entry.
type blockStyles struct {
	body     lipgloss.Style
	handle   lipgloss.Style
	dragging lipgloss.Style
	label    lipgloss.Style
	field    lipgloss.Style
}

// styles holds every lipgloss style the timeline uses.
type styles struct {
	title     lipgloss.Style
	subtle    lipgloss.Style
	help      lipgloss.Style
	tick      lipgloss.Style
	midnight  lipgloss.Style
	noon      lipgloss.Style
	dotActive lipgloss.Style
	dotIdle   lipgloss.Style
	selected  lipgloss.Style
	button    lipgloss.Style
	blocks    []blockStyles
}

func newStyles(theme config.ThemeConfig) styles {
	s := styles{
		title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.ColorTitle)),
		subtle:    lipgloss.NewStyle().Foreground(lipgloss.Color(theme.ColorSubtle)),
		help:      lipgloss.NewStyle().Foreground(lipgloss.Color(theme.ColorHelp)),
		tick:      lipgloss.NewStyle().Foreground(lipgloss.Color(theme.ColorTick)),
		midnight:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.ColorMidnight)),
		noon:      lipgloss.NewStyle().Foreground(lipgloss.Color(theme.ColorNoon)),
		dotActive: lipgloss.NewStyle().Foreground(lipgloss.Color(theme.ColorDotActive)),
		dotIdle:   lipgloss.NewStyle().Foreground(lipgloss.Color(theme.ColorDotIdle)),
		selected:  lipgloss.NewStyle().Bold(true).Underline(true),
		button:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.ColorSubtle)),
	}
	for _, p := range theme.Palette {
		s.blocks = append(s.blocks, blockStyles{
			body: lipgloss.NewStyle().
				Background(lipgloss.Color(p.Background)).
				Foreground(lipgloss.Color(p.Text)),
			handle: lipgloss.NewStyle().
				Background(lipgloss.Color(p.Border)).
				Foreground(lipgloss.Color(p.Handle)),
			dragging: lipgloss.NewStyle().
				Background(lipgloss.Color(p.Handle)).
				Foreground(lipgloss.Color(p.Background)),
			label: lipgloss.NewStyle().Foreground(lipgloss.Color(p.Dark)),
			field: lipgloss.NewStyle().Foreground(lipgloss.Color(p.Text)).Bold(true),
		})
	}
	return s
}

// block returns the palette styles for the block at index i.
func (s styles) block(i int) blockStyles {
	if len(s.blocks) == 0 {
		return blockStyles{}
	}
	return s.blocks[i%len(s.blocks)]
}
