package ui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color scheme and styles for the TUI
type Theme struct {
	Name string

	// Core colors
	Primary    lipgloss.AdaptiveColor
	Secondary  lipgloss.AdaptiveColor
	Accent     lipgloss.AdaptiveColor
	Foreground lipgloss.AdaptiveColor
	Muted      lipgloss.AdaptiveColor
	Error      lipgloss.AdaptiveColor
	Success    lipgloss.AdaptiveColor
	Warning    lipgloss.AdaptiveColor

	Border     lipgloss.AdaptiveColor
	Dimmed     lipgloss.AdaptiveColor
	Background lipgloss.AdaptiveColor

	// Message colors for the user message line
	MessageSuccess lipgloss.AdaptiveColor
	MessageError   lipgloss.AdaptiveColor
	MessageInfo    lipgloss.AdaptiveColor
	MessageLoading lipgloss.AdaptiveColor

	Table   TableStyles
	Details DetailStyles
	Header  lipgloss.Style
}

// TableStyles defines styles for table components
type TableStyles struct {
	Header      lipgloss.Style
	Cell        lipgloss.Style
	SelectedRow lipgloss.Style
}

// DetailStyles are used by RenderRecords
type DetailStyles struct {
	Label        lipgloss.Style
	Key          lipgloss.Style
	Value        lipgloss.Style
	Snippet      lipgloss.Style
	Link         lipgloss.Style
	SelectedLink lipgloss.Style

	Healthy lipgloss.Style
	Pending lipgloss.Style
	Warning lipgloss.Style
	Failed  lipgloss.Style
	Info    lipgloss.Style
}

// ToTableStyles converts Theme.Table to bubbles table.Styles
func (t *Theme) ToTableStyles() table.Styles {
	return table.Styles{
		Header:   t.Table.Header,
		Cell:     t.Table.Cell,
		Selected: t.Table.SelectedRow,
	}
}

// palette is the handful of colors a theme is derived from
type palette struct {
	primary, secondary, accent lipgloss.AdaptiveColor
	fg, muted, border, bg      lipgloss.AdaptiveColor
	errorc, success, warning   lipgloss.AdaptiveColor
	selectedFg, selectedBg     string
	boldHeader                 bool
}

func newTheme(name string, p palette) *Theme {
	t := &Theme{
		Name:       name,
		Primary:    p.primary,
		Secondary:  p.secondary,
		Accent:     p.accent,
		Foreground: p.fg,
		Muted:      p.muted,
		Error:      p.errorc,
		Success:    p.success,
		Warning:    p.warning,
		Border:     p.border,
		Dimmed:     p.muted,
		Background: p.bg,

		MessageSuccess: p.success,
		MessageError:   p.errorc,
		MessageInfo:    p.muted,
		MessageLoading: p.primary,
	}

	t.Table.Header = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(p.border).
		BorderBottom(true).
		Bold(p.boldHeader).
		PaddingLeft(1).
		PaddingRight(1)
	if p.boldHeader {
		t.Table.Header = t.Table.Header.Foreground(p.primary)
	}
	t.Table.Cell = lipgloss.NewStyle().PaddingLeft(1).PaddingRight(1)
	t.Table.SelectedRow = lipgloss.NewStyle().
		Foreground(lipgloss.Color(p.selectedFg)).
		Background(lipgloss.Color(p.selectedBg))

	t.Details = DetailStyles{
		Label:        lipgloss.NewStyle().Foreground(p.primary).Bold(true),
		Key:          lipgloss.NewStyle().Foreground(p.muted),
		Value:        lipgloss.NewStyle().Foreground(p.fg),
		Snippet:      lipgloss.NewStyle().Foreground(p.secondary),
		Link:         lipgloss.NewStyle().Foreground(p.accent).Underline(true),
		SelectedLink: lipgloss.NewStyle().Foreground(lipgloss.Color(p.selectedFg)).Background(lipgloss.Color(p.selectedBg)),
		Healthy:      lipgloss.NewStyle().Foreground(p.success),
		Pending:      lipgloss.NewStyle().Foreground(p.secondary),
		Warning:      lipgloss.NewStyle().Foreground(p.warning),
		Failed:       lipgloss.NewStyle().Foreground(p.errorc),
		Info:         lipgloss.NewStyle().Foreground(p.muted),
	}

	t.Header = lipgloss.NewStyle().Foreground(p.primary).Bold(true)
	return t
}

// ThemeCharm returns the default Charm theme
func ThemeCharm() *Theme {
	return newTheme("charm", palette{
		primary:    lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"},
		secondary:  lipgloss.AdaptiveColor{Light: "#02BA84", Dark: "#02BF87"},
		accent:     lipgloss.AdaptiveColor{Light: "#F780E2", Dark: "#F780E2"},
		fg:         lipgloss.AdaptiveColor{Light: "235", Dark: "252"},
		muted:      lipgloss.AdaptiveColor{Light: "243", Dark: "243"},
		border:     lipgloss.AdaptiveColor{Light: "240", Dark: "240"},
		bg:         lipgloss.AdaptiveColor{Light: "254", Dark: "235"},
		errorc:     lipgloss.AdaptiveColor{Light: "#FF4672", Dark: "#ED567A"},
		success:    lipgloss.AdaptiveColor{Light: "#02BA84", Dark: "#02BF87"},
		warning:    lipgloss.AdaptiveColor{Light: "#FFAA00", Dark: "#FFAA00"},
		selectedFg: "229",
		selectedBg: "57",
	})
}

// ThemeDracula returns a Dracula-inspired theme
func ThemeDracula() *Theme {
	return newTheme("dracula", palette{
		primary:    lipgloss.AdaptiveColor{Light: "#bd93f9", Dark: "#bd93f9"},
		secondary:  lipgloss.AdaptiveColor{Light: "#8be9fd", Dark: "#8be9fd"},
		accent:     lipgloss.AdaptiveColor{Light: "#ff79c6", Dark: "#ff79c6"},
		fg:         lipgloss.AdaptiveColor{Light: "#282a36", Dark: "#f8f8f2"},
		muted:      lipgloss.AdaptiveColor{Light: "#6272a4", Dark: "#6272a4"},
		border:     lipgloss.AdaptiveColor{Light: "61", Dark: "61"},
		bg:         lipgloss.AdaptiveColor{Light: "#f8f8f2", Dark: "#282a36"},
		errorc:     lipgloss.AdaptiveColor{Light: "#ff5555", Dark: "#ff5555"},
		success:    lipgloss.AdaptiveColor{Light: "#50fa7b", Dark: "#50fa7b"},
		warning:    lipgloss.AdaptiveColor{Light: "#f1fa8c", Dark: "#f1fa8c"},
		selectedFg: "#282a36",
		selectedBg: "#bd93f9",
		boldHeader: true,
	})
}

// ThemeNord returns a Nord-inspired theme
func ThemeNord() *Theme {
	return newTheme("nord", palette{
		primary:    lipgloss.AdaptiveColor{Light: "#5e81ac", Dark: "#88c0d0"},
		secondary:  lipgloss.AdaptiveColor{Light: "#81a1c1", Dark: "#81a1c1"},
		accent:     lipgloss.AdaptiveColor{Light: "#b48ead", Dark: "#b48ead"},
		fg:         lipgloss.AdaptiveColor{Light: "#2e3440", Dark: "#eceff4"},
		muted:      lipgloss.AdaptiveColor{Light: "#4c566a", Dark: "#616e88"},
		border:     lipgloss.AdaptiveColor{Light: "#d8dee9", Dark: "#3b4252"},
		bg:         lipgloss.AdaptiveColor{Light: "#eceff4", Dark: "#2e3440"},
		errorc:     lipgloss.AdaptiveColor{Light: "#bf616a", Dark: "#bf616a"},
		success:    lipgloss.AdaptiveColor{Light: "#a3be8c", Dark: "#a3be8c"},
		warning:    lipgloss.AdaptiveColor{Light: "#ebcb8b", Dark: "#ebcb8b"},
		selectedFg: "#2e3440",
		selectedBg: "#88c0d0",
		boldHeader: true,
	})
}

// ThemeGruvbox returns a Gruvbox-inspired theme
func ThemeGruvbox() *Theme {
	return newTheme("gruvbox", palette{
		primary:    lipgloss.AdaptiveColor{Light: "#af3a03", Dark: "#fe8019"},
		secondary:  lipgloss.AdaptiveColor{Light: "#076678", Dark: "#83a598"},
		accent:     lipgloss.AdaptiveColor{Light: "#8f3f71", Dark: "#d3869b"},
		fg:         lipgloss.AdaptiveColor{Light: "#3c3836", Dark: "#ebdbb2"},
		muted:      lipgloss.AdaptiveColor{Light: "#7c6f64", Dark: "#928374"},
		border:     lipgloss.AdaptiveColor{Light: "#d5c4a1", Dark: "#504945"},
		bg:         lipgloss.AdaptiveColor{Light: "#fbf1c7", Dark: "#282828"},
		errorc:     lipgloss.AdaptiveColor{Light: "#cc241d", Dark: "#fb4934"},
		success:    lipgloss.AdaptiveColor{Light: "#98971a", Dark: "#b8bb26"},
		warning:    lipgloss.AdaptiveColor{Light: "#d79921", Dark: "#fabd2f"},
		selectedFg: "#282828",
		selectedBg: "#fe8019",
		boldHeader: true,
	})
}

// ThemeCatppuccin returns a Catppuccin-inspired theme (Mocha variant)
func ThemeCatppuccin() *Theme {
	return newTheme("catppuccin", palette{
		primary:    lipgloss.AdaptiveColor{Light: "#8839ef", Dark: "#cba6f7"},
		secondary:  lipgloss.AdaptiveColor{Light: "#04a5e5", Dark: "#89dceb"},
		accent:     lipgloss.AdaptiveColor{Light: "#ea76cb", Dark: "#f5c2e7"},
		fg:         lipgloss.AdaptiveColor{Light: "#4c4f69", Dark: "#cdd6f4"},
		muted:      lipgloss.AdaptiveColor{Light: "#8c8fa1", Dark: "#7f849c"},
		border:     lipgloss.AdaptiveColor{Light: "#ccd0da", Dark: "#45475a"},
		bg:         lipgloss.AdaptiveColor{Light: "#eff1f5", Dark: "#1e1e2e"},
		errorc:     lipgloss.AdaptiveColor{Light: "#d20f39", Dark: "#f38ba8"},
		success:    lipgloss.AdaptiveColor{Light: "#40a02b", Dark: "#a6e3a1"},
		warning:    lipgloss.AdaptiveColor{Light: "#df8e1d", Dark: "#f9e2af"},
		selectedFg: "#1e1e2e",
		selectedBg: "#cba6f7",
	})
}

// GetTheme returns a theme by name, defaulting to Charm
func GetTheme(name string) *Theme {
	switch name {
	case "dracula":
		return ThemeDracula()
	case "nord":
		return ThemeNord()
	case "gruvbox":
		return ThemeGruvbox()
	case "catppuccin":
		return ThemeCatppuccin()
	default:
		return ThemeCharm()
	}
}

// AvailableThemes returns a list of available theme names
func AvailableThemes() []string {
	return []string{"charm", "dracula", "nord", "gruvbox", "catppuccin"}
}
