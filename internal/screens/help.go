package screens

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/renato0307/apptopo/internal/keyboard"
	"github.com/renato0307/apptopo/internal/ui"
)

// helpSections fixes the order of the help groups
var helpSections = []string{"Nodes", "Details", "Filters", "Global"}

// HelpScreen lists the keyboard shortcuts
type HelpScreen struct {
	theme  *ui.Theme
	keys   *keyboard.Keys
	width  int
	height int
}

func NewHelpScreen(theme *ui.Theme, keys *keyboard.Keys) *HelpScreen {
	return &HelpScreen{theme: theme, keys: keys}
}

func (h *HelpScreen) ID() string       { return HelpScreenID }
func (h *HelpScreen) Title() string    { return "Help - Keyboard Shortcuts" }
func (h *HelpScreen) HelpText() string { return "esc: back" }
func (h *HelpScreen) Init() tea.Cmd    { return nil }

func (h *HelpScreen) SetSize(width, height int) {
	h.width = width
	h.height = height
}

func (h *HelpScreen) Update(tea.Msg) (tea.Model, tea.Cmd) { return h, nil }

func (h *HelpScreen) View() string {
	section := lipgloss.NewStyle().Foreground(h.theme.Primary).Bold(true)
	key := lipgloss.NewStyle().Foreground(h.theme.Accent).Width(18)
	desc := lipgloss.NewStyle().Foreground(h.theme.Foreground)

	bindings := h.keys.Bindings()
	var b strings.Builder
	b.WriteString(h.theme.Header.Render(h.Title()))
	b.WriteString("\n")
	for _, name := range helpSections {
		fmt.Fprintf(&b, "\n%s\n", section.Render(name))
		for _, bind := range bindings[name] {
			fmt.Fprintf(&b, "  %s%s\n", key.Render(bind.Key), desc.Render(bind.Description))
		}
	}
	return b.String()
}
