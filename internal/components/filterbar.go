package components

import (
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/renato0307/apptopo/internal/topology"
	"github.com/renato0307/apptopo/internal/types"
	"github.com/renato0307/apptopo/internal/ui"
)

// FilterBar shows the active filters and edits the fuzzy node filter
type FilterBar struct {
	input   textinput.Model
	editing bool
	active  topology.ActiveFilters
	width   int
	theme   *ui.Theme
}

func NewFilterBar(theme *ui.Theme) *FilterBar {
	ti := textinput.New()
	ti.Prompt = "/"
	ti.Placeholder = "filter nodes (!negates)"
	ti.CharLimit = 128
	ti.Cursor.SetMode(cursor.CursorStatic)
	return &FilterBar{input: ti, theme: theme}
}

func (fb *FilterBar) SetWidth(width int) {
	fb.width = width
	fb.input.Width = max(10, width/3)
}

// SetActiveFilters updates the summary of the view state filters
func (fb *FilterBar) SetActiveFilters(active topology.ActiveFilters) {
	fb.active = active
}

// Editing reports whether key presses belong to the filter input
func (fb *FilterBar) Editing() bool { return fb.editing }

// Value is the current fuzzy filter
func (fb *FilterBar) Value() string { return fb.input.Value() }

// Start focuses the input
func (fb *FilterBar) Start() tea.Cmd {
	fb.editing = true
	return fb.input.Focus()
}

// Clear empties the input and leaves edit mode
func (fb *FilterBar) Clear() tea.Cmd {
	fb.editing = false
	fb.input.Blur()
	fb.input.SetValue("")
	return textFilterCmd("")
}

func textFilterCmd(filter string) tea.Cmd {
	return func() tea.Msg { return types.TextFilterMsg{Filter: filter} }
}

// Update handles keys while editing. Enter keeps the filter, esc drops it.
func (fb *FilterBar) Update(msg tea.Msg) (*FilterBar, tea.Cmd) {
	if !fb.editing {
		return fb, nil
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			fb.editing = false
			fb.input.Blur()
			return fb, nil
		case tea.KeyEsc:
			return fb, fb.Clear()
		}
	}

	before := fb.input.Value()
	var cmd tea.Cmd
	fb.input, cmd = fb.input.Update(msg)
	if after := fb.input.Value(); after != before {
		return fb, tea.Batch(cmd, textFilterCmd(after))
	}
	return fb, cmd
}

// Summary lists the non-empty filter categories as "category: a, b"
func Summary(active topology.ActiveFilters) string {
	categories := make([]string, 0, len(active))
	for c, values := range active {
		if len(values) > 0 {
			categories = append(categories, c)
		}
	}
	sort.Strings(categories)

	parts := make([]string, 0, len(categories))
	for _, c := range categories {
		labels := make([]string, 0, len(active[c]))
		for _, v := range active[c] {
			labels = append(labels, v.Label)
		}
		parts = append(parts, c+": "+strings.Join(labels, ", "))
	}
	return strings.Join(parts, " • ")
}

func (fb *FilterBar) View() string {
	muted := lipgloss.NewStyle().Foreground(fb.theme.Muted).Padding(0, 1)

	var left string
	switch {
	case fb.editing:
		left = fb.input.View()
	case fb.input.Value() != "":
		left = lipgloss.NewStyle().Foreground(fb.theme.Accent).Render("/" + fb.input.Value())
	}

	summary := Summary(fb.active)
	if summary == "" {
		summary = "no filters"
	}
	right := muted.Render(summary)

	spacing := max(1, fb.width-lipgloss.Width(left)-lipgloss.Width(right))
	return lipgloss.JoinHorizontal(lipgloss.Top, left, strings.Repeat(" ", spacing), right)
}
