package modals

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/renato0307/apptopo/internal/topology"
	"github.com/renato0307/apptopo/internal/ui"
	"github.com/renato0307/apptopo/internal/viewstate"
)

// CloseMsg closes the filter picker
type CloseMsg struct{}

type filterItem struct {
	value    topology.FilterValue
	selected bool
}

func (i filterItem) FilterValue() string { return i.value.Label }
func (i filterItem) Description() string { return "" }

func (i filterItem) Title() string {
	if i.selected {
		return "[x] " + i.value.Label
	}
	return "[ ] " + i.value.Label
}

// FilterPickerModal selects any number of options of one filter category
type FilterPickerModal struct {
	category string
	options  []topology.FilterValue
	selected map[string]bool
	list     list.Model
	theme    *ui.Theme
	width    int
	height   int
}

func NewFilterPickerModal(category string, options, active []topology.FilterValue, theme *ui.Theme) *FilterPickerModal {
	selected := make(map[string]bool, len(active))
	for _, v := range active {
		selected[v.Label] = true
	}

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetSpacing(0)
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(theme.Primary).
		BorderForeground(theme.Primary)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Filter by " + category
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = lipgloss.NewStyle().Bold(true).Foreground(theme.Accent)

	m := &FilterPickerModal{
		category: category,
		options:  options,
		selected: selected,
		list:     l,
		theme:    theme,
	}
	m.refreshItems()
	return m
}

func (m *FilterPickerModal) refreshItems() {
	items := make([]list.Item, len(m.options))
	for i, o := range m.options {
		items[i] = filterItem{value: o, selected: m.selected[o.Label]}
	}
	m.list.SetItems(items)
	m.disableQuit()
}

// disableQuit keeps q from quitting the program; the list turns its quit
// binding back on whenever items or the filter state change
func (m *FilterPickerModal) disableQuit() {
	m.list.KeyMap.Quit.SetEnabled(false)
}

// Category is the filter category being edited
func (m *FilterPickerModal) Category() string { return m.category }

// Selected returns the chosen options in option order
func (m *FilterPickerModal) Selected() []topology.FilterValue {
	out := []topology.FilterValue{}
	for _, o := range m.options {
		if m.selected[o.Label] {
			out = append(out, o)
		}
	}
	return out
}

func (m *FilterPickerModal) Init() tea.Cmd {
	return nil
}

// Update toggles options with space. Enter applies the selection, esc
// discards it.
func (m *FilterPickerModal) Update(msg tea.Msg) (*FilterPickerModal, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		switch key.String() {
		case " ":
			if item, ok := m.list.SelectedItem().(filterItem); ok {
				m.selected[item.value.Label] = !m.selected[item.value.Label]
				m.refreshItems()
			}
			return m, nil
		case "enter":
			update := viewstate.FilterUpdateMsg{FilterType: m.category, Filters: m.Selected()}
			return m, tea.Batch(
				func() tea.Msg { return update },
				func() tea.Msg { return CloseMsg{} },
			)
		case "esc":
			if m.list.FilterState() == list.FilterApplied {
				break
			}
			return m, func() tea.Msg { return CloseMsg{} }
		}
	}

	m.disableQuit()
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	m.disableQuit()
	return m, cmd
}

func (m *FilterPickerModal) View() string {
	modalHeight := max(10, m.height*8/10)
	modalWidth := min(60, max(30, m.width-4))

	// border and padding
	m.list.SetSize(modalWidth-6, modalHeight-4)

	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Border).
		Padding(1, 2).
		Width(modalWidth).
		Height(modalHeight)

	hint := lipgloss.NewStyle().Foreground(m.theme.Muted).Render("space: toggle • enter: apply • esc: cancel")
	return style.Render(m.list.View() + "\n" + hint)
}

func (m *FilterPickerModal) SetSize(width, height int) {
	m.width = width
	m.height = height
}
