package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/renato0307/apptopo/internal/ui"
)

type Layout struct {
	width  int
	height int
	theme  *ui.Theme
}

func NewLayout(width, height int, theme *ui.Theme) *Layout {
	return &Layout{
		width:  width,
		height: height,
		theme:  theme,
	}
}

func (l *Layout) SetSize(width, height int) {
	l.width = width
	l.height = height
}

// CalculateBodyHeight returns the available height for the body content
func (l *Layout) CalculateBodyHeight() int {
	// header, blank line, filter bar, help, message
	reserved := 5
	return max(3, l.height-reserved)
}

// SplitWidth divides the body between the node list and the details panel
func (l *Layout) SplitWidth() (list, details int) {
	return SplitWidth(l.width)
}

// SplitWidth gives the details panel a bit over half of width; the list
// keeps the rest minus one separator column
func SplitWidth(width int) (list, details int) {
	details = max(DetailsMinWidth, width*11/20)
	list = max(0, width-details-1)
	return list, details
}

// Render builds the full layout
func (l *Layout) Render(header, body, filterBar, help, message string) string {
	sections := []string{}

	if header != "" {
		sections = append(sections, header, "")
	}
	if body != "" {
		sections = append(sections, body)
	}
	sections = append(sections, filterBar)
	if help != "" {
		sections = append(sections, lipgloss.NewStyle().Foreground(l.theme.Dimmed).Padding(0, 1).Render(help))
	}
	sections = append(sections, message)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
