package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/renato0307/apptopo/internal/ui"
)

type Header struct {
	appName     string
	source      string
	status      string
	itemCount   int
	lastRefresh time.Time
	width       int
	theme       *ui.Theme
}

func NewHeader(appName string, theme *ui.Theme) *Header {
	return &Header{
		appName: appName,
		theme:   theme,
	}
}

// SetSource names where the topology comes from
func (h *Header) SetSource(source string) {
	h.source = source
}

// SetStatus shows the fetch status next to the source
func (h *Header) SetStatus(status string) {
	h.status = status
}

func (h *Header) SetItemCount(count int) {
	h.itemCount = count
}

func (h *Header) SetLastRefresh(t time.Time) {
	h.lastRefresh = t
}

func (h *Header) SetWidth(width int) {
	h.width = width
}

// elapsed formats a duration the way the refresh indicator shows it
func elapsed(d time.Duration) string {
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds ago", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	default:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	}
}

func (h *Header) View() string {
	headerStyle := h.theme.Header
	timingStyle := lipgloss.NewStyle().Foreground(h.theme.Muted).Padding(0, 1)

	// "apptopo • hub prod app shop/shop • 12 nodes • IN_PROGRESS"
	parts := []string{h.appName}
	if h.source != "" {
		parts = append(parts, h.source)
	}
	if h.itemCount > 0 {
		parts = append(parts, fmt.Sprintf("%d nodes", h.itemCount))
	}
	if h.status != "" {
		parts = append(parts, h.status)
	}
	left := headerStyle.Render(strings.Join(parts, " • "))

	var right string
	if !h.lastRefresh.IsZero() {
		right = timingStyle.Render("Last refresh: " + elapsed(time.Since(h.lastRefresh)))
	}

	spacing := max(0, h.width-lipgloss.Width(left)-lipgloss.Width(right))
	spacer := lipgloss.NewStyle().Width(spacing).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Top, left, spacer, right)
}
