package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/renato0307/apptopo/internal/ui"
)

// FullScreen shows a resource manifest over the whole terminal
type FullScreen struct {
	title    string
	content  string
	width    int
	height   int
	theme    *ui.Theme
	viewport viewport.Model
}

// NewFullScreen creates a full-screen YAML view
func NewFullScreen(title, content string, theme *ui.Theme) *FullScreen {
	fs := &FullScreen{
		title:   title,
		content: content,
		theme:   theme,
	}
	fs.viewport = viewport.New(80, 24-FullScreenReservedLines)
	fs.viewport.SetContent(fs.highlightYAML(content))
	return fs
}

// Content returns the unstyled content
func (fs *FullScreen) Content() string { return fs.content }

func (fs *FullScreen) Title() string { return fs.title }

// SetSize updates the size of the full-screen view
func (fs *FullScreen) SetSize(width, height int) {
	fs.width = width
	fs.height = height
	fs.viewport.Width = width
	fs.viewport.Height = max(1, height-FullScreenReservedLines)
}

// Update scrolls the viewport. Esc is handled by the app.
func (fs *FullScreen) Update(msg tea.Msg) (*FullScreen, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "g", "home":
			fs.viewport.GotoTop()
			return fs, nil
		case "G", "end":
			fs.viewport.GotoBottom()
			return fs, nil
		}
	}
	var cmd tea.Cmd
	fs.viewport, cmd = fs.viewport.Update(msg)
	return fs, cmd
}

// View renders the full-screen view
func (fs *FullScreen) View() string {
	titleStyle := lipgloss.NewStyle().Foreground(fs.theme.Primary).Bold(true)
	hintStyle := lipgloss.NewStyle().Foreground(fs.theme.Muted)

	title := titleStyle.Render("YAML: " + fs.title)
	hint := hintStyle.Render("[ESC] Back  [↑↓/jk] Scroll  [PgUp/PgDn] Page  [g/G] Top/Bottom  [c] Copy")
	headerLine := lipgloss.JoinHorizontal(
		lipgloss.Top,
		title,
		strings.Repeat(" ", max(1, fs.width-lipgloss.Width(title)-lipgloss.Width(hint))),
		hint,
	)
	separator := hintStyle.Render(strings.Repeat("─", max(0, fs.width)))

	total := fs.viewport.TotalLineCount()
	scrollInfo := ""
	if total > fs.viewport.Height {
		first := fs.viewport.YOffset + 1
		last := min(fs.viewport.YOffset+fs.viewport.Height, total)
		scrollInfo = hintStyle.Render(fmt.Sprintf("  %d-%d of %d", first, last, total))
	}

	return lipgloss.JoinVertical(lipgloss.Left, headerLine, separator, fs.viewport.View(), scrollInfo)
}

// highlightYAML colors keys and values of a YAML document
func (fs *FullScreen) highlightYAML(doc string) string {
	keyStyle := lipgloss.NewStyle().Foreground(fs.theme.Primary)
	valueStyle := lipgloss.NewStyle().Foreground(fs.theme.Success)
	commentStyle := lipgloss.NewStyle().Foreground(fs.theme.Muted)

	lines := strings.Split(doc, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "#"):
			lines[i] = commentStyle.Render(line)
		case strings.Contains(line, ":"):
			key, value, _ := strings.Cut(line, ":")
			lines[i] = keyStyle.Render(key+":") + valueStyle.Render(value)
		}
	}
	return strings.Join(lines, "\n")
}
