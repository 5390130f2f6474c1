package components

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/renato0307/apptopo/internal/ui"
)

// UserMessage keeps the current user-facing message and animates the
// spinner while a loading message is shown. Rendering is done by
// ui.RenderMessage.
type UserMessage struct {
	message     string
	messageType ui.MessageType
	id          int
	width       int
	theme       *ui.Theme
	spinner     spinner.Model
}

// NewUserMessage creates a new user message component
func NewUserMessage(theme *ui.Theme) *UserMessage {
	s := spinner.New()
	s.Spinner = spinner.Spinner{
		Frames: []string{"✽", "✻", "✶", "·", "✢"},
		FPS:    time.Second / 6,
	}
	s.Style = lipgloss.NewStyle()

	return &UserMessage{
		theme:   theme,
		spinner: s,
	}
}

// SetMessage sets the message and returns its id, used to clear it later
func (um *UserMessage) SetMessage(msg string, msgType ui.MessageType) int {
	um.message = msg
	um.messageType = msgType
	um.id++
	return um.id
}

// ID is the id of the current message
func (um *UserMessage) ID() int { return um.id }

// Message returns the current text
func (um *UserMessage) Message() string { return um.message }

// Type returns the current message type
func (um *UserMessage) Type() ui.MessageType { return um.messageType }

// GetSpinnerCmd returns the spinner tick command if showing a loading message
func (um *UserMessage) GetSpinnerCmd() tea.Cmd {
	if um.messageType == ui.MessageTypeLoading {
		return um.spinner.Tick
	}
	return nil
}

// ClearMessage clears the current message
func (um *UserMessage) ClearMessage() {
	um.message = ""
	um.messageType = ui.MessageTypeInfo
}

// IsLoadingMessage returns true if the current message is a loading message
func (um *UserMessage) IsLoadingMessage() bool {
	return um.message != "" && um.messageType == ui.MessageTypeLoading
}

func (um *UserMessage) SetWidth(width int) {
	um.width = width
}

// Update advances the spinner while loading
func (um *UserMessage) Update(msg tea.Msg) (*UserMessage, tea.Cmd) {
	if um.messageType == ui.MessageTypeLoading {
		var cmd tea.Cmd
		um.spinner, cmd = um.spinner.Update(msg)
		return um, cmd
	}
	return um, nil
}

func (um *UserMessage) View() string {
	if um.message == "" {
		// reserve the line
		return lipgloss.NewStyle().Width(um.width).Render("")
	}

	var spinnerView string
	if um.messageType == ui.MessageTypeLoading {
		spinnerView = um.spinner.View()
	}
	return ui.RenderMessage(um.message, um.messageType, um.theme, spinnerView, um.width)
}
