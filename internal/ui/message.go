package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// MessageType defines the type of a user message
type MessageType int

const (
	MessageTypeInfo MessageType = iota
	MessageTypeSuccess
	MessageTypeError
	MessageTypeLoading // shown with a spinner
)

// RenderMessage renders a user message with styling based on its type.
// Long messages are truncated to fit the terminal width.
func RenderMessage(text string, msgType MessageType, theme *Theme, spinnerView string, width int) string {
	if text == "" {
		return ""
	}

	// prefix (2) plus a margin
	maxLen := width - 7
	if maxLen < 20 {
		maxLen = 20
	}
	if runes := []rune(text); len(runes) > maxLen {
		text = string(runes[:maxLen-1]) + "…"
	}

	bullet := "⏺ "
	var color lipgloss.AdaptiveColor
	prefix := bullet

	switch msgType {
	case MessageTypeSuccess:
		color = theme.MessageSuccess
	case MessageTypeError:
		color = theme.MessageError
	case MessageTypeLoading:
		color = theme.MessageLoading
		if spinnerView != "" {
			prefix = spinnerView + " "
		}
	default:
		color = theme.MessageInfo
	}

	return lipgloss.NewStyle().Foreground(color).Render(prefix + text)
}
