package types

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/renato0307/apptopo/internal/topology"
	"github.com/renato0307/apptopo/internal/ui"
)

// Screen represents a view in the application
type Screen interface {
	tea.Model
	ID() string
	Title() string
	HelpText() string
}

// AppState holds shared application state
type AppState struct {
	Width       int
	Height      int
	LastRefresh time.Time
	RefreshTime time.Duration
}

// Messages

// RefreshTickMsg triggers a periodic topology refresh
type RefreshTickMsg time.Time

type StatusMsg struct {
	Message string
	Type    ui.MessageType
}

type ClearStatusMsg struct {
	MessageID int // only clear if this matches the current message ID
}

// InfoMsg creates an info status message
func InfoMsg(message string) StatusMsg {
	return StatusMsg{Message: message, Type: ui.MessageTypeInfo}
}

// SuccessMsg creates a success status message
func SuccessMsg(message string) StatusMsg {
	return StatusMsg{Message: message, Type: ui.MessageTypeSuccess}
}

// ErrorStatusMsg creates an error status message
func ErrorStatusMsg(message string) StatusMsg {
	return StatusMsg{Message: message, Type: ui.MessageTypeError}
}

// LoadingMsg creates a loading status message (with spinner)
func LoadingMsg(message string) StatusMsg {
	return StatusMsg{Message: message, Type: ui.MessageTypeLoading}
}

// TextFilterMsg sets the fuzzy filter of the node list
type TextFilterMsg struct {
	Filter string
}

// LinkActivatedMsg is sent when the user triggers a link record
type LinkActivatedMsg struct {
	Link topology.LinkValue
}

// ShowFullScreenMsg triggers display of full-screen content
type ShowFullScreenMsg struct {
	Title   string
	Content string
}

// ExitFullScreenMsg returns from full-screen view to the topology
type ExitFullScreenMsg struct{}
