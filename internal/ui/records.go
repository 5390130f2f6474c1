package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/renato0307/apptopo/internal/topology"
)

const indent = "  "

// StatusIcon is the badge drawn in front of a property with a status
func StatusIcon(status topology.Status) string {
	switch status {
	case topology.StatusHealthy:
		return "✓"
	case topology.StatusPending:
		return "◌"
	case topology.StatusWarning:
		return "⚠"
	case topology.StatusFailed:
		return "✗"
	case topology.StatusNotApplicable:
		return "ℹ"
	}
	return ""
}

func (s DetailStyles) status(status topology.Status) lipgloss.Style {
	switch status {
	case topology.StatusHealthy:
		return s.Healthy
	case topology.StatusPending:
		return s.Pending
	case topology.StatusWarning:
		return s.Warning
	case topology.StatusFailed:
		return s.Failed
	}
	return s.Info
}

func recordLabel(r topology.DisplayRecord) string {
	if r.LabelKey != "" {
		return Label(r.LabelKey)
	}
	return r.LabelValue
}

// RenderRecords draws a details panel. selectedLink is the position of the
// highlighted link among the link records, -1 for none.
func RenderRecords(records []topology.DisplayRecord, theme *Theme, width, selectedLink int) string {
	st := theme.Details
	lines := make([]string, 0, len(records))
	linkIdx := 0

	for _, r := range records {
		prefix := ""
		if r.Indent {
			prefix = indent
		}

		var line string
		switch r.Type {
		case topology.RecordSpacer:
			line = ""

		case topology.RecordLabel:
			line = st.Label.Render(recordLabel(r))

		case topology.RecordSnippet:
			line = indent + st.Snippet.Render(r.Value)

		case topology.RecordLink:
			text := "↗ " + r.Value
			if linkIdx == selectedLink {
				line = prefix + st.SelectedLink.Render(text)
			} else {
				line = prefix + st.Link.Render(text)
			}
			linkIdx++

		default:
			line = prefix + renderProperty(r, st)
		}

		if width > 0 && lipgloss.Width(line) > width {
			line = lipgloss.NewStyle().Width(width).Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func renderProperty(r topology.DisplayRecord, st DetailStyles) string {
	var b strings.Builder
	if r.Status != "" {
		b.WriteString(st.status(r.Status).Render(StatusIcon(r.Status)))
		b.WriteString(" ")
	}
	label := recordLabel(r)
	switch {
	case label != "" && r.Value != "":
		b.WriteString(st.Key.Render(label + ":"))
		b.WriteString(" ")
		b.WriteString(st.Value.Render(r.Value))
	case label != "":
		b.WriteString(st.Key.Render(label))
	default:
		b.WriteString(st.Value.Render(r.Value))
	}
	return b.String()
}

// RecordsText renders records as plain text for the clipboard
func RecordsText(records []topology.DisplayRecord) string {
	lines := make([]string, 0, len(records))
	for _, r := range records {
		prefix := ""
		if r.Indent || r.Type == topology.RecordSnippet {
			prefix = indent
		}
		switch r.Type {
		case topology.RecordSpacer:
			lines = append(lines, "")
		case topology.RecordLink:
			lines = append(lines, prefix+r.Value)
		case topology.RecordSnippet:
			lines = append(lines, prefix+r.Value)
		default:
			label := recordLabel(r)
			text := r.Value
			if label != "" && text != "" {
				text = label + ": " + text
			} else if label != "" {
				text = label
			}
			if icon := StatusIcon(r.Status); icon != "" {
				text = icon + " " + text
			}
			lines = append(lines, prefix+text)
		}
	}
	return strings.TrimSpace(strings.Join(lines, "\n")) + "\n"
}
