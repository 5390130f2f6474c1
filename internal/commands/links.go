package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/renato0307/apptopo/internal/k8s"
	"github.com/renato0307/apptopo/internal/logging"
	"github.com/renato0307/apptopo/internal/messages"
	"github.com/renato0307/apptopo/internal/topology"
	"github.com/renato0307/apptopo/internal/types"
	"github.com/renato0307/apptopo/internal/ui"
)

// ExecuteLink runs the action behind a details panel link. YAML links are
// fetched from repo; log and external links are copied to the clipboard.
func ExecuteLink(repo k8s.Repository, link topology.LinkValue, timeout time.Duration) tea.Cmd {
	log := logging.Component("commands")
	log.Debug("link activated", "action", link.Data.Action, "id", link.ID)

	switch link.Data.Action {
	case topology.ActionShowYAML:
		return showYAML(repo, link.Data, timeout)

	case topology.ActionShowPodLog:
		if link.Data.Name == "" {
			return messages.ErrorCmd("No pod for %s", link.Label)
		}
		return copyCmd(PodLogCommand(link.Data), "Logs command copied to clipboard")

	case topology.ActionOpenLink:
		if link.Data.TargetLink == "" {
			return messages.ErrorCmd("No address for %s", link.Label)
		}
		return copyCmd(link.Data.TargetLink, "Link copied to clipboard")
	}

	return messages.ErrorCmd("Unsupported link action %q", link.Data.Action)
}

func showYAML(repo k8s.Repository, ref topology.LinkData, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		content, err := repo.GetResourceYAML(ctx, ref)
		if err != nil {
			logging.Component("commands").Warn("resource yaml failed", "kind", ref.Kind, "name", ref.Name, "error", err)
			return types.ErrorStatusMsg(fmt.Sprintf("Failed to get YAML: %v", err))
		}
		return types.ShowFullScreenMsg{Title: YAMLTitle(ref), Content: content}
	}
}

// YAMLTitle names the object shown in the YAML view
func YAMLTitle(ref topology.LinkData) string {
	var b strings.Builder
	if ref.Kind != "" {
		b.WriteString(ref.Kind)
		b.WriteString(" ")
	}
	if ref.Namespace != "" {
		b.WriteString(ref.Namespace)
		b.WriteString("/")
	}
	b.WriteString(ref.Name)
	if ref.Cluster != "" {
		b.WriteString(" @ ")
		b.WriteString(ref.Cluster)
	}
	return b.String()
}

// PodLogCommand builds the kubectl command that prints a pod log
func PodLogCommand(ref topology.LinkData) string {
	var cmd strings.Builder
	cmd.WriteString("kubectl")
	if ref.Cluster != "" {
		cmd.WriteString(" --context ")
		cmd.WriteString(ref.Cluster)
	}
	cmd.WriteString(" logs")
	if ref.Namespace != "" {
		cmd.WriteString(" -n ")
		cmd.WriteString(ref.Namespace)
	}
	cmd.WriteString(" ")
	cmd.WriteString(ref.Name)
	return cmd.String()
}

// CopyDetails copies the plain text of a details panel
func CopyDetails(title string, records []topology.DisplayRecord) tea.Cmd {
	if len(records) == 0 {
		return messages.InfoCmd("Nothing to copy")
	}
	text := title + "\n\n" + ui.RecordsText(records)
	return copyCmd(text, "Details of "+title+" copied to clipboard")
}

// CopyText copies text and reports done as a success message
func CopyText(text, done string) tea.Cmd {
	return copyCmd(text, done)
}

func copyCmd(text, done string) tea.Cmd {
	return func() tea.Msg {
		if err := CopyToClipboard(text); err != nil {
			return types.ErrorStatusMsg(err.Error())
		}
		return types.SuccessMsg(done + ": " + firstLine(text))
	}
}

func firstLine(text string) string {
	line, _, _ := strings.Cut(text, "\n")
	return line
}
