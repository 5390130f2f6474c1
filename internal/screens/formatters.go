package screens

import (
	"strconv"
	"strings"

	"github.com/renato0307/apptopo/internal/topology"
)

// FormatPulse returns plain text for the pulse column. Cell-level coloring
// is not used because the bubbles table truncates ANSI sequences badly.
func FormatPulse(pulse topology.StatusColor) string {
	switch pulse {
	case topology.PulseGreen:
		return "● ok"
	case topology.PulseYellow:
		return "◐ warn"
	case topology.PulseRed:
		return "○ fail"
	case topology.PulseBlocked:
		return "⊘ blocked"
	case topology.PulseOrange:
		return "· n/a"
	}
	return ""
}

// FormatClusters shows up to two cluster names, then a count
func FormatClusters(node *topology.GraphNode) string {
	clusters := topology.TargetClusters(node)
	switch {
	case len(clusters) == 0:
		return ""
	case len(clusters) <= 2:
		return strings.Join(clusters, ",")
	default:
		return clusters[0] + " +" + strconv.Itoa(len(clusters)-1)
	}
}

// FormatType prefers the renderer hint over the node type
func FormatType(node *topology.GraphNode) string {
	if node.Layout.Type != "" {
		return node.Layout.Type
	}
	return node.Type
}
