package topology

import "strings"

// AggregateNamespaces joins the distinct namespaces of every instance in the
// node's kind model, in first-seen order. Model keys are walked in document
// order. Nodes without a live signal (orange pulse) aggregate nothing.
func AggregateNamespaces(node *GraphNode) string {
	if node == nil || node.Specs.Pulse == PulseOrange {
		return ""
	}

	seen := map[string]bool{}
	var namespaces []string
	for _, inst := range modelInstances(node, node.Type) {
		ns := inst.Namespace()
		if ns == "" || seen[ns] {
			continue
		}
		seen[ns] = true
		namespaces = append(namespaces, ns)
	}
	return strings.Join(namespaces, ",")
}

// resourceNamespace is the namespace shown in the main details block
func resourceNamespace(node *GraphNode) string {
	if ns := AggregateNamespaces(node); ns != "" {
		return ns
	}
	if ns := rawString(node, "metadata", "namespace"); ns != "" {
		return ns
	}
	return "N/A"
}
