package viewstate

import (
	"sort"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/renato0307/apptopo/internal/topology"
)

// Reduce returns the state that follows msg. It never mutates state; messages
// it does not handle return state as is.
func Reduce(state State, msg tea.Msg) State {
	switch msg := msg.(type) {
	case ResetMsg:
		return InitialState()

	case FetchStartMsg:
		if msg.ResourceType != TopologyResource {
			return state
		}
		state.Status = StatusInProgress
		return state

	case FetchSuccessMsg:
		if msg.ResourceType != TopologyResource {
			return state
		}
		state.Status = StatusDone
		state.Nodes = msg.Nodes
		state.Links = msg.Links
		state.Err = nil
		return state

	case FetchFailureMsg:
		if msg.ResourceType != TopologyResource {
			return state
		}
		state.Status = StatusError
		state.Err = msg.Err
		if msg.Nodes != nil {
			state.Nodes = msg.Nodes
		}
		if msg.Links != nil {
			state.Links = msg.Links
		}
		return state

	case FiltersRequestMsg:
		state.FiltersStatus = StatusInProgress
		return state

	case FiltersErrorMsg:
		state.Status = StatusError
		state.Err = msg.Err
		return state

	case FiltersSuccessMsg:
		state.AvailableFilters = AvailableFilters{
			Clusters:   clusterFilters(msg.Clusters),
			Labels:     labelFilters(msg.Labels),
			Namespaces: namespaceFilters(msg.Namespaces),
			Types:      typeFilters(msg.Types),
		}
		state.FiltersStatus = StatusDone
		return state

	case FilterUpdateMsg:
		active := make(topology.ActiveFilters, len(state.ActiveFilters)+1)
		for category, values := range state.ActiveFilters {
			active[category] = values
		}
		active[msg.FilterType] = append([]topology.FilterValue(nil), msg.Filters...)
		state.ActiveFilters = active
		return state

	case SelectionUpdateMsg:
		state.SelectedNodeID = msg.SelectedNodeID
		return state
	}
	return state
}

// clusterFilters folds each cluster name and every cluster label into filter
// options. Options with the same label text collect all their clusters.
func clusterFilters(clusters []ClusterInfo) []topology.FilterValue {
	out := []topology.FilterValue{}
	index := map[string]int{}
	add := func(label, cluster string) {
		if i, ok := index[label]; ok {
			out[i].FilterValues = append(out[i].FilterValues, cluster)
			return
		}
		index[label] = len(out)
		out = append(out, topology.FilterValue{Label: label, FilterValues: []string{cluster}})
	}

	for _, c := range clusters {
		add("name: "+c.ClusterName, c.ClusterName)

		keys := make([]string, 0, len(c.Labels))
		for k := range c.Labels {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			add(k+": "+c.Labels[k], c.ClusterName)
		}
	}
	return out
}

func labelFilters(labels []LabelInfo) []topology.FilterValue {
	out := []topology.FilterValue{}
	seen := map[string]bool{}
	for _, l := range labels {
		label := l.Name + ": " + l.Value
		if seen[label] {
			continue
		}
		seen[label] = true
		out = append(out, topology.FilterValue{Label: label, Name: l.Name, Value: l.Value})
	}
	return out
}

func namespaceFilters(namespaces []NamespaceInfo) []topology.FilterValue {
	out := []topology.FilterValue{}
	seen := map[string]bool{}
	for _, ns := range namespaces {
		if seen[ns.Name] {
			continue
		}
		seen[ns.Name] = true
		out = append(out, topology.FilterValue{Label: ns.Name})
	}
	return out
}

func typeFilters(types []string) []topology.FilterValue {
	out := []topology.FilterValue{}
	seen := map[string]bool{}
	for _, t := range types {
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, topology.FilterValue{Label: t})
	}
	return out
}
