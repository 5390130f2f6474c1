package viewstate

import (
	"github.com/renato0307/apptopo/internal/topology"
)

// TopologyResource tags fetch events that carry the application topology.
// Fetch events for any other resource type leave the state untouched.
const TopologyResource = "HCM_TOPOLOGY"

// ResetMsg restores the initial state
type ResetMsg struct{}

// FetchStartMsg marks the start of a topology fetch
type FetchStartMsg struct {
	ResourceType string
}

// FetchSuccessMsg carries a complete topology
type FetchSuccessMsg struct {
	ResourceType string
	Nodes        []topology.GraphNode
	Links        []topology.Link
}

// FetchFailureMsg carries the error and whatever partial topology was collected
type FetchFailureMsg struct {
	ResourceType string
	Nodes        []topology.GraphNode
	Links        []topology.Link
	Err          error
}

// ClusterInfo is a managed cluster offered as a filter option
type ClusterInfo struct {
	ClusterName string            `json:"ClusterName"`
	Labels      map[string]string `json:"labels,omitempty"`
}

// LabelInfo is a label offered as a filter option
type LabelInfo struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// NamespaceInfo is a namespace offered as a filter option
type NamespaceInfo struct {
	Name string `json:"name"`
}

// FiltersRequestMsg marks the start of a filter options fetch
type FiltersRequestMsg struct{}

// FiltersSuccessMsg carries the raw filter options
type FiltersSuccessMsg struct {
	Clusters   []ClusterInfo
	Labels     []LabelInfo
	Namespaces []NamespaceInfo
	Types      []string
}

// FiltersErrorMsg reports a failed filter options fetch
type FiltersErrorMsg struct {
	Err error
}

// FilterUpdateMsg replaces the active options of one filter category
type FilterUpdateMsg struct {
	FilterType string
	Filters    []topology.FilterValue
}

// SelectionUpdateMsg selects a node
type SelectionUpdateMsg struct {
	SelectedNodeID string
}
