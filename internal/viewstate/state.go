package viewstate

import (
	"github.com/renato0307/apptopo/internal/topology"
)

// Status is the lifecycle of a fetch
type Status string

const (
	StatusInception  Status = "INCEPTION"
	StatusInProgress Status = "IN_PROGRESS"
	StatusDone       Status = "DONE"
	StatusError      Status = "ERROR"
)

// DefaultNamespace is the namespace filter active before the user picks one
const DefaultNamespace = "default"

// AvailableFilters are the options offered in each filter category
type AvailableFilters struct {
	Clusters   []topology.FilterValue
	Labels     []topology.FilterValue
	Namespaces []topology.FilterValue
	Types      []topology.FilterValue
}

// State is the topology view state shared by the console screens
type State struct {
	AvailableFilters AvailableFilters
	ActiveFilters    topology.ActiveFilters
	Nodes            []topology.GraphNode
	Links            []topology.Link
	SelectedNodeID   string
	Status           Status
	FiltersStatus    Status
	Err              error
}

// InitialState is the state before any fetch
func InitialState() State {
	return State{
		AvailableFilters: AvailableFilters{
			Clusters:   []topology.FilterValue{},
			Labels:     []topology.FilterValue{},
			Namespaces: []topology.FilterValue{},
			Types:      []topology.FilterValue{},
		},
		ActiveFilters: topology.ActiveFilters{
			topology.FilterNamespace: {{Label: DefaultNamespace}},
		},
		Nodes:         []topology.GraphNode{},
		Links:         []topology.Link{},
		Status:        StatusInception,
		FiltersStatus: StatusInception,
	}
}

// SelectedNode returns the node matching SelectedNodeID
func (s State) SelectedNode() (*topology.GraphNode, bool) {
	return s.Node(s.SelectedNodeID)
}

// Node looks a node up by id
func (s State) Node(id string) (*topology.GraphNode, bool) {
	if id == "" {
		return nil, false
	}
	for i := range s.Nodes {
		if s.Nodes[i].ID == id {
			return &s.Nodes[i], true
		}
	}
	return nil, false
}
