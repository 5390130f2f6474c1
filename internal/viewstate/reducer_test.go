package viewstate

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/apptopo/internal/topology"
)

func sampleNodes() []topology.GraphNode {
	return []topology.GraphNode{
		{ID: "application--shop", Name: "shop", Type: topology.TypeApplication},
		{ID: "member--deployment--web", Name: "web", Type: "deployment"},
	}
}

func TestInitialState(t *testing.T) {
	state := InitialState()

	assert.Equal(t, StatusInception, state.Status)
	assert.Equal(t, topology.ActiveFilters{
		topology.FilterNamespace: {{Label: "default"}},
	}, state.ActiveFilters)
	assert.Empty(t, state.Nodes)
	assert.Empty(t, state.Links)
	assert.Empty(t, state.SelectedNodeID)
}

func TestReduce_UnknownMessage(t *testing.T) {
	state := Reduce(InitialState(), FetchSuccessMsg{ResourceType: TopologyResource, Nodes: sampleNodes()})

	tests := []struct {
		name string
		msg  tea.Msg
	}{
		{"foreign message", tea.WindowSizeMsg{Width: 80, Height: 24}},
		{"nil message", nil},
		{"fetch for another resource", FetchStartMsg{ResourceType: "HCM_APPLICATIONS"}},
		{"success for another resource", FetchSuccessMsg{ResourceType: "HCM_APPLICATIONS"}},
		{"failure for another resource", FetchFailureMsg{ResourceType: "HCM_APPLICATIONS", Err: errors.New("boom")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, state, Reduce(state, tt.msg))
		})
	}
}

func TestReduce_FetchLifecycle(t *testing.T) {
	state := Reduce(InitialState(), FetchStartMsg{ResourceType: TopologyResource})
	assert.Equal(t, StatusInProgress, state.Status)

	links := []topology.Link{{From: "application--shop", To: "member--deployment--web"}}
	state = Reduce(state, FetchSuccessMsg{ResourceType: TopologyResource, Nodes: sampleNodes(), Links: links})
	assert.Equal(t, StatusDone, state.Status)
	assert.Len(t, state.Nodes, 2)
	assert.Equal(t, links, state.Links)

	fetchErr := errors.New("hub unreachable")
	partial := sampleNodes()[:1]
	state = Reduce(state, FetchFailureMsg{ResourceType: TopologyResource, Nodes: partial, Err: fetchErr})
	assert.Equal(t, StatusError, state.Status)
	assert.Equal(t, partial, state.Nodes)
	assert.Equal(t, links, state.Links)
	assert.ErrorIs(t, state.Err, fetchErr)
}

func TestReduce_Reset(t *testing.T) {
	state := Reduce(InitialState(), FetchSuccessMsg{ResourceType: TopologyResource, Nodes: sampleNodes()})
	state = Reduce(state, SelectionUpdateMsg{SelectedNodeID: "application--shop"})

	assert.Equal(t, InitialState(), Reduce(state, ResetMsg{}))
}

func TestReduce_FilterUpdateReplacesCategory(t *testing.T) {
	before := InitialState()
	state := Reduce(before, FilterUpdateMsg{
		FilterType: topology.FilterNamespace,
		Filters:    []topology.FilterValue{{Label: "prod"}},
	})

	assert.Equal(t, []topology.FilterValue{{Label: "prod"}}, state.ActiveFilters[topology.FilterNamespace])
	// the previous state's map is untouched
	assert.Equal(t, []topology.FilterValue{{Label: "default"}}, before.ActiveFilters[topology.FilterNamespace])

	state = Reduce(state, FilterUpdateMsg{
		FilterType: topology.FilterCluster,
		Filters:    []topology.FilterValue{{Label: "name: east", FilterValues: []string{"east"}}},
	})
	assert.Len(t, state.ActiveFilters, 2)
	assert.Equal(t, []topology.FilterValue{{Label: "prod"}}, state.ActiveFilters[topology.FilterNamespace])
}

func TestReduce_Filters(t *testing.T) {
	state := Reduce(InitialState(), FiltersRequestMsg{})
	assert.Equal(t, StatusInProgress, state.FiltersStatus)
	assert.Equal(t, StatusInception, state.Status)

	state = Reduce(state, FiltersSuccessMsg{
		Clusters: []ClusterInfo{
			{ClusterName: "east", Labels: map[string]string{"region": "eu", "env": "prod"}},
			{ClusterName: "west", Labels: map[string]string{"env": "prod"}},
		},
		Labels: []LabelInfo{
			{Name: "app", Value: "shop"},
			{Name: "app", Value: "shop"},
			{Name: "tier", Value: "web"},
		},
		Namespaces: []NamespaceInfo{{Name: "shop"}, {Name: "default"}, {Name: "shop"}},
		Types:      []string{"deployment", "service", "deployment"},
	})

	assert.Equal(t, StatusDone, state.FiltersStatus)
	assert.Equal(t, []topology.FilterValue{
		{Label: "name: east", FilterValues: []string{"east"}},
		{Label: "env: prod", FilterValues: []string{"east", "west"}},
		{Label: "region: eu", FilterValues: []string{"east"}},
		{Label: "name: west", FilterValues: []string{"west"}},
	}, state.AvailableFilters.Clusters)
	assert.Equal(t, []topology.FilterValue{
		{Label: "app: shop", Name: "app", Value: "shop"},
		{Label: "tier: web", Name: "tier", Value: "web"},
	}, state.AvailableFilters.Labels)
	assert.Equal(t, []topology.FilterValue{{Label: "shop"}, {Label: "default"}}, state.AvailableFilters.Namespaces)
	assert.Equal(t, []topology.FilterValue{{Label: "deployment"}, {Label: "service"}}, state.AvailableFilters.Types)
}

func TestReduce_FiltersError(t *testing.T) {
	filtersErr := errors.New("search unavailable")
	state := Reduce(InitialState(), FiltersErrorMsg{Err: filtersErr})

	assert.Equal(t, StatusError, state.Status)
	assert.ErrorIs(t, state.Err, filtersErr)
}

func TestState_SelectedNode(t *testing.T) {
	state := Reduce(InitialState(), FetchSuccessMsg{ResourceType: TopologyResource, Nodes: sampleNodes()})

	_, ok := state.SelectedNode()
	assert.False(t, ok)

	state = Reduce(state, SelectionUpdateMsg{SelectedNodeID: "member--deployment--web"})
	node, ok := state.SelectedNode()
	require.True(t, ok)
	assert.Equal(t, "web", node.Name)

	state = Reduce(state, SelectionUpdateMsg{SelectedNodeID: "missing"})
	_, ok = state.SelectedNode()
	assert.False(t, ok)
}
