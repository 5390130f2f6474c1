package app

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/renato0307/apptopo/internal/commands"
	"github.com/renato0307/apptopo/internal/components"
	"github.com/renato0307/apptopo/internal/k8s"
	"github.com/renato0307/apptopo/internal/logging"
	"github.com/renato0307/apptopo/internal/messages"
	"github.com/renato0307/apptopo/internal/modals"
	"github.com/renato0307/apptopo/internal/screens"
	"github.com/renato0307/apptopo/internal/topology"
	"github.com/renato0307/apptopo/internal/types"
	"github.com/renato0307/apptopo/internal/ui"
	"github.com/renato0307/apptopo/internal/viewstate"
)

const appName = "apptopo"

// statusFilters are the resource status options cycled by the status key
var statusFilters = []topology.FilterValue{
	{Label: string(topology.PulseGreen)},
	{Label: string(topology.PulseYellow)},
	{Label: string(topology.PulseRed)},
	{Label: string(topology.PulseOrange)},
}

type Model struct {
	ctx   *types.AppContext
	state types.AppState
	view  viewstate.State

	topology   *screens.TopologyScreen
	help       *screens.HelpScreen
	showHelp   bool
	fullScreen *components.FullScreen
	picker     *modals.FilterPickerModal

	header      *components.Header
	layout      *components.Layout
	filterBar   *components.FilterBar
	userMessage *components.UserMessage

	fetchStarted time.Time
	log          *logging.Logger
}

func NewModel(ctx *types.AppContext) Model {
	theme := ctx.Theme

	header := components.NewHeader(appName, theme)
	header.SetSource(ctx.Repo.Describe())
	header.SetWidth(80)

	filterBar := components.NewFilterBar(theme)
	filterBar.SetWidth(80)

	userMessage := components.NewUserMessage(theme)
	userMessage.SetWidth(80)

	layout := components.NewLayout(80, 24, theme)

	topo := screens.NewTopologyScreen(theme, ctx.Keys)
	topo.SetSize(80, layout.CalculateBodyHeight())

	help := screens.NewHelpScreen(theme, ctx.Keys)
	help.SetSize(80, layout.CalculateBodyHeight())

	m := Model{
		ctx:         ctx,
		state:       types.AppState{Width: 80, Height: 24},
		view:        seedFilters(viewstate.InitialState(), ctx.Namespaces, ctx.Clusters),
		topology:    topo,
		help:        help,
		header:      header,
		layout:      layout,
		filterBar:   filterBar,
		userMessage: userMessage,
		log:         logging.Component("app"),
	}
	m.topology.SetState(m.view)
	m.filterBar.SetActiveFilters(m.view.ActiveFilters)
	m.header.SetStatus(string(m.view.Status))
	return m
}

// seedFilters applies the configured namespaces and clusters. An empty
// namespace list drops the initial namespace filter so every instance shows.
func seedFilters(state viewstate.State, namespaces, clusters []string) viewstate.State {
	ns := make([]topology.FilterValue, 0, len(namespaces))
	for _, n := range namespaces {
		ns = append(ns, topology.FilterValue{Label: n})
	}
	state = viewstate.Reduce(state, viewstate.FilterUpdateMsg{FilterType: topology.FilterNamespace, Filters: ns})

	if len(clusters) > 0 {
		cl := make([]topology.FilterValue, 0, len(clusters))
		for _, c := range clusters {
			cl = append(cl, topology.FilterValue{Label: c, FilterValues: []string{c}})
		}
		state = viewstate.Reduce(state, viewstate.FilterUpdateMsg{FilterType: topology.FilterCluster, Filters: cl})
	}
	return state
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.refreshCmd(), m.filtersCmd()}
	if m.ctx.RefreshInterval > 0 {
		cmds = append(cmds, tickCmd(m.ctx.RefreshInterval))
	}
	return tea.Batch(cmds...)
}

func msgCmd(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg { return types.RefreshTickMsg(t) })
}

// refreshCmd marks a fetch as started, then fetches the topology
func (m Model) refreshCmd() tea.Cmd {
	return tea.Sequence(
		msgCmd(viewstate.FetchStartMsg{ResourceType: viewstate.TopologyResource}),
		fetchTopology(m.ctx.Repo, m.ctx.FetchTimeout),
	)
}

func (m Model) filtersCmd() tea.Cmd {
	return tea.Sequence(
		msgCmd(viewstate.FiltersRequestMsg{}),
		fetchFilters(m.ctx.Repo, m.ctx.FetchTimeout),
	)
}

// fetchTopology loads the graph. A failed fetch still carries whatever the
// repository collected.
func fetchTopology(repo k8s.Repository, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		graph, err := repo.GetTopology(ctx)
		if err != nil {
			return viewstate.FetchFailureMsg{
				ResourceType: viewstate.TopologyResource,
				Nodes:        graph.Nodes,
				Links:        graph.Links,
				Err:          err,
			}
		}
		return viewstate.FetchSuccessMsg{
			ResourceType: viewstate.TopologyResource,
			Nodes:        graph.Nodes,
			Links:        graph.Links,
		}
	}
}

func fetchFilters(repo k8s.Repository, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		options, err := repo.GetFilterOptions(ctx)
		if err != nil {
			return viewstate.FiltersErrorMsg{Err: err}
		}
		return options
	}
}

// setStatus shows a message; everything but loading messages clears itself
func (m *Model) setStatus(msg types.StatusMsg) tea.Cmd {
	id := m.userMessage.SetMessage(msg.Message, msg.Type)
	if msg.Type == ui.MessageTypeLoading {
		return m.userMessage.GetSpinnerCmd()
	}
	return tea.Tick(components.StatusBarDisplayDuration, func(time.Time) tea.Msg {
		return types.ClearStatusMsg{MessageID: id}
	})
}

// reduce folds a view state event in and pushes the new state to the screens
func (m *Model) reduce(msg tea.Msg) tea.Cmd {
	previous := m.view.Status
	m.view = viewstate.Reduce(m.view, msg)

	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case viewstate.FetchStartMsg:
		m.fetchStarted = time.Now()

	case viewstate.FetchSuccessMsg:
		now := time.Now()
		m.state.LastRefresh = now
		m.state.RefreshTime = now.Sub(m.fetchStarted)
		m.header.SetLastRefresh(now)
		m.log.Info("topology loaded", "nodes", len(msg.Nodes), "links", len(msg.Links), "duration", m.state.RefreshTime)
		if m.userMessage.IsLoadingMessage() {
			m.userMessage.ClearMessage()
		}
		if previous == viewstate.StatusError {
			cmds = append(cmds, messages.SuccessCmd("Topology reloaded (%d nodes)", len(msg.Nodes)))
		}

	case viewstate.FetchFailureMsg:
		err := messages.WrapError(msg.Err, "failed to load %s", m.ctx.Repo.Describe())
		m.log.Error("topology fetch failed", "error", err, "partial_nodes", len(msg.Nodes))
		cmds = append(cmds, m.setStatus(types.ErrorStatusMsg(fmt.Sprintf("Failed to load topology: %v", msg.Err))))

	case viewstate.FiltersErrorMsg:
		m.log.Warn("filter options fetch failed", "error", msg.Err)
		cmds = append(cmds, m.setStatus(types.ErrorStatusMsg(fmt.Sprintf("Failed to load filters: %v", msg.Err))))
	}

	m.header.SetStatus(string(m.view.Status))
	m.header.SetItemCount(len(m.view.Nodes))
	m.filterBar.SetActiveFilters(m.view.ActiveFilters)
	cmds = append(cmds, m.topology.SetState(m.view))
	return tea.Batch(cmds...)
}

// nextFilter steps a single-option filter through options and back to none
func nextFilter(options, active []topology.FilterValue) []topology.FilterValue {
	if len(options) == 0 {
		return []topology.FilterValue{}
	}
	if len(active) == 0 {
		return options[:1]
	}
	for i, o := range options {
		if o.Label == active[0].Label {
			if i+1 < len(options) {
				return options[i+1 : i+2]
			}
			return []topology.FilterValue{}
		}
	}
	return options[:1]
}

func (m *Model) cycleFilter(category string, options []topology.FilterValue) tea.Cmd {
	next := nextFilter(options, m.view.ActiveFilters[category])
	cmd := m.reduce(viewstate.FilterUpdateMsg{FilterType: category, Filters: next})
	if len(next) == 0 {
		return tea.Batch(cmd, m.setStatus(types.InfoMsg(category+" filter cleared")))
	}
	return tea.Batch(cmd, m.setStatus(types.InfoMsg(category+" filter: "+next[0].Label)))
}

func (m *Model) clearFilters() tea.Cmd {
	var cmds []tea.Cmd
	for _, category := range []string{
		topology.FilterNamespace, topology.FilterCluster, topology.FilterLabel, topology.FilterResourceStatuses,
	} {
		cmds = append(cmds, m.reduce(viewstate.FilterUpdateMsg{FilterType: category, Filters: []topology.FilterValue{}}))
	}
	cmds = append(cmds, m.setStatus(types.InfoMsg("Filters cleared")))
	return tea.Batch(cmds...)
}

func (m *Model) resize(width, height int) {
	m.state.Width = width
	m.state.Height = height
	m.layout.SetSize(width, height)
	m.header.SetWidth(width)
	m.filterBar.SetWidth(width)
	m.userMessage.SetWidth(width)

	body := m.layout.CalculateBodyHeight()
	m.topology.SetSize(width, body)
	m.help.SetSize(width, body)
	if m.fullScreen != nil {
		m.fullScreen.SetSize(width, height)
	}
	if m.picker != nil {
		m.picker.SetSize(width, body)
	}
}

func (m *Model) openPicker(category string, options []topology.FilterValue) tea.Cmd {
	if len(options) == 0 {
		return m.setStatus(types.InfoMsg("No " + category + " options loaded yet"))
	}
	m.picker = modals.NewFilterPickerModal(category, options, m.view.ActiveFilters[category], m.ctx.Theme)
	m.picker.SetSize(m.state.Width, m.layout.CalculateBodyHeight())
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case viewstate.ResetMsg, viewstate.FetchStartMsg, viewstate.FetchSuccessMsg, viewstate.FetchFailureMsg,
		viewstate.FiltersRequestMsg, viewstate.FiltersSuccessMsg, viewstate.FiltersErrorMsg,
		viewstate.FilterUpdateMsg, viewstate.SelectionUpdateMsg:
		return m, m.reduce(msg)

	case types.RefreshTickMsg:
		cmds := []tea.Cmd{tickCmd(m.ctx.RefreshInterval)}
		if m.view.Status != viewstate.StatusInProgress {
			cmds = append(cmds, m.refreshCmd())
		}
		return m, tea.Batch(cmds...)

	case types.StatusMsg:
		return m, m.setStatus(msg)

	case types.ClearStatusMsg:
		if msg.MessageID == m.userMessage.ID() {
			m.userMessage.ClearMessage()
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.userMessage, cmd = m.userMessage.Update(msg)
		return m, cmd

	case types.TextFilterMsg:
		_, cmd := m.topology.Update(msg)
		return m, cmd

	case types.LinkActivatedMsg:
		cmd := commands.ExecuteLink(m.ctx.Repo, msg.Link, m.ctx.FetchTimeout)
		if msg.Link.Data.Action == topology.ActionShowYAML {
			return m, tea.Batch(m.setStatus(types.LoadingMsg("Loading "+commands.YAMLTitle(msg.Link.Data))), cmd)
		}
		return m, cmd

	case types.ShowFullScreenMsg:
		m.fullScreen = components.NewFullScreen(msg.Title, msg.Content, m.ctx.Theme)
		m.fullScreen.SetSize(m.state.Width, m.state.Height)
		if m.userMessage.IsLoadingMessage() {
			m.userMessage.ClearMessage()
		}
		return m, nil

	case types.ExitFullScreenMsg:
		m.fullScreen = nil
		return m, nil

	case modals.CloseMsg:
		m.picker = nil
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.ctx.Keys
	key := msg.String()

	if key == keys.Quit {
		return m, tea.Quit
	}

	if m.fullScreen != nil {
		switch key {
		case keys.Back, "q":
			return m, msgCmd(types.ExitFullScreenMsg{})
		case keys.CopyDetails:
			return m, commands.CopyText(m.fullScreen.Content(), "YAML of "+m.fullScreen.Title()+" copied to clipboard")
		}
		var cmd tea.Cmd
		m.fullScreen, cmd = m.fullScreen.Update(msg)
		return m, cmd
	}

	if m.picker != nil {
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd
	}

	if m.showHelp {
		switch key {
		case keys.Back, keys.Help, "q":
			m.showHelp = false
		}
		return m, nil
	}

	if m.filterBar.Editing() {
		var cmd tea.Cmd
		m.filterBar, cmd = m.filterBar.Update(msg)
		return m, cmd
	}

	switch key {
	case "q":
		return m, tea.Quit
	case keys.FilterActivate:
		return m, m.filterBar.Start()
	case keys.Back:
		if m.filterBar.Value() != "" {
			return m, m.filterBar.Clear()
		}
		return m, nil
	case keys.Help:
		m.showHelp = true
		return m, nil
	case keys.Refresh:
		return m, tea.Batch(m.refreshCmd(), m.filtersCmd())
	case keys.NamespaceFilter:
		return m, m.cycleFilter(topology.FilterNamespace, m.view.AvailableFilters.Namespaces)
	case keys.ClusterFilter:
		return m, m.cycleFilter(topology.FilterCluster, m.view.AvailableFilters.Clusters)
	case keys.StatusFilter:
		return m, m.cycleFilter(topology.FilterResourceStatuses, statusFilters)
	case keys.PickLabels:
		return m, m.openPicker(topology.FilterLabel, m.view.AvailableFilters.Labels)
	case keys.PickNamespaces:
		return m, m.openPicker(topology.FilterNamespace, m.view.AvailableFilters.Namespaces)
	case keys.PickClusters:
		return m, m.openPicker(topology.FilterCluster, m.view.AvailableFilters.Clusters)
	case keys.ClearFilters:
		return m, m.clearFilters()
	case keys.CopyDetails:
		return m, commands.CopyDetails(m.topology.DetailsTitle(), m.topology.Records())
	}

	_, cmd := m.topology.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.fullScreen != nil {
		return m.fullScreen.View()
	}

	body := m.topology.View()
	helpText := m.topology.HelpText()
	switch {
	case m.picker != nil:
		body = lipgloss.Place(m.state.Width, m.layout.CalculateBodyHeight(), lipgloss.Center, lipgloss.Center, m.picker.View())
		helpText = "space: toggle • enter: apply • esc: cancel"
	case m.showHelp:
		body = m.help.View()
		helpText = m.help.HelpText()
	}
	return m.layout.Render(m.header.View(), body, m.filterBar.View(), helpText, m.userMessage.View())
}
