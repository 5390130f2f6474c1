package screens

import (
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/renato0307/apptopo/internal/components"
	"github.com/renato0307/apptopo/internal/keyboard"
	"github.com/renato0307/apptopo/internal/logging"
	"github.com/renato0307/apptopo/internal/topology"
	"github.com/renato0307/apptopo/internal/types"
	"github.com/renato0307/apptopo/internal/ui"
	"github.com/renato0307/apptopo/internal/viewstate"
)

// TopologyScreen lists the graph nodes and shows the details of the selected one
type TopologyScreen struct {
	theme *ui.Theme
	keys  *keyboard.Keys

	table   table.Model
	details viewport.Model

	state    viewstate.State
	filtered []int // indexes into state.Nodes
	filter   string

	// snapshot is the node as it was when selected; the same node from
	// later fetches is passed as the refreshed copy
	snapshot   *topology.GraphNode
	records    []topology.DisplayRecord
	links      []topology.LinkValue
	linkCursor int

	width        int
	height       int
	listWidth    int
	detailsWidth int
}

func NewTopologyScreen(theme *ui.Theme, keys *keyboard.Keys) *TopologyScreen {
	t := table.New(
		table.WithColumns(columnsFor(60)),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	t.SetStyles(theme.ToTableStyles())

	return &TopologyScreen{
		theme:      theme,
		keys:       keys,
		table:      t,
		details:    viewport.New(40, 10),
		state:      viewstate.InitialState(),
		linkCursor: -1,
	}
}

func (s *TopologyScreen) ID() string    { return TopologyScreenID }
func (s *TopologyScreen) Title() string { return "Topology" }

func (s *TopologyScreen) HelpText() string {
	return "↑/↓: nodes • /: filter • tab: links • enter: open • n/f/s: filters • c: copy • ?: help • q: quit"
}

func (s *TopologyScreen) Init() tea.Cmd { return nil }

// columnsFor sizes the node table to width
func columnsFor(width int) []table.Column {
	// padding of 2 per column
	pulse, kind := 9, 14
	if width < minListWidth {
		name := max(8, width-pulse-kind-6)
		return []table.Column{
			{Title: "Name", Width: name},
			{Title: "Type", Width: kind},
			{Title: "Status", Width: pulse},
		}
	}
	clusters := 14
	rest := max(16, width-pulse-kind-clusters-10)
	name := rest * 3 / 5
	return []table.Column{
		{Title: "Name", Width: name},
		{Title: "Type", Width: kind},
		{Title: "Namespace", Width: rest - name},
		{Title: "Clusters", Width: clusters},
		{Title: "Status", Width: pulse},
	}
}

// SetSize splits the body between the node list and the details panel
func (s *TopologyScreen) SetSize(width, height int) {
	s.width = width
	s.height = height

	list, details := components.SplitWidth(width)
	s.detailsWidth = details
	s.listWidth = max(20, list)

	// rows must not have fewer cells than the new columns
	s.table.SetRows(nil)
	s.table.SetColumns(columnsFor(s.listWidth))
	s.table.SetHeight(max(3, height))
	s.table.SetWidth(s.listWidth)

	s.details.Width = s.detailsWidth - 2
	s.details.Height = max(3, height)
	s.updateTable()
	s.renderDetails()
}

// SetState shows a new view state. The returned command selects the node
// under the cursor when the state has no valid selection.
func (s *TopologyScreen) SetState(state viewstate.State) tea.Cmd {
	s.state = state
	s.applyFilter()

	if node, ok := state.SelectedNode(); ok {
		if s.snapshot == nil || s.snapshot.ID != node.ID {
			snap := *node
			s.snapshot = &snap
			s.linkCursor = -1
		}
		s.moveCursorTo(node.ID)
		s.renderDetails()
		return nil
	}

	s.snapshot = nil
	s.renderDetails()
	return s.selectCursor()
}

// SelectedNode is the node whose details are shown
func (s *TopologyScreen) SelectedNode() *topology.GraphNode { return s.snapshot }

// Records are the details of the selected node
func (s *TopologyScreen) Records() []topology.DisplayRecord { return s.records }

// Links are the actionable records in display order
func (s *TopologyScreen) Links() []topology.LinkValue { return s.links }

// LinkCursor is the selected link, -1 for none
func (s *TopologyScreen) LinkCursor() int { return s.linkCursor }

// VisibleNodes returns the ids of the nodes that pass the fuzzy filter
func (s *TopologyScreen) VisibleNodes() []string {
	ids := make([]string, 0, len(s.filtered))
	for _, i := range s.filtered {
		ids = append(ids, s.state.Nodes[i].ID)
	}
	return ids
}

// SetFilter applies a fuzzy filter to the node list; "!" negates it
func (s *TopologyScreen) SetFilter(filter string) tea.Cmd {
	s.filter = filter
	s.applyFilter()
	return s.selectCursor()
}

func searchString(node *topology.GraphNode) string {
	return strings.ToLower(strings.Join([]string{
		node.Name, FormatType(node), node.Namespace, topology.AggregateNamespaces(node),
		strings.Join(topology.TargetClusters(node), " "),
	}, " "))
}

func (s *TopologyScreen) applyFilter() {
	s.filtered = s.filtered[:0]
	if s.filter == "" {
		for i := range s.state.Nodes {
			s.filtered = append(s.filtered, i)
		}
		s.updateTable()
		return
	}

	search := make([]string, len(s.state.Nodes))
	for i := range s.state.Nodes {
		search[i] = searchString(&s.state.Nodes[i])
	}

	pattern := strings.ToLower(s.filter)
	if negated, ok := strings.CutPrefix(pattern, "!"); ok {
		matched := map[int]bool{}
		for _, m := range fuzzy.Find(negated, search) {
			matched[m.Index] = true
		}
		for i := range s.state.Nodes {
			if !matched[i] {
				s.filtered = append(s.filtered, i)
			}
		}
	} else {
		for _, m := range fuzzy.Find(pattern, search) {
			s.filtered = append(s.filtered, m.Index)
		}
	}
	s.updateTable()
}

func (s *TopologyScreen) updateTable() {
	withNamespace := len(s.table.Columns()) == 5
	rows := make([]table.Row, 0, len(s.filtered))
	for _, i := range s.filtered {
		node := &s.state.Nodes[i]
		name := node.Name
		if name == "" {
			name = node.ID
		}
		if withNamespace {
			ns := topology.AggregateNamespaces(node)
			if ns == "" {
				ns = node.Namespace
			}
			rows = append(rows, table.Row{name, FormatType(node), ns, FormatClusters(node), FormatPulse(node.Specs.Pulse)})
		} else {
			rows = append(rows, table.Row{name, FormatType(node), FormatPulse(node.Specs.Pulse)})
		}
	}
	s.table.SetRows(rows)

	if len(rows) > 0 && (s.table.Cursor() < 0 || s.table.Cursor() >= len(rows)) {
		s.table.SetCursor(0)
	}
}

func (s *TopologyScreen) moveCursorTo(id string) {
	for row, i := range s.filtered {
		if s.state.Nodes[i].ID == id {
			s.table.SetCursor(row)
			return
		}
	}
}

// cursorNode is the node on the highlighted row
func (s *TopologyScreen) cursorNode() *topology.GraphNode {
	row := s.table.Cursor()
	if row < 0 || row >= len(s.filtered) {
		return nil
	}
	return &s.state.Nodes[s.filtered[row]]
}

// selectCursor asks for the node under the cursor to become the selection
func (s *TopologyScreen) selectCursor() tea.Cmd {
	node := s.cursorNode()
	id := ""
	if node != nil {
		id = node.ID
	}
	if id == s.state.SelectedNodeID {
		return nil
	}
	return func() tea.Msg { return viewstate.SelectionUpdateMsg{SelectedNodeID: id} }
}

func (s *TopologyScreen) renderDetails() {
	if s.snapshot == nil {
		s.records = nil
		s.links = nil
		s.details.SetContent(lipgloss.NewStyle().Foreground(s.theme.Muted).Render("No node selected"))
		return
	}

	var fresh *topology.GraphNode
	if node, ok := s.state.Node(s.snapshot.ID); ok {
		fresh = node
	}
	s.records = logging.TimeWithResult("build details", func() []topology.DisplayRecord {
		return topology.BuildDetails(s.snapshot, fresh, s.state.ActiveFilters)
	})

	s.links = s.links[:0]
	for _, r := range s.records {
		if r.Type == topology.RecordLink && r.Link != nil {
			s.links = append(s.links, *r.Link)
		}
	}
	if s.linkCursor >= len(s.links) {
		s.linkCursor = len(s.links) - 1
	}

	title := s.theme.Header.Render(s.DetailsTitle())
	body := ui.RenderRecords(s.records, s.theme, s.details.Width, s.linkCursor)
	s.details.SetContent(title + "\n" + body)
}

// DetailsTitle names the selected node, e.g. "Deployment web"
func (s *TopologyScreen) DetailsTitle() string {
	if s.snapshot == nil {
		return ""
	}
	return topology.KindName(FormatType(s.snapshot)) + " " + s.snapshot.Name
}

func (s *TopologyScreen) moveLink(delta int) {
	if len(s.links) == 0 {
		s.linkCursor = -1
		return
	}
	s.linkCursor = (s.linkCursor + delta + len(s.links)) % len(s.links)
	s.renderDetails()
}

func (s *TopologyScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case types.TextFilterMsg:
		return s, s.SetFilter(msg.Filter)

	case tea.KeyMsg:
		switch msg.String() {
		case s.keys.NextLink:
			s.moveLink(1)
			return s, nil
		case s.keys.PrevLink:
			if s.linkCursor < 0 {
				s.linkCursor = 0
			}
			s.moveLink(-1)
			return s, nil
		case s.keys.ActivateLink:
			if s.linkCursor < 0 || s.linkCursor >= len(s.links) {
				return s, nil
			}
			link := s.links[s.linkCursor]
			return s, func() tea.Msg { return types.LinkActivatedMsg{Link: link} }
		case s.keys.ScrollUp:
			s.details.HalfPageUp()
			return s, nil
		case s.keys.ScrollDown:
			s.details.HalfPageDown()
			return s, nil
		case s.keys.JumpTop:
			s.table.GotoTop()
			return s, s.selectCursor()
		case s.keys.JumpBottom:
			s.table.GotoBottom()
			return s, s.selectCursor()
		}

		var cmd tea.Cmd
		s.table, cmd = s.table.Update(msg)
		return s, tea.Batch(cmd, s.selectCursor())
	}
	return s, nil
}

func (s *TopologyScreen) View() string {
	if len(s.state.Nodes) == 0 {
		text := "No topology loaded"
		if s.state.Status == viewstate.StatusInProgress {
			text = "Loading topology..."
		}
		return lipgloss.Place(s.width, s.height, lipgloss.Center, lipgloss.Center,
			lipgloss.NewStyle().Foreground(s.theme.Muted).Bold(true).Render(text))
	}

	list := lipgloss.NewStyle().Width(s.listWidth).Render(s.table.View())
	details := lipgloss.NewStyle().
		Width(s.detailsWidth - 1).
		BorderStyle(lipgloss.NormalBorder()).
		BorderLeft(true).
		BorderForeground(s.theme.Border).
		PaddingLeft(1).
		Render(s.details.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, list, details)
}
