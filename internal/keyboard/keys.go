package keyboard

// Keys holds all keyboard shortcut configurations for apptopo
type Keys struct {
	// Node list
	FilterActivate string // Start typing a fuzzy filter
	Up             string
	Down           string
	JumpTop        string
	JumpBottom     string

	// Details panel
	NextLink     string // Move the link cursor forward
	PrevLink     string // Move the link cursor back
	ActivateLink string // Run the selected link
	ScrollUp     string // Scroll the details panel
	ScrollDown   string
	CopyDetails  string // Copy the details as text

	// Filters
	NamespaceFilter string // Cycle the namespace filter
	ClusterFilter   string // Cycle the cluster filter
	StatusFilter    string // Cycle the resource status filter
	PickLabels      string // Open the label picker
	PickNamespaces  string
	PickClusters    string
	ClearFilters    string

	// Global
	Quit    string
	Refresh string
	Back    string // Back/clear filter
	Help    string
}

// Default returns the default keyboard configuration
func Default() *Keys {
	return &Keys{
		FilterActivate: "/",
		Up:             "k",
		Down:           "j",
		JumpTop:        "g",
		JumpBottom:     "G",

		NextLink:     "tab",
		PrevLink:     "shift+tab",
		ActivateLink: "enter",
		ScrollUp:     "ctrl+u",
		ScrollDown:   "ctrl+d",
		CopyDetails:  "c",

		NamespaceFilter: "n",
		ClusterFilter:   "f",
		StatusFilter:    "s",
		PickLabels:      "l",
		PickNamespaces:  "N",
		PickClusters:    "F",
		ClearFilters:    "x",

		Quit:    "ctrl+c",
		Refresh: "ctrl+r",
		Back:    "esc",
		Help:    "?",
	}
}

// GetKeys returns the current keyboard configuration
func GetKeys() *Keys {
	return Default()
}

// Binding is one row of the help screen
type Binding struct {
	Key         string
	Description string
}

// Bindings lists the shortcuts grouped for the help screen
func (k *Keys) Bindings() map[string][]Binding {
	return map[string][]Binding{
		"Nodes": {
			{k.Up + "/" + k.Down, "move selection"},
			{k.JumpTop + "/" + k.JumpBottom, "first/last node"},
			{k.FilterActivate, "fuzzy filter (prefix ! to negate)"},
		},
		"Details": {
			{k.NextLink + "/" + k.PrevLink, "select link"},
			{k.ActivateLink, "run selected link"},
			{k.ScrollUp + "/" + k.ScrollDown, "scroll details"},
			{k.CopyDetails, "copy details to clipboard"},
		},
		"Filters": {
			{k.NamespaceFilter, "cycle namespace"},
			{k.ClusterFilter, "cycle cluster"},
			{k.StatusFilter, "cycle resource status"},
			{k.PickLabels, "pick labels"},
			{k.PickNamespaces + "/" + k.PickClusters, "pick namespaces/clusters"},
			{k.ClearFilters, "clear filters"},
		},
		"Global": {
			{k.Refresh, "refresh"},
			{k.Help, "help"},
			{k.Back, "back"},
			{k.Quit + "/q", "quit"},
		},
	}
}
