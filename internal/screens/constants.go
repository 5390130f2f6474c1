package screens

const (
	// TopologyScreenID is the main screen
	TopologyScreenID = "topology"

	// HelpScreenID is the keyboard shortcut reference
	HelpScreenID = "help"

	// minListWidth hides the namespace column below it
	minListWidth = 48
)
