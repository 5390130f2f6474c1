package components

import "time"

const (
	// FullScreenReservedLines is the chrome (title, separator, scroll info)
	// around full-screen content
	FullScreenReservedLines = 3

	// StatusBarDisplayDuration is how long a non-loading user message stays
	// on screen
	StatusBarDisplayDuration = 5 * time.Second

	// DetailsMinWidth keeps the details panel readable on narrow terminals
	DetailsMinWidth = 40
)
