package commands

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// writeClipboard is swapped out by tests
var writeClipboard = clipboard.WriteAll

// CopyToClipboard copies text to the system clipboard
func CopyToClipboard(text string) error {
	if err := writeClipboard(text); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	return nil
}
