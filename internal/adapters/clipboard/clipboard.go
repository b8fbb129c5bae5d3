package clipboard

import (
	"fmt"

	"github.com/atotto/clipboard"

	"fragments/internal/ports"
)

// System implements ports.Clipboard with the OS clipboard
type System struct{}

// Ensure System implements Clipboard
var _ ports.Clipboard = System{}

// NewSystem returns the OS clipboard, or nil when no clipboard utility
// is available (e.g. a headless Linux box without xclip/xsel/wl-copy).
func NewSystem() ports.Clipboard {
	if clipboard.Unsupported {
		return nil
	}
	return System{}
}

// WriteText replaces the clipboard content
func (System) WriteText(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("clipboard: %w", err)
	}
	return nil
}
