package ports

// Clipboard defines the interface for writing text to the system clipboard
type Clipboard interface {
	WriteText(text string) error
}
