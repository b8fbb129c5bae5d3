package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	Primary   = lipgloss.Color("#7C3AED") // Purple
	Secondary = lipgloss.Color("#10B981") // Green
	Muted     = lipgloss.Color("#6B7280") // Gray
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Error     = lipgloss.Color("#EF4444") // Red
	White     = lipgloss.Color("#FFFFFF")
	Black     = lipgloss.Color("#000000")

	// Tag chip palette, picked by tag ID
	tagPalette = []lipgloss.Color{
		lipgloss.Color("#6366F1"), // Indigo
		lipgloss.Color("#EC4899"), // Pink
		lipgloss.Color("#F97316"), // Orange
		lipgloss.Color("#0EA5E9"), // Sky
		lipgloss.Color("#84CC16"), // Lime
		lipgloss.Color("#A855F7"), // Violet
	}

	// Base styles
	App = lipgloss.NewStyle().
		Padding(1, 2)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	// List rows
	Row = lipgloss.NewStyle()

	RowSelected = lipgloss.NewStyle().
			Background(Primary).
			Foreground(White).
			Bold(true)

	Cursor = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	// Tags
	TagChip = lipgloss.NewStyle().
		Foreground(White).
		Padding(0, 1)

	// Stale references to deleted tags
	TagStale = lipgloss.NewStyle().
			Foreground(Muted).
			Strikethrough(true).
			Padding(0, 1)

	// Code view
	CodeBox = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Muted).
		Padding(0, 1)

	CodeMeta = lipgloss.NewStyle().
			Foreground(Secondary)

	// Status bar
	StatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("#1F2937")).
			Foreground(White).
			Padding(0, 1)

	StatusText = lipgloss.NewStyle().
			Foreground(Muted)

	// Input styles
	InputLabel = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	InputField = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(0, 1)

	InputFocused = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Secondary).
			Padding(0, 1)

	// Help styles
	HelpKey = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	HelpDesc = lipgloss.NewStyle().
			Foreground(Muted)

	HelpSeparator = lipgloss.NewStyle().
			Foreground(Muted).
			SetString(" • ")

	// Message styles
	Success = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)

	ErrorMsg = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	WarningMsg = lipgloss.NewStyle().
			Foreground(Warning)

	// Muted text style (for using Muted color as a style)
	MutedText = lipgloss.NewStyle().
			Foreground(Muted)
)

// TagColor returns a stable color for a tag ID
func TagColor(tagID string) lipgloss.Color {
	var sum int
	for _, r := range tagID {
		sum += int(r)
	}
	return tagPalette[sum%len(tagPalette)]
}

// Tag renders a tag chip. Stale references are rendered struck through.
func Tag(tagID, name string, stale bool) string {
	if stale {
		return TagStale.Render(name)
	}
	return TagChip.Background(TagColor(tagID)).Render(name)
}
