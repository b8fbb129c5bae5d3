package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"fragments/internal/adapters/tui/styles"
)

// HelpKeyMap defines key bindings for the help view
type HelpKeyMap struct {
	Close key.Binding
}

var HelpKeys = HelpKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "?"),
		key.WithHelp("esc/q/?", "close"),
	),
}

// HelpModel is the model for the help view
type HelpModel struct {
	ViewState
	dataPath string
}

// NewHelpModel creates a new help view model. dataPath is shown so users
// know which file they are editing.
func NewHelpModel(dataPath string) *HelpModel {
	return &HelpModel{dataPath: dataPath}
}

// Init initializes the help view
func (m *HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view
func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, HelpKeys.Close) {
			return m, func() tea.Msg {
				return SwitchToListMsg{}
			}
		}
	}

	return m, nil
}

// View renders the help view
func (m *HelpModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Fragments Help"))
	b.WriteString("\n\n")

	b.WriteString(styles.InputLabel.Render("Fragment list"))
	b.WriteString("\n")
	b.WriteString(helpLine("j / k / ↑ / ↓", "Move up/down"))
	b.WriteString(helpLine("enter", "View code"))
	b.WriteString(helpLine("n", "New fragment"))
	b.WriteString(helpLine("e", "Edit title, tags and code"))
	b.WriteString(helpLine("d", "Delete fragment"))
	b.WriteString(helpLine("c", "Copy code to clipboard"))
	b.WriteString(helpLine("t", "Manage tags"))
	b.WriteString(helpLine("r", "Reload from disk"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("Fragment form"))
	b.WriteString("\n")
	b.WriteString(helpLine("tab / shift+tab", "Next / previous field"))
	b.WriteString(helpLine("ctrl+e", "Edit code in $EDITOR"))
	b.WriteString(helpLine("ctrl+s", "Save"))
	b.WriteString(helpLine("esc", "Cancel"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("Tags"))
	b.WriteString("\n")
	b.WriteString(helpLine("n / e / d", "New / rename / delete"))
	b.WriteString(helpLine("p", "Remove deleted tags from fragments"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("General"))
	b.WriteString("\n")
	b.WriteString(helpLine("?", "Toggle help"))
	b.WriteString(helpLine("q / Ctrl+C", "Quit"))
	b.WriteString("\n")

	if m.dataPath != "" {
		b.WriteString(styles.MutedText.Render("  Data file: " + m.dataPath))
		b.WriteString("\n\n")
	}

	b.WriteString(styles.HelpDesc.Render("Press "))
	b.WriteString(styles.HelpKey.Render("esc"))
	b.WriteString(styles.HelpDesc.Render(" or "))
	b.WriteString(styles.HelpKey.Render("?"))
	b.WriteString(styles.HelpDesc.Render(" to close"))

	return styles.App.Render(b.String())
}

func helpLine(key, desc string) string {
	return "  " + styles.HelpKey.Render(padRight(key, 20)) + styles.HelpDesc.Render(desc) + "\n"
}

func padRight(s string, length int) string {
	n := len([]rune(s))
	if n >= length {
		return s
	}
	return s + strings.Repeat(" ", length-n)
}
