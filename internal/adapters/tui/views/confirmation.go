package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"fragments/internal/adapters/tui/styles"
)

// ConfirmKeyMap defines key bindings for confirmation views
type ConfirmKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
}

// DefaultConfirmKeys returns the default confirmation key bindings
var DefaultConfirmKeys = ConfirmKeyMap{
	Confirm: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "confirm"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("n", "esc"),
		key.WithHelp("n/esc", "cancel"),
	),
}

// TargetKind says which collection a confirmation acts on
type TargetKind int

const (
	TargetFragment TargetKind = iota
	TargetTag
)

// String returns the human-readable kind
func (k TargetKind) String() string {
	if k == TargetTag {
		return "Tag"
	}
	return "Fragment"
}

// ConfirmTarget identifies the record a confirmation view acts on
type ConfirmTarget struct {
	Kind  TargetKind
	ID    string
	Label string
	// References is the number of fragments tagged with a tag target
	References int
}

// ConfirmationModel provides a base for confirmation-style views
type ConfirmationModel struct {
	ViewState
	Target *ConfirmTarget
	Keys   ConfirmKeyMap
}

// NewConfirmationModel creates a new confirmation model with default keys
func NewConfirmationModel() ConfirmationModel {
	return ConfirmationModel{
		Keys: DefaultConfirmKeys,
	}
}

// SetTarget sets the record the confirmation acts on
func (m *ConfirmationModel) SetTarget(target ConfirmTarget) {
	m.Target = &target
	m.ClearMessage()
}

// HandleKeyMsg processes key messages for confirmation views.
// Returns (handled, cmd) where handled is true if the key was processed.
func (m *ConfirmationModel) HandleKeyMsg(msg tea.KeyMsg, onConfirm, onCancel func() tea.Msg) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Cancel):
		return true, func() tea.Msg { return onCancel() }
	case key.Matches(msg, m.Keys.Confirm):
		return true, func() tea.Msg { return onConfirm() }
	}
	return false, nil
}

// RenderConfirmPrompt renders the standard confirmation prompt
func RenderConfirmPrompt(question string) string {
	var b strings.Builder
	b.WriteString(question)
	b.WriteString(" ")
	b.WriteString(styles.HelpKey.Render("y"))
	b.WriteString(styles.HelpDesc.Render(" to confirm, "))
	b.WriteString(styles.HelpKey.Render("n"))
	b.WriteString(styles.HelpDesc.Render(" to cancel"))
	return b.String()
}

// RenderTargetInfo renders the record a confirmation acts on
func RenderTargetInfo(target *ConfirmTarget, action string) string {
	if target == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(styles.InputLabel.Render(action + " " + strings.ToLower(target.Kind.String()) + ":"))
	b.WriteString("\n  ")
	b.WriteString(target.Label)
	b.WriteString(" ")
	b.WriteString(styles.MutedText.Render(target.ID))
	return b.String()
}
