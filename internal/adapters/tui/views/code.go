package views

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"fragments/internal/adapters/tui/styles"
	"fragments/internal/application/commands"
	"fragments/internal/domain"
	"fragments/internal/ports"
)

// CodeRenderer highlights fragment code for the terminal
type CodeRenderer interface {
	Code(title, code string) (string, error)
	Language(title, code string) string
}

// CodeKeyMap defines key bindings for the code view
type CodeKeyMap struct {
	Back   key.Binding
	Copy   key.Binding
	Edit   key.Binding
	Delete key.Binding
	Up     key.Binding
	Down   key.Binding
}

var CodeKeys = CodeKeyMap{
	Back: key.NewBinding(
		key.WithKeys("esc", "q"),
		key.WithHelp("esc", "back"),
	),
	Copy: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "copy"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	Up: key.NewBinding(
		key.WithKeys("k", "up", "pgup"),
		key.WithHelp("k/↑", "scroll"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down", "pgdown"),
		key.WithHelp("j/↓", "scroll"),
	),
}

// CodeModel shows one fragment's code, highlighted when a renderer is set
type CodeModel struct {
	ViewState
	store     ports.FragmentStore
	clipboard ports.Clipboard
	renderer  CodeRenderer
	fragment  commands.FragmentView
	tags      []domain.Tag
	viewport  viewport.Model
	language  string
}

// NewCodeModel creates a new code view. renderer may be nil.
func NewCodeModel(store ports.FragmentStore, clipboard ports.Clipboard, renderer CodeRenderer) *CodeModel {
	return &CodeModel{
		store:     store,
		clipboard: clipboard,
		renderer:  renderer,
		viewport:  viewport.New(80, 20),
	}
}

// SetFragment loads a fragment into the viewport. tags resolves chip
// colors and marks stale references.
func (m *CodeModel) SetFragment(f commands.FragmentView, tags []domain.Tag) {
	m.ClearMessage()
	m.fragment = f
	m.tags = tags
	m.language = ""

	content := f.Code
	if m.renderer != nil {
		m.language = m.renderer.Language(f.Title, f.Code)
		if highlighted, err := m.renderer.Code(f.Title, f.Code); err == nil {
			content = highlighted
		} else {
			m.SetMessage("Highlighting failed: "+err.Error(), true)
		}
	}
	if content == "" {
		content = styles.MutedText.Render("(empty)")
	}

	m.viewport.SetContent(content)
	m.viewport.GotoTop()
}

// Fragment returns the fragment being shown
func (m *CodeModel) Fragment() commands.FragmentView {
	return m.fragment
}

// SetSize updates the view dimensions
func (m *CodeModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)
	if width > 8 {
		m.viewport.Width = width - 8
	}
	if height > 12 {
		m.viewport.Height = height - 12
	}
}

// Init initializes the code view
func (m *CodeModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the code view
func (m *CodeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case StatusMsg:
		if msg.Err != nil {
			m.SetError(msg.Err)
		} else {
			m.SetMessage(msg.Message, false)
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, CodeKeys.Back):
			return m, func() tea.Msg { return SwitchToListMsg{} }

		case key.Matches(msg, CodeKeys.Copy):
			return m, copyFragment(m.store, m.clipboard, m.fragment.ID)

		case key.Matches(msg, CodeKeys.Edit):
			view := m.fragment
			return m, func() tea.Msg { return SwitchToFormMsg{Fragment: &view} }

		case key.Matches(msg, CodeKeys.Delete):
			target := ConfirmTarget{Kind: TargetFragment, ID: m.fragment.ID, Label: m.fragment.Title}
			return m, func() tea.Msg { return SwitchToDeleteMsg{Target: target} }
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the code view
func (m *CodeModel) View() string {
	v := NewViewBuilder().Title(m.fragment.Title)

	meta := RenderTags(m.fragment.Tags, m.fragment.TagNames, m.tags)
	if m.language != "" {
		if meta != "" {
			meta += "  "
		}
		meta += styles.CodeMeta.Render(m.language)
	}
	if meta != "" {
		v.Line(meta).BlankLine()
	}

	v.Line(styles.CodeBox.Render(m.viewport.View()))
	v.Muted(m.scrollInfo()).BlankLine()

	v.Message(m.Message, m.MessageErr)
	v.Help(CodeKeys.Down, CodeKeys.Copy, CodeKeys.Edit, CodeKeys.Delete, CodeKeys.Back)

	return v.String()
}

func (m *CodeModel) scrollInfo() string {
	if m.viewport.TotalLineCount() <= m.viewport.Height {
		return ""
	}
	return fmt.Sprintf("%3.0f%%", m.viewport.ScrollPercent()*100)
}
