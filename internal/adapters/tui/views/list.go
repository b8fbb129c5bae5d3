package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"fragments/internal/adapters/tui/styles"
	"fragments/internal/application/commands"
	"fragments/internal/ports"
)

// ListKeyMap defines key bindings for the fragment list
type ListKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Open   key.Binding
	New    key.Binding
	Edit   key.Binding
	Delete key.Binding
	Copy   key.Binding
	Tags   key.Binding
	Reload key.Binding
	Help   key.Binding
	Quit   key.Binding
}

var ListKeys = ListKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Open: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "view code"),
	),
	New: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	Copy: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "copy"),
	),
	Tags: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "tags"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// ListModel is the model for the fragment list view
type ListModel struct {
	ViewState
	store     ports.FragmentStore
	clipboard ports.Clipboard
	catalog   *commands.Catalog
	cursor    int
	// selectedID keeps the cursor on the same fragment across reloads
	selectedID string
}

// NewListModel creates a new fragment list model
func NewListModel(store ports.FragmentStore, clipboard ports.Clipboard) *ListModel {
	return &ListModel{
		store:     store,
		clipboard: clipboard,
	}
}

// Init loads the catalog
func (m *ListModel) Init() tea.Cmd {
	return m.load
}

func (m *ListModel) load() tea.Msg {
	catalog, err := commands.NewLoadCatalogCommand(m.store).Execute(context.Background())
	return CatalogLoadedMsg{Catalog: catalog, Err: err}
}

// Reload reloads the catalog, keeping the current selection when it
// still exists
func (m *ListModel) Reload() tea.Cmd {
	if f := m.Selected(); f != nil {
		m.selectedID = f.ID
	}
	return m.load
}

// Catalog returns the last loaded catalog, or nil before the first load
func (m *ListModel) Catalog() *commands.Catalog {
	return m.catalog
}

// Update handles messages for the list
func (m *ListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case CatalogLoadedMsg:
		m.applyCatalog(msg.Catalog)
		if msg.Err != nil {
			m.SetMessage("Could not read fragments: "+msg.Err.Error(), true)
		}
		return m, nil

	case StatusMsg:
		if msg.Err != nil {
			m.SetError(msg.Err)
		} else {
			m.SetMessage(msg.Message, false)
		}
		return m, nil

	case tea.KeyMsg:
		m.ClearMessage()

		switch {
		case key.Matches(msg, ListKeys.Quit):
			return m, tea.Quit

		case key.Matches(msg, ListKeys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case key.Matches(msg, ListKeys.Down):
			if m.cursor < m.count()-1 {
				m.cursor++
			}
			return m, nil

		case key.Matches(msg, ListKeys.Open):
			if f := m.Selected(); f != nil {
				view := *f
				return m, func() tea.Msg { return SwitchToCodeMsg{Fragment: view} }
			}
			return m, nil

		case key.Matches(msg, ListKeys.New):
			return m, func() tea.Msg { return SwitchToFormMsg{} }

		case key.Matches(msg, ListKeys.Edit):
			if f := m.Selected(); f != nil {
				view := *f
				return m, func() tea.Msg { return SwitchToFormMsg{Fragment: &view} }
			}
			return m, nil

		case key.Matches(msg, ListKeys.Delete):
			if f := m.Selected(); f != nil {
				target := ConfirmTarget{Kind: TargetFragment, ID: f.ID, Label: f.Title}
				return m, func() tea.Msg { return SwitchToDeleteMsg{Target: target} }
			}
			return m, nil

		case key.Matches(msg, ListKeys.Copy):
			if f := m.Selected(); f != nil {
				return m, copyFragment(m.store, m.clipboard, f.ID)
			}
			return m, nil

		case key.Matches(msg, ListKeys.Tags):
			return m, func() tea.Msg { return SwitchToTagsMsg{} }

		case key.Matches(msg, ListKeys.Reload):
			return m, m.Reload()

		case key.Matches(msg, ListKeys.Help):
			return m, func() tea.Msg { return SwitchToHelpMsg{} }
		}
	}

	return m, nil
}

func (m *ListModel) applyCatalog(catalog *commands.Catalog) {
	if catalog == nil {
		catalog = &commands.Catalog{}
	}
	m.catalog = catalog

	if m.selectedID != "" {
		for i, f := range catalog.Fragments {
			if f.ID == m.selectedID {
				m.cursor = i
				break
			}
		}
		m.selectedID = ""
	}
	m.cursor = clampCursor(m.cursor, m.count())
}

func (m *ListModel) count() int {
	if m.catalog == nil {
		return 0
	}
	return len(m.catalog.Fragments)
}

// Selected returns the fragment under the cursor
func (m *ListModel) Selected() *commands.FragmentView {
	if m.catalog == nil || m.cursor < 0 || m.cursor >= len(m.catalog.Fragments) {
		return nil
	}
	return &m.catalog.Fragments[m.cursor]
}

// copyFragment copies a fragment's code and reports the outcome as a
// StatusMsg
func copyFragment(store ports.FragmentStore, clipboard ports.Clipboard, id string) tea.Cmd {
	return func() tea.Msg {
		result, err := commands.NewCopyFragmentCommand(store, clipboard, id).Execute(context.Background())
		if err != nil {
			return StatusMsg{Err: err}
		}
		return StatusMsg{Message: result.Message}
	}
}

// View renders the list
func (m *ListModel) View() string {
	if m.catalog == nil {
		return "Loading..."
	}

	v := NewViewBuilder().Title("Fragments")

	n := m.count()
	v.Raw(RenderSubtitle(fmt.Sprintf("%d fragment(s), %d tag(s)", n, len(m.catalog.Tags)))).BlankLine().BlankLine()

	if n == 0 {
		v.Muted("No fragments yet. Press n to create one.")
	}

	start, end := visibleWindow(m.cursor, n, m.listRows(10))
	if start > 0 {
		v.Muted(fmt.Sprintf("  ↑ %d more", start))
	}
	for i := start; i < end; i++ {
		v.Line(m.renderRow(m.catalog.Fragments[i], i == m.cursor))
	}
	if end < n {
		v.Muted(fmt.Sprintf("  ↓ %d more", n-end))
	}

	v.BlankLine()
	v.Message(m.Message, m.MessageErr)
	v.Help(ListKeys.Open, ListKeys.New, ListKeys.Edit, ListKeys.Delete, ListKeys.Copy, ListKeys.Tags, ListKeys.Help, ListKeys.Quit)

	return v.String()
}

func (m *ListModel) renderRow(f commands.FragmentView, selected bool) string {
	title := f.Title
	if strings.TrimSpace(title) == "" {
		title = "(untitled)"
	}
	if m.Width > 0 {
		title = Truncate(title, max(m.Width/2, 10))
	}

	cursor := "  "
	style := styles.Row
	if selected {
		cursor = styles.Cursor.Render("▸ ")
		style = styles.RowSelected
	}

	line := cursor + style.Render(title)
	if tags := RenderTags(f.Tags, f.TagNames, m.catalog.Tags); tags != "" {
		line += "  " + tags
	}
	return line
}
