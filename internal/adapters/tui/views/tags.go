package views

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"fragments/internal/adapters/tui/styles"
	"fragments/internal/application/commands"
	"fragments/internal/domain"
	"fragments/internal/ports"
)

// TagsKeyMap defines key bindings for the tag list
type TagsKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	New    key.Binding
	Rename key.Binding
	Delete key.Binding
	Prune  key.Binding
	Back   key.Binding
}

var TagsKeys = TagsKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	New: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new"),
	),
	Rename: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "rename"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	Prune: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "prune stale"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc", "q", "t"),
		key.WithHelp("esc", "back"),
	),
}

// TagsModel lists tags with how many fragments use each
type TagsModel struct {
	ViewState
	store  ports.FragmentStore
	tags   []domain.Tag
	usage  map[string]int
	stale  []string
	cursor int
	loaded bool
}

// NewTagsModel creates a new tag list model
func NewTagsModel(store ports.FragmentStore) *TagsModel {
	return &TagsModel{
		store: store,
		usage: make(map[string]int),
	}
}

// Init initializes the tag list
func (m *TagsModel) Init() tea.Cmd {
	return nil
}

// SetCatalog refreshes the tag list from a loaded catalog
func (m *TagsModel) SetCatalog(catalog *commands.Catalog) {
	if catalog == nil {
		return
	}
	m.loaded = true
	m.tags = catalog.Tags
	m.usage = make(map[string]int, len(catalog.Tags))

	doc := domain.Document{Tags: catalog.Tags}
	for _, f := range catalog.Fragments {
		doc.Fragments = append(doc.Fragments, f.Fragment)
		for _, id := range f.Tags {
			m.usage[id]++
		}
	}
	m.stale = doc.StaleTagIDs()
	m.cursor = clampCursor(m.cursor, len(m.tags))
}

// Selected returns the tag under the cursor
func (m *TagsModel) Selected() *domain.Tag {
	if m.cursor < 0 || m.cursor >= len(m.tags) {
		return nil
	}
	return &m.tags[m.cursor]
}

// Update handles messages for the tag list
func (m *TagsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
		m.ClearMessage()

		switch {
		case key.Matches(msg, TagsKeys.Back):
			return m, func() tea.Msg { return SwitchToListMsg{} }

		case key.Matches(msg, TagsKeys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case key.Matches(msg, TagsKeys.Down):
			if m.cursor < len(m.tags)-1 {
				m.cursor++
			}
			return m, nil

		case key.Matches(msg, TagsKeys.New):
			return m, func() tea.Msg { return SwitchToTagFormMsg{} }

		case key.Matches(msg, TagsKeys.Rename):
			if t := m.Selected(); t != nil {
				tag := *t
				return m, func() tea.Msg { return SwitchToTagFormMsg{Tag: &tag} }
			}
			return m, nil

		case key.Matches(msg, TagsKeys.Delete):
			if t := m.Selected(); t != nil {
				target := ConfirmTarget{Kind: TargetTag, ID: t.ID, Label: t.Name, References: m.usage[t.ID]}
				return m, func() tea.Msg { return SwitchToDeleteMsg{Target: target} }
			}
			return m, nil

		case key.Matches(msg, TagsKeys.Prune):
			return m, m.prune()
		}
	}

	return m, nil
}

func (m *TagsModel) prune() tea.Cmd {
	store := m.store
	return func() tea.Msg {
		result, err := commands.NewPruneTagsCommand(store, false).Execute(context.Background())
		if err != nil {
			return StatusMsg{Err: err}
		}
		return TagsPrunedMsg{Message: result.Message}
	}
}

// TagsPrunedMsg reports a finished prune; the app reloads afterwards
type TagsPrunedMsg struct {
	Message string
}

// View renders the tag list
func (m *TagsModel) View() string {
	v := NewViewBuilder().Title("Tags")

	if !m.loaded {
		return v.Line("Loading...").String()
	}

	if len(m.tags) == 0 {
		v.Muted("No tags yet. Press n to create one.")
	}

	start, end := visibleWindow(m.cursor, len(m.tags), m.listRows(10))
	for i := start; i < end; i++ {
		t := m.tags[i]
		cursor := "  "
		if i == m.cursor {
			cursor = styles.Cursor.Render("▸ ")
		}
		v.Line(fmt.Sprintf("%s%s %s", cursor, styles.Tag(t.ID, t.Name, false),
			styles.MutedText.Render(fmt.Sprintf("%d fragment(s)", m.usage[t.ID]))))
	}

	if len(m.stale) > 0 {
		v.BlankLine().Raw(styles.WarningMsg.Render(fmt.Sprintf(
			"%d deleted tag(s) still referenced by fragments; press p to prune", len(m.stale)))).BlankLine()
	}

	v.BlankLine()
	v.Message(m.Message, m.MessageErr)
	v.Help(TagsKeys.New, TagsKeys.Rename, TagsKeys.Delete, TagsKeys.Prune, TagsKeys.Back)

	return v.String()
}
