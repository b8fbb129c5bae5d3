package views

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"fragments/internal/application/commands"
	"fragments/internal/domain"
	"fragments/internal/ports"
)

// TagFormModel creates or renames a tag
type TagFormModel struct {
	ViewState
	store ports.FragmentStore
	form  *InputForm
	id    string
}

// NewTagFormModel creates a new tag form
func NewTagFormModel(store ports.FragmentStore) *TagFormModel {
	return &TagFormModel{
		store: store,
		form:  NewInputForm(NewInputField("Name", "javascript", 64)),
	}
}

// SetTag prepares the form. nil starts a new tag.
func (m *TagFormModel) SetTag(tag *domain.Tag) {
	m.ClearMessage()
	m.form.Reset()
	m.id = ""
	if tag != nil {
		m.id = tag.ID
		m.form.SetValue(0, tag.Name)
	}
}

// Init initializes the tag form
func (m *TagFormModel) Init() tea.Cmd {
	return m.form.Init()
}

// Update handles messages for the tag form
func (m *TagFormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tagFormErrMsg:
		m.SetError(msg.err)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.form.Keys.Cancel):
			return m, func() tea.Msg { return SwitchToTagsMsg{} }
		case key.Matches(msg, m.form.Keys.Submit):
			return m, m.save()
		}
	}

	_, cmd := m.form.Update(msg)
	return m, cmd
}

func (m *TagFormModel) save() tea.Cmd {
	cmd := commands.NewSaveTagCommand(m.store, m.id, m.form.Value(0))
	return func() tea.Msg {
		result, err := cmd.Execute(context.Background())
		if err != nil {
			return tagFormErrMsg{err}
		}
		return TagSavedMsg{Message: result.Message}
	}
}

type tagFormErrMsg struct {
	err error
}

// View renders the tag form
func (m *TagFormModel) View() string {
	title := "New Tag"
	if m.id != "" {
		title = "Rename Tag"
	}

	return NewViewBuilder().
		Title(title).
		Line(m.form.RenderField(0)).
		BlankLine().
		Message(m.Message, m.MessageErr).
		Raw(m.form.RenderHelp("save")).
		String()
}
