package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"fragments/internal/adapters/tui/styles"
	"fragments/internal/application/commands"
	"fragments/internal/domain"
	"fragments/internal/ports"
)

// FormKeyMap defines key bindings for the fragment form
type FormKeyMap struct {
	Save     key.Binding
	Cancel   key.Binding
	Next     key.Binding
	Prev     key.Binding
	EditCode key.Binding
}

var FormKeys = FormKeyMap{
	Save: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("ctrl+s", "save"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
	Next: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next field"),
	),
	Prev: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "previous field"),
	),
	EditCode: key.NewBinding(
		key.WithKeys("ctrl+e"),
		key.WithHelp("ctrl+e", "edit code in $EDITOR"),
	),
}

const (
	fieldTitle = iota
	fieldTags
	fieldCode
	fieldCount
)

// FormModel creates and edits fragments. Title and tags are single-line
// inputs; code is a textarea that can also be handed to $EDITOR.
type FormModel struct {
	ViewState
	store     ports.FragmentStore
	canEdit   bool
	inputs    *InputForm
	code      textarea.Model
	focus     int
	id        string
	// knownTags maps the lower-cased names shown in the tags field back to
	// the IDs the fragment already had, so stale IDs survive an edit
	knownTags map[string]string
}

// NewFormModel creates a new fragment form. canEdit enables the external
// editor binding.
func NewFormModel(store ports.FragmentStore, canEdit bool) *FormModel {
	code := textarea.New()
	code.Placeholder = "Paste or type code"
	code.ShowLineNumbers = true
	code.CharLimit = 0
	code.MaxHeight = 0
	code.SetHeight(10)

	return &FormModel{
		store:   store,
		canEdit: canEdit,
		inputs: NewInputForm(
			NewInputField("Title", "debounce.js", 200),
			NewInputField("Tags", "js, utils", 0),
		),
		code: code,
	}
}

// SetFragment prepares the form. nil starts a new fragment.
func (m *FormModel) SetFragment(f *commands.FragmentView) {
	m.ClearMessage()
	m.inputs.Reset()
	m.code.Reset()
	m.knownTags = make(map[string]string)
	m.id = ""

	if f != nil {
		m.id = f.ID
		m.inputs.SetValue(fieldTitle, f.Title)
		m.inputs.SetValue(fieldTags, strings.Join(f.TagNames, ", "))
		m.code.SetValue(f.Code)
		for i, id := range f.Tags {
			if i < len(f.TagNames) {
				m.knownTags[strings.ToLower(f.TagNames[i])] = id
			}
		}
	}
	m.setFocus(fieldTitle)
}

// Editing reports whether the form edits an existing fragment
func (m *FormModel) Editing() bool {
	return m.id != ""
}

// Code returns the current code value
func (m *FormModel) Code() string {
	return m.code.Value()
}

// SetSize updates the view dimensions
func (m *FormModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)
	if width > 8 {
		m.inputs.SetWidth(width - 8)
		m.code.SetWidth(width - 6)
	}
	if height > 20 {
		m.code.SetHeight(height - 18)
	}
}

// Init initializes the form
func (m *FormModel) Init() tea.Cmd {
	return m.inputs.Init()
}

// Update handles messages for the form
func (m *FormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case formErrMsg:
		m.SetError(msg.err)
		return m, nil

	case CodeEditedMsg:
		if msg.Err != nil {
			m.SetMessage("Editor failed: "+msg.Err.Error(), true)
			return m, nil
		}
		m.code.SetValue(msg.Code)
		m.SetMessage(fmt.Sprintf("Code updated (%d lines)", lineCount(msg.Code)), false)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, FormKeys.Cancel):
			return m, func() tea.Msg { return SwitchToListMsg{} }

		case key.Matches(msg, FormKeys.Save):
			return m, m.save()

		case key.Matches(msg, FormKeys.Next):
			m.setFocus((m.focus + 1) % fieldCount)
			return m, nil

		case key.Matches(msg, FormKeys.Prev):
			m.setFocus((m.focus - 1 + fieldCount) % fieldCount)
			return m, nil

		case key.Matches(msg, FormKeys.EditCode):
			if !m.canEdit {
				m.SetMessage("No editor found: set $EDITOR", true)
				return m, nil
			}
			title, code := m.inputs.Value(fieldTitle), m.code.Value()
			return m, func() tea.Msg { return EditCodeMsg{Title: title, Code: code} }

		case msg.Type == tea.KeyEnter && m.focus != fieldCode:
			m.setFocus(m.focus + 1)
			return m, nil
		}
	}

	var cmd tea.Cmd
	if m.focus == fieldCode {
		m.code, cmd = m.code.Update(msg)
	} else {
		_, cmd = m.inputs.Update(msg)
	}
	return m, cmd
}

func (m *FormModel) setFocus(field int) {
	m.focus = field
	if field == fieldCode {
		m.inputs.Blur()
		m.code.Focus()
		return
	}
	m.code.Blur()
	m.inputs.SetFocus(field)
}

// tagArgs splits the tags field into IDs the fragment already carried and
// names that still need resolving
func (m *FormModel) tagArgs() (ids, names []string) {
	for _, name := range domain.SplitTagNames(m.inputs.Value(fieldTags)) {
		if id, ok := m.knownTags[strings.ToLower(name)]; ok {
			ids = append(ids, id)
			continue
		}
		names = append(names, name)
	}
	return ids, names
}

func (m *FormModel) save() tea.Cmd {
	ids, names := m.tagArgs()
	cmd := commands.NewSaveFragmentCommand(m.store, m.id, m.inputs.Value(fieldTitle), m.code.Value()).
		WithTagIDs(ids).
		WithTagNames(names)

	return func() tea.Msg {
		result, err := cmd.Execute(context.Background())
		if err != nil {
			return formErrMsg{err}
		}
		return FragmentSavedMsg{Message: result.Message}
	}
}

type formErrMsg struct {
	err error
}

// View renders the form
func (m *FormModel) View() string {
	title := "New Fragment"
	if m.Editing() {
		title = "Edit Fragment"
	}

	v := NewViewBuilder().Title(title)
	v.Line(m.inputs.RenderField(fieldTitle)).BlankLine()
	v.Line(m.inputs.RenderField(fieldTags))
	v.Muted("  comma separated; new names create tags").BlankLine()

	label := "Code"
	if m.focus == fieldCode {
		label += styles.MutedText.Render(" (enter inserts a newline)")
	}
	v.Line(styles.InputLabel.Render(label))
	v.Line(m.code.View()).BlankLine()

	v.Message(m.Message, m.MessageErr)

	bindings := []key.Binding{FormKeys.Save, FormKeys.Next}
	if m.canEdit {
		bindings = append(bindings, FormKeys.EditCode)
	}
	bindings = append(bindings, FormKeys.Cancel)
	v.Help(bindings...)

	return v.String()
}

func lineCount(s string) int {
	if s == "" {
		return 0
	}
	return strings.Count(strings.TrimSuffix(s, "\n"), "\n") + 1
}
