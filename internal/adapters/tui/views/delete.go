package views

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"fragments/internal/adapters/tui/styles"
	"fragments/internal/application/commands"
	"fragments/internal/ports"
)

// DeleteModel is the model for the delete confirmation view
type DeleteModel struct {
	ConfirmationModel
	store ports.FragmentStore
}

// NewDeleteModel creates a new delete view model
func NewDeleteModel(store ports.FragmentStore) *DeleteModel {
	return &DeleteModel{
		ConfirmationModel: NewConfirmationModel(),
		store:             store,
	}
}

// Init initializes the delete view
func (m *DeleteModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the delete view
func (m *DeleteModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case deleteErrMsg:
		m.SetError(msg.err)
		return m, nil

	case tea.KeyMsg:
		handled, cmd := m.HandleKeyMsg(msg,
			func() tea.Msg { return m.doDelete() },
			func() tea.Msg { return m.back() },
		)
		if handled {
			return m, cmd
		}
	}

	return m, nil
}

func (m *DeleteModel) back() tea.Msg {
	if m.Target != nil && m.Target.Kind == TargetTag {
		return SwitchToTagsMsg{}
	}
	return SwitchToListMsg{}
}

func (m *DeleteModel) doDelete() tea.Msg {
	if m.Target == nil {
		return deleteErrMsg{fmt.Errorf("no target selected")}
	}

	ctx := context.Background()
	var message string
	switch m.Target.Kind {
	case TargetTag:
		result, err := commands.NewDeleteTagCommand(m.store, m.Target.ID).Execute(ctx)
		if err != nil {
			return deleteErrMsg{err}
		}
		message = result.Message
	default:
		result, err := commands.NewDeleteFragmentCommand(m.store, m.Target.ID).Execute(ctx)
		if err != nil {
			return deleteErrMsg{err}
		}
		message = result.Message
	}

	return DeleteSuccessMsg{Kind: m.Target.Kind, Message: message}
}

// DeleteSuccessMsg indicates successful deletion
type DeleteSuccessMsg struct {
	Kind    TargetKind
	Message string
}

type deleteErrMsg struct {
	err error
}

// View renders the delete confirmation view
func (m *DeleteModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Delete Confirmation"))
	b.WriteString("\n\n")

	b.WriteString(styles.ErrorMsg.Render("This action cannot be undone!"))
	b.WriteString("\n\n")

	b.WriteString(RenderTargetInfo(m.Target, "Delete"))
	b.WriteString("\n\n")

	if m.Target != nil && m.Target.Kind == TargetTag && m.Target.References > 0 {
		b.WriteString(styles.WarningMsg.Render(fmt.Sprintf(
			"  %d fragment(s) keep a reference to this tag until stale tags are pruned.",
			m.Target.References)))
		b.WriteString("\n\n")
	}

	if m.Message != "" {
		b.WriteString(RenderMessage(m.Message, m.MessageErr))
		b.WriteString("\n\n")
	}

	b.WriteString(RenderConfirmPrompt("Are you sure?"))

	return styles.App.Render(b.String())
}
