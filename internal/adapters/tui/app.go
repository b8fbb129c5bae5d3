package tui

import (
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"fragments/internal/adapters/editor"
	"fragments/internal/adapters/tui/views"
	"fragments/internal/domain"
	"fragments/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewList ViewState = iota
	ViewForm
	ViewCode
	ViewTags
	ViewTagForm
	ViewDelete
	ViewHelp
)

// Options carries the optional collaborators of the App
type Options struct {
	Clipboard ports.Clipboard
	Editor    ports.EditorOpener
	Renderer  views.CodeRenderer
	// Changes signals external modifications of the document
	Changes  <-chan struct{}
	DataPath string
	Logger   *zap.Logger
}

// App is the main TUI application model
type App struct {
	store   ports.FragmentStore
	editor  ports.EditorOpener
	changes <-chan struct{}
	logger  *zap.Logger

	state   ViewState
	list    *views.ListModel
	form    *views.FormModel
	code    *views.CodeModel
	tags    *views.TagsModel
	tagForm *views.TagFormModel
	del     *views.DeleteModel
	help    *views.HelpModel

	width  int
	height int
}

// NewApp creates a new TUI application
func NewApp(store ports.FragmentStore, opts Options) *App {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	canEdit := opts.Editor != nil && opts.Editor.Available()

	return &App{
		store:   store,
		editor:  opts.Editor,
		changes: opts.Changes,
		logger:  logger,
		state:   ViewList,
		list:    views.NewListModel(store, opts.Clipboard),
		form:    views.NewFormModel(store, canEdit),
		code:    views.NewCodeModel(store, opts.Clipboard, opts.Renderer),
		tags:    views.NewTagsModel(store),
		tagForm: views.NewTagFormModel(store),
		del:     views.NewDeleteModel(store),
		help:    views.NewHelpModel(opts.DataPath),
	}
}

// State returns the active view
func (a *App) State() ViewState {
	return a.state
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.list.Init(), a.waitForChange())
}

// waitForChange blocks on the watcher channel and turns one signal into a
// DocumentChangedMsg. It is re-armed after every delivery.
func (a *App) waitForChange() tea.Cmd {
	if a.changes == nil {
		return nil
	}
	changes := a.changes
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return views.DocumentChangedMsg{}
	}
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.list.SetSize(msg.Width, msg.Height)
		a.form.SetSize(msg.Width, msg.Height)
		a.code.SetSize(msg.Width, msg.Height)
		a.tags.SetSize(msg.Width, msg.Height)
		a.tagForm.SetSize(msg.Width, msg.Height)
		a.del.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return a, tea.Quit
		}

	// Data messages go to their owners whatever view is active
	case views.CatalogLoadedMsg:
		if msg.Err != nil {
			a.logger.Warn("catalog loaded from unreadable document", zap.Error(msg.Err))
		}
		a.list.Update(msg)
		a.tags.SetCatalog(msg.Catalog)
		a.refreshCode()
		return a, nil

	case views.DocumentChangedMsg:
		a.logger.Debug("document changed on disk, reloading")
		return a, tea.Batch(a.list.Reload(), a.waitForChange())

	// View switching messages
	case views.SwitchToListMsg:
		a.state = ViewList
		return a, nil

	case views.SwitchToFormMsg:
		a.state = ViewForm
		a.form.SetFragment(msg.Fragment)
		return a, a.form.Init()

	case views.SwitchToCodeMsg:
		a.state = ViewCode
		a.code.SetFragment(msg.Fragment, a.catalogTags())
		return a, nil

	case views.SwitchToTagsMsg:
		a.state = ViewTags
		return a, a.list.Reload()

	case views.SwitchToTagFormMsg:
		a.state = ViewTagForm
		a.tagForm.SetTag(msg.Tag)
		return a, a.tagForm.Init()

	case views.SwitchToDeleteMsg:
		a.state = ViewDelete
		a.del.SetTarget(msg.Target)
		return a, nil

	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	// Outcomes
	case views.FragmentSavedMsg:
		a.logger.Info(msg.Message)
		a.state = ViewList
		a.list.SetMessage(msg.Message, false)
		return a, a.list.Reload()

	case views.TagSavedMsg:
		a.logger.Info(msg.Message)
		a.state = ViewTags
		a.tags.SetMessage(msg.Message, false)
		return a, a.list.Reload()

	case views.TagsPrunedMsg:
		a.logger.Info(msg.Message)
		a.tags.SetMessage(msg.Message, false)
		return a, a.list.Reload()

	case views.DeleteSuccessMsg:
		a.logger.Info(msg.Message)
		if msg.Kind == views.TargetTag {
			a.state = ViewTags
			a.tags.SetMessage(msg.Message, false)
		} else {
			a.state = ViewList
			a.list.SetMessage(msg.Message, false)
		}
		return a, a.list.Reload()

	case views.EditCodeMsg:
		return a, a.openEditor(msg)

	case views.CodeEditedMsg:
		if msg.Err != nil {
			a.logger.Warn("external editor failed", zap.Error(msg.Err))
		}
		a.form.Update(msg)
		return a, nil
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch a.state {
	case ViewList:
		_, cmd = a.list.Update(msg)
	case ViewForm:
		_, cmd = a.form.Update(msg)
	case ViewCode:
		_, cmd = a.code.Update(msg)
	case ViewTags:
		_, cmd = a.tags.Update(msg)
	case ViewTagForm:
		_, cmd = a.tagForm.Update(msg)
	case ViewDelete:
		_, cmd = a.del.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}

	return a, cmd
}

func (a *App) catalogTags() []domain.Tag {
	if c := a.list.Catalog(); c != nil {
		return c.Tags
	}
	return nil
}

// refreshCode re-renders the code view after a reload, leaving it when
// the fragment no longer exists
func (a *App) refreshCode() {
	if a.state != ViewCode {
		return
	}
	catalog := a.list.Catalog()
	if catalog == nil {
		return
	}
	current := a.code.Fragment()
	f, ok := catalog.Fragment(current.ID)
	if !ok {
		a.state = ViewList
		a.list.SetMessage("Fragment was removed: "+current.Title, true)
		return
	}
	a.code.SetFragment(f, catalog.Tags)
}

// openEditor writes the code to a scratch file, runs the editor on it and
// reads the result back
func (a *App) openEditor(msg views.EditCodeMsg) tea.Cmd {
	if a.editor == nil {
		return nil
	}

	scratch, err := editor.NewScratch(msg.Code, filepath.Ext(msg.Title))
	if err != nil {
		return func() tea.Msg { return views.CodeEditedMsg{Err: err} }
	}

	cmd, err := a.editor.Command(scratch.Path)
	if err != nil {
		_ = scratch.Remove()
		return func() tea.Msg { return views.CodeEditedMsg{Err: err} }
	}

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		defer func() {
			if rmErr := scratch.Remove(); rmErr != nil {
				a.logger.Warn("failed to remove scratch file", zap.String("path", scratch.Path), zap.Error(rmErr))
			}
		}()
		if err != nil {
			return views.CodeEditedMsg{Err: err}
		}
		code, err := scratch.Read()
		return views.CodeEditedMsg{Code: code, Err: err}
	})
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewForm:
		return a.form.View()
	case ViewCode:
		return a.code.View()
	case ViewTags:
		return a.tags.View()
	case ViewTagForm:
		return a.tagForm.View()
	case ViewDelete:
		return a.del.View()
	case ViewHelp:
		return a.help.View()
	default:
		return a.list.View()
	}
}
