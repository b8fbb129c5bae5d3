package views

import (
	"fragments/internal/application/commands"
	"fragments/internal/domain"
)

// Messages for view switching
type SwitchToListMsg struct{}

// SwitchToFormMsg opens the fragment form. A nil Fragment starts a new one.
type SwitchToFormMsg struct {
	Fragment *commands.FragmentView
}

type SwitchToCodeMsg struct {
	Fragment commands.FragmentView
}

type SwitchToTagsMsg struct{}

// SwitchToTagFormMsg opens the tag form. A nil Tag starts a new one.
type SwitchToTagFormMsg struct {
	Tag *domain.Tag
}

type SwitchToDeleteMsg struct {
	Target ConfirmTarget
}

type SwitchToHelpMsg struct{}

// CatalogLoadedMsg carries a freshly loaded catalog. Err is set on a
// degraded read, in which case Catalog is empty but usable.
type CatalogLoadedMsg struct {
	Catalog *commands.Catalog
	Err     error
}

// DocumentChangedMsg reports that the document changed on disk
type DocumentChangedMsg struct{}

// StatusMsg is a one-line outcome shown by the active view
type StatusMsg struct {
	Message string
	Err     error
}

// FragmentSavedMsg indicates a fragment was stored
type FragmentSavedMsg struct {
	Message string
}

// TagSavedMsg indicates a tag was stored
type TagSavedMsg struct {
	Message string
}

// EditCodeMsg asks the app to open code in the external editor. Title
// picks the scratch file extension.
type EditCodeMsg struct {
	Title string
	Code  string
}

// CodeEditedMsg returns the editor result to the form
type CodeEditedMsg struct {
	Code string
	Err  error
}
