package ports

import "os/exec"

// EditorOpener launches the user's external editor on a file. Fragment
// code is edited by writing it to a scratch file, running the command and
// reading the file back.
type EditorOpener interface {
	// Available reports whether any editor could be resolved
	Available() bool

	// OpenFile blocks until the editor exits
	OpenFile(path string) error

	// Command returns an exec.Cmd for opening a file in the editor
	// This is useful for integrating with bubbletea's ExecProcess
	Command(path string) (*exec.Cmd, error)
}
