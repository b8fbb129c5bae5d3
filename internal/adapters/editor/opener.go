package editor

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"fragments/internal/ports"
)

// Opener implements ports.EditorOpener
type Opener struct {
	lookup func(string) string
}

// Ensure Opener implements EditorOpener
var _ ports.EditorOpener = (*Opener)(nil)

// NewOpener creates a new editor opener
func NewOpener() *Opener {
	return &Opener{lookup: os.Getenv}
}

// Available reports whether an editor can be found
func (o *Opener) Available() bool {
	return o.findEditor() != ""
}

// OpenFile opens a file in the user's preferred editor
func (o *Opener) OpenFile(path string) error {
	cmd, err := o.Command(path)
	if err != nil {
		return err
	}
	return cmd.Run()
}

// Command returns an exec.Cmd for opening a file in the editor
// This is useful for integrating with bubbletea's ExecProcess
func (o *Opener) Command(path string) (*exec.Cmd, error) {
	editor := o.findEditor()
	if editor == "" {
		return nil, fmt.Errorf("no editor found: set $EDITOR environment variable")
	}

	// $EDITOR may carry flags, e.g. "code --wait"
	fields := strings.Fields(editor)
	args := append(fields[1:], path)

	cmd := exec.Command(fields[0], args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd, nil
}

// findEditor returns the editor to use
func (o *Opener) findEditor() string {
	if editor := strings.TrimSpace(o.lookup("EDITOR")); editor != "" {
		return editor
	}
	if visual := strings.TrimSpace(o.lookup("VISUAL")); visual != "" {
		return visual
	}

	editors := []string{"nvim", "vim", "vi", "nano"}
	for _, editor := range editors {
		if path, err := exec.LookPath(editor); err == nil {
			return path
		}
	}

	return ""
}

// Scratch is a temporary file holding text being edited externally
type Scratch struct {
	Path string
}

// NewScratch writes content to a temp file. suffix (e.g. ".js") lets the
// editor pick a syntax mode.
func NewScratch(content, suffix string) (*Scratch, error) {
	f, err := os.CreateTemp("", "fragment-*"+suffix)
	if err != nil {
		return nil, fmt.Errorf("failed to create scratch file: %w", err)
	}
	if _, err := f.WriteString(content); err != nil {
		return nil, errors.Join(fmt.Errorf("failed to write scratch file: %w", err), f.Close(), os.Remove(f.Name()))
	}
	if err := f.Close(); err != nil {
		return nil, errors.Join(fmt.Errorf("failed to close scratch file: %w", err), os.Remove(f.Name()))
	}
	return &Scratch{Path: f.Name()}, nil
}

// Read returns the current content of the scratch file
func (s *Scratch) Read() (string, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return "", fmt.Errorf("failed to read scratch file: %w", err)
	}
	return string(data), nil
}

// Remove deletes the scratch file
func (s *Scratch) Remove() error {
	if err := os.Remove(s.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
