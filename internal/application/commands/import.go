package commands

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"fragments/internal/application"
	"fragments/internal/ports"
)

// MaxImportSize is the largest file ImportFileCommand accepts
const MaxImportSize = 1 << 20

// ImportFileCommand stores a text file as a new fragment titled with the
// file's base name.
type ImportFileCommand struct {
	store    ports.FragmentStore
	Path     string
	Title    string // Optional; defaults to the file name
	TagNames []string
}

// NewImportFileCommand creates a new ImportFileCommand
func NewImportFileCommand(store ports.FragmentStore, path string) *ImportFileCommand {
	return &ImportFileCommand{store: store, Path: path}
}

// Validate checks if the import operation is valid
func (c *ImportFileCommand) Validate() error {
	if err := application.ValidateRequired("path", c.Path); err != nil {
		return err
	}

	info, err := os.Stat(c.Path)
	if err != nil {
		return &application.ValidationError{Field: "path", Message: err.Error()}
	}
	if info.IsDir() {
		return &application.ValidationError{Field: "path", Message: fmt.Sprintf("%s is a directory", c.Path)}
	}
	if info.Size() > MaxImportSize {
		return &application.ValidationError{
			Field:   "path",
			Message: fmt.Sprintf("%s is too large (%d bytes, max %d)", c.Path, info.Size(), MaxImportSize),
		}
	}
	return nil
}

// Execute runs the import command
func (c *ImportFileCommand) Execute(ctx context.Context) (*SaveFragmentResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(c.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", c.Path, err)
	}
	if !IsText(data) {
		return nil, &application.ValidationError{
			Field:   "path",
			Message: fmt.Sprintf("%s does not look like a text file", filepath.Base(c.Path)),
		}
	}

	title := c.Title
	if title == "" {
		title = filepath.Base(c.Path)
	}

	return NewSaveFragmentCommand(c.store, "", title, string(data)).
		WithTagNames(c.TagNames).
		Execute(ctx)
}

// IsText reports whether data is valid UTF-8 without NUL bytes
func IsText(data []byte) bool {
	return utf8.Valid(data) && !bytes.Contains(data, []byte{0})
}
