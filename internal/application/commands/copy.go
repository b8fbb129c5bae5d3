package commands

import (
	"context"
	"fmt"
	"strings"

	"fragments/internal/application"
	"fragments/internal/ports"
)

// CopyFragmentResult contains the result of copying a fragment
type CopyFragmentResult struct {
	FragmentID string
	Bytes      int
	Message    string
}

// CopyFragmentCommand copies a fragment's code to the clipboard
type CopyFragmentCommand struct {
	store     ports.FragmentStore
	clipboard ports.Clipboard
	ID        string
}

// NewCopyFragmentCommand creates a new CopyFragmentCommand
func NewCopyFragmentCommand(store ports.FragmentStore, clipboard ports.Clipboard, id string) *CopyFragmentCommand {
	return &CopyFragmentCommand{
		store:     store,
		clipboard: clipboard,
		ID:        strings.TrimSpace(id),
	}
}

// Validate checks if the copy operation is valid
func (c *CopyFragmentCommand) Validate() error {
	if err := application.ValidateRequired("fragmentID", c.ID); err != nil {
		return err
	}
	if c.clipboard == nil {
		return fmt.Errorf("clipboard unavailable: %w", application.ErrInvalidOperation)
	}
	return nil
}

// Execute runs the copy command
func (c *CopyFragmentCommand) Execute(ctx context.Context) (*CopyFragmentResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	fragments, err := c.store.ListFragments()
	if err != nil {
		return nil, fmt.Errorf("failed to load fragments: %w", err)
	}

	for _, f := range fragments {
		if f.ID != c.ID {
			continue
		}
		if err := c.clipboard.WriteText(f.Code); err != nil {
			return nil, fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		return &CopyFragmentResult{
			FragmentID: f.ID,
			Bytes:      len(f.Code),
			Message:    fmt.Sprintf("Copied %s to clipboard", f.Title),
		}, nil
	}

	return nil, &application.NotFoundError{Kind: "fragment", ID: c.ID}
}
