package commands

import (
	"context"
	"fmt"
	"strings"

	"fragments/internal/application"
	"fragments/internal/domain"
	"fragments/internal/ports"
)

const maxTitleLength = 200

// SaveFragmentResult contains the result of saving a fragment
type SaveFragmentResult struct {
	Fragment    domain.Fragment
	Created     bool
	CreatedTags []domain.Tag
	Message     string
}

// SaveFragmentCommand creates a fragment (empty ID) or replaces an
// existing one. TagNames are resolved to IDs and appended after TagIDs.
type SaveFragmentCommand struct {
	store    ports.FragmentStore
	ID       string
	Title    string
	Code     string
	TagIDs   []string
	TagNames []string
}

// NewSaveFragmentCommand creates a new SaveFragmentCommand
func NewSaveFragmentCommand(store ports.FragmentStore, id, title, code string) *SaveFragmentCommand {
	return &SaveFragmentCommand{
		store: store,
		ID:    strings.TrimSpace(id),
		Title: title,
		Code:  code,
	}
}

// WithTagIDs sets tag IDs to attach as-is
func (c *SaveFragmentCommand) WithTagIDs(ids []string) *SaveFragmentCommand {
	c.TagIDs = ids
	return c
}

// WithTagNames sets tag names to resolve, creating missing tags
func (c *SaveFragmentCommand) WithTagNames(names []string) *SaveFragmentCommand {
	c.TagNames = names
	return c
}

// Validate checks if the save operation is valid
func (c *SaveFragmentCommand) Validate() error {
	if err := application.ValidateRequired("title", c.Title); err != nil {
		return err
	}
	if err := application.ValidateMaxLength("title", c.Title, maxTitleLength); err != nil {
		return err
	}
	for _, id := range c.TagIDs {
		if strings.TrimSpace(id) == "" {
			return &application.ValidationError{
				Field:   "tags",
				Message: "tag IDs cannot be blank",
			}
		}
	}
	return nil
}

// Execute runs the save fragment command
func (c *SaveFragmentCommand) Execute(ctx context.Context) (*SaveFragmentResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	tagIDs := append([]string{}, c.TagIDs...)
	var createdTags []domain.Tag
	if len(c.TagNames) > 0 {
		resolved, err := NewResolveTagNamesCommand(c.store, c.TagNames).Execute(ctx)
		if err != nil {
			return nil, err
		}
		tagIDs = append(tagIDs, resolved.IDs...)
		createdTags = resolved.Created
	}

	fragment, err := c.store.SaveFragment(domain.Fragment{
		ID:    c.ID,
		Title: strings.TrimSpace(c.Title),
		Code:  c.Code,
		Tags:  tagIDs,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save fragment: %w", err)
	}

	created := c.ID == ""
	verb := "Updated"
	if created {
		verb = "Created"
	}
	return &SaveFragmentResult{
		Fragment:    fragment,
		Created:     created,
		CreatedTags: createdTags,
		Message:     fmt.Sprintf("%s fragment: %s", verb, fragment.Title),
	}, nil
}

// DeleteFragmentResult contains the result of a delete operation
type DeleteFragmentResult struct {
	DeletedID string
	Removed   bool
	Message   string
}

// DeleteFragmentCommand deletes a fragment by ID
type DeleteFragmentCommand struct {
	store ports.FragmentStore
	ID    string
}

// NewDeleteFragmentCommand creates a new DeleteFragmentCommand
func NewDeleteFragmentCommand(store ports.FragmentStore, id string) *DeleteFragmentCommand {
	return &DeleteFragmentCommand{
		store: store,
		ID:    strings.TrimSpace(id),
	}
}

// Validate checks if the delete operation is valid
func (c *DeleteFragmentCommand) Validate() error {
	return application.ValidateRequired("fragmentID", c.ID)
}

// Execute runs the delete command
func (c *DeleteFragmentCommand) Execute(ctx context.Context) (*DeleteFragmentResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	removed, err := c.store.DeleteFragment(c.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete fragment %s: %w", c.ID, err)
	}

	msg := fmt.Sprintf("Deleted fragment %s", c.ID)
	if !removed {
		msg = fmt.Sprintf("Fragment %s was already gone", c.ID)
	}
	return &DeleteFragmentResult{
		DeletedID: c.ID,
		Removed:   removed,
		Message:   msg,
	}, nil
}
