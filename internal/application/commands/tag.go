package commands

import (
	"context"
	"fmt"
	"strings"

	"fragments/internal/application"
	"fragments/internal/domain"
	"fragments/internal/ports"
)

const maxTagNameLength = 64

// SaveTagResult contains the result of saving a tag
type SaveTagResult struct {
	Tag     domain.Tag
	Created bool
	Message string
}

// SaveTagCommand creates a tag (empty ID) or renames an existing one
type SaveTagCommand struct {
	store ports.FragmentStore
	ID    string
	Name  string
}

// NewSaveTagCommand creates a new SaveTagCommand
func NewSaveTagCommand(store ports.FragmentStore, id, name string) *SaveTagCommand {
	return &SaveTagCommand{
		store: store,
		ID:    strings.TrimSpace(id),
		Name:  name,
	}
}

// Validate checks if the save operation is valid
func (c *SaveTagCommand) Validate() error {
	if err := application.ValidateRequired("name", c.Name); err != nil {
		return err
	}
	if strings.Contains(c.Name, ",") {
		return &application.ValidationError{
			Field:   "name",
			Message: "name cannot contain a comma",
		}
	}
	return application.ValidateMaxLength("name", c.Name, maxTagNameLength)
}

// Execute runs the save tag command
func (c *SaveTagCommand) Execute(ctx context.Context) (*SaveTagResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	tag, err := c.store.SaveTag(domain.Tag{ID: c.ID, Name: strings.TrimSpace(c.Name)})
	if err != nil {
		return nil, fmt.Errorf("failed to save tag: %w", err)
	}

	created := c.ID == ""
	verb := "Updated"
	if created {
		verb = "Created"
	}
	return &SaveTagResult{
		Tag:     tag,
		Created: created,
		Message: fmt.Sprintf("%s tag: %s", verb, tag.Name),
	}, nil
}

// DeleteTagResult contains the result of deleting a tag
type DeleteTagResult struct {
	DeletedID string
	Removed   bool
	Message   string
}

// DeleteTagCommand deletes a tag by ID. Fragments keep their reference.
type DeleteTagCommand struct {
	store ports.FragmentStore
	ID    string
}

// NewDeleteTagCommand creates a new DeleteTagCommand
func NewDeleteTagCommand(store ports.FragmentStore, id string) *DeleteTagCommand {
	return &DeleteTagCommand{
		store: store,
		ID:    strings.TrimSpace(id),
	}
}

// Validate checks if the delete operation is valid
func (c *DeleteTagCommand) Validate() error {
	return application.ValidateRequired("tagID", c.ID)
}

// Execute runs the delete tag command
func (c *DeleteTagCommand) Execute(ctx context.Context) (*DeleteTagResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	removed, err := c.store.DeleteTag(c.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete tag %s: %w", c.ID, err)
	}

	msg := fmt.Sprintf("Deleted tag %s", c.ID)
	if !removed {
		msg = fmt.Sprintf("Tag %s was already gone", c.ID)
	}
	return &DeleteTagResult{
		DeletedID: c.ID,
		Removed:   removed,
		Message:   msg,
	}, nil
}

// ResolveTagNamesResult contains the tag IDs for the requested names
type ResolveTagNamesResult struct {
	IDs     []string
	Created []domain.Tag
}

// ResolveTagNamesCommand maps tag names to IDs, matching existing tags
// case-insensitively and creating the ones that do not exist yet.
type ResolveTagNamesCommand struct {
	store ports.FragmentStore
	Names []string
}

// NewResolveTagNamesCommand creates a new ResolveTagNamesCommand
func NewResolveTagNamesCommand(store ports.FragmentStore, names []string) *ResolveTagNamesCommand {
	return &ResolveTagNamesCommand{store: store, Names: names}
}

// Validate checks every non-blank name against the tag name rules
func (c *ResolveTagNamesCommand) Validate() error {
	for _, name := range c.Names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		if err := application.ValidateMaxLength("name", name, maxTagNameLength); err != nil {
			return err
		}
	}
	return nil
}

// Execute runs the resolve command. IDs are returned in input order;
// blank names are skipped.
func (c *ResolveTagNamesCommand) Execute(ctx context.Context) (*ResolveTagNamesResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	result := &ResolveTagNamesResult{IDs: []string{}}
	if len(c.Names) == 0 {
		return result, nil
	}

	ids, created, err := c.store.ResolveTagNames(c.Names)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve tags: %w", err)
	}
	result.IDs = append(result.IDs, ids...)
	result.Created = created

	return result, nil
}
