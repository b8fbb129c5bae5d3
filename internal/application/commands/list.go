package commands

import (
	"context"
	"errors"

	"fragments/internal/application"
	"fragments/internal/domain"
	"fragments/internal/ports"
)

// ListFragmentsCommand lists all fragments in stored order
type ListFragmentsCommand struct {
	store ports.FragmentStore
}

// NewListFragmentsCommand creates a new ListFragmentsCommand
func NewListFragmentsCommand(store ports.FragmentStore) *ListFragmentsCommand {
	return &ListFragmentsCommand{store: store}
}

// Execute runs the list fragments command
func (c *ListFragmentsCommand) Execute(ctx context.Context) ([]domain.Fragment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return c.store.ListFragments()
}

// ListTagsCommand lists all tags in stored order
type ListTagsCommand struct {
	store ports.FragmentStore
}

// NewListTagsCommand creates a new ListTagsCommand
func NewListTagsCommand(store ports.FragmentStore) *ListTagsCommand {
	return &ListTagsCommand{store: store}
}

// Execute runs the list tags command
func (c *ListTagsCommand) Execute(ctx context.Context) ([]domain.Tag, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return c.store.ListTags()
}

// FragmentView is a fragment joined with the display names of its tags
type FragmentView struct {
	domain.Fragment
	TagNames []string
}

// Catalog is the full state a presentation layer renders
type Catalog struct {
	Fragments []FragmentView
	Tags      []domain.Tag
}

// Fragment returns the view with the given ID
func (c *Catalog) Fragment(id string) (FragmentView, bool) {
	for _, f := range c.Fragments {
		if f.ID == id {
			return f, true
		}
	}
	return FragmentView{}, false
}

// LoadCatalogCommand loads fragments and tags and resolves tag names.
// Unknown tag IDs are shown as the raw ID.
type LoadCatalogCommand struct {
	store ports.FragmentStore
}

// NewLoadCatalogCommand creates a new LoadCatalogCommand
func NewLoadCatalogCommand(store ports.FragmentStore) *LoadCatalogCommand {
	return &LoadCatalogCommand{store: store}
}

// Execute runs the load catalog command. Read failures still return an
// (empty) catalog alongside the error.
func (c *LoadCatalogCommand) Execute(ctx context.Context) (*Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fragments, fragErr := c.store.ListFragments()
	tags, tagErr := c.store.ListTags()

	catalog := &Catalog{
		Fragments: make([]FragmentView, 0, len(fragments)),
		Tags:      tags,
	}
	for _, f := range fragments {
		catalog.Fragments = append(catalog.Fragments, FragmentView{
			Fragment: f,
			TagNames: application.TagNames(f.Tags, tags),
		})
	}

	if err := errors.Join(fragErr, tagErr); err != nil {
		return catalog, err
	}
	return catalog, nil
}

// GetFragmentCommand looks up a single fragment by ID
type GetFragmentCommand struct {
	store ports.FragmentStore
	ID    string
}

// NewGetFragmentCommand creates a new GetFragmentCommand
func NewGetFragmentCommand(store ports.FragmentStore, id string) *GetFragmentCommand {
	return &GetFragmentCommand{store: store, ID: id}
}

// Validate checks if the lookup is valid
func (c *GetFragmentCommand) Validate() error {
	return application.ValidateRequired("fragmentID", c.ID)
}

// Execute runs the get fragment command
func (c *GetFragmentCommand) Execute(ctx context.Context) (*FragmentView, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	catalog, err := NewLoadCatalogCommand(c.store).Execute(ctx)
	if err != nil {
		return nil, err
	}

	view, ok := catalog.Fragment(c.ID)
	if !ok {
		return nil, &application.NotFoundError{Kind: "fragment", ID: c.ID}
	}
	return &view, nil
}
