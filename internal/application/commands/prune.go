package commands

import (
	"context"
	"fmt"

	"fragments/internal/ports"
)

// PruneTagsResult contains the result of pruning stale tag references
type PruneTagsResult struct {
	StaleIDs         []string
	UpdatedFragments int
	Message          string
}

// PruneTagsCommand removes tag IDs that no longer match any tag from
// every fragment. Tag deletion never does this on its own.
type PruneTagsCommand struct {
	store  ports.FragmentStore
	DryRun bool
}

// NewPruneTagsCommand creates a new PruneTagsCommand
func NewPruneTagsCommand(store ports.FragmentStore, dryRun bool) *PruneTagsCommand {
	return &PruneTagsCommand{store: store, DryRun: dryRun}
}

// Execute runs the prune command. The scan and the rewrite happen in one
// store cycle.
func (c *PruneTagsCommand) Execute(ctx context.Context) (*PruneTagsResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stale, updated, err := c.store.PruneStaleTags(c.DryRun)
	if err != nil {
		return nil, fmt.Errorf("failed to prune tags: %w", err)
	}

	result := &PruneTagsResult{StaleIDs: stale, UpdatedFragments: updated}
	if len(stale) == 0 {
		result.Message = "No stale tag references"
		return result, nil
	}

	verb := "Pruned"
	if c.DryRun {
		verb = "Would prune"
	}
	result.Message = fmt.Sprintf("%s %d stale tag(s) from %d fragment(s)", verb, len(stale), updated)
	return result, nil
}
