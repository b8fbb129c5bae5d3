package ports

import "fragments/internal/domain"

// FragmentStore defines the persistence operations for fragments and tags.
// Every operation reads the whole document, applies its change and writes
// the whole document back before returning.
type FragmentStore interface {
	// List operations
	ListFragments() ([]domain.Fragment, error)
	ListTags() ([]domain.Tag, error)

	// Save creates when the ID is empty and replaces in place otherwise
	SaveFragment(fragment domain.Fragment) (domain.Fragment, error)
	SaveTag(tag domain.Tag) (domain.Tag, error)

	// Delete operations are idempotent; the bool reports whether
	// something was removed
	DeleteFragment(id string) (bool, error)
	DeleteTag(id string) (bool, error)

	// ResolveTagNames finds or creates tags by name in one cycle and
	// returns their IDs in input order plus the tags it created
	ResolveTagNames(names []string) ([]string, []domain.Tag, error)

	// PruneStaleTags drops tag IDs that match no tag from every fragment in
	// one cycle, returning the stale IDs and the number of fragments touched
	PruneStaleTags(dryRun bool) ([]string, int, error)
}
