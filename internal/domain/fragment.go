package domain

import (
	"slices"
	"strings"
)

// Fragment is a stored code or text snippet with a title and tag references
type Fragment struct {
	ID    string   `json:"id"`
	Title string   `json:"title"`
	Code  string   `json:"code"`
	Tags  []string `json:"tags"` // Tag IDs, order preserved, duplicates allowed
}

// Tag is a named label that can be attached to many fragments
type Tag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Document is the whole persisted state, read and written as one unit
type Document struct {
	Fragments []Fragment `json:"fragments"`
	Tags      []Tag      `json:"tags"`
}

// NewDocument returns an empty document with both collections present
func NewDocument() *Document {
	return &Document{
		Fragments: []Fragment{},
		Tags:      []Tag{},
	}
}

// Normalize replaces nil collections with empty ones so the document
// always serializes as {"fragments":[],"tags":[]}.
func (d *Document) Normalize() {
	if d.Fragments == nil {
		d.Fragments = []Fragment{}
	}
	if d.Tags == nil {
		d.Tags = []Tag{}
	}
	for i := range d.Fragments {
		d.Fragments[i].Normalize()
	}
}

// Normalize replaces a nil tag list with an empty one
func (f *Fragment) Normalize() {
	if f.Tags == nil {
		f.Tags = []string{}
	}
}

// Clone returns a deep copy of the fragment
func (f Fragment) Clone() Fragment {
	f.Tags = slices.Clone(f.Tags)
	if f.Tags == nil {
		f.Tags = []string{}
	}
	return f
}

// HasTag reports whether the fragment references the tag ID
func (f Fragment) HasTag(tagID string) bool {
	return slices.Contains(f.Tags, tagID)
}

// FragmentIndex returns the position of the fragment with the given ID, or -1
func (d *Document) FragmentIndex(id string) int {
	return slices.IndexFunc(d.Fragments, func(f Fragment) bool { return f.ID == id })
}

// TagIndex returns the position of the tag with the given ID, or -1
func (d *Document) TagIndex(id string) int {
	return slices.IndexFunc(d.Tags, func(t Tag) bool { return t.ID == id })
}

// RemoveFragment deletes the fragment with the given ID.
// Returns true if a fragment was removed.
func (d *Document) RemoveFragment(id string) bool {
	n := len(d.Fragments)
	d.Fragments = slices.DeleteFunc(d.Fragments, func(f Fragment) bool { return f.ID == id })
	return len(d.Fragments) != n
}

// RemoveTag deletes the tag with the given ID. Fragments keep any
// reference to it.
func (d *Document) RemoveTag(id string) bool {
	n := len(d.Tags)
	d.Tags = slices.DeleteFunc(d.Tags, func(t Tag) bool { return t.ID == id })
	return len(d.Tags) != n
}

// CloneFragments returns a deep copy of the fragment collection
func (d *Document) CloneFragments() []Fragment {
	out := make([]Fragment, len(d.Fragments))
	for i, f := range d.Fragments {
		out[i] = f.Clone()
	}
	return out
}

// CloneTags returns a copy of the tag collection
func (d *Document) CloneTags() []Tag {
	out := make([]Tag, len(d.Tags))
	copy(out, d.Tags)
	return out
}

// FindTagByName returns the first tag whose name matches case-insensitively.
// Surrounding whitespace is ignored on both sides.
func FindTagByName(tags []Tag, name string) (Tag, bool) {
	name = strings.TrimSpace(name)
	for _, t := range tags {
		if strings.EqualFold(strings.TrimSpace(t.Name), name) {
			return t, true
		}
	}
	return Tag{}, false
}

// SplitTagNames splits a comma separated list of tag names, trimming
// whitespace and dropping empty entries.
func SplitTagNames(input string) []string {
	var names []string
	for _, part := range strings.Split(input, ",") {
		if part = strings.TrimSpace(part); part != "" {
			names = append(names, part)
		}
	}
	return names
}

// TagNames maps tag IDs to display names. IDs with no matching tag
// are returned as-is.
func TagNames(ids []string, tags []Tag) []string {
	byID := make(map[string]string, len(tags))
	for _, t := range tags {
		byID[t.ID] = t.Name
	}
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if name, ok := byID[id]; ok {
			names = append(names, name)
		} else {
			names = append(names, id)
		}
	}
	return names
}

// StaleTagIDs returns the tag IDs referenced by fragments that no longer
// exist in the tag collection, in first-seen order.
func (d *Document) StaleTagIDs() []string {
	known := make(map[string]bool, len(d.Tags))
	for _, t := range d.Tags {
		known[t.ID] = true
	}
	seen := make(map[string]bool)
	var stale []string
	for _, f := range d.Fragments {
		for _, id := range f.Tags {
			if !known[id] && !seen[id] {
				seen[id] = true
				stale = append(stale, id)
			}
		}
	}
	return stale
}

// PruneStaleTags removes stale tag IDs from every fragment and returns the
// stale IDs and the number of fragments that carried one. A dry run only
// counts.
func (d *Document) PruneStaleTags(dryRun bool) ([]string, int) {
	stale := d.StaleTagIDs()
	if len(stale) == 0 {
		return nil, 0
	}

	updated := 0
	for i := range d.Fragments {
		f := &d.Fragments[i]
		kept := slices.DeleteFunc(slices.Clone(f.Tags), func(id string) bool {
			return slices.Contains(stale, id)
		})
		if len(kept) == len(f.Tags) {
			continue
		}
		updated++
		if !dryRun {
			f.Tags = kept
		}
	}
	return stale, updated
}

// ResolveTagNames maps names to tag IDs in input order, matching existing
// tags case-insensitively and appending a new tag for each unknown name.
// Blank names are skipped. newID must not return an ID already in d.Tags.
func (d *Document) ResolveTagNames(names []string, newID func() string) ([]string, []Tag) {
	ids := make([]string, 0, len(names))
	var created []Tag
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if tag, ok := FindTagByName(d.Tags, name); ok {
			ids = append(ids, tag.ID)
			continue
		}
		tag := Tag{ID: newID(), Name: name}
		d.Tags = append(d.Tags, tag)
		created = append(created, tag)
		ids = append(ids, tag.ID)
	}
	return ids, created
}
