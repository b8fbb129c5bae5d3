package commands

import (
	"errors"
	"strconv"
	"strings"

	"fragments/internal/application"
	"fragments/internal/domain"
)

// memStore is an in-memory ports.FragmentStore for command tests
type memStore struct {
	doc     domain.Document
	nextID  int
	readErr error
	saveErr error
}

func newMemStore() *memStore {
	return &memStore{doc: *domain.NewDocument()}
}

func (s *memStore) id() string {
	s.nextID++
	return "id" + strconv.Itoa(s.nextID)
}

func (s *memStore) ListFragments() ([]domain.Fragment, error) {
	if s.readErr != nil {
		return []domain.Fragment{}, s.readErr
	}
	return s.doc.CloneFragments(), nil
}

func (s *memStore) ListTags() ([]domain.Tag, error) {
	if s.readErr != nil {
		return []domain.Tag{}, s.readErr
	}
	return s.doc.CloneTags(), nil
}

func (s *memStore) SaveFragment(f domain.Fragment) (domain.Fragment, error) {
	if s.saveErr != nil {
		return domain.Fragment{}, s.saveErr
	}
	f = f.Clone()
	if f.ID == "" {
		f.ID = s.id()
		s.doc.Fragments = append(s.doc.Fragments, f)
		return f, nil
	}
	idx := s.doc.FragmentIndex(f.ID)
	if idx < 0 {
		return domain.Fragment{}, &application.NotFoundError{Kind: "fragment", ID: f.ID}
	}
	s.doc.Fragments[idx] = f
	return f, nil
}

func (s *memStore) SaveTag(t domain.Tag) (domain.Tag, error) {
	if s.saveErr != nil {
		return domain.Tag{}, s.saveErr
	}
	if t.ID == "" {
		t.ID = s.id()
		s.doc.Tags = append(s.doc.Tags, t)
		return t, nil
	}
	idx := s.doc.TagIndex(t.ID)
	if idx < 0 {
		return domain.Tag{}, &application.NotFoundError{Kind: "tag", ID: t.ID}
	}
	s.doc.Tags[idx] = t
	return t, nil
}

func (s *memStore) DeleteFragment(id string) (bool, error) {
	if s.saveErr != nil {
		return false, s.saveErr
	}
	return s.doc.RemoveFragment(id), nil
}

func (s *memStore) DeleteTag(id string) (bool, error) {
	if s.saveErr != nil {
		return false, s.saveErr
	}
	return s.doc.RemoveTag(id), nil
}

func (s *memStore) ResolveTagNames(names []string) ([]string, []domain.Tag, error) {
	if s.readErr != nil {
		return nil, nil, s.readErr
	}
	doc := domain.Document{Fragments: s.doc.CloneFragments(), Tags: s.doc.CloneTags()}
	ids, created := doc.ResolveTagNames(names, s.id)
	if len(created) > 0 {
		if s.saveErr != nil {
			return nil, nil, s.saveErr
		}
		s.doc = doc
	}
	return ids, created, nil
}

func (s *memStore) PruneStaleTags(dryRun bool) ([]string, int, error) {
	if s.readErr != nil {
		return nil, 0, s.readErr
	}
	doc := domain.Document{Fragments: s.doc.CloneFragments(), Tags: s.doc.CloneTags()}
	stale, updated := doc.PruneStaleTags(dryRun)
	if !dryRun && updated > 0 {
		if s.saveErr != nil {
			return nil, 0, s.saveErr
		}
		s.doc = doc
	}
	return stale, updated, nil
}

// fakeClipboard records the last text written
type fakeClipboard struct {
	text string
	err  error
}

func (c *fakeClipboard) WriteText(text string) error {
	if c.err != nil {
		return c.err
	}
	c.text = text
	return nil
}

var errDisk = errors.New("disk unavailable")

func contains(s, substr string) bool {
	return strings.Contains(s, substr)
}
