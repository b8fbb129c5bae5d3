package commands

import (
	"context"
	"errors"
	"path/filepath"
	"slices"
	"sync"
	"testing"

	"fragments/internal/adapters/jsonfile"
	"fragments/internal/application"
	"fragments/internal/domain"
)

func TestPruneTagsCommand(t *testing.T) {
	store := newMemStore()
	keep, _ := store.SaveTag(domain.Tag{Name: "keep"})
	gone, _ := store.SaveTag(domain.Tag{Name: "gone"})
	_, _ = store.SaveFragment(domain.Fragment{Title: "a", Tags: []string{gone.ID, keep.ID, gone.ID}})
	_, _ = store.SaveFragment(domain.Fragment{Title: "b", Tags: []string{keep.ID}})
	_, _ = store.DeleteTag(gone.ID)
	ctx := context.Background()

	dry, err := NewPruneTagsCommand(store, true).Execute(ctx)
	if err != nil {
		t.Fatalf("dry run failed: %v", err)
	}
	if dry.UpdatedFragments != 1 || !slices.Equal(dry.StaleIDs, []string{gone.ID}) {
		t.Errorf("unexpected dry run result %+v", dry)
	}
	fragments, _ := store.ListFragments()
	if len(fragments[0].Tags) != 3 {
		t.Error("dry run modified fragments")
	}

	result, err := NewPruneTagsCommand(store, false).Execute(ctx)
	if err != nil {
		t.Fatalf("prune failed: %v", err)
	}
	if result.UpdatedFragments != 1 {
		t.Errorf("expected 1 updated fragment, got %d", result.UpdatedFragments)
	}
	fragments, _ = store.ListFragments()
	if !slices.Equal(fragments[0].Tags, []string{keep.ID}) {
		t.Errorf("expected only keep tag, got %v", fragments[0].Tags)
	}

	again, err := NewPruneTagsCommand(store, false).Execute(ctx)
	if err != nil {
		t.Fatalf("second prune failed: %v", err)
	}
	if again.Message != "No stale tag references" {
		t.Errorf("unexpected message %q", again.Message)
	}
}

// editingStore runs edit once, just before the first read it serves
type editingStore struct {
	*jsonfile.Store
	once sync.Once
	edit func()
}

func (s *editingStore) before() {
	s.once.Do(s.edit)
}

func (s *editingStore) ListFragments() ([]domain.Fragment, error) {
	s.before()
	return s.Store.ListFragments()
}

func (s *editingStore) ListTags() ([]domain.Tag, error) {
	s.before()
	return s.Store.ListTags()
}

func (s *editingStore) PruneStaleTags(dryRun bool) ([]string, int, error) {
	s.before()
	return s.Store.PruneStaleTags(dryRun)
}

func TestPruneTagsCommand_KeepsInterleavedEdit(t *testing.T) {
	base, err := jsonfile.Open(filepath.Join(t.TempDir(), "fragments.json"), jsonfile.WithStrictUpdates())
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	keep, _ := base.SaveTag(domain.Tag{Name: "keep"})
	gone, _ := base.SaveTag(domain.Tag{Name: "gone"})
	f, _ := base.SaveFragment(domain.Fragment{Title: "old", Code: "x", Tags: []string{gone.ID, keep.ID}})
	_, _ = base.DeleteTag(gone.ID)

	store := &editingStore{Store: base}
	store.edit = func() {
		edited := f
		edited.Title = "edited concurrently"
		if _, err := base.SaveFragment(edited); err != nil {
			t.Errorf("interleaved edit failed: %v", err)
		}
	}

	result, err := NewPruneTagsCommand(store, false).Execute(context.Background())
	if err != nil {
		t.Fatalf("prune failed: %v", err)
	}
	if result.UpdatedFragments != 1 {
		t.Errorf("expected 1 updated fragment, got %d", result.UpdatedFragments)
	}

	fragments, _ := base.ListFragments()
	if fragments[0].Title != "edited concurrently" {
		t.Errorf("interleaved edit lost: title %q", fragments[0].Title)
	}
	if !slices.Equal(fragments[0].Tags, []string{keep.ID}) {
		t.Errorf("expected only keep tag, got %v", fragments[0].Tags)
	}
}

func TestPruneTagsCommand_StorageError(t *testing.T) {
	store := newMemStore()
	store.readErr = &application.StorageReadError{Path: "f.json", Err: errDisk}

	_, err := NewPruneTagsCommand(store, false).Execute(context.Background())
	if !errors.Is(err, application.ErrStorageUnavailable) {
		t.Errorf("expected ErrStorageUnavailable, got %v", err)
	}
}
